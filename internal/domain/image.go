package domain

import (
	"path"
	"strings"

	"github.com/pkg/errors"
)

// MaxImageSize is the upload limit for profile pictures.
const MaxImageSize = 5 << 20

var (
	ErrImageTooLarge    = errors.New("image exceeds 5 MB")
	ErrUnsupportedImage = errors.New("unsupported image type")
)

// CheckImage validates extension and size before anything is written. It
// returns the normalized extension.
func CheckImage(filename string, size int64) (string, error) {
	ext := strings.ToLower(path.Ext(filename))
	switch ext {
	case ".jpg", ".jpeg", ".png":
	default:
		return "", errors.Wrap(ErrUnsupportedImage, ext)
	}
	if size > MaxImageSize {
		return "", ErrImageTooLarge
	}
	return ext, nil
}
