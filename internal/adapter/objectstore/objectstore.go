// Package objectstore keeps uploaded profile images, either on the local
// filesystem next to the user's snapshots or in a MinIO bucket.
package objectstore

import (
	"io"
	"path"
	"strings"

	"resume-forge/internal/domain"
)

// ContentType maps an image extension to its MIME type.
func ContentType(ext string) string {
	if strings.EqualFold(ext, ".png") {
		return "image/png"
	}
	return "image/jpeg"
}

func objectKey(userID, base, ext string) string {
	return path.Join(userID, "assets", base+ext)
}

// limited refuses readers that turn out larger than domain.MaxImageSize.
func limited(r io.Reader) io.Reader {
	return io.LimitReader(r, domain.MaxImageSize+1)
}
