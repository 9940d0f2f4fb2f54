package objectstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"resume-forge/internal/domain"

	"github.com/pkg/errors"
)

// Local writes images under <root>/users/<uid>/assets. References are the
// file paths themselves.
type Local struct {
	root string
}

func NewLocal(root string) *Local {
	return &Local{root: root}
}

func (l *Local) Put(_ context.Context, userID, base, ext string, r io.Reader, _ int64) (string, error) {
	dir := filepath.Join(l.root, "users", userID, "assets")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create assets dir")
	}
	dst := filepath.Join(dir, base+ext)
	f, err := os.Create(dst)
	if err != nil {
		return "", errors.Wrap(err, "create image")
	}
	n, err := io.Copy(f, limited(r))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > domain.MaxImageSize {
		err = domain.ErrImageTooLarge
	}
	if err != nil {
		_ = os.Remove(dst)
		return "", err
	}
	return dst, nil
}

func (l *Local) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	clean := filepath.Clean(ref)
	root := filepath.Clean(l.root) + string(filepath.Separator)
	if !strings.HasPrefix(clean, root) {
		return nil, errors.Wrapf(domain.ErrNotFound, "image %s", ref)
	}
	f, err := os.Open(clean)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errors.Wrapf(domain.ErrNotFound, "image %s", ref)
		}
		return nil, err
	}
	return f, nil
}
