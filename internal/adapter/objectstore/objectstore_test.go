package objectstore

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"testing"

	"resume-forge/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalPutOpen(t *testing.T) {
	root := t.TempDir()
	store := NewLocal(root)
	ctx := context.Background()

	ref, err := store.Put(ctx, "u1", "resume_data_20240101_000000", ".png", bytes.NewReader([]byte("png-bytes")), 9)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "users", "u1", "assets", "resume_data_20240101_000000.png"), ref)

	rc, err := store.Open(ctx, ref)
	require.NoError(t, err)
	defer rc.Close()
	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(got))
}

func TestLocalRejectsOversizedStream(t *testing.T) {
	store := NewLocal(t.TempDir())
	big := bytes.Repeat([]byte{1}, domain.MaxImageSize+10)
	_, err := store.Put(context.Background(), "u1", "pic", ".jpg", bytes.NewReader(big), 0)
	assert.ErrorIs(t, err, domain.ErrImageTooLarge)
}

func TestLocalOpenOutsideRoot(t *testing.T) {
	store := NewLocal(t.TempDir())
	_, err := store.Open(context.Background(), "/etc/passwd")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestParseRef(t *testing.T) {
	bucket, key, err := ParseRef("minio://avatars/u1/assets/pic.png")
	require.NoError(t, err)
	assert.Equal(t, "avatars", bucket)
	assert.Equal(t, "u1/assets/pic.png", key)

	_, _, err = ParseRef("/local/path.png")
	assert.Error(t, err)
	_, _, err = ParseRef("minio://bucket-only")
	assert.Error(t, err)
}
