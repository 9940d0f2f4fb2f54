package render

import (
	"context"
	"encoding/base64"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"resume-forge/internal/model"

	"github.com/pkg/errors"
)

// ImageOpener reads a stored profile picture back by reference.
type ImageOpener interface {
	Open(ctx context.Context, ref string) (io.ReadCloser, error)
}

// InlineImages swaps src="<profile_pic>" for a base64 data URI so the
// markup is self-contained. Unreadable images leave the markup unchanged.
func InlineImages(ctx context.Context, html string, doc model.Document, images ImageOpener) string {
	ref := doc.PersonalInfo.ProfilePic
	if ref == "" || images == nil {
		return html
	}
	rc, err := images.Open(ctx, ref)
	if err != nil {
		slog.Warn("profile picture not inlined", "ref", ref, "error", err)
		return html
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		slog.Warn("profile picture not inlined", "ref", ref, "error", err)
		return html
	}
	mime := "image/jpeg"
	if strings.EqualFold(filepath.Ext(ref), ".png") {
		mime = "image/png"
	}
	uri := "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
	return strings.ReplaceAll(html, `src="`+ref+`"`, `src="`+uri+`"`)
}

// Previewer writes self-contained HTML previews to preview_<ts>.html.
type Previewer struct {
	dir    string
	images ImageOpener
	now    func() time.Time
}

func NewPreviewer(dir string, images ImageOpener) *Previewer {
	return &Previewer{dir: dir, images: images, now: time.Now}
}

// Write inlines the profile picture and stores the preview, returning its
// absolute path.
func (p *Previewer) Write(ctx context.Context, html string, doc model.Document) (string, error) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return "", errors.Wrap(err, "create preview dir")
	}
	html = InlineImages(ctx, html, doc, p.images)
	path := filepath.Join(p.dir, "preview_"+p.now().Format("20060102_150405")+".html")
	if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
		return "", errors.Wrap(err, "write preview")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return path, nil
	}
	return abs, nil
}
