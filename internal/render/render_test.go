package render

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"testing"
	"time"

	"resume-forge/internal/model"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFormatsExperienceDates(t *testing.T) {
	doc := model.NewDocument()
	doc.PersonalInfo.FullName = "Jane Doe"
	doc.Experience = []model.Experience{{Company: "Acme", Position: "Engineer", StartDate: "2022-01", EndDate: "present"}}
	doc.Education = []model.Education{{Institution: "MIT", Degree: "BSc", Year: "2019-06"}}

	html, err := NewEmbedded().Render("classic", doc)
	require.NoError(t, err)
	assert.Contains(t, html, "January 2022")
	assert.NotContains(t, html, "2022-01")
	assert.Contains(t, html, "Present")
	assert.Contains(t, html, "June 2019")

	// the caller's document is left alone
	assert.Equal(t, "2022-01", doc.Experience[0].StartDate)
}

func TestRenderAllLayouts(t *testing.T) {
	r := NewEmbedded()
	for _, tpl := range Templates() {
		t.Run(tpl.Name, func(t *testing.T) {
			html, err := r.Render(tpl.Name, model.Sample())
			require.NoError(t, err)
			assert.Contains(t, html, "John Doe")
			assert.Contains(t, html, "Tech Solutions Inc.")
			assert.Contains(t, html, "University of Technology")
			assert.Contains(t, html, "AWS Certified Developer")
			assert.Contains(t, html, "Spanish")
			assert.Contains(t, html, "January 2022")
		})
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	html, err := NewEmbedded().Render("nonexistent", model.Sample())
	assert.True(t, errors.Is(err, ErrInvalidTemplate))
	assert.Empty(t, html)
}

func TestRenderEscapesContent(t *testing.T) {
	doc := model.NewDocument()
	doc.PersonalInfo.FullName = "<script>alert(1)</script>"
	html, err := NewEmbedded().Render("minimalist", doc)
	require.NoError(t, err)
	assert.NotContains(t, html, "<script>alert(1)</script>")
}

func TestFormatDate(t *testing.T) {
	tests := map[string]string{
		"2024-01":  "January 2024",
		"2023-12":  "December 2023",
		"2024":     "2024",
		"Present":  "Present",
		"PRESENT":  "Present",
		"2024-13":  "2024-13",
		"May 2024": "May 2024",
		"":         "",
		"garbage!": "garbage!",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatDate(in), in)
	}
}

func TestLinkLabel(t *testing.T) {
	assert.Equal(t, "linkedin.com/in/jane", LinkLabel("https://www.linkedin.com/in/jane/"))
	assert.Equal(t, "github.com/jane", LinkLabel("github.com/jane"))
	assert.Equal(t, "example.co.uk", LinkLabel("https://shop.example.co.uk"))
	assert.Equal(t, "", LinkLabel(""))
}

func TestTemplatesCatalog(t *testing.T) {
	names := []string{}
	for _, tpl := range Templates() {
		names = append(names, tpl.Name)
		assert.NotEmpty(t, tpl.Description)
	}
	assert.Equal(t, []string{"classic", "modern", "minimalist"}, names)
	assert.True(t, Valid("modern"))
	assert.False(t, Valid("fancy"))
}

type fakeImages map[string][]byte

func (f fakeImages) Open(_ context.Context, ref string) (io.ReadCloser, error) {
	b, ok := f[ref]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(b)), nil
}

func TestPreviewInlinesProfilePicture(t *testing.T) {
	doc := model.Sample()
	doc.PersonalInfo.ProfilePic = "/data/users/u1/assets/pic.png"
	html, err := NewEmbedded().Render("classic", doc)
	require.NoError(t, err)
	require.Contains(t, html, `src="/data/users/u1/assets/pic.png"`)

	p := NewPreviewer(t.TempDir(), fakeImages{"/data/users/u1/assets/pic.png": []byte("PNG")})
	p.now = func() time.Time { return time.Date(2024, 3, 4, 5, 6, 7, 0, time.UTC) }

	path, err := p.Write(context.Background(), html, doc)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(path, "preview_20240304_050607.html"))

	out, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(out), `src="data:image/png;base64,UE5H"`)
	assert.NotContains(t, string(out), `src="/data/users/u1/assets/pic.png"`)
}

func TestRenderFiltersUnsafeProfilePicture(t *testing.T) {
	r := NewEmbedded()
	doc := model.Sample()
	for _, ref := range []string{"javascript:alert(1)", " JavaScript:alert(1)", "vbscript:msgbox(1)"} {
		doc.PersonalInfo.ProfilePic = ref
		for _, tpl := range []string{"classic", "modern"} {
			html, err := r.Render(tpl, doc)
			require.NoError(t, err)
			assert.NotContains(t, strings.ToLower(html), "script:", "%s %q", tpl, ref)
			assert.Contains(t, html, "#ZgotmplZ")
		}
	}

	for _, ref := range []string{"minio://avatars/u1/assets/profile.png", "data:image/png;base64,UE5H", "assets/pic.png"} {
		doc.PersonalInfo.ProfilePic = ref
		html, err := r.Render("classic", doc)
		require.NoError(t, err)
		assert.Contains(t, html, `src="`+ref+`"`)
	}
}

func TestInlineImagesMissingFile(t *testing.T) {
	doc := model.Sample()
	doc.PersonalInfo.ProfilePic = "/missing.png"
	html := `<img src="/missing.png">`
	assert.Equal(t, html, InlineImages(context.Background(), html, doc, fakeImages{}))
}
