// Package render binds resume documents to the named HTML layouts.
package render

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"resume-forge/internal/model"

	"github.com/pkg/errors"
	"golang.org/x/net/publicsuffix"
)

//go:embed templates/*.html
var embedded embed.FS

var ErrInvalidTemplate = errors.New("invalid template")

// Template describes one selectable layout.
type Template struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

var catalog = []Template{
	{"classic", "Traditional two-column layout with a professional look"},
	{"modern", "Contemporary design with a bold header and card-based sections"},
	{"minimalist", "Clean and simple layout focusing on content"},
}

// Templates lists the layouts in display order.
func Templates() []Template {
	return append([]Template(nil), catalog...)
}

// Valid reports whether name is a known layout.
func Valid(name string) bool {
	for _, t := range catalog {
		if t.Name == name {
			return true
		}
	}
	return false
}

type Renderer struct {
	layouts map[string]*template.Template
}

// New parses <name>.html for every layout from fsys.
func New(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{layouts: map[string]*template.Template{}}
	for _, t := range catalog {
		tpl, err := template.New(t.Name + ".html").Funcs(funcs).ParseFS(fsys, t.Name+".html")
		if err != nil {
			return nil, errors.Wrapf(err, "parse template %s", t.Name)
		}
		r.layouts[t.Name] = tpl
	}
	return r, nil
}

// NewEmbedded uses the layouts compiled into the binary.
func NewEmbedded() *Renderer {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	r, err := New(sub)
	if err != nil {
		panic(err)
	}
	return r
}

// Render formats dates on a copy of doc and executes the named layout.
func (r *Renderer) Render(name string, doc model.Document) (string, error) {
	tpl, ok := r.layouts[name]
	if !ok {
		return "", errors.Wrapf(ErrInvalidTemplate, "template %q not found", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, prepare(doc)); err != nil {
		return "", errors.Wrapf(err, "execute template %s", name)
	}
	return buf.String(), nil
}

func prepare(doc model.Document) model.Document {
	out := doc.Clone()
	for i := range out.Experience {
		out.Experience[i].StartDate = FormatDate(out.Experience[i].StartDate)
		out.Experience[i].EndDate = FormatDate(out.Experience[i].EndDate)
	}
	for i := range out.Education {
		out.Education[i].Year = FormatDate(out.Education[i].Year)
	}
	return out
}

// FormatDate turns "2024-01" into "January 2024" and "present" into
// "Present". Everything else comes back unchanged.
func FormatDate(s string) string {
	if strings.EqualFold(s, "present") {
		return "Present"
	}
	if len(s) == 7 {
		if t, err := time.Parse("2006-01", s); err == nil {
			return t.Format("January 2006")
		}
	}
	return s
}

var funcs = template.FuncMap{
	"linkLabel": LinkLabel,
	"img": imageSrc,
	"initial": func(s string) string {
		s = strings.TrimSpace(s)
		if s == "" {
			return ""
		}
		return strings.ToUpper(string([]rune(s)[:1]))
	},
}

var imageSchemes = []string{"data:image/", "http://", "https://", "minio://"}

// imageSrc trusts scheme-less paths and the schemes image stores produce.
// Anything else goes back as a plain string for html/template to filter.
func imageSrc(ref string) any {
	lower := strings.ToLower(strings.TrimSpace(ref))
	for _, scheme := range imageSchemes {
		if strings.HasPrefix(lower, scheme) {
			return template.URL(ref)
		}
	}
	if i := strings.IndexAny(ref, ":/"); i < 0 || ref[i] == '/' {
		return template.URL(ref)
	}
	return ref
}

// LinkLabel drops the scheme and any subdomain below the registrable domain,
// so "https://www.linkedin.com/in/jane/" shows as "linkedin.com/in/jane".
func LinkLabel(raw string) string {
	if raw == "" {
		return ""
	}
	candidate := raw
	if !strings.HasPrefix(candidate, "http://") && !strings.HasPrefix(candidate, "https://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return raw
	}
	host := strings.TrimPrefix(u.Hostname(), "www.")
	if etld, err := publicsuffix.EffectiveTLDPlusOne(host); err == nil {
		host = etld
	}
	return host + strings.TrimSuffix(u.EscapedPath(), "/")
}
