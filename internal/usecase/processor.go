package usecase

import (
	"context"
	"log/slog"
	"strings"

	"resume-forge/internal/domain"
	"resume-forge/internal/model"
	"resume-forge/internal/render"
	"resume-forge/pkg/ai/formatters"

	"github.com/pkg/errors"
)

// Processor turns a document into a PDF: optional prose fill-in, template
// rendering, image inlining, then the headless browser.
type Processor struct {
	renderer  Renderer
	pdf       PDFRenderer
	narrator  Narrator
	images    render.ImageOpener
	previewer Previewer
}

// NewProcessor wires the export pipeline. narrator and previewer may be nil.
func NewProcessor(r Renderer, pdf PDFRenderer, narrator Narrator, images render.ImageOpener, previewer Previewer) *Processor {
	return &Processor{renderer: r, pdf: pdf, narrator: narrator, images: images, previewer: previewer}
}

// Process renders doc with the named template and returns the PDF bytes.
// With fillMissing the narrator writes any empty summary or description
// first; its errors abort the export.
func (p *Processor) Process(ctx context.Context, doc model.Document, tmpl string, fillMissing bool) ([]byte, error) {
	if !render.Valid(tmpl) {
		return nil, errors.Wrap(render.ErrInvalidTemplate, tmpl)
	}
	if fillMissing {
		var err error
		if doc, err = p.FillMissing(ctx, doc); err != nil {
			return nil, err
		}
	}
	html, err := p.renderer.Render(tmpl, doc)
	if err != nil {
		return nil, err
	}
	html = render.InlineImages(ctx, html, doc, p.images)
	pdf, err := p.pdf.RenderHTMLToPDF(ctx, html)
	if err != nil {
		return nil, err
	}
	slog.Info("resume exported", "template", tmpl, "bytes", len(pdf))
	return pdf, nil
}

// FillMissing asks the narrator for the summary, job descriptions and
// project descriptions the user left blank. Filled prose is never replaced.
func (p *Processor) FillMissing(ctx context.Context, doc model.Document) (model.Document, error) {
	if p.narrator == nil {
		return doc, ErrNoNarrator
	}
	doc = doc.Clone()
	if strings.TrimSpace(doc.PersonalInfo.Summary) == "" {
		s, err := p.narrator.ProfileSummary(ctx, doc.PersonalInfo, doc.Skills, doc.Experience, doc.Education)
		if err != nil {
			return doc, &NarrationError{Field: "profile summary", Err: err}
		}
		doc.PersonalInfo.Summary = s
	}
	for i, e := range doc.Experience {
		if strings.TrimSpace(e.Description) != "" {
			continue
		}
		d, err := p.narrator.JobDescription(ctx, e.Company, e.Position, e.StartDate, e.EndDate, e.Technologies)
		if err != nil {
			return doc, &NarrationError{Field: "description for " + e.Company, Err: err}
		}
		doc.Experience[i].Description = d
	}
	for i, pr := range doc.Projects {
		if strings.TrimSpace(pr.Description) != "" {
			continue
		}
		d, err := p.narrator.ProjectDescription(ctx, pr.Name, formatters.SplitTechnologies(pr.Technologies))
		if err != nil {
			return doc, &NarrationError{Field: "description for " + pr.Name, Err: err}
		}
		doc.Projects[i].Description = d
	}
	return doc, nil
}

// Preview renders doc and writes a self-contained HTML file, returning its
// path.
func (p *Processor) Preview(ctx context.Context, doc model.Document, tmpl string) (string, error) {
	if p.previewer == nil {
		return "", errors.New("previews are not configured")
	}
	html, err := p.renderer.Render(tmpl, doc)
	if err != nil {
		return "", err
	}
	return p.previewer.Write(ctx, html, doc)
}

// Export runs the pipeline over the session document. Generated prose is
// written back into the session so the user can review and edit it.
func (w *Wizard) Export(ctx context.Context, p *Processor, s *domain.Session, tmpl string, fillMissing bool) ([]byte, error) {
	if !render.Valid(tmpl) {
		return nil, errors.Wrap(render.ErrInvalidTemplate, tmpl)
	}
	doc := s.Document
	if fillMissing {
		filled, err := p.FillMissing(ctx, doc)
		if err != nil {
			return nil, err
		}
		doc = filled
	}
	pdf, err := p.Process(ctx, doc, tmpl, false)
	if err != nil {
		return nil, err
	}
	s.Document = doc
	return pdf, nil
}

// PreviewHTML renders the session document to the preview directory.
func (w *Wizard) PreviewHTML(ctx context.Context, p *Processor, s *domain.Session, tmpl string) (string, error) {
	return p.Preview(ctx, s.Document, tmpl)
}
