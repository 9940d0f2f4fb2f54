package http

import (
	"fmt"
	"log/slog"
	"strconv"

	"resume-forge/internal/auth"
	"resume-forge/internal/domain"
	"resume-forge/internal/model"
	"resume-forge/internal/render"
	"resume-forge/internal/storage"
	"resume-forge/internal/usecase"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Handler serves the wizard session routes.
type Handler struct {
	wizard    *usecase.Wizard
	processor *usecase.Processor
}

func NewHandler(w *usecase.Wizard, p *usecase.Processor) *Handler {
	return &Handler{wizard: w, processor: p}
}

type sessionView struct {
	Session  *domain.Session  `json:"session"`
	Progress usecase.Progress `json:"progress"`
}

func (h *Handler) view(s *domain.Session) sessionView {
	return sessionView{Session: s, Progress: h.wizard.Progress(s)}
}

func userID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := auth.UserID(c)
	if !ok {
		return uuid.Nil, fiber.ErrUnauthorized
	}
	return id, nil
}

func (h *Handler) open(c *fiber.Ctx) (*domain.Session, error) {
	uid, err := userID(c)
	if err != nil {
		return nil, err
	}
	sid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, domain.ErrNotFound
	}
	return h.wizard.Open(c.UserContext(), uid, sid)
}

// mutate opens the session, applies fn and stores the result. Nothing is
// stored when fn fails. A nil body from fn means the session view.
func (h *Handler) mutate(c *fiber.Ctx, fn func(s *domain.Session) (any, error)) error {
	s, err := h.open(c)
	if err != nil {
		return Fail(c, err)
	}
	body, err := fn(s)
	if err != nil {
		return Fail(c, err)
	}
	if err := h.wizard.Commit(c.UserContext(), s); err != nil {
		return Fail(c, err)
	}
	if body == nil {
		body = h.view(s)
	}
	return JSON(c, fiber.StatusOK, body)
}

func parse(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return &usecase.ValidationError{Fields: map[string]string{"body": "invalid JSON payload"}}
	}
	return nil
}

func (h *Handler) Templates(c *fiber.Ctx) error {
	return JSON(c, fiber.StatusOK, render.Templates())
}

func (h *Handler) CreateSession(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return Fail(c, err)
	}
	s, err := h.wizard.Start(c.UserContext(), uid)
	if err != nil {
		return Fail(c, err)
	}
	return JSON(c, fiber.StatusCreated, h.view(s))
}

func (h *Handler) GetSession(c *fiber.Ctx) error {
	s, err := h.open(c)
	if err != nil {
		return Fail(c, err)
	}
	return JSON(c, fiber.StatusOK, h.view(s))
}

func (h *Handler) DeleteSession(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return Fail(c, err)
	}
	sid, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return Fail(c, domain.ErrNotFound)
	}
	if err := h.wizard.Discard(c.UserContext(), uid, sid); err != nil {
		return Fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *Handler) Navigate(c *fiber.Ctx) error {
	return h.mutate(c, func(s *domain.Session) (any, error) {
		var req struct {
			Step int `json:"step"`
		}
		if err := parse(c, &req); err != nil {
			return nil, err
		}
		return nil, h.wizard.Navigate(s, req.Step)
	})
}

func (h *Handler) SavePersonalInfo(c *fiber.Ctx) error {
	return h.mutate(c, func(s *domain.Session) (any, error) {
		var info model.PersonalInfo
		if err := parse(c, &info); err != nil {
			return nil, err
		}
		return nil, h.wizard.SavePersonalInfo(s, info)
	})
}

// AddEntry appends to the section named in the path.
func (h *Handler) AddEntry(c *fiber.Ctx) error {
	return h.mutate(c, func(s *domain.Session) (any, error) {
		switch section := c.Params("section"); section {
		case usecase.SectionExperience:
			var e model.Experience
			if err := parse(c, &e); err != nil {
				return nil, err
			}
			return nil, h.wizard.AddExperience(s, e)
		case usecase.SectionEducation:
			var e model.Education
			if err := parse(c, &e); err != nil {
				return nil, err
			}
			return nil, h.wizard.AddEducation(s, e)
		case usecase.SectionSkills:
			var req struct {
				Skill string `json:"skill"`
			}
			if err := parse(c, &req); err != nil {
				return nil, err
			}
			return nil, h.wizard.AddSkill(s, req.Skill)
		case usecase.SectionProjects:
			var p model.Project
			if err := parse(c, &p); err != nil {
				return nil, err
			}
			return nil, h.wizard.AddProject(s, p)
		case usecase.SectionCertifications:
			var cert model.Certification
			if err := parse(c, &cert); err != nil {
				return nil, err
			}
			return nil, h.wizard.AddCertification(s, cert)
		case usecase.SectionLanguages:
			var l model.Language
			if err := parse(c, &l); err != nil {
				return nil, err
			}
			return nil, h.wizard.AddLanguage(s, l)
		default:
			return nil, errors.Wrap(usecase.ErrUnknownSection, section)
		}
	})
}

func (h *Handler) AddSkillsBulk(c *fiber.Ctx) error {
	return h.mutate(c, func(s *domain.Session) (any, error) {
		var req struct {
			Skills string `json:"skills"`
		}
		if err := parse(c, &req); err != nil {
			return nil, err
		}
		added := h.wizard.AddSkillsBulk(s, req.Skills)
		return fiber.Map{"added": len(added), "skills": added, "session": h.view(s)}, nil
	})
}

func (h *Handler) RemoveEntry(c *fiber.Ctx) error {
	return h.mutate(c, func(s *domain.Session) (any, error) {
		index, err := strconv.Atoi(c.Params("index"))
		if err != nil {
			return nil, errors.Wrap(usecase.ErrIndexOutOfRange, c.Params("index"))
		}
		return nil, h.wizard.Remove(s, c.Params("section"), index)
	})
}

func (h *Handler) UploadProfilePicture(c *fiber.Ctx) error {
	return h.mutate(c, func(s *domain.Session) (any, error) {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, &usecase.ValidationError{Fields: map[string]string{"file": "File is required"}}
		}
		f, err := fh.Open()
		if err != nil {
			return nil, errors.Wrap(err, "open upload")
		}
		defer f.Close()
		ref, err := h.wizard.AttachProfilePicture(c.UserContext(), s, fh.Filename, f, fh.Size)
		if err != nil {
			return nil, err
		}
		return fiber.Map{"profile_pic": ref}, nil
	})
}

func (h *Handler) Restore(c *fiber.Ctx) error {
	return h.mutate(c, func(s *domain.Session) (any, error) {
		var req struct {
			Source usecase.Source `json:"source"`
			Name   string         `json:"name"`
		}
		if err := parse(c, &req); err != nil {
			return nil, err
		}
		if req.Source == "" {
			req.Source = usecase.SourceSnapshot
		}
		return nil, h.wizard.Restore(c.UserContext(), s, req.Source, req.Name)
	})
}

// Save writes the snapshot. Partial failures answer 207 with the failed
// targets; only a failed local write is a 500.
func (h *Handler) Save(c *fiber.Ctx) error {
	s, err := h.open(c)
	if err != nil {
		return Fail(c, err)
	}
	path, err := h.wizard.Save(c.UserContext(), s)
	var se *storage.SaveError
	switch {
	case errors.As(err, &se):
		slog.Warn("resume saved with errors", "user_id", s.UserID, "path", path, "failed", se.Targets())
		return JSON(c, fiber.StatusMultiStatus, fiber.Map{
			"path":    path,
			"message": "resume saved with errors",
			"failed":  se.Targets(),
		})
	case err != nil:
		return Fail(c, err)
	}
	slog.Info("snapshot saved", "user_id", s.UserID, "path", path)
	return JSON(c, fiber.StatusOK, fiber.Map{"path": path, "message": "resume saved"})
}

type renderRequest struct {
	Template    string `json:"template"`
	FillMissing bool   `json:"fill_missing"`
}

// parseRender accepts an empty body.
func parseRender(c *fiber.Ctx) (renderRequest, error) {
	var req renderRequest
	if len(c.Body()) > 0 {
		if err := parse(c, &req); err != nil {
			return req, err
		}
	}
	req.defaults()
	return req, nil
}

func (r *renderRequest) defaults() {
	if r.Template == "" {
		r.Template = "classic"
	}
}

func (h *Handler) Preview(c *fiber.Ctx) error {
	s, err := h.open(c)
	if err != nil {
		return Fail(c, err)
	}
	req, err := parseRender(c)
	if err != nil {
		return Fail(c, err)
	}
	path, err := h.wizard.PreviewHTML(c.UserContext(), h.processor, s, req.Template)
	if err != nil {
		return Fail(c, err)
	}
	return JSON(c, fiber.StatusOK, fiber.Map{"path": path})
}

// Export answers with the PDF. Prose generated on the way is kept in the
// session.
func (h *Handler) Export(c *fiber.Ctx) error {
	s, err := h.open(c)
	if err != nil {
		return Fail(c, err)
	}
	req, err := parseRender(c)
	if err != nil {
		return Fail(c, err)
	}
	pdf, err := h.wizard.Export(c.UserContext(), h.processor, s, req.Template, req.FillMissing)
	if err != nil {
		return Fail(c, err)
	}
	if err := h.wizard.Commit(c.UserContext(), s); err != nil {
		slog.Warn("session not stored after export", "session_id", s.ID, "error", err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="resume_%s.pdf"`, req.Template))
	return c.Status(fiber.StatusOK).Send(pdf)
}

func (h *Handler) ListSnapshots(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return Fail(c, err)
	}
	names, err := h.wizard.Snapshots(uid)
	if err != nil {
		return Fail(c, err)
	}
	return JSON(c, fiber.StatusOK, fiber.Map{"snapshots": names})
}

func (h *Handler) GetSnapshot(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return Fail(c, err)
	}
	doc, err := h.wizard.Snapshot(uid, c.Params("name"))
	if err != nil {
		return Fail(c, err)
	}
	return JSON(c, fiber.StatusOK, doc)
}

func (h *Handler) ListBackups(c *fiber.Ctx) error {
	uid, err := userID(c)
	if err != nil {
		return Fail(c, err)
	}
	names, err := h.wizard.Backups(uid)
	if err != nil {
		return Fail(c, err)
	}
	return JSON(c, fiber.StatusOK, fiber.Map{"backups": names})
}
