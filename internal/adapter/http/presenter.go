package http

import (
	"log/slog"

	"resume-forge/internal/auth"
	"resume-forge/internal/domain"
	"resume-forge/internal/render"
	"resume-forge/internal/storage"
	"resume-forge/internal/usecase"
	"resume-forge/pkg/infrastructure"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

type ErrorResponse struct {
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

func JSON(c *fiber.Ctx, status int, v any) error {
	return c.Status(status).JSON(v)
}

func Error(c *fiber.Ctx, status int, message string) error {
	return JSON(c, status, ErrorResponse{Message: message})
}

// Fail maps domain errors onto status codes. Unknown errors are logged and
// reported as a generic 500.
func Fail(c *fiber.Ctx, err error) error {
	var ve *usecase.ValidationError
	if errors.As(err, &ve) {
		return JSON(c, fiber.StatusUnprocessableEntity, ErrorResponse{
			Message: "Please fill in all required fields (*)",
			Fields:  ve.Fields,
		})
	}
	var ne *usecase.NarrationError
	if errors.As(err, &ne) {
		slog.Warn("narrative generation failed", "field", ne.Field, "error", ne.Err)
		return Error(c, fiber.StatusBadGateway, "could not generate text, please try again or fill it in yourself")
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		return Error(c, fe.Code, fe.Message)
	}

	switch {
	case errors.Is(err, domain.ErrNotFound):
		return Error(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, usecase.ErrDuplicateSkill):
		return Error(c, fiber.StatusConflict, "Skill already exists!")
	case errors.Is(err, usecase.ErrInvalidStep),
		errors.Is(err, usecase.ErrIndexOutOfRange),
		errors.Is(err, usecase.ErrUnknownSection),
		errors.Is(err, usecase.ErrNoNarrator),
		errors.Is(err, render.ErrInvalidTemplate),
		errors.Is(err, storage.ErrInvalidName):
		return Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, storage.ErrMalformed):
		return Error(c, fiber.StatusUnprocessableEntity, "stored resume is malformed")
	case errors.Is(err, domain.ErrImageTooLarge):
		return Error(c, fiber.StatusRequestEntityTooLarge, "image must be 5 MB or smaller")
	case errors.Is(err, domain.ErrUnsupportedImage):
		return Error(c, fiber.StatusUnsupportedMediaType, "image must be jpg, jpeg or png")
	case errors.Is(err, infrastructure.ErrPDFRender):
		slog.Error("pdf export failed", "error", err)
		return Error(c, fiber.StatusBadGateway, "PDF generation failed, please try again")
	case errors.Is(err, auth.ErrUserAlreadyExists):
		return Error(c, fiber.StatusConflict, "user already exists")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return Error(c, fiber.StatusUnauthorized, "invalid email or password")
	case errors.Is(err, auth.ErrWeakPassword):
		return Error(c, fiber.StatusBadRequest, err.Error())
	}
	slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	return Error(c, fiber.StatusInternalServerError, "internal error")
}
