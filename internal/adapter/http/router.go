package http

import (
	"log/slog"
	"time"

	"resume-forge/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// NewApp builds the Fiber app with a body limit that fits a profile picture
// upload and JSON errors for anything the handlers do not catch.
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:   "resume-forge",
		BodyLimit: domain.MaxImageSize + 1<<20,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return Fail(c, err)
		},
	})
}

// RequestLogger logs one line per request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		slog.Debug("request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
		)
		return err
	}
}

// Register wires all HTTP routes onto the app. authMW guards everything
// except health, auth and the template list.
func Register(app *fiber.App, authMW fiber.Handler, a *AuthHandler, health *HealthHandler, h *Handler) {
	v1 := app.Group("/api").Group("/v1")

	v1.Get("/health", health.Health)
	v1.Get("/ready", health.Ready)

	ag := v1.Group("/auth")
	ag.Post("/register", a.Register)
	ag.Post("/login", a.Login)

	v1.Get("/templates", h.Templates)

	v1.Get("/snapshots", authMW, h.ListSnapshots)
	v1.Get("/snapshots/:name", authMW, h.GetSnapshot)
	v1.Get("/backups", authMW, h.ListBackups)

	sg := v1.Group("/sessions", authMW)
	sg.Post("/", h.CreateSession)
	sg.Get("/:id", h.GetSession)
	sg.Delete("/:id", h.DeleteSession)
	sg.Put("/:id/step", h.Navigate)
	sg.Put("/:id/personal-info", h.SavePersonalInfo)
	sg.Post("/:id/skills/bulk", h.AddSkillsBulk)
	sg.Post("/:id/profile-picture", h.UploadProfilePicture)
	sg.Post("/:id/save", h.Save)
	sg.Post("/:id/restore", h.Restore)
	sg.Post("/:id/preview", h.Preview)
	sg.Post("/:id/export", h.Export)
	sg.Post("/:id/:section", h.AddEntry)
	sg.Delete("/:id/:section/:index", h.RemoveEntry)
}
