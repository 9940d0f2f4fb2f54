package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"
)

// Checker is one dependency probed by /ready.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

type checkFunc struct {
	name string
	fn   func(ctx context.Context) error
}

func (c checkFunc) Name() string                    { return c.name }
func (c checkFunc) Check(ctx context.Context) error { return c.fn(ctx) }

// NewCheck adapts a ping function, such as pgxpool.Pool.Ping, to a Checker.
func NewCheck(name string, fn func(ctx context.Context) error) Checker {
	return checkFunc{name: name, fn: fn}
}

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct {
	checkers []Checker
	timeout  time.Duration
}

func NewHealthHandler(checkers ...Checker) *HealthHandler {
	return &HealthHandler{checkers: checkers, timeout: time.Second}
}

func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return JSON(c, fiber.StatusOK, fiber.Map{"status": "ok"})
}

// Ready runs every checker and reports the first failure.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.timeout)
	defer cancel()
	for _, ch := range h.checkers {
		if err := ch.Check(ctx); err != nil {
			return JSON(c, fiber.StatusServiceUnavailable, fiber.Map{
				"status":  "not_ready",
				"details": errors.Wrap(err, ch.Name()).Error(),
			})
		}
	}
	return JSON(c, fiber.StatusOK, fiber.Map{"status": "ready"})
}
