package http

import (
	"strings"

	"resume-forge/internal/auth"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	svc *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{svc: svc}
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid JSON payload")
	}
	if strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return Error(c, fiber.StatusBadRequest, "email and password are required")
	}
	result, err := h.svc.Register(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return Fail(c, err)
	}
	return JSON(c, fiber.StatusCreated, result)
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req credentials
	if err := c.BodyParser(&req); err != nil {
		return Error(c, fiber.StatusBadRequest, "invalid JSON payload")
	}
	result, err := h.svc.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return Fail(c, err)
	}
	return JSON(c, fiber.StatusOK, result)
}
