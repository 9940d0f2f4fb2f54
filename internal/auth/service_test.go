package auth

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"resume-forge/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestService() *Service {
	return NewService(NewMemoryUsers(), NewJWTGenerator("secret", "resume-forge", time.Hour)).WithCost(bcrypt.MinCost)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	reg, err := svc.Register(ctx, "Jane@X.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, "jane@x.com", reg.User.Email)
	assert.NotEmpty(t, reg.Token)
	assert.NotEqual(t, "hunter22", reg.User.PasswordHash)

	login, err := svc.Login(ctx, "jane@x.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, login.User.ID)
}

func TestRegisterDuplicate(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Register(ctx, "jane@x.com", "secret1")
	require.NoError(t, err)
	_, err = svc.Register(ctx, "JANE@x.com", "secret1")
	assert.True(t, errors.Is(err, ErrUserAlreadyExists))
}

func TestRegisterRejectsBlank(t *testing.T) {
	_, err := newTestService().Register(context.Background(), " ", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = newTestService().Register(context.Background(), "jane@", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterRejectsShortPassword(t *testing.T) {
	_, err := newTestService().Register(context.Background(), "jane@x.com", "12345")
	assert.ErrorIs(t, err, ErrWeakPassword)
	_, err = newTestService().Register(context.Background(), "jane@x.com", "123456")
	assert.NoError(t, err)
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()
	_, err := svc.Register(ctx, "jane@x.com", "right-password")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "jane@x.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = svc.Login(ctx, "nobody@x.com", "right-password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestMiddleware(t *testing.T) {
	gen := NewJWTGenerator("secret", "resume-forge", time.Hour)
	user := domain.User{ID: uuid.New()}
	token, err := gen.Generate(context.Background(), user)
	require.NoError(t, err)

	app := fiber.New()
	app.Get("/me", Middleware("secret", "resume-forge"), func(c *fiber.Ctx) error {
		id, ok := UserID(c)
		if !ok {
			return c.SendStatus(fiber.StatusInternalServerError)
		}
		return c.SendString(id.String())
	})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"bearer", "Bearer " + token, fiber.StatusOK},
		{"bare token", token, fiber.StatusOK},
		{"missing", "", fiber.StatusUnauthorized},
		{"garbage", "Bearer abc.def.ghi", fiber.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
		})
	}

	other, err := NewJWTGenerator("other", "resume-forge", time.Hour).Generate(context.Background(), user)
	require.NoError(t, err)
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+other)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
