package auth

import (
	"context"
	"strings"
	"time"

	"resume-forge/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// LocalUserID is the fiber local holding the authenticated user id.
const LocalUserID = "userId"

type JWTGenerator struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewJWTGenerator(secret, issuer string, ttl time.Duration) *JWTGenerator {
	return &JWTGenerator{secret: []byte(secret), issuer: issuer, ttl: ttl}
}

func (g *JWTGenerator) Generate(_ context.Context, user domain.User) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    g.issuer,
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(g.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(g.secret)
}

// Middleware validates a Bearer HS256 token and stores its subject under
// LocalUserID.
func Middleware(secret, issuer string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
		if header == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "missing Authorization header"})
		}
		tokenStr := header
		if scheme, rest, ok := strings.Cut(header, " "); ok && strings.EqualFold(scheme, "Bearer") {
			tokenStr = strings.TrimSpace(rest)
		}

		claims := &jwt.RegisteredClaims{}
		token, err := jwt.ParseWithClaims(tokenStr, claims, func(t *jwt.Token) (any, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		if issuer != "" && claims.Issuer != issuer {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token issuer"})
		}
		if _, err := uuid.Parse(claims.Subject); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token subject"})
		}
		c.Locals(LocalUserID, claims.Subject)
		return c.Next()
	}
}

// UserID returns the authenticated user id set by Middleware.
func UserID(c *fiber.Ctx) (uuid.UUID, bool) {
	s, ok := c.Locals(LocalUserID).(string)
	if !ok {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
