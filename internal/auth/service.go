// Package auth registers and signs in users and issues the bearer tokens
// that scope every stored resume artifact to one user id.
package auth

import (
	"context"
	"strings"
	"time"

	"resume-forge/internal/domain"
	"resume-forge/pkg/validator"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrWeakPassword       = errors.Errorf("password must be at least %d characters", MinPasswordLength)
)

const MinPasswordLength = 6

// UserRepository abstracts account persistence.
type UserRepository interface {
	Create(ctx context.Context, user domain.User) error
	GetByEmail(ctx context.Context, email string) (domain.User, error)
}

// TokenGenerator issues a bearer token for an authenticated user.
type TokenGenerator interface {
	Generate(ctx context.Context, user domain.User) (string, error)
}

type Result struct {
	User  domain.User `json:"user"`
	Token string      `json:"token"`
}

type Service struct {
	repo   UserRepository
	tokens TokenGenerator
	cost   int
}

func NewService(repo UserRepository, tokens TokenGenerator) *Service {
	return &Service{repo: repo, tokens: tokens, cost: bcrypt.DefaultCost}
}

// WithCost overrides the bcrypt cost; tests use bcrypt.MinCost.
func (s *Service) WithCost(cost int) *Service {
	s.cost = cost
	return s
}

func (s *Service) Register(ctx context.Context, email, password string) (Result, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !validator.Email(email) || password == "" {
		return Result{}, ErrInvalidCredentials
	}
	if len(password) < MinPasswordLength {
		return Result{}, ErrWeakPassword
	}
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Result{}, ErrUserAlreadyExists
	} else if !errors.Is(err, domain.ErrNotFound) {
		return Result{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return Result{}, errors.Wrap(err, "hash password")
	}
	user := domain.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return Result{}, err
	}
	return s.issue(ctx, user)
}

func (s *Service) Login(ctx context.Context, email, password string) (Result, error) {
	user, err := s.repo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return Result{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return Result{}, ErrInvalidCredentials
	}
	return s.issue(ctx, user)
}

func (s *Service) issue(ctx context.Context, user domain.User) (Result, error) {
	token, err := s.tokens.Generate(ctx, user)
	if err != nil {
		return Result{}, errors.Wrap(err, "issue token")
	}
	return Result{User: user, Token: token}, nil
}
