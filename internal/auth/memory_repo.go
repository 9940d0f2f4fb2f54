package auth

import (
	"context"
	"strings"
	"sync"

	"resume-forge/internal/domain"
)

// MemoryUsers keeps accounts in process memory. Used when no identity
// database is configured and in tests.
type MemoryUsers struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func NewMemoryUsers() *MemoryUsers {
	return &MemoryUsers{users: map[string]domain.User{}}
}

func (m *MemoryUsers) Create(_ context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := strings.ToLower(user.Email)
	if _, ok := m.users[key]; ok {
		return ErrUserAlreadyExists
	}
	m.users[key] = user
	return nil
}

func (m *MemoryUsers) GetByEmail(_ context.Context, email string) (domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[strings.ToLower(email)]
	if !ok {
		return domain.User{}, domain.ErrNotFound
	}
	return user, nil
}
