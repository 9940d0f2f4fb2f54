// Package session keeps wizard sessions between requests.
package session

import (
	"context"
	"sync"

	"resume-forge/internal/domain"

	"github.com/google/uuid"
)

// Store persists sessions by id. Get returns domain.ErrNotFound for unknown
// or expired ids.
type Store interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Session, error)
	Put(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type Memory struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]domain.Session
}

func NewMemory() *Memory {
	return &Memory{sessions: map[uuid.UUID]domain.Session{}}
}

func (m *Memory) Get(_ context.Context, id uuid.UUID) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	s.Document = s.Document.Clone()
	return &s, nil
}

func (m *Memory) Put(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *s
	cp.Document = s.Document.Clone()
	m.sessions[s.ID] = cp
	return nil
}

func (m *Memory) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
