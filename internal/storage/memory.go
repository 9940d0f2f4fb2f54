package storage

import (
	"context"
	"sync"

	"resume-forge/internal/model"
)

// MemoryDocuments is an in-process DocumentStore.
type MemoryDocuments struct {
	mu   sync.Mutex
	docs map[string]model.Document
}

func NewMemoryDocuments() *MemoryDocuments {
	return &MemoryDocuments{docs: map[string]model.Document{}}
}

func (m *MemoryDocuments) Get(_ context.Context, key string) (model.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	doc, ok := m.docs[key]
	if !ok {
		return model.Document{}, ErrNotFound
	}
	return doc.Clone(), nil
}

func (m *MemoryDocuments) Set(_ context.Context, key string, doc model.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[key] = doc.Clone()
	return nil
}
