package store

import (
	"context"
	"sync"

	"golang.org/x/oauth2"
)

type memoryStore struct {
	mu    sync.RWMutex
	token *oauth2.Token
}

func (m *memoryStore) LookupToken(_ context.Context) (*oauth2.Token, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return copyToken(m.token), nil
}

func (m *memoryStore) AddToken(_ context.Context, token *oauth2.Token) error {
	if err := validate(token); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = copyToken(token)
	return nil
}

func (m *memoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = nil
	return nil
}

// NewMemoryStore returns a process-local store.
func NewMemoryStore() Store {
	return &memoryStore{}
}
