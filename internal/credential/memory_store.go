package credential

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store. Nothing survives a restart.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
	saved bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns the saved key.
func (s *MemoryStore) Load(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.saved {
		return "", ErrNoCredential
	}
	return s.token, nil
}

// Save replaces the saved key.
func (s *MemoryStore) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = token
	s.saved = true
	return nil
}

// Delete removes the saved key.
func (s *MemoryStore) Delete(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	s.saved = false
	return nil
}
