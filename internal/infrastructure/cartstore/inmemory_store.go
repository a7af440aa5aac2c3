package cartstore

import (
	"context"
	"sync"

	"github.com/zaylo/backend/internal/domain/cart"
)

// InMemoryStore keeps cart IDs in process memory. For tests and
// single-instance development setups.
type InMemoryStore struct {
	mu  sync.RWMutex
	ids map[string]string
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{ids: make(map[string]string)}
}

// Load returns the cart ID for a session, "" when absent.
func (s *InMemoryStore) Load(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ids[key], nil
}

// Save persists the cart ID for a session.
func (s *InMemoryStore) Save(_ context.Context, key, cartID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids[key] = cartID
	return nil
}

// Ensure InMemoryStore implements cart.IDStore
var _ cart.IDStore = (*InMemoryStore)(nil)
