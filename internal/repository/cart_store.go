package repository

import (
	"context"
	"sync"

	"github.com/shopora/shopora/internal/domain/cart"
)

// InMemoryCartStore implements cart.Store, keyed by session. A missing
// session yields an empty cart rather than an error: the first write
// creates it.
type InMemoryCartStore struct {
	mu    sync.RWMutex
	carts map[string]cart.CartState
}

// NewInMemoryCartStore creates a new in-memory cart store
func NewInMemoryCartStore() *InMemoryCartStore {
	return &InMemoryCartStore{
		carts: make(map[string]cart.CartState),
	}
}

func (s *InMemoryCartStore) Get(ctx context.Context, sessionKey string) (cart.CartState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if state, exists := s.carts[sessionKey]; exists {
		return state.Clone(), nil
	}
	return cart.CartState{}, nil
}

func (s *InMemoryCartStore) Set(ctx context.Context, sessionKey string, state cart.CartState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionKey] = state.Clone()
	return nil
}

func (s *InMemoryCartStore) Delete(ctx context.Context, sessionKey string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionKey)
	return nil
}

// Clear removes all carts
func (s *InMemoryCartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts = make(map[string]cart.CartState)
}
