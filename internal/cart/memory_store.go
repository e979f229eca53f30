package cart

import (
	"context"
	"sync"
)

// MemoryStore is an in-process Store used by tests.
type MemoryStore struct {
	mu    sync.Mutex
	carts map[string]Cart
}

// NewMemoryStore builds an empty in-memory cart store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{carts: map[string]Cart{}}
}

func (s *MemoryStore) Get(ctx context.Context, token string) (*Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.carts[token]
	if !ok {
		return &Cart{}, nil
	}
	copied := Cart{Items: append([]Item(nil), stored.Items...)}
	return &copied, nil
}

func (s *MemoryStore) Save(ctx context.Context, token string, cart *Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cart == nil || cart.IsEmpty() {
		delete(s.carts, token)
		return nil
	}
	s.carts[token] = Cart{Items: append([]Item(nil), cart.Items...)}
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, token)
	return nil
}
