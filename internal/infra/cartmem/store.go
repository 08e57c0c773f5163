// Package cartmem keeps shopping carts in process memory. Carts are
// session-scoped and intentionally not persisted.
package cartmem

import (
	"sync"

	"storefront/internal/domain/entity"
	"storefront/internal/domain/repository"
)

// store is a concurrency-safe map of session key to cart.
type store struct {
	mu    sync.RWMutex
	carts map[string]*entity.Cart
}

// NewStore is the constructor for the in-memory cart store.
func NewStore() repository.CartStore {
	return &store{carts: make(map[string]*entity.Cart)}
}

// Get returns the cart for the session, creating an empty one if absent.
func (s *store) Get(sessionKey string) *entity.Cart {
	s.mu.RLock()
	cart, ok := s.carts[sessionKey]
	s.mu.RUnlock()
	if ok {
		return cart
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Re-check under the write lock; another goroutine may have created it.
	if cart, ok := s.carts[sessionKey]; ok {
		return cart
	}

	cart = entity.NewCart()
	s.carts[sessionKey] = cart

	return cart
}

// Save stores the cart for the session.
func (s *store) Save(sessionKey string, cart *entity.Cart) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[sessionKey] = cart
}

// Delete drops the session's cart.
func (s *store) Delete(sessionKey string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, sessionKey)
}
