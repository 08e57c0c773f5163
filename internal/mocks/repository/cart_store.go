package repository

import (
	"storefront/internal/domain/entity"
	domainrepo "storefront/internal/domain/repository"
)

// InMemoryCartStore is a plain map-backed store for tests. Unlike the
// production store it is not safe for concurrent use.
type InMemoryCartStore struct {
	Carts map[string]*entity.Cart
}

// NewInMemoryCartStore creates an empty test cart store.
func NewInMemoryCartStore() *InMemoryCartStore {
	return &InMemoryCartStore{Carts: make(map[string]*entity.Cart)}
}

var _ domainrepo.CartStore = (*InMemoryCartStore)(nil)

func (s *InMemoryCartStore) Get(sessionKey string) *entity.Cart {
	if cart, ok := s.Carts[sessionKey]; ok {
		return cart
	}

	cart := entity.NewCart()
	s.Carts[sessionKey] = cart

	return cart
}

func (s *InMemoryCartStore) Save(sessionKey string, cart *entity.Cart) {
	s.Carts[sessionKey] = cart
}

func (s *InMemoryCartStore) Delete(sessionKey string) {
	delete(s.Carts, sessionKey)
}
