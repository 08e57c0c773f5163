package repository

import "storefront/internal/domain/entity"

// CartStore keeps session-scoped shopping carts. Carts are ephemeral by
// design: they live only as long as the process and are keyed by the
// authenticated user ID or an anonymous session key.
type CartStore interface {
	// Get returns the cart for the session, creating an empty one if absent.
	Get(sessionKey string) *entity.Cart

	// Save stores the cart for the session.
	Save(sessionKey string, cart *entity.Cart)

	// Delete drops the session's cart.
	Delete(sessionKey string)
}
