package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CartLineView is one cart line flattened for presentation.
type CartLineView struct {
	Game     *entity.Game
	Quantity int
	Amount   int64
}

// CartOutput is the cart contents plus the running totals. Totals include
// the member discount only when the session belongs to a signed-in user.
type CartOutput struct {
	Lines  []CartLineView
	Totals entity.CheckoutTotals
}

// CartUsecase defines the operations on a session-scoped shopping cart.
// The session key is the authenticated user ID or an anonymous session
// identifier; carts never survive a restart.
type CartUsecase interface {
	// View returns the cart contents and totals for the session.
	View(ctx context.Context, sessionKey string, authenticated bool) (*CartOutput, error)

	// Add puts one more copy of the game into the cart, merging lines.
	Add(ctx context.Context, sessionKey string, gameID uuid.UUID, authenticated bool) (*CartOutput, error)

	// Remove drops the game's line entirely. Absent games are a no-op.
	Remove(ctx context.Context, sessionKey string, gameID uuid.UUID, authenticated bool) (*CartOutput, error)

	// UpdateQuantity sets the line quantity exactly; zero or less removes it.
	UpdateQuantity(ctx context.Context, sessionKey string, gameID uuid.UUID, quantity int, authenticated bool) (*CartOutput, error)

	// Clear empties the cart.
	Clear(ctx context.Context, sessionKey string) error
}
