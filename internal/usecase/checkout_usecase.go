package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CheckoutInput identifies the buyer and the cart session to check out.
type CheckoutInput struct {
	UserID     uuid.UUID
	SessionKey string
	RequestID  string
}

// CheckoutOutput reports the completed purchase.
type CheckoutOutput struct {
	Order     *entity.Order
	Totals    entity.CheckoutTotals
	LeveledUp bool
}

// CheckoutSessionOutput carries the processor session for the hosted flow.
type CheckoutSessionOutput struct {
	SessionID string
	OrderID   uuid.UUID
}

// CheckoutUsecase orchestrates the purchase pipeline: preconditions,
// pricing, order creation, payment, completion and side effects. At most
// one checkout per user runs at a time.
type CheckoutUsecase interface {
	// Checkout runs the embedded flow: the payment is confirmed inline and
	// the order completes before the call returns.
	Checkout(ctx context.Context, input CheckoutInput) (*CheckoutOutput, error)

	// CreateSession runs the hosted flow: a pending order is created, the
	// processor session is opened, and the order moves to processing.
	// Completion happens later through ConfirmSession.
	CreateSession(ctx context.Context, input CheckoutInput) (*CheckoutSessionOutput, error)

	// ConfirmSession asks the processor whether the session was paid and,
	// if so, completes the order and clears the buyer's cart.
	ConfirmSession(ctx context.Context, input CheckoutInput, sessionID string) (*CheckoutOutput, error)
}
