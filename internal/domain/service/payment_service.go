package service

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CheckoutSessionInput carries everything the payment processor needs to
// open a hosted checkout session for an already-created order.
type CheckoutSessionInput struct {
	OrderID uuid.UUID
	UserID  uuid.UUID
	Lines   []entity.OrderLine
	// ImageURLs parallel to Lines, used by the hosted checkout page.
	ImageURLs []string
	Total     int64
}

// CheckoutSession identifies a hosted checkout in progress at the processor.
type CheckoutSession struct {
	ID string
}

// PaymentConfirmation reports the processor's verdict for a session.
type PaymentConfirmation struct {
	SessionID string
	OrderID   uuid.UUID
	Paid      bool
}

// PaymentService abstracts the payment collaborator. Two variants exist:
// a hosted checkout redirect flow and an embedded simulated confirmation.
type PaymentService interface {
	// CreateCheckoutSession opens a session at the processor and returns
	// its redirect identifier.
	CreateCheckoutSession(ctx context.Context, input CheckoutSessionInput) (*CheckoutSession, error)

	// ConfirmSession verifies whether the given session has been paid and
	// returns the order it belongs to.
	ConfirmSession(ctx context.Context, sessionID string) (*PaymentConfirmation, error)
}
