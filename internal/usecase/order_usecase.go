package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderUsecase defines order retrieval and lifecycle operations.
type OrderUsecase interface {
	// Get returns one order. Non-admin actors may only read their own.
	Get(ctx context.Context, actor Actor, orderID uuid.UUID) (*entity.Order, error)

	// ListMine returns the actor's orders, newest first.
	ListMine(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// ListAll returns every order, newest first. Admin only.
	ListAll(ctx context.Context) ([]*entity.Order, error)

	// UpdateStatus applies an admin status change, enforcing transition
	// legality. Moving to completed runs the full completion path.
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)

	// Cancel voids a not-yet-terminal order owned by the actor.
	Cancel(ctx context.Context, actor Actor, orderID uuid.UUID) (*entity.Order, error)

	// Complete finishes a paid order: status change, loyalty accrual,
	// library grant, receipt and events. Completing an already completed
	// order is a no-op.
	Complete(ctx context.Context, orderID uuid.UUID, requestID string) error

	// ReceiptQR renders the scannable receipt for an order the actor may read.
	ReceiptQR(ctx context.Context, actor Actor, orderID uuid.UUID) ([]byte, error)
}
