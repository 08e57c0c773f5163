package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order does not exist.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines persistence operations for orders and their
// line snapshots.
type OrderRepository interface {
	// Create persists a new order with its snapshotted lines.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order including line snapshots.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByUser returns all orders for a user, newest first, including
	// line snapshots.
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)

	// ListAll returns every order, newest first. Admin only.
	ListAll(ctx context.Context) ([]*entity.Order, error)

	// UpdateStatus persists a status change. Line snapshots stay immutable.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) error
}
