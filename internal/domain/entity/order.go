package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusPending means the order exists but payment is unconfirmed.
	OrderStatusPending OrderStatus = "pending"
	// OrderStatusProcessing means payment is underway at the processor.
	OrderStatusProcessing OrderStatus = "processing"
	// OrderStatusCompleted means payment confirmed, loyalty applied, items granted.
	OrderStatusCompleted OrderStatus = "completed"
	// OrderStatusCancelled means the order was explicitly voided.
	OrderStatusCancelled OrderStatus = "cancelled"
)

// String returns the string representation of the status.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid checks if the status is a known value.
func (s OrderStatus) IsValid() bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusCompleted, OrderStatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are permitted.
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

// CanTransitionTo enforces the legal edge set:
// pending → processing|completed|cancelled, processing → completed|cancelled.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusProcessing || next == OrderStatusCompleted || next == OrderStatusCancelled
	case OrderStatusProcessing:
		return next == OrderStatusCompleted || next == OrderStatusCancelled
	default:
		return false
	}
}

// OrderLine is an immutable snapshot of one purchased item, taken at
// purchase time so later catalog edits cannot change past orders.
type OrderLine struct {
	GameID    uuid.UUID
	Title     string
	UnitPrice int64
	Quantity  int
}

// Amount returns unit price times quantity for this line.
func (l OrderLine) Amount() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Order is a persisted purchase with its line snapshots and lifecycle state.
type Order struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Lines     []OrderLine
	Total     int64
	Status    OrderStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
