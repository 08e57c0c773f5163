package service

import (
	"context"
)

// Event types published after checkout side effects.
const (
	EventTypeOrderCompleted = "order.completed"
	EventTypeLevelUp        = "loyalty.level_up"
)

// StoreEvent represents a storefront event for async consumers
// (analytics, fulfilment hooks, notification fan-out).
type StoreEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	Type      string `json:"type"`
	UserID    string `json:"user_id"`
	OrderID   string `json:"order_id,omitempty"`
	Amount    int64  `json:"amount,omitempty"`
	Level     int    `json:"level,omitempty"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishStoreEvent publishes a storefront event for async processing
	PublishStoreEvent(ctx context.Context, event *StoreEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
