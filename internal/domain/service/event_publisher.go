// Package service defines interfaces for core, stateless domain logic.
package service

import (
	"context"
)

// OrderEvent is the message emitted after an order snapshot has been durably
// persisted, for downstream consumers such as fulfillment or analytics.
type OrderEvent struct {
	RequestID string  `json:"request_id,omitempty"` // For distributed tracing
	OrderID   string  `json:"order_id"`
	UserID    string  `json:"user_id"`
	Total     float64 `json:"total"`
	ItemCount int     `json:"item_count"`
	OrderDate string  `json:"order_date"` // RFC 3339
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order-created event for async processing
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
