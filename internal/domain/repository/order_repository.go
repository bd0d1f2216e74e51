// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrOrderNotFound is returned when an order is not found.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository defines the operations for persisted order snapshots.
// Orders are immutable once created; there is no update operation.
type OrderRepository interface {
	// Create persists a new order snapshot including all of its lines.
	Create(ctx context.Context, order *entity.Order) error

	// FindByID retrieves a single order with its lines.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// ListByUserID retrieves all orders of a user, newest first.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
}
