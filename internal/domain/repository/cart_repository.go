// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrCartLineNotFound is returned when a product is not present in the user's cart.
var ErrCartLineNotFound = errors.New("cart line not found")

// CartRepository defines the operations on a user's embedded cart.
// Lines are unique per (user, product); quantity changes go through Update.
type CartRepository interface {
	// ListByUserID retrieves all cart lines of a user in insertion order,
	// with the product association populated.
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*entity.CartLine, error)

	// FindLine retrieves the cart line of a user for a specific product.
	FindLine(ctx context.Context, userID, productID uuid.UUID) (*entity.CartLine, error)

	// CreateLine inserts a new cart line. The (user, product) pair must not exist yet.
	CreateLine(ctx context.Context, line *entity.CartLine) error

	// UpdateLine persists a changed quantity for an existing line.
	UpdateLine(ctx context.Context, line *entity.CartLine) error

	// DeleteLine removes a single product from the user's cart.
	DeleteLine(ctx context.Context, userID, productID uuid.UUID) error

	// ClearByUserID removes every line of the user's cart.
	ClearByUserID(ctx context.Context, userID uuid.UUID) error
}
