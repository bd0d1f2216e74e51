// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// CartItemInput identifies a product and the quantity the client wants in the cart.
type CartItemInput struct {
	ProductID uuid.UUID
	Quantity  int
}

// CartOutput returns the reconciled cart lines and the server-computed total.
type CartOutput struct {
	Lines []*entity.CartLine
	Total float64
}

// CartUsecase defines the per-user cart operations.
// AddItem increments quantity for an existing line; RemoveItem decrements
// and drops the line once the quantity reaches zero; DeleteItem drops the
// line regardless of quantity.
type CartUsecase interface {
	GetCart(ctx context.Context, userID uuid.UUID) (*CartOutput, error)
	AddItem(ctx context.Context, userID uuid.UUID, input *CartItemInput) (*CartOutput, error)
	RemoveItem(ctx context.Context, userID uuid.UUID, input *CartItemInput) (*CartOutput, error)
	DeleteItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*CartOutput, error)
}
