// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// PlaceOrderInput carries the client's view of the order about to be placed.
// ClientTotal is the total the client displayed to the user; the server
// recomputes the real total from the cart and rejects a mismatch.
type PlaceOrderInput struct {
	ClientTotal float64
}

// PlaceOrderOutput returns the persisted order.
type PlaceOrderOutput struct {
	Order *entity.Order
}

// OrderUsecase defines order placement and retrieval operations.
type OrderUsecase interface {
	PlaceOrder(ctx context.Context, userID uuid.UUID, input *PlaceOrderInput) (*PlaceOrderOutput, error)
	ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error)
	GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error)
	// GetOrderQR renders a confirmation QR code (PNG) for one of the user's orders.
	GetOrderQR(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error)
}
