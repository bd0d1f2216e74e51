// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"errors"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrProductNotFound is returned when a catalog item is not found.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines read access to the product catalog.
type ProductRepository interface {
	// FindByID retrieves a single product by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)

	// List retrieves the whole catalog ordered by creation time.
	List(ctx context.Context) ([]*entity.Product, error)
}
