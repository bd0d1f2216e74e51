package service

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrCacheMiss is returned when the requested entry is not in the cache.
var ErrCacheMiss = errors.New("cache miss")

// ProductCache is a read-through cache over the product catalog.
// Misses return ErrCacheMiss; callers treat any cache failure as a miss
// and fall back to the repository.
type ProductCache interface {
	GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error)
	SetProduct(ctx context.Context, product *entity.Product) error
	GetProductList(ctx context.Context) ([]*entity.Product, error)
	SetProductList(ctx context.Context, products []*entity.Product) error
	InvalidateProduct(ctx context.Context, productID uuid.UUID) error
}
