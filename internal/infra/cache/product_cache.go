package cache

import (
	"context"
	"encoding/json"
	"time"

	"storefront/config"
	"storefront/internal/domain/entity"
	"storefront/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

const (
	productKeyPrefix  = "product:"
	productListKey    = "products:all"
	defaultProductTTL = 5 * time.Minute
)

// productCache implements service.ProductCache on top of Redis.
type productCache struct {
	client *redis.Client
	ttl    time.Duration
}

// ProductCacheParams holds dependencies for the product cache, injected by Fx
type ProductCacheParams struct {
	fx.In

	Client *redis.Client `optional:"true"`
	Config *config.Config
}

// NewProductCache creates a product cache backed by the shared Redis client.
// Returns nil when no client is available; the catalog treats a nil cache as
// always missing.
func NewProductCache(params ProductCacheParams) service.ProductCache {
	if params.Client == nil {
		return nil
	}

	ttl := defaultProductTTL
	if params.Config.Redis != nil && params.Config.Redis.ProductTTL > 0 {
		ttl = params.Config.Redis.ProductTTL
	}

	return &productCache{
		client: params.Client,
		ttl:    ttl,
	}
}

func (c *productCache) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	val, err := c.client.Get(ctx, productKeyPrefix+productID.String()).Result()
	if errors.Is(err, redis.Nil) {
		return nil, service.ErrCacheMiss
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read product from cache")
	}

	var product entity.Product
	if err := json.Unmarshal([]byte(val), &product); err != nil {
		return nil, errors.Wrap(err, "failed to decode cached product")
	}

	return &product, nil
}

func (c *productCache) SetProduct(ctx context.Context, product *entity.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return errors.Wrap(err, "failed to encode product for cache")
	}

	err = c.client.Set(ctx, productKeyPrefix+product.ID.String(), data, c.ttl).Err()

	return errors.Wrap(err, "failed to write product to cache")
}

func (c *productCache) GetProductList(ctx context.Context) ([]*entity.Product, error) {
	val, err := c.client.Get(ctx, productListKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, service.ErrCacheMiss
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read product list from cache")
	}

	var products []*entity.Product
	if err := json.Unmarshal([]byte(val), &products); err != nil {
		return nil, errors.Wrap(err, "failed to decode cached product list")
	}

	return products, nil
}

func (c *productCache) SetProductList(ctx context.Context, products []*entity.Product) error {
	data, err := json.Marshal(products)
	if err != nil {
		return errors.Wrap(err, "failed to encode product list for cache")
	}

	err = c.client.Set(ctx, productListKey, data, c.ttl).Err()

	return errors.Wrap(err, "failed to write product list to cache")
}

func (c *productCache) InvalidateProduct(ctx context.Context, productID uuid.UUID) error {
	err := c.client.Del(ctx, productKeyPrefix+productID.String(), productListKey).Err()

	return errors.Wrap(err, "failed to invalidate cached product")
}
