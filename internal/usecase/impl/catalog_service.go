// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// catalogService implements the CatalogUsecase interface.
// Reads go through the product cache when one is configured.
type catalogService struct {
	productRepo  repository.ProductRepository
	productCache service.ProductCache
	logger       *slog.Logger
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In

	ProductRepo  repository.ProductRepository
	ProductCache service.ProductCache `optional:"true"`
	Logger       *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	return &catalogService{
		productRepo:  params.ProductRepo,
		productCache: params.ProductCache,
		logger:       params.Logger,
	}
}

func (srv *catalogService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListProducts returns the full catalog, preferring the cache.
func (srv *catalogService) ListProducts(ctx context.Context) ([]*entity.Product, error) {
	if srv.productCache != nil {
		products, err := srv.productCache.GetProductList(ctx)
		if err == nil {
			return products, nil
		}
		if !errors.Is(err, service.ErrCacheMiss) {
			// A broken cache must not take the catalog down with it.
			srv.log(ctx).Warn("Product list cache read failed", slog.Any("error", err))
		}
	}

	products, err := srv.productRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list products")
	}

	if srv.productCache != nil {
		if err := srv.productCache.SetProductList(ctx, products); err != nil {
			srv.log(ctx).Warn("Product list cache write failed", slog.Any("error", err))
		}
	}

	return products, nil
}

// GetProduct returns a single product, preferring the cache.
func (srv *catalogService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	if srv.productCache != nil {
		product, err := srv.productCache.GetProduct(ctx, productID)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, service.ErrCacheMiss) {
			srv.log(ctx).Warn("Product cache read failed", slog.Any("productID", productID), slog.Any("error", err))
		}
	}

	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, domainerrors.ErrProductNotFound.WrapMessage("product not found")
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	if srv.productCache != nil {
		if err := srv.productCache.SetProduct(ctx, product); err != nil {
			srv.log(ctx).Warn("Product cache write failed", slog.Any("productID", productID), slog.Any("error", err))
		}
	}

	return product, nil
}
