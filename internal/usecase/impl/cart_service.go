// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "storefront/internal/delivery/context"
	"storefront/internal/domain/entity"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/repository"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// cartService implements the CartUsecase interface.
type cartService struct {
	txManager repository.TransactionManager
	cartRepo  repository.CartRepository
	logger    *slog.Logger
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	CartRepo  repository.CartRepository
	Logger    *slog.Logger
}

// NewCartService is the constructor for cartService.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	return &cartService{
		txManager: params.TxManager,
		cartRepo:  params.CartRepo,
		logger:    params.Logger,
	}
}

func (srv *cartService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// GetCart returns the user's cart lines with product details and the computed total.
func (srv *cartService) GetCart(ctx context.Context, userID uuid.UUID) (*usecase.CartOutput, error) {
	srv.log(ctx).Debug("Getting cart", slog.Any("userID", userID))

	lines, err := srv.cartRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list cart lines")
	}

	return cartOutputFromLines(lines), nil
}

// AddItem adds a product to the cart, or increments the quantity of an existing line.
func (srv *cartService) AddItem(ctx context.Context, userID uuid.UUID, input *usecase.CartItemInput) (*usecase.CartOutput, error) {
	srv.log(ctx).Debug("Adding cart item", slog.Any("userID", userID), slog.Any("productID", input.ProductID), slog.Int("quantity", input.Quantity))

	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()
		productRepo := repoFactory.ProductRepo()

		// The product must exist before it can enter a cart.
		if _, err := productRepo.FindByID(ctx, input.ProductID); err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return domainerrors.ErrProductNotFound.WrapMessage("product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		line, err := cartRepo.FindLine(ctx, userID, input.ProductID)
		if errors.Is(err, repository.ErrCartLineNotFound) {
			newLine := &entity.CartLine{
				UserID:    userID,
				ProductID: input.ProductID,
				Quantity:  quantity,
			}

			return errors.Wrap(cartRepo.CreateLine(ctx, newLine), "failed to create cart line")
		}
		if err != nil {
			return errors.Wrap(err, "failed to find cart line")
		}

		line.Quantity += quantity

		return errors.Wrap(cartRepo.UpdateLine(ctx, line), "failed to update cart line")
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to add cart item", slog.Any("userID", userID), slog.Any("productID", input.ProductID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute add item transaction")
	}

	return srv.GetCart(ctx, userID)
}

// RemoveItem decrements the quantity of a cart line.
// The line is dropped once its quantity reaches zero.
func (srv *cartService) RemoveItem(ctx context.Context, userID uuid.UUID, input *usecase.CartItemInput) (*usecase.CartOutput, error) {
	srv.log(ctx).Debug("Removing cart item", slog.Any("userID", userID), slog.Any("productID", input.ProductID), slog.Int("quantity", input.Quantity))

	quantity := input.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		cartRepo := repoFactory.CartRepo()

		line, err := cartRepo.FindLine(ctx, userID, input.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrCartLineNotFound) {
				return domainerrors.ErrCartLineNotFound.WrapMessage("product is not in the cart")
			}

			return errors.Wrap(err, "failed to find cart line")
		}

		line.Quantity -= quantity
		if line.Quantity <= 0 {
			return errors.Wrap(cartRepo.DeleteLine(ctx, userID, input.ProductID), "failed to delete cart line")
		}

		return errors.Wrap(cartRepo.UpdateLine(ctx, line), "failed to update cart line")
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to remove cart item", slog.Any("userID", userID), slog.Any("productID", input.ProductID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute remove item transaction")
	}

	return srv.GetCart(ctx, userID)
}

// DeleteItem removes a cart line entirely, regardless of its quantity.
func (srv *cartService) DeleteItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*usecase.CartOutput, error) {
	srv.log(ctx).Debug("Deleting cart item", slog.Any("userID", userID), slog.Any("productID", productID))

	if err := srv.cartRepo.DeleteLine(ctx, userID, productID); err != nil {
		if errors.Is(err, repository.ErrCartLineNotFound) {
			return nil, domainerrors.ErrCartLineNotFound.WrapMessage("product is not in the cart")
		}
		srv.log(ctx).Warn("Failed to delete cart item", slog.Any("userID", userID), slog.Any("productID", productID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to delete cart line")
	}

	return srv.GetCart(ctx, userID)
}

func cartOutputFromLines(lines []*entity.CartLine) *usecase.CartOutput {
	output := &usecase.CartOutput{Lines: lines}
	for _, line := range lines {
		output.Total += line.Subtotal()
	}

	return output
}
