// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

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

// totalTolerance absorbs float rounding between client and server totals.
const totalTolerance = 0.005

// orderService implements the OrderUsecase interface.
type orderService struct {
	txManager      repository.TransactionManager
	orderRepo      repository.OrderRepository
	eventPublisher service.EventPublisher
	qrcodeService  service.QRCodeService
	logger         *slog.Logger
}

// OrderServiceParams holds dependencies for OrderService, injected by Fx.
type OrderServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	OrderRepo      repository.OrderRepository
	EventPublisher service.EventPublisher `optional:"true"`
	QRCodeService  service.QRCodeService
	Logger         *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(params OrderServiceParams) usecase.OrderUsecase {
	return &orderService{
		txManager:      params.TxManager,
		orderRepo:      params.OrderRepo,
		eventPublisher: params.EventPublisher,
		qrcodeService:  params.QRCodeService,
		logger:         params.Logger,
	}
}

func (srv *orderService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// PlaceOrder snapshots the user's cart into an immutable order and empties the cart.
// Order creation and cart clearing share one transaction; a failure on either
// side leaves both untouched.
func (srv *orderService) PlaceOrder(ctx context.Context, userID uuid.UUID, input *usecase.PlaceOrderInput) (*usecase.PlaceOrderOutput, error) {
	srv.log(ctx).Info("Placing order", slog.Any("userID", userID))

	var placedOrder *entity.Order

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()
		cartRepo := repoFactory.CartRepo()
		orderRepo := repoFactory.OrderRepo()

		if _, err := userRepo.FindByID(ctx, userID); err != nil {
			if errors.Is(err, repository.ErrUserNotFound) {
				return domainerrors.ErrUnauthorized.WrapMessage("user not found")
			}

			return errors.Wrap(err, "failed to find user")
		}

		lines, err := cartRepo.ListByUserID(ctx, userID)
		if err != nil {
			return errors.Wrap(err, "failed to list cart lines")
		}
		if len(lines) == 0 {
			return domainerrors.ErrCartEmpty.WrapMessage("cannot place an order with an empty cart")
		}

		order, err := buildOrderFromCart(userID, lines)
		if err != nil {
			return err
		}

		// The client-displayed total must match what the cart actually costs.
		if math.Abs(order.Total-input.ClientTotal) > totalTolerance {
			return domainerrors.ErrTotalMismatch.
				WithDetails(fmt.Sprintf("submitted %.2f, computed %.2f", input.ClientTotal, order.Total)).
				WrapMessage("submitted total does not match the cart")
		}

		if err := orderRepo.Create(ctx, order); err != nil {
			return errors.Wrap(err, "failed to create order")
		}

		if err := cartRepo.ClearByUserID(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to clear cart after order")
		}

		placedOrder = order

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to place order", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute place order transaction")
	}

	srv.publishOrderPlaced(ctx, placedOrder)

	srv.log(ctx).Info("Order placed", slog.Any("userID", userID), slog.Any("orderID", placedOrder.ID), slog.Float64("total", placedOrder.Total))

	return &usecase.PlaceOrderOutput{Order: placedOrder}, nil
}

func buildOrderFromCart(userID uuid.UUID, lines []*entity.CartLine) (*entity.Order, error) {
	order := &entity.Order{
		UserID:    userID,
		OrderDate: time.Now(),
	}

	for _, line := range lines {
		if line.Product == nil {
			// A dangling cart line means the product was removed from the
			// catalog after it entered the cart.
			return nil, domainerrors.ErrProductNotFound.WrapMessage("a cart item no longer exists in the catalog")
		}

		orderLine := &entity.OrderLine{
			Name:     line.Product.Name,
			Quantity: line.Quantity,
			Price:    line.Product.Price,
			Subtotal: line.Subtotal(),
		}
		order.Lines = append(order.Lines, orderLine)
		order.Total += orderLine.Subtotal
	}

	return order, nil
}

// publishOrderPlaced emits the order.created event. Publishing is best-effort;
// the order is already committed and a broker hiccup must not fail the request.
func (srv *orderService) publishOrderPlaced(ctx context.Context, order *entity.Order) {
	if srv.eventPublisher == nil {
		return
	}

	event := &service.OrderEvent{
		RequestID: deliverycontext.GetRequestIDFromContext(ctx),
		OrderID:   order.ID.String(),
		UserID:    order.UserID.String(),
		Total:     order.Total,
		ItemCount: len(order.Lines),
		OrderDate: order.OrderDate.Format(time.RFC3339),
	}

	if err := srv.eventPublisher.PublishOrderEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish order event", slog.Any("orderID", order.ID), slog.Any("error", err))
	}
}

// ListOrders returns the user's order history, newest first.
func (srv *orderService) ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	srv.log(ctx).Debug("Listing orders", slog.Any("userID", userID))

	orders, err := srv.orderRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// GetOrder returns one of the user's orders.
func (srv *orderService) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	order, err := srv.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, domainerrors.ErrOrderNotFound.WrapMessage("order not found")
		}

		return nil, errors.Wrap(err, "failed to find order by id")
	}

	// Report someone else's order as missing rather than forbidden.
	if order.UserID != userID {
		return nil, domainerrors.ErrOrderNotFound.WrapMessage("order not found")
	}

	return order, nil
}

// GetOrderQR renders a confirmation QR code for one of the user's orders.
func (srv *orderService) GetOrderQR(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error) {
	order, err := srv.GetOrder(ctx, userID, orderID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrcodeService.GenerateOrderQR(order.ID, order.Total)
	if err != nil {
		srv.log(ctx).Error("Failed to generate order QR code", slog.Any("orderID", order.ID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate order QR code")
	}

	return png, nil
}
