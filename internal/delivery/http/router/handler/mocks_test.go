package handler

import (
	"context"
	"io"
	"log/slog"

	"storefront/internal/domain/entity"
	"storefront/internal/infra/metrics"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestMetrics builds unregistered counters so parallel tests never fight
// over the default Prometheus registry.
func newTestMetrics() *metrics.Metrics {
	return &metrics.Metrics{
		RegistrationsTotal: prometheus.NewCounter(prometheus.CounterOpts{Name: "test_registrations_total"}),
		LoginsTotal:        prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_logins_total"}, []string{"result"}),
		OrdersPlacedTotal:  prometheus.NewCounter(prometheus.CounterOpts{Name: "test_orders_placed_total"}),
		CartUpdatesTotal:   prometheus.NewCounterVec(prometheus.CounterOpts{Name: "test_cart_updates_total"}, []string{"operation"}),
	}
}

type mockUserUsecase struct {
	mock.Mock
}

func (m *mockUserUsecase) RegisterUser(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.RegisterOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.RegisterOutput), args.Error(1)
}

func (m *mockUserUsecase) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.LoginOutput), args.Error(1)
}

func (m *mockUserUsecase) RefreshToken(ctx context.Context, input *usecase.RefreshTokenInput) (*usecase.RefreshTokenOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.RefreshTokenOutput), args.Error(1)
}

func (m *mockUserUsecase) Logout(ctx context.Context, input *usecase.LogoutInput) error {
	args := m.Called(ctx, input)

	return args.Error(0)
}

func (m *mockUserUsecase) GetUser(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.User), args.Error(1)
}

type mockCartUsecase struct {
	mock.Mock
}

func (m *mockCartUsecase) GetCart(ctx context.Context, userID uuid.UUID) (*usecase.CartOutput, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.CartOutput), args.Error(1)
}

func (m *mockCartUsecase) AddItem(ctx context.Context, userID uuid.UUID, input *usecase.CartItemInput) (*usecase.CartOutput, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.CartOutput), args.Error(1)
}

func (m *mockCartUsecase) RemoveItem(ctx context.Context, userID uuid.UUID, input *usecase.CartItemInput) (*usecase.CartOutput, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.CartOutput), args.Error(1)
}

func (m *mockCartUsecase) DeleteItem(ctx context.Context, userID uuid.UUID, productID uuid.UUID) (*usecase.CartOutput, error) {
	args := m.Called(ctx, userID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.CartOutput), args.Error(1)
}

type mockOrderUsecase struct {
	mock.Mock
}

func (m *mockOrderUsecase) PlaceOrder(ctx context.Context, userID uuid.UUID, input *usecase.PlaceOrderInput) (*usecase.PlaceOrderOutput, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.PlaceOrderOutput), args.Error(1)
}

func (m *mockOrderUsecase) ListOrders(ctx context.Context, userID uuid.UUID) ([]*entity.Order, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]*entity.Order), args.Error(1)
}

func (m *mockOrderUsecase) GetOrder(ctx context.Context, userID, orderID uuid.UUID) (*entity.Order, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*entity.Order), args.Error(1)
}

func (m *mockOrderUsecase) GetOrderQR(ctx context.Context, userID, orderID uuid.UUID) ([]byte, error) {
	args := m.Called(ctx, userID, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]byte), args.Error(1)
}
