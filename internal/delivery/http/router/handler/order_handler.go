package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/response"
	"storefront/internal/infra/metrics"
	"storefront/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// OrderHandler exposes order placement and history endpoints.
type OrderHandler struct {
	uc      usecase.OrderUsecase
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewOrderHandler is the constructor for OrderHandler, injected by Fx.
func NewOrderHandler(uc usecase.OrderUsecase, m *metrics.Metrics, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		uc:      uc,
		metrics: m,
		logger:  logger,
	}
}

type placeOrderRequest struct {
	Cart  json.RawMessage `json:"cart"`
	Total float64         `json:"total" validate:"required,gt=0"`
}

// CreateOrder snapshots the caller's cart into an order and clears the cart.
// The stored cart is authoritative for the snapshot; the submitted cart field
// must still be a non-empty list for the request to be well formed.
func (h *OrderHandler) CreateOrder(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	var req placeOrderRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid order input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if !isNonEmptyJSONList(req.Cart) {
		return response.BadRequest(c, "INVALID_INPUT", "Cart must be a non-empty list")
	}

	output, err := h.uc.PlaceOrder(c.Request().Context(), userID, &usecase.PlaceOrderInput{
		ClientTotal: req.Total,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	h.metrics.OrdersPlacedTotal.Inc()

	return response.Success(c, http.StatusOK, toOrderResponse(output.Order), "Order placed successfully")
}

func isNonEmptyJSONList(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return false
	}

	return len(items) > 0
}

// ListOrders returns the caller's order history, newest first.
func (h *OrderHandler) ListOrders(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	orders, err := h.uc.ListOrders(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderListResponse(orders), "Orders retrieved successfully")
}

// GetOrder returns one of the caller's orders.
func (h *OrderHandler) GetOrder(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	order, err := h.uc.GetOrder(c.Request().Context(), userID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toOrderResponse(order), "Order retrieved successfully")
}

// GetOrderQR renders the confirmation QR code for one of the caller's orders.
func (h *OrderHandler) GetOrderQR(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid order ID")
	}

	png, err := h.uc.GetOrderQR(c.Request().Context(), userID, orderID)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
