package handler

import (
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

// CartHandler exposes the per-user cart endpoints.
type CartHandler struct {
	uc      usecase.CartUsecase
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// NewCartHandler is the constructor for CartHandler, injected by Fx.
func NewCartHandler(uc usecase.CartUsecase, m *metrics.Metrics, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		uc:      uc,
		metrics: m,
		logger:  logger,
	}
}

type cartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"`
}

// GetCart returns the caller's current cart with the server-computed total.
func (h *CartHandler) GetCart(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	cart, err := h.uc.GetCart(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCartResponse(cart), "Cart retrieved successfully")
}

// AddToCart adds a product to the cart or increments its quantity.
func (h *CartHandler) AddToCart(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	input, err := h.bindCartItem(c)
	if err != nil {
		return err
	}

	cart, err := h.uc.AddItem(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.metrics.CartUpdatesTotal.WithLabelValues("add").Inc()

	return response.Success(c, http.StatusOK, toCartResponse(cart), "Item added to cart")
}

// RemoveFromCart decrements a line's quantity, dropping the line at zero.
func (h *CartHandler) RemoveFromCart(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	input, err := h.bindCartItem(c)
	if err != nil {
		return err
	}

	cart, err := h.uc.RemoveItem(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	h.metrics.CartUpdatesTotal.WithLabelValues("remove").Inc()

	return response.Success(c, http.StatusOK, toCartResponse(cart), "Item removed from cart")
}

// DeleteFromCart drops a whole line regardless of its quantity.
func (h *CartHandler) DeleteFromCart(c echo.Context) error {
	userID, ok := c.Get(middleware.ContextKeyUserID).(uuid.UUID)
	if !ok {
		return response.Unauthorized(c, "UNAUTHORIZED", "Invalid user ID in token")
	}

	input, err := h.bindCartItem(c)
	if err != nil {
		return err
	}

	cart, err := h.uc.DeleteItem(c.Request().Context(), userID, input.ProductID)
	if err != nil {
		return errors.WithStack(err)
	}

	h.metrics.CartUpdatesTotal.WithLabelValues("delete").Inc()

	return response.Success(c, http.StatusOK, toCartResponse(cart), "Item deleted from cart")
}

func (h *CartHandler) bindCartItem(c echo.Context) (*usecase.CartItemInput, error) {
	var req cartItemRequest
	if err := c.Bind(&req); err != nil {
		return nil, response.BindingError(c, "INVALID_INPUT", "Invalid cart input")
	}
	if err := c.Validate(&req); err != nil {
		return nil, err
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, response.BadRequest(c, "INVALID_INPUT", "Invalid product ID")
	}

	return &usecase.CartItemInput{
		ProductID: productID,
		Quantity:  req.Quantity,
	}, nil
}
