// Package handler contains the HTTP handlers for the application.
package handler

import (
	"time"

	"storefront/internal/domain/entity"
	"storefront/internal/usecase"
)

// userResponse is the client-facing projection of a user.
// The password hash never leaves the domain layer.
type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
}

func toUserResponse(user *entity.User) *userResponse {
	return &userResponse{
		ID:        user.ID.String(),
		Username:  user.Username,
		Email:     user.Email,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt,
	}
}

type productResponse struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	ImageURL    string  `json:"image_url,omitempty"`
	Stock       int     `json:"stock"`
}

func toProductResponse(product *entity.Product) *productResponse {
	return &productResponse{
		ID:          product.ID.String(),
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		ImageURL:    product.ImageURL,
		Stock:       product.Stock,
	}
}

func toProductListResponse(products []*entity.Product) []*productResponse {
	out := make([]*productResponse, 0, len(products))
	for _, product := range products {
		out = append(out, toProductResponse(product))
	}

	return out
}

type cartLineResponse struct {
	ProductID string           `json:"product_id"`
	Product   *productResponse `json:"product,omitempty"`
	Quantity  int              `json:"quantity"`
	Subtotal  float64          `json:"subtotal"`
}

type cartResponse struct {
	Lines []*cartLineResponse `json:"lines"`
	Total float64             `json:"total"`
}

func toCartResponse(cart *usecase.CartOutput) *cartResponse {
	lines := make([]*cartLineResponse, 0, len(cart.Lines))
	for _, line := range cart.Lines {
		lineResp := &cartLineResponse{
			ProductID: line.ProductID.String(),
			Quantity:  line.Quantity,
			Subtotal:  line.Subtotal(),
		}
		if line.Product != nil {
			lineResp.Product = toProductResponse(line.Product)
		}
		lines = append(lines, lineResp)
	}

	return &cartResponse{
		Lines: lines,
		Total: cart.Total,
	}
}

type orderLineResponse struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Subtotal float64 `json:"subtotal"`
}

type orderResponse struct {
	ID        string               `json:"id"`
	UserID    string               `json:"userId"`
	Products  []*orderLineResponse `json:"products"`
	Total     float64              `json:"total"`
	OrderDate time.Time            `json:"orderDate"`
}

func toOrderResponse(order *entity.Order) *orderResponse {
	products := make([]*orderLineResponse, 0, len(order.Lines))
	for _, line := range order.Lines {
		products = append(products, &orderLineResponse{
			Name:     line.Name,
			Quantity: line.Quantity,
			Price:    line.Price,
			Subtotal: line.Subtotal,
		})
	}

	return &orderResponse{
		ID:        order.ID.String(),
		UserID:    order.UserID.String(),
		Products:  products,
		Total:     order.Total,
		OrderDate: order.OrderDate,
	}
}

func toOrderListResponse(orders []*entity.Order) []*orderResponse {
	out := make([]*orderResponse, 0, len(orders))
	for _, order := range orders {
		out = append(out, toOrderResponse(order))
	}

	return out
}
