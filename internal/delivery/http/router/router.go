// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/infra/metrics"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds all handlers and middleware the router wires up.
type RouterParams struct {
	fx.In

	UserHandler         *handler.UserHandler
	SessionHandler      *handler.SessionHandler
	ProductHandler      *handler.ProductHandler
	CartHandler         *handler.CartHandler
	OrderHandler        *handler.OrderHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	userHandler         *handler.UserHandler
	sessionHandler      *handler.SessionHandler
	productHandler      *handler.ProductHandler
	cartHandler         *handler.CartHandler
	orderHandler        *handler.OrderHandler
	authMiddleware      *middleware.AuthMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		userHandler:         params.UserHandler,
		sessionHandler:      params.SessionHandler,
		productHandler:      params.ProductHandler,
		cartHandler:         params.CartHandler,
		orderHandler:        params.OrderHandler,
		authMiddleware:      params.AuthMiddleware,
		rateLimitMiddleware: params.RateLimitMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Operational endpoints
	e.GET("/health", handler.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	// User routes. Registration and login are public; the rest ride on the
	// access token.
	userGroup := e.Group("/user")
	{
		userGroup.POST("/create", r.userHandler.RegisterUser)
		userGroup.POST("/login", r.userHandler.Login, r.rateLimitMiddleware.Limit)
		userGroup.POST("/refresh", r.userHandler.RefreshToken)
		userGroup.GET("/logout", r.userHandler.Logout)

		authed := userGroup.Group("", r.authMiddleware.Authenticate)
		authed.GET("/getuser", r.userHandler.GetUser)
		authed.GET("/sessions", r.sessionHandler.GetSessions)
		authed.DELETE("/sessions", r.sessionHandler.RevokeAllSessions)
		authed.DELETE("/sessions/:id", r.sessionHandler.RevokeSession)
	}

	// Product routes. The catalog is public; cart operations require auth.
	productGroup := e.Group("/product")
	{
		productGroup.GET("/list", r.productHandler.ListProducts)
		productGroup.GET("/:id", r.productHandler.GetProduct)

		authed := productGroup.Group("", r.authMiddleware.Authenticate)
		authed.POST("/getcart", r.cartHandler.GetCart)
		authed.POST("/addtocart", r.cartHandler.AddToCart)
		authed.POST("/removefromcart", r.cartHandler.RemoveFromCart)
		authed.POST("/deletefromcart", r.cartHandler.DeleteFromCart)
	}

	// Order routes all require auth.
	orderGroup := e.Group("/order", r.authMiddleware.Authenticate)
	{
		orderGroup.POST("/create", r.orderHandler.CreateOrder)
		orderGroup.GET("/list", r.orderHandler.ListOrders)
		orderGroup.GET("/:id", r.orderHandler.GetOrder)
		orderGroup.GET("/:id/qr", r.orderHandler.GetOrderQR)
	}
}
