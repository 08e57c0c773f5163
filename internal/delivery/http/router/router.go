// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"storefront/internal/delivery/http/middleware"
	"storefront/internal/delivery/http/router/handler"
	"storefront/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// RouterParams holds the handlers the router wires up, injected by Fx.
type RouterParams struct {
	fx.In

	AuthHandler     *handler.AuthHandler
	CatalogHandler  *handler.CatalogHandler
	CartHandler     *handler.CartHandler
	CheckoutHandler *handler.CheckoutHandler
	OrderHandler    *handler.OrderHandler
	ProfileHandler  *handler.ProfileHandler
	AuthMiddleware  *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler     *handler.AuthHandler
	catalogHandler  *handler.CatalogHandler
	cartHandler     *handler.CartHandler
	checkoutHandler *handler.CheckoutHandler
	orderHandler    *handler.OrderHandler
	profileHandler  *handler.ProfileHandler
	authMiddleware  *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:     params.AuthHandler,
		catalogHandler:  params.CatalogHandler,
		cartHandler:     params.CartHandler,
		checkoutHandler: params.CheckoutHandler,
		orderHandler:    params.OrderHandler,
		profileHandler:  params.ProfileHandler,
		authMiddleware:  params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)

	// Auth routes
	authGroup := e.Group("/auth")
	{
		authGroup.POST("/register", r.authHandler.Register)
		authGroup.POST("/login", r.authHandler.Login)
		authGroup.POST("/refresh", r.authHandler.Refresh)
		authGroup.POST("/logout", r.authHandler.Logout)
	}

	// Public catalog browsing
	e.GET("/games", r.catalogHandler.ListGames)
	e.GET("/games/:id", r.catalogHandler.GetGame)

	// Cart routes serve guests and signed-in shoppers alike
	cartGroup := e.Group("/cart")
	cartGroup.Use(r.authMiddleware.OptionalAuthenticate)
	{
		cartGroup.GET("", r.cartHandler.View)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PATCH("/items/:gameId", r.cartHandler.UpdateItem)
		cartGroup.DELETE("/items/:gameId", r.cartHandler.RemoveItem)
		cartGroup.DELETE("", r.cartHandler.Clear)
	}

	// Checkout requires a signed-in buyer
	checkoutGroup := e.Group("/checkout")
	checkoutGroup.Use(r.authMiddleware.Authenticate)
	{
		checkoutGroup.POST("", r.checkoutHandler.Checkout)
		checkoutGroup.GET("/confirm", r.checkoutHandler.ConfirmSession)
	}

	// Hosted checkout session endpoint, kept at the path the storefront
	// redirect script posts to.
	e.POST("/api/create-checkout-session", r.checkoutHandler.CreateSession,
		r.authMiddleware.Authenticate)

	// Order history and receipts
	orderGroup := e.Group("/orders")
	orderGroup.Use(r.authMiddleware.Authenticate)
	{
		orderGroup.GET("", r.orderHandler.ListMine)
		orderGroup.GET("/:id", r.orderHandler.Get)
		orderGroup.POST("/:id/cancel", r.orderHandler.Cancel)
		orderGroup.GET("/:id/qr", r.orderHandler.ReceiptQR)
	}

	// Profile and library
	profileGroup := e.Group("/profile")
	profileGroup.Use(r.authMiddleware.Authenticate)
	{
		profileGroup.GET("", r.profileHandler.GetProfile)
		profileGroup.PATCH("", r.profileHandler.UpdateProfile)
		profileGroup.GET("/library", r.profileHandler.GetLibrary)
	}

	// Admin routes require authentication and the "admin" role
	adminGroup := e.Group("/admin")
	adminGroup.Use(r.authMiddleware.Authenticate)
	adminGroup.Use(r.authMiddleware.RequireRole(entity.RoleAdmin.String()))
	{
		adminGroup.POST("/games", r.catalogHandler.CreateGame)
		adminGroup.PUT("/games/:id", r.catalogHandler.UpdateGame)
		adminGroup.DELETE("/games/:id", r.catalogHandler.DeleteGame)
		adminGroup.GET("/orders", r.orderHandler.ListAll)
		adminGroup.PATCH("/orders/:id/status", r.orderHandler.UpdateStatus)
	}
}
