package http

import (
	"github.com/gin-gonic/gin"
)

// RouteGroup defines a group of routes that can be registered.
type RouteGroup interface {
	// RegisterRoutes registers routes to the given router group.
	RegisterRoutes(rg *gin.RouterGroup)
}

// ShopRoutes registers the cart, checkout, simulator and journal routes.
type ShopRoutes struct {
	handler *Handler
}

var _ RouteGroup = (*ShopRoutes)(nil)

// NewShopRoutes creates a new ShopRoutes instance.
func NewShopRoutes(handler *Handler) *ShopRoutes {
	return &ShopRoutes{handler: handler}
}

// RegisterRoutes registers the shop routes. Simulator and journal routes
// are only registered when the handler has them.
func (r *ShopRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	h := r.handler

	rg.GET("/menu", h.GetMenu)

	cart := rg.Group("/cart")
	cart.GET("", h.GetCart)
	cart.DELETE("", h.ClearCart)
	cart.POST("/items", h.AddCartItem)
	cart.PUT("/items/:id", h.SetCartItemQuantity)
	cart.DELETE("/items/:id", h.RemoveCartItem)
	cart.GET("/events", h.CartEvents)
	cart.POST("/checkout-readiness", h.CheckoutReadiness)

	rg.POST("/checkout", h.Checkout)
	rg.GET("/checkout", h.GetCheckout)
	rg.GET("/promo/:code", h.ValidatePromo)
	rg.GET("/orders/:id/status", h.GetOrderStatus)

	if h.sim != nil {
		rg.POST("/simulator/sessions", h.StartSessions)
		rg.GET("/simulator", h.GetSimulator)
		rg.DELETE("/simulator", h.StopSimulator)
	}

	if h.journal != nil {
		rg.GET("/events", h.ListEvents)
	}
}
