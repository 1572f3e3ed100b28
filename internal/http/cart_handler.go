package http

import (
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/scoop-service/internal/catalog"
	"github.com/guttosm/scoop-service/internal/domain/dto"
	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/guttosm/scoop-service/internal/i18n"
	"github.com/guttosm/scoop-service/internal/service"
)

const (
	// CartEventName is the server-sent event name carrying a cart snapshot.
	CartEventName = "cart"

	cartHeartbeatInterval = 15 * time.Second
)

// GetCart handles GET /api/cart requests.
//
// @Summary      Get cart
// @Description  Returns the cart lines with item count, subtotal, tax and total.
// @Tags         Cart
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=model.CartSnapshot}
// @Router       /api/cart [get]
func (h *Handler) GetCart(c *gin.Context) {
	NewResponseBuilder(c).SuccessOK(h.cart.Snapshot())
}

// AddCartItem handles POST /api/cart/items requests.
//
// @Summary      Add a scoop
// @Description  Adds one unit of a flavor to the cart, creating the line if needed.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.AddCartItemRequest true "Flavor to add"
// @Success      200 {object} dto.SuccessResponse{data=model.CartSnapshot}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Failure      404 {object} dto.ErrorResponse "Unknown flavor"
// @Router       /api/cart/items [post]
func (h *Handler) AddCartItem(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.AddCartItemRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	item, ok := catalog.Lookup(req.ItemID)
	if !ok {
		builder.Error(http.StatusNotFound, i18n.ErrKeyItemNotFound, nil)
		return
	}

	h.cart.Add(item)
	builder.SuccessOK(h.cart.Snapshot())
}

// SetCartItemQuantity handles PUT /api/cart/items/:id requests.
//
// @Summary      Set quantity
// @Description  Sets the quantity of a cart line. A quantity of zero or less removes the line; an id that is not in the cart leaves the cart unchanged.
// @Tags         Cart
// @Accept       json
// @Produce      json
// @Param        id path int true "Flavor id"
// @Param        request body dto.SetQuantityRequest true "New quantity"
// @Success      200 {object} dto.SuccessResponse{data=model.CartSnapshot}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid input"
// @Router       /api/cart/items/{id} [put]
func (h *Handler) SetCartItemQuantity(c *gin.Context) {
	builder := NewResponseBuilder(c)

	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	req, err := BuildRequest[dto.SetQuantityRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyValidationQuantity, err)
		return
	}

	h.cart.SetQuantity(itemID, *req.Quantity)
	builder.SuccessOK(h.cart.Snapshot())
}

// RemoveCartItem handles DELETE /api/cart/items/:id requests.
//
// @Summary      Remove a line
// @Tags         Cart
// @Produce      json
// @Param        id path int true "Flavor id"
// @Success      200 {object} dto.SuccessResponse{data=model.CartSnapshot}
// @Failure      400 {object} dto.ErrorResponse "Bad request - invalid id"
// @Router       /api/cart/items/{id} [delete]
func (h *Handler) RemoveCartItem(c *gin.Context) {
	itemID, ok := itemIDParam(c)
	if !ok {
		return
	}

	h.cart.Remove(itemID)
	NewResponseBuilder(c).SuccessOK(h.cart.Snapshot())
}

// ClearCart handles DELETE /api/cart requests.
//
// @Summary      Empty the cart
// @Tags         Cart
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=model.CartSnapshot}
// @Router       /api/cart [delete]
func (h *Handler) ClearCart(c *gin.Context) {
	h.cart.Clear()
	NewResponseBuilder(c).SuccessOK(h.cart.Snapshot())
}

// CartEvents handles GET /api/cart/events requests.
//
// @Summary      Stream cart changes
// @Description  Server-sent events. The current cart is sent first, then a "cart" event after every change. Slow readers only see the latest cart.
// @Tags         Cart
// @Produce      text/event-stream
// @Success      200 {object} model.CartSnapshot
// @Router       /api/cart/events [get]
func (h *Handler) CartEvents(c *gin.Context) {
	updates := make(chan model.CartSnapshot, 1)
	unsubscribe := h.cart.Subscribe(func(snap model.CartSnapshot) {
		for {
			select {
			case updates <- snap:
				return
			default:
			}
			select {
			case <-updates:
			default:
			}
		}
	})
	defer unsubscribe()

	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	heartbeat := time.NewTicker(cartHeartbeatInterval)
	defer heartbeat.Stop()

	c.SSEvent(CartEventName, h.cart.Snapshot())
	c.Writer.Flush()

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case <-h.closing:
			return false
		case snap := <-updates:
			c.SSEvent(CartEventName, snap)
			return true
		case <-heartbeat.C:
			c.SSEvent("ping", time.Now().Unix())
			return true
		}
	})
}

// CheckoutReadiness handles POST /api/cart/checkout-readiness requests.
//
// @Summary      Check stock before checkout
// @Description  Checks inventory for the cart. Checkout may always proceed; shortfalls are advisory and inventory_unknown is set when the shop could not be asked.
// @Tags         Cart
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=service.CheckoutReadiness}
// @Router       /api/cart/checkout-readiness [post]
func (h *Handler) CheckoutReadiness(c *gin.Context) {
	builder := NewResponseBuilder(c)

	result := make(chan service.CheckoutReadiness, 1)
	h.checkout.PrepareCheckout(c.Request.Context(), func(r service.CheckoutReadiness) {
		result <- r
	})

	select {
	case r := <-result:
		builder.SuccessOK(r)
	case <-c.Request.Context().Done():
		_ = c.Error(c.Request.Context().Err())
	}
}

// itemIDParam parses the :id path parameter, answering 400 when it is invalid.
func itemIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		NewResponseBuilder(c).Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, err)
		return 0, false
	}
	return id, true
}
