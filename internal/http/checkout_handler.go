package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/scoop-service/internal/domain/dto"
	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/guttosm/scoop-service/internal/i18n"
	"github.com/guttosm/scoop-service/internal/service"
)

// Checkout handles POST /api/checkout requests.
//
// @Summary      Place an order
// @Description  Validates the form and submits the cart as an order. Every invalid field is reported in details. On success the cart is emptied. The order keeps going if the client disconnects; GET /api/checkout reports how it ended.
// @Tags         Checkout
// @Accept       json
// @Produce      json
// @Param        Idempotency-Key header string false "Idempotency key for request deduplication"
// @Param        request body dto.CheckoutRequest true "Checkout form"
// @Success      201 {object} dto.SuccessResponse{data=dto.CheckoutResponse}
// @Failure      400 {object} dto.ErrorResponse "Bad request - malformed body"
// @Failure      409 {object} dto.ErrorResponse "An order is already being submitted"
// @Failure      422 {object} dto.ErrorResponse "Form validation failed"
// @Failure      502 {object} dto.ErrorResponse "The shop rejected or did not answer"
// @Router       /api/checkout [post]
func (h *Handler) Checkout(c *gin.Context) {
	builder := NewResponseBuilder(c)

	req, err := BuildRequest[dto.CheckoutRequest](c)
	if err != nil {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequestBody, err)
		return
	}

	outcomes := make(chan service.CheckoutOutcome, 1)
	err = h.checkout.Submit(context.WithoutCancel(c.Request.Context()), req.ToForm(), func(o service.CheckoutOutcome) {
		outcomes <- o
	})

	var verr *model.ValidationError
	switch {
	case errors.As(err, &verr):
		builder.ValidationError(verr)
		return
	case errors.Is(err, service.ErrSubmissionInFlight):
		builder.Error(http.StatusConflict, i18n.ErrKeyCheckoutInFlight, err)
		return
	case err != nil:
		builder.Error(http.StatusInternalServerError, i18n.ErrKeyInternalError, err)
		return
	}

	select {
	case o := <-outcomes:
		if o.State != service.CheckoutSucceeded {
			builder.Error(http.StatusBadGateway, o.RetryKey, o.Err)
			return
		}
		builder.SuccessCreated(dto.CheckoutResponse{
			OrderID:           o.OrderID,
			Message:           o.Message,
			EstimatedDelivery: o.EstimatedDelivery,
		})
	case <-c.Request.Context().Done():
		_ = c.Error(c.Request.Context().Err())
	}
}

// GetCheckout handles GET /api/checkout requests.
//
// @Summary      Checkout state
// @Description  Returns the current checkout state and how the last submitted order ended.
// @Tags         Checkout
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.CheckoutStateResponse}
// @Router       /api/checkout [get]
func (h *Handler) GetCheckout(c *gin.Context) {
	resp := dto.CheckoutStateResponse{State: h.checkout.State().String()}
	if last, ok := h.checkout.LastOutcome(); ok {
		resp.LastOrderID = last.OrderID
		resp.LastResult = last.State.String()
		if last.State == service.CheckoutSucceeded {
			resp.LastOrder = &dto.CheckoutResponse{
				OrderID:           last.OrderID,
				Message:           last.Message,
				EstimatedDelivery: last.EstimatedDelivery,
			}
		}
	}
	NewResponseBuilder(c).SuccessOK(resp)
}

// ValidatePromo handles GET /api/promo/:code requests.
//
// @Summary      Check a promo code
// @Tags         Checkout
// @Produce      json
// @Param        code path string true "Promo code, case-insensitive"
// @Success      200 {object} dto.SuccessResponse{data=model.PromoResult}
// @Failure      502 {object} dto.ErrorResponse "Shop unavailable"
// @Router       /api/promo/{code} [get]
func (h *Handler) ValidatePromo(c *gin.Context) {
	builder := NewResponseBuilder(c)

	code := strings.TrimSpace(c.Param("code"))
	if code == "" {
		builder.Error(http.StatusBadRequest, i18n.ErrKeyInvalidRequest, nil)
		return
	}

	result, err := await(c.Request.Context(), func(cb func(model.PromoResult, error)) {
		h.checkout.ValidatePromo(c.Request.Context(), code, cb)
	})
	if deadlineExpired(c, err) {
		return
	}
	if err != nil {
		builder.Error(http.StatusBadGateway, i18n.ErrKeyShopUnavailable, err)
		return
	}
	builder.SuccessOK(result)
}

// GetOrderStatus handles GET /api/orders/:id/status requests.
//
// @Summary      Order status
// @Tags         Checkout
// @Produce      json
// @Param        id path string true "Order id" example(ICE-1A2B3C4D)
// @Success      200 {object} dto.SuccessResponse{data=model.OrderStatus}
// @Failure      502 {object} dto.ErrorResponse "Shop unavailable"
// @Router       /api/orders/{id}/status [get]
func (h *Handler) GetOrderStatus(c *gin.Context) {
	builder := NewResponseBuilder(c)

	status, err := await(c.Request.Context(), func(cb func(model.OrderStatus, error)) {
		h.checkout.OrderStatus(c.Request.Context(), c.Param("id"), cb)
	})
	if deadlineExpired(c, err) {
		return
	}
	if err != nil {
		builder.Error(http.StatusBadGateway, i18n.ErrKeyShopUnavailable, err)
		return
	}
	builder.SuccessOK(status)
}
