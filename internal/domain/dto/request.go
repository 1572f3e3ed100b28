// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"time"

	"github.com/guttosm/scoop-service/internal/domain/model"
)

const (
	// DefaultSessionCount is used when a start request omits count.
	DefaultSessionCount = 1
	// MaxSessionCount bounds one batch of simulated sessions.
	MaxSessionCount = 50
)

// AddCartItemRequest adds one unit of a flavor to the cart.
//
// @Description Request to add one scoop of a flavor
type AddCartItemRequest struct {
	// ItemID is the catalog id of the flavor
	ItemID int `json:"item_id" binding:"required,gt=0" example:"1" minimum:"1"`
} // @name AddCartItemRequest

// SetQuantityRequest sets the quantity of a cart line.
// A quantity of zero or less removes the line.
//
// @Description Request to set the quantity of a cart line
type SetQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required" example:"3"`
} // @name SetQuantityRequest

// CheckoutRequest carries the checkout form.
//
// Fields are validated by the checkout service so that every invalid
// field is reported at once; binding only checks the JSON shape.
//
// @Description Checkout form submission
type CheckoutRequest struct {
	Name         string `json:"name" example:"Emma Wilson"`
	Email        string `json:"email" example:"emma@test.com"`
	Address      string `json:"address" example:"456 Oak Ave, Los Angeles, CA 90001"`
	PaymentToken string `json:"payment_token" example:"4111111111111111"`
} // @name CheckoutRequest

// ToForm converts the request to the domain form.
func (r CheckoutRequest) ToForm() model.CustomerForm {
	return model.CustomerForm{
		Name:         r.Name,
		Email:        r.Email,
		Address:      r.Address,
		PaymentToken: r.PaymentToken,
	}
}

// StartSessionsRequest starts a batch of simulated sessions.
//
// @Description Request to start simulated shopping sessions
type StartSessionsRequest struct {
	// Count is the number of sessions to run back to back (default 1)
	Count int `json:"count" binding:"omitempty,gte=1,lte=50" example:"3"`
	// DelayMs is the pause between sessions in milliseconds
	DelayMs int `json:"delay_ms" binding:"omitempty,gte=0,lte=600000" example:"2000"`
} // @name StartSessionsRequest

// SessionCount returns Count or DefaultSessionCount when unset.
func (r StartSessionsRequest) SessionCount() int {
	if r.Count <= 0 {
		return DefaultSessionCount
	}
	return r.Count
}

// Delay returns the pause between sessions.
func (r StartSessionsRequest) Delay() time.Duration {
	return time.Duration(r.DelayMs) * time.Millisecond
}
