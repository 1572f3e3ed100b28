package dto

import (
	"net/http"
	"time"

	"github.com/guttosm/scoop-service/internal/domain/model"
)

const (
	// ErrCodeInvalidRequest indicates an invalid request.
	ErrCodeInvalidRequest = "invalid_request"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal = "internal_error"
	// ErrCodeUnauthorized indicates missing or invalid authentication.
	ErrCodeUnauthorized = "unauthorized"
	// ErrCodeForbidden indicates insufficient permissions.
	ErrCodeForbidden = "forbidden"
	// ErrCodeNotFound indicates a resource was not found.
	ErrCodeNotFound = "not_found"
	// ErrCodeRateLimit indicates rate limit exceeded.
	ErrCodeRateLimit = "rate_limit_exceeded"
	// ErrCodeConflict indicates a conflict with current state.
	ErrCodeConflict = "conflict"
	// ErrCodeTimeout indicates a request timeout.
	ErrCodeTimeout = "timeout"
	// ErrCodeValidation indicates a checkout form failed validation.
	ErrCodeValidation = "validation_failed"
	// ErrCodeShopUnavailable indicates the shop API could not be reached.
	ErrCodeShopUnavailable = "shop_unavailable"
)

// SuccessResponse wraps successful API responses with metadata.
// @Description Successful API response wrapper
type SuccessResponse struct {
	// Data contains the actual response data
	Data any `json:"data" swaggertype:"object"`
	// RequestID is the unique request identifier
	RequestID string `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	// Timestamp is when the response was generated
	Timestamp time.Time `json:"timestamp" example:"2026-06-01T10:00:00Z"`
} // @name SuccessResponse

// ErrorResponse represents a standardized error response for the API.
// @Description Standardized error response
type ErrorResponse struct {
	Error   string `json:"error" example:"validation_failed"`
	Message string `json:"message,omitempty" example:"Please correct the highlighted fields"`
	// Details maps a form field to its translated error message
	Details   map[string]string `json:"details,omitempty"`
	RequestID string            `json:"request_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
	Timestamp time.Time         `json:"timestamp" example:"2026-06-01T10:00:00Z"`
} // @name ErrorResponse

// NewError creates a new ErrorResponse with the given code and message.
func NewError(code, message string) ErrorResponse {
	return ErrorResponse{
		Error:     code,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// WithRequestID adds a request ID to the error response.
func (e ErrorResponse) WithRequestID(requestID string) ErrorResponse {
	e.RequestID = requestID
	return e
}

// WithDetails attaches per-field messages to the error response.
func (e ErrorResponse) WithDetails(details map[string]string) ErrorResponse {
	e.Details = details
	return e
}

// ErrCodeFromStatus returns the appropriate error code for an HTTP status.
func ErrCodeFromStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return ErrCodeInvalidRequest
	case http.StatusUnauthorized:
		return ErrCodeUnauthorized
	case http.StatusForbidden:
		return ErrCodeForbidden
	case http.StatusNotFound:
		return ErrCodeNotFound
	case http.StatusConflict:
		return ErrCodeConflict
	case http.StatusTooManyRequests:
		return ErrCodeRateLimit
	case http.StatusUnprocessableEntity:
		return ErrCodeValidation
	case http.StatusBadGateway, http.StatusServiceUnavailable:
		return ErrCodeShopUnavailable
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		return ErrCodeTimeout
	default:
		return ErrCodeInternal
	}
}

// CheckoutResponse is returned when an order has been placed.
//
// @Description Result of a completed checkout
type CheckoutResponse struct {
	OrderID           string `json:"order_id" example:"ICE-1A2B3C4D"`
	Message           string `json:"message" example:"Order placed successfully!"`
	EstimatedDelivery string `json:"estimated_delivery" example:"15-20 minutes"`
} // @name CheckoutResponse

// CheckoutStateResponse reports the checkout state and the last outcome.
//
// @Description Current checkout state
type CheckoutStateResponse struct {
	State       string            `json:"state" example:"idle"`
	LastOrderID string            `json:"last_order_id,omitempty" example:"ICE-1A2B3C4D"`
	LastResult  string            `json:"last_result,omitempty" example:"succeeded"`
	LastOrder   *CheckoutResponse `json:"last_order,omitempty"`
} // @name CheckoutStateResponse

// SimulatorStartResponse acknowledges a started batch of sessions.
//
// @Description Simulator start acknowledgement
type SimulatorStartResponse struct {
	Started bool   `json:"started" example:"true"`
	Count   int    `json:"count" example:"3"`
	Message string `json:"message,omitempty" example:"Simulated sessions started"`
} // @name SimulatorStartResponse

// Menu sources.
const (
	MenuSourceShop  = "shop"
	MenuSourceCache = "cache"
	MenuSourceLocal = "local"
)

// MenuResponse lists the flavors on sale.
//
// @Description Menu of flavors
type MenuResponse struct {
	Items []model.FlavorItem `json:"items"`
	// Source is "shop", "cache", or "local" when the shop could not be reached
	Source string `json:"source" example:"shop"`
} // @name MenuResponse

// EventsResponse is one page of journal events.
//
// @Description Journal events page
type EventsResponse struct {
	Events []model.Event `json:"events"`
	Total  int64         `json:"total" example:"42"`
} // @name EventsResponse
