package model

import (
	"fmt"
	"strings"
)

// Checkout form fields reported in a ValidationError.
const (
	FieldName         = "name"
	FieldEmail        = "email"
	FieldAddress      = "address"
	FieldPaymentToken = "payment_token"
	FieldCart         = "cart"
)

// FieldError is a single rejected checkout field.
type FieldError struct {
	// Field is the form field name (name, email, address, payment_token, cart).
	Field string `json:"field"`
	// Key is the i18n message key describing the problem.
	Key string `json:"key"`
}

// ValidationError reports bad user input. No network call is made when it occurs.
type ValidationError struct {
	Fields []FieldError
}

// Error returns the rejected field names.
func (e *ValidationError) Error() string {
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = f.Field
	}
	return "validation failed: " + strings.Join(names, ", ")
}

// Has reports whether the given field was rejected.
func (e *ValidationError) Has(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// NetworkError is a transport or non-2xx failure of a shop API call.
type NetworkError struct {
	Operation  string
	StatusCode int
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: HTTP %d", e.Operation, e.StatusCode)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// InventoryShortfall is a soft signal that a cart line asks for more than is available.
// It never blocks checkout.
type InventoryShortfall struct {
	ItemID    int `json:"item_id"`
	Requested int `json:"requested"`
	Available int `json:"available"`
}

func (s InventoryShortfall) Error() string {
	return fmt.Sprintf("item %d: requested %d, available %d", s.ItemID, s.Requested, s.Available)
}
