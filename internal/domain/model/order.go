package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderIDPrefix prefixes every client-generated order identifier.
const OrderIDPrefix = "ICE-"

// NewOrderID mints a client-side order token such as "ICE-1A2B3C4D".
func NewOrderID() string {
	return OrderIDPrefix + strings.ToUpper(uuid.NewString()[:8])
}

// CustomerInfo is the customer block sent with an order.
type CustomerInfo struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// CustomerForm holds the checkout form fields as entered by the customer.
// The payment token never leaves the process; only CustomerInfo is sent.
type CustomerForm struct {
	Name         string `json:"name" example:"Emma Wilson"`
	Email        string `json:"email" example:"emma@test.com"`
	Address      string `json:"address" example:"456 Oak Ave, Los Angeles, CA 90001"`
	PaymentToken string `json:"payment_token" example:"4111111111111111"`
} // @name CustomerForm

// Customer returns the customer block of the form.
func (f CustomerForm) Customer() CustomerInfo {
	return CustomerInfo{Name: f.Name, Email: f.Email, Address: f.Address}
}

// OrderItem is one line of an order request.
type OrderItem struct {
	ItemID     int             `json:"itemId"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unitPrice"`
	TotalPrice decimal.Decimal `json:"totalPrice"`
}

// OrderRequest is the immutable payload of one checkout attempt.
type OrderRequest struct {
	OrderID   string          `json:"orderId"`
	Items     []OrderItem     `json:"items"`
	Customer  CustomerInfo    `json:"customer"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	Tax       decimal.Decimal `json:"tax"`
	Total     decimal.Decimal `json:"total"`
	Timestamp int64           `json:"timestamp"`
}

// NewOrderRequest builds an order from a cart snapshot with a fresh order id.
func NewOrderRequest(snap CartSnapshot, customer CustomerInfo, now time.Time) OrderRequest {
	items := make([]OrderItem, len(snap.Lines))
	for i, l := range snap.Lines {
		items[i] = OrderItem{
			ItemID:     l.Item.ID,
			Name:       l.Item.Name,
			Quantity:   l.Quantity,
			UnitPrice:  l.Item.UnitPrice,
			TotalPrice: l.LineTotal(),
		}
	}

	return OrderRequest{
		OrderID:   NewOrderID(),
		Items:     items,
		Customer:  customer,
		Subtotal:  snap.Subtotal,
		Tax:       snap.Tax,
		Total:     snap.Total,
		Timestamp: now.UnixMilli(),
	}
}

// ItemCount returns the total quantity across all order items.
func (r OrderRequest) ItemCount() int {
	var n int
	for _, it := range r.Items {
		n += it.Quantity
	}
	return n
}

// OrderResult is the server's answer to an order submission.
//
// @Description Result of an order submission
type OrderResult struct {
	Success           bool   `json:"success" example:"true"`
	OrderID           string `json:"order_id" example:"ICE-1A2B3C4D"`
	Message           string `json:"message" example:"Order placed successfully!"`
	EstimatedDelivery string `json:"estimated_delivery" example:"15-20 minutes"`
} // @name OrderResult

// PromoResult is the outcome of a promo code check.
//
// @Description Promo code validation result
type PromoResult struct {
	Valid    bool            `json:"valid" example:"true"`
	Discount decimal.Decimal `json:"discount" swaggertype:"string" example:"0.1"`
	Code     string          `json:"code" example:"SWEET10"`
} // @name PromoResult

// OrderStatus is a point-in-time status of a submitted order.
//
// @Description Order status
type OrderStatus struct {
	OrderID   string    `json:"order_id" example:"ICE-1A2B3C4D"`
	Status    string    `json:"status" example:"Preparing"`
	UpdatedAt time.Time `json:"updated_at"`
} // @name OrderStatus
