package service

import (
	"context"
	"encoding/hex"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/blake2b"

	"github.com/guttosm/scoop-service/internal/client"
	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/guttosm/scoop-service/internal/i18n"
	"github.com/guttosm/scoop-service/internal/logger"
	"github.com/guttosm/scoop-service/internal/metrics"
)

// DefaultMinPaymentTokenLength is the shortest accepted payment token.
const DefaultMinPaymentTokenLength = 16

// ErrSubmissionInFlight is returned by Submit while an order is being submitted.
var ErrSubmissionInFlight = errors.New("order submission already in flight")

// CheckoutState is the state of the current checkout attempt.
type CheckoutState int

// Checkout states.
const (
	CheckoutIdle CheckoutState = iota
	CheckoutValidating
	CheckoutSubmitting
	CheckoutSucceeded
	CheckoutFailed
)

func (s CheckoutState) String() string {
	switch s {
	case CheckoutIdle:
		return "idle"
	case CheckoutValidating:
		return "validating"
	case CheckoutSubmitting:
		return "submitting"
	case CheckoutSucceeded:
		return "succeeded"
	case CheckoutFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText encodes the state by name.
func (s CheckoutState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckoutOutcome is the terminal result of one submitted order.
type CheckoutOutcome struct {
	State             CheckoutState `json:"state"`
	OrderID           string        `json:"order_id"`
	Message           string        `json:"message,omitempty"`
	EstimatedDelivery string        `json:"estimated_delivery,omitempty"`
	// RetryKey is the i18n key of the retry prompt, set on failure.
	RetryKey string `json:"retry_key,omitempty"`
	Err      error  `json:"-"`
}

// CheckoutReadiness is the result of the inventory pre-check.
// Checkout always proceeds; shortfalls are advisory.
type CheckoutReadiness struct {
	Proceed          bool                       `json:"proceed"`
	Shortfalls       []model.InventoryShortfall `json:"shortfalls"`
	InventoryUnknown bool                       `json:"inventory_unknown"`
	Err              error                      `json:"-"`
}

// CheckoutOption configures a CheckoutOrchestrator.
type CheckoutOption func(*CheckoutOrchestrator)

// WithEventSink journals checkout attempts to sink.
func WithEventSink(sink EventSink) CheckoutOption {
	return func(o *CheckoutOrchestrator) {
		o.sink = sink
	}
}

// WithMinPaymentTokenLength overrides DefaultMinPaymentTokenLength.
func WithMinPaymentTokenLength(n int) CheckoutOption {
	return func(o *CheckoutOrchestrator) {
		o.minTokenLen = n
	}
}

// WithCheckoutClock sets the time source for order timestamps.
func WithCheckoutClock(now func() time.Time) CheckoutOption {
	return func(o *CheckoutOrchestrator) {
		o.now = now
	}
}

// CheckoutOrchestrator validates the customer form, submits orders built
// from the cart and clears the cart once an order is confirmed.
type CheckoutOrchestrator struct {
	cart        *CartStore
	api         client.API
	sink        EventSink
	validate    *validator.Validate
	minTokenLen int
	now         func() time.Time
	log         zerolog.Logger

	mu    sync.Mutex
	state CheckoutState
	last  *CheckoutOutcome
}

// NewCheckoutOrchestrator creates an orchestrator over cart and api.
func NewCheckoutOrchestrator(cart *CartStore, api client.API, opts ...CheckoutOption) *CheckoutOrchestrator {
	o := &CheckoutOrchestrator{
		cart:        cart,
		api:         api,
		sink:        NopSink{},
		validate:    validator.New(),
		minTokenLen: DefaultMinPaymentTokenLength,
		now:         time.Now,
		log:         logger.Component("checkout"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// State returns the current checkout state.
func (o *CheckoutOrchestrator) State() CheckoutState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// LastOutcome returns the outcome of the most recent completed submission.
func (o *CheckoutOrchestrator) LastOutcome() (CheckoutOutcome, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.last == nil {
		return CheckoutOutcome{}, false
	}
	return *o.last, true
}

// Submit validates form and, when valid, submits an order for the current cart.
// A *model.ValidationError is returned synchronously without any network call.
// Otherwise cb receives the outcome exactly once.
func (o *CheckoutOrchestrator) Submit(ctx context.Context, form model.CustomerForm, cb func(CheckoutOutcome)) error {
	o.mu.Lock()
	if o.state == CheckoutSubmitting {
		o.mu.Unlock()
		return ErrSubmissionInFlight
	}

	o.state = CheckoutValidating
	snap := o.cart.Snapshot()
	if verr := o.validateForm(form, snap); verr != nil {
		o.state = CheckoutIdle
		o.mu.Unlock()

		metrics.RecordCheckout("rejected")
		o.log.Info().Str("fields", verr.Error()).Msg("Checkout form rejected")
		o.sink.Publish(model.NewEvent(model.EventCheckoutRejected, verr.Error()).
			WithLevel(model.LevelWarn).
			WithField("fields", verr.Fields))
		return verr
	}

	req := model.NewOrderRequest(snap, form.Customer(), o.now())
	o.state = CheckoutSubmitting
	o.mu.Unlock()

	fingerprint := paymentFingerprint(form.PaymentToken)
	metrics.RecordOrderItems(req.ItemCount())
	o.log.Info().Str("order_id", req.OrderID).Int("items", req.ItemCount()).Str("total", req.Total.StringFixed(2)).Msg("Submitting order")

	submitted := model.NewEvent(model.EventCheckoutSubmitted, "Submitting order").WithFields(map[string]any{
		"item_count":          req.ItemCount(),
		"total":               req.Total.StringFixed(2),
		"payment_fingerprint": fingerprint,
	})
	submitted.OrderID = req.OrderID
	o.sink.Publish(submitted)

	o.api.SubmitOrder(ctx, req, func(res model.OrderResult, err error) {
		cb(o.complete(req, res, err))
	})
	return nil
}

func (o *CheckoutOrchestrator) complete(req model.OrderRequest, res model.OrderResult, err error) CheckoutOutcome {
	if err == nil && !res.Success {
		err = errors.New("order rejected by shop")
	}

	if err != nil {
		outcome := CheckoutOutcome{
			State:    CheckoutFailed,
			OrderID:  req.OrderID,
			RetryKey: i18n.ErrKeyCheckoutRetry,
			Err:      err,
		}
		o.mu.Lock()
		o.state = CheckoutIdle
		o.last = &outcome
		o.mu.Unlock()

		metrics.RecordCheckout("failed")
		o.log.Warn().Err(err).Str("order_id", req.OrderID).Msg("Order submission failed")
		failed := model.NewEvent(model.EventCheckoutFailed, "Order submission failed").WithLevel(model.LevelError)
		failed.OrderID = req.OrderID
		failed.Error = err.Error()
		o.sink.Publish(failed)
		return outcome
	}

	// Observers of the cart may read the checkout state, so clear before locking.
	o.cart.Clear()

	outcome := CheckoutOutcome{
		State:             CheckoutSucceeded,
		OrderID:           res.OrderID,
		Message:           res.Message,
		EstimatedDelivery: res.EstimatedDelivery,
	}
	if outcome.OrderID == "" {
		outcome.OrderID = req.OrderID
	}
	o.mu.Lock()
	o.state = CheckoutSucceeded
	o.last = &outcome
	o.mu.Unlock()

	metrics.RecordCheckout("succeeded")
	o.log.Info().Str("order_id", outcome.OrderID).Str("estimated_delivery", outcome.EstimatedDelivery).Msg("Order placed")
	succeeded := model.NewEvent(model.EventCheckoutSucceeded, res.Message).WithField("estimated_delivery", res.EstimatedDelivery)
	succeeded.OrderID = outcome.OrderID
	o.sink.Publish(succeeded)
	return outcome
}

func (o *CheckoutOrchestrator) validateForm(form model.CustomerForm, snap model.CartSnapshot) *model.ValidationError {
	var fields []model.FieldError

	if snap.IsEmpty() {
		fields = append(fields, model.FieldError{Field: model.FieldCart, Key: i18n.ErrKeyValidationCartEmpty})
	}
	if strings.TrimSpace(form.Name) == "" {
		fields = append(fields, model.FieldError{Field: model.FieldName, Key: i18n.ErrKeyValidationName})
	}
	if err := o.validate.Var(strings.TrimSpace(form.Email), "required,email"); err != nil {
		fields = append(fields, model.FieldError{Field: model.FieldEmail, Key: i18n.ErrKeyValidationEmail})
	}
	if strings.TrimSpace(form.Address) == "" {
		fields = append(fields, model.FieldError{Field: model.FieldAddress, Key: i18n.ErrKeyValidationAddress})
	}
	// Raw length, separators included, as the card field counts it.
	if strings.TrimSpace(form.PaymentToken) == "" || len(form.PaymentToken) < o.minTokenLen {
		fields = append(fields, model.FieldError{Field: model.FieldPaymentToken, Key: i18n.ErrKeyValidationPaymentToken})
	}

	if len(fields) == 0 {
		return nil
	}
	return &model.ValidationError{Fields: fields}
}

// PrepareCheckout checks inventory for the current cart. cb is always told to
// proceed; a failed lookup is reported as InventoryUnknown.
func (o *CheckoutOrchestrator) PrepareCheckout(ctx context.Context, cb func(CheckoutReadiness)) {
	snap := o.cart.Snapshot()
	if snap.IsEmpty() {
		cb(CheckoutReadiness{Proceed: true, Shortfalls: []model.InventoryShortfall{}})
		return
	}

	o.api.CheckInventory(ctx, snap.ItemIDs(), func(inventory map[int]int, err error) {
		if err != nil {
			o.log.Warn().Err(err).Msg("Inventory check failed, proceeding to checkout")
			cb(CheckoutReadiness{Proceed: true, Shortfalls: []model.InventoryShortfall{}, InventoryUnknown: true, Err: err})
			return
		}

		shortfalls := FindShortfalls(snap, inventory)
		if len(shortfalls) > 0 {
			o.log.Warn().Int("shortfalls", len(shortfalls)).Msg("Some items may be out of stock, proceeding anyway")
		}
		cb(CheckoutReadiness{Proceed: true, Shortfalls: shortfalls})
	})
}

// FindShortfalls returns the lines of snap requesting more than inventory holds.
// Ids missing from inventory are assumed available.
func FindShortfalls(snap model.CartSnapshot, inventory map[int]int) []model.InventoryShortfall {
	shortfalls := []model.InventoryShortfall{}
	for _, l := range snap.Lines {
		available, ok := inventory[l.Item.ID]
		if ok && l.Quantity > available {
			shortfalls = append(shortfalls, model.InventoryShortfall{
				ItemID:    l.Item.ID,
				Requested: l.Quantity,
				Available: available,
			})
		}
	}
	return shortfalls
}

// ValidatePromo checks a promo code with the shop.
func (o *CheckoutOrchestrator) ValidatePromo(ctx context.Context, code string, cb func(model.PromoResult, error)) {
	o.api.ValidatePromoCode(ctx, code, cb)
}

// OrderStatus fetches the status of a submitted order.
func (o *CheckoutOrchestrator) OrderStatus(ctx context.Context, orderID string, cb func(model.OrderStatus, error)) {
	o.api.GetOrderStatus(ctx, orderID, cb)
}

// paymentFingerprint identifies a payment token in the journal without revealing it.
func paymentFingerprint(token string) string {
	sum := blake2b.Sum256([]byte(token))
	return hex.EncodeToString(sum[:8])
}
