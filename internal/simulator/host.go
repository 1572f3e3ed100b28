package simulator

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/guttosm/scoop-service/internal/logger"
	"github.com/guttosm/scoop-service/internal/service"
)

// Screen is a view the simulated customer can navigate to.
type Screen int

// Screens.
const (
	ScreenMenu Screen = iota
	ScreenCart
	ScreenCheckout
)

func (s Screen) String() string {
	switch s {
	case ScreenMenu:
		return "menu"
	case ScreenCart:
		return "cart"
	case ScreenCheckout:
		return "checkout"
	default:
		return "unknown"
	}
}

// MarshalText encodes the screen by name.
func (s Screen) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Field is a checkout form input.
type Field int

// Checkout form fields, in the order they are filled.
const (
	FieldName Field = iota
	FieldEmail
	FieldAddress
	FieldPaymentToken
)

func (f Field) String() string {
	switch f {
	case FieldName:
		return model.FieldName
	case FieldEmail:
		return model.FieldEmail
	case FieldAddress:
		return model.FieldAddress
	case FieldPaymentToken:
		return model.FieldPaymentToken
	default:
		return "unknown"
	}
}

// Host is the environment a simulated session acts on.
// Host methods are called from the simulator's timer goroutine and must not call Simulator.Stop.
type Host interface {
	ScrollMenu(position int)
	Navigate(screen Screen)
	// CurrentForm returns the checkout form on screen, or nil when there is none.
	CurrentForm() Form
}

// Form is the checkout form of the current screen.
type Form interface {
	Fill(field Field, value string)
	Submit()
}

// Submitter places orders from a filled form.
type Submitter interface {
	Submit(ctx context.Context, form model.CustomerForm, cb func(service.CheckoutOutcome)) error
}

// HeadlessHost is a Host without a UI. Its form submits through the checkout
// orchestrator and keeps entered values between attempts.
type HeadlessHost struct {
	submitter Submitter
	log       zerolog.Logger

	mu      sync.Mutex
	screen  Screen
	scroll  int
	form    model.CustomerForm
	outcome *service.CheckoutOutcome
	err     error
}

var _ Host = (*HeadlessHost)(nil)

// NewHeadlessHost creates a host on the menu screen.
func NewHeadlessHost(submitter Submitter) *HeadlessHost {
	return &HeadlessHost{
		submitter: submitter,
		log:       logger.Component("simulator.host"),
	}
}

// ScrollMenu records the menu scroll position.
func (h *HeadlessHost) ScrollMenu(position int) {
	h.mu.Lock()
	h.scroll = position
	h.mu.Unlock()
	h.log.Debug().Int("position", position).Msg("Scrolled menu")
}

// Navigate switches the current screen.
func (h *HeadlessHost) Navigate(screen Screen) {
	h.mu.Lock()
	h.screen = screen
	h.mu.Unlock()
	h.log.Debug().Stringer("screen", screen).Msg("Navigated")
}

// CurrentForm returns the checkout form while the checkout screen is shown.
func (h *HeadlessHost) CurrentForm() Form {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.screen != ScreenCheckout {
		return nil
	}
	return headlessForm{h: h}
}

// Screen returns the current screen.
func (h *HeadlessHost) Screen() Screen {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.screen
}

// ScrollPosition returns the last menu scroll position.
func (h *HeadlessHost) ScrollPosition() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.scroll
}

// FormValues returns the values entered in the checkout form.
func (h *HeadlessHost) FormValues() model.CustomerForm {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.form
}

// LastOutcome returns the outcome of the last completed submission.
func (h *HeadlessHost) LastOutcome() (service.CheckoutOutcome, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.outcome == nil {
		return service.CheckoutOutcome{}, false
	}
	return *h.outcome, true
}

// LastError returns the error of the last rejected submission, if any.
func (h *HeadlessHost) LastError() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

type headlessForm struct {
	h *HeadlessHost
}

func (f headlessForm) Fill(field Field, value string) {
	f.h.mu.Lock()
	defer f.h.mu.Unlock()
	switch field {
	case FieldName:
		f.h.form.Name = value
	case FieldEmail:
		f.h.form.Email = value
	case FieldAddress:
		f.h.form.Address = value
	case FieldPaymentToken:
		f.h.form.PaymentToken = value
	}
}

func (f headlessForm) Submit() {
	h := f.h
	h.mu.Lock()
	form := h.form
	h.mu.Unlock()

	err := h.submitter.Submit(context.Background(), form, func(out service.CheckoutOutcome) {
		h.mu.Lock()
		h.outcome = &out
		h.mu.Unlock()
	})

	h.mu.Lock()
	h.err = err
	h.mu.Unlock()
	if err != nil {
		h.log.Warn().Err(err).Msg("Order not submitted")
	}
}
