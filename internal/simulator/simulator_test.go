package simulator

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/guttosm/scoop-service/internal/catalog"
	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/guttosm/scoop-service/internal/mocks"
	"github.com/guttosm/scoop-service/internal/service"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type filled struct {
	field Field
	value string
}

// recordingHost captures every host call in order.
type recordingHost struct {
	mu        sync.Mutex
	screen    Screen
	scrolls   []int
	screens   []Screen
	fills     []filled
	submits   int
	noFormYet bool
}

func (h *recordingHost) ScrollMenu(position int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.scrolls = append(h.scrolls, position)
}

func (h *recordingHost) Navigate(screen Screen) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.screen = screen
	h.screens = append(h.screens, screen)
}

func (h *recordingHost) CurrentForm() Form {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.screen != ScreenCheckout || h.noFormYet {
		return nil
	}
	return recordingForm{h}
}

type recordingForm struct{ h *recordingHost }

func (f recordingForm) Fill(field Field, value string) {
	f.h.mu.Lock()
	defer f.h.mu.Unlock()
	f.h.fills = append(f.h.fills, filled{field, value})
}

func (f recordingForm) Submit() {
	f.h.mu.Lock()
	defer f.h.mu.Unlock()
	f.h.submits++
}

func newTestSimulator(t *testing.T, host Host) (*Simulator, *service.CartStore, *fakeClock) {
	t.Helper()
	cart := service.NewCartStore()
	clock := &fakeClock{}
	sim := New(cart, host, WithClock(clock), WithRand(rand.New(rand.NewPCG(1, 2))))
	return sim, cart, clock
}

func TestSimulator_FullSession(t *testing.T) {
	host := &recordingHost{}
	sim, cart, clock := newTestSimulator(t, host)

	var completions int
	require.True(t, sim.StartSession(func() { completions++ }))
	assert.True(t, sim.IsRunning())

	clock.Advance(time.Minute)

	assert.False(t, sim.IsRunning())
	assert.Equal(t, 1, completions)
	assert.Zero(t, clock.Pending())

	assert.Equal(t, []int{3, 0}, host.scrolls)
	assert.Equal(t, []Screen{ScreenCart, ScreenCheckout, ScreenMenu}, host.screens)
	require.Len(t, host.fills, 4)
	assert.Equal(t, []Field{FieldName, FieldEmail, FieldAddress, FieldPaymentToken},
		[]Field{host.fills[0].field, host.fills[1].field, host.fills[2].field, host.fills[3].field})
	assert.Contains(t, sampleNames, host.fills[0].value)
	assert.Contains(t, sampleEmails, host.fills[1].value)
	assert.Contains(t, sampleAddresses, host.fills[2].value)
	assert.Equal(t, PaymentToken, host.fills[3].value)
	assert.Equal(t, 1, host.submits)

	count := cart.Snapshot().ItemCount
	assert.GreaterOrEqual(t, count, 2)
	assert.LessOrEqual(t, count, 3)

	stats := sim.Stats()
	assert.Equal(t, 1, stats.SessionsStarted)
	assert.Equal(t, 1, stats.SessionsCompleted)
	assert.Zero(t, stats.SessionsStopped)
	for _, p := range []Phase{PhaseBrowse, PhaseAddToCart, PhaseViewCart, PhaseCheckout} {
		assert.Equal(t, 1, stats.PhaseEntries[p], p)
	}
	assert.Empty(t, stats.CurrentPhase)
}

func TestSimulator_PhaseTiming(t *testing.T) {
	host := &recordingHost{}
	sim, cart, clock := newTestSimulator(t, host)
	require.True(t, sim.StartSession(nil))

	clock.Advance(1400 * time.Millisecond)
	assert.Empty(t, host.scrolls)

	clock.Advance(100 * time.Millisecond)
	assert.Equal(t, []int{3}, host.scrolls)

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, []int{3, 0}, host.scrolls)
	assert.Equal(t, PhaseBrowse, sim.Stats().CurrentPhase)

	clock.Advance(time.Second)
	assert.Equal(t, PhaseAddToCart, sim.Stats().CurrentPhase)
	assert.Zero(t, cart.Snapshot().ItemCount)

	clock.Advance(500 * time.Millisecond)
	assert.Equal(t, 1, cart.Snapshot().ItemCount)

	clock.Advance(time.Second)
	assert.Equal(t, 2, cart.Snapshot().ItemCount)
}

func TestSimulator_StopDuringAddToCart(t *testing.T) {
	host := &recordingHost{}
	sim, cart, clock := newTestSimulator(t, host)

	var completed bool
	require.True(t, sim.StartSession(func() { completed = true }))

	// First add lands at 3.5s.
	clock.Advance(3600 * time.Millisecond)
	require.Equal(t, PhaseAddToCart, sim.Stats().CurrentPhase)
	require.Equal(t, 1, cart.Snapshot().ItemCount)

	sim.Stop()
	assert.False(t, sim.IsRunning())
	assert.Zero(t, clock.Pending())

	clock.Advance(time.Minute)

	stats := sim.Stats()
	assert.Equal(t, 1, stats.PhaseEntries[PhaseAddToCart])
	assert.Zero(t, stats.PhaseEntries[PhaseViewCart])
	assert.Zero(t, stats.PhaseEntries[PhaseCheckout])
	assert.Equal(t, 1, stats.SessionsStopped)
	assert.Zero(t, stats.SessionsCompleted)
	assert.Empty(t, host.screens)
	assert.Equal(t, 1, cart.Snapshot().ItemCount)
	assert.False(t, completed)
}

func TestSimulator_StaleTimerIsNoOp(t *testing.T) {
	host := &recordingHost{}
	cart := service.NewCartStore()
	clock := &fakeClock{}
	sim := New(cart, host, WithClock(clock))

	require.True(t, sim.StartSession(nil))
	clock.Advance(time.Second)

	// A stopped clock timer can still be invoked by a racing runtime timer.
	clock.mu.Lock()
	var stale []*fakeTimer
	for _, tm := range clock.timers {
		if !tm.fired && !tm.stopped {
			stale = append(stale, tm)
		}
	}
	clock.mu.Unlock()
	require.NotEmpty(t, stale)

	sim.Stop()
	for _, tm := range stale {
		tm.f()
	}

	assert.Empty(t, host.scrolls)
	assert.Zero(t, sim.Stats().PhaseEntries[PhaseAddToCart])
}

func TestSimulator_StartWhileRunningIsNoOp(t *testing.T) {
	host := &recordingHost{}
	sim, _, clock := newTestSimulator(t, host)

	require.True(t, sim.StartSession(nil))
	clock.Advance(5 * time.Second)
	assert.False(t, sim.StartSession(nil))
	assert.False(t, sim.StartMultipleSessions(3, time.Second, nil))

	clock.Advance(time.Minute)

	stats := sim.Stats()
	assert.Equal(t, 1, stats.SessionsStarted)
	for _, p := range []Phase{PhaseBrowse, PhaseAddToCart, PhaseViewCart, PhaseCheckout} {
		assert.Equal(t, 1, stats.PhaseEntries[p], p)
	}
	assert.Equal(t, 1, host.submits)
}

func TestSimulator_StartClearsCart(t *testing.T) {
	host := &recordingHost{}
	sim, cart, clock := newTestSimulator(t, host)

	for _, item := range catalog.All() {
		cart.Add(item)
	}
	require.False(t, cart.Snapshot().IsEmpty())

	require.True(t, sim.StartSession(nil))
	assert.True(t, cart.Snapshot().IsEmpty())

	sim.Stop()
	clock.Advance(time.Minute)
}

func TestSimulator_RestartAfterStop(t *testing.T) {
	host := &recordingHost{}
	sim, _, clock := newTestSimulator(t, host)

	require.True(t, sim.StartSession(nil))
	clock.Advance(10 * time.Second)
	sim.Stop()

	var done bool
	require.True(t, sim.StartSession(func() { done = true }))
	clock.Advance(time.Minute)

	assert.True(t, done)
	stats := sim.Stats()
	assert.Equal(t, 2, stats.SessionsStarted)
	assert.Equal(t, 1, stats.SessionsStopped)
	assert.Equal(t, 1, stats.SessionsCompleted)
	assert.Equal(t, uint64(2), stats.SessionID)
}

func TestSimulator_StartMultipleSessions(t *testing.T) {
	t.Run("runs every session then calls back", func(t *testing.T) {
		host := &recordingHost{}
		sim, _, clock := newTestSimulator(t, host)

		var all int
		require.True(t, sim.StartMultipleSessions(3, 2*time.Second, func() { all++ }))

		clock.Advance(5 * time.Minute)

		assert.Equal(t, 1, all)
		stats := sim.Stats()
		assert.Equal(t, 3, stats.SessionsStarted)
		assert.Equal(t, 3, stats.SessionsCompleted)
		assert.Equal(t, 3, stats.PhaseEntries[PhaseCheckout])
		assert.Equal(t, 3, host.submits)
		assert.False(t, sim.IsRunning())
	})

	t.Run("waits the delay between sessions", func(t *testing.T) {
		host := &recordingHost{}
		sim, _, clock := newTestSimulator(t, host)
		require.True(t, sim.StartMultipleSessions(2, time.Hour, nil))

		clock.Advance(time.Minute)
		assert.Equal(t, 1, sim.Stats().SessionsCompleted)
		assert.False(t, sim.IsRunning())

		clock.Advance(time.Hour)
		assert.Equal(t, 2, sim.Stats().SessionsStarted)

		sim.Stop()
	})

	t.Run("stop abandons remaining sessions", func(t *testing.T) {
		host := &recordingHost{}
		sim, _, clock := newTestSimulator(t, host)

		var all bool
		require.True(t, sim.StartMultipleSessions(3, 2*time.Second, func() { all = true }))
		clock.Advance(10 * time.Second)
		sim.Stop()
		clock.Advance(10 * time.Minute)

		assert.False(t, all)
		assert.Equal(t, 1, sim.Stats().SessionsStarted)
	})

	t.Run("zero count completes immediately", func(t *testing.T) {
		sim, _, _ := newTestSimulator(t, &recordingHost{})

		var all bool
		assert.True(t, sim.StartMultipleSessions(0, time.Second, func() { all = true }))
		assert.True(t, all)
		assert.Zero(t, sim.Stats().SessionsStarted)
	})
}

func TestSimulator_MissingFormIsTolerated(t *testing.T) {
	host := &recordingHost{noFormYet: true}
	sim, _, clock := newTestSimulator(t, host)

	var done bool
	require.True(t, sim.StartSession(func() { done = true }))
	clock.Advance(time.Minute)

	assert.True(t, done)
	assert.Empty(t, host.fills)
	assert.Zero(t, host.submits)
}

func TestSimulator_EventsPublished(t *testing.T) {
	sink := &eventRecorder{}
	clock := &fakeClock{}
	sim := New(service.NewCartStore(), &recordingHost{}, WithClock(clock), WithEventSink(sink))

	require.True(t, sim.StartSession(nil))
	clock.Advance(time.Minute)
	require.True(t, sim.StartSession(nil))
	sim.Stop()

	assert.Equal(t, []string{
		model.EventSessionStarted,
		model.EventSessionCompleted,
		model.EventSessionStarted,
		model.EventSessionStopped,
	}, sink.kinds())
	assert.Equal(t, uint64(2), sink.events[3].SessionID)
}

type eventRecorder struct {
	mu     sync.Mutex
	events []*model.Event
}

func (r *eventRecorder) Publish(e *model.Event) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return true
}

func (r *eventRecorder) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func TestSimulator_HeadlessCheckout(t *testing.T) {
	cart := service.NewCartStore()
	api := new(mocks.MockShopAPI)
	api.On("SubmitOrder", mock.Anything, mock.MatchedBy(func(req model.OrderRequest) bool {
		return req.ItemCount() >= 2 && req.Customer.Name != ""
	})).Return(model.OrderResult{
		Success:           true,
		OrderID:           "ICE-5EED0001",
		Message:           "Order placed successfully!",
		EstimatedDelivery: "15-20 minutes",
	}, nil)

	checkout := service.NewCheckoutOrchestrator(cart, api)
	host := NewHeadlessHost(checkout)
	clock := &fakeClock{}
	sim := New(cart, host, WithClock(clock), WithRand(rand.New(rand.NewPCG(7, 7))))

	require.True(t, sim.StartSession(nil))
	clock.Advance(time.Minute)

	assert.True(t, cart.Snapshot().IsEmpty())
	assert.Equal(t, ScreenMenu, host.Screen())
	assert.Equal(t, 0, host.ScrollPosition())
	assert.NoError(t, host.LastError())

	outcome, ok := host.LastOutcome()
	require.True(t, ok)
	assert.Equal(t, service.CheckoutSucceeded, outcome.State)
	assert.Equal(t, "ICE-5EED0001", outcome.OrderID)
	assert.Equal(t, PaymentToken, host.FormValues().PaymentToken)
	api.AssertNumberOfCalls(t, "SubmitOrder", 1)
}

// heldOrderAPI keeps the SubmitOrder callback until the test delivers it.
type heldOrderAPI struct {
	mocks.MockShopAPI
	mu      sync.Mutex
	pending func(model.OrderResult, error)
}

func (a *heldOrderAPI) SubmitOrder(_ context.Context, _ model.OrderRequest, cb func(model.OrderResult, error)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.pending = cb
}

func (a *heldOrderAPI) held() func(model.OrderResult, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pending
}

func TestSimulator_OrderInFlightOutlivesStop(t *testing.T) {
	cart := service.NewCartStore()
	api := &heldOrderAPI{}
	checkout := service.NewCheckoutOrchestrator(cart, api)
	host := NewHeadlessHost(checkout)
	clock := &fakeClock{}
	sim := New(cart, host, WithClock(clock), WithRand(rand.New(rand.NewPCG(3, 4))))

	require.True(t, sim.StartSession(nil))
	for i := 0; i < 600 && api.held() == nil; i++ {
		clock.Advance(100 * time.Millisecond)
	}
	deliver := api.held()
	require.NotNil(t, deliver, "session never submitted an order")
	require.True(t, sim.IsRunning())

	sim.Stop()
	assert.False(t, sim.IsRunning())
	assert.False(t, cart.Snapshot().IsEmpty())

	deliver(model.OrderResult{Success: true, OrderID: "ICE-0000CAFE"}, nil)

	assert.True(t, cart.Snapshot().IsEmpty())
	outcome, ok := host.LastOutcome()
	require.True(t, ok)
	assert.Equal(t, service.CheckoutSucceeded, outcome.State)

	clock.Advance(time.Minute)
	assert.NotEqual(t, ScreenMenu, host.Screen(), "stopped session must not navigate back")
}

func TestSimulator_RealClock(t *testing.T) {
	timing := Timing{Short: time.Millisecond, Medium: time.Millisecond, Long: time.Millisecond, Settle: time.Millisecond}
	sim := New(service.NewCartStore(), &recordingHost{}, WithTiming(timing))

	done := make(chan struct{})
	require.True(t, sim.StartMultipleSessions(2, time.Millisecond, func() { close(done) }))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		sim.Stop()
		t.Fatal("sessions did not complete")
	}
	assert.Equal(t, 2, sim.Stats().SessionsCompleted)
}

func TestHeadlessHost(t *testing.T) {
	t.Run("form only on checkout screen", func(t *testing.T) {
		h := NewHeadlessHost(nil)
		assert.Nil(t, h.CurrentForm())

		h.Navigate(ScreenCheckout)
		form := h.CurrentForm()
		require.NotNil(t, form)

		form.Fill(FieldName, "Sarah Davis")
		form.Fill(FieldEmail, "sarah@sample.com")
		form.Fill(FieldAddress, "789 Pine Rd, Chicago, IL 60601")
		form.Fill(FieldPaymentToken, PaymentToken)

		assert.Equal(t, model.CustomerForm{
			Name:         "Sarah Davis",
			Email:        "sarah@sample.com",
			Address:      "789 Pine Rd, Chicago, IL 60601",
			PaymentToken: PaymentToken,
		}, h.FormValues())
	})

	t.Run("rejected submission keeps values", func(t *testing.T) {
		checkout := service.NewCheckoutOrchestrator(service.NewCartStore(), new(mocks.MockShopAPI))
		h := NewHeadlessHost(checkout)
		h.Navigate(ScreenCheckout)
		h.CurrentForm().Fill(FieldName, "James Johnson")
		h.CurrentForm().Submit()

		var verr *model.ValidationError
		require.ErrorAs(t, h.LastError(), &verr)
		assert.True(t, verr.Has(model.FieldCart))
		assert.Equal(t, "James Johnson", h.FormValues().Name)
		_, ok := h.LastOutcome()
		assert.False(t, ok)
	})
}

func TestScreenAndFieldNames(t *testing.T) {
	assert.Equal(t, "checkout", ScreenCheckout.String())
	assert.Equal(t, "unknown", Screen(9).String())
	assert.Equal(t, "payment_token", FieldPaymentToken.String())
	assert.Equal(t, "unknown", Field(9).String())
}

var _ Submitter = (*service.CheckoutOrchestrator)(nil)
