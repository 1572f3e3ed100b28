// Package simulator drives scripted customer sessions through the shop:
// browse the menu, add flavors to the cart, view the cart and check out.
package simulator

import (
	"math/rand/v2"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/scoop-service/internal/catalog"
	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/guttosm/scoop-service/internal/logger"
	"github.com/guttosm/scoop-service/internal/metrics"
	"github.com/guttosm/scoop-service/internal/service"
)

// Phase is one stage of a simulated session.
type Phase string

// Session phases, in order.
const (
	PhaseBrowse    Phase = "browse"
	PhaseAddToCart Phase = "add_to_cart"
	PhaseViewCart  Phase = "view_cart"
	PhaseCheckout  Phase = "checkout"
)

// PaymentToken is the test card number entered by simulated customers.
const PaymentToken = "4111111111111111"

var (
	sampleNames = []string{
		"John Smith", "Emma Wilson", "Michael Brown", "Sarah Davis",
		"James Johnson", "Emily Taylor", "David Martinez", "Jessica Anderson",
	}
	sampleEmails = []string{
		"john@example.com", "emma@test.com", "mike@demo.com", "sarah@sample.com",
		"james@email.com", "emily@mail.com", "david@test.org", "jessica@demo.net",
	}
	sampleAddresses = []string{
		"123 Main St, New York, NY 10001",
		"456 Oak Ave, Los Angeles, CA 90001",
		"789 Pine Rd, Chicago, IL 60601",
		"321 Elm Blvd, Houston, TX 77001",
		"654 Maple Dr, Phoenix, AZ 85001",
	}
)

// Timing holds the artificial delays between session actions.
type Timing struct {
	Short  time.Duration
	Medium time.Duration
	Long   time.Duration
	// Settle is how long to wait for a submitted order before leaving checkout.
	Settle time.Duration
}

// DefaultTiming returns the standard session pacing.
func DefaultTiming() Timing {
	return Timing{
		Short:  500 * time.Millisecond,
		Medium: time.Second,
		Long:   2 * time.Second,
		Settle: 3 * time.Second,
	}
}

// Cart is the part of the cart store a session mutates.
type Cart interface {
	Add(item model.FlavorItem)
	Clear()
}

// Stats are the simulator counters.
type Stats struct {
	Running           bool          `json:"running"`
	SessionID         uint64        `json:"session_id"`
	CurrentPhase      Phase         `json:"current_phase,omitempty"`
	SessionsStarted   int           `json:"sessions_started"`
	SessionsCompleted int           `json:"sessions_completed"`
	SessionsStopped   int           `json:"sessions_stopped"`
	PhaseEntries      map[Phase]int `json:"phase_entries"`
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithClock replaces the real clock.
func WithClock(c Clock) Option {
	return func(s *Simulator) {
		s.clock = c
	}
}

// WithTiming replaces DefaultTiming.
func WithTiming(t Timing) Option {
	return func(s *Simulator) {
		s.timing = t
	}
}

// WithRand sets the source for flavor and sample data picks.
func WithRand(r *rand.Rand) Option {
	return func(s *Simulator) {
		s.rng = r
	}
}

// WithEventSink journals session lifecycle events to sink.
func WithEventSink(sink service.EventSink) Option {
	return func(s *Simulator) {
		s.sink = sink
	}
}

type session struct {
	id         uint64
	gen        uint64
	onComplete func()
}

type step struct {
	phase Phase
	run   func(sess *session, next func())
}

// Simulator runs at most one scripted session at a time.
//
// Every delayed action is tagged with the generation it was scheduled in.
// Stop bumps the generation, so actions that fire afterwards do nothing.
type Simulator struct {
	cart   Cart
	host   Host
	clock  Clock
	timing Timing
	sink   service.EventSink
	log    zerolog.Logger
	steps  []step

	running atomic.Bool

	// runMu is held while a scheduled action runs, and by Stop.
	runMu    sync.Mutex
	deferred []func()

	mu        sync.Mutex
	gen       uint64
	seq       uint64
	timers    map[uint64]Timer
	rng       *rand.Rand
	sessionID uint64
	phase     Phase
	started   int
	completed int
	stopped   int
	entries   map[Phase]int
}

// New creates a simulator acting on cart and host.
func New(cart Cart, host Host, opts ...Option) *Simulator {
	s := &Simulator{
		cart:    cart,
		host:    host,
		clock:   RealClock(),
		timing:  DefaultTiming(),
		sink:    service.NopSink{},
		log:     logger.Component("simulator"),
		timers:  make(map[uint64]Timer),
		rng:     rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)),
		entries: make(map[Phase]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.steps = []step{
		{phase: PhaseBrowse, run: s.browse},
		{phase: PhaseAddToCart, run: s.addToCart},
		{phase: PhaseViewCart, run: s.viewCart},
		{phase: PhaseCheckout, run: s.checkout},
	}
	return s
}

// IsRunning reports whether a session is active.
func (s *Simulator) IsRunning() bool {
	return s.running.Load()
}

// StartSession clears the cart and starts a session. It returns false and
// does nothing if a session is already running. onComplete may be nil.
func (s *Simulator) StartSession(onComplete func()) bool {
	if !s.running.CompareAndSwap(false, true) {
		s.log.Warn().Msg("Session already running")
		return false
	}

	s.cart.Clear()

	s.mu.Lock()
	if !s.running.Load() {
		// Stopped between the flag flip and here.
		s.mu.Unlock()
		return false
	}
	s.sessionID++
	s.started++
	sess := &session{id: s.sessionID, gen: s.gen, onComplete: onComplete}
	s.mu.Unlock()

	metrics.RecordSimulatorSession("started")
	s.log.Info().Uint64("session", sess.id).Msg("Starting simulated session")
	s.publish(model.EventSessionStarted, "Session started", sess.id)

	s.advance(sess, 0)
	return true
}

// StartMultipleSessions runs count sessions back to back, waiting delay
// between them, then calls onAllComplete. It returns false if a session is
// already running. Stop abandons the remaining sessions.
func (s *Simulator) StartMultipleSessions(count int, delay time.Duration, onAllComplete func()) bool {
	if count <= 0 {
		if onAllComplete != nil {
			onAllComplete()
		}
		return true
	}

	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	var completed int
	var run func() bool
	run = func() bool {
		s.log.Info().Int("session", completed+1).Int("of", count).Msg("Starting session")
		return s.StartSession(func() {
			completed++
			if completed >= count {
				s.log.Info().Int("count", count).Msg("All sessions completed")
				if onAllComplete != nil {
					onAllComplete()
				}
				return
			}
			s.after(gen, delay, func() {
				if !run() {
					s.log.Warn().Int("remaining", count-completed).Msg("Session chain interrupted")
				}
			})
		})
	}
	return run()
}

// Stop cancels every pending action and clears the running flag.
func (s *Simulator) Stop() {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.mu.Lock()
	s.gen++
	for id, t := range s.timers {
		t.Stop()
		delete(s.timers, id)
	}
	wasRunning := s.running.Swap(false)
	id := s.sessionID
	if wasRunning {
		s.stopped++
	}
	s.phase = ""
	s.mu.Unlock()

	if wasRunning {
		metrics.RecordSimulatorSession("stopped")
		s.publish(model.EventSessionStopped, "Session stopped", id)
	}
	s.log.Info().Msg("Simulation stopped")
}

// Stats returns the current counters.
func (s *Simulator) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := make(map[Phase]int, len(s.entries))
	for p, n := range s.entries {
		entries[p] = n
	}
	return Stats{
		Running:           s.running.Load(),
		SessionID:         s.sessionID,
		CurrentPhase:      s.phase,
		SessionsStarted:   s.started,
		SessionsCompleted: s.completed,
		SessionsStopped:   s.stopped,
		PhaseEntries:      entries,
	}
}

func (s *Simulator) advance(sess *session, i int) {
	if i == len(s.steps) {
		s.finish(sess)
		return
	}

	st := s.steps[i]
	s.mu.Lock()
	s.entries[st.phase]++
	s.phase = st.phase
	s.mu.Unlock()

	metrics.RecordSimulatorPhase(string(st.phase))
	s.log.Debug().Uint64("session", sess.id).Str("phase", string(st.phase)).Msg("Entering phase")

	st.run(sess, func() { s.advance(sess, i+1) })
}

// finish runs inside a scheduled action; onComplete is deferred until the action returns.
func (s *Simulator) finish(sess *session) {
	s.mu.Lock()
	s.completed++
	s.phase = ""
	s.mu.Unlock()
	s.running.Store(false)

	metrics.RecordSimulatorSession("completed")
	s.log.Info().Uint64("session", sess.id).Msg("Session completed")
	s.publish(model.EventSessionCompleted, "Session completed", sess.id)

	if sess.onComplete != nil {
		s.deferred = append(s.deferred, sess.onComplete)
	}
}

// after schedules fn to run after d unless the generation moves past gen first.
func (s *Simulator) after(gen uint64, d time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}

	s.seq++
	id := s.seq
	s.timers[id] = s.clock.AfterFunc(d, func() { s.fire(gen, id, fn) })
}

func (s *Simulator) fire(gen, id uint64, fn func()) {
	s.runMu.Lock()

	s.mu.Lock()
	delete(s.timers, id)
	live := gen == s.gen
	s.mu.Unlock()

	if live {
		fn()
	}
	deferred := s.deferred
	s.deferred = nil
	s.runMu.Unlock()

	for _, f := range deferred {
		f()
	}
}

func (s *Simulator) browse(sess *session, next func()) {
	t := s.timing
	s.after(sess.gen, t.Medium, func() {
		s.after(sess.gen, t.Short, func() { s.host.ScrollMenu(3) })
		s.after(sess.gen, t.Medium, func() { s.host.ScrollMenu(0) })
		s.after(sess.gen, t.Long, next)
	})
}

func (s *Simulator) addToCart(sess *session, next func()) {
	t := s.timing

	s.mu.Lock()
	items := make([]model.FlavorItem, 2+s.rng.IntN(2))
	for i := range items {
		items[i] = catalog.Random(s.rng)
	}
	s.mu.Unlock()

	var add func(k int)
	add = func(k int) {
		if k == len(items) {
			s.after(sess.gen, t.Short, next)
			return
		}
		s.log.Debug().Uint64("session", sess.id).Str("flavor", items[k].Name).Msg("Adding to cart")
		s.cart.Add(items[k])
		s.after(sess.gen, t.Medium, func() { add(k + 1) })
	}
	s.after(sess.gen, t.Short, func() { add(0) })
}

func (s *Simulator) viewCart(sess *session, next func()) {
	t := s.timing
	s.after(sess.gen, t.Short, func() {
		s.host.Navigate(ScreenCart)
		s.after(sess.gen, t.Long, next)
	})
}

func (s *Simulator) checkout(sess *session, next func()) {
	t := s.timing
	s.after(sess.gen, t.Short, func() {
		s.host.Navigate(ScreenCheckout)
		s.after(sess.gen, t.Long, func() {
			s.fillForm(sess, func() {
				s.after(sess.gen, t.Medium, func() { s.submit(sess, next) })
			})
		})
	})
}

func (s *Simulator) fillForm(sess *session, done func()) {
	t := s.timing

	s.mu.Lock()
	values := []struct {
		field Field
		value string
	}{
		{FieldName, sampleNames[s.rng.IntN(len(sampleNames))]},
		{FieldEmail, sampleEmails[s.rng.IntN(len(sampleEmails))]},
		{FieldAddress, sampleAddresses[s.rng.IntN(len(sampleAddresses))]},
		{FieldPaymentToken, PaymentToken},
	}
	s.mu.Unlock()

	var fill func(k int)
	fill = func(k int) {
		if form := s.host.CurrentForm(); form != nil {
			form.Fill(values[k].field, values[k].value)
		}
		if k == len(values)-1 {
			s.after(sess.gen, t.Medium, done)
			return
		}
		s.after(sess.gen, t.Medium, func() { fill(k + 1) })
	}
	s.after(sess.gen, t.Short, func() { fill(0) })
}

func (s *Simulator) submit(sess *session, next func()) {
	t := s.timing

	s.log.Debug().Uint64("session", sess.id).Msg("Submitting order")
	if form := s.host.CurrentForm(); form != nil {
		form.Submit()
	}

	s.after(sess.gen, t.Settle, func() {
		s.after(sess.gen, t.Long, func() {
			s.host.Navigate(ScreenMenu)
			s.after(sess.gen, t.Medium, next)
		})
	})
}

func (s *Simulator) publish(kind, message string, sessionID uint64) {
	e := model.NewEvent(kind, message)
	e.SessionID = sessionID
	s.sink.Publish(e)
}
