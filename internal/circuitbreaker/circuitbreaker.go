// Package circuitbreaker provides circuit breaker pattern implementation for resilience.
package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrCircuitOpen is returned when the circuit breaker is open.
var ErrCircuitOpen = errors.New("circuit breaker is open")

// State represents the state of the circuit breaker.
type State int

const (
	// StateClosed means the circuit is closed and requests pass through normally.
	StateClosed State = iota
	// StateOpen means the circuit is open and requests are rejected immediately.
	StateOpen
	// StateHalfOpen means the circuit is half-open, allowing a test request.
	StateHalfOpen
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// Config holds circuit breaker configuration.
type Config struct {
	// FailureThreshold is the number of consecutive failures before opening the circuit.
	FailureThreshold int
	// SuccessThreshold is the number of consecutive half-open successes needed to close it.
	SuccessThreshold int
	// Timeout is how long the circuit stays open before a probe is let through.
	Timeout time.Duration
	// Name identifies the breaker in logs, metrics and readiness output.
	Name string
	// IsFailure decides whether an error counts against the circuit.
	// Nil counts every error except context cancellation.
	IsFailure func(error) bool
	// OnStateChange, if set, is called after every transition, outside the
	// breaker's lock and on the goroutine that caused it.
	OnStateChange func(name string, from, to State)
}

// DefaultConfig returns a default circuit breaker configuration.
func DefaultConfig() Config {
	return Config{
		FailureThreshold: 5,
		SuccessThreshold: 2,
		Timeout:          30 * time.Second,
		Name:             "circuit-breaker",
	}
}

// CircuitBreaker guards calls to a flaky dependency. Consecutive failures
// open it; after Timeout one probe runs half-open and SuccessThreshold
// successes close it again.
type CircuitBreaker struct {
	config          Config
	state           State
	failureCount    int
	successCount    int
	lastFailureTime time.Time
	now             func() time.Time
	mu              sync.RWMutex
}

// New creates a circuit breaker. Zero thresholds fall back to DefaultConfig.
func New(config Config) *CircuitBreaker {
	defaults := DefaultConfig()
	if config.FailureThreshold <= 0 {
		config.FailureThreshold = defaults.FailureThreshold
	}
	if config.SuccessThreshold <= 0 {
		config.SuccessThreshold = defaults.SuccessThreshold
	}
	if config.Timeout <= 0 {
		config.Timeout = defaults.Timeout
	}
	if config.IsFailure == nil {
		config.IsFailure = countsAsFailure
	}
	return &CircuitBreaker{
		config: config,
		state:  StateClosed,
		now:    time.Now,
	}
}

func countsAsFailure(err error) bool {
	return !errors.Is(err, context.Canceled)
}

// Name returns the configured name.
func (cb *CircuitBreaker) Name() string {
	return cb.config.Name
}

// transition is a state change to report once the lock is released.
type transition struct {
	from, to State
}

// Execute executes a function with circuit breaker protection.
// Returns ErrCircuitOpen if the circuit is open, or the context error if ctx is already done.
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cb.mu.Lock()
	if cb.state == StateOpen && cb.now().Sub(cb.lastFailureTime) < cb.config.Timeout {
		cb.mu.Unlock()
		return ErrCircuitOpen
	}
	var probe *transition
	if cb.state == StateOpen {
		probe = cb.setState(StateHalfOpen)
		cb.successCount = 0
	}
	cb.mu.Unlock()
	cb.notify(probe)

	err := fn()

	cb.mu.Lock()
	var changed *transition
	switch {
	case err == nil:
		changed = cb.onSuccess()
	case cb.config.IsFailure(err):
		changed = cb.onFailure()
	}
	cb.mu.Unlock()
	cb.notify(changed)

	return err
}

func (cb *CircuitBreaker) onFailure() *transition {
	cb.failureCount++
	cb.lastFailureTime = cb.now()

	switch cb.state {
	case StateClosed:
		if cb.failureCount >= cb.config.FailureThreshold {
			return cb.setState(StateOpen)
		}
	case StateHalfOpen:
		// a failed probe reopens immediately
		cb.failureCount = cb.config.FailureThreshold
		return cb.setState(StateOpen)
	}
	return nil
}

func (cb *CircuitBreaker) onSuccess() *transition {
	cb.failureCount = 0
	if cb.state != StateHalfOpen {
		cb.successCount = 0
		return nil
	}

	cb.successCount++
	if cb.successCount < cb.config.SuccessThreshold {
		return nil
	}
	cb.successCount = 0
	return cb.setState(StateClosed)
}

// setState must be called with mu held.
func (cb *CircuitBreaker) setState(to State) *transition {
	from := cb.state
	cb.state = to
	log.Info().
		Str("circuit_breaker", cb.config.Name).
		Stringer("from", from).
		Stringer("to", to).
		Int("failure_count", cb.failureCount).
		Msg("Circuit breaker state changed")
	return &transition{from: from, to: to}
}

func (cb *CircuitBreaker) notify(t *transition) {
	if t != nil && cb.config.OnStateChange != nil {
		cb.config.OnStateChange(cb.config.Name, t.from, t.to)
	}
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() State {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// IsOpen returns true if the circuit breaker is open.
func (cb *CircuitBreaker) IsOpen() bool {
	return cb.State() == StateOpen
}

// Stats is a point-in-time view of a circuit breaker.
type Stats struct {
	Name         string    `json:"name"`
	State        string    `json:"state"`
	FailureCount int       `json:"failure_count"`
	SuccessCount int       `json:"success_count"`
	LastFailure  time.Time `json:"last_failure,omitempty"`
	IsHealthy    bool      `json:"is_healthy"`
}

// GetStats returns current circuit breaker statistics.
func (cb *CircuitBreaker) GetStats() Stats {
	cb.mu.RLock()
	defer cb.mu.RUnlock()

	return Stats{
		Name:         cb.config.Name,
		State:        cb.state.String(),
		FailureCount: cb.failureCount,
		SuccessCount: cb.successCount,
		LastFailure:  cb.lastFailureTime,
		IsHealthy:    cb.state != StateOpen,
	}
}
