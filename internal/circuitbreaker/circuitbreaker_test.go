//go:build !integration

package circuitbreaker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var errTest = errors.New("test error")

func fail() error    { return errTest }
func succeed() error { return nil }

// newTestBreaker returns a breaker with a controllable clock.
func newTestBreaker(failures, successes int) (*CircuitBreaker, *time.Time) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cb := New(Config{
		FailureThreshold: failures,
		SuccessThreshold: successes,
		Timeout:          time.Second,
		Name:             "test",
	})
	cb.now = func() time.Time { return now }
	return cb, &now
}

func TestCircuitBreaker_Execute_Success(t *testing.T) {
	cb := New(DefaultConfig())

	err := cb.Execute(context.Background(), succeed)

	assert.NoError(t, err)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_Execute_Failure(t *testing.T) {
	cb, _ := newTestBreaker(2, 1)

	assert.Equal(t, errTest, cb.Execute(context.Background(), fail))
	assert.Equal(t, StateClosed, cb.State())

	assert.Equal(t, errTest, cb.Execute(context.Background(), fail))
	assert.Equal(t, StateOpen, cb.State())

	called := false
	err := cb.Execute(context.Background(), func() error {
		called = true
		return nil
	})
	assert.Equal(t, ErrCircuitOpen, err)
	assert.False(t, called)
}

func TestCircuitBreaker_Recovery(t *testing.T) {
	cb, now := newTestBreaker(2, 2)

	_ = cb.Execute(context.Background(), fail)
	_ = cb.Execute(context.Background(), fail)
	assert.Equal(t, StateOpen, cb.State())

	*now = now.Add(1100 * time.Millisecond)

	assert.NoError(t, cb.Execute(context.Background(), succeed))
	assert.Equal(t, StateHalfOpen, cb.State())

	assert.NoError(t, cb.Execute(context.Background(), succeed))
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_HalfOpen_Failure(t *testing.T) {
	cb, now := newTestBreaker(2, 2)

	_ = cb.Execute(context.Background(), fail)
	_ = cb.Execute(context.Background(), fail)
	*now = now.Add(2 * time.Second)

	err := cb.Execute(context.Background(), fail)

	assert.Error(t, err)
	assert.Equal(t, StateOpen, cb.State())
}

func TestCircuitBreaker_ContextAlreadyDone(t *testing.T) {
	cb, _ := newTestBreaker(1, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := cb.Execute(ctx, func() error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
	assert.Equal(t, StateClosed, cb.State())
}

func TestCircuitBreaker_IsFailure(t *testing.T) {
	tests := []struct {
		name      string
		isFailure func(error) bool
		err       error
		wantState State
	}{
		{name: "default counts plain errors", err: errTest, wantState: StateOpen},
		{name: "default ignores cancellation", err: context.Canceled, wantState: StateClosed},
		{
			name:      "custom classifier",
			isFailure: func(err error) bool { return !errors.Is(err, errTest) },
			err:       errTest,
			wantState: StateClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cb := New(Config{FailureThreshold: 1, SuccessThreshold: 1, Timeout: time.Minute, IsFailure: tt.isFailure})

			err := cb.Execute(context.Background(), func() error { return tt.err })

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.wantState, cb.State())
		})
	}
}

func TestCircuitBreaker_GetStats(t *testing.T) {
	cb := New(DefaultConfig())

	stats := cb.GetStats()
	assert.Equal(t, "closed", stats.State)
	assert.Equal(t, "circuit-breaker", stats.Name)
	assert.True(t, stats.IsHealthy)
	assert.Equal(t, 0, stats.FailureCount)

	_ = cb.Execute(context.Background(), fail)

	stats = cb.GetStats()
	assert.Equal(t, 1, stats.FailureCount)
	assert.False(t, stats.LastFailure.IsZero())
}

func TestCircuitBreaker_IsOpen(t *testing.T) {
	cb, _ := newTestBreaker(1, 1)
	assert.False(t, cb.IsOpen())

	_ = cb.Execute(context.Background(), fail)

	assert.True(t, cb.IsOpen())
	assert.False(t, cb.GetStats().IsHealthy)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "closed", StateClosed.String())
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "half-open", StateHalfOpen.String())
	assert.Equal(t, "unknown", State(9).String())
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.Equal(t, 5, config.FailureThreshold)
	assert.Equal(t, 2, config.SuccessThreshold)
	assert.Equal(t, 30*time.Second, config.Timeout)
	assert.Equal(t, "circuit-breaker", config.Name)
}

func TestCircuitBreaker_OnStateChange(t *testing.T) {
	var got []string
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var cb *CircuitBreaker
	cb = New(Config{
		FailureThreshold: 1,
		SuccessThreshold: 1,
		Timeout:          time.Second,
		Name:             "shop_api",
		OnStateChange: func(name string, from, to State) {
			// the lock is released, so reading stats must not deadlock
			assert.Equal(t, to.String(), cb.GetStats().State)
			got = append(got, name+":"+from.String()+"->"+to.String())
		},
	})
	cb.now = func() time.Time { return now }

	_ = cb.Execute(context.Background(), fail)
	_ = cb.Execute(context.Background(), succeed) // rejected while open
	now = now.Add(2 * time.Second)
	_ = cb.Execute(context.Background(), succeed)

	assert.Equal(t, []string{
		"shop_api:closed->open",
		"shop_api:open->half-open",
		"shop_api:half-open->closed",
	}, got)
}

func TestNew_ZeroConfigUsesDefaults(t *testing.T) {
	cb := New(Config{Name: "journal"})

	for range 4 {
		_ = cb.Execute(context.Background(), fail)
	}
	assert.Equal(t, StateClosed, cb.State())

	_ = cb.Execute(context.Background(), fail)
	assert.Equal(t, StateOpen, cb.State())
}
