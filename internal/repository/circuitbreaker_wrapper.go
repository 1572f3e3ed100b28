package repository

import (
	"context"
	"errors"

	"github.com/guttosm/scoop-service/internal/circuitbreaker"
)

// EventsRepositoryWithCircuitBreaker guards an events repository with a circuit breaker.
// Writes are dropped silently while the circuit is open.
type EventsRepositoryWithCircuitBreaker struct {
	repo           EventsRepositoryInterface
	circuitBreaker *circuitbreaker.CircuitBreaker
}

var _ EventsRepositoryInterface = (*EventsRepositoryWithCircuitBreaker)(nil)

// NewEventsRepositoryWithCircuitBreaker creates a new repository wrapper.
func NewEventsRepositoryWithCircuitBreaker(repo EventsRepositoryInterface, cb *circuitbreaker.CircuitBreaker) *EventsRepositoryWithCircuitBreaker {
	return &EventsRepositoryWithCircuitBreaker{
		repo:           repo,
		circuitBreaker: cb,
	}
}

// Create stores one event.
func (r *EventsRepositoryWithCircuitBreaker) Create(ctx context.Context, doc *EventDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.Create(ctx, doc)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// CreateMany stores events in bulk.
func (r *EventsRepositoryWithCircuitBreaker) CreateMany(ctx context.Context, docs []*EventDocument) error {
	err := r.circuitBreaker.Execute(ctx, func() error {
		return r.repo.CreateMany(ctx, docs)
	})
	if errors.Is(err, circuitbreaker.ErrCircuitOpen) {
		return nil
	}
	return err
}

// Query returns matching events.
func (r *EventsRepositoryWithCircuitBreaker) Query(ctx context.Context, opts EventQueryOptions) ([]*EventDocument, error) {
	var result []*EventDocument
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Query(ctx, opts)
		return cbErr
	})
	return result, err
}

// Count returns the number of matching events.
func (r *EventsRepositoryWithCircuitBreaker) Count(ctx context.Context, opts EventQueryOptions) (int64, error) {
	var result int64
	err := r.circuitBreaker.Execute(ctx, func() error {
		var cbErr error
		result, cbErr = r.repo.Count(ctx, opts)
		return cbErr
	})
	return result, err
}

// GetCircuitBreaker returns the underlying circuit breaker for monitoring.
func (r *EventsRepositoryWithCircuitBreaker) GetCircuitBreaker() *circuitbreaker.CircuitBreaker {
	return r.circuitBreaker
}
