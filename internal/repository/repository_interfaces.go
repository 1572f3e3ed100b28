// Package repository provides the MongoDB-backed event journal.
package repository

import "context"

// EventsRepositoryInterface defines the journal storage operations.
type EventsRepositoryInterface interface {
	Create(ctx context.Context, doc *EventDocument) error
	CreateMany(ctx context.Context, docs []*EventDocument) error
	Query(ctx context.Context, opts EventQueryOptions) ([]*EventDocument, error)
	Count(ctx context.Context, opts EventQueryOptions) (int64, error)
}
