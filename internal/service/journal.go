package service

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/guttosm/scoop-service/internal/repository"
)

// Journal stores and reads journal events.
type Journal interface {
	// Record stores a single event.
	Record(ctx context.Context, event *model.Event) error

	// RecordMany stores events in bulk.
	RecordMany(ctx context.Context, events []*model.Event) error

	// Query returns events matching opts, newest first.
	Query(ctx context.Context, opts model.EventQueryOptions) ([]model.Event, error)

	// Count returns the number of events matching opts.
	Count(ctx context.Context, opts model.EventQueryOptions) (int64, error)
}

// JournalService implements Journal over an events repository.
type JournalService struct {
	repo repository.EventsRepositoryInterface
}

// NewJournalService creates a journal backed by repo.
func NewJournalService(repo repository.EventsRepositoryInterface) *JournalService {
	return &JournalService{repo: repo}
}

// Record stores a single event.
func (s *JournalService) Record(ctx context.Context, event *model.Event) error {
	return s.repo.Create(ctx, toDocument(event))
}

// RecordMany stores events in bulk.
func (s *JournalService) RecordMany(ctx context.Context, events []*model.Event) error {
	if len(events) == 0 {
		return nil
	}

	docs := make([]*repository.EventDocument, len(events))
	for i, e := range events {
		docs[i] = toDocument(e)
	}
	return s.repo.CreateMany(ctx, docs)
}

// Query returns events matching opts, newest first.
func (s *JournalService) Query(ctx context.Context, opts model.EventQueryOptions) ([]model.Event, error) {
	docs, err := s.repo.Query(ctx, toRepositoryOptions(opts))
	if err != nil {
		return nil, err
	}

	events := make([]model.Event, len(docs))
	for i, doc := range docs {
		events[i] = fromDocument(doc)
	}
	return events, nil
}

// Count returns the number of events matching opts.
func (s *JournalService) Count(ctx context.Context, opts model.EventQueryOptions) (int64, error) {
	return s.repo.Count(ctx, toRepositoryOptions(opts))
}

func toRepositoryOptions(opts model.EventQueryOptions) repository.EventQueryOptions {
	return repository.EventQueryOptions{
		Kind:      opts.Kind,
		OrderID:   opts.OrderID,
		RequestID: opts.RequestID,
		StartTime: opts.StartTime,
		EndTime:   opts.EndTime,
		Limit:     opts.Limit,
		Skip:      opts.Skip,
	}
}

// toDocument fills in the id and timestamp on event before copying it.
func toDocument(e *model.Event) *repository.EventDocument {
	if e.ID.IsZero() {
		e.ID = primitive.NewObjectID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	return &repository.EventDocument{
		ID:         e.ID,
		Timestamp:  e.Timestamp,
		Kind:       e.Kind,
		Level:      e.Level,
		Message:    e.Message,
		RequestID:  e.RequestID,
		Method:     e.Method,
		Path:       e.Path,
		StatusCode: e.StatusCode,
		Duration:   e.Duration,
		IP:         e.IP,
		Error:      e.Error,
		OrderID:    e.OrderID,
		SessionID:  e.SessionID,
		Fields:     e.Fields,
	}
}

func fromDocument(doc *repository.EventDocument) model.Event {
	return model.Event{
		ID:         doc.ID,
		Timestamp:  doc.Timestamp,
		Kind:       doc.Kind,
		Level:      doc.Level,
		Message:    doc.Message,
		RequestID:  doc.RequestID,
		Method:     doc.Method,
		Path:       doc.Path,
		StatusCode: doc.StatusCode,
		Duration:   doc.Duration,
		IP:         doc.IP,
		Error:      doc.Error,
		OrderID:    doc.OrderID,
		SessionID:  doc.SessionID,
		Fields:     doc.Fields,
	}
}
