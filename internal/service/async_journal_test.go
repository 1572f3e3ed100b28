package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/guttosm/scoop-service/internal/domain/model"
)

// MockJournal is a mock implementation of the Journal interface.
type MockJournal struct {
	mock.Mock

	mu      sync.Mutex
	batches [][]*model.Event
	block   chan struct{}
}

func (m *MockJournal) Record(ctx context.Context, event *model.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockJournal) RecordMany(ctx context.Context, events []*model.Event) error {
	if m.block != nil {
		<-m.block
	}
	m.mu.Lock()
	m.batches = append(m.batches, events)
	m.mu.Unlock()
	args := m.Called(ctx, events)
	return args.Error(0)
}

func (m *MockJournal) Query(ctx context.Context, opts model.EventQueryOptions) ([]model.Event, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Event), args.Error(1)
}

func (m *MockJournal) Count(ctx context.Context, opts model.EventQueryOptions) (int64, error) {
	args := m.Called(ctx, opts)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockJournal) recorded() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int
	for _, b := range m.batches {
		n += len(b)
	}
	return n
}

func TestDefaultAsyncJournalConfig(t *testing.T) {
	cfg := DefaultAsyncJournalConfig()

	assert.Equal(t, 1000, cfg.BufferSize)
	assert.Equal(t, 2, cfg.NumWorkers)
	assert.Equal(t, 50, cfg.BatchSize)
	assert.Equal(t, time.Second, cfg.FlushInterval)
	assert.Equal(t, 5*time.Second, cfg.WriteTimeout)
}

func TestAsyncJournal_Publish(t *testing.T) {
	t.Run("stop flushes queued events", func(t *testing.T) {
		journal := &MockJournal{}
		journal.On("RecordMany", mock.Anything, mock.Anything).Return(nil)

		aj := NewAsyncJournal(journal, AsyncJournalConfig{
			BufferSize:    10,
			NumWorkers:    1,
			BatchSize:     100,
			FlushInterval: time.Hour,
		})
		for i := 0; i < 5; i++ {
			assert.True(t, aj.Publish(model.NewEvent(model.EventHTTPRequest, "GET /api/menu")))
		}
		aj.Stop()

		assert.Equal(t, 5, journal.recorded())
		stats := aj.Stats()
		assert.Equal(t, int64(5), stats.Enqueued)
		assert.Equal(t, int64(5), stats.Written)
		assert.Zero(t, stats.Dropped)
	})

	t.Run("full batch is written without waiting for the ticker", func(t *testing.T) {
		journal := &MockJournal{}
		journal.On("RecordMany", mock.Anything, mock.Anything).Return(nil)

		aj := NewAsyncJournal(journal, AsyncJournalConfig{
			BufferSize:    10,
			NumWorkers:    1,
			BatchSize:     2,
			FlushInterval: time.Hour,
		})
		defer aj.Stop()

		aj.Publish(model.NewEvent(model.EventSessionStarted, "a"))
		aj.Publish(model.NewEvent(model.EventSessionCompleted, "b"))

		assert.Eventually(t, func() bool { return journal.recorded() == 2 }, time.Second, 5*time.Millisecond)
	})

	t.Run("partial batch is written on flush interval", func(t *testing.T) {
		journal := &MockJournal{}
		journal.On("RecordMany", mock.Anything, mock.Anything).Return(nil)

		aj := NewAsyncJournal(journal, AsyncJournalConfig{
			BufferSize:    10,
			NumWorkers:    1,
			BatchSize:     50,
			FlushInterval: 10 * time.Millisecond,
		})
		defer aj.Stop()

		aj.Publish(model.NewEvent(model.EventCheckoutSucceeded, "ok"))

		assert.Eventually(t, func() bool { return journal.recorded() == 1 }, time.Second, 5*time.Millisecond)
	})

	t.Run("drops when buffer is full", func(t *testing.T) {
		journal := &MockJournal{block: make(chan struct{})}
		journal.On("RecordMany", mock.Anything, mock.Anything).Return(nil)

		aj := NewAsyncJournal(journal, AsyncJournalConfig{
			BufferSize:    1,
			NumWorkers:    1,
			BatchSize:     1,
			FlushInterval: time.Hour,
		})

		var accepted int
		for i := 0; i < 20; i++ {
			if aj.Publish(model.NewEvent(model.EventHTTPRequest, "x")) {
				accepted++
			}
		}
		close(journal.block)
		aj.Stop()

		stats := aj.Stats()
		assert.Less(t, accepted, 20)
		assert.Equal(t, int64(accepted), stats.Enqueued)
		assert.Equal(t, int64(20-accepted), stats.Dropped)
	})

	t.Run("publish after stop is rejected", func(t *testing.T) {
		journal := &MockJournal{}
		aj := NewAsyncJournal(journal, DefaultAsyncJournalConfig())
		aj.Stop()
		aj.Stop()

		assert.False(t, aj.Publish(model.NewEvent(model.EventHTTPRequest, "late")))
		assert.Equal(t, int64(1), aj.Stats().Dropped)
	})
}

func TestAsyncJournal_WriteFailure(t *testing.T) {
	journal := &MockJournal{}
	journal.On("RecordMany", mock.Anything, mock.Anything).Return(errors.New("mongo down"))

	aj := NewAsyncJournal(journal, AsyncJournalConfig{BufferSize: 10, NumWorkers: 1, BatchSize: 10, FlushInterval: time.Hour})
	aj.Publish(model.NewEvent(model.EventCheckoutFailed, "a"))
	aj.Publish(model.NewEvent(model.EventCheckoutFailed, "b"))
	aj.Stop()

	stats := aj.Stats()
	assert.Equal(t, int64(2), stats.Failed)
	assert.Zero(t, stats.Written)
}

func TestNopSink(t *testing.T) {
	var sink EventSink = NopSink{}
	assert.False(t, sink.Publish(model.NewEvent(model.EventHTTPRequest, "x")))
}
