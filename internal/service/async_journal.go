package service

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/guttosm/scoop-service/internal/logger"
)

// EventSink accepts journal events without blocking the caller.
type EventSink interface {
	// Publish enqueues event and reports whether it was accepted.
	Publish(event *model.Event) bool
}

// NopSink discards every event.
type NopSink struct{}

// Publish drops event.
func (NopSink) Publish(*model.Event) bool { return false }

// AsyncJournalConfig holds configuration for the async journal.
type AsyncJournalConfig struct {
	// BufferSize is the capacity of the event queue.
	BufferSize int
	// NumWorkers is the number of goroutines writing batches.
	NumWorkers int
	// BatchSize is the largest batch a worker writes at once.
	BatchSize int
	// FlushInterval bounds how long a partial batch waits.
	FlushInterval time.Duration
	// WriteTimeout bounds a single batch write.
	WriteTimeout time.Duration
}

// DefaultAsyncJournalConfig returns the defaults used by the service.
func DefaultAsyncJournalConfig() AsyncJournalConfig {
	return AsyncJournalConfig{
		BufferSize:    1000,
		NumWorkers:    2,
		BatchSize:     50,
		FlushInterval: time.Second,
		WriteTimeout:  5 * time.Second,
	}
}

// AsyncJournalStats are the async journal counters.
type AsyncJournalStats struct {
	Enqueued int64 `json:"enqueued"`
	Dropped  int64 `json:"dropped"`
	Written  int64 `json:"written"`
	Failed   int64 `json:"failed"`
}

// AsyncJournal batches events onto a Journal from a fixed worker pool.
// Events published when the queue is full are dropped.
type AsyncJournal struct {
	journal Journal
	cfg     AsyncJournalConfig
	events  chan *model.Event
	wg      sync.WaitGroup
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool

	enqueued atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
	failed   atomic.Int64
}

var _ EventSink = (*AsyncJournal)(nil)

// NewAsyncJournal starts the worker pool.
func NewAsyncJournal(journal Journal, cfg AsyncJournalConfig) *AsyncJournal {
	defaults := DefaultAsyncJournalConfig()
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = defaults.BufferSize
	}
	if cfg.NumWorkers <= 0 {
		cfg.NumWorkers = defaults.NumWorkers
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = defaults.BatchSize
	}
	if cfg.FlushInterval <= 0 {
		cfg.FlushInterval = defaults.FlushInterval
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaults.WriteTimeout
	}

	j := &AsyncJournal{
		journal: journal,
		cfg:     cfg,
		events:  make(chan *model.Event, cfg.BufferSize),
		log:     logger.Component("journal"),
	}

	for i := 0; i < cfg.NumWorkers; i++ {
		j.wg.Add(1)
		go j.worker()
	}
	return j
}

// Publish enqueues event for writing. It never blocks.
func (j *AsyncJournal) Publish(event *model.Event) bool {
	j.mu.RLock()
	defer j.mu.RUnlock()

	if j.closed {
		j.dropped.Add(1)
		return false
	}

	select {
	case j.events <- event:
		j.enqueued.Add(1)
		return true
	default:
		j.dropped.Add(1)
		return false
	}
}

// Stop flushes queued events and waits for the workers to exit.
func (j *AsyncJournal) Stop() {
	j.mu.Lock()
	if j.closed {
		j.mu.Unlock()
		return
	}
	j.closed = true
	close(j.events)
	j.mu.Unlock()

	j.wg.Wait()
}

// Stats returns the current counters.
func (j *AsyncJournal) Stats() AsyncJournalStats {
	return AsyncJournalStats{
		Enqueued: j.enqueued.Load(),
		Dropped:  j.dropped.Load(),
		Written:  j.written.Load(),
		Failed:   j.failed.Load(),
	}
}

func (j *AsyncJournal) worker() {
	defer j.wg.Done()

	ticker := time.NewTicker(j.cfg.FlushInterval)
	defer ticker.Stop()

	batch := make([]*model.Event, 0, j.cfg.BatchSize)
	for {
		select {
		case event, ok := <-j.events:
			if !ok {
				j.flush(batch)
				return
			}
			batch = append(batch, event)
			if len(batch) >= j.cfg.BatchSize {
				j.flush(batch)
				batch = make([]*model.Event, 0, j.cfg.BatchSize)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				j.flush(batch)
				batch = make([]*model.Event, 0, j.cfg.BatchSize)
			}
		}
	}
}

func (j *AsyncJournal) flush(batch []*model.Event) {
	if len(batch) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), j.cfg.WriteTimeout)
	defer cancel()

	if err := j.journal.RecordMany(ctx, batch); err != nil {
		j.failed.Add(int64(len(batch)))
		j.log.Warn().Err(err).Int("events", len(batch)).Msg("Failed to write journal batch")
		return
	}
	j.written.Add(int64(len(batch)))
}
