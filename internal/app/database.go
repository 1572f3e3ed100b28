// Package app provides database initialization and setup.
package app

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/scoop-service/config"
	"github.com/guttosm/scoop-service/internal/circuitbreaker"
	"github.com/guttosm/scoop-service/internal/metrics"
	"github.com/guttosm/scoop-service/internal/repository"
	"github.com/guttosm/scoop-service/internal/service"
)

// JournalCircuitBreakerName names the breaker guarding journal writes and reads.
const JournalCircuitBreakerName = "mongodb_journal"

// DatabaseComponents holds the MongoDB-backed event journal.
type DatabaseComponents struct {
	DB             *repository.MongoDB
	Journal        service.Journal
	CircuitBreaker *circuitbreaker.CircuitBreaker
}

// InitializeDatabase connects to MongoDB and builds the event journal.
// Returns nil if the database is disabled or the connection fails; the
// service then runs without a journal.
func InitializeDatabase(cfg config.DatabaseConfig) *DatabaseComponents {
	if !cfg.Enabled {
		return nil
	}

	db, err := repository.NewMongoDB(cfg.URI, cfg.DatabaseName)
	if err != nil {
		log.Error().Err(err).Msg("Failed to connect to MongoDB - continuing without journal")
		return nil
	}

	log.Info().Str("database", cfg.DatabaseName).Msg("Connected to MongoDB")

	if cfg.EventsTTL > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := db.SetEventsTTL(ctx, cfg.EventsTTL); err != nil {
			log.Warn().Err(err).Msg("Failed to set events TTL index")
		}
		cancel()
	}

	cb := newJournalCircuitBreaker(cfg)
	repo := repository.NewEventsRepositoryWithCircuitBreaker(repository.NewEventsRepository(db), cb)

	return &DatabaseComponents{
		DB:             db,
		Journal:        service.NewJournalService(repo),
		CircuitBreaker: cb,
	}
}

func newJournalCircuitBreaker(cfg config.DatabaseConfig) *circuitbreaker.CircuitBreaker {
	return circuitbreaker.New(circuitbreaker.Config{
		FailureThreshold: cfg.CircuitBreakerFailureThreshold,
		SuccessThreshold: cfg.CircuitBreakerSuccessThreshold,
		Timeout:          cfg.CircuitBreakerTimeout,
		Name:             JournalCircuitBreakerName,
		OnStateChange:    recordBreakerState,
	})
}

// recordBreakerState exports breaker transitions as metrics.
func recordBreakerState(name string, _, to circuitbreaker.State) {
	metrics.RecordCircuitBreakerState(name, to.String(), int(to))
}

// ErrNotConnected is reported by Check when no MongoDB client is held.
var ErrNotConnected = errors.New("mongodb not connected")

// Check pings MongoDB for the readiness probe.
func (d *DatabaseComponents) Check() error {
	if d.DB == nil {
		return ErrNotConnected
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return d.DB.HealthCheck(ctx)
}

// Close disconnects from MongoDB.
func (d *DatabaseComponents) Close(ctx context.Context) error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close(ctx)
}
