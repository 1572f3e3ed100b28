//go:build integration

package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/scoop-service/config"
	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/guttosm/scoop-service/internal/testutil"
)

func integrationConfig(t *testing.T) config.Config {
	return config.Config{
		Server: config.ServerConfig{
			Port:           "8080",
			RequestTimeout: 5 * time.Second,
		},
		Log: config.LogConfig{Level: "error"},
		ShopAPI: config.ShopAPIConfig{
			BaseURL: "http://127.0.0.1:1",
			Timeout: time.Second,
		},
		Database: config.DatabaseConfig{
			URI:                            testutil.SharedURI(),
			DatabaseName:                   testutil.DBName(t),
			EventsTTL:                      24 * time.Hour,
			Enabled:                        true,
			CircuitBreakerFailureThreshold: 5,
			CircuitBreakerSuccessThreshold: 2,
			CircuitBreakerTimeout:          30 * time.Second,
		},
	}
}

func TestInitializeDatabase_Integration(t *testing.T) {
	cfg := integrationConfig(t)

	db := InitializeDatabase(cfg.Database)
	require.NotNil(t, db)
	t.Cleanup(func() { _ = db.Close(context.Background()) })

	assert.NoError(t, db.Check())
	assert.Equal(t, JournalCircuitBreakerName, db.CircuitBreaker.Name())

	ctx := context.Background()
	require.NoError(t, db.Journal.Record(ctx, model.NewEvent(model.EventCheckoutSubmitted, "Checkout submitted")))

	total, err := db.Journal.Count(ctx, model.EventQueryOptions{Kind: model.EventCheckoutSubmitted})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
}

func TestInitializeDatabase_Unreachable(t *testing.T) {
	db := InitializeDatabase(config.DatabaseConfig{
		URI:          "mongodb://127.0.0.1:1",
		DatabaseName: "unreachable",
		Enabled:      true,
	})
	assert.Nil(t, db)
}

func TestInitializeApp_Integration(t *testing.T) {
	cfg := integrationConfig(t)

	a := InitializeApp(cfg)
	require.NotNil(t, a.Database)
	require.NotNil(t, a.Services.Journal)

	w := httptest.NewRecorder()
	a.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	a.Engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	// stopping the services drains the async journal
	journal := a.Database.Journal
	a.Services.Stop()
	a.Router.Stop()

	total, err := journal.Count(context.Background(), model.EventQueryOptions{Kind: model.EventHTTPRequest})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(2))

	assert.NoError(t, a.Database.Close(context.Background()))
}
