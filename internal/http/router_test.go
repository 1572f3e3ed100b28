package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guttosm/scoop-service/internal/domain/dto"
	"github.com/guttosm/scoop-service/internal/middleware"
	"github.com/guttosm/scoop-service/internal/mocks"
	"github.com/guttosm/scoop-service/internal/service"
)

func newTestRouter(t *testing.T, mutate func(*RouterConfig)) (*gin.Engine, *service.CartStore) {
	t.Helper()
	cart := service.NewCartStore()
	api := new(mocks.MockShopAPI)
	handler := NewHandler(cart, service.NewCheckoutOrchestrator(cart, api), api)

	cfg := DefaultRouterConfig()
	cfg.RateLimit = 0
	if mutate != nil {
		mutate(&cfg)
	}
	return NewRouter(handler, NewHealthHandler(), cfg), cart
}

func TestNewRouter_InfrastructureRoutes(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	tests := []struct {
		path           string
		expectedStatus int
	}{
		{"/healthz", http.StatusOK},
		{"/readyz", http.StatusOK},
		{"/metrics", http.StatusOK},
		{"/api/cart", http.StatusOK},
		{"/api/unknown", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
		})
	}
}

func TestNewRouter_NoRoute(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/nowhere", nil)
	req.Header.Set("Accept-Language", "pt-BR")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, dto.ErrCodeNotFound, resp.Error)
	assert.Equal(t, "Não encontrado", resp.Message)
}

func TestNewRouter_SimulatorRoutesOptional(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/simulator", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestNewRouter_APIKeyAuth(t *testing.T) {
	router, _ := newTestRouter(t, func(cfg *RouterConfig) {
		cfg.EnableAuth = true
		cfg.APIKeys = map[string]bool{"secret": true}
	})

	tests := []struct {
		name           string
		path           string
		key            string
		expectedStatus int
	}{
		{name: "api without key", path: "/api/cart", expectedStatus: http.StatusUnauthorized},
		{name: "api with key", path: "/api/cart", key: "secret", expectedStatus: http.StatusOK},
		{name: "health is open", path: "/healthz", expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.key != "" {
				req.Header.Set(middleware.APIKeyHeader, tt.key)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestNewRouter_RateLimit(t *testing.T) {
	limiter := middleware.NewRateLimiter(1, time.Hour)
	t.Cleanup(limiter.Stop)
	router, _ := newTestRouter(t, func(cfg *RouterConfig) {
		cfg.RateLimiter = limiter
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/api/cart", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/api/cart", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestNewRouter_IdempotentAdd(t *testing.T) {
	idem := middleware.NewIdempotencyConfig(time.Minute)
	t.Cleanup(idem.Cache.Stop)
	router, cart := newTestRouter(t, func(cfg *RouterConfig) {
		cfg.Idempotency = idem
	})

	var last *httptest.ResponseRecorder
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"item_id": 4}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(middleware.IdempotencyKeyHeader, "add-mint-chip")
		last = httptest.NewRecorder()
		router.ServeHTTP(last, req)
		require.Equal(t, http.StatusOK, last.Code)
	}

	assert.Equal(t, "true", last.Header().Get(middleware.IdempotencyReplayedHeader))
	assert.Equal(t, 1, cart.Quantity(4))
}

func TestNewRouter_Compression(t *testing.T) {
	router, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
}
