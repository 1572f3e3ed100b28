package http

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/scoop-service/internal/catalog"
	"github.com/guttosm/scoop-service/internal/client"
	"github.com/guttosm/scoop-service/internal/domain/dto"
	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/guttosm/scoop-service/internal/service"
	"github.com/guttosm/scoop-service/internal/simulator"
)

// DefaultMenuCacheTTL is how long a fetched menu is served from memory.
const DefaultMenuCacheTTL = 30 * time.Second

// menuCache provides thread-safe caching of the fetched menu.
type menuCache struct {
	items     atomic.Value // holds []model.FlavorItem
	expiresAt atomic.Value // holds time.Time
	mu        sync.Mutex
	ttl       time.Duration
}

func newMenuCache(ttl time.Duration) *menuCache {
	c := &menuCache{ttl: ttl}
	c.expiresAt.Store(time.Time{})
	return c
}

// get returns the cached menu, or nil if the cache is expired or empty.
func (c *menuCache) get() []model.FlavorItem {
	if expiresAt, ok := c.expiresAt.Load().(time.Time); ok && time.Now().Before(expiresAt) {
		if items, ok := c.items.Load().([]model.FlavorItem); ok {
			return items
		}
	}
	return nil
}

func (c *menuCache) set(items []model.FlavorItem) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items.Store(items)
	c.expiresAt.Store(time.Now().Add(c.ttl))
}

func (c *menuCache) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.expiresAt.Store(time.Time{})
}

// SessionRunner runs simulated shopping sessions.
type SessionRunner interface {
	StartMultipleSessions(count int, delay time.Duration, onAllComplete func()) bool
	Stop()
	Stats() simulator.Stats
}

// Handler provides HTTP handlers for the shop control API.
type Handler struct {
	cart      *service.CartStore
	checkout  *service.CheckoutOrchestrator
	api       client.API
	sim       SessionRunner
	journal   service.Journal
	menuCache *menuCache

	closing   chan struct{}
	closeOnce sync.Once
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithMenuCacheTTL sets the TTL for menu caching.
func WithMenuCacheTTL(ttl time.Duration) HandlerOption {
	return func(h *Handler) {
		h.menuCache = newMenuCache(ttl)
	}
}

// WithSimulator enables the simulator routes.
func WithSimulator(sim SessionRunner) HandlerOption {
	return func(h *Handler) {
		h.sim = sim
	}
}

// WithJournal enables the journal query route.
func WithJournal(journal service.Journal) HandlerOption {
	return func(h *Handler) {
		h.journal = journal
	}
}

// NewHandler creates a new Handler instance.
func NewHandler(cart *service.CartStore, checkout *service.CheckoutOrchestrator, api client.API, opts ...HandlerOption) *Handler {
	h := &Handler{
		cart:      cart,
		checkout:  checkout,
		api:       api,
		menuCache: newMenuCache(DefaultMenuCacheTTL),
		closing:   make(chan struct{}),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// CloseStreams ends every open cart event stream. Safe to call more than once.
func (h *Handler) CloseStreams() {
	h.closeOnce.Do(func() { close(h.closing) })
}

// InvalidateMenuCache forces the next menu request to reach the shop.
func (h *Handler) InvalidateMenuCache() {
	h.menuCache.invalidate()
}

// deadlineExpired reports whether the request context ran out. The error is
// recorded and the response is left to the timeout middleware.
func deadlineExpired(c *gin.Context, err error) bool {
	if !errors.Is(err, context.DeadlineExceeded) || c.Request.Context().Err() == nil {
		return false
	}
	_ = c.Error(err)
	return true
}

// await bridges a callback-style shop call to the calling goroutine.
// The callback may fire after ctx is done; its result is then discarded.
func await[T any](ctx context.Context, call func(cb func(T, error))) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	call(func(v T, err error) {
		ch <- result{v, err}
	})

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// GetMenu handles GET /api/menu requests.
//
// @Summary      List flavors
// @Description  Returns the menu. The menu is cached for a short time; when the shop cannot be reached the built-in catalog is served with source "local".
// @Tags         Menu
// @Produce      json
// @Success      200 {object} dto.SuccessResponse{data=dto.MenuResponse}
// @Failure      429 {object} dto.ErrorResponse "Too many requests - rate limit exceeded"
// @Router       /api/menu [get]
func (h *Handler) GetMenu(c *gin.Context) {
	builder := NewResponseBuilder(c)

	if items := h.menuCache.get(); items != nil {
		builder.SuccessOK(dto.MenuResponse{Items: items, Source: dto.MenuSourceCache})
		return
	}

	items, err := await(c.Request.Context(), func(cb func([]model.FlavorItem, error)) {
		h.api.FetchMenu(c.Request.Context(), cb)
	})
	if err != nil {
		zerolog.Ctx(c.Request.Context()).Warn().Err(err).Msg("Menu fetch failed, serving local catalog")
		builder.SuccessOK(dto.MenuResponse{Items: catalog.All(), Source: dto.MenuSourceLocal})
		return
	}

	h.menuCache.set(items)
	builder.Success(http.StatusOK, dto.MenuResponse{Items: items, Source: dto.MenuSourceShop})
}
