// Package client talks to the remote shop API.
//
// Every operation returns immediately and reports its outcome exactly once
// through the callback, from a goroutine owned by the client.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"math/rand/v2"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/guttosm/scoop-service/internal/catalog"
	"github.com/guttosm/scoop-service/internal/circuitbreaker"
	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/guttosm/scoop-service/internal/logger"
	"github.com/guttosm/scoop-service/internal/metrics"
)

// Operation names used in errors, logs and metrics.
const (
	OpFetchMenu         = "fetch_menu"
	OpCheckInventory    = "check_inventory"
	OpSubmitOrder       = "submit_order"
	OpValidatePromoCode = "validate_promo_code"
	OpGetOrderStatus    = "get_order_status"
)

const (
	minInventory = 10
	maxInventory = 50

	maxDrainBytes = 1 << 20
)

// OrderStatuses are the labels GetOrderStatus can report.
var OrderStatuses = []string{"Preparing", "Ready", "Out for Delivery"}

var promoCodes = map[string]decimal.Decimal{
	"SWEET10":    decimal.RequireFromString("0.10"),
	"ICECREAM20": decimal.RequireFromString("0.20"),
	"SUMMER15":   decimal.RequireFromString("0.15"),
}

// API is the asynchronous shop API.
type API interface {
	FetchMenu(ctx context.Context, cb func([]model.FlavorItem, error))
	CheckInventory(ctx context.Context, itemIDs []int, cb func(map[int]int, error))
	SubmitOrder(ctx context.Context, req model.OrderRequest, cb func(model.OrderResult, error))
	ValidatePromoCode(ctx context.Context, code string, cb func(model.PromoResult, error))
	GetOrderStatus(ctx context.Context, orderID string, cb func(model.OrderStatus, error))
}

// Routes are request targets relative to the base URL. OrderStatus may contain {id}.
type Routes struct {
	Menu        string
	Inventory   string
	Order       string
	Promo       string
	OrderStatus string
}

// DefaultRoutes follow the echo-service layout of the shop backend.
func DefaultRoutes() Routes {
	return Routes{
		Menu:        "/get?path=api/v1/menu",
		Inventory:   "/get?path=api/v1/inventory",
		Order:       "/post",
		Promo:       "/get?path=api/v1/promo",
		OrderStatus: "/get?path=api/v1/orders/{id}/status",
	}
}

// Config holds client settings.
type Config struct {
	BaseURL    string
	APIVersion string
	Timeout    time.Duration
	Routes     Routes
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// WithCircuitBreaker replaces the default circuit breaker.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = cb
	}
}

// WithRand sets the source used for synthetic inventory and status values.
func WithRand(r *rand.Rand) Option {
	return func(c *Client) {
		c.rng = r
	}
}

// WithClock sets the time source used for status timestamps.
func WithClock(now func() time.Time) Option {
	return func(c *Client) {
		c.now = now
	}
}

// Client implements API over HTTP.
type Client struct {
	cfg     Config
	http    *http.Client
	breaker *circuitbreaker.CircuitBreaker
	menu    singleflight.Group
	now     func() time.Time
	log     zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	wg sync.WaitGroup
}

var _ API = (*Client)(nil)

// New creates a client for the shop API.
func New(cfg Config, opts ...Option) *Client {
	if cfg.APIVersion == "" {
		cfg.APIVersion = "1.0"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.Routes == (Routes{}) {
		cfg.Routes = DefaultRoutes()
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	c := &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		now:  time.Now,
		rng:  rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		log:  logger.Component("shop_api"),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		cbCfg := circuitbreaker.DefaultConfig()
		cbCfg.Name = "shop-api"
		c.breaker = circuitbreaker.New(cbCfg)
	}
	return c
}

// CircuitBreaker returns the breaker guarding outbound calls.
func (c *Client) CircuitBreaker() *circuitbreaker.CircuitBreaker {
	return c.breaker
}

// Wait blocks until every pending callback has been delivered.
func (c *Client) Wait() {
	c.wg.Wait()
}

// FetchMenu reports the catalog once the menu endpoint answers with 2xx.
// Concurrent fetches share one request.
func (c *Client) FetchMenu(ctx context.Context, cb func([]model.FlavorItem, error)) {
	c.async(func() {
		_, err, shared := c.menu.Do("menu", func() (any, error) {
			// a cancelled leader must not fail the callers sharing its request
			return nil, c.call(context.WithoutCancel(ctx), OpFetchMenu, http.MethodGet, c.target(c.cfg.Routes.Menu, nil), nil)
		})
		if err == nil {
			err = ctxError(ctx, OpFetchMenu)
		}
		if err != nil {
			cb(nil, err)
			return
		}
		c.log.Debug().Bool("shared", shared).Msg("menu fetched")
		cb(catalog.All(), nil)
	})
}

// CheckInventory reports a synthetic availability count in [10, 50] for each id.
func (c *Client) CheckInventory(ctx context.Context, itemIDs []int, cb func(map[int]int, error)) {
	ids := make([]string, len(itemIDs))
	for i, id := range itemIDs {
		ids[i] = strconv.Itoa(id)
	}
	target := c.target(c.cfg.Routes.Inventory, url.Values{"ids": {strings.Join(ids, ",")}})

	c.async(func() {
		if err := c.call(ctx, OpCheckInventory, http.MethodGet, target, nil); err != nil {
			cb(nil, err)
			return
		}

		inventory := make(map[int]int, len(itemIDs))
		c.rngMu.Lock()
		for _, id := range itemIDs {
			inventory[id] = minInventory + c.rng.IntN(maxInventory-minInventory+1)
		}
		c.rngMu.Unlock()
		cb(inventory, nil)
	})
}

// SubmitOrder posts the order and reports a result bound to its order id.
func (c *Client) SubmitOrder(ctx context.Context, req model.OrderRequest, cb func(model.OrderResult, error)) {
	c.async(func() {
		if err := c.call(ctx, OpSubmitOrder, http.MethodPost, c.target(c.cfg.Routes.Order, nil), req); err != nil {
			cb(model.OrderResult{}, err)
			return
		}
		cb(model.OrderResult{
			Success:           true,
			OrderID:           req.OrderID,
			Message:           "Order placed successfully!",
			EstimatedDelivery: "15-20 minutes",
		}, nil)
	})
}

// ValidatePromoCode checks code against the promotion whitelist, ignoring case.
func (c *Client) ValidatePromoCode(ctx context.Context, code string, cb func(model.PromoResult, error)) {
	target := c.target(c.cfg.Routes.Promo, url.Values{"code": {code}})

	c.async(func() {
		if err := c.call(ctx, OpValidatePromoCode, http.MethodGet, target, nil); err != nil {
			cb(model.PromoResult{}, err)
			return
		}
		discount, ok := promoCodes[strings.ToUpper(strings.TrimSpace(code))]
		if !ok {
			discount = decimal.Zero
		}
		cb(model.PromoResult{Valid: ok, Discount: discount, Code: code}, nil)
	})
}

// GetOrderStatus reports one of OrderStatuses for orderID.
func (c *Client) GetOrderStatus(ctx context.Context, orderID string, cb func(model.OrderStatus, error)) {
	route := strings.ReplaceAll(c.cfg.Routes.OrderStatus, "{id}", url.QueryEscape(orderID))

	c.async(func() {
		if err := c.call(ctx, OpGetOrderStatus, http.MethodGet, c.target(route, nil), nil); err != nil {
			cb(model.OrderStatus{}, err)
			return
		}
		c.rngMu.Lock()
		status := OrderStatuses[c.rng.IntN(len(OrderStatuses))]
		c.rngMu.Unlock()
		cb(model.OrderStatus{OrderID: orderID, Status: status, UpdatedAt: c.now()}, nil)
	})
}

func (c *Client) async(fn func()) {
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		fn()
	}()
}

// target joins route to the base URL and merges extra query parameters.
func (c *Client) target(route string, extra url.Values) string {
	raw := c.cfg.BaseURL + route
	if len(extra) == 0 {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	for k, vs := range extra {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// call performs one request through the circuit breaker and records metrics.
// Any failure is returned as *model.NetworkError.
func (c *Client) call(ctx context.Context, op, method, target string, body any) error {
	start := time.Now()
	err := c.breaker.Execute(ctx, func() error {
		return c.roundTrip(ctx, op, method, target, body)
	})
	elapsed := time.Since(start)
	metrics.RecordShopAPIRequest(op, elapsed, err)

	if err != nil {
		c.log.Warn().Err(err).Str("operation", op).Dur("duration", elapsed).Msg("shop API call failed")
		var netErr *model.NetworkError
		if errors.As(err, &netErr) {
			return netErr
		}
		return &model.NetworkError{Operation: op, Err: err}
	}

	c.log.Debug().Str("operation", op).Dur("duration", elapsed).Msg("shop API call succeeded")
	return nil
}

func (c *Client) roundTrip(ctx context.Context, op, method, target string, body any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return &model.NetworkError{Operation: op, Err: err}
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return &model.NetworkError{Operation: op, Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Api-Version", c.cfg.APIVersion)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &model.NetworkError{Operation: op, Err: err}
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	// the echo body carries nothing authoritative
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &model.NetworkError{Operation: op, StatusCode: resp.StatusCode}
	}
	return nil
}

func ctxError(ctx context.Context, op string) error {
	if err := ctx.Err(); err != nil {
		return &model.NetworkError{Operation: op, Err: err}
	}
	return nil
}
