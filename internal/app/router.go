// Package app provides router configuration.
package app

import (
	"github.com/guttosm/scoop-service/config"
	"github.com/guttosm/scoop-service/internal/http"
	"github.com/guttosm/scoop-service/internal/middleware"
)

// RouterComponents holds router-related components.
type RouterComponents struct {
	Handler       *http.Handler
	HealthHandler *http.HealthHandler
	Config        http.RouterConfig
}

// InitializeRouter initializes HTTP handlers and router configuration.
// db may be nil.
func InitializeRouter(svc *ServiceComponents, db *DatabaseComponents, cfg config.Config) *RouterComponents {
	handlerOpts := []http.HandlerOption{http.WithSimulator(svc.Simulator)}
	if cfg.Cache.MenuTTL > 0 {
		handlerOpts = append(handlerOpts, http.WithMenuCacheTTL(cfg.Cache.MenuTTL))
	}
	if db != nil && db.Journal != nil {
		handlerOpts = append(handlerOpts, http.WithJournal(db.Journal))
	}
	handler := http.NewHandler(svc.Cart, svc.Checkout, svc.Client, handlerOpts...)

	healthHandler := http.NewHealthHandler()
	healthHandler.RegisterCircuitBreaker(ShopAPICircuitBreakerName, svc.Client.CircuitBreaker())
	if db != nil {
		healthHandler.RegisterCircuitBreaker(JournalCircuitBreakerName, db.CircuitBreaker)
		healthHandler.RegisterChecker("mongodb", db)
	}

	routerCfg := http.RouterConfig{
		RateLimit:      cfg.Server.RateLimit,
		RateWindow:     cfg.Server.RateWindow,
		EnableAuth:     cfg.Auth.Enabled,
		APIKeys:        cfg.Auth.APIKeys,
		RequestTimeout: cfg.Server.RequestTimeout,
		CORSOrigins:    cfg.Server.CORSOrigins,
		SwaggerUser:    cfg.Server.SwaggerUser,
		SwaggerPass:    cfg.Server.SwaggerPass,
		EventSink:      svc.Sink,
		Idempotency:    middleware.NewIdempotencyConfig(cfg.Cache.IdempotencyTTL),
	}
	if cfg.Server.RateLimit > 0 {
		routerCfg.RateLimiter = middleware.NewRateLimiter(cfg.Server.RateLimit, cfg.Server.RateWindow)
	}

	return &RouterComponents{
		Handler:       handler,
		HealthHandler: healthHandler,
		Config:        routerCfg,
	}
}

// Stop releases the background workers owned by the router middleware.
func (r *RouterComponents) Stop() {
	if r.Config.RateLimiter != nil {
		r.Config.RateLimiter.Stop()
	}
	if r.Config.Idempotency.Cache != nil {
		r.Config.Idempotency.Cache.Stop()
	}
}
