package http

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/guttosm/scoop-service/internal/i18n"
	"github.com/guttosm/scoop-service/internal/metrics"
	"github.com/guttosm/scoop-service/internal/middleware"
	"github.com/guttosm/scoop-service/internal/service"
)

// CartEventsPath is the server-sent events route, exempt from gzip and request timeouts.
const CartEventsPath = "/api/cart/events"

// RouterConfig holds router configuration options.
type RouterConfig struct {
	RateLimit      int
	RateWindow     time.Duration
	APIKeys        map[string]bool
	EnableAuth     bool
	RequestTimeout time.Duration
	CORSOrigins    []string
	SwaggerUser    string
	SwaggerPass    string
	EventSink      service.EventSink
	// RateLimiter overrides the limiter built from RateLimit and RateWindow.
	RateLimiter *middleware.RateLimiter
	// Idempotency is applied to the API group when Enabled.
	Idempotency middleware.IdempotencyConfig
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		RateLimit:      100,
		RateWindow:     time.Minute,
		RequestTimeout: 30 * time.Second,
		EnableAuth:     false,
	}
}

// NewRouter creates and configures the Gin router for the scoop service.
func NewRouter(handler *Handler, healthHandler *HealthHandler, cfg RouterConfig) *gin.Engine {
	router := gin.New()

	configureGlobalMiddleware(router, &cfg)
	registerInfrastructureRoutes(router, healthHandler, &cfg)

	api := router.Group("/api")
	configureAPIMiddleware(api, &cfg)

	if handler != nil {
		NewShopRoutes(handler).RegisterRoutes(api)
	}

	router.NoRoute(func(c *gin.Context) {
		NewResponseBuilder(c).Error(http.StatusNotFound, i18n.ErrKeyNotFound, nil)
	})

	return router
}

// configureGlobalMiddleware sets up middleware applied to all routes.
func configureGlobalMiddleware(router *gin.Engine, cfg *RouterConfig) {
	allowedOrigins := cfg.CORSOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	}
	corsConfig := cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Content-Length", "Accept-Encoding", "Accept-Language", "accept", "Cache-Control", "X-Requested-With", "X-API-Key", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-Idempotency-Replayed"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))

	router.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		metrics.PrometheusMiddleware(),
		middleware.Compression(CartEventsPath),
		middleware.RequestLogger(cfg.EventSink),
		middleware.ErrorHandler(),
	)

	limiter := cfg.RateLimiter
	if limiter == nil && cfg.RateLimit > 0 {
		limiter = middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	}
	if limiter != nil {
		router.Use(limiter.RateLimit())
	}
}

// registerInfrastructureRoutes registers health, metrics, and documentation routes.
func registerInfrastructureRoutes(router *gin.Engine, healthHandler *HealthHandler, cfg *RouterConfig) {
	if healthHandler != nil {
		healthHandler.Register(router)
	}
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if cfg.SwaggerUser != "" && cfg.SwaggerPass != "" {
		authorized := router.Group("/swagger", gin.BasicAuth(gin.Accounts{
			cfg.SwaggerUser: cfg.SwaggerPass,
		}))
		authorized.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	} else {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
}

// configureAPIMiddleware sets up middleware for the API group.
func configureAPIMiddleware(api *gin.RouterGroup, cfg *RouterConfig) {
	if cfg.EnableAuth && len(cfg.APIKeys) > 0 {
		api.Use(middleware.APIKeyAuth(cfg.APIKeys))
	}

	if cfg.Idempotency.Enabled {
		api.Use(middleware.Idempotency(cfg.Idempotency))
	}

	if cfg.RequestTimeout > 0 {
		api.Use(middleware.Timeout(middleware.TimeoutConfig{
			Timeout:      cfg.RequestTimeout,
			SkipPrefixes: []string{CartEventsPath},
		}))
	}
}
