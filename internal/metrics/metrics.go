// Package metrics provides Prometheus metrics collection for the scoop service.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration tracks HTTP request duration by method, path, and status code.
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status_code"},
	)

	// HTTPRequestTotal tracks total HTTP requests by method, path, and status code.
	HTTPRequestTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	// CartMutationsTotal counts cart mutations by operation.
	CartMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_mutations_total",
			Help: "Total number of cart mutations",
		},
		[]string{"operation"},
	)

	// CartItems is the current total quantity in the cart.
	CartItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cart_items",
			Help: "Current number of items in the cart",
		},
	)

	// ShopAPIRequestsTotal counts shop API calls by operation and result.
	ShopAPIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shop_api_requests_total",
			Help: "Total number of shop API requests",
		},
		[]string{"operation", "result"},
	)

	// ShopAPIRequestDuration tracks shop API call latency.
	ShopAPIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shop_api_request_duration_seconds",
			Help:    "Shop API request duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0},
		},
		[]string{"operation"},
	)

	// CheckoutAttemptsTotal counts checkout attempts by outcome.
	CheckoutAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_attempts_total",
			Help: "Total number of checkout attempts",
		},
		[]string{"outcome"},
	)

	// OrderItemCount tracks the number of items per submitted order.
	OrderItemCount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_item_count",
			Help:    "Number of items per submitted order",
			Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
		},
	)

	// SimulatorSessionsTotal counts simulator sessions by result.
	SimulatorSessionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simulator_sessions_total",
			Help: "Total number of simulator sessions",
		},
		[]string{"result"},
	)

	// SimulatorPhaseEntriesTotal counts simulator phase entries.
	SimulatorPhaseEntriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "simulator_phase_entries_total",
			Help: "Total number of simulator phase entries",
		},
		[]string{"phase"},
	)

	// CircuitBreakerState is the current breaker state: 0 closed, 1 open, 2 half-open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Current circuit breaker state (0 closed, 1 open, 2 half-open)",
		},
		[]string{"name"},
	)

	// CircuitBreakerTransitionsTotal counts breaker transitions by target state.
	CircuitBreakerTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "state"},
	)

	// CacheOperationsTotal tracks cache operations.
	CacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cache_operations_total",
			Help: "Total number of cache operations",
		},
		[]string{"operation", "result"},
	)
)

// PrometheusMiddleware returns a Gin middleware that collects HTTP metrics.
func PrometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}

		c.Next()

		duration := time.Since(start).Seconds()
		statusCode := strconv.Itoa(c.Writer.Status())
		method := c.Request.Method

		HTTPRequestDuration.WithLabelValues(method, path, statusCode).Observe(duration)
		HTTPRequestTotal.WithLabelValues(method, path, statusCode).Inc()
	}
}

// RecordCartMutation records a cart mutation and the resulting item count.
func RecordCartMutation(operation string, itemCount int) {
	CartMutationsTotal.WithLabelValues(operation).Inc()
	CartItems.Set(float64(itemCount))
}

// RecordShopAPIRequest records the result and latency of one shop API call.
func RecordShopAPIRequest(operation string, duration time.Duration, err error) {
	result := "success"
	if err != nil {
		result = "error"
	}
	ShopAPIRequestDuration.WithLabelValues(operation).Observe(duration.Seconds())
	ShopAPIRequestsTotal.WithLabelValues(operation, result).Inc()
}

// RecordCheckout records a checkout attempt outcome.
func RecordCheckout(outcome string) {
	CheckoutAttemptsTotal.WithLabelValues(outcome).Inc()
}

// RecordOrderItems records the item count of a submitted order.
func RecordOrderItems(count int) {
	OrderItemCount.Observe(float64(count))
}

// RecordSimulatorSession records a simulator session lifecycle event.
func RecordSimulatorSession(result string) {
	SimulatorSessionsTotal.WithLabelValues(result).Inc()
}

// RecordSimulatorPhase records entry into a simulator phase.
func RecordSimulatorPhase(phase string) {
	SimulatorPhaseEntriesTotal.WithLabelValues(phase).Inc()
}

// RecordCacheOperation records metrics for a cache operation.
func RecordCacheOperation(operation, result string) {
	CacheOperationsTotal.WithLabelValues(operation, result).Inc()
}

// RecordCircuitBreakerState records a transition of the named breaker into state.
func RecordCircuitBreakerState(name, state string, code int) {
	CircuitBreakerState.WithLabelValues(name).Set(float64(code))
	CircuitBreakerTransitionsTotal.WithLabelValues(name, state).Inc()
}
