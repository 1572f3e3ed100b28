package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/scoop-service/internal/circuitbreaker"
)

const (
	healthOK       = "ok"
	healthDegraded = "degraded"
)

// HealthChecker reports whether a dependency is reachable.
type HealthChecker interface {
	Check() error
}

// HealthCheckFunc adapts a plain function to HealthChecker.
type HealthCheckFunc func() error

// Check calls f.
func (f HealthCheckFunc) Check() error { return f() }

// HealthReport is the body of the readiness probe.
type HealthReport struct {
	Status string         `json:"status" example:"ok"`
	Checks map[string]any `json:"checks"`
}

// HealthHandler serves the liveness and readiness probes. Dependencies are
// registered once at wiring time; registration is not safe during serving.
type HealthHandler struct {
	checkers map[string]HealthChecker
	breakers map[string]*circuitbreaker.CircuitBreaker
}

// NewHealthHandler creates a handler with nothing registered.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{
		checkers: map[string]HealthChecker{},
		breakers: map[string]*circuitbreaker.CircuitBreaker{},
	}
}

// RegisterChecker adds a dependency check run on every readiness probe.
func (h *HealthHandler) RegisterChecker(name string, checker HealthChecker) {
	h.checkers[name] = checker
}

// RegisterCircuitBreaker reports the breaker's state as "<name>_circuit".
// An open breaker marks the service degraded.
func (h *HealthHandler) RegisterCircuitBreaker(name string, cb *circuitbreaker.CircuitBreaker) {
	h.breakers[name] = cb
}

// Register mounts /healthz and /readyz.
func (h *HealthHandler) Register(router *gin.Engine) {
	router.GET("/healthz", h.Liveness)
	router.GET("/readyz", h.Readiness)
}

// Liveness handles the liveness probe endpoint.
// @Summary     Liveness probe
// @Description Returns OK while the process is serving requests.
// @Tags        Health
// @Produce     json
// @Success     200 {object} map[string]string "Service is alive"
// @Router      /healthz [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": healthOK})
}

// Readiness handles the readiness probe endpoint.
// @Summary     Readiness probe
// @Description Runs every registered dependency check and reports circuit breaker states. Any failure answers 503.
// @Tags        Health
// @Produce     json
// @Success     200 {object} HealthReport "Service is ready"
// @Failure     503 {object} HealthReport "Service is degraded"
// @Router      /readyz [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	report := h.report()
	status := http.StatusOK
	if report.Status != healthOK {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, report)
}

func (h *HealthHandler) report() HealthReport {
	report := HealthReport{Status: healthOK, Checks: make(map[string]any, len(h.checkers)+len(h.breakers))}

	for name, checker := range h.checkers {
		if err := checker.Check(); err != nil {
			report.Checks[name] = err.Error()
			report.Status = healthDegraded
			continue
		}
		report.Checks[name] = healthOK
	}

	for name, cb := range h.breakers {
		stats := cb.GetStats()
		report.Checks[name+"_circuit"] = stats.State
		if !stats.IsHealthy {
			report.Status = healthDegraded
		}
	}

	if len(report.Checks) == 0 {
		report.Checks["service"] = healthOK
	}
	return report
}
