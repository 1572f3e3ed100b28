package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/scoop-service/internal/domain/dto"
	"github.com/guttosm/scoop-service/internal/i18n"
)

// TimeoutConfig holds configuration for the timeout middleware.
type TimeoutConfig struct {
	// Timeout is the maximum duration for request processing.
	Timeout time.Duration
	// SkipPrefixes lists path prefixes served without a deadline, such as event streams.
	SkipPrefixes []string
}

// DefaultTimeoutConfig returns the defaults for the timeout middleware.
func DefaultTimeoutConfig() TimeoutConfig {
	return TimeoutConfig{
		Timeout: 30 * time.Second,
	}
}

// Timeout bounds each request with a cfg.Timeout deadline on its context.
// The chain runs on the request goroutine: handlers observe the deadline
// through the context and may still answer it themselves. When the deadline
// passed and nothing was written, Timeout answers 504.
func Timeout(cfg TimeoutConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, prefix := range cfg.SkipPrefixes {
			if strings.HasPrefix(c.Request.URL.Path, prefix) {
				c.Next()
				return
			}
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), cfg.Timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if c.Writer.Written() || !errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return
		}
		message := i18n.GetTranslator().Translate(i18n.ErrKeyTimeout, i18n.GetLocale(c))
		c.AbortWithStatusJSON(http.StatusGatewayTimeout,
			dto.NewError(dto.ErrCodeTimeout, message).WithRequestID(GetRequestID(c)))
	}
}

// TimeoutWithDuration creates timeout middleware with a specific duration.
func TimeoutWithDuration(timeout time.Duration) gin.HandlerFunc {
	cfg := DefaultTimeoutConfig()
	cfg.Timeout = timeout
	return Timeout(cfg)
}
