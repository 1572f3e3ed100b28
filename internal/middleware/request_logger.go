package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/guttosm/scoop-service/internal/service"
)

// RequestLogger logs every HTTP request and publishes it to the journal sink.
// sink may be nil.
func RequestLogger(sink service.EventSink) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		statusCode := c.Writer.Status()
		method := c.Request.Method
		path := c.Request.URL.Path
		ip := c.ClientIP()
		requestID := GetRequestID(c)

		log := zerolog.Ctx(c.Request.Context()).With().
			Str("method", method).
			Str("path", path).
			Int("status_code", statusCode).
			Int64("duration_ms", latency.Milliseconds()).
			Str("ip", ip).
			Str("user_agent", c.Request.UserAgent()).
			Logger()

		switch level := getLogLevel(statusCode); level {
		case model.LevelError:
			log.Error().Msg("HTTP request")
		case model.LevelWarn:
			log.Warn().Msg("HTTP request")
		default:
			log.Info().Msg("HTTP request")
		}

		if sink == nil {
			return
		}

		e := model.NewEvent(model.EventHTTPRequest, "HTTP request").WithLevel(getLogLevel(statusCode))
		e.RequestID = requestID
		e.Method = method
		e.Path = path
		e.StatusCode = statusCode
		e.Duration = latency.Milliseconds()
		e.IP = ip
		if len(c.Errors) > 0 {
			e.Error = c.Errors.Last().Error()
		}
		sink.Publish(e)
	}
}

// getLogLevel returns the log level based on HTTP status code.
func getLogLevel(statusCode int) string {
	switch {
	case statusCode >= 500:
		return model.LevelError
	case statusCode >= 400:
		return model.LevelWarn
	default:
		return model.LevelInfo
	}
}
