package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/scoop-service/internal/domain/dto"
	"github.com/guttosm/scoop-service/internal/domain/model"
	"github.com/guttosm/scoop-service/internal/i18n"
	"github.com/guttosm/scoop-service/internal/logger"
)

// ErrorHandler returns a middleware that logs gin context errors and answers
// requests whose handler failed without writing a response.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		err := c.Errors.Last()
		requestID := GetRequestID(c)

		log := logger.Logger()
		log.Error().
			Str("request_id", requestID).
			Str("error", err.Error()).
			Str("path", c.Request.URL.Path).
			Str("method", c.Request.Method).
			Msg("Request error")

		if c.Writer.Written() {
			return
		}

		status, key := http.StatusInternalServerError, i18n.ErrKeyInternalError
		var netErr *model.NetworkError
		if errors.As(err.Err, &netErr) {
			status, key = http.StatusBadGateway, i18n.ErrKeyShopUnavailable
		}

		message := i18n.GetTranslator().Translate(key, i18n.GetLocale(c))
		c.JSON(status, dto.NewError(dto.ErrCodeFromStatus(status), message).WithRequestID(requestID))
	}
}
