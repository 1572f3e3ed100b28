package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/scoop-service/internal/domain/dto"
	"github.com/guttosm/scoop-service/internal/i18n"
)

const (
	// APIKeyHeader is the HTTP header name for API key authentication.
	APIKeyHeader = "X-API-Key"
	// APIKeyQuery is the query parameter name for API key authentication.
	APIKeyQuery = "api_key"
)

// APIKeyAuth returns a middleware that validates API keys.
// It checks the X-API-Key header first, then the api_key query parameter.
// If validKeys is empty, authentication is disabled.
func APIKeyAuth(validKeys map[string]bool) gin.HandlerFunc {
	keys := make([][]byte, 0, len(validKeys))
	for k, ok := range validKeys {
		if ok {
			keys = append(keys, []byte(k))
		}
	}

	return func(c *gin.Context) {
		if len(keys) == 0 {
			c.Next()
			return
		}

		key := c.GetHeader(APIKeyHeader)
		if key == "" {
			key = c.Query(APIKeyQuery)
		}

		messageKey := ""
		switch {
		case key == "":
			messageKey = i18n.ErrKeyAPIKeyRequired
		case !matchesAny(keys, []byte(key)):
			messageKey = i18n.ErrKeyInvalidAPIKey
		}

		if messageKey != "" {
			message := i18n.GetTranslator().Translate(messageKey, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusUnauthorized,
				dto.NewError(dto.ErrCodeUnauthorized, message).WithRequestID(GetRequestID(c)))
			return
		}

		c.Next()
	}
}

func matchesAny(keys [][]byte, candidate []byte) bool {
	var match int
	for _, k := range keys {
		match |= subtle.ConstantTimeCompare(k, candidate)
	}
	return match == 1
}
