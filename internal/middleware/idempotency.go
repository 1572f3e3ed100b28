package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/scoop-service/internal/service/cache"
)

const (
	// IdempotencyKeyHeader is the HTTP header name for idempotency key.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from the idempotency cache.
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is the default TTL for cached idempotency responses.
	IdempotencyKeyTTL = 24 * time.Hour

	idempotencyCapacity = 10000
)

type cachedResponse struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// IdempotencyConfig holds configuration for idempotency middleware.
type IdempotencyConfig struct {
	Cache   *cache.Sharded[*cachedResponse]
	Enabled bool
}

// NewIdempotencyConfig returns an enabled configuration caching responses for ttl.
// Callers own the cache and should Stop it on shutdown.
func NewIdempotencyConfig(ttl time.Duration) IdempotencyConfig {
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}
	return IdempotencyConfig{
		Cache:   cache.New[*cachedResponse](idempotencyCapacity, ttl, 16),
		Enabled: true,
	}
}

// DefaultIdempotencyConfig returns an enabled configuration with IdempotencyKeyTTL.
func DefaultIdempotencyConfig() IdempotencyConfig {
	return NewIdempotencyConfig(IdempotencyKeyTTL)
}

// Idempotency replays the cached 2xx response of an earlier POST, PUT or PATCH
// carrying the same Idempotency-Key, method, path and body.
func Idempotency(cfg IdempotencyConfig) gin.HandlerFunc {
	if !cfg.Enabled || cfg.Cache == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost &&
			c.Request.Method != http.MethodPut &&
			c.Request.Method != http.MethodPatch {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		cacheKey := generateCacheKey(key, c.Request)
		if cached, ok := cfg.Cache.Get(cacheKey); ok {
			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(cached.StatusCode, cached.ContentType, cached.Body)
			c.Abort()
			return
		}

		writer := &responseWriter{
			ResponseWriter: c.Writer,
			body:           &bytes.Buffer{},
		}
		c.Writer = writer

		c.Next()

		status := writer.Status()
		if status >= 200 && status < 300 {
			cfg.Cache.Set(cacheKey, &cachedResponse{
				StatusCode:  status,
				ContentType: writer.Header().Get("Content-Type"),
				Body:        writer.body.Bytes(),
			})
		}
	}
}

// generateCacheKey hashes the idempotency key with the method, path and body.
func generateCacheKey(idempotencyKey string, req *http.Request) string {
	hasher := sha256.New()
	hasher.Write([]byte(idempotencyKey))
	hasher.Write([]byte{0})
	hasher.Write([]byte(req.Method))
	hasher.Write([]byte(req.URL.Path))

	if req.Body != nil {
		bodyBytes, _ := io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewReader(bodyBytes))
		hasher.Write(bodyBytes)
	}

	return hex.EncodeToString(hasher.Sum(nil))
}

// responseWriter captures the response body for caching.
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *responseWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}
