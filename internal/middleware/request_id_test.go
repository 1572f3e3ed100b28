package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"

	"github.com/guttosm/scoop-service/internal/logger"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name       string
		incomingID string
		validate   func(*testing.T, string)
	}{
		{
			name:       "reuses client supplied id",
			incomingID: "client-id-123",
			validate: func(t *testing.T, id string) {
				assert.Equal(t, "client-id-123", id)
			},
		},
		{
			name: "generates uuid when missing",
			validate: func(t *testing.T, id string) {
				_, err := uuid.Parse(id)
				assert.NoError(t, err)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var fromContext string
			router := gin.New()
			router.Use(RequestID())
			router.GET("/test", func(c *gin.Context) {
				fromContext = GetRequestID(c)
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.incomingID != "" {
				req.Header.Set(RequestIDHeader, tt.incomingID)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			header := w.Header().Get(RequestIDHeader)
			assert.Equal(t, fromContext, header)
			tt.validate(t, header)
		})
	}
}

func TestRequestID_ContextLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	logger.InitWithWriter("info", false, &buf)
	t.Cleanup(func() { logger.Init("info", false) })

	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		zerolog.Ctx(c.Request.Context()).Info().Msg("scooping")
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(RequestIDHeader, "log-id")
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), `"request_id":"log-id"`)
	assert.Contains(t, buf.String(), "scooping")
}

func TestGetRequestID_Missing(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))
}
