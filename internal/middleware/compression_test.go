package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCompression(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name             string
		path             string
		acceptEncoding   string
		expectCompressed bool
	}{
		{
			name:             "compresses when Accept-Encoding includes gzip",
			path:             "/api/menu",
			acceptEncoding:   "gzip",
			expectCompressed: true,
		},
		{
			name:             "compresses when Accept-Encoding includes gzip, deflate",
			path:             "/api/menu",
			acceptEncoding:   "gzip, deflate",
			expectCompressed: true,
		},
		{
			name:             "does not compress when no Accept-Encoding",
			path:             "/api/menu",
			acceptEncoding:   "",
			expectCompressed: false,
		},
		{
			name:             "does not compress excluded stream path",
			path:             "/api/cart/events",
			acceptEncoding:   "gzip",
			expectCompressed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := gin.New()
			router.Use(Compression("/api/cart/events"))
			router.GET(tt.path, func(c *gin.Context) {
				c.String(http.StatusOK, "scoops")
			})

			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.acceptEncoding != "" {
				req.Header.Set("Accept-Encoding", tt.acceptEncoding)
			}
			w := httptest.NewRecorder()

			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			if tt.expectCompressed {
				assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))
			} else {
				assert.Empty(t, w.Header().Get("Content-Encoding"))
			}
		})
	}
}
