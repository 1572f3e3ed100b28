package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(3, time.Minute)
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		allowed, remaining := rl.Allow("10.0.0.1")
		require.True(t, allowed, "request %d", i+1)
		assert.Equal(t, 2-i, remaining)
	}

	allowed, remaining := rl.Allow("10.0.0.1")
	assert.False(t, allowed)
	assert.Equal(t, 0, remaining)

	allowed, _ = rl.Allow("10.0.0.2")
	assert.True(t, allowed, "other clients have their own bucket")
}

func TestRateLimiter_Refills(t *testing.T) {
	rl := NewRateLimiter(10, 100*time.Millisecond)
	defer rl.Stop()

	for i := 0; i < 10; i++ {
		allowed, _ := rl.Allow("client")
		require.True(t, allowed)
	}
	allowed, _ := rl.Allow("client")
	require.False(t, allowed)

	time.Sleep(30 * time.Millisecond)

	allowed, _ = rl.Allow("client")
	assert.True(t, allowed)
}

func TestRateLimiter_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	rl := NewRateLimiter(2, time.Minute)
	defer rl.Stop()

	router := gin.New()
	router.Use(RequestID(), rl.RateLimit())
	router.GET("/api/menu", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	tests := []struct {
		name              string
		remoteAddr        string
		expectedStatus    int
		expectedRemaining string
	}{
		{name: "first request", remoteAddr: "192.0.2.1:1000", expectedStatus: http.StatusOK, expectedRemaining: "1"},
		{name: "second request", remoteAddr: "192.0.2.1:1001", expectedStatus: http.StatusOK, expectedRemaining: "0"},
		{name: "third request limited", remoteAddr: "192.0.2.1:1002", expectedStatus: http.StatusTooManyRequests, expectedRemaining: "0"},
		{name: "other client allowed", remoteAddr: "192.0.2.2:1000", expectedStatus: http.StatusOK, expectedRemaining: "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/menu", nil)
			req.RemoteAddr = tt.remoteAddr
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
			assert.Equal(t, tt.expectedRemaining, w.Header().Get("X-RateLimit-Remaining"))
			if tt.expectedStatus == http.StatusTooManyRequests {
				assert.Equal(t, "30", w.Header().Get("Retry-After"))
				assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
			}
		})
	}
}

func TestRateLimiter_Stats(t *testing.T) {
	rl := NewShardedRateLimiter(5, time.Minute, 4)
	defer rl.Stop()

	for i := 0; i < 20; i++ {
		rl.Allow(fmt.Sprintf("10.0.0.%d", i))
	}

	total, perShard := rl.Stats()
	assert.Equal(t, 20, total)
	assert.Len(t, perShard, 4)

	sum := 0
	for _, n := range perShard {
		sum += n
	}
	assert.Equal(t, total, sum)
}

func TestRateLimiter_RemoveIdle(t *testing.T) {
	rl := NewRateLimiter(5, time.Minute)
	defer rl.Stop()

	rl.Allow("stale")
	rl.removeIdle(time.Now().Add(time.Second))

	total, _ := rl.Stats()
	assert.Zero(t, total)
}

func TestRateLimiter_Concurrent(t *testing.T) {
	rl := NewRateLimiter(100, time.Hour)
	defer rl.Stop()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				if ok, _ := rl.Allow("shared"); ok {
					mu.Lock()
					allowed++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, allowed)
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	assert.NotPanics(t, func() {
		rl.Stop()
		rl.Stop()
	})
}
