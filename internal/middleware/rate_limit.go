package middleware

import (
	"hash/fnv"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/guttosm/scoop-service/internal/domain/dto"
	"github.com/guttosm/scoop-service/internal/i18n"
)

const (
	defaultNumShards = 16
	// visitorIdleTTL is how long an idle visitor's bucket is kept.
	visitorIdleTTL = 10 * time.Minute
)

type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

type rateLimiterShard struct {
	mu       sync.Mutex
	visitors map[string]*visitor
}

// ShardedRateLimiter keeps one token bucket per client IP, spread over shards
// to reduce lock contention. Each bucket refills at limit requests per window
// and holds up to limit tokens.
type ShardedRateLimiter struct {
	shards   []*rateLimiterShard
	limit    int
	every    rate.Limit
	window   time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
}

// RateLimiter is an alias for ShardedRateLimiter.
type RateLimiter = ShardedRateLimiter

// NewRateLimiter creates a rate limiter allowing limit requests per window per client.
func NewRateLimiter(limit int, window time.Duration) *ShardedRateLimiter {
	return NewShardedRateLimiter(limit, window, defaultNumShards)
}

// NewShardedRateLimiter creates a rate limiter with a custom shard count.
func NewShardedRateLimiter(limit int, window time.Duration, numShards int) *ShardedRateLimiter {
	if numShards <= 0 {
		numShards = defaultNumShards
	}
	if window <= 0 {
		window = time.Minute
	}

	shards := make([]*rateLimiterShard, numShards)
	for i := range shards {
		shards[i] = &rateLimiterShard{visitors: make(map[string]*visitor)}
	}

	rl := &ShardedRateLimiter{
		shards: shards,
		limit:  limit,
		every:  rate.Limit(float64(limit) / window.Seconds()),
		window: window,
		stopCh: make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

func (rl *ShardedRateLimiter) getShard(identifier string) *rateLimiterShard {
	h := fnv.New32a()
	h.Write([]byte(identifier))
	return rl.shards[h.Sum32()%uint32(len(rl.shards))]
}

func (rl *ShardedRateLimiter) limiterFor(identifier string) *rate.Limiter {
	shard := rl.getShard(identifier)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	v, ok := shard.visitors[identifier]
	if !ok {
		v = &visitor{limiter: rate.NewLimiter(rl.every, rl.limit)}
		shard.visitors[identifier] = v
	}
	v.lastSeen = time.Now()
	return v.limiter
}

// Allow reports whether identifier may make a request now, and the remaining tokens.
func (rl *ShardedRateLimiter) Allow(identifier string) (allowed bool, remaining int) {
	lim := rl.limiterFor(identifier)
	allowed = lim.Allow()
	remaining = int(math.Max(0, math.Floor(lim.Tokens())))
	return allowed, remaining
}

// RateLimit returns a middleware that limits requests per client IP.
func (rl *ShardedRateLimiter) RateLimit() gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, remaining := rl.Allow(c.ClientIP())

		c.Header("X-RateLimit-Limit", strconv.Itoa(rl.limit))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !allowed {
			retryAfter := time.Duration(float64(time.Second) / float64(rl.every))
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(retryAfter.Seconds()))))
			message := i18n.GetTranslator().Translate(i18n.ErrKeyRateLimitExceeded, i18n.GetLocale(c))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewError(dto.ErrCodeRateLimit, message).WithRequestID(GetRequestID(c)))
			return
		}

		c.Next()
	}
}

func (rl *ShardedRateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.removeIdle(time.Now().Add(-visitorIdleTTL))
		case <-rl.stopCh:
			return
		}
	}
}

func (rl *ShardedRateLimiter) removeIdle(cutoff time.Time) {
	for _, shard := range rl.shards {
		shard.mu.Lock()
		for id, v := range shard.visitors {
			if v.lastSeen.Before(cutoff) {
				delete(shard.visitors, id)
			}
		}
		shard.mu.Unlock()
	}
}

// Stop ends the background cleanup.
func (rl *ShardedRateLimiter) Stop() {
	rl.stopOnce.Do(func() { close(rl.stopCh) })
}

// Stats returns the number of tracked visitors in total and per shard.
func (rl *ShardedRateLimiter) Stats() (totalVisitors int, perShard []int) {
	perShard = make([]int, len(rl.shards))
	for i, shard := range rl.shards {
		shard.mu.Lock()
		perShard[i] = len(shard.visitors)
		totalVisitors += perShard[i]
		shard.mu.Unlock()
	}
	return totalVisitors, perShard
}
