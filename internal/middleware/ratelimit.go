package middleware

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/enkellaering/admin-backend/internal/response"
	"github.com/gin-gonic/gin"
)

// RateLimiter is a per-IP token bucket. Each IP may spend burst requests,
// and the bucket refills continuously at burst per interval.
type RateLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	burst    float64
	interval time.Duration
	now      func() time.Time
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// DefaultRateLimitInterval is used when NewRateLimiter gets a non-positive interval.
const DefaultRateLimitInterval = time.Minute

// NewRateLimiter creates a RateLimiter allowing burst requests per interval.
func NewRateLimiter(burst int, interval time.Duration) *RateLimiter {
	if burst < 1 {
		burst = 1
	}
	if interval <= 0 {
		interval = DefaultRateLimitInterval
	}
	return &RateLimiter{
		buckets:  make(map[string]*bucket),
		burst:    float64(burst),
		interval: interval,
		now:      time.Now,
	}
}

// RunCleanup drops idle buckets until ctx is done.
func (rl *RateLimiter) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(rl.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.cleanup()
		}
	}
}

// Middleware returns a Gin middleware that rate-limits requests by IP.
func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ok, wait := rl.take(c.ClientIP())
		if !ok {
			secs := int(math.Ceil(wait.Seconds()))
			response.AbortFailWithHeader(c, http.StatusTooManyRequests, response.ErrRateLimitExceeded,
				"Retry-After", strconv.Itoa(secs))
			return
		}
		c.Next()
	}
}

// take spends one token for key, or reports how long until one is available.
func (rl *RateLimiter) take(key string) (bool, time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: rl.burst, lastSeen: now}
		rl.buckets[key] = b
	}

	perToken := float64(rl.interval) / rl.burst
	b.tokens = math.Min(rl.burst, b.tokens+float64(now.Sub(b.lastSeen))/perToken)
	b.lastSeen = now

	if b.tokens < 1 {
		return false, time.Duration((1 - b.tokens) * perToken)
	}
	b.tokens--
	return true, 0
}

func (rl *RateLimiter) cleanup() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := rl.now().Add(-rl.interval)
	for key, b := range rl.buckets {
		if b.lastSeen.Before(cutoff) {
			delete(rl.buckets, key)
		}
	}
}
