package middleware

import (
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// RateLimiter decides whether a request keyed by client identity may
// proceed. Injected so deployments can swap in a shared backend.
type RateLimiter interface {
	Allow(key string) bool
}

// FixedWindowLimiter is an in-memory per-key fixed-window counter. Stale
// windows are evicted lazily on access.
type FixedWindowLimiter struct {
	mu     sync.Mutex
	limit  int
	window time.Duration
	counts map[string]*windowCount
}

type windowCount struct {
	start time.Time
	n     int
}

func NewFixedWindowLimiter(limit int, window time.Duration) *FixedWindowLimiter {
	return &FixedWindowLimiter{
		limit:  limit,
		window: window,
		counts: make(map[string]*windowCount),
	}
}

func (l *FixedWindowLimiter) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	wc, ok := l.counts[key]
	if !ok || now.Sub(wc.start) >= l.window {
		l.counts[key] = &windowCount{start: now, n: 1}
		if len(l.counts) > 10000 {
			l.evictStale(now)
		}
		return l.limit >= 1
	}
	if wc.n >= l.limit {
		return false
	}
	wc.n++
	return true
}

func (l *FixedWindowLimiter) evictStale(now time.Time) {
	for key, wc := range l.counts {
		if now.Sub(wc.start) >= l.window {
			delete(l.counts, key)
		}
	}
}

// RateLimit rejects requests over the configured budget with 429, keyed by
// client IP.
func RateLimit(limiter RateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			c.Abort()
			return
		}
		c.Next()
	}
}
