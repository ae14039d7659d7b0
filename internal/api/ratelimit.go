package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/nuttybakers/bakery-core/internal/infrastructure/config"
)

// Bucket housekeeping intervals.
const (
	bucketCleanupInterval = time.Minute
	bucketIdleExpiry      = 10 * time.Minute
)

// bucket is one client's token bucket state.
type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// rateLimiter applies a token bucket per client IP. Tokens refill
// continuously at the configured per-minute rate up to the burst cap.
type rateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	ratePerSec float64
	burst      float64
	limit      int
}

func newRateLimiter(cfg config.RateLimitConfig) *rateLimiter {
	rpm := cfg.RequestsPerMinute
	if rpm < 1 {
		rpm = 60
	}
	burst := cfg.Burst
	if burst < 1 {
		burst = 1
	}

	return &rateLimiter{
		buckets:    make(map[string]*bucket),
		ratePerSec: float64(rpm) / 60,
		burst:      float64(burst),
		limit:      rpm,
	}
}

// allow consumes one token for the client, reporting whether the
// request may proceed and how many whole tokens remain.
func (l *rateLimiter) allow(client string) (ok bool, remaining int) {
	now := time.Now()

	l.mu.Lock()
	defer l.mu.Unlock()

	b, exists := l.buckets[client]
	if !exists {
		b = &bucket{tokens: l.burst}
		l.buckets[client] = b
	} else {
		b.tokens += now.Sub(b.lastSeen).Seconds() * l.ratePerSec
		if b.tokens > l.burst {
			b.tokens = l.burst
		}
	}
	b.lastSeen = now

	if b.tokens < 1 {
		return false, 0
	}
	b.tokens--
	return true, int(b.tokens)
}

// cleanupLoop evicts buckets idle past expiry until the context ends.
func (l *rateLimiter) cleanupLoop(ctx context.Context) {
	ticker := time.NewTicker(bucketCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			l.mu.Lock()
			for client, b := range l.buckets {
				if now.Sub(b.lastSeen) > bucketIdleExpiry {
					delete(l.buckets, client)
				}
			}
			l.mu.Unlock()
		}
	}
}

// middleware enforces the limit, attaching X-RateLimit headers.
func (l *rateLimiter) middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ok, remaining := l.allow(clientIP(r))

		w.Header().Set("X-RateLimit-Limit", strconv.Itoa(l.limit))
		w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(remaining))

		if !ok {
			w.Header().Set("Retry-After", "60")
			writeError(w, http.StatusTooManyRequests, "rate_limited", "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}
