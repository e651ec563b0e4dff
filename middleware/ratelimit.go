// middleware/ratelimit.go
package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	apperrors "github.com/dalemusser/amountwords/pantry/errors"
	"golang.org/x/time/rate"
)

// KeyLimiter keeps one token bucket per key (client IP). Buckets idle for
// longer than ttl are dropped on a later Allow call.
type KeyLimiter struct {
	mu        sync.Mutex
	limiters  map[string]*keyEntry
	rate      rate.Limit
	burst     int
	ttl       time.Duration
	lastSweep time.Time
	now       func() time.Time
}

type keyEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewKeyLimiter allows perSecond requests per key with the given burst.
func NewKeyLimiter(perSecond float64, burst int, ttl time.Duration) *KeyLimiter {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &KeyLimiter{
		limiters: make(map[string]*keyEntry),
		rate:     rate.Limit(perSecond),
		burst:    burst,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Allow consumes one token for key.
func (kl *KeyLimiter) Allow(key string) bool {
	kl.mu.Lock()
	defer kl.mu.Unlock()

	now := kl.now()
	if now.Sub(kl.lastSweep) > kl.ttl {
		for k, e := range kl.limiters {
			if now.Sub(e.lastSeen) > kl.ttl {
				delete(kl.limiters, k)
			}
		}
		kl.lastSweep = now
	}

	e, ok := kl.limiters[key]
	if !ok {
		e = &keyEntry{limiter: rate.NewLimiter(kl.rate, kl.burst)}
		kl.limiters[key] = e
	}
	e.lastSeen = now
	return e.limiter.AllowN(now, 1)
}

// Size returns the number of tracked keys.
func (kl *KeyLimiter) Size() int {
	kl.mu.Lock()
	defer kl.mu.Unlock()
	return len(kl.limiters)
}

// clientIP is r.RemoteAddr without the port. chi's RealIP middleware has
// already replaced it from X-Forwarded-For / X-Real-IP.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit answers 429 rate_limited once a client IP exceeds perSecond
// requests per second beyond burst. perSecond <= 0 disables the limit.
func RateLimit(perSecond float64, burst int) func(next http.Handler) http.Handler {
	if perSecond <= 0 {
		return func(next http.Handler) http.Handler {
			return next
		}
	}
	return RateLimitWith(NewKeyLimiter(perSecond, burst, time.Hour))
}

// RateLimitWith is RateLimit over an existing limiter.
func RateLimitWith(kl *KeyLimiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !kl.Allow(clientIP(r)) {
				w.Header().Set("Retry-After", "1")
				apperrors.Write(w, apperrors.New("rate_limited", "rate limit exceeded", http.StatusTooManyRequests))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
