package kestrel

import (
	"net"
	"strconv"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitConfig configures the RateLimit hook.
type RateLimitConfig struct {
	Rate            float64               // requests per second
	Burst           int                   // max burst
	KeyFunc         func(*Request) string // default: remote IP
	CleanupInterval time.Duration         // how often to prune idle limiters (default: 1m)
	MaxIdle         time.Duration         // remove limiters idle longer than this (default: 5m)
}

// RateLimit returns a hook that applies per-key rate limiting. A request
// over the limit aborts the chain with a structured 429 carrying a
// Retry-After header.
func RateLimit(cfg RateLimitConfig) Hook {
	if cfg.KeyFunc == nil {
		cfg.KeyFunc = func(req *Request) string {
			host, _, err := net.SplitHostPort(req.RemoteAddr())
			if err != nil {
				return req.RemoteAddr()
			}
			return host
		}
	}

	cleanupInterval := cfg.CleanupInterval
	if cleanupInterval <= 0 {
		cleanupInterval = time.Minute
	}
	maxIdle := cfg.MaxIdle
	if maxIdle <= 0 {
		maxIdle = 5 * time.Minute
	}

	var (
		mu          sync.Mutex
		limiters    = make(map[string]*limiterEntry)
		lastCleanup time.Time
	)

	return HookFunc(func(req *Request, _ *Response, _ any, _ Params) error {
		key := cfg.KeyFunc(req)

		mu.Lock()
		now := time.Now()

		// Lazy cleanup of expired limiters.
		if now.Sub(lastCleanup) >= cleanupInterval {
			for k, e := range limiters {
				if now.Sub(e.lastSeen) > maxIdle {
					delete(limiters, k)
				}
			}
			lastCleanup = now
		}

		entry, ok := limiters[key]
		if !ok {
			entry = &limiterEntry{
				limiter: rate.NewLimiter(rate.Limit(cfg.Rate), cfg.Burst),
			}
			limiters[key] = entry
		}
		entry.lastSeen = now
		mu.Unlock()

		if !entry.limiter.Allow() {
			retryAfter := strconv.FormatFloat(1/cfg.Rate, 'f', 0, 64)
			return TooManyRequests("rate limit exceeded", retryAfter)
		}

		return nil
	})
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}
