package server

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// ───────────────────────────────────────────────────────────────────────────
// SECTION: RATE LIMITING
// ───────────────────────────────────────────────────────────────────────────

// bucket tracks the token balance for a single client. Tokens refill
// continuously at limit/window and are capped at the configured limit, so a
// quiet client earns back a full burst but never more.
type bucket struct {
	tokens   float64
	lastFill time.Time
}

// RateLimiter applies a per-client token bucket to incoming requests.
// Each client address gets its own bucket; a request consumes one token
// and is refused when the bucket is empty.
//
// The zero value is not usable; construct with NewRateLimiter.
type RateLimiter struct {
	mu      sync.Mutex
	buckets map[string]*bucket

	limit  float64
	window time.Duration

	// now is injectable so tests can drive refill without sleeping.
	now func() time.Time

	stopOnce sync.Once
	stop     chan struct{}
}

// NewRateLimiter creates a rate limiter allowing `limit` requests per
// `window` for each client, with bursts up to `limit`.
//
// Parameters:
//   - limit: The maximum number of requests per window (must be >= 1).
//   - window: The refill period.
//
// Returns:
//   - *RateLimiter: A started limiter. Call Stop to release its cleanup goroutine.
func NewRateLimiter(limit int, window time.Duration) *RateLimiter {
	if limit < 1 {
		limit = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	rl := &RateLimiter{
		buckets: make(map[string]*bucket),
		limit:   float64(limit),
		window:  window,
		now:     time.Now,
		stop:    make(chan struct{}),
	}

	go rl.cleanupLoop()

	return rl
}

// Allow reports whether the client identified by addr may proceed.
// It consumes one token on success.
func (rl *RateLimiter) Allow(addr string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()

	b, ok := rl.buckets[addr]
	if !ok {
		// New clients start with a full bucket minus the current request.
		rl.buckets[addr] = &bucket{tokens: rl.limit - 1, lastFill: now}
		return true
	}

	// Refill proportionally to the time elapsed since the last request.
	elapsed := now.Sub(b.lastFill)
	b.tokens += rl.limit * (float64(elapsed) / float64(rl.window))
	if b.tokens > rl.limit {
		b.tokens = rl.limit
	}
	b.lastFill = now

	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

// cleanupLoop periodically drops buckets that have been idle for more than
// two windows. An idle bucket is full again anyway, so forgetting it does
// not change behavior for the client.
func (rl *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(rl.window)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case <-ticker.C:
			rl.evictIdle()
		}
	}
}

func (rl *RateLimiter) evictIdle() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := rl.now().Add(-2 * rl.window)
	for addr, b := range rl.buckets {
		if b.lastFill.Before(cutoff) {
			delete(rl.buckets, addr)
		}
	}
}

// Stop terminates the cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stopOnce.Do(func() {
		close(rl.stop)
	})
}

// size reports the number of tracked clients. Used by tests to observe
// eviction.
func (rl *RateLimiter) size() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}

// ClientAddress extracts the client address used as the rate-limit key.
// Proxy headers win over the socket address so one gateway does not
// collapse every caller into a single bucket.
//
// Parameters:
//   - r: The incoming HTTP request.
//
// Returns:
//   - string: The client address (host only, no port).
func ClientAddress(r *http.Request) string {
	// X-Forwarded-For holds a comma-separated chain; the first entry is
	// the originating client.
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if first, _, found := strings.Cut(xff, ","); found {
			return strings.TrimSpace(first)
		}
		return strings.TrimSpace(xff)
	}

	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return strings.TrimSpace(realIP)
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
