package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/agbru/fibpad/internal/logging"
)

// ───────────────────────────────────────────────────────────────────────────
// SECTION: REQUEST CORRELATION
// ───────────────────────────────────────────────────────────────────────────

// RequestIDHeader carries the correlation id on requests and responses.
const RequestIDHeader = "X-Request-ID"

// contextKey is a private type for request-scoped values, preventing
// collisions with keys defined in other packages.
type contextKey string

const requestIDKey contextKey = "request-id"

// RequestIDMiddleware tags every request with a correlation id. An id
// supplied by the caller is kept so a gateway can trace a request across
// services; otherwise a fresh UUID is generated. The id is stored on the
// request context and echoed in the response headers.
//
// Parameters:
//   - next: The next handler in the chain.
//
// Returns:
//   - http.HandlerFunc: A handler that guarantees a request id downstream.
func RequestIDMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next(w, r.WithContext(ctx))
	}
}

// RequestIDFromContext returns the correlation id stored by
// RequestIDMiddleware, or the empty string when none is present.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// ───────────────────────────────────────────────────────────────────────────
// SECTION: LOGGING & RATE-LIMIT MIDDLEWARE
// ───────────────────────────────────────────────────────────────────────────

// loggingMiddleware emits one structured record per request once the handler
// returns.
func (s *Server) loggingMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)

		s.logger.Info("request handled",
			logging.String("method", r.Method),
			logging.String("path", r.URL.Path),
			logging.String("remote", ClientAddress(r)),
			logging.String("request_id", RequestIDFromContext(r.Context())),
			logging.Dur("duration", time.Since(start)),
		)
	}
}

// rateLimitMiddleware refuses requests from clients whose token bucket is
// empty. Refusals carry a Retry-After hint sized to the refill window.
func (s *Server) rateLimitMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.rateLimiter == nil {
			next(w, r)
			return
		}

		addr := ClientAddress(r)
		if !s.rateLimiter.Allow(addr) {
			s.metrics.RecordRateLimited()
			s.logger.Debug("request rate limited",
				logging.String("remote", addr),
				logging.String("path", r.URL.Path),
			)

			retryAfter := int(s.rateLimiter.window / time.Second)
			if retryAfter < 1 {
				retryAfter = 1
			}
			w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
			s.writeError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		next(w, r)
	}
}
