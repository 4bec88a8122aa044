package server

import (
	stdlog "log"
	"time"

	"github.com/agbru/fibpad/internal/logging"
	"github.com/agbru/fibpad/internal/session"
)

// Default rate-limit policy: generous for a single-user pad, tight enough to
// keep an accidental request loop from saturating the session mutex.
const (
	DefaultRateLimit  = 60
	DefaultRateWindow = time.Minute
)

// Timeouts groups the HTTP server deadlines.
type Timeouts struct {
	// Read is the maximum duration for reading the entire request.
	Read time.Duration
	// Write is the maximum duration before timing out response writes.
	Write time.Duration
	// Idle is the maximum time to wait for the next request on a
	// keep-alive connection.
	Idle time.Duration
	// Shutdown is the grace period for in-flight requests during shutdown.
	Shutdown time.Duration
}

// DefaultServerTimeouts returns deadlines sized for this API: computations
// are effectively instant, so only a configured artificial delay can make a
// request slow, and the write timeout leaves room for the largest one.
func DefaultServerTimeouts() Timeouts {
	return Timeouts{
		Read:     5 * time.Second,
		Write:    30 * time.Second,
		Idle:     60 * time.Second,
		Shutdown: 5 * time.Second,
	}
}

// Option is a functional option for configuring the Server.
type Option func(*Server)

// WithLogger sets a custom structured logger for the server.
//
// Parameters:
//   - logger: The logger to use. If nil, the option is ignored.
//
// Returns:
//   - Option: A functional option.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithStdLogger sets a standard library logger for the server.
// The logger is wrapped in an adapter to match the logging interface.
//
// Parameters:
//   - logger: The standard log.Logger to use. If nil, the option is ignored.
//
// Returns:
//   - Option: A functional option.
func WithStdLogger(logger *stdlog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logging.NewStdLoggerAdapter(logger)
		}
	}
}

// WithSession injects the session served by the API. Without this option the
// server builds its own session from the application configuration. Tests
// use it to serve a mock.
func WithSession(svc session.Service) Option {
	return func(s *Server) {
		if svc != nil {
			s.session = svc
		}
	}
}

// WithTimeouts overrides the HTTP server deadlines.
func WithTimeouts(t Timeouts) Option {
	return func(s *Server) {
		s.timeouts = t
	}
}

// WithListenAddr overrides the listen address derived from the configured
// port, e.g. "127.0.0.1:0" for tests that want an ephemeral port.
func WithListenAddr(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.listenAddr = addr
		}
	}
}

// WithRateLimiter replaces the default rate limiter. Passing nil disables
// rate limiting entirely.
func WithRateLimiter(rl *RateLimiter) Option {
	return func(s *Server) {
		s.rateLimiter = rl
		s.rateLimiterSet = true
	}
}

// WithSecurityConfig replaces the default security header policy.
func WithSecurityConfig(cfg SecurityConfig) Option {
	return func(s *Server) {
		s.securityConfig = cfg
	}
}
