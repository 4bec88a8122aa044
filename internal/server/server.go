// Package server exposes a Fibonacci pad session over HTTP. One process
// serves one session: a small JSON API accepts raw submissions, replays, and
// history reads, with security headers, request correlation, per-client rate
// limiting, structured logging, and Prometheus metrics layered as middleware.
package server

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/agbru/fibpad/internal/config"
	apperrors "github.com/agbru/fibpad/internal/errors"
	"github.com/agbru/fibpad/internal/fibonacci"
	"github.com/agbru/fibpad/internal/logging"
	"github.com/agbru/fibpad/internal/session"
	"github.com/agbru/fibpad/internal/validate"
)

// Server wraps the standard http.Server around a single pad session. The
// session controller is single-writer, so every handler takes the server
// mutex before touching it; the HTTP layer is where concurrent requests are
// serialized.
type Server struct {
	factory fibonacci.EngineFactory
	cfg     config.AppConfig

	mu      sync.Mutex
	session session.Service

	httpServer     *http.Server
	logger         logging.Logger
	shutdownSignal chan os.Signal
	rateLimiter    *RateLimiter
	rateLimiterSet bool
	securityConfig SecurityConfig
	metrics        *Metrics
	timeouts       Timeouts
	listenAddr     string
	started        time.Time
}

// NewServer creates a Server around a session built from the configuration.
//
// Parameters:
//   - factory: The engine factory to resolve the configured engine from.
//   - cfg: The application configuration (port, engine, limits).
//   - opts: Optional functional options (e.g., WithLogger, WithSession).
//
// Returns:
//   - *Server: A pointer to the initialized Server.
func NewServer(factory fibonacci.EngineFactory, cfg config.AppConfig, opts ...Option) *Server {
	s := &Server{
		factory:        factory,
		cfg:            cfg,
		logger:         logging.NewLogger(os.Stdout, "server"),
		shutdownSignal: make(chan os.Signal, 1),
		securityConfig: DefaultSecurityConfig(),
		metrics:        NewMetrics(),
		timeouts:       DefaultServerTimeouts(),
		listenAddr:     ":" + cfg.Port,
		started:        time.Now(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.session == nil {
		s.session = s.buildSession()
	}

	if !s.rateLimiterSet {
		s.rateLimiter = NewRateLimiter(DefaultRateLimit, DefaultRateWindow)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/compute", s.wrapWithMiddleware("/api/v1/compute", s.handleCompute))
	mux.HandleFunc("/api/v1/replay", s.wrapWithMiddleware("/api/v1/replay", s.handleReplay))
	mux.HandleFunc("/api/v1/history", s.wrapWithMiddleware("/api/v1/history", s.handleHistory))
	mux.HandleFunc("/api/v1/session", s.wrapWithMiddleware("/api/v1/session", s.handleSession))
	mux.HandleFunc("/health", s.wrapWithMiddleware("/health", s.handleHealth))
	mux.HandleFunc("/metrics", s.wrapWithMiddleware("/metrics", s.handleMetrics))

	s.httpServer = &http.Server{
		Addr:         s.listenAddr,
		Handler:      mux,
		ReadTimeout:  s.timeouts.Read,
		WriteTimeout: s.timeouts.Write,
		IdleTimeout:  s.timeouts.Idle,
	}

	return s
}

// buildSession assembles the default session from the configuration. An
// unknown engine name is logged and replaced with the iterative engine
// rather than refused: a serving process is more useful than a dead one, and
// the session banner names the engine actually used.
func (s *Server) buildSession() session.Service {
	engine, err := s.factory.Get(s.cfg.Engine)
	if err != nil {
		s.logger.Error("engine not registered, serving the default", err,
			logging.String("engine", s.cfg.Engine))
		engine = &fibonacci.IterativeEngine{}
	}

	svcOpts := []session.Option{
		session.WithEngine(engine),
		session.WithValidator(validate.NewValidator(s.cfg.MaxIndex)),
		session.WithHistoryCapacity(s.cfg.HistoryCapacity),
		session.WithLogger(s.logger),
		session.WithObserver(session.NewMetricsObserver()),
	}
	if s.cfg.Delay > 0 {
		svcOpts = append(svcOpts, session.WithDelay(s.cfg.Delay))
	}

	return session.NewController(svcOpts...)
}

// wrapWithMiddleware applies the full middleware chain to a handler.
func (s *Server) wrapWithMiddleware(path string, handler http.HandlerFunc) http.HandlerFunc {
	// Applied in reverse so execution order is:
	// Security -> RequestID -> RateLimit -> Logging -> Metrics -> Handler
	wrapped := s.metricsMiddleware(path, handler)
	wrapped = s.loggingMiddleware(wrapped)
	wrapped = s.rateLimitMiddleware(wrapped)
	wrapped = RequestIDMiddleware(wrapped)
	wrapped = SecurityMiddleware(s.securityConfig, wrapped)
	return wrapped
}

// handleMetrics serves GET /metrics through the Prometheus scrape handler.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.Handler().ServeHTTP(w, r)
}

// Handler returns the server's root handler with middleware applied.
// Tests mount it on httptest.Server instead of binding a port.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start initializes and starts the HTTP server.
// It listens for incoming requests on the configured port and handles system
// signals (SIGINT, SIGTERM) to ensure a graceful shutdown.
//
// Returns:
//   - error: An error if the server fails to start or shuts down unexpectedly.
func (s *Server) Start() error {
	signal.Notify(s.shutdownSignal, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)

	go func() {
		s.mu.Lock()
		id := s.session.ID()
		engine := s.session.EngineName()
		maxIndex := s.session.MaxIndex()
		capacity := s.session.Capacity()
		s.mu.Unlock()

		s.logger.Printf("Starting Fibonacci pad API on %s\n", s.httpServer.Addr)
		s.logger.Printf("Session %s: engine=%s, indices 0..%d, history %d\n",
			id, engine, maxIndex, capacity)
		s.logger.Println("Available endpoints:")
		s.logger.Println("  POST /api/v1/compute")
		s.logger.Println("  POST /api/v1/replay")
		s.logger.Println("  GET  /api/v1/history")
		s.logger.Println("  GET  /api/v1/session")
		s.logger.Println("  GET  /health")
		s.logger.Println("  GET  /metrics")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-s.shutdownSignal:
		s.logger.Println("Shutdown signal received, initiating graceful shutdown...")
	case err := <-errCh:
		s.stopRateLimiter()
		return apperrors.NewServerError("server failed to start", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), s.timeouts.Shutdown)
	defer cancel()

	s.stopRateLimiter()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return apperrors.NewServerError("failed to gracefully shutdown server", err)
	}

	s.logger.Println("Server stopped gracefully")
	return nil
}

func (s *Server) stopRateLimiter() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
}
