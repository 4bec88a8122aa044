// Package fibonacci provides the exact Fibonacci computation engine. It
// exposes an `Engine` interface that abstracts the arithmetic backend,
// allowing alternative implementations (math/big by default, GMP behind a
// build tag) to be used interchangeably through a registry. All engines
// compute with arbitrary-precision integers: no floating point, no
// fixed-width arithmetic that could overflow, no state carried between
// calls.
package fibonacci

//go:generate mockgen -source=engine.go -destination=../mocks/mock_engine.go -package=mocks

import (
	"context"
	"math/big"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
)

var (
	computationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fibpad_computations_total",
			Help: "The total number of Fibonacci computations performed",
		},
		[]string{"engine"},
	)
	computationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "fibpad_computation_duration_seconds",
			Help: "The duration of Fibonacci computations in seconds",
		},
		[]string{"engine"},
	)
)

// Engine defines the public interface for an exact Fibonacci engine.
// It is the primary abstraction used by the session layer to compute
// values for validated indices.
type Engine interface {
	// Compute returns F(n) as an exact arbitrary-precision integer. The
	// returned value is freshly allocated on every call and never aliases
	// engine state: repeated calls with the same n yield equal values.
	//
	// Compute defines no failure path. Callers are expected to pass an
	// index that already passed validation; behavior outside that
	// precondition is unspecified rather than an error condition.
	//
	// Parameters:
	//   - n: The index of the Fibonacci number to compute.
	//
	// Returns:
	//   - *big.Int: The exact value of F(n).
	Compute(n uint64) *big.Int

	// Name returns the display name of the engine backend (e.g. "iterative").
	//
	// Returns:
	//   - string: The name of the backend.
	Name() string
}

// InstrumentedEngine is an implementation of the Engine interface that uses
// the Decorator design pattern. It wraps another Engine to add cross-cutting
// concerns — an OpenTelemetry span, Prometheus counters, and a debug log
// record per computation — without changing returned values.
type InstrumentedEngine struct {
	core Engine
}

// NewInstrumentedEngine constructs an InstrumentedEngine around core. It
// panics if core is nil, ensuring system integrity at wiring time.
//
// Parameters:
//   - core: The engine to be wrapped.
//
// Returns:
//   - Engine: A new InstrumentedEngine decorating core.
func NewInstrumentedEngine(core Engine) Engine {
	if core == nil {
		panic("fibonacci: the core Engine implementation cannot be nil")
	}
	return &InstrumentedEngine{core: core}
}

// Name returns the name of the wrapped engine, fulfilling the Engine
// interface by delegating the call.
func (e *InstrumentedEngine) Name() string {
	return e.core.Name()
}

// Compute delegates to the wrapped engine and records the observability
// signals around it. Instrumentation is strictly passive: the value
// returned is exactly the core engine's value.
//
// Parameters:
//   - n: The index of the Fibonacci number to compute.
//
// Returns:
//   - *big.Int: The exact value of F(n).
func (e *InstrumentedEngine) Compute(n uint64) *big.Int {
	// Compute is synchronous and bounded, so the span carries no caller
	// context; it exists to make per-computation timing visible in traces.
	tracer := otel.Tracer("fibpad")
	_, span := tracer.Start(context.Background(), "Compute")
	defer span.End()

	start := time.Now()
	result := e.core.Compute(n)
	duration := time.Since(start).Seconds()

	name := e.core.Name()
	computationsTotal.WithLabelValues(name).Inc()
	computationDuration.WithLabelValues(name).Observe(duration)

	log.Debug().
		Str("engine", name).
		Uint64("n", n).
		Float64("duration", duration).
		Int("digits", len(result.String())).
		Msg("computation completed")

	return result
}
