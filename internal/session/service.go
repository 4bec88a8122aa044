package session

//go:generate mockgen -source=service.go -destination=../mocks/mock_service.go -package=mocks

import (
	"context"

	"github.com/agbru/fibpad/internal/history"
)

// Service defines the interface for interactive Fibonacci sessions.
// This abstraction enables dependency injection and easier testing/mocking.
type Service interface {
	// Submit validates the raw input and computes the Fibonacci value when
	// accepted.
	//
	// Parameters:
	//   - ctx: The context for cancellation.
	//   - raw: The raw user input.
	//
	// Returns:
	//   - Result: The computed outcome.
	//   - error: A validate.Error on rejection, or a context error.
	Submit(ctx context.Context, raw string) (Result, error)

	// Replay resubmits a previously computed index through the full pipeline.
	//
	// Parameters:
	//   - ctx: The context for cancellation.
	//   - n: The index to replay.
	//
	// Returns:
	//   - Result: The recomputed outcome.
	//   - error: Same contract as Submit.
	Replay(ctx context.Context, n uint64) (Result, error)

	// Entries returns a snapshot of the session history, most recent first.
	Entries() []history.Entry

	// ID returns the session identifier.
	ID() string

	// EngineName returns the name of the engine serving the session.
	EngineName() string

	// MaxIndex returns the inclusive upper bound accepted by the validator.
	MaxIndex() uint64

	// Capacity returns the number of history entries the session retains.
	Capacity() int
}

// Ensure Controller implements Service interface.
var _ Service = (*Controller)(nil)
