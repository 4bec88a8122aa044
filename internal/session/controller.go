package session

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/agbru/fibpad/internal/config"
	"github.com/agbru/fibpad/internal/fibonacci"
	"github.com/agbru/fibpad/internal/history"
	"github.com/agbru/fibpad/internal/logging"
	"github.com/agbru/fibpad/internal/validate"
)

// DelayFunc pauses for the given duration, honoring context cancellation.
// It exists so interactive front ends can stage a short "thinking" pause and
// so tests can substitute an instant implementation. The pause happens after
// validation and before the computation; it can only abort a submission, it
// never changes a computed value.
type DelayFunc func(ctx context.Context, d time.Duration) error

// sleepDelay is the default DelayFunc. A non-positive duration returns
// immediately.
func sleepDelay(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Result is the outcome of an accepted submission.
type Result struct {
	// Index is the validated Fibonacci index.
	Index uint64
	// Value is the exact computed Fibonacci number.
	Value *big.Int
	// Duration is the wall time of the whole submission, including any
	// configured delay.
	Duration time.Duration
}

// Controller drives one interactive session. It validates raw input, computes
// accepted indices with the configured engine, records outcomes in the
// bounded history and publishes session events.
//
// A Controller serves a single writer and a single reader: it is not safe for
// concurrent use. Callers that share one across goroutines (such as the HTTP
// server) must serialize access.
type Controller struct {
	id        string
	validator *validate.Validator
	engine    fibonacci.Engine
	store     *history.Store
	subject   *EventSubject
	logger    logging.Logger
	delay     time.Duration
	delayFn   DelayFunc
	clock     func() time.Time
	capacity  int
}

// NewController creates a session controller. Without options it uses a
// random session ID, the default engine from the global factory, the standard
// index bound and history capacity, and no delay.
//
// Parameters:
//   - opts: Functional options overriding the defaults.
//
// Returns:
//   - *Controller: A ready-to-use session controller.
func NewController(opts ...Option) *Controller {
	c := &Controller{
		id:       uuid.NewString(),
		subject:  NewEventSubject(),
		capacity: config.DefaultHistoryCapacity,
		delayFn:  sleepDelay,
		clock:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.validator == nil {
		c.validator = validate.NewValidator(config.DefaultMaxIndex)
	}
	if c.engine == nil {
		c.engine = fibonacci.GlobalFactory().MustGet(fibonacci.DefaultEngineName)
	}
	if c.logger == nil {
		c.logger = logging.NewDefaultLogger()
	}
	c.store = history.NewStore(c.capacity)
	return c
}

// Submit validates the raw input and, when accepted, computes F(n), records
// the outcome in the history and publishes EventComputed followed by
// EventHistoryChanged. A rejected submission publishes EventRejected and
// returns the typed validation error; the history is left untouched.
//
// Parameters:
//   - ctx: The context for cancellation during the configured delay.
//   - raw: The raw user input, uninterpreted.
//
// Returns:
//   - Result: The computed index, value and submission duration.
//   - error: A validate.Error on rejection, or a context error if the
//     submission was aborted before computing.
func (c *Controller) Submit(ctx context.Context, raw string) (Result, error) {
	start := time.Now()

	index, err := c.validator.Validate(raw)
	if err != nil {
		var rejection validate.Error
		if errors.As(err, &rejection) {
			c.logger.Debug("submission rejected",
				logging.String("session", c.id),
				logging.String("kind", rejection.Kind.String()),
				logging.String("raw", raw),
			)
			c.subject.Notify(Event{
				Kind:      EventRejected,
				SessionID: c.id,
				Rejection: &rejection,
				At:        c.clock(),
			})
		}
		return Result{}, err
	}

	if err := c.delayFn(ctx, c.delay); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	n := uint64(index)
	value := c.engine.Compute(n)
	c.store.Record(history.NewEntry(index, value, c.clock()))

	c.subject.Notify(Event{
		Kind:      EventComputed,
		SessionID: c.id,
		Index:     n,
		Value:     value.String(),
		At:        c.clock(),
	})
	c.subject.Notify(Event{
		Kind:      EventHistoryChanged,
		SessionID: c.id,
		Entries:   c.store.Entries(),
		At:        c.clock(),
	})

	return Result{Index: n, Value: value, Duration: time.Since(start)}, nil
}

// Replay resubmits a previously computed index. The history hands the index
// back untouched and the value is recomputed through the same
// validate-compute-record pipeline as a fresh submission, producing a new
// entry with its own timestamp.
//
// Parameters:
//   - ctx: The context for cancellation.
//   - n: The index to replay.
//
// Returns:
//   - Result: The recomputed outcome.
//   - error: Same contract as Submit.
func (c *Controller) Replay(ctx context.Context, n uint64) (Result, error) {
	return c.Submit(ctx, c.store.Replay(validate.Index(n)).String())
}

// Entries returns a snapshot of the session history, most recent first.
func (c *Controller) Entries() []history.Entry {
	return c.store.Entries()
}

// ID returns the session identifier.
func (c *Controller) ID() string {
	return c.id
}

// EngineName returns the name of the engine serving this session.
func (c *Controller) EngineName() string {
	return c.engine.Name()
}

// MaxIndex returns the inclusive upper bound accepted by the validator.
func (c *Controller) MaxIndex() uint64 {
	return c.validator.MaxN()
}

// Capacity returns the number of history entries the session retains.
func (c *Controller) Capacity() int {
	return c.store.Cap()
}

// Subject exposes the event subject so front ends can register and
// unregister observers while the session runs.
func (c *Controller) Subject() *EventSubject {
	return c.subject
}
