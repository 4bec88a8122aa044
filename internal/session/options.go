package session

import (
	"time"

	"github.com/agbru/fibpad/internal/fibonacci"
	"github.com/agbru/fibpad/internal/logging"
	"github.com/agbru/fibpad/internal/validate"
)

// Option configures a Controller during construction.
type Option func(*Controller)

// WithID sets the session identifier instead of generating one.
func WithID(id string) Option {
	return func(c *Controller) {
		if id != "" {
			c.id = id
		}
	}
}

// WithEngine sets the computation engine serving the session.
func WithEngine(engine fibonacci.Engine) Option {
	return func(c *Controller) {
		if engine != nil {
			c.engine = engine
		}
	}
}

// WithValidator sets the input validator, fixing the accepted index range.
func WithValidator(v *validate.Validator) Option {
	return func(c *Controller) {
		if v != nil {
			c.validator = v
		}
	}
}

// WithHistoryCapacity sets how many entries the session history retains.
// Values below 1 are ignored and the default capacity is kept.
func WithHistoryCapacity(n int) Option {
	return func(c *Controller) {
		if n >= 1 {
			c.capacity = n
		}
	}
}

// WithDelay sets the artificial pause applied to each accepted submission
// before computing. The pause never changes a computed value.
func WithDelay(d time.Duration) Option {
	return func(c *Controller) {
		c.delay = d
	}
}

// WithDelayFunc replaces the pause implementation. Interactive front ends use
// this to drive progress feedback; tests use it to make delays instant.
func WithDelayFunc(fn DelayFunc) Option {
	return func(c *Controller) {
		if fn != nil {
			c.delayFn = fn
		}
	}
}

// WithLogger sets the logger used for session-level traces.
func WithLogger(logger logging.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithObserver registers an observer at construction time.
func WithObserver(observer Observer) Option {
	return func(c *Controller) {
		c.subject.Register(observer)
	}
}

// WithClock replaces the time source used for entry and event timestamps.
// Tests use this to make timestamps deterministic.
func WithClock(clock func() time.Time) Option {
	return func(c *Controller) {
		if clock != nil {
			c.clock = clock
		}
	}
}
