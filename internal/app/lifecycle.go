package app

import (
	"context"
	"os/signal"
	"syscall"
	"time"
)

// SetupSignals creates a context that will be canceled when the application
// receives SIGINT (Ctrl+C) or SIGTERM signals. This enables graceful shutdown.
//
// Parameters:
//   - ctx: The parent context.
//
// Returns:
//   - context.Context: A new context that will be canceled on signal receipt.
//   - context.CancelFunc: A function to stop listening for signals (should be deferred).
func SetupSignals(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
}

// SetupLifecycle bounds a run with the configured timeout and cancels it when
// a termination signal arrives, whichever happens first. A timeout of zero or
// below applies no deadline, leaving only signal handling in place.
//
// Parameters:
//   - ctx: The parent context.
//   - timeout: The maximum duration for the run; <= 0 means unbounded.
//
// Returns:
//   - context.Context: A context with timeout and signal handling applied.
//   - context.CancelFunc: A single function releasing both (should be deferred).
func SetupLifecycle(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	cancelTimeout := func() {}
	if timeout > 0 {
		ctx, cancelTimeout = context.WithTimeout(ctx, timeout)
	}
	ctx, stopSignals := SetupSignals(ctx)

	return ctx, func() {
		stopSignals()
		cancelTimeout()
	}
}
