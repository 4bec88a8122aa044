// Command fibpad is a bounded Fibonacci pad: it validates a requested index,
// computes the exact value, and keeps a short history of recent computations.
// It runs as a one-shot CLI, an interactive REPL, or an HTTP server.
package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/agbru/fibpad/internal/app"
	apperrors "github.com/agbru/fibpad/internal/errors"
)

func main() {
	os.Exit(run())
}

// run keeps main free of os.Exit so deferred cleanup actually executes.
func run() int {
	// A missing .env file is fine; FIBPAD_ variables are optional overrides.
	_ = godotenv.Load()

	// Engines and the server emit debug records through zerolog; keep them
	// out of normal runs so scripted use sees clean output.
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	application, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			return apperrors.ExitSuccess
		}
		// ParseConfig already reported the problem on stderr.
		return apperrors.ExitErrorConfig
	}

	return application.Run(context.Background(), os.Stdout)
}
