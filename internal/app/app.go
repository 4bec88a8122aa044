package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/agbru/fibpad/internal/cli"
	"github.com/agbru/fibpad/internal/config"
	apperrors "github.com/agbru/fibpad/internal/errors"
	"github.com/agbru/fibpad/internal/fibonacci"
	"github.com/agbru/fibpad/internal/logging"
	"github.com/agbru/fibpad/internal/orchestration"
	"github.com/agbru/fibpad/internal/server"
	"github.com/agbru/fibpad/internal/session"
	"github.com/agbru/fibpad/internal/ui"
	"github.com/agbru/fibpad/internal/validate"
)

// Application represents the fibpad application instance.
// It encapsulates the configuration and provides methods to run
// the application in various modes (one-shot CLI, server, REPL).
type Application struct {
	// Config holds the parsed application configuration.
	Config config.AppConfig
	// Factory provides access to the Fibonacci engine implementations.
	// Uses the interface type for better testability and dependency injection.
	Factory fibonacci.EngineFactory
	// ErrWriter is the writer for error output (typically os.Stderr).
	ErrWriter io.Writer
}

// New creates a new Application instance by parsing command-line arguments.
// It validates the configuration and returns an error if parsing or validation fails.
//
// Parameters:
//   - args: The command-line arguments (typically os.Args).
//   - errWriter: The writer for error output.
//
// Returns:
//   - *Application: A new application instance.
//   - error: An error if configuration parsing or validation fails.
func New(args []string, errWriter io.Writer) (*Application, error) {
	factory := fibonacci.GlobalFactory()
	availableEngines := factory.List()

	// args[0] is program name, args[1:] are the actual arguments
	programName := "fibpad"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableEngines)
	if err != nil {
		return nil, err
	}

	return &Application{
		Config:    cfg,
		Factory:   factory,
		ErrWriter: errWriter,
	}, nil
}

// Run executes the application based on the configured mode.
// It dispatches to the appropriate handler (version, server, verify, REPL, or
// one-shot submission). When no index argument is given and no other mode is
// selected, the interactive REPL is the default.
//
// Parameters:
//   - ctx: The context for managing cancellation and timeouts.
//   - out: The writer for standard output.
//
// Returns:
//   - int: An exit code (0 for success, non-zero for errors).
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	// Version information needs no theme or session
	if a.Config.ShowVersion {
		return a.runVersion(out)
	}

	// Initialize CLI theme (respects --no-color flag and NO_COLOR env var)
	ui.InitTheme(a.Config.NoColor)

	// Server mode
	if a.Config.ServerMode {
		return a.runServer()
	}

	// Verification mode: recompute the whole sequence on every engine
	if a.Config.Verify {
		return a.runVerify(ctx, out)
	}

	// Interactive REPL mode, also the default when no index was supplied
	if a.Config.Interactive || a.Config.RawIndex == "" {
		return a.runREPL(ctx, out)
	}

	// One-shot submission mode
	return a.runSubmit(ctx, out)
}

// runVersion prints version information, as JSON when requested.
func (a *Application) runVersion(out io.Writer) int {
	if a.Config.JSONOutput {
		return printVersionJSON(out)
	}
	PrintVersion(out)
	return apperrors.ExitSuccess
}

// runServer starts the HTTP server mode.
func (a *Application) runServer() int {
	srv := server.NewServer(a.Factory, a.Config)
	if err := srv.Start(); err != nil {
		fmt.Fprintf(a.ErrWriter, "Server error: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// runVerify recomputes F(0)..F(max) on every registered engine and checks the
// results against the golden sequence.
func (a *Application) runVerify(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel()

	return orchestration.VerifySequence(ctx, a.Factory, a.Config.MaxIndex, out)
}

// runREPL starts the interactive REPL mode. Interactive sessions are not
// bounded by the global timeout; each submission applies its own.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, stop := SetupSignals(ctx)
	defer stop()

	repl := cli.NewREPL(a.buildSession(out), cli.REPLConfig{
		Timeout:          a.Config.Timeout,
		Version:          Version,
		AvailableEngines: a.Factory.List(),
	})
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// runSubmit orchestrates a single submission: validate the raw input, compute
// the value, record it in history, and render the result.
func (a *Application) runSubmit(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel()

	// Skip verbose output in quiet and JSON modes
	if !a.Config.JSONOutput && !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
	}

	svc := a.buildSession(out)

	start := time.Now()
	res, err := svc.Submit(ctx, a.Config.RawIndex)
	if err != nil {
		return apperrors.HandleSubmitError(err, time.Since(start), a.ErrWriter, cli.CLIColorProvider{})
	}

	switch {
	case a.Config.JSONOutput:
		if err := cli.WriteResultJSON(out, res, svc.EngineName()); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error encoding result: %v\n", err)
			return apperrors.ExitErrorGeneric
		}
	case a.Config.Quiet:
		cli.DisplayQuietResult(out, res)
	default:
		cli.DisplayResult(out, res, svc.EngineName())
	}
	return apperrors.ExitSuccess
}

// buildSession assembles the session controller for the CLI modes from the
// parsed configuration. The terminal belongs to the rendered output, so the
// controller's structured records are discarded here; server mode keeps them.
func (a *Application) buildSession(out io.Writer) session.Service {
	engine, err := a.Factory.Get(a.Config.Engine)
	if err != nil {
		// The engine name was validated at startup; if registration drifted
		// since then, serve the default rather than abort.
		engine = &fibonacci.IterativeEngine{}
	}

	opts := []session.Option{
		session.WithEngine(engine),
		session.WithValidator(validate.NewValidator(a.Config.MaxIndex)),
		session.WithHistoryCapacity(a.Config.HistoryCapacity),
		session.WithLogger(logging.NewLogger(io.Discard, "session")),
	}
	if a.Config.Delay > 0 {
		opts = append(opts, session.WithDelay(a.Config.Delay))
		if !a.Config.Quiet && !a.Config.JSONOutput {
			opts = append(opts, session.WithDelayFunc(cli.DelayIndicator(out)))
		}
	}
	return session.NewController(opts...)
}

// IsHelpError checks if the error is a help flag error (--help was used).
// This is useful for determining if the application should exit with success
// after displaying help text.
//
// Parameters:
//   - err: The error to check.
//
// Returns:
//   - bool: True if the error indicates help was requested.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
