// Package config provides the configuration management for the fibpad
// application. It defines the data structure for the configuration, handles
// the parsing of command-line arguments, and performs validation on the
// configuration values.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/agbru/fibpad/internal/errors"
)

const (
	// EnvPrefix is the prefix for all environment variables used by fibpad.
	// Environment variables provide an alternative to CLI flags for
	// configuration, following the 12-Factor App methodology.
	EnvPrefix = "FIBPAD_"
)

// Default configuration values.
// These can be overridden via command-line flags or environment variables.
const (
	// DefaultMaxIndex is the inclusive upper bound for valid Fibonacci
	// indices. Inputs above it are rejected by the validator; the bound is
	// configuration, never a literal at a call site.
	DefaultMaxIndex uint64 = 45
	// DefaultHistoryCapacity is the number of recent computations retained
	// per session.
	DefaultHistoryCapacity = 5
	// DefaultTimeout is the default bound on a whole run (one-shot or
	// verify); interactive and server modes run until interrupted.
	DefaultTimeout = 30 * time.Second
	// DefaultPort is the default server port.
	DefaultPort = "8080"
	// DefaultEngine is the default computation backend.
	DefaultEngine = "iterative"
)

// AppConfig aggregates the application's configuration parameters, parsed
// from command-line flags. It encapsulates all settings that control the
// execution, from the index bound to transport selection.
type AppConfig struct {
	// RawIndex is the raw, unvalidated index text for a one-shot run. It is
	// deliberately a string: classifying bad input (not a number, negative,
	// too large) is the validator's job, not the flag parser's.
	RawIndex string
	// MaxIndex is the inclusive upper bound for valid indices (MAX_N).
	MaxIndex uint64
	// HistoryCapacity is the number of entries the session history retains.
	HistoryCapacity int
	// Delay, when positive, is an artificial pause inserted before a result
	// is reported. Purely interactive polish; it never affects values.
	Delay time.Duration
	// Engine selects the computation backend by registry name.
	Engine string
	// Timeout bounds a non-interactive run.
	Timeout time.Duration
	// ServerMode, if true, starts the application as an HTTP server.
	ServerMode bool
	// Port specifies the port to listen on in server mode.
	Port string
	// Interactive, if true, starts the application in REPL mode.
	Interactive bool
	// Verify, if true, runs the engine self-check sweep instead of a
	// computation.
	Verify bool
	// JSONOutput, if true, outputs results in JSON format.
	JSONOutput bool
	// Quiet mode - minimal output for scripting purposes. Suppresses
	// banners and informational messages.
	Quiet bool
	// NoColor, if true, disables all color output in the CLI.
	// Also respects the NO_COLOR environment variable.
	NoColor bool
	// ShowVersion, if true, prints version information and exits.
	ShowVersion bool
}

// Validate checks the semantic consistency of the configuration parameters.
// It ensures that numerical values are within valid ranges and that the
// chosen engine is registered.
//
// Parameters:
//   - availableEngines: A slice of strings listing the valid engine names
//     (e.g., ["iterative"]).
//
// Returns:
//   - error: An error of type ConfigError if the configuration is invalid,
//     nil otherwise.
func (c AppConfig) Validate(availableEngines []string) error {
	if c.HistoryCapacity < 1 {
		return apperrors.NewConfigError("history capacity must be at least 1: %d", c.HistoryCapacity)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.Delay < 0 {
		return apperrors.NewConfigError("delay cannot be negative: %s", c.Delay)
	}
	if c.ServerMode && c.Port == "" {
		return apperrors.NewConfigError("server mode requires a port")
	}
	isEngineAvailable := false
	for _, e := range availableEngines {
		if e == c.Engine {
			isEngineAvailable = true
			break
		}
	}
	if !isEngineAvailable {
		return apperrors.NewConfigError("unrecognized engine: '%s'. Valid engines are: [%s]", c.Engine, strings.Join(availableEngines, ", "))
	}
	return nil
}

// ParseConfig parses the command-line arguments and populates an AppConfig
// struct. It defines all the command-line flags, sets their default values,
// and handles the parsing process. After parsing, it applies environment
// overrides and performs validation on the resulting configuration.
//
// The function is designed to be testable by allowing the input arguments
// and output writer to be specified.
//
// Parameters:
//   - programName: The name of the program, used in the usage message.
//   - args: A slice of strings representing the command-line arguments
//     (typically os.Args[1:]).
//   - errorWriter: An io.Writer where parsing errors and usage information
//     will be printed.
//   - availableEngines: A slice of valid engine names for validation.
//
// Returns:
//   - AppConfig: The populated configuration struct.
//   - error: An error if flag parsing fails or validation fails.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableEngines []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	engineHelp := fmt.Sprintf("Computation backend: one of [%s].", strings.Join(availableEngines, ", "))

	config := AppConfig{}
	fs.StringVar(&config.RawIndex, "n", "", "Index of the Fibonacci number to compute (raw text, validated before use).")
	fs.Uint64Var(&config.MaxIndex, "max-n", DefaultMaxIndex, "Inclusive upper bound for valid indices.")
	fs.IntVar(&config.HistoryCapacity, "history-capacity", DefaultHistoryCapacity, "Number of recent computations retained in the session history.")
	fs.DurationVar(&config.Delay, "delay", 0, "Artificial pause before reporting a result (interactive polish; never changes values).")
	fs.StringVar(&config.Engine, "engine", DefaultEngine, engineHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time for a non-interactive run.")
	fs.BoolVar(&config.ServerMode, "serve", false, "Start in HTTP server mode.")
	fs.StringVar(&config.Port, "port", DefaultPort, "Port to listen on in server mode.")
	fs.BoolVar(&config.Interactive, "repl", false, "Start in interactive REPL mode.")
	fs.BoolVar(&config.Verify, "verify", false, "Run the engine self-check sweep and exit.")
	fs.BoolVar(&config.JSONOutput, "json", false, "Output results in JSON format.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - minimal output for scripts.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.ShowVersion, "version", false, "Print version information and exit.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	// A bare positional argument is accepted as the index for one-shot
	// runs: `fibpad 45` and `fibpad -n 45` are equivalent. An explicit -n
	// wins when both are present.
	if rest := fs.Args(); len(rest) > 0 && !isFlagSet(fs, "n") {
		config.RawIndex = rest[0]
	}

	// Apply environment variable overrides for flags not explicitly set
	applyEnvOverrides(&config, fs)

	config.Engine = strings.ToLower(config.Engine)
	if err := config.Validate(availableEngines); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.New("invalid configuration")
	}
	return config, nil
}
