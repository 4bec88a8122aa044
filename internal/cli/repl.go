// Package cli provides the REPL (Read-Eval-Print Loop) functionality for the
// interactive pad. Input that is not a recognized command is handed to the
// session as a raw index submission, so the validator classifies typos and
// out-of-range values exactly as it would for any other transport.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/fibpad/internal/session"
	"github.com/agbru/fibpad/internal/validate"
)

// exampleIndices are the suggested starter submissions offered by the
// `examples` command: a small classic, a mid-range value, and the largest
// index of the default bound.
var exampleIndices = []uint64{10, 30, 45}

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// Timeout is the maximum duration for each submission. Zero means no
	// per-submission bound.
	Timeout time.Duration
	// Version is the application version shown by the `version` command.
	Version string
	// AvailableEngines lists the registered engine names for the `engines`
	// command.
	AvailableEngines []string
}

// REPL represents an interactive pad session bound to a single session
// controller.
type REPL struct {
	service session.Service
	config  REPLConfig
	in      io.Reader
	out     io.Writer
	clock   func() time.Time
}

// NewREPL creates a new REPL instance.
//
// Parameters:
//   - service: The session the pad submits to.
//   - config: REPL configuration.
//
// Returns:
//   - *REPL: A new REPL instance.
func NewREPL(service session.Service, config REPLConfig) *REPL {
	return &REPL{
		service: service,
		config:  config,
		in:      os.Stdin,
		out:     os.Stdout,
		clock:   time.Now,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive session. It continuously reads user input and
// processes commands until the user exits, EOF is reached, or the context is
// cancelled.
//
// Parameters:
//   - ctx: The context bounding the whole session.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		if ctx.Err() != nil {
			fmt.Fprintln(r.out, "\nSession ended.")
			return
		}

		fmt.Fprint(r.out, ColorGreen()+"fibpad> "+ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ColorRed(), err, ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(ctx, input) {
			return // Exit command received
		}
	}
}

// printBanner displays the welcome banner and the session limits.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "%s║%s        %s🔢 Fibonacci Pad - Interactive Session%s            %s║%s\n",
		ColorCyan(), ColorReset(), ColorBold(), ColorReset(), ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ColorCyan(), ColorReset())
	fmt.Fprintf(r.out, "Session %s%s%s | engine: %s%s%s | indices: 0..%s%d%s | history: %s%d%s\n\n",
		ColorYellow(), shortID(r.service.ID()), ColorReset(),
		ColorCyan(), r.service.EngineName(), ColorReset(),
		ColorCyan(), r.service.MaxIndex(), ColorReset(),
		ColorCyan(), r.service.Capacity(), ColorReset())
}

// shortID abbreviates a session identifier for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ColorBold(), ColorReset())
	fmt.Fprintf(r.out, "  %s<n>%s           - Submit an index (e.g. 10) for computation\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %shistory%s       - Show recent computations, newest first\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sreplay [pos]%s  - Resubmit a history entry (default: most recent)\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sexamples%s      - Starter indices, pick one with 'examples <1-%d>'\n", ColorYellow(), ColorReset(), len(exampleIndices))
	fmt.Fprintf(r.out, "  %sengines%s       - List the available computation engines\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sversion%s       - Show the application version\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sclear%s         - Clear the screen\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ColorYellow(), ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s   - Leave the pad\n", ColorYellow(), ColorReset(), ColorYellow(), ColorReset())
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "history", "hist":
		r.cmdHistory()
	case "replay":
		r.cmdReplay(ctx, args)
	case "examples", "ex":
		r.cmdExamples(ctx, args)
	case "engines":
		r.cmdEngines()
	case "version":
		r.cmdVersion()
	case "clear":
		r.cmdClear()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ColorGreen(), ColorReset())
		return false
	default:
		// Everything else is a submission. The validator, not the REPL,
		// decides whether the text is an acceptable index.
		r.submit(ctx, input)
	}

	return true
}

// submit hands a raw string to the session and renders the outcome.
func (r *REPL) submit(ctx context.Context, raw string) {
	sctx, cancel := r.submissionContext(ctx)
	defer cancel()

	res, err := r.service.Submit(sctx, raw)
	r.report(res, err)
}

// report renders a submission outcome: the result on success, the rejection
// kind and reason when the validator refused the input, or the error
// otherwise.
func (r *REPL) report(res session.Result, err error) {
	if err != nil {
		var rejection validate.Error
		if errors.As(err, &rejection) {
			fmt.Fprintf(r.out, "%sRejected (%s):%s %v\n", ColorYellow(), rejection.Kind, ColorReset(), rejection)
			return
		}
		fmt.Fprintf(r.out, "%sError: %v%s\n", ColorRed(), err, ColorReset())
		return
	}

	DisplayResult(r.out, res, r.service.EngineName())
	fmt.Fprintln(r.out)
}

// submissionContext derives the per-submission context, applying the
// configured timeout when one is set.
func (r *REPL) submissionContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.config.Timeout > 0 {
		return context.WithTimeout(ctx, r.config.Timeout)
	}
	return context.WithCancel(ctx)
}

// cmdHistory displays the session history with entry ages.
func (r *REPL) cmdHistory() {
	DisplayHistory(r.out, r.service.Entries(), r.service.Capacity(), r.clock())
}

// cmdReplay resubmits a history entry. The optional argument selects the
// entry by its position in the history listing (1 = most recent); without an
// argument the most recent entry is replayed. An argument beyond the listing
// is treated as a plain index and revalidated like any submission.
func (r *REPL) cmdReplay(ctx context.Context, args []string) {
	entries := r.service.Entries()
	if len(entries) == 0 {
		fmt.Fprintf(r.out, "%sHistory is empty, nothing to replay.%s\n", ColorYellow(), ColorReset())
		return
	}

	pos := uint64(1)
	if len(args) > 0 {
		parsed, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			fmt.Fprintf(r.out, "%sInvalid position: %s%s\n", ColorRed(), args[0], ColorReset())
			return
		}
		pos = parsed
	}

	index := pos
	if pos >= 1 && pos <= uint64(len(entries)) {
		index = uint64(entries[pos-1].Index())
	}
	fmt.Fprintf(r.out, "Replaying F(%s%d%s)...\n", ColorMagenta(), index, ColorReset())

	sctx, cancel := r.submissionContext(ctx)
	defer cancel()

	res, err := r.service.Replay(sctx, index)
	r.report(res, err)
}

// cmdExamples lists the starter indices, or submits one when a choice is
// given.
func (r *REPL) cmdExamples(ctx context.Context, args []string) {
	if len(args) > 0 {
		choice, err := strconv.Atoi(args[0])
		if err != nil || choice < 1 || choice > len(exampleIndices) {
			fmt.Fprintf(r.out, "%sInvalid choice: %s (expected 1-%d)%s\n", ColorRed(), args[0], len(exampleIndices), ColorReset())
			return
		}
		r.submit(ctx, strconv.FormatUint(exampleIndices[choice-1], 10))
		return
	}

	fmt.Fprintf(r.out, "\n%sStarter indices:%s\n", ColorBold(), ColorReset())
	labels := []string{"a small classic", "mid-range", "ten digits"}
	for i, n := range exampleIndices {
		fmt.Fprintf(r.out, "  %s[%d]%s F(%d) - %s\n", ColorYellow(), i+1, ColorReset(), n, labels[i])
	}
	fmt.Fprintf(r.out, "Use '%sexamples <1-%d>%s' to submit one.\n\n", ColorYellow(), len(exampleIndices), ColorReset())
}

// cmdEngines lists the registered engines, marking the one in use.
func (r *REPL) cmdEngines() {
	current := r.service.EngineName()
	fmt.Fprintf(r.out, "\n%sAvailable engines:%s\n", ColorBold(), ColorReset())
	for _, name := range r.config.AvailableEngines {
		marker := "  "
		if name == current {
			marker = ColorGreen() + "► " + ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%s%s\n", marker, ColorYellow(), name, ColorReset())
	}
	fmt.Fprintln(r.out)
}

// cmdVersion prints the application version.
func (r *REPL) cmdVersion() {
	version := r.config.Version
	if version == "" {
		version = "dev"
	}
	fmt.Fprintf(r.out, "fibpad %s%s%s\n", ColorCyan(), version, ColorReset())
}

// cmdClear clears the terminal and reprints the banner.
func (r *REPL) cmdClear() {
	fmt.Fprint(r.out, "\x1b[2J\x1b[H")
	r.printBanner()
}
