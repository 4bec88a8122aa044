// Package orchestration coordinates the -verify sweep: every registered
// engine recomputes the whole supported range, each sequence is checked
// against the seed values and the additive recurrence, and the per-engine
// value vectors are compared with each other before a verdict is rendered.
package orchestration

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"sort"
	"text/tabwriter"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/agbru/fibpad/internal/cli"
	apperrors "github.com/agbru/fibpad/internal/errors"
	"github.com/agbru/fibpad/internal/fibonacci"
	"github.com/agbru/fibpad/internal/ui"
)

// ─────────────────────────────────────────────────────────────────────────────
// SECTION: SWEEP EXECUTION
// ─────────────────────────────────────────────────────────────────────────────

// SweepResult captures the outcome of one engine's verification sweep.
type SweepResult struct {
	Engine   string        // Name of the engine that ran the sweep.
	Checked  uint64        // Number of indices verified before stopping.
	Duration time.Duration // Wall-clock time of the sweep.
	Values   []*big.Int    // Computed sequence F(0)..F(maxN); nil on failure.
	Err      error         // First defect found, or nil if the sweep passed.
}

// runSweep recomputes F(0)..F(maxN) with a single engine and checks each
// value as it is produced. The checks are ordered from cheapest to most
// specific: seed values first, then the additive recurrence, then strict
// growth (which only holds from F(3) onwards, since F(1) == F(2) == 1).
//
// Parameters:
//   - ctx: Context consulted between indices so a cancelled sweep stops early.
//   - engine: The calculation engine under test.
//   - maxN: Highest index to verify (inclusive).
//
// Returns:
//   - SweepResult: The populated outcome, including the value vector on success.
func runSweep(ctx context.Context, engine fibonacci.Engine, maxN uint64) SweepResult {
	start := time.Now()
	result := SweepResult{Engine: engine.Name()}
	values := make([]*big.Int, 0, maxN+1)

	for n := uint64(0); n <= maxN; n++ {
		if err := ctx.Err(); err != nil {
			result.Err = err
			result.Duration = time.Since(start)
			return result
		}

		v := engine.Compute(n)

		switch {
		case n == 0 && v.Sign() != 0:
			result.Err = fmt.Errorf("engine %q: F(0) = %s, want 0", engine.Name(), v)
		case n == 1 && v.Cmp(big.NewInt(1)) != 0:
			result.Err = fmt.Errorf("engine %q: F(1) = %s, want 1", engine.Name(), v)
		case n >= 2:
			expected := new(big.Int).Add(values[n-1], values[n-2])
			if v.Cmp(expected) != 0 {
				result.Err = fmt.Errorf("engine %q: F(%d) = %s, want F(%d)+F(%d) = %s",
					engine.Name(), n, v, n-1, n-2, expected)
			} else if n >= 3 && v.Cmp(values[n-1]) <= 0 {
				result.Err = fmt.Errorf("engine %q: F(%d) = %s does not exceed F(%d) = %s",
					engine.Name(), n, v, n-1, values[n-1])
			}
		}

		if result.Err != nil {
			result.Duration = time.Since(start)
			return result
		}

		values = append(values, v)
		result.Checked++
	}

	result.Values = values
	result.Duration = time.Since(start)
	return result
}

// RunSweeps executes one verification sweep per engine concurrently and
// collects the outcomes. Each engine gets its own goroutine; the shared
// context lets a cancellation or timeout abort every sweep in flight.
//
// Parameters:
//   - ctx: Parent context governing all sweeps.
//   - engines: The engines to verify; order is preserved in the results.
//   - maxN: Highest index to verify (inclusive).
//
// Returns:
//   - []SweepResult: One result per engine, in input order.
func RunSweeps(ctx context.Context, engines []fibonacci.Engine, maxN uint64) []SweepResult {
	results := make([]SweepResult, len(engines))

	g, groupCtx := errgroup.WithContext(ctx)
	for i, engine := range engines {
		g.Go(func() error {
			results[i] = runSweep(groupCtx, engine, maxN)
			// Sweep defects are reported through the result, not the
			// group, so one broken engine never aborts the others.
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// ─────────────────────────────────────────────────────────────────────────────
// SECTION: ANALYSIS AND REPORTING
// ─────────────────────────────────────────────────────────────────────────────

// AnalyzeSweeps renders a summary table of the sweep outcomes, compares the
// value vectors of every successful engine, and derives the process exit code.
//
// Parameters:
//   - results: Sweep outcomes from RunSweeps.
//   - maxN: Highest index that was verified, echoed in the verdict line.
//   - out: Destination for the human-readable report.
//
// Returns:
//   - int: apperrors.ExitSuccess when all engines pass and agree,
//     apperrors.ExitErrorMismatch when two engines disagree on a value,
//     apperrors.ExitErrorGeneric when every sweep failed.
func AnalyzeSweeps(results []SweepResult, maxN uint64, out io.Writer) int {
	sorted := make([]SweepResult, len(results))
	copy(sorted, results)
	sort.Slice(sorted, func(i, j int) bool {
		if (sorted[i].Err == nil) != (sorted[j].Err == nil) {
			return sorted[i].Err == nil
		}
		return sorted[i].Duration < sorted[j].Duration
	})

	fmt.Fprintf(out, "\n%s--- Verification Summary ---%s\n", ui.ColorUnderline(), ui.ColorReset())
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  %sEngine\tChecked\tDuration\tStatus%s\n", ui.ColorBold(), ui.ColorReset())

	var firstErr error
	successCount := 0
	for _, r := range sorted {
		status := fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		if r.Err != nil {
			status = fmt.Sprintf("%s❌ Failure: %v%s", ui.ColorRed(), r.Err, ui.ColorReset())
			if firstErr == nil {
				firstErr = r.Err
			}
		} else {
			successCount++
		}
		fmt.Fprintf(w, "  %s\t%d\t%s\t%s\n",
			r.Engine, r.Checked, cli.FormatExecutionDuration(r.Duration), status)
	}
	w.Flush()
	fmt.Fprintln(out)

	if successCount == 0 {
		fmt.Fprintf(out, "%sGlobal Status: Failure. No engine completed its sweep.%s\n",
			ui.ColorRed(), ui.ColorReset())
		return apperrors.HandleSubmitError(firstErr, 0, out, cli.CLIColorProvider{})
	}

	if !valuesAgree(results) {
		fmt.Fprintf(out, "%s❌ CRITICAL MISMATCH: engines disagree on computed values!%s\n",
			ui.ColorRed()+ui.ColorBold(), ui.ColorReset())
		return apperrors.ExitErrorMismatch
	}

	fmt.Fprintf(out, "%sGlobal Status: Success.%s %d engine(s) agree up to F(%d).\n",
		ui.ColorGreen(), ui.ColorReset(), successCount, maxN)
	return apperrors.ExitSuccess
}

// valuesAgree reports whether every successful sweep produced an identical
// value vector. The first successful sweep serves as the reference.
func valuesAgree(results []SweepResult) bool {
	var reference []*big.Int
	for _, r := range results {
		if r.Err != nil {
			continue
		}
		if reference == nil {
			reference = r.Values
			continue
		}
		if len(r.Values) != len(reference) {
			return false
		}
		for i := range reference {
			if r.Values[i].Cmp(reference[i]) != 0 {
				return false
			}
		}
	}
	return true
}

// ─────────────────────────────────────────────────────────────────────────────
// SECTION: ENTRY POINT
// ─────────────────────────────────────────────────────────────────────────────

// VerifySequence resolves every registered engine from the factory, sweeps
// them all, and renders the verdict. It is the implementation behind the
// -verify flag.
//
// Parameters:
//   - ctx: Parent context governing the sweeps.
//   - factory: Source of engines; every registered name is verified.
//   - maxN: Highest index to verify (inclusive).
//   - out: Destination for the report.
//
// Returns:
//   - int: The process exit code derived by AnalyzeSweeps.
func VerifySequence(ctx context.Context, factory fibonacci.EngineFactory, maxN uint64, out io.Writer) int {
	names := factory.List()
	engines := make([]fibonacci.Engine, 0, len(names))
	for _, name := range names {
		engine, err := factory.Get(name)
		if err != nil {
			fmt.Fprintf(out, "%sError resolving engine %q: %v%s\n", ui.ColorRed(), name, err, ui.ColorReset())
			return apperrors.ExitErrorGeneric
		}
		engines = append(engines, engine)
	}

	fmt.Fprintf(out, "Verifying %d engine(s) up to F(%d)...\n", len(engines), maxN)
	results := RunSweeps(ctx, engines, maxN)
	return AnalyzeSweeps(results, maxN, out)
}
