package orchestration

import (
	"bytes"
	"context"
	"errors"
	"math/big"
	"strings"
	"testing"
	"time"

	apperrors "github.com/agbru/fibpad/internal/errors"
	"github.com/agbru/fibpad/internal/fibonacci"
	"github.com/agbru/fibpad/internal/testutil"
)

// scriptedEngine is a mock implementation of fibonacci.Engine whose values
// are produced by a test-supplied function, so sweeps can be driven into
// specific defects.
type scriptedEngine struct {
	name string
	fn   func(n uint64) *big.Int
}

// Name returns the mocked engine name.
func (e *scriptedEngine) Name() string {
	return e.name
}

// Compute invokes the scripted function.
func (e *scriptedEngine) Compute(n uint64) *big.Int {
	return e.fn(n)
}

// correctFn delegates to the real iterative engine so a scripted engine can
// behave correctly up to the point a test wants it to fail.
func correctFn() func(n uint64) *big.Int {
	engine := &fibonacci.IterativeEngine{}
	return engine.Compute
}

// bigSequence converts int64 literals into the value vector shape used by
// SweepResult.
func bigSequence(vals ...int64) []*big.Int {
	out := make([]*big.Int, len(vals))
	for i, v := range vals {
		out[i] = big.NewInt(v)
	}
	return out
}

// TestRunSweepPassesForCorrectEngine verifies that a full sweep of the real
// iterative engine checks every index and lands on the expected final value.
func TestRunSweepPassesForCorrectEngine(t *testing.T) {
	t.Parallel()

	result := runSweep(context.Background(), &fibonacci.IterativeEngine{}, 45)

	if result.Err != nil {
		t.Fatalf("unexpected sweep error: %v", result.Err)
	}
	if result.Checked != 46 {
		t.Errorf("expected 46 checked indices, got %d", result.Checked)
	}
	if len(result.Values) != 46 {
		t.Fatalf("expected 46 values, got %d", len(result.Values))
	}
	if got := result.Values[45].String(); got != "1134903170" {
		t.Errorf("expected F(45) = 1134903170, got %s", got)
	}
}

// TestRunSweepDetectsDefects verifies that broken engines are caught at the
// first defective index, with the sweep stopping immediately.
func TestRunSweepDetectsDefects(t *testing.T) {
	t.Parallel()

	correct := correctFn()
	tests := []struct {
		name        string
		fn          func(n uint64) *big.Int
		maxN        uint64
		wantChecked uint64
		wantErrPart string
	}{
		{
			name:        "Wrong seed at F(0)",
			fn:          func(n uint64) *big.Int { return big.NewInt(7) },
			maxN:        10,
			wantChecked: 0,
			wantErrPart: "F(0)",
		},
		{
			name: "Wrong seed at F(1)",
			fn: func(n uint64) *big.Int {
				if n == 0 {
					return big.NewInt(0)
				}
				return big.NewInt(7)
			},
			maxN:        10,
			wantChecked: 1,
			wantErrPart: "F(1)",
		},
		{
			name: "Broken recurrence at F(4)",
			fn: func(n uint64) *big.Int {
				if n == 4 {
					return big.NewInt(4)
				}
				return correct(n)
			},
			maxN:        10,
			wantChecked: 4,
			wantErrPart: "F(4)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			engine := &scriptedEngine{name: "broken", fn: tt.fn}

			result := runSweep(context.Background(), engine, tt.maxN)

			if result.Err == nil {
				t.Fatal("expected a sweep error, got nil")
			}
			if !strings.Contains(result.Err.Error(), tt.wantErrPart) {
				t.Errorf("error %q does not mention %q", result.Err, tt.wantErrPart)
			}
			if result.Checked != tt.wantChecked {
				t.Errorf("expected %d checked indices, got %d", tt.wantChecked, result.Checked)
			}
			if result.Values != nil {
				t.Error("expected nil value vector for a failed sweep")
			}
		})
	}
}

// TestRunSweepHonorsCancellation verifies that a cancelled context aborts
// the sweep before any index is verified.
func TestRunSweepHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := runSweep(ctx, &fibonacci.IterativeEngine{}, 45)

	if !errors.Is(result.Err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", result.Err)
	}
	if result.Checked != 0 {
		t.Errorf("expected 0 checked indices, got %d", result.Checked)
	}
}

// TestRunSweeps verifies that concurrent sweeps preserve input order and
// that identical engines produce identical value vectors.
func TestRunSweeps(t *testing.T) {
	t.Parallel()

	correct := correctFn()
	engines := []fibonacci.Engine{
		&fibonacci.IterativeEngine{},
		&scriptedEngine{name: "shadow", fn: correct},
	}

	results := RunSweeps(context.Background(), engines, 20)

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Engine != "iterative" || results[1].Engine != "shadow" {
		t.Errorf("results out of order: %q, %q", results[0].Engine, results[1].Engine)
	}
	for i, r := range results {
		if r.Err != nil {
			t.Fatalf("sweep %d failed: %v", i, r.Err)
		}
	}
	if results[0].Values[20].Cmp(results[1].Values[20]) != 0 {
		t.Errorf("engines disagree on F(20): %s vs %s", results[0].Values[20], results[1].Values[20])
	}
}

// TestAnalyzeSweeps verifies the verdict logic: consistent results succeed,
// value disagreements are flagged as mismatches, and total failure is
// reported as a generic error.
func TestAnalyzeSweeps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		results        []SweepResult
		expectedStatus int
	}{
		{
			name: "All success",
			results: []SweepResult{
				{Engine: "A", Checked: 5, Duration: time.Millisecond, Values: bigSequence(0, 1, 1, 2, 3)},
				{Engine: "B", Checked: 5, Duration: time.Millisecond, Values: bigSequence(0, 1, 1, 2, 3)},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
		{
			name: "Mismatch",
			results: []SweepResult{
				{Engine: "A", Checked: 5, Duration: time.Millisecond, Values: bigSequence(0, 1, 1, 2, 3)},
				{Engine: "B", Checked: 5, Duration: time.Millisecond, Values: bigSequence(0, 1, 1, 2, 5)},
			},
			expectedStatus: apperrors.ExitErrorMismatch,
		},
		{
			name: "All failure",
			results: []SweepResult{
				{Engine: "A", Duration: time.Millisecond, Err: errors.New("fail")},
				{Engine: "B", Duration: time.Millisecond, Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitErrorGeneric,
		},
		{
			name: "Mixed success/failure",
			results: []SweepResult{
				{Engine: "A", Checked: 5, Duration: time.Millisecond, Values: bigSequence(0, 1, 1, 2, 3)},
				{Engine: "B", Duration: time.Millisecond, Err: errors.New("fail")},
			},
			expectedStatus: apperrors.ExitSuccess,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			status := AnalyzeSweeps(tt.results, 4, &DiscardWriter{})
			if status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, status)
			}
		})
	}
}

// TestAnalyzeSweepsReport verifies the content of the rendered summary.
func TestAnalyzeSweepsReport(t *testing.T) {
	t.Parallel()

	results := []SweepResult{
		{Engine: "iterative", Checked: 46, Duration: 2 * time.Millisecond, Values: bigSequence(0, 1)},
	}
	var buf bytes.Buffer

	status := AnalyzeSweeps(results, 45, &buf)

	if status != apperrors.ExitSuccess {
		t.Fatalf("expected success status, got %d", status)
	}
	out := testutil.StripAnsiCodes(buf.String())
	for _, want := range []string{"Verification Summary", "iterative", "46", "✅ Success", "Global Status: Success", "F(45)"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}

// misconfiguredFactory lists an engine name that cannot be resolved,
// exercising the resolution error path of VerifySequence.
type misconfiguredFactory struct {
	*fibonacci.TestFactory
}

func (f *misconfiguredFactory) List() []string {
	return []string{"phantom"}
}

// TestVerifySequence verifies the end-to-end entry point with a controlled
// factory.
func TestVerifySequence(t *testing.T) {
	t.Parallel()

	t.Run("Registered engines pass", func(t *testing.T) {
		t.Parallel()
		factory := fibonacci.NewTestFactory(map[string]fibonacci.Engine{
			"iterative": &fibonacci.IterativeEngine{},
		})
		var buf bytes.Buffer

		status := VerifySequence(context.Background(), factory, 20, &buf)

		if status != apperrors.ExitSuccess {
			t.Errorf("expected success status, got %d: %s", status, buf.String())
		}
		if !strings.Contains(testutil.StripAnsiCodes(buf.String()), "Verifying 1 engine(s) up to F(20)") {
			t.Errorf("missing sweep banner:\n%s", buf.String())
		}
	})

	t.Run("Unresolvable engine name", func(t *testing.T) {
		t.Parallel()
		factory := &misconfiguredFactory{TestFactory: fibonacci.NewTestFactory(nil)}
		var buf bytes.Buffer

		status := VerifySequence(context.Background(), factory, 20, &buf)

		if status != apperrors.ExitErrorGeneric {
			t.Errorf("expected generic error status, got %d", status)
		}
		if !strings.Contains(testutil.StripAnsiCodes(buf.String()), "phantom") {
			t.Errorf("error output should name the engine:\n%s", buf.String())
		}
	})
}

// DiscardWriter is a helper that implements io.Writer and discards all data.
type DiscardWriter struct{}

func (d *DiscardWriter) Write(p []byte) (n int, err error) {
	return len(p), nil
}
