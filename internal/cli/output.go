// Package cli provides output utilities for rendering session results,
// history tables, and the machine-readable JSON envelope.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/agbru/fibpad/internal/history"
	"github.com/agbru/fibpad/internal/session"
)

// DisplayResult formats and prints a computation outcome: the value itself
// with thousand separators, followed by the timing line.
//
// Parameters:
//   - out: The io.Writer for the output.
//   - res: The session result to render.
//   - engine: The name of the engine that produced the value.
func DisplayResult(out io.Writer, res session.Result, engine string) {
	durationStr := FormatExecutionDuration(res.Duration)
	if res.Duration == 0 {
		durationStr = "< 1µs"
	}

	fmt.Fprintf(out, "F(%s%d%s) = %s%s%s\n",
		ColorMagenta(), res.Index, ColorReset(),
		ColorGreen(), formatNumberString(res.Value.String()), ColorReset())
	fmt.Fprintf(out, "Computed in %s%s%s by the %s%s%s engine.\n",
		ColorGreen(), durationStr, ColorReset(),
		ColorCyan(), engine, ColorReset())
}

// DisplayQuietResult outputs a result in quiet mode: the bare decimal value
// on a single line, suitable for scripting.
//
// Parameters:
//   - out: The output writer.
//   - res: The session result.
func DisplayQuietResult(out io.Writer, res session.Result) {
	fmt.Fprintln(out, res.Value.String())
}

// ResultJSON is the machine-readable envelope for a single computation.
type ResultJSON struct {
	Index    uint64 `json:"index"`
	Value    string `json:"value"`
	Digits   int    `json:"digits"`
	Duration string `json:"duration"`
	Engine   string `json:"engine"`
}

// WriteResultJSON encodes a computation outcome as an indented JSON envelope.
// This is useful for programmatic consumption of the results.
//
// Parameters:
//   - out: The output writer.
//   - res: The session result.
//   - engine: The name of the engine that produced the value.
//
// Returns:
//   - error: An error if encoding fails.
func WriteResultJSON(out io.Writer, res session.Result, engine string) error {
	value := res.Value.String()
	envelope := ResultJSON{
		Index:    res.Index,
		Value:    value,
		Digits:   len(value),
		Duration: res.Duration.String(),
		Engine:   engine,
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(envelope)
}

// DisplayHistory renders the session history as a table, most recent first,
// with the age of each computation relative to now.
//
// Parameters:
//   - out: The output writer.
//   - entries: The history entries, newest first.
//   - capacity: The retention limit of the history, shown in the header.
//   - now: The reference time used to compute entry ages.
func DisplayHistory(out io.Writer, entries []history.Entry, capacity int, now time.Time) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "History is empty. Submit an index to record a computation.")
		return
	}

	fmt.Fprintf(out, "%s--- Session History (%d/%d) ---%s\n",
		ColorBold(), len(entries), capacity, ColorReset())
	for i, e := range entries {
		valueStr := fmt.Sprintf("F(%d) = %s", e.Index(), formatNumberString(e.ValueString()))
		fmt.Fprintf(out, "  %s%2d.%s %-28s %s%s%s\n",
			ColorYellow(), i+1, ColorReset(),
			valueStr,
			ColorCyan(), FormatAge(now.Sub(e.At())), ColorReset())
	}
}

// FormatAge renders how long ago something happened, truncated to whole
// seconds.
//
// Parameters:
//   - d: The elapsed duration.
//
// Returns:
//   - string: "just now" for sub-second ages, "<duration> ago" otherwise.
func FormatAge(d time.Duration) string {
	if d < time.Second {
		return "just now"
	}
	return d.Truncate(time.Second).String() + " ago"
}
