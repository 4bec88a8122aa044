package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/fibpad/internal/config"
)

// PrintExecutionConfig displays the current execution configuration to the
// user. It shows the submitted raw index, the selected engine, the validation
// bound, and the session limits.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Submitting %s%q%s to the %s%s%s engine (valid indices: 0..%s%d%s).\n",
		ColorMagenta(), cfg.RawIndex, ColorReset(),
		ColorGreen(), cfg.Engine, ColorReset(),
		ColorCyan(), cfg.MaxIndex, ColorReset())
	fmt.Fprintf(out, "Session keeps the last %s%d%s computations; timeout %s%s%s.\n",
		ColorCyan(), cfg.HistoryCapacity, ColorReset(),
		ColorYellow(), cfg.Timeout, ColorReset())
	if cfg.Delay > 0 {
		fmt.Fprintf(out, "Artificial delay: %s%s%s (presentation only, values are unaffected).\n",
			ColorYellow(), cfg.Delay, ColorReset())
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ColorCyan(), runtime.NumCPU(), ColorReset(),
		ColorCyan(), runtime.Version(), ColorReset())
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
