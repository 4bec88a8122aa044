// Package testutil holds helpers shared by tests across the pad.
package testutil

import "regexp"

// csiPattern matches ECMA-48 CSI sequences: ESC [ followed by
// parameter bytes, optional intermediate bytes and a final byte. This
// covers everything the themed renderers emit, including 256-color
// selections and cursor movement from the delay spinner.
var csiPattern = regexp.MustCompile(`\x1b\[[0-9;:?]*[ -/]*[@-~]`)

// StripAnsiCodes returns s with all terminal escape sequences removed,
// so assertions can compare rendered output as plain text regardless of
// the active palette.
func StripAnsiCodes(s string) string {
	return csiPattern.ReplaceAllString(s, "")
}
