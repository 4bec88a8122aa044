package ui

// Escape-code accessors for the roles the verification report renders
// directly. The cli package reads Theme fields through GetCurrentTheme
// instead; these helpers suit callers that only need a code pair around
// a short span of text.

// ColorReset returns the sequence that clears all styling.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorGreen returns the success color of the active palette.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorRed returns the error color of the active palette.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorBold returns the bold attribute sequence.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline attribute sequence.
func ColorUnderline() string { return GetCurrentTheme().Underline }
