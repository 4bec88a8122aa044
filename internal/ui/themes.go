// Package ui owns the terminal palette shared by every presentation
// surface of the pad: the one-shot renderer, the interactive REPL and
// the engine verification report. Centralizing the escape codes here
// keeps color policy out of the session and server packages entirely.
//
// The active palette is process-global. It is chosen once at startup
// from the -no-color flag, the NO_COLOR convention (https://no-color.org)
// and the FIBPAD_THEME variable, in that order of precedence.
package ui

import (
	"os"
	"sync"
)

// Theme is a named set of raw ANSI escape sequences. An empty field
// renders that role as plain text, which is how the monochrome palette
// works without any branching at call sites.
type Theme struct {
	Name string

	// Role colors, from most to least prominent.
	Primary   string // banner frames and headline accents
	Secondary string // supporting detail such as session parameters
	Success   string // accepted submissions and passing verifications
	Warning   string // rejected input: refused, not broken
	Error     string // hard failures and verification mismatches
	Info      string // replay markers and history positions

	// Text attributes.
	Bold      string
	Underline string
	Reset     string
}

// Built-in palettes. Dark leans on the bright end of the 256-color
// range, light on the darker end of the same hues.
var (
	DarkTheme = Theme{
		Name:      "dark",
		Primary:   "\033[38;5;39m",
		Secondary: "\033[38;5;245m",
		Success:   "\033[38;5;82m",
		Warning:   "\033[38;5;220m",
		Error:     "\033[38;5;196m",
		Info:      "\033[38;5;141m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	LightTheme = Theme{
		Name:      "light",
		Primary:   "\033[38;5;27m",
		Secondary: "\033[38;5;240m",
		Success:   "\033[38;5;28m",
		Warning:   "\033[38;5;130m",
		Error:     "\033[38;5;124m",
		Info:      "\033[38;5;54m",
		Bold:      "\033[1m",
		Underline: "\033[4m",
		Reset:     "\033[0m",
	}

	// NoColorTheme is the zero palette: every role renders as plain text.
	NoColorTheme = Theme{Name: "none"}
)

// themes maps the names accepted by SetTheme (and FIBPAD_THEME) to
// their palettes.
var themes = map[string]Theme{
	"dark":  DarkTheme,
	"light": LightTheme,
	"none":  NoColorTheme,
}

var (
	mu     sync.RWMutex
	active = DarkTheme
)

// GetCurrentTheme returns the palette currently in effect.
func GetCurrentTheme() Theme {
	mu.RLock()
	defer mu.RUnlock()
	return active
}

// SetCurrentTheme installs t verbatim, bypassing name lookup. Tests use
// it to restore whatever palette they found.
func SetCurrentTheme(t Theme) {
	mu.Lock()
	defer mu.Unlock()
	active = t
}

// SetTheme activates the named palette. Unknown names fall back to
// dark rather than failing: a misspelled FIBPAD_THEME must never take
// the pad down.
func SetTheme(name string) {
	t, ok := themes[name]
	if !ok {
		t = DarkTheme
	}
	SetCurrentTheme(t)
}

// InitTheme selects the startup palette. The -no-color flag wins over
// everything; a present NO_COLOR variable comes next (any value counts,
// per the no-color.org convention); otherwise FIBPAD_THEME names one of
// the built-in palettes, defaulting to dark.
func InitTheme(noColor bool) {
	if noColor {
		SetCurrentTheme(NoColorTheme)
		return
	}
	if _, present := os.LookupEnv("NO_COLOR"); present {
		SetCurrentTheme(NoColorTheme)
		return
	}
	SetTheme(os.Getenv("FIBPAD_THEME"))
}
