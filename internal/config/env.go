// Package config provides the configuration management for the fibpad
// application. This file contains environment variable utilities for
// configuration override.
package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Environment Variable Utilities
// ─────────────────────────────────────────────────────────────────────────────

// getEnvString returns the value of the environment variable with the given
// key (prefixed with EnvPrefix), or the default value if not set.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// getEnvUint64 returns the value of the environment variable with the given
// key (prefixed with EnvPrefix) parsed as uint64, or the default value if
// not set or invalid.
func getEnvUint64(key string, defaultVal uint64) uint64 {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.ParseUint(val, 10, 64); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvInt returns the value of the environment variable with the given
// key (prefixed with EnvPrefix) parsed as int, or the default value if not
// set or invalid.
func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := strconv.Atoi(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// getEnvBool returns the value of the environment variable with the given
// key (prefixed with EnvPrefix) parsed as bool, or the default value if not
// set. Accepts "true", "1", "yes" as true; "false", "0", "no" as false
// (case-insensitive).
func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		switch strings.ToLower(val) {
		case "true", "1", "yes":
			return true
		case "false", "0", "no":
			return false
		}
	}
	return defaultVal
}

// getEnvDuration returns the value of the environment variable with the
// given key (prefixed with EnvPrefix) parsed as time.Duration, or the
// default value if not set or invalid. Accepts formats like "5m", "30s",
// "1h30m".
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		if parsed, err := time.ParseDuration(val); err == nil {
			return parsed
		}
	}
	return defaultVal
}

// isFlagSet checks if a flag was explicitly set on the command line.
// This is used to determine whether to apply environment variable overrides.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// applyEnvOverrides applies environment variable values to the
// configuration for any flags that were not explicitly set on the command
// line. This implements the priority: CLI flags > Environment variables >
// Defaults.
//
// Supported environment variables:
//   - FIBPAD_N: Raw index text for a one-shot run (string)
//   - FIBPAD_MAX_N: Inclusive upper bound for valid indices (uint64)
//   - FIBPAD_HISTORY_CAPACITY: Retained history entries (int)
//   - FIBPAD_DELAY: Artificial result delay (duration: "500ms", "2s")
//   - FIBPAD_ENGINE: Computation backend (string)
//   - FIBPAD_TIMEOUT: Run timeout (duration: "5m", "30s")
//   - FIBPAD_SERVE: Enable server mode (bool: true/false, 1/0, yes/no)
//   - FIBPAD_PORT: Port for server mode (string)
//   - FIBPAD_REPL: Enable interactive REPL mode (bool)
//   - FIBPAD_VERIFY: Enable the self-check sweep (bool)
//   - FIBPAD_JSON: Enable JSON output (bool)
//   - FIBPAD_QUIET: Enable quiet mode (bool)
//   - FIBPAD_NO_COLOR: Disable colored output (bool)
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	applyNumericOverrides(config, fs)
	applyDurationOverrides(config, fs)
	applyStringOverrides(config, fs)
	applyBooleanOverrides(config, fs)
}

func applyNumericOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "max-n") {
		config.MaxIndex = getEnvUint64("MAX_N", config.MaxIndex)
	}
	if !isFlagSet(fs, "history-capacity") {
		config.HistoryCapacity = getEnvInt("HISTORY_CAPACITY", config.HistoryCapacity)
	}
}

func applyDurationOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "timeout") {
		config.Timeout = getEnvDuration("TIMEOUT", config.Timeout)
	}
	if !isFlagSet(fs, "delay") {
		config.Delay = getEnvDuration("DELAY", config.Delay)
	}
}

func applyStringOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "n") && config.RawIndex == "" {
		config.RawIndex = getEnvString("N", config.RawIndex)
	}
	if !isFlagSet(fs, "engine") {
		config.Engine = getEnvString("ENGINE", config.Engine)
	}
	if !isFlagSet(fs, "port") {
		config.Port = getEnvString("PORT", config.Port)
	}
}

func applyBooleanOverrides(config *AppConfig, fs *flag.FlagSet) {
	if !isFlagSet(fs, "serve") {
		config.ServerMode = getEnvBool("SERVE", config.ServerMode)
	}
	if !isFlagSet(fs, "repl") {
		config.Interactive = getEnvBool("REPL", config.Interactive)
	}
	if !isFlagSet(fs, "verify") {
		config.Verify = getEnvBool("VERIFY", config.Verify)
	}
	if !isFlagSet(fs, "json") {
		config.JSONOutput = getEnvBool("JSON", config.JSONOutput)
	}
	if !isFlagSet(fs, "quiet") && !isFlagSet(fs, "q") {
		config.Quiet = getEnvBool("QUIET", config.Quiet)
	}
	if !isFlagSet(fs, "no-color") {
		config.NoColor = getEnvBool("NO_COLOR", config.NoColor)
	}
}
