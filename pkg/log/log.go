// Package log configures the process-wide slog logger for the portal
// automation binaries.
package log

import (
	"log/slog"
	"os"
)

// Setup installs a text handler on stderr at the requested level.
// Unrecognized levels fall back to info.
func Setup(logLevel string) {
	var level slog.Level

	switch logLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}

// WithModule derives a logger tagged with the subsystem name, e.g. "engine"
// or "scheduler".
func WithModule(module string) *slog.Logger {
	return slog.With("module", module)
}
