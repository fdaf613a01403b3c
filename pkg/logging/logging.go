// Package logging configures colored structured logging with tint.
//
// Usage:
//
//	logging.Setup("info")                    // level name from config
//	logging.SetupWithLevel(slog.LevelDebug)  // explicit level
//
// Unknown level names fall back to info.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lmittmann/tint"
)

// Setup configures colored logging at the named level.
func Setup(level string) *slog.Logger {
	return SetupWithLevel(ParseLevel(level))
}

// SetupWithLevel configures colored logging at the given level on stderr and
// installs it as the slog default.
func SetupWithLevel(level slog.Level) *slog.Logger {
	logger := New(os.Stderr, level)
	slog.SetDefault(logger)
	return logger
}

// New builds a tint logger writing to w without touching the slog default.
func New(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: time.Kitchen,
		AddSource:  level <= slog.LevelDebug,
	}))
}

// ParseLevel maps debug, info, warn and error (any case) to a slog.Level.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
