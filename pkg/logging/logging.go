// Package logging configures log/slog for the versionbump command.
//
// Logs go to stderr in text form so that standard output only ever carries
// what a command prints on purpose. The level comes from the --log-level
// flag, falling back to the LOG_LEVEL environment variable and then to warn.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel names the environment variable consulted when no level is
// given explicitly.
const EnvLogLevel = "LOG_LEVEL"

// DefaultLevel keeps normal runs quiet.
const DefaultLevel = slog.LevelWarn

// ParseLogLevel converts a level name to a slog.Level. Unknown or empty
// names map to DefaultLevel.
func ParseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return DefaultLevel
	}
}

// NewStructuredLogger returns a text logger writing to w, tagged with the
// module name and version. Debug loggers also record the source location.
func NewStructuredLogger(w io.Writer, module, version, level string) *slog.Logger {
	lvl := ParseLogLevel(level)
	h := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level:     lvl,
		AddSource: lvl <= slog.LevelDebug,
	})
	return slog.New(h).With(
		slog.String("module", module),
		slog.String("version", version),
	)
}

// SetDefaultStructuredLoggerWithLevel installs a stderr logger as the slog
// default. An empty level falls back to LOG_LEVEL.
func SetDefaultStructuredLoggerWithLevel(module, version, level string) {
	if level == "" {
		level = os.Getenv(EnvLogLevel)
	}
	slog.SetDefault(NewStructuredLogger(os.Stderr, module, version, level))
}
