package internal

import (
	"io"
	"log/slog"
	"strings"
)

// NewLogger creates the text logger used by the CLI. Diagnostics go to w
// (stderr) so stdout stays clean for table and JSON output.
func NewLogger(w io.Writer, level string) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLogLevel(level)}))
}

// parseLogLevel converts a level name to slog.Level, defaulting to info
func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
