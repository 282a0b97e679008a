package logging

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a slog.Logger using the provided level string. Logs go to
// stderr as JSON so stdout stays reserved for the MCP stdio transport.
// "verbose" is accepted as an alias for debug.
func New(level string) *slog.Logger {
	l := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug", "verbose":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	return slog.New(handler)
}
