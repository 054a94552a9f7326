package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup configures the global slog default to write to w.
// The level comes from level, or from LOG_LEVEL when level is empty
// (DEBUG, INFO, WARN, ERROR). Defaults to WARN so that reports on stdout
// are accompanied only by problems found in the ledger.
func Setup(w io.Writer, level string, json bool) {
	if level == "" {
		level = os.Getenv("LOG_LEVEL")
	}
	opts := &slog.HandlerOptions{Level: parseLevel(level)}

	var h slog.Handler = slog.NewTextHandler(w, opts)
	if json {
		h = slog.NewJSONHandler(w, opts)
	}
	slog.SetDefault(slog.New(h))
}

func parseLevel(s string) slog.Level {
	switch strings.ToUpper(s) {
	case "DEBUG":
		return slog.LevelDebug
	case "INFO":
		return slog.LevelInfo
	case "ERROR":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
