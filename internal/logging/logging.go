// Package logging wires up log/slog the way eargollo/ditto's scan and
// scheduler packages use it directly: one shared *slog.Logger, a handler
// chosen between human-readable text (interactive runs) and JSON
// (scheduled/unattended runs, mirroring the console-vs-file distinction
// theweak1-file-maintenance's logger makes, but on slog's handler
// interface instead of a hand-rolled line writer).
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// New builds a *slog.Logger writing to w, at the given level ("debug",
// "info", "warn", "error"), in either "text" or "json" format.
func New(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := parseLevel(level)
	if err != nil {
		return nil, err
	}

	opts := &slog.HandlerOptions{Level: lvl}
	var handler slog.Handler
	switch strings.ToLower(format) {
	case "", "text":
		handler = slog.NewTextHandler(w, opts)
	case "json":
		handler = slog.NewJSONHandler(w, opts)
	default:
		return nil, fmt.Errorf("unknown log format %q (expected text|json)", format)
	}

	return slog.New(handler), nil
}

func parseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (expected debug|info|warn|error)", level)
	}
}
