package cmd

import (
	"io"
	"log/slog"
)

// NewLogger returns a structured slog.Logger writing JSON to w.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}
