package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns the process logger: JSON lines in production, text elsewhere.
func New(environment string) *slog.Logger {
	return newWithWriter(os.Stdout, environment)
}

func newWithWriter(w io.Writer, environment string) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if environment == "development" {
		opts.Level = slog.LevelDebug
		return slog.New(slog.NewTextHandler(w, opts)).With("service", "redart")
	}
	return slog.New(slog.NewJSONHandler(w, opts)).With("service", "redart")
}
