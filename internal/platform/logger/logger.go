package logger

import (
	"io"
	"log/slog"
	"os"
)

// New returns the service's JSON logger on stdout.
func New(level slog.Level) *slog.Logger {
	return NewTo(os.Stdout, level)
}

// NewTo writes JSON records to w. At debug level each record also carries
// its source location.
func NewTo(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level:     level,
		AddSource: level <= slog.LevelDebug,
	})
	return slog.New(handler).With("service", "applicant-records")
}
