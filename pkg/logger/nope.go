package logger

import (
	"io"
	"log/slog"
)

// NewNope creates a logger that discards all output.
// Tests use it to keep shell output quiet.
func NewNope() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// NewWriter creates a JSON logger writing to w at debug level.
// Handy for asserting on log output in tests.
func NewWriter(w io.Writer, extractors ...ContextExtractor) *slog.Logger {
	return NewWithConfig(Config{Writer: w, Level: slog.LevelDebug}, extractors...)
}
