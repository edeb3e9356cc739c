package logger

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// Config selects where and how records are written.
type Config struct {
	// Writer defaults to os.Stdout.
	Writer io.Writer
	// Format is FormatJSON (default) or FormatText.
	Format string
	Level  slog.Level
}

// New creates a JSON logger on stdout at info level with optional context extractors.
func New(extractors ...ContextExtractor) *slog.Logger {
	return NewWithConfig(Config{Level: slog.LevelInfo}, extractors...)
}

// NewWithConfig creates a logger for the given configuration.
func NewWithConfig(cfg Config, extractors ...ContextExtractor) *slog.Logger {
	return slog.New(NewLogHandlerDecorator(newHandler(cfg), extractors...))
}

// ParseLevel converts a level name (debug, info, warn, error) to a slog.Level.
// An empty string yields info.
func ParseLevel(s string) (slog.Level, error) {
	if s == "" {
		return slog.LevelInfo, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidLevel, s)
	}
	return lvl, nil
}

func newHandler(cfg Config) slog.Handler {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	opts := &slog.HandlerOptions{Level: cfg.Level}
	if cfg.Format == FormatText {
		return slog.NewTextHandler(w, opts)
	}
	return slog.NewJSONHandler(w, opts)
}
