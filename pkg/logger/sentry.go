package logger

import (
	"context"
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	sentryslog "github.com/getsentry/sentry-go/slog"
)

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `yaml:"dsn"`
	Environment string `yaml:"environment"`
	Release     string `yaml:"release"`
	// MinLevel determines which log levels are stored in Sentry.
	// slog.LevelError keeps only errors; anything lower keeps warnings too.
	MinLevel slog.Level `yaml:"-"`
}

// NewWithSentry creates a logger that writes to the out destination and Sentry.
// If DSN is empty, only the local output is used.
// Context extractors apply to both destinations.
func NewWithSentry(out Config, cfg SentryConfig, extractors ...ContextExtractor) *slog.Logger {
	local := newHandler(out)

	if cfg.DSN == "" {
		return slog.New(NewLogHandlerDecorator(local, extractors...))
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.DSN,
		Environment: cfg.Environment,
		Release:     cfg.Release,
		EnableLogs:  true,
	}); err != nil {
		slog.New(local).Error("failed to initialize Sentry", slog.String("error", err.Error()))
		return slog.New(NewLogHandlerDecorator(local, extractors...))
	}

	logLevel := []slog.Level{slog.LevelWarn, slog.LevelError}
	if cfg.MinLevel >= slog.LevelError {
		logLevel = []slog.Level{slog.LevelError}
	}

	remote := sentryslog.Option{
		EventLevel: []slog.Level{slog.LevelError},
		LogLevel:   logLevel,
	}.NewSentryHandler(context.Background())

	return slog.New(NewLogHandlerDecorator(fanout{local, remote}, extractors...))
}

// Flush returns a shutdown hook that waits for buffered Sentry events.
// It is a no-op when Sentry was never initialized.
func Flush(timeout time.Duration) func(context.Context) error {
	return func(ctx context.Context) error {
		if sentry.CurrentHub().Client() == nil {
			return nil
		}
		wait := timeout
		if d, ok := ctx.Deadline(); ok && time.Until(d) < wait {
			wait = time.Until(d)
		}
		if !sentry.Flush(wait) {
			return ErrFlushTimeout
		}
		return nil
	}
}
