// Package logger builds the slog loggers used by the shell and its extensions.
//
// Every logger produced here writes structured records and can carry
// context extractors: functions that pull request-scoped values (request ID,
// owning extension) out of a context.Context and attach them to each record
// logged with the *Context methods.
//
// # Basic Usage
//
//	log := logger.New(middlewares.RequestIDExtractor())
//	log.InfoContext(ctx, "request processed", slog.Int("status", 200))
//	// {"level":"INFO","msg":"request processed","status":200,"request_id":"..."}
//
// # Configuration
//
// NewWithConfig selects the output writer, level and format:
//
//	log := logger.NewWithConfig(logger.Config{
//		Level:  slog.LevelDebug,
//		Format: logger.FormatText,
//	})
//
// # Sentry
//
// NewWithSentry fans records out to the configured writer and to Sentry.
// Errors become Sentry issues, warnings are stored as logs. An empty DSN or
// a failed SDK initialization falls back to the plain logger, so the same
// code path runs in development and production. Call Flush before exit to
// deliver buffered events.
package logger
