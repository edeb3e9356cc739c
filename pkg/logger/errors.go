package logger

import "errors"

var (
	// ErrInvalidLevel is returned by ParseLevel for unknown level names.
	ErrInvalidLevel = errors.New("logger: invalid level")
	// ErrFlushTimeout is returned when buffered Sentry events were not delivered in time.
	ErrFlushTimeout = errors.New("logger: sentry flush timed out")
)
