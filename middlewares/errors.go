package middlewares

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// PanicError is returned by Recover in place of a handler panic.
type PanicError struct {
	Value     any
	Stack     []byte // nil when stack capture is disabled
	Extension string // Context.Extension() where Recover ran
}

func (e *PanicError) Error() string {
	if e.Extension != "" {
		return fmt.Sprintf("panic in %s: %v", e.Extension, e.Value)
	}
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap returns the panic value when it is an error.
func (e *PanicError) Unwrap() error {
	err, _ := e.Value.(error)
	return err
}

// TimeoutError is returned by Timeout when the handler misses its deadline.
// It matches context.DeadlineExceeded, which the shell answers with 503.
type TimeoutError struct {
	Duration  time.Duration
	Extension string
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("request timeout after %s", e.Duration)
}

func (e *TimeoutError) Unwrap() error { return context.DeadlineExceeded }

// IsPanicError reports whether err wraps a *PanicError.
func IsPanicError(err error) bool {
	_, ok := AsPanicError(err)
	return ok
}

// IsTimeoutError reports whether err wraps a *TimeoutError.
func IsTimeoutError(err error) bool {
	_, ok := AsTimeoutError(err)
	return ok
}

func AsPanicError(err error) (*PanicError, bool)     { return as[*PanicError](err) }
func AsTimeoutError(err error) (*TimeoutError, bool) { return as[*TimeoutError](err) }

func as[T error](err error) (T, bool) {
	var target T
	ok := errors.As(err, &target)
	return target, ok
}
