package internal

import (
	"errors"
	"fmt"
	"net/http"
)

// Shell lifecycle errors.
var (
	// ErrShellConsumed is returned when a shell is registered to, built,
	// or run after it has already been built or run.
	ErrShellConsumed = errors.New("corex: shell already built")

	// ErrNilRouter is returned when an extension's Extend returns nil.
	ErrNilRouter = errors.New("corex: extension returned nil router")

	// ErrBuild matches every error produced while folding extensions
	// or materializing the routing table.
	ErrBuild = errors.New("corex: build failed")

	// ErrBind is returned when the listener cannot be bound.
	ErrBind = errors.New("corex: bind failed")

	errNilHandler = errors.New("nil handler")
)

// BuildError describes a failure while applying an extension or replaying
// one of its route declarations onto the dispatch engine.
type BuildError struct {
	Err       error
	Extension string
	Method    string
	Pattern   string
}

func (e *BuildError) Error() string {
	if e.Pattern != "" {
		return fmt.Sprintf("corex: build: extension %q: %s %s: %v", e.Extension, e.Method, e.Pattern, e.Err)
	}
	return fmt.Sprintf("corex: build: extension %q: %v", e.Extension, e.Err)
}

func (e *BuildError) Unwrap() error {
	return e.Err
}

// Is reports ErrBuild as a match so callers can branch on the error class.
func (e *BuildError) Is(target error) bool {
	return target == ErrBuild
}

// AsBuildError extracts the BuildError from an error if present.
func AsBuildError(err error) (*BuildError, bool) {
	var be *BuildError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// HTTPError represents an HTTP error with all data needed for rendering.
// It implements the error interface and provides structured data for
// error handlers.
type HTTPError struct {
	// Err is the underlying error (for logging, not exposed to users).
	Err error

	// Message is the user-facing error message.
	Message string

	// ErrorCode is an application-specific error code.
	ErrorCode string

	// RequestID is the request tracking ID.
	RequestID string

	// Code is the HTTP status code (e.g., 404, 500).
	Code int
}

func (e *HTTPError) Error() string {
	return e.Message
}

func (e *HTTPError) Unwrap() error {
	return e.Err
}

func (e *HTTPError) StatusCode() int {
	return e.Code
}

func (e *HTTPError) StatusText() string {
	return http.StatusText(e.Code)
}

// HTTPErrorOption configures an HTTPError.
type HTTPErrorOption func(*HTTPError)

// NewHTTPError creates a new HTTPError with the given status code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

func WithErrorCode(code string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.ErrorCode = code
	}
}

func WithRequestID(id string) HTTPErrorOption {
	return func(e *HTTPError) {
		e.RequestID = id
	}
}

func WithError(err error) HTTPErrorOption {
	return func(e *HTTPError) {
		e.Err = err
	}
}

// Convenience constructors for common HTTP errors.

func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPError(http.StatusBadRequest, message, opts)
}

func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPError(http.StatusUnauthorized, message, opts)
}

func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPError(http.StatusForbidden, message, opts)
}

func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPError(http.StatusNotFound, message, opts)
}

func ErrRequestEntityTooLarge(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPError(http.StatusRequestEntityTooLarge, message, opts)
}

func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPError(http.StatusInternalServerError, message, opts)
}

func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return newHTTPError(http.StatusServiceUnavailable, message, opts)
}

func newHTTPError(code int, message string, opts []HTTPErrorOption) *HTTPError {
	e := NewHTTPError(code, message)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AsHTTPError extracts the HTTPError from an error if present.
// Returns nil if the error chain holds no HTTPError.
func AsHTTPError(err error) *HTTPError {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return nil
}
