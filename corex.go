package corex

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/dmitrymomot/corex/internal"
	"github.com/dmitrymomot/corex/pkg/logger"
)

// Type aliases - public API
type (
	// Shell owns the router and the ordered set of registered extensions.
	// It is single-use: Build or Run consumes it.
	Shell = internal.Shell

	// Extension is a feature module that contributes routes and middleware.
	Extension = internal.Extension

	// ExtensionFunc adapts a name and a closure to the Extension interface.
	ExtensionFunc = internal.ExtensionFunc

	// Router is the interface extensions use to declare routes.
	Router = internal.Router

	// BuiltRouter is the finalized, immutable router produced by Build.
	BuiltRouter = internal.BuiltRouter

	// RouteInfo describes one effective route of a BuiltRouter.
	RouteInfo = internal.RouteInfo

	// Context provides request/response access and helper methods.
	Context = internal.Context

	// HandlerFunc is the signature for route handlers.
	HandlerFunc = internal.HandlerFunc

	// Middleware wraps a HandlerFunc to add cross-cutting concerns.
	Middleware = internal.Middleware

	// ErrorHandler handles errors returned from handlers.
	ErrorHandler = internal.ErrorHandler

	// Option configures the shell.
	Option = internal.Option

	// RunOption configures the server runtime.
	RunOption = internal.RunOption

	// ResponseWriter wraps http.ResponseWriter with status and size tracking.
	ResponseWriter = internal.ResponseWriter

	// BuildError reports a failure while applying extensions or
	// materializing the router.
	BuildError = internal.BuildError

	// HTTPError represents an HTTP error with status code and message.
	HTTPError = internal.HTTPError

	// HTTPErrorOption configures an HTTPError.
	HTTPErrorOption = internal.HTTPErrorOption

	// Extractor tries multiple sources in order and returns the first match.
	Extractor = internal.Extractor

	// ExtractorSource extracts a value from the request context.
	ExtractorSource = internal.ExtractorSource

	// ContextExtractor extracts a slog attribute from context.
	// Used with logger.New to add request-scoped values to logs.
	ContextExtractor = logger.ContextExtractor
)

// Shell errors for checking return values.
var (
	ErrShellConsumed = internal.ErrShellConsumed
	ErrNilRouter     = internal.ErrNilRouter
	ErrBuild         = internal.ErrBuild
	ErrBind          = internal.ErrBind
)

// Constructors

// New creates a shell that will listen on host:port once Run is called.
// Port 0 binds an ephemeral port.
//
// Example:
//
//	shell := corex.New("127.0.0.1", 8080,
//	    corex.WithLogger(log),
//	    corex.WithExtensions(extensions.Echo()),
//	)
//
//	if err := shell.Run(); err != nil {
//	    log.Error("server stopped", "error", err)
//	}
func New(host string, port uint16, opts ...Option) *Shell {
	return internal.New(host, port, opts...)
}

// NewExtension creates an extension from a name and a route declaration function.
//
// Example:
//
//	users := corex.NewExtension("users", func(r corex.Router) {
//	    r.GET("/users/{id}", getUser)
//	})
func NewExtension(name string, fn func(r Router)) *ExtensionFunc {
	return internal.NewExtension(name, fn)
}

// Shell options

// WithLogger sets the shell logger. Nil is ignored.
// Defaults to a JSON logger writing to stdout.
func WithLogger(l *slog.Logger) Option {
	return internal.WithLogger(l)
}

// WithExtensions registers extensions at construction time.
// Equivalent to calling Shell.Register with the same values, in order.
func WithExtensions(ext ...Extension) Option {
	return internal.WithExtensions(ext...)
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler returns a non-nil error.
func WithErrorHandler(h ErrorHandler) Option {
	return internal.WithErrorHandler(h)
}

// WithNotFoundHandler sets a custom 404 handler.
func WithNotFoundHandler(h HandlerFunc) Option {
	return internal.WithNotFoundHandler(h)
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return internal.WithMethodNotAllowedHandler(h)
}

// Run options

// ShutdownTimeout sets the timeout for graceful shutdown.
// This applies to both the HTTP server and shutdown hooks.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return internal.ShutdownTimeout(d)
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered.
// Each hook receives a context with the shutdown timeout.
//
// Example:
//
//	shell.Run(corex.ShutdownHook(db.Shutdown(pool)))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return internal.ShutdownHook(fn)
}

// OnListen registers a function called with the bound address right after
// the listener is created and before requests are served.
func OnListen(fn func(addr net.Addr)) RunOption {
	return internal.OnListen(fn)
}

// WithContext sets a custom base context for signal handling.
// Cancelling it stops the server gracefully.
// Defaults to context.Background() if not set.
func WithContext(ctx context.Context) RunOption {
	return internal.WithContext(ctx)
}

// Context helpers

// ContextValue retrieves a typed value from the context.
// Returns the zero value of T if the key is not found or type assertion fails.
//
// Example:
//
//	user := corex.ContextValue[*User](c, userKey{})
func ContextValue[T any](c Context, key any) T {
	if v, ok := c.Get(key).(T); ok {
		return v
	}
	var zero T
	return zero
}

// Extractors

// NewExtractor creates an Extractor that tries the given sources in order.
func NewExtractor(sources ...ExtractorSource) Extractor {
	return internal.NewExtractor(sources...)
}

// FromHeader returns a source that reads from a request header.
func FromHeader(name string) ExtractorSource {
	return internal.FromHeader(name)
}

// FromQuery returns a source that reads from a query parameter.
func FromQuery(name string) ExtractorSource {
	return internal.FromQuery(name)
}

// FromParam returns a source that reads from a URL parameter.
func FromParam(name string) ExtractorSource {
	return internal.FromParam(name)
}

// FromCookie returns a source that reads from a plain cookie.
func FromCookie(name string) ExtractorSource {
	return internal.FromCookie(name)
}

// FromContext returns a source that reads a string stored with Context.Set.
func FromContext(key any) ExtractorSource {
	return internal.FromContext(key)
}

// FromBearerToken returns a source that reads a Bearer token from the Authorization header.
func FromBearerToken() ExtractorSource {
	return internal.FromBearerToken()
}

// Errors

// AsBuildError extracts a *BuildError from err.
func AsBuildError(err error) (*BuildError, bool) {
	return internal.AsBuildError(err)
}

// AsHTTPError extracts an *HTTPError from err. Returns nil if not found.
func AsHTTPError(err error) *HTTPError {
	return internal.AsHTTPError(err)
}

// NewHTTPError creates an HTTPError with the given status code and message.
func NewHTTPError(code int, message string) *HTTPError {
	return internal.NewHTTPError(code, message)
}

// WithErrorCode sets an application-specific error code.
func WithErrorCode(code string) HTTPErrorOption {
	return internal.WithErrorCode(code)
}

// WithRequestID attaches the request ID to the error.
func WithRequestID(id string) HTTPErrorOption {
	return internal.WithRequestID(id)
}

// WithError sets the underlying cause.
func WithError(err error) HTTPErrorOption {
	return internal.WithError(err)
}

// ErrBadRequest creates a 400 Bad Request error.
func ErrBadRequest(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrBadRequest(message, opts...)
}

// ErrUnauthorized creates a 401 Unauthorized error.
func ErrUnauthorized(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrUnauthorized(message, opts...)
}

// ErrForbidden creates a 403 Forbidden error.
func ErrForbidden(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrForbidden(message, opts...)
}

// ErrNotFound creates a 404 Not Found error.
func ErrNotFound(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrNotFound(message, opts...)
}

// ErrRequestEntityTooLarge creates a 413 Request Entity Too Large error.
func ErrRequestEntityTooLarge(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrRequestEntityTooLarge(message, opts...)
}

// ErrInternal creates a 500 Internal Server Error.
func ErrInternal(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrInternal(message, opts...)
}

// ErrServiceUnavailable creates a 503 Service Unavailable error.
func ErrServiceUnavailable(message string, opts ...HTTPErrorOption) *HTTPError {
	return internal.ErrServiceUnavailable(message, opts...)
}
