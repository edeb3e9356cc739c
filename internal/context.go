package internal

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// Context is what handlers and middleware receive for one request.
// It is also a context.Context backed by the request context, so it can be
// passed straight to database and client calls.
type Context interface {
	context.Context

	Request() *http.Request
	Response() http.ResponseWriter

	// Context returns the request context, including values added with Set.
	Context() context.Context

	// Param returns a path parameter declared in the route pattern, or "".
	Param(name string) string
	// Query returns a query string value, or "".
	Query(name string) string
	// QueryDefault returns a query string value, or def when it is empty.
	QueryDefault(name, def string) string
	// Header returns a request header value.
	Header(name string) string
	// SetHeader sets a response header. It has no effect once the response is written.
	SetHeader(name, value string)

	// JSON encodes v and writes it with the given status.
	// Encoding happens before anything is written, so an encoding failure
	// leaves the response untouched for the error handler.
	JSON(code int, v any) error
	String(code int, s string) error
	NoContent(code int) error
	Redirect(code int, url string) error

	// Error builds an HTTPError without writing anything.
	// Return it from the handler to have the error handler render it.
	Error(code int, message string, opts ...HTTPErrorOption) *HTTPError

	// Extension names the extension that declared the matched route. In
	// global middleware it names the extension that installed the middleware.
	// Empty in not-found and method-not-allowed handlers.
	Extension() string

	// Written reports whether a response header has been sent.
	Written() bool

	Logger() *slog.Logger
	LogDebug(msg string, attrs ...any)
	LogInfo(msg string, attrs ...any)
	LogWarn(msg string, attrs ...any)
	LogError(msg string, attrs ...any)

	// Set stores a request-scoped value. Later middleware, the handler and
	// plain http.Handlers called with Request() all see it.
	Set(key, value any)
	Get(key any) any
}

type requestContext struct {
	req       *http.Request
	rw        *ResponseWriter
	logger    *slog.Logger
	extension string
}

// NewContext returns a Context serving r through w. Middleware that runs
// the rest of the chain against its own writer or request uses it to hand
// the handler a separate Context.
func NewContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger, extension string) Context {
	return newContext(w, r, logger, extension)
}

// newContext wraps w unless it is already a *ResponseWriter, so middleware
// and handlers of one request share write tracking.
func newContext(w http.ResponseWriter, r *http.Request, logger *slog.Logger, extension string) *requestContext {
	rw, ok := w.(*ResponseWriter)
	if !ok {
		rw = NewResponseWriter(w)
	}
	return &requestContext{req: r, rw: rw, logger: logger, extension: extension}
}

func (c *requestContext) Request() *http.Request        { return c.req }
func (c *requestContext) Response() http.ResponseWriter { return c.rw }
func (c *requestContext) Context() context.Context      { return c.req.Context() }

func (c *requestContext) Deadline() (time.Time, bool) { return c.req.Context().Deadline() }
func (c *requestContext) Done() <-chan struct{}       { return c.req.Context().Done() }
func (c *requestContext) Err() error                  { return c.req.Context().Err() }
func (c *requestContext) Value(key any) any           { return c.req.Context().Value(key) }

func (c *requestContext) Param(name string) string  { return chi.URLParam(c.req, name) }
func (c *requestContext) Query(name string) string  { return c.req.URL.Query().Get(name) }
func (c *requestContext) Header(name string) string { return c.req.Header.Get(name) }

func (c *requestContext) QueryDefault(name, def string) string {
	if v := c.Query(name); v != "" {
		return v
	}
	return def
}

func (c *requestContext) SetHeader(name, value string) {
	c.rw.Header().Set(name, value)
}

func (c *requestContext) JSON(code int, v any) error {
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.write(code, "application/json; charset=utf-8", append(body, '\n'))
}

func (c *requestContext) String(code int, s string) error {
	return c.write(code, "text/plain; charset=utf-8", []byte(s))
}

func (c *requestContext) write(code int, contentType string, body []byte) error {
	c.rw.Header().Set("Content-Type", contentType)
	c.rw.WriteHeader(code)
	_, err := c.rw.Write(body)
	return err
}

func (c *requestContext) NoContent(code int) error {
	c.rw.WriteHeader(code)
	return nil
}

func (c *requestContext) Redirect(code int, url string) error {
	http.Redirect(c.rw, c.req, url, code)
	return nil
}

func (c *requestContext) Error(code int, message string, opts ...HTTPErrorOption) *HTTPError {
	err := NewHTTPError(code, message)
	for _, opt := range opts {
		opt(err)
	}
	return err
}

func (c *requestContext) Extension() string { return c.extension }
func (c *requestContext) Written() bool     { return c.rw.Written() }

func (c *requestContext) Logger() *slog.Logger { return c.logger }

func (c *requestContext) LogDebug(msg string, attrs ...any) {
	c.logger.DebugContext(c.req.Context(), msg, attrs...)
}

func (c *requestContext) LogInfo(msg string, attrs ...any) {
	c.logger.InfoContext(c.req.Context(), msg, attrs...)
}

func (c *requestContext) LogWarn(msg string, attrs ...any) {
	c.logger.WarnContext(c.req.Context(), msg, attrs...)
}

func (c *requestContext) LogError(msg string, attrs ...any) {
	c.logger.ErrorContext(c.req.Context(), msg, attrs...)
}

func (c *requestContext) Set(key, value any) {
	c.req = c.req.WithContext(context.WithValue(c.req.Context(), key, value))
}

func (c *requestContext) Get(key any) any { return c.req.Context().Value(key) }
