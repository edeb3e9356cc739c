package middlewares

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/corex/internal"
	"github.com/dmitrymomot/corex/pkg/logger"
)

type requestIDKey struct{}

// DefaultRequestIDHeaders are checked in order for an upstream request ID.
var DefaultRequestIDHeaders = []string{"X-Request-ID", "X-Correlation-ID"}

// MaxRequestIDLength caps incoming IDs. Longer values are replaced.
const MaxRequestIDLength = 128

// RequestIDConfig configures the request ID middleware.
type RequestIDConfig struct {
	Generator      func() string
	ResponseHeader string   // empty disables the response header
	Headers        []string // checked in order
}

// RequestIDOption configures RequestIDConfig.
type RequestIDOption func(*RequestIDConfig)

func WithRequestIDHeaders(headers ...string) RequestIDOption {
	return func(cfg *RequestIDConfig) { cfg.Headers = headers }
}

// WithRequestIDGenerator replaces uuid.NewString. Nil is ignored.
func WithRequestIDGenerator(gen func() string) RequestIDOption {
	return func(cfg *RequestIDConfig) {
		if gen != nil {
			cfg.Generator = gen
		}
	}
}

func WithRequestIDResponseHeader(header string) RequestIDOption {
	return func(cfg *RequestIDConfig) { cfg.ResponseHeader = header }
}

// RequestID returns middleware that gives every request an ID.
//
// An upstream ID from the configured headers is kept so a trace survives
// across services, provided it is at most MaxRequestIDLength printable
// ASCII characters. Anything else is replaced by a generated ID, which
// keeps client input from forging log lines. The ID is stored in the
// request context (see GetRequestID and RequestIDExtractor) and echoed in
// the response header.
func RequestID(opts ...RequestIDOption) internal.Middleware {
	cfg := RequestIDConfig{
		Headers:        DefaultRequestIDHeaders,
		Generator:      uuid.NewString,
		ResponseHeader: "X-Request-ID",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	sources := make([]internal.ExtractorSource, len(cfg.Headers))
	for i, h := range cfg.Headers {
		sources[i] = validID(internal.FromHeader(h))
	}
	upstream := internal.NewExtractor(sources...)

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			id, ok := upstream.Extract(c)
			if !ok {
				id = cfg.Generator()
			}

			c.Set(requestIDKey{}, id)
			if cfg.ResponseHeader != "" {
				c.SetHeader(cfg.ResponseHeader, id)
			}
			return next(c)
		}
	}
}

// validID drops values that are too long or contain non-printable bytes.
func validID(src internal.ExtractorSource) internal.ExtractorSource {
	return func(c internal.Context) (string, bool) {
		v, ok := src(c)
		if !ok || len(v) > MaxRequestIDLength {
			return "", false
		}
		for i := range len(v) {
			if v[i] < 0x21 || v[i] > 0x7e {
				return "", false
			}
		}
		return v, true
	}
}

// GetRequestID returns the ID stored by RequestID, or "".
func GetRequestID(c internal.Context) string {
	id, _ := c.Get(requestIDKey{}).(string)
	return id
}

// RequestIDExtractor adds "request_id" to records logged with a request context.
// Pass it to the logger constructors in pkg/logger.
func RequestIDExtractor() logger.ContextExtractor {
	return func(ctx context.Context) (slog.Attr, bool) {
		if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
			return slog.String("request_id", id), true
		}
		return slog.Attr{}, false
	}
}
