// Package middlewares provides middleware for corex extensions.
//
// Every constructor returns an internal.Middleware (corex.Middleware), so it
// can be installed globally from an extension with Router.Use, scoped to a
// group, or attached to a single route.
//
//	shell := corex.New(host, port, corex.WithExtensions(
//	    extensions.Middleware("observability",
//	        middlewares.RequestID(),
//	        middlewares.Logger(),
//	        middlewares.Recover(),
//	    ),
//	    api.New(),
//	))
//
// # Request ID
//
// RequestID reuses a well-formed incoming X-Request-ID (or X-Correlation-ID)
// header or generates a UUID, stores it in the request context and echoes it in the
// response. Pair it with RequestIDExtractor so every record logged through
// the request context carries request_id:
//
//	log := logger.New(middlewares.RequestIDExtractor())
//
// # Recover and Timeout
//
// Recover converts handler panics into *PanicError and Timeout returns
// *TimeoutError when the deadline passes first. Without a custom error
// handler the shell answers them with 500 and 503. A custom handler can
// tell them apart:
//
//	corex.WithErrorHandler(func(c corex.Context, err error) error {
//	    if middlewares.IsTimeoutError(err) {
//	        return c.String(http.StatusGatewayTimeout, "timeout")
//	    }
//	    return c.String(http.StatusInternalServerError, "internal error")
//	})
//
// Timeout runs the rest of the chain on its own goroutine against a
// buffered response and a request context carrying the deadline. Writes
// after the deadline fail with http.ErrHandlerTimeout and never reach the
// client. A panic on that goroutine comes back as *PanicError even when no
// Recover sits inside Timeout. Install Recover after Timeout to have the
// panic logged with the stack of the handler goroutine.
//
// # CORS, BodyLimit and Logger
//
// CORS answers preflight requests and decorates responses for allowed
// origins. BodyLimit caps request bodies and reports oversized ones as 413.
// Logger writes one record per request with method, path, status, size,
// duration and the owning extension.
package middlewares
