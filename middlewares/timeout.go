package middlewares

import (
	"bytes"
	"context"
	"errors"
	"maps"
	"net/http"
	"sync"
	"time"

	"github.com/dmitrymomot/corex/internal"
)

// DefaultTimeout is the default request timeout.
const DefaultTimeout = 30 * time.Second

// Timeout returns middleware that bounds handler run time.
//
// The rest of the chain runs in its own goroutine with a Context whose
// request context carries the deadline, so c.Context() and c.Deadline()
// can be passed to database and client calls. Its response is buffered
// and copied to the client only when the handler finishes in time. When
// the deadline passes first, a *TimeoutError is returned to the shell's
// error handler, which answers 503 by default, and later writes from the
// handler fail with http.ErrHandlerTimeout. Streaming, Flush and Hijack
// are not available under Timeout.
//
// A panic in the handler goroutine is returned as a *PanicError.
// Non-positive durations use DefaultTimeout.
func Timeout(timeout time.Duration) internal.Middleware {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) error {
			ctx, cancel := context.WithTimeout(c.Context(), timeout)
			defer cancel()

			tw := &timeoutWriter{header: make(http.Header)}
			tc := internal.NewContext(tw, c.Request().WithContext(ctx), c.Logger(), c.Extension())

			done := make(chan error, 1)
			go func() {
				defer func() {
					if r := recover(); r != nil {
						done <- newPanicError(tc, r, DefaultStackSize)
					}
				}()
				done <- next(tc)
			}()

			select {
			case err := <-done:
				tw.flushTo(c.Response())
				return err
			case <-ctx.Done():
				tw.expire()
				if errors.Is(ctx.Err(), context.DeadlineExceeded) {
					c.LogWarn("request timeout", "timeout", timeout.String(), "extension", c.Extension())
					return &TimeoutError{Duration: timeout, Extension: c.Extension()}
				}
				return ctx.Err()
			}
		}
	}
}

// timeoutWriter buffers a handler's response until Timeout decides whether
// it reaches the client. The header map belongs to the handler goroutine
// until the handler returns.
type timeoutWriter struct {
	header http.Header

	mu          sync.Mutex
	buf         bytes.Buffer
	code        int
	wroteHeader bool
	expired     bool
}

func (tw *timeoutWriter) Header() http.Header { return tw.header }

func (tw *timeoutWriter) WriteHeader(code int) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.expired || tw.wroteHeader {
		return
	}
	tw.wroteHeader = true
	tw.code = code
}

func (tw *timeoutWriter) Write(b []byte) (int, error) {
	tw.mu.Lock()
	defer tw.mu.Unlock()
	if tw.expired {
		return 0, http.ErrHandlerTimeout
	}
	if !tw.wroteHeader {
		tw.wroteHeader = true
		tw.code = http.StatusOK
	}
	return tw.buf.Write(b)
}

// expire drops every later write.
func (tw *timeoutWriter) expire() {
	tw.mu.Lock()
	tw.expired = true
	tw.mu.Unlock()
}

// flushTo copies the buffered response to w. Headers are copied even when
// nothing was written, so an error response keeps them.
func (tw *timeoutWriter) flushTo(w http.ResponseWriter) {
	tw.mu.Lock()
	defer tw.mu.Unlock()

	maps.Copy(w.Header(), tw.header)
	if !tw.wroteHeader {
		return
	}
	w.WriteHeader(tw.code)
	_, _ = w.Write(tw.buf.Bytes())
}
