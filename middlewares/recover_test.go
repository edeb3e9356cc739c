package middlewares_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/corex/internal"
	"github.com/dmitrymomot/corex/middlewares"
)

// captureError records the error that reaches the shell's error handler.
func captureError(dst *error) internal.Option {
	return internal.WithErrorHandler(func(c internal.Context, err error) error {
		*dst = err
		return c.String(http.StatusInternalServerError, "recovered")
	})
}

func TestRecover(t *testing.T) {
	t.Parallel()

	t.Run("panic becomes PanicError with stack", func(t *testing.T) {
		t.Parallel()

		var got error
		w := serve(t, middlewares.Recover(), "/", func(c internal.Context) error {
			panic("boom")
		}, httptest.NewRequest(http.MethodGet, "/", nil), captureError(&got))

		require.Equal(t, http.StatusInternalServerError, w.Code)
		require.Equal(t, "recovered", w.Body.String())

		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		require.Equal(t, "boom", pe.Value)
		require.NotEmpty(t, pe.Stack)
		require.Contains(t, string(pe.Stack), "goroutine")
	})

	t.Run("default error handler answers 500", func(t *testing.T) {
		t.Parallel()

		w := serve(t, middlewares.Recover(), "/", func(c internal.Context) error {
			panic("boom")
		}, httptest.NewRequest(http.MethodGet, "/", nil))

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})

	t.Run("no panic passes through", func(t *testing.T) {
		t.Parallel()

		w := serve(t, middlewares.Recover(), "/", okHandler, httptest.NewRequest(http.MethodGet, "/", nil))
		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "ok", w.Body.String())
	})

	t.Run("handler error is preserved", func(t *testing.T) {
		t.Parallel()

		sentinel := errors.New("handler failed")
		var got error
		serve(t, middlewares.Recover(), "/", func(c internal.Context) error {
			return sentinel
		}, httptest.NewRequest(http.MethodGet, "/", nil), captureError(&got))

		require.ErrorIs(t, got, sentinel)
		require.False(t, middlewares.IsPanicError(got))
	})

	t.Run("disabled stack", func(t *testing.T) {
		t.Parallel()

		var got error
		serve(t, middlewares.Recover(middlewares.WithRecoverDisablePrintStack()), "/", func(c internal.Context) error {
			panic("boom")
		}, httptest.NewRequest(http.MethodGet, "/", nil), captureError(&got))

		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		require.Nil(t, pe.Stack)
	})

	t.Run("stack size caps the trace", func(t *testing.T) {
		t.Parallel()

		var got error
		serve(t, middlewares.Recover(middlewares.WithRecoverStackSize(64)), "/", func(c internal.Context) error {
			panic("boom")
		}, httptest.NewRequest(http.MethodGet, "/", nil), captureError(&got))

		pe, ok := middlewares.AsPanicError(got)
		require.True(t, ok)
		require.LessOrEqual(t, len(pe.Stack), 64)
		require.NotEmpty(t, pe.Stack)
	})

	t.Run("error panic value is unwrapped", func(t *testing.T) {
		t.Parallel()

		cause := errors.New("cause")
		var got error
		serve(t, middlewares.Recover(), "/", func(c internal.Context) error {
			panic(cause)
		}, httptest.NewRequest(http.MethodGet, "/", nil), captureError(&got))

		require.ErrorIs(t, got, cause)
	})

	t.Run("panic under Timeout is recovered", func(t *testing.T) {
		t.Parallel()

		for name, mw := range map[string]internal.Middleware{
			"recover outside": func(next internal.HandlerFunc) internal.HandlerFunc {
				return middlewares.Recover()(middlewares.Timeout(time.Second)(next))
			},
			"recover inside": func(next internal.HandlerFunc) internal.HandlerFunc {
				return middlewares.Timeout(time.Second)(middlewares.Recover()(next))
			},
		} {
			var got error
			w := serve(t, mw, "/", func(c internal.Context) error {
				panic("boom")
			}, httptest.NewRequest(http.MethodGet, "/", nil), captureError(&got))

			require.Equal(t, http.StatusInternalServerError, w.Code, name)
			pe, ok := middlewares.AsPanicError(got)
			require.True(t, ok, name)
			require.Equal(t, "boom", pe.Value, name)
		}
	})

	t.Run("panic is logged with extension", func(t *testing.T) {
		t.Parallel()

		log, buf := captureLogger()
		serve(t, middlewares.Recover(), "/", func(c internal.Context) error {
			panic("boom")
		}, httptest.NewRequest(http.MethodGet, "/", nil), internal.WithLogger(log))

		require.Contains(t, buf.String(), "panic recovered")
		require.Contains(t, buf.String(), `"extension":"test"`)
	})
}
