package middlewares_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/corex/internal"
	"github.com/dmitrymomot/corex/middlewares"
)

func echoBody(c internal.Context) error {
	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return err
	}
	return c.String(http.StatusOK, string(body))
}

func TestBodyLimit(t *testing.T) {
	t.Parallel()

	t.Run("small body passes", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("hello"))
		w := serve(t, middlewares.BodyLimit(16), "/", echoBody, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Equal(t, "hello", w.Body.String())
	})

	t.Run("declared length over limit is rejected before the handler", func(t *testing.T) {
		t.Parallel()

		called := false
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 32)))
		w := serve(t, middlewares.BodyLimit(16), "/", func(c internal.Context) error {
			called = true
			return nil
		}, req)

		require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		require.False(t, called)
	})

	t.Run("streamed body over limit fails while reading", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 32)))
		req.ContentLength = -1
		w := serve(t, middlewares.BodyLimit(16), "/", echoBody, req)

		require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	})

	t.Run("non-positive limit disables the cap", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 32)))
		w := serve(t, middlewares.BodyLimit(0), "/", echoBody, req)

		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, w.Body.String(), 32)
	})
}
