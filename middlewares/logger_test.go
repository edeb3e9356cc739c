package middlewares_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/corex/internal"
	"github.com/dmitrymomot/corex/middlewares"
)

// lastRecord decodes the last JSON line written to buf.
func lastRecord(t *testing.T, buf *lockedBuffer) map[string]any {
	t.Helper()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[len(lines)-1]), &rec))
	return rec
}

func TestLogger(t *testing.T) {
	t.Parallel()

	t.Run("successful request logs at info", func(t *testing.T) {
		t.Parallel()

		log, buf := captureLogger()
		serve(t, middlewares.Logger(), "/items", okHandler,
			httptest.NewRequest(http.MethodGet, "/items", nil), internal.WithLogger(log))

		rec := lastRecord(t, buf)
		require.Equal(t, "request", rec["msg"])
		require.Equal(t, "INFO", rec["level"])
		require.Equal(t, "GET", rec["method"])
		require.Equal(t, "/items", rec["path"])
		require.EqualValues(t, http.StatusOK, rec["status"])
		require.EqualValues(t, 2, rec["size"])
		require.Equal(t, "test", rec["extension"])
	})

	t.Run("not found logs at warn", func(t *testing.T) {
		t.Parallel()

		log, buf := captureLogger()
		serve(t, middlewares.Logger(), "/items", okHandler,
			httptest.NewRequest(http.MethodGet, "/missing", nil), internal.WithLogger(log))

		rec := lastRecord(t, buf)
		require.Equal(t, "WARN", rec["level"])
		require.EqualValues(t, http.StatusNotFound, rec["status"])
	})

	t.Run("handler error logs at error", func(t *testing.T) {
		t.Parallel()

		log, buf := captureLogger()
		serve(t, middlewares.Logger(), "/", func(c internal.Context) error {
			return errors.New("boom")
		}, httptest.NewRequest(http.MethodGet, "/", nil), internal.WithLogger(log))

		rec := lastRecord(t, buf)
		require.Equal(t, "ERROR", rec["level"])
		require.EqualValues(t, http.StatusInternalServerError, rec["status"])
	})

	t.Run("request id is attached through the extractor", func(t *testing.T) {
		t.Parallel()

		log, buf := captureLogger(middlewares.RequestIDExtractor())
		s := internal.New("127.0.0.1", 0,
			internal.WithLogger(log),
			internal.WithExtensions(internal.NewExtension("api", func(r internal.Router) {
				r.Use(middlewares.RequestID(), middlewares.Logger())
				r.GET("/", okHandler)
			})),
		)
		built, err := s.Build()
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "rid-1")
		built.ServeHTTP(httptest.NewRecorder(), req)

		rec := lastRecord(t, buf)
		require.Equal(t, "rid-1", rec["request_id"])
	})
}
