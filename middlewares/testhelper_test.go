package middlewares_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/corex/internal"
	"github.com/dmitrymomot/corex/pkg/logger"
)

// serve builds a shell whose "test" extension installs mw globally and
// registers h at pattern for every method, then sends req through it.
func serve(t *testing.T, mw internal.Middleware, pattern string, h internal.HandlerFunc, req *http.Request, opts ...internal.Option) *httptest.ResponseRecorder {
	t.Helper()

	opts = append([]internal.Option{internal.WithLogger(logger.NewNope())}, opts...)
	opts = append(opts, internal.WithExtensions(internal.NewExtension("test", func(r internal.Router) {
		r.Use(mw)
		for _, m := range []string{http.MethodGet, http.MethodPost} {
			r.Method(m, pattern, h)
		}
	})))

	built, err := internal.New("127.0.0.1", 0, opts...).Build()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	built.ServeHTTP(w, req)
	return w
}

func okHandler(c internal.Context) error {
	return c.String(http.StatusOK, "ok")
}

// captureLogger returns a JSON logger writing to the returned buffer.
func captureLogger(extractors ...logger.ContextExtractor) (*slog.Logger, *lockedBuffer) {
	buf := &lockedBuffer{}
	return logger.NewWriter(buf, extractors...), buf
}

// lockedBuffer is safe for concurrent writes from handler goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
