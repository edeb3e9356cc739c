package corex_test

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/corex"
	"github.com/dmitrymomot/corex/pkg/logger"
)

// messageExtension answers GET path with {"message": msg}.
type messageExtension struct {
	name string
	path string
	msg  string
}

func (e *messageExtension) Name() string { return e.name }

func (e *messageExtension) Extend(r corex.Router) corex.Router {
	r.GET(e.path, func(c corex.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": e.msg})
	})
	return r
}

// startShell runs s on an ephemeral port and returns its base URL.
// The server is stopped when the test finishes.
func startShell(t *testing.T, s *corex.Shell) string {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	addrCh := make(chan net.Addr, 1)
	done := make(chan error, 1)

	go func() {
		done <- s.Run(
			corex.WithContext(ctx),
			corex.ShutdownTimeout(5*time.Second),
			corex.OnListen(func(addr net.Addr) { addrCh <- addr }),
		)
	}()

	t.Cleanup(func() {
		cancel()
		require.NoError(t, <-done)
	})

	select {
	case addr := <-addrCh:
		return "http://" + addr.String()
	case err := <-done:
		t.Fatalf("server exited before listening: %v", err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not start")
	}
	return ""
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRun_SingleExtension(t *testing.T) {
	t.Parallel()

	s := corex.New("127.0.0.1", 0, corex.WithLogger(logger.NewNope()))
	require.NoError(t, s.Register(&messageExtension{name: "test", path: "/test", msg: "Test endpoint"}))

	base := startShell(t, s)

	status, body := get(t, base+"/test")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "Test endpoint")

	var payload map[string]string
	require.NoError(t, json.Unmarshal([]byte(body), &payload))
	require.Equal(t, "Test endpoint", payload["message"])
}

func TestRun_NoExtensions(t *testing.T) {
	t.Parallel()

	s := corex.New("127.0.0.1", 0, corex.WithLogger(logger.NewNope()))
	base := startShell(t, s)

	status, _ := get(t, base+"/")
	require.Equal(t, http.StatusNotFound, status)
}

func TestRun_LastRegisteredWins(t *testing.T) {
	t.Parallel()

	s := corex.New("127.0.0.1", 0, corex.WithLogger(logger.NewNope()))
	require.NoError(t, s.Register(&messageExtension{name: "A", path: "/a", msg: "from A"}))
	require.NoError(t, s.Register(&messageExtension{name: "B", path: "/a", msg: "from B"}))

	base := startShell(t, s)

	status, body := get(t, base+"/a")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "from B")
	require.NotContains(t, body, "from A")
}

func TestBuild(t *testing.T) {
	t.Parallel()

	t.Run("routes report owning extension", func(t *testing.T) {
		t.Parallel()

		s := corex.New("127.0.0.1", 0,
			corex.WithLogger(logger.NewNope()),
			corex.WithExtensions(
				&messageExtension{name: "A", path: "/a", msg: "a"},
				&messageExtension{name: "B", path: "/b", msg: "b"},
				&messageExtension{name: "C", path: "/a", msg: "c"},
			),
		)
		built, err := s.Build()
		require.NoError(t, err)
		require.Equal(t, []corex.RouteInfo{
			{Method: http.MethodGet, Pattern: "/a", Extension: "C"},
			{Method: http.MethodGet, Pattern: "/b", Extension: "B"},
		}, built.Routes())
	})

	t.Run("consumed shell", func(t *testing.T) {
		t.Parallel()

		s := corex.New("127.0.0.1", 0, corex.WithLogger(logger.NewNope()))
		_, err := s.Build()
		require.NoError(t, err)

		require.ErrorIs(t, s.Register(&messageExtension{name: "late"}), corex.ErrShellConsumed)
		require.ErrorIs(t, s.Run(), corex.ErrShellConsumed)
	})

	t.Run("malformed pattern names the extension", func(t *testing.T) {
		t.Parallel()

		s := corex.New("127.0.0.1", 0,
			corex.WithLogger(logger.NewNope()),
			corex.WithExtensions(&messageExtension{name: "broken", path: "test", msg: "x"}),
		)
		_, err := s.Build()
		require.ErrorIs(t, err, corex.ErrBuild)

		be, ok := corex.AsBuildError(err)
		require.True(t, ok)
		require.Equal(t, "broken", be.Extension)
		require.Equal(t, "test", be.Pattern)
	})
}

func TestContextValue(t *testing.T) {
	t.Parallel()

	type key struct{}

	s := corex.New("127.0.0.1", 0,
		corex.WithLogger(logger.NewNope()),
		corex.WithExtensions(corex.NewExtension("values", func(r corex.Router) {
			r.Use(func(next corex.HandlerFunc) corex.HandlerFunc {
				return func(c corex.Context) error {
					c.Set(key{}, 42)
					return next(c)
				}
			})
			r.GET("/", func(c corex.Context) error {
				require.Equal(t, 42, corex.ContextValue[int](c, key{}))
				require.Empty(t, corex.ContextValue[string](c, key{}))
				return c.NoContent(http.StatusOK)
			})
		})),
	)
	built, err := s.Build()
	require.NoError(t, err)

	w := httptest.NewRecorder()
	built.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, w.Code)
}
