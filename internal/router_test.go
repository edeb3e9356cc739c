package internal

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestJoinPattern(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix string
		path   string
		want   string
	}{
		{"", "/users", "/users"},
		{"", "users", "users"},
		{"/api", "/users", "/api/users"},
		{"/api/", "/users", "/api/users"},
		{"/api", "users", "/api/users"},
		{"/api", "/", "/api/"},
		{"/api", "", "/api"},
		{"/api/v1", "/users/{id}", "/api/v1/users/{id}"},
	}

	for _, tt := range tests {
		t.Run(tt.prefix+"|"+tt.path, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, joinPattern(tt.prefix, tt.path))
		})
	}
}

func TestChain_FirstMiddlewareIsOutermost(t *testing.T) {
	t.Parallel()

	var order []string
	mark := func(name string) Middleware {
		return func(next HandlerFunc) HandlerFunc {
			return func(c Context) error {
				order = append(order, name)
				return next(c)
			}
		}
	}

	mw := []Middleware{mark("first"), nil, mark("second")}
	h := chain(func(c Context) error {
		order = append(order, "handler")
		return nil
	}, mw)

	require.NoError(t, h(nil))
	require.Equal(t, []string{"first", "second", "handler"}, order)
	require.Len(t, mw, 3, "chain must not modify the caller's slice")
}

func TestRouteAdapter_Recording(t *testing.T) {
	t.Parallel()

	noop := func(c Context) error { return nil }
	mw := func(next HandlerFunc) HandlerFunc { return next }

	t.Run("entries carry the current extension", func(t *testing.T) {
		t.Parallel()

		r := newRootRouter()
		r.table.extension = "users"
		r.GET("/users", noop)
		r.table.extension = "billing"
		r.POST("/invoices", noop)

		require.Len(t, r.table.entries, 2)
		require.Equal(t, "users", r.table.entries[0].extension)
		require.Equal(t, http.MethodGet, r.table.entries[0].method)
		require.Equal(t, "billing", r.table.entries[1].extension)
		require.Equal(t, http.MethodPost, r.table.entries[1].method)
	})

	t.Run("Method upper-cases the verb", func(t *testing.T) {
		t.Parallel()

		r := newRootRouter()
		r.Method("purge", "/cache", noop)
		require.Equal(t, "PURGE", r.table.entries[0].method)
	})

	t.Run("top-level Use is global", func(t *testing.T) {
		t.Parallel()

		r := newRootRouter()
		r.table.extension = "logging"
		r.Use(mw, mw)
		r.GET("/", noop)

		require.Len(t, r.table.middlewares, 2)
		require.Equal(t, "logging", r.table.middlewares[0].extension)
		require.Empty(t, r.table.entries[0].middlewares)
	})

	t.Run("group Use is scoped", func(t *testing.T) {
		t.Parallel()

		r := newRootRouter()
		r.Group(func(g Router) {
			g.GET("/before", noop)
			g.Use(mw)
			g.GET("/after", noop, mw)
		})
		r.GET("/outside", noop)

		require.Empty(t, r.table.middlewares)
		require.Len(t, r.table.entries, 3)
		require.Empty(t, r.table.entries[0].middlewares)
		require.Len(t, r.table.entries[1].middlewares, 2)
		require.Empty(t, r.table.entries[2].middlewares)
	})

	t.Run("Route prefixes nested groups", func(t *testing.T) {
		t.Parallel()

		r := newRootRouter()
		r.Route("/api", func(api Router) {
			api.Route("/v1", func(v1 Router) {
				v1.GET("/users/{id}", noop)
				v1.Mount("/legacy", http.NotFoundHandler())
			})
			api.Handle("/raw", http.NotFoundHandler())
		})

		require.Equal(t, "/api/v1/users/{id}", r.table.entries[0].pattern)
		require.Equal(t, "/api/v1/legacy", r.table.entries[1].pattern)
		require.Equal(t, entryMount, r.table.entries[1].kind)
		require.Equal(t, anyMethod, r.table.entries[1].method)
		require.Equal(t, "/api/raw", r.table.entries[2].pattern)
		require.Equal(t, entryHandle, r.table.entries[2].kind)
	})

	t.Run("groups share the root table", func(t *testing.T) {
		t.Parallel()

		r := newRootRouter()
		r.Group(func(g Router) {
			require.Same(t, r.table, g.routeTable())
		})
	})
}

func TestEffectiveRoutes(t *testing.T) {
	t.Parallel()

	entries := []routeEntry{
		{method: http.MethodGet, pattern: "/b", extension: "one"},
		{method: http.MethodGet, pattern: "/a", extension: "one"},
		{method: http.MethodPost, pattern: "/a", extension: "one"},
		{method: http.MethodGet, pattern: "/a", extension: "two"},
	}

	got := effectiveRoutes(entries)
	require.Equal(t, []RouteInfo{
		{Method: http.MethodGet, Pattern: "/a", Extension: "two"},
		{Method: http.MethodPost, Pattern: "/a", Extension: "one"},
		{Method: http.MethodGet, Pattern: "/b", Extension: "one"},
	}, got)
}
