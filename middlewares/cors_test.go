package middlewares_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/corex/middlewares"
)

func corsRequest(method, origin string) *http.Request {
	req := httptest.NewRequest(method, "/", nil)
	if origin != "" {
		req.Header.Set("Origin", origin)
	}
	return req
}

func TestCORS(t *testing.T) {
	t.Parallel()

	t.Run("default allows any origin with wildcard", func(t *testing.T) {
		t.Parallel()

		w := serve(t, middlewares.CORS(), "/", okHandler, corsRequest(http.MethodGet, "https://a.test"))
		require.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "Origin", w.Header().Get("Vary"))
		require.Equal(t, "ok", w.Body.String())
	})

	t.Run("no origin header means no CORS headers", func(t *testing.T) {
		t.Parallel()

		w := serve(t, middlewares.CORS(), "/", okHandler, corsRequest(http.MethodGet, ""))
		require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("static list echoes listed origin and skips others", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(middlewares.WithAllowOrigins("https://app.test"))

		w := serve(t, mw, "/", okHandler, corsRequest(http.MethodGet, "https://app.test"))
		require.Equal(t, "https://app.test", w.Header().Get("Access-Control-Allow-Origin"))

		w = serve(t, mw, "/", okHandler, corsRequest(http.MethodGet, "https://evil.test"))
		require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "ok", w.Body.String())
	})

	t.Run("origin func overrides static list", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(
			middlewares.WithAllowOrigins("https://static.test"),
			middlewares.WithAllowOriginFunc(func(origin string) bool { return origin == "https://dynamic.test" }),
		)

		w := serve(t, mw, "/", okHandler, corsRequest(http.MethodGet, "https://dynamic.test"))
		require.Equal(t, "https://dynamic.test", w.Header().Get("Access-Control-Allow-Origin"))

		w = serve(t, mw, "/", okHandler, corsRequest(http.MethodGet, "https://static.test"))
		require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight short-circuits with 204", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(
			middlewares.WithAllowMethods(http.MethodGet, http.MethodPost),
			middlewares.WithAllowHeaders("Content-Type"),
			middlewares.WithMaxAge(time.Hour),
		)
		req := corsRequest(http.MethodOptions, "https://a.test")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)

		w := serve(t, mw, "/", okHandler, req)
		require.Equal(t, http.StatusNoContent, w.Code)
		require.Equal(t, "GET, POST", w.Header().Get("Access-Control-Allow-Methods"))
		require.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
		require.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))
		require.ElementsMatch(t,
			[]string{"Origin", "Access-Control-Request-Method", "Access-Control-Request-Headers"},
			w.Header().Values("Vary"),
		)
		require.Empty(t, w.Body.String())
	})

	t.Run("credentials echo the origin", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(
			middlewares.WithAllowCredentials(),
			middlewares.WithExposeHeaders("X-Request-ID", "X-Total"),
		)
		w := serve(t, mw, "/", okHandler, corsRequest(http.MethodGet, "https://a.test"))

		require.Equal(t, "https://a.test", w.Header().Get("Access-Control-Allow-Origin"))
		require.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		require.Equal(t, "X-Request-ID, X-Total", w.Header().Get("Access-Control-Expose-Headers"))
	})

	t.Run("wildcard subdomain origin", func(t *testing.T) {
		t.Parallel()

		mw := middlewares.CORS(middlewares.WithAllowOrigins("https://*.example.com"))

		for origin, allowed := range map[string]bool{
			"https://app.example.com":    true,
			"https://a.b.example.com":    true,
			"https://example.com":        false,
			"http://app.example.com":     false,
			"https://app.example.com.io": false,
		} {
			w := serve(t, mw, "/", okHandler, corsRequest(http.MethodGet, origin))
			if allowed {
				require.Equal(t, origin, w.Header().Get("Access-Control-Allow-Origin"), origin)
			} else {
				require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"), origin)
			}
		}
	})

	t.Run("plain OPTIONS is not a preflight", func(t *testing.T) {
		t.Parallel()

		w := serve(t, middlewares.CORS(), "/", okHandler, corsRequest(http.MethodOptions, "https://a.test"))
		require.NotEqual(t, http.StatusNoContent, w.Code)
		require.Empty(t, w.Header().Get("Access-Control-Allow-Methods"))
	})
}
