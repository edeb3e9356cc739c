package hostrouter

import (
	"net/http"
	"strings"
)

// Routes maps host patterns to HTTP handlers.
// Exact: "api.example.com"
// Wildcard: "*.example.com"
type Routes map[string]http.Handler

// Router routes requests based on the Host header.
// It supports exact matches and wildcard patterns.
type Router struct {
	exact    map[string]http.Handler // "api.example.com" -> handler
	wildcard map[string]http.Handler // "example.com" -> handler (for *.example.com)
	fallback http.Handler
}

// New creates a host router from the given routes.
// Requests that match no pattern go to fallback; a nil fallback answers 404.
func New(routes Routes, fallback http.Handler) *Router {
	if fallback == nil {
		fallback = http.NotFoundHandler()
	}

	r := &Router{
		exact:    make(map[string]http.Handler),
		wildcard: make(map[string]http.Handler),
		fallback: fallback,
	}

	for pattern, handler := range routes {
		pattern = strings.ToLower(strings.TrimSpace(pattern))
		if pattern == "" || handler == nil {
			continue
		}
		if domain, ok := strings.CutPrefix(pattern, "*."); ok {
			r.wildcard[domain] = handler
		} else {
			r.exact[pattern] = handler
		}
	}

	return r
}

// Middleware returns chi-compatible middleware that dispatches matching hosts
// to their handler and passes every other request to next.
func Middleware(routes Routes) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return New(routes, next)
	}
}

// Match returns the handler registered for host.
// Exact patterns win over wildcards; among wildcards the most specific
// suffix wins, so "*.eu.example.com" beats "*.example.com".
func (r *Router) Match(host string) (http.Handler, bool) {
	host = normalizeHost(host)

	if h, ok := r.exact[host]; ok {
		return h, true
	}

	for rest := host; ; {
		_, domain, ok := strings.Cut(rest, ".")
		if !ok || domain == "" {
			return nil, false
		}
		if h, ok := r.wildcard[domain]; ok {
			return h, true
		}
		rest = domain
	}
}

// ServeHTTP routes requests based on the Host header.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if h, ok := r.Match(req.Host); ok {
		h.ServeHTTP(w, req)
		return
	}
	r.fallback.ServeHTTP(w, req)
}

// normalizeHost strips the port and lowercases the host.
// IPv6 literals keep their brackets.
func normalizeHost(host string) string {
	if idx := strings.LastIndex(host, ":"); idx != -1 {
		if !strings.Contains(host[idx:], "]") {
			host = host[:idx]
		}
	}
	return strings.ToLower(strings.TrimSuffix(host, "."))
}
