package internal

import (
	"net/http"
	"slices"
	"strings"
)

// Router is the interface extensions use to declare routes.
// Declarations are recorded in order and replayed onto the dispatch
// engine when the shell builds; nothing is routable before that.
type Router interface {
	// GET registers a handler for GET requests.
	GET(path string, h HandlerFunc, mw ...Middleware)

	// POST registers a handler for POST requests.
	POST(path string, h HandlerFunc, mw ...Middleware)

	// PUT registers a handler for PUT requests.
	PUT(path string, h HandlerFunc, mw ...Middleware)

	// PATCH registers a handler for PATCH requests.
	PATCH(path string, h HandlerFunc, mw ...Middleware)

	// DELETE registers a handler for DELETE requests.
	DELETE(path string, h HandlerFunc, mw ...Middleware)

	// HEAD registers a handler for HEAD requests.
	HEAD(path string, h HandlerFunc, mw ...Middleware)

	// OPTIONS registers a handler for OPTIONS requests.
	OPTIONS(path string, h HandlerFunc, mw ...Middleware)

	// Method registers a handler for an arbitrary HTTP method.
	Method(method, path string, h HandlerFunc, mw ...Middleware)

	// Group creates an inline route group.
	// Middleware added inside fn applies only to routes declared in fn.
	Group(fn func(r Router))

	// Route creates a route group with a pattern prefix.
	// All routes defined inside fn share the pattern prefix.
	Route(pattern string, fn func(r Router))

	// Use appends middleware to the router's middleware stack.
	// On the top-level router the middleware wraps the whole mux,
	// including routes declared by earlier extensions.
	Use(mw ...Middleware)

	// Handle attaches an http.Handler to the pattern for all methods.
	Handle(pattern string, h http.Handler)

	// Mount attaches an http.Handler as a subtree at the given pattern.
	// Use this for legacy handlers or third-party routers.
	Mount(pattern string, h http.Handler)

	// routeTable exposes the recording sink. Wrappers that embed a Router
	// satisfy the interface through the embedded value.
	routeTable() *routeTable
}

type entryKind int

const (
	entryRoute entryKind = iota
	entryHandle
	entryMount
)

// anyMethod marks entries that match every HTTP method.
const anyMethod = "*"

// routeEntry is one recorded declaration.
type routeEntry struct {
	handler     HandlerFunc
	raw         http.Handler
	method      string
	pattern     string
	extension   string
	middlewares []Middleware
	kind        entryKind
}

// routeTable collects declarations from every extension in registration order.
type routeTable struct {
	// extension is the name of the extension currently being applied.
	extension   string
	middlewares []globalMiddleware
	entries     []routeEntry
}

type globalMiddleware struct {
	mw        Middleware
	extension string
}

func newRouteTable() *routeTable {
	return &routeTable{}
}

// routeAdapter implements Router on top of a routeTable.
// The top-level adapter has root set; groups carry their own prefix and
// middleware snapshot.
type routeAdapter struct {
	table       *routeTable
	prefix      string
	middlewares []Middleware
	root        bool
}

func newRootRouter() *routeAdapter {
	return &routeAdapter{table: newRouteTable(), root: true}
}

func (r *routeAdapter) routeTable() *routeTable {
	return r.table
}

func (r *routeAdapter) GET(path string, h HandlerFunc, mw ...Middleware) {
	r.Method(http.MethodGet, path, h, mw...)
}

func (r *routeAdapter) POST(path string, h HandlerFunc, mw ...Middleware) {
	r.Method(http.MethodPost, path, h, mw...)
}

func (r *routeAdapter) PUT(path string, h HandlerFunc, mw ...Middleware) {
	r.Method(http.MethodPut, path, h, mw...)
}

func (r *routeAdapter) PATCH(path string, h HandlerFunc, mw ...Middleware) {
	r.Method(http.MethodPatch, path, h, mw...)
}

func (r *routeAdapter) DELETE(path string, h HandlerFunc, mw ...Middleware) {
	r.Method(http.MethodDelete, path, h, mw...)
}

func (r *routeAdapter) HEAD(path string, h HandlerFunc, mw ...Middleware) {
	r.Method(http.MethodHead, path, h, mw...)
}

func (r *routeAdapter) OPTIONS(path string, h HandlerFunc, mw ...Middleware) {
	r.Method(http.MethodOptions, path, h, mw...)
}

func (r *routeAdapter) Method(method, path string, h HandlerFunc, mw ...Middleware) {
	r.record(routeEntry{
		kind:        entryRoute,
		method:      strings.ToUpper(method),
		pattern:     joinPattern(r.prefix, path),
		handler:     h,
		middlewares: r.scoped(mw),
	})
}

func (r *routeAdapter) Group(fn func(Router)) {
	fn(&routeAdapter{
		table:       r.table,
		prefix:      r.prefix,
		middlewares: slices.Clone(r.middlewares),
	})
}

func (r *routeAdapter) Route(pattern string, fn func(Router)) {
	fn(&routeAdapter{
		table:       r.table,
		prefix:      joinPattern(r.prefix, pattern),
		middlewares: slices.Clone(r.middlewares),
	})
}

func (r *routeAdapter) Use(mw ...Middleware) {
	if r.root {
		for _, m := range mw {
			r.table.middlewares = append(r.table.middlewares, globalMiddleware{mw: m, extension: r.table.extension})
		}
		return
	}
	r.middlewares = append(r.middlewares, mw...)
}

func (r *routeAdapter) Handle(pattern string, h http.Handler) {
	r.record(routeEntry{
		kind:        entryHandle,
		method:      anyMethod,
		pattern:     joinPattern(r.prefix, pattern),
		raw:         h,
		middlewares: slices.Clone(r.middlewares),
	})
}

func (r *routeAdapter) Mount(pattern string, h http.Handler) {
	r.record(routeEntry{
		kind:        entryMount,
		method:      anyMethod,
		pattern:     joinPattern(r.prefix, pattern),
		raw:         h,
		middlewares: slices.Clone(r.middlewares),
	})
}

func (r *routeAdapter) record(e routeEntry) {
	e.extension = r.table.extension
	r.table.entries = append(r.table.entries, e)
}

// scoped returns the group middleware followed by route-specific middleware.
func (r *routeAdapter) scoped(mw []Middleware) []Middleware {
	if len(r.middlewares) == 0 && len(mw) == 0 {
		return nil
	}
	out := make([]Middleware, 0, len(r.middlewares)+len(mw))
	out = append(out, r.middlewares...)
	return append(out, mw...)
}

// joinPattern prefixes path with the group prefix.
// An empty prefix leaves the path untouched so malformed patterns still
// reach the dispatch engine and fail the build.
func joinPattern(prefix, path string) string {
	if prefix == "" {
		return path
	}
	if path == "" {
		return prefix
	}
	return strings.TrimSuffix(prefix, "/") + "/" + strings.TrimPrefix(path, "/")
}

// chain applies middleware so that the first element is the outermost wrapper.
func chain(h HandlerFunc, mw []Middleware) HandlerFunc {
	for i := len(mw) - 1; i >= 0; i-- {
		if mw[i] != nil {
			h = mw[i](h)
		}
	}
	return h
}
