package internal

import (
	"cmp"
	"fmt"
	"net/http"
	"slices"

	"github.com/go-chi/chi/v5"
)

// RouteInfo describes one effective route of a built router.
type RouteInfo struct {
	Method    string
	Pattern   string
	Extension string
}

// BuiltRouter is the finalized routing table produced by Build.
// It is safe for concurrent use and cannot be modified.
type BuiltRouter struct {
	handler http.Handler
	routes  []RouteInfo
}

// ServeHTTP dispatches the request through the routing table.
func (b *BuiltRouter) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.handler.ServeHTTP(w, r)
}

// Routes returns the effective routes sorted by pattern then method.
// When a method and pattern were declared more than once, only the last
// declaration is listed. Mounts and Handle entries use "*" as method.
func (b *BuiltRouter) Routes() []RouteInfo {
	return slices.Clone(b.routes)
}

// materialize replays the recorded table onto a fresh chi mux.
func (s *Shell) materialize(t *routeTable) (*BuiltRouter, error) {
	mux := chi.NewRouter()

	for _, g := range t.middlewares {
		if g.mw == nil {
			continue
		}
		mux.Use(s.adaptMiddleware(g.mw, g.extension))
	}

	if s.notFoundHandler != nil {
		mux.NotFound(s.adaptHandler(s.notFoundHandler, ""))
	}
	if s.methodNotAllowedHandler != nil {
		mux.MethodNotAllowed(s.adaptHandler(s.methodNotAllowedHandler, ""))
	}

	for _, e := range t.entries {
		if err := s.apply(mux, e); err != nil {
			return nil, err
		}
	}

	// chi only assembles its middleware chain on the first route, so a table
	// without routes would answer 404 without running global middleware.
	var h http.Handler = mux
	if len(t.entries) == 0 {
		h = mux.Middlewares().Handler(mux.NotFoundHandler())
	}

	return &BuiltRouter{handler: h, routes: effectiveRoutes(t.entries)}, nil
}

// apply registers one entry on the mux. The dispatch engine panics on
// malformed declarations; the panic is reported as a BuildError.
func (s *Shell) apply(mux *chi.Mux, e routeEntry) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &BuildError{
				Extension: e.extension,
				Method:    e.method,
				Pattern:   e.pattern,
				Err:       fmt.Errorf("%v", v),
			}
		}
	}()

	switch e.kind {
	case entryRoute:
		if e.handler == nil {
			return &BuildError{Extension: e.extension, Method: e.method, Pattern: e.pattern, Err: errNilHandler}
		}
		mux.Method(e.method, e.pattern, s.adaptHandler(chain(e.handler, e.middlewares), e.extension))
	case entryHandle:
		mux.Handle(e.pattern, s.wrapRaw(e))
	case entryMount:
		mux.Mount(e.pattern, s.wrapRaw(e))
	}
	return nil
}

// wrapRaw applies scoped middleware to a plain http.Handler.
func (s *Shell) wrapRaw(e routeEntry) http.Handler {
	if e.raw == nil {
		panic(errNilHandler)
	}
	if len(e.middlewares) == 0 {
		return e.raw
	}
	mws := make(chi.Middlewares, 0, len(e.middlewares))
	for _, mw := range e.middlewares {
		if mw != nil {
			mws = append(mws, s.adaptMiddleware(mw, e.extension))
		}
	}
	return mws.Handler(e.raw)
}

// effectiveRoutes collapses repeated method+pattern declarations, keeping
// the owner of the last one.
func effectiveRoutes(entries []routeEntry) []RouteInfo {
	type key struct{ method, pattern string }

	index := make(map[key]int, len(entries))
	routes := make([]RouteInfo, 0, len(entries))
	for _, e := range entries {
		k := key{e.method, e.pattern}
		info := RouteInfo{Method: e.method, Pattern: e.pattern, Extension: e.extension}
		if i, ok := index[k]; ok {
			routes[i] = info
			continue
		}
		index[k] = len(routes)
		routes = append(routes, info)
	}

	slices.SortFunc(routes, func(a, b RouteInfo) int {
		return cmp.Or(cmp.Compare(a.Pattern, b.Pattern), cmp.Compare(a.Method, b.Method))
	})
	return routes
}
