package extensions

import (
	"github.com/dmitrymomot/corex"
	"github.com/dmitrymomot/corex/middlewares"
)

// Middleware returns an extension that installs mw as global middleware.
// Global middleware wraps every route, including routes declared by
// extensions registered before it.
func Middleware(name string, mw ...corex.Middleware) corex.Extension {
	return corex.NewExtension(name, func(r corex.Router) {
		r.Use(mw...)
	})
}

// BodyLimit returns an extension that caps every request body at limit bytes.
// Oversized bodies are answered with 413.
func BodyLimit(limit int64) corex.Extension {
	return Middleware("body-limit", middlewares.BodyLimit(limit))
}
