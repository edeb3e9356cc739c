package extensions

import (
	"github.com/dmitrymomot/corex"
	"github.com/dmitrymomot/corex/pkg/hostrouter"
)

// Hosts returns an extension that dispatches requests by Host header.
// Requests whose host matches a pattern in routes are served by that
// handler; every other request continues to the shell's routes.
//
// Example:
//
//	extensions.Hosts("tenants", hostrouter.Routes{
//	    "admin.example.com": adminMux,
//	    "*.example.com":     tenantMux,
//	})
func Hosts(name string, routes hostrouter.Routes) corex.Extension {
	router := hostrouter.New(routes, nil)

	return corex.NewExtension(name, func(r corex.Router) {
		r.Use(func(next corex.HandlerFunc) corex.HandlerFunc {
			return func(c corex.Context) error {
				if h, ok := router.Match(c.Request().Host); ok {
					c.LogDebug("host route matched", "host", hostrouter.Domain(c.Request()), "extension", name)
					h.ServeHTTP(c.Response(), c.Request())
					return nil
				}
				return next(c)
			}
		})
	})
}
