// Package hostrouter dispatches HTTP requests by their Host header.
//
// Two pattern types are supported:
//
//   - Exact: "api.example.com" matches only that host
//   - Wildcard: "*.example.com" matches any host below example.com
//
// Exact patterns win over wildcards, and the most specific wildcard wins
// among wildcards. Matching is case-insensitive; ports and a trailing dot
// are ignored.
//
// A Router can serve as the whole handler:
//
//	router := hostrouter.New(hostrouter.Routes{
//	    "api.example.com": apiHandler,
//	    "*.example.com":   tenantHandler,
//	}, defaultHandler)
//
// or as middleware in front of another router, where unmatched hosts fall
// through to the wrapped handler:
//
//	mux.Use(hostrouter.Middleware(hostrouter.Routes{"admin.example.com": admin}))
//
// IPv6 literals such as "[::1]:8080" keep their brackets during
// normalization.
package hostrouter
