// Package extensions provides ready-made corex extensions.
//
// Each constructor returns a corex.Extension that can be registered on a
// shell next to application extensions:
//
//	shell := corex.New("0.0.0.0", 8080, corex.WithExtensions(
//	    extensions.Middleware("observability", middlewares.RequestID(), middlewares.Logger()),
//	    extensions.BodyLimit(1<<20),
//	    extensions.Health(extensions.WithReadinessCheck("postgres", db.Healthcheck(pool))),
//	    extensions.Static("/assets", assets),
//	    users.New(repo),
//	))
//
// Registration order still decides conflicts: a later extension that
// declares the same route replaces the earlier one.
package extensions
