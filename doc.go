// Package corex composes an HTTP server out of independent extensions.
//
// Each extension contributes routes and middleware to a shared router.
// Extensions are registered on a [Shell] before the server starts; the
// shell then folds them, in registration order, into one routing table
// and serves it.
//
// # Quick Start
//
//	shell := corex.New("127.0.0.1", 8080,
//	    corex.WithExtensions(
//	        extensions.Health(),
//	        users.New(repo),
//	    ),
//	)
//
//	if err := shell.Run(); err != nil {
//	    log.Fatal(err)
//	}
//
// Run builds the router, binds one TCP listener, logs
// "Server running at http://127.0.0.1:8080" and serves until SIGINT or
// SIGTERM. A bind failure is returned immediately and wraps [ErrBind].
//
// # Extensions
//
// An extension implements [Extension]:
//
//	type Users struct {
//	    repo *repository.Queries
//	}
//
//	func (u *Users) Name() string { return "users" }
//
//	func (u *Users) Extend(r corex.Router) corex.Router {
//	    r.GET("/users/{id}", u.show)
//	    r.POST("/users", u.create)
//	    return r
//	}
//
// Closure-style extensions use [NewExtension]:
//
//	ping := corex.NewExtension("ping", func(r corex.Router) {
//	    r.GET("/ping", func(c corex.Context) error {
//	        return c.String(http.StatusOK, "pong")
//	    })
//	})
//
// # Ordering
//
// Extensions are applied in registration order. When two extensions
// declare the same method and pattern, the one registered last wins.
// Names are for diagnostics only: registering two extensions with the
// same name, or the same extension twice, is allowed.
//
// Router.Use on the top-level router installs global middleware that wraps
// every route, including routes declared by earlier extensions. Inside
// Group or Route it only wraps routes declared after it in that scope.
//
// # Single Use
//
// Build and Run consume the shell. Every later Register, Build or Run
// returns [ErrShellConsumed]. A failed build also consumes the shell.
//
// # Build Errors
//
// Malformed patterns, unsupported methods, nil handlers, duplicate mounts,
// a nil router returned from Extend and panics inside Extend are reported
// as a [*BuildError] naming the extension. Build errors match [ErrBuild]:
//
//	if _, err := shell.Build(); errors.Is(err, corex.ErrBuild) {
//	    be, _ := corex.AsBuildError(err)
//	    log.Error("bad extension", "extension", be.Extension, "error", be.Err)
//	}
package corex
