// Package internal provides the core types and implementation for corex.
//
// This package is internal and should not be used directly. Import
// "github.com/dmitrymomot/corex" instead, which re-exports the public API.
//
// # Core Types
//
//   - Shell: owns the router and the ordered extension registry, builds and runs
//   - Extension: named unit that layers routes and middleware onto a Router
//   - Router: recording router handed through the extension fold
//   - BuiltRouter: finalized, read-only routing table (an http.Handler)
//   - Context: request/response access and helper methods
//   - HandlerFunc, Middleware, ErrorHandler: handler signatures
//
// # Build
//
// Build folds the registered extensions over an empty router in
// registration order:
//
//	r = ext[0].Extend(r)
//	r = ext[1].Extend(r)
//	...
//
// Declarations are recorded, then replayed onto a fresh chi mux. Top-level
// middleware is installed first, then routes in declaration order, so when
// two extensions declare the same method and pattern the later one wins.
//
// # Lifecycle
//
// A shell moves from configuring to built (Build) or running (Run) exactly
// once. Every later Register, Build or Run returns ErrShellConsumed.
package internal
