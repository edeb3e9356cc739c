package internal

// HandlerFunc is the signature for route handlers.
// It receives a Context and returns an error.
// Returning a non-nil error triggers the shell's error handler.
type HandlerFunc func(c Context) error

// Middleware wraps a HandlerFunc to add cross-cutting concerns.
// Middleware can inspect/modify the request, short-circuit processing,
// or wrap the response.
//
// Example:
//
//	func Auth(next corex.HandlerFunc) corex.HandlerFunc {
//	    return func(c corex.Context) error {
//	        if c.Header("Authorization") == "" {
//	            return c.Error(401, "unauthorized")
//	        }
//	        return next(c)
//	    }
//	}
type Middleware func(next HandlerFunc) HandlerFunc

// ErrorHandler handles errors returned from handlers.
type ErrorHandler func(Context, error) error
