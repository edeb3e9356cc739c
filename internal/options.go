package internal

import "log/slog"

// Option configures the shell.
type Option func(*Shell)

// WithLogger sets the shell logger.
// Defaults to a JSON logger on stdout. Pass logger.NewNope() to silence it.
func WithLogger(l *slog.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithExtensions registers extensions at construction time.
// Equivalent to calling Register with the same arguments right after New.
func WithExtensions(ext ...Extension) Option {
	return func(s *Shell) {
		s.extensions = append(s.extensions, ext...)
	}
}

// WithErrorHandler sets a custom error handler for handler errors.
// Called when a handler or middleware returns a non-nil error and no
// response has been written yet.
//
// Example:
//
//	corex.WithErrorHandler(func(c corex.Context, err error) error {
//	    return c.JSON(http.StatusInternalServerError, map[string]string{
//	        "error": err.Error(),
//	    })
//	})
func WithErrorHandler(h ErrorHandler) Option {
	return func(s *Shell) {
		s.errorHandler = h
	}
}

// WithNotFoundHandler sets a custom 404 handler.
// Without it, unmatched requests get the dispatch engine's default 404.
func WithNotFoundHandler(h HandlerFunc) Option {
	return func(s *Shell) {
		s.notFoundHandler = h
	}
}

// WithMethodNotAllowedHandler sets a custom 405 handler.
func WithMethodNotAllowedHandler(h HandlerFunc) Option {
	return func(s *Shell) {
		s.methodNotAllowedHandler = h
	}
}
