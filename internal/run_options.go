package internal

import (
	"context"
	"net"
	"time"
)

// RunOption configures the server runtime.
type RunOption func(*runConfig)

// runConfig holds runtime configuration for the server.
type runConfig struct {
	baseCtx         context.Context
	shutdownHooks   []func(context.Context) error
	listenHooks     []func(net.Addr)
	shutdownTimeout time.Duration
}

// buildRunConfig creates a runConfig from the provided options.
func buildRunConfig(opts ...RunOption) *runConfig {
	cfg := &runConfig{
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ShutdownTimeout sets the timeout for graceful shutdown.
// This applies to both the HTTP server and shutdown hooks.
// Defaults to 30 seconds.
func ShutdownTimeout(d time.Duration) RunOption {
	return func(c *runConfig) {
		if d > 0 {
			c.shutdownTimeout = d
		}
	}
}

// ShutdownHook registers a cleanup function to run during shutdown.
// Hooks are called in the order they were registered.
// Each hook receives a context with the shutdown timeout.
//
// Example:
//
//	shell.Run(corex.ShutdownHook(db.Shutdown(pool)))
func ShutdownHook(fn func(context.Context) error) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.shutdownHooks = append(c.shutdownHooks, fn)
		}
	}
}

// OnListen registers a callback invoked once the listener is bound,
// before the first request is accepted. It receives the resolved address,
// which is how callers learn the port chosen for port 0.
func OnListen(fn func(addr net.Addr)) RunOption {
	return func(c *runConfig) {
		if fn != nil {
			c.listenHooks = append(c.listenHooks, fn)
		}
	}
}

// WithContext sets a custom base context for signal handling.
// Cancelling it stops the server the same way SIGTERM does.
// Defaults to context.Background() if not set.
func WithContext(ctx context.Context) RunOption {
	return func(c *runConfig) {
		if ctx != nil {
			c.baseCtx = ctx
		}
	}
}
