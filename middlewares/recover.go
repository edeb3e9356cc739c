package middlewares

import (
	"runtime"

	"github.com/dmitrymomot/corex/internal"
)

// DefaultStackSize is the default maximum stack trace size in bytes.
const DefaultStackSize = 4096

// RecoverConfig configures the recover middleware.
type RecoverConfig struct {
	StackSize         int  // Max stack trace size (default: 4096)
	DisablePrintStack bool // Disable stack trace capture
}

// RecoverOption configures RecoverConfig.
type RecoverOption func(*RecoverConfig)

// WithRecoverStackSize sets the maximum stack trace size.
// Non-positive sizes keep the default.
func WithRecoverStackSize(size int) RecoverOption {
	return func(cfg *RecoverConfig) {
		if size > 0 {
			cfg.StackSize = size
		}
	}
}

// WithRecoverDisablePrintStack disables stack trace capture.
func WithRecoverDisablePrintStack() RecoverOption {
	return func(cfg *RecoverConfig) {
		cfg.DisablePrintStack = true
	}
}

// Recover returns middleware that turns a handler panic into a *PanicError.
// The panic is logged with the owning extension, and the error flows to the
// shell's error handler, which answers 500 unless configured otherwise.
func Recover(opts ...RecoverOption) internal.Middleware {
	cfg := &RecoverConfig{StackSize: DefaultStackSize}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next internal.HandlerFunc) internal.HandlerFunc {
		return func(c internal.Context) (err error) {
			defer func() {
				r := recover()
				if r == nil {
					return
				}

				stackSize := cfg.StackSize
				if cfg.DisablePrintStack {
					stackSize = 0
				}
				err = newPanicError(c, r, stackSize)
			}()

			return next(c)
		}
	}
}

// newPanicError captures up to stackSize bytes of the current goroutine's
// stack and logs the panic. A zero stackSize skips the stack.
func newPanicError(c internal.Context, v any, stackSize int) *PanicError {
	pe := &PanicError{Value: v, Extension: c.Extension()}
	attrs := []any{"panic", v, "extension", c.Extension()}
	if stackSize > 0 {
		stack := make([]byte, stackSize)
		pe.Stack = stack[:runtime.Stack(stack, false)]
		attrs = append(attrs, "stack", string(pe.Stack))
	}

	c.LogError("panic recovered", attrs...)
	return pe
}
