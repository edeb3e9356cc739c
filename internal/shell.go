package internal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync/atomic"

	"github.com/dmitrymomot/corex/pkg/logger"
)

// Shell lifecycle states.
const (
	stateConfiguring int32 = iota
	stateBuilt
	stateRunning
)

// Shell owns the router and the ordered set of registered extensions.
// It accepts registrations until Build or Run is called; either call
// consumes the shell.
//
// Registration is not synchronized. Callers that register from several
// goroutines must serialize the calls themselves.
type Shell struct {
	router                  *routeAdapter
	logger                  *slog.Logger
	errorHandler            ErrorHandler
	notFoundHandler         HandlerFunc
	methodNotAllowedHandler HandlerFunc
	host                    string
	extensions              []Extension
	state                   atomic.Int32
	port                    uint16
}

// New creates a shell bound to host:port in the configuring state.
// No I/O is performed.
//
// Example:
//
//	shell := corex.New("127.0.0.1", 8080,
//	    corex.WithLogger(log),
//	    corex.WithExtensions(users.New(repo), billing.New(client)),
//	)
func New(host string, port uint16, opts ...Option) *Shell {
	s := &Shell{
		router: newRootRouter(),
		logger: logger.New(),
		host:   host,
		port:   port,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Register appends extensions to the registration sequence.
// Extensions are not validated: duplicates, including the same value
// registered twice, are applied as many times as they are registered.
// Returns ErrShellConsumed once the shell has been built or run.
func (s *Shell) Register(ext ...Extension) error {
	if s.state.Load() != stateConfiguring {
		return ErrShellConsumed
	}
	s.extensions = append(s.extensions, ext...)
	return nil
}

// Addr returns the bind address formatted as host:port. An IPv6 host may
// be given with or without brackets.
func (s *Shell) Addr() string {
	host := s.host
	if inner, ok := strings.CutPrefix(host, "["); ok {
		host = strings.TrimSuffix(inner, "]")
	}
	return net.JoinHostPort(host, strconv.Itoa(int(s.port)))
}

// Build applies every registered extension in registration order and
// returns the finalized router. The shell is consumed even when the build
// fails; a failed shell must be discarded.
func (s *Shell) Build() (*BuiltRouter, error) {
	if !s.state.CompareAndSwap(stateConfiguring, stateBuilt) {
		return nil, ErrShellConsumed
	}
	return s.build()
}

// Run builds the router, binds a TCP listener at host:port and serves
// until the run context is cancelled (SIGINT/SIGTERM by default).
// A bind failure is returned immediately, wrapped with ErrBind.
//
// Example:
//
//	shell := corex.New("0.0.0.0", 8080, corex.WithExtensions(api.New()))
//	if err := shell.Run(corex.ShutdownTimeout(10 * time.Second)); err != nil {
//	    log.Fatal(err)
//	}
func (s *Shell) Run(opts ...RunOption) error {
	if !s.state.CompareAndSwap(stateConfiguring, stateBuilt) {
		return ErrShellConsumed
	}

	cfg := buildRunConfig(opts...)

	built, err := s.build()
	if err != nil {
		return err
	}

	s.state.Store(stateRunning)

	return runServer(runtimeConfig{
		handler:         built,
		address:         s.Addr(),
		logger:          s.logger,
		shutdownTimeout: cfg.shutdownTimeout,
		shutdownHooks:   cfg.shutdownHooks,
		listenHooks:     cfg.listenHooks,
		baseCtx:         cfg.baseCtx,
	})
}

// build folds the extensions over the router and materializes the result.
func (s *Shell) build() (*BuiltRouter, error) {
	var r Router = s.router
	for i, ext := range s.extensions {
		next, err := s.extend(r, ext)
		if err != nil {
			s.logger.Error("extension failed", slog.Int("position", i), slog.Any("error", err))
			return nil, err
		}
		r = next
		s.logger.Debug("extension applied",
			slog.String("extension", ext.Name()),
			slog.Int("position", i),
		)
	}

	built, err := s.materialize(r.routeTable())
	if err != nil {
		s.logger.Error("router build failed", slog.Any("error", err))
		return nil, err
	}

	s.logger.Info("router built",
		slog.Int("extensions", len(s.extensions)),
		slog.Int("routes", len(built.routes)),
	)
	return built, nil
}

// extend applies one extension, turning a panic or a nil result into a BuildError.
func (s *Shell) extend(r Router, ext Extension) (next Router, err error) {
	table := r.routeTable()
	var name string

	defer func() {
		table.extension = ""
		if v := recover(); v != nil {
			next = nil
			err = &BuildError{Extension: name, Err: fmt.Errorf("panic: %v", v)}
		}
	}()

	name = ext.Name()
	table.extension = name

	next = ext.Extend(r)
	if next == nil {
		return nil, &BuildError{Extension: name, Err: ErrNilRouter}
	}
	return next, nil
}

// adaptHandler converts a HandlerFunc to http.HandlerFunc using the shell's error handler.
func (s *Shell) adaptHandler(h HandlerFunc, extension string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := newContext(w, r, s.logger, extension)
		if err := h(c); err != nil {
			s.handleError(c, err)
		}
	}
}

// adaptMiddleware converts a corex Middleware to chi middleware.
// This adapter allows middleware to be written using the Context interface
// while satisfying chi's http.Handler-based middleware signature.
func (s *Shell) adaptMiddleware(mw Middleware, extension string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextFunc := func(c Context) error {
				next.ServeHTTP(c.Response(), c.Request())
				return nil
			}
			wrapped := mw(nextFunc)
			c := newContext(w, r, s.logger, extension)
			if err := wrapped(c); err != nil {
				s.handleError(c, err)
			}
		})
	}
}

// handleError handles errors from handlers using the configured error handler.
func (s *Shell) handleError(c Context, err error) {
	if c.Written() {
		return
	}
	if s.errorHandler != nil {
		if herr := s.errorHandler(c, err); herr == nil {
			return
		}
		if c.Written() {
			return
		}
	}

	if httpErr := AsHTTPError(err); httpErr != nil {
		http.Error(c.Response(), httpErr.Message, httpErr.Code)
		return
	}

	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		http.Error(c.Response(), http.StatusText(http.StatusRequestEntityTooLarge), http.StatusRequestEntityTooLarge)
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		c.LogWarn("handler deadline exceeded", slog.String("extension", c.Extension()), slog.Any("error", err))
		http.Error(c.Response(), http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
		return
	}

	c.LogError("handler error", slog.String("extension", c.Extension()), slog.Any("error", err))
	http.Error(c.Response(), "Internal Server Error", http.StatusInternalServerError)
}
