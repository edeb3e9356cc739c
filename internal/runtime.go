package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// Default server timeouts (hardcoded, opinionated).
const (
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second
)

// runtimeConfig holds configuration for running the HTTP server.
type runtimeConfig struct {
	handler         http.Handler
	baseCtx         context.Context
	logger          *slog.Logger
	address         string
	shutdownHooks   []func(context.Context) error
	listenHooks     []func(net.Addr)
	shutdownTimeout time.Duration
}

// runServer binds the listener, serves the handler and blocks until shutdown.
// The listener is bound exactly once; a bind error is returned without retry.
func runServer(cfg runtimeConfig) error {
	if cfg.shutdownTimeout == 0 {
		cfg.shutdownTimeout = defaultShutdownTimeout
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	server := &http.Server{
		Addr:              cfg.address,
		Handler:           cfg.handler,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
	}

	baseCtx := cfg.baseCtx
	if baseCtx == nil {
		baseCtx = context.Background()
	}
	ctx, cancel := signal.NotifyContext(baseCtx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		logger.Error("failed to bind listener", slog.String("address", cfg.address), slog.Any("error", err))
		return fmt.Errorf("%w: %w", ErrBind, err)
	}

	for _, fn := range cfg.listenHooks {
		fn(ln.Addr())
	}

	logger.Info("Server running at http://"+displayAddr(cfg.address, ln.Addr()),
		slog.String("address", ln.Addr().String()),
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()

		logger.Info("shutting down server")
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.shutdownTimeout)
		defer shutdownCancel()

		var errs []error

		// 1. Stop HTTP server
		if err := server.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, err)
		}

		// 2. Run shutdown hooks (close DB, etc.)
		for _, hook := range cfg.shutdownHooks {
			if err := hook(shutdownCtx); err != nil {
				errs = append(errs, err)
				logger.Error("shutdown hook failed", slog.Any("error", err))
			}
		}

		if len(errs) > 0 {
			logger.Error("shutdown completed with errors")
			return errors.Join(errs...)
		}

		logger.Info("shutdown completed")
		return nil
	})

	return g.Wait()
}

// displayAddr keeps the configured host and substitutes the bound port,
// so port 0 shows the ephemeral port actually in use.
func displayAddr(configured string, bound net.Addr) string {
	host, _, err := net.SplitHostPort(configured)
	if err != nil {
		return bound.String()
	}
	tcp, ok := bound.(*net.TCPAddr)
	if !ok {
		return configured
	}
	return net.JoinHostPort(host, strconv.Itoa(tcp.Port))
}
