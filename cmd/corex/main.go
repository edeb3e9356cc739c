// Command corex runs a sample server assembled from built-in extensions.
//
// Configuration comes from a YAML file (-config, default config.yaml), an
// optional .env file and COREX_* environment variables, in increasing order
// of precedence. PostgreSQL and Redis are connected only when their URLs are
// set and then back the readiness probe.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrymomot/corex"
	"github.com/dmitrymomot/corex/extensions"
	"github.com/dmitrymomot/corex/middlewares"
	"github.com/dmitrymomot/corex/pkg/db"
	"github.com/dmitrymomot/corex/pkg/logger"
	"github.com/dmitrymomot/corex/pkg/redis"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	if err := run(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "corex: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string) error {
	cfg, err := Load(configPath)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	log := logger.NewWithSentry(cfg.Logger(), cfg.Sentry, middlewares.RequestIDExtractor())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runOpts := []corex.RunOption{
		corex.WithContext(ctx),
		corex.ShutdownTimeout(cfg.ShutdownTimeout),
	}
	healthOpts := []extensions.HealthOption{
		extensions.WithHealthLogger(log),
	}

	if cfg.Database.URL != "" {
		pool, err := db.Connect(ctx, cfg.Database, log)
		if err != nil {
			return fmt.Errorf("database: %w", err)
		}
		healthOpts = append(healthOpts, extensions.WithReadinessCheck("postgres", db.Healthcheck(pool)))
		runOpts = append(runOpts, corex.ShutdownHook(db.Shutdown(pool)))
	}

	if cfg.Redis.URL != "" {
		client, err := redis.Open(ctx, cfg.Redis.URL, redis.WithLogger(log))
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		healthOpts = append(healthOpts, extensions.WithReadinessCheck("redis", redis.Healthcheck(client)))
		runOpts = append(runOpts, corex.ShutdownHook(redis.Shutdown(client)))
	}

	// Flush last so shutdown errors from the hooks above reach Sentry.
	runOpts = append(runOpts, corex.ShutdownHook(logger.Flush(2*time.Second)))

	shell := corex.New(cfg.Host, cfg.Port,
		corex.WithLogger(log),
		corex.WithExtensions(applicationExtensions(cfg, healthOpts)...),
	)
	return shell.Run(runOpts...)
}

// applicationExtensions lists the extensions in registration order.
// Later entries win on route conflicts.
func applicationExtensions(cfg *Config, healthOpts []extensions.HealthOption) []corex.Extension {
	exts := []corex.Extension{
		extensions.Middleware("observability",
			middlewares.RequestID(),
			middlewares.Logger(),
		),
	}
	if len(cfg.CORS.AllowOrigins) > 0 {
		exts = append(exts, extensions.Middleware("cors",
			middlewares.CORS(middlewares.WithAllowOrigins(cfg.CORS.AllowOrigins...)),
		))
	}
	return append(exts,
		extensions.Middleware("timeout", middlewares.Timeout(cfg.RequestTimeout)),
		// Inside Timeout so the panic is caught on the handler goroutine.
		extensions.Middleware("recover", middlewares.Recover()),
		extensions.BodyLimit(cfg.MaxBodySizeBytes()),
		extensions.Health(healthOpts...),
		extensions.Echo(),
	)
}
