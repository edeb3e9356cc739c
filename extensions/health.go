package extensions

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/dmitrymomot/corex"
	"github.com/dmitrymomot/corex/pkg/health"
)

// Default health endpoint paths.
const (
	DefaultLivenessPath  = "/health/live"
	DefaultReadinessPath = "/health/ready"
)

type healthConfig struct {
	checks        health.Checks
	logger        *slog.Logger
	livenessPath  string
	readinessPath string
	timeout       time.Duration
}

// HealthOption configures the health extension.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
func WithLivenessPath(path string) HealthOption {
	return func(cfg *healthConfig) {
		cfg.livenessPath = path
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
func WithReadinessPath(path string) HealthOption {
	return func(cfg *healthConfig) {
		cfg.readinessPath = path
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel on every readiness probe.
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(cfg *healthConfig) {
		cfg.checks[name] = fn
	}
}

// WithHealthTimeout bounds one readiness probe. Default 5s.
func WithHealthTimeout(d time.Duration) HealthOption {
	return func(cfg *healthConfig) {
		cfg.timeout = d
	}
}

// WithHealthLogger logs failed readiness checks.
func WithHealthLogger(l *slog.Logger) HealthOption {
	return func(cfg *healthConfig) {
		cfg.logger = l
	}
}

// Health returns an extension that serves liveness and readiness probes.
// Both endpoints answer GET and HEAD.
//
// Example:
//
//	extensions.Health(
//	    extensions.WithReadinessCheck("postgres", db.Healthcheck(pool)),
//	    extensions.WithReadinessCheck("redis", redis.Healthcheck(client)),
//	)
func Health(opts ...HealthOption) corex.Extension {
	cfg := &healthConfig{
		checks:        make(health.Checks),
		livenessPath:  DefaultLivenessPath,
		readinessPath: DefaultReadinessPath,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	live := health.LivenessHandler()
	ready := health.ReadinessHandler(cfg.checks,
		health.WithTimeout(cfg.timeout),
		health.WithLogger(cfg.logger),
	)

	return corex.NewExtension("health", func(r corex.Router) {
		r.GET(cfg.livenessPath, serveHandler(live))
		r.HEAD(cfg.livenessPath, serveHandler(live))
		r.GET(cfg.readinessPath, serveHandler(ready))
		r.HEAD(cfg.readinessPath, serveHandler(ready))
	})
}

// serveHandler adapts a plain http.Handler to a route handler.
func serveHandler(h http.Handler) corex.HandlerFunc {
	return func(c corex.Context) error {
		h.ServeHTTP(c.Response(), c.Request())
		return nil
	}
}
