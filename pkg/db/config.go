package db

import "time"

// Config holds PostgreSQL pool parameters.
// Zero values are replaced by the defaults noted on each field.
type Config struct {
	// URL is a postgres:// connection string. Required.
	URL string `yaml:"url"`

	// HealthCheckPeriod between pool-internal idle checks. Default 1m.
	HealthCheckPeriod time.Duration `yaml:"health_check_period"`

	// MaxConnIdleTime before an idle connection is closed. Default 10m.
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`

	// MaxConnLifetime before a connection is recycled. Default 30m.
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`

	// RetryInterval is the base delay; attempt n waits n*RetryInterval. Default 2s.
	RetryInterval time.Duration `yaml:"retry_interval"`

	// RetryAttempts at startup. Default 3.
	RetryAttempts int `yaml:"retry_attempts"`

	// MaxConns in the pool. Default 10.
	MaxConns int32 `yaml:"max_conns"`

	// MinConns kept open. Default 2.
	MinConns int32 `yaml:"min_conns"`
}

// Finalize fills zero fields with defaults and validates the result.
func (c *Config) Finalize() error {
	if c.URL == "" {
		return ErrMissingURL
	}
	if c.HealthCheckPeriod <= 0 {
		c.HealthCheckPeriod = time.Minute
	}
	if c.MaxConnIdleTime <= 0 {
		c.MaxConnIdleTime = 10 * time.Minute
	}
	if c.MaxConnLifetime <= 0 {
		c.MaxConnLifetime = 30 * time.Minute
	}
	if c.RetryInterval <= 0 {
		c.RetryInterval = 2 * time.Second
	}
	if c.RetryAttempts <= 0 {
		c.RetryAttempts = 3
	}
	if c.MaxConns <= 0 {
		c.MaxConns = 10
	}
	if c.MinConns <= 0 || c.MinConns > c.MaxConns {
		c.MinConns = min(2, c.MaxConns)
	}
	return nil
}
