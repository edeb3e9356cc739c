package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/docker/go-units"
	"github.com/joho/godotenv"
	"go-simpler.org/env"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/corex/pkg/db"
	"github.com/dmitrymomot/corex/pkg/logger"
)

// DefaultPort is used when neither the config file nor COREX_PORT sets a port.
// An explicit 0 asks the OS for an ephemeral port.
const DefaultPort uint16 = 8080

// Config is the application configuration.
type Config struct {
	Host            string        `yaml:"host"`
	Port            uint16        `yaml:"port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
	// MaxBodySize is a human readable size such as "1MB" or "512KB".
	MaxBodySize string `yaml:"max_body_size"`

	Log      LogConfig           `yaml:"log"`
	Sentry   logger.SentryConfig `yaml:"sentry"`
	Database db.Config           `yaml:"database"`
	Redis    RedisConfig         `yaml:"redis"`
	CORS     CORSConfig          `yaml:"cors"`

	maxBodySizeVal int64
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type RedisConfig struct {
	// URL is optional. Redis is not used when empty.
	URL string `yaml:"url"`
}

type CORSConfig struct {
	AllowOrigins []string `yaml:"allow_origins"`
}

// MaxBodySizeBytes returns the parsed body size limit.
// Valid only after Finalize.
func (c *Config) MaxBodySizeBytes() int64 {
	return c.maxBodySizeVal
}

// Logger returns the logger output settings.
func (c *Config) Logger() logger.Config {
	level, _ := logger.ParseLevel(c.Log.Level)
	return logger.Config{Format: c.Log.Format, Level: level}
}

// Load reads .env and the YAML file at path, then finalizes the result.
// Both files are optional so the service can be configured from the environment alone.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg := &Config{Port: DefaultPort}
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize fills unset values with defaults, applies environment overrides
// and validates the result. Port is not defaulted here since 0 is a valid
// choice; Load seeds DefaultPort before reading the file.
func (c *Config) Finalize() error {
	c.loadDefaults()
	if err := c.loadEnv(); err != nil {
		return err
	}
	return c.validate()
}

func (c *Config) loadDefaults() {
	if c.Host == "" {
		c.Host = "0.0.0.0"
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = 10 * time.Second
	}
	if c.RequestTimeout == 0 {
		c.RequestTimeout = 30 * time.Second
	}
	if c.MaxBodySize == "" {
		c.MaxBodySize = "1MB"
	}
	if c.Log.Format == "" {
		c.Log.Format = logger.FormatJSON
	}
}

// envOverrides lists the environment variables that win over the config
// file. A field keeps its current value when its variable is unset.
type envOverrides struct {
	Host            string        `env:"COREX_HOST"`
	Port            uint16        `env:"COREX_PORT"`
	ShutdownTimeout time.Duration `env:"COREX_SHUTDOWN_TIMEOUT"`
	RequestTimeout  time.Duration `env:"COREX_REQUEST_TIMEOUT"`
	MaxBodySize     string        `env:"COREX_MAX_BODY_SIZE"`
	LogLevel        string        `env:"COREX_LOG_LEVEL"`
	LogFormat       string        `env:"COREX_LOG_FORMAT"`
	SentryDSN       string        `env:"COREX_SENTRY_DSN"`
	Environment     string        `env:"COREX_ENV"`
	DatabaseURL     string        `env:"COREX_DATABASE_URL"`
	RedisURL        string        `env:"COREX_REDIS_URL"`
	CORSOrigins     []string      `env:"COREX_CORS_ORIGINS"`
}

func (c *Config) loadEnv() error {
	o := envOverrides{
		Host:            c.Host,
		Port:            c.Port,
		ShutdownTimeout: c.ShutdownTimeout,
		RequestTimeout:  c.RequestTimeout,
		MaxBodySize:     c.MaxBodySize,
		LogLevel:        c.Log.Level,
		LogFormat:       c.Log.Format,
		SentryDSN:       c.Sentry.DSN,
		Environment:     c.Sentry.Environment,
		DatabaseURL:     c.Database.URL,
		RedisURL:        c.Redis.URL,
		CORSOrigins:     c.CORS.AllowOrigins,
	}
	if err := env.Load(&o, &env.Options{SliceSep: ","}); err != nil {
		return fmt.Errorf("load environment: %w", err)
	}

	c.Host, c.Port = o.Host, o.Port
	c.ShutdownTimeout, c.RequestTimeout = o.ShutdownTimeout, o.RequestTimeout
	c.MaxBodySize = o.MaxBodySize
	c.Log.Level, c.Log.Format = o.LogLevel, o.LogFormat
	c.Sentry.DSN, c.Sentry.Environment = o.SentryDSN, o.Environment
	c.Database.URL = o.DatabaseURL
	c.Redis.URL = o.RedisURL
	c.CORS.AllowOrigins = o.CORSOrigins
	return nil
}

func (c *Config) validate() error {
	size, err := units.FromHumanSize(c.MaxBodySize)
	if err != nil {
		return fmt.Errorf("invalid max_body_size: %w", err)
	}
	if size <= 0 {
		return errors.New("max_body_size must be positive")
	}
	c.maxBodySizeVal = size

	if c.ShutdownTimeout < 0 || c.RequestTimeout < 0 {
		return errors.New("timeouts must not be negative")
	}

	if _, err := logger.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}
	switch c.Log.Format {
	case logger.FormatJSON, logger.FormatText:
	default:
		return fmt.Errorf("log: unknown format %q", c.Log.Format)
	}

	if c.Database.URL != "" {
		if err := c.Database.Finalize(); err != nil {
			return fmt.Errorf("database: %w", err)
		}
	}
	return nil
}
