package redis

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Option configures a Redis connection.
type Option func(*options)

type options struct {
	logger        *slog.Logger
	poolSize      int
	minIdleConns  int
	retryAttempts int
	retryInterval time.Duration
	readTimeout   time.Duration
	writeTimeout  time.Duration
	dialTimeout   time.Duration
}

func defaultOptions() *options {
	return &options{
		logger:        slog.New(slog.DiscardHandler),
		poolSize:      10,
		minIdleConns:  2,
		retryAttempts: 3,
		retryInterval: 2 * time.Second,
		readTimeout:   3 * time.Second,
		writeTimeout:  3 * time.Second,
		dialTimeout:   5 * time.Second,
	}
}

// WithPoolSize sets the maximum number of connections in the pool.
// Default: 10
func WithPoolSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.poolSize = n
		}
	}
}

// WithMinIdleConns sets the minimum number of idle connections kept open.
// Default: 2
func WithMinIdleConns(n int) Option {
	return func(o *options) {
		if n >= 0 {
			o.minIdleConns = n
		}
	}
}

// WithRetry configures startup retries. Attempt n waits n*interval.
// Default: 3 attempts, 2 second base interval.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// WithTimeouts sets read, write and dial timeouts. Zero keeps the default.
// Defaults: 3s read, 3s write, 5s dial.
func WithTimeouts(read, write, dial time.Duration) Option {
	return func(o *options) {
		if read > 0 {
			o.readTimeout = read
		}
		if write > 0 {
			o.writeTimeout = write
		}
		if dial > 0 {
			o.dialTimeout = dial
		}
	}
}

// WithLogger reports failed connection attempts.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// Open creates a Redis client and pings it, retrying with linear backoff.
// Supports both redis:// and rediss:// (TLS) URL schemes.
//
// Example:
//
//	client, err := redis.Open(ctx, "redis://localhost:6379/0",
//	    redis.WithPoolSize(20),
//	    redis.WithLogger(log),
//	)
func Open(ctx context.Context, url string, opts ...Option) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	redisOpts.PoolSize = o.poolSize
	redisOpts.MinIdleConns = o.minIdleConns
	redisOpts.ReadTimeout = o.readTimeout
	redisOpts.WriteTimeout = o.writeTimeout
	redisOpts.DialTimeout = o.dialTimeout

	return connect(ctx, redisOpts, o)
}

func connect(ctx context.Context, redisOpts *redis.Options, o *options) (redis.UniversalClient, error) {
	attempts := max(o.retryAttempts, 1)

	var lastErr error
	for i := range attempts {
		client := redis.NewClient(redisOpts)

		err := client.Ping(ctx).Err()
		if err == nil {
			o.logger.InfoContext(ctx, "redis connected", slog.String("addr", redisOpts.Addr))
			return client, nil
		}
		lastErr = err
		_ = client.Close()

		o.logger.WarnContext(ctx, "redis connection attempt failed",
			slog.Int("attempt", i+1),
			slog.Int("max_attempts", attempts),
			slog.Any("error", err),
		)

		if i == attempts-1 {
			break
		}
		if waitErr := wait(ctx, time.Duration(i+1)*o.retryInterval); waitErr != nil {
			return nil, errors.Join(ErrConnectionFailed, waitErr)
		}
	}

	return nil, errors.Join(ErrConnectionFailed, lastErr)
}

func wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
