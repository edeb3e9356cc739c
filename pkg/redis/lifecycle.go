package redis

import (
	"context"
	"errors"
	"io"

	"github.com/redis/go-redis/v9"
)

// Healthcheck returns a readiness check that pings the client.
// It plugs into extensions.WithReadinessCheck.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a shutdown hook that closes the client. A nil client is a no-op.
//
//	shell.Run(corex.ShutdownHook(redis.Shutdown(client)))
func Shutdown(client io.Closer) func(context.Context) error {
	return func(context.Context) error {
		if client == nil {
			return nil
		}
		return client.Close()
	}
}
