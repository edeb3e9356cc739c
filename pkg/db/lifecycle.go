package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Healthcheck returns a readiness check that pings the pool.
// It plugs into extensions.WithReadinessCheck.
func Healthcheck(pool *pgxpool.Pool) func(context.Context) error {
	return func(ctx context.Context) error {
		if pool == nil {
			return ErrHealthcheckFailed
		}
		if err := pool.Ping(ctx); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}

// Shutdown returns a shutdown hook that closes the pool once in-flight
// queries finish. A nil pool is a no-op.
//
//	shell.Run(corex.ShutdownHook(db.Shutdown(pool)))
func Shutdown(pool *pgxpool.Pool) func(context.Context) error {
	return func(context.Context) error {
		if pool != nil {
			pool.Close()
		}
		return nil
	}
}
