// Package db opens and probes a PostgreSQL connection pool.
//
// It wraps [github.com/jackc/pgx/v5/pgxpool] with startup retries, a
// readiness check for pkg/health and a shutdown hook for the shell.
//
//	cfg := db.Config{URL: os.Getenv("DATABASE_URL")}
//	pool, err := db.Connect(ctx, cfg, log)
//	if err != nil {
//		return err
//	}
//
//	shell := corex.New(host, port, corex.WithExtensions(
//		extensions.Health(extensions.WithReadinessCheck("postgres", db.Healthcheck(pool))),
//	))
//	return shell.Run(corex.ShutdownHook(db.Shutdown(pool)))
//
// Zero-valued Config fields take the defaults listed on [Config].
package db
