// Package redis opens and probes a go-redis client.
//
// Open validates the URL scheme, applies pool and timeout options and pings
// the server with startup retries. Healthcheck plugs into pkg/health and
// Shutdown into the shell's shutdown hooks:
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"), redis.WithLogger(log))
//	if err != nil {
//		return err
//	}
//	checks := health.Checks{"redis": redis.Healthcheck(client)}
//	shell.Run(corex.ShutdownHook(redis.Shutdown(client)))
package redis
