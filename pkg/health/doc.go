// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] always answers OK while the process serves requests.
// [ReadinessHandler] runs a set of named [Checks] in parallel under a shared
// timeout and answers 503 when any of them fails.
//
// Both handlers negotiate the format: plain text by default, JSON when the
// request carries ?format=json or an Accept header containing
// application/json.
//
//	r.Handle("/health/live", health.LivenessHandler())
//	r.Handle("/health/ready", health.ReadinessHandler(health.Checks{
//	    "postgres": db.Healthcheck(pool),
//	    "redis":    redis.Healthcheck(client),
//	}, health.WithTimeout(2*time.Second)))
//
// A JSON readiness response looks like:
//
//	{"status":"unhealthy","checks":{"redis":{"status":"unhealthy","error":"dial tcp: connection refused","duration":"1.2ms"}}}
//
// Checks that outlive the timeout are reported with [ErrCheckTimeout];
// a check that panics is reported as failed instead of crashing the probe.
package health
