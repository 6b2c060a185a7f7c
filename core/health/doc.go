// Package health serves the liveness and readiness probes.
//
// Liveness answers "ALIVE" as long as the process can serve HTTP. Readiness
// runs every check with the request context and answers "READY", or 503 with
// the first failure logged:
//
//	r.Get("/health/live", health.Liveness)
//	r.Get("/health/ready", health.Readiness(log, st.Ping))
package health
