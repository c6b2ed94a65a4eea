// Package health provides liveness and readiness HTTP handlers.
//
// [LivenessHandler] always answers OK while the process runs.
// [ReadinessHandler] runs named [Checks] concurrently and answers 503 if any fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//		"smtp": sender.Ping,
//	}, health.WithTimeout(3*time.Second), health.WithLogger(log)))
//
// Responses are plain text ("OK" or "Service Unavailable") unless the client
// sends Accept: application/json or ?format=json:
//
//	{"status":"unhealthy","checks":{"smtp":{"status":"unhealthy","error":"dial tcp: connection refused"}}}
package health
