// Package redis opens go-redis clients from a [Config] and provides the
// readiness check and shutdown hook the server registers for them.
//
//	client, err := redis.Open(ctx, cfg.Redis)
//	if err != nil {
//		return err
//	}
//
//	formrelay.WithHealthChecks(formrelay.WithReadinessCheck("redis", redis.Healthcheck(client)))
//
// Open accepts redis:// and rediss:// URLs and retries the initial ping;
// failures wrap [ErrConnectionFailed] with the last ping error.
package redis
