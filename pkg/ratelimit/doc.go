// Package ratelimit counts hits per key in fixed windows.
//
// A [Limiter] applies a limit on top of a [Store]. [Memory] keeps counters
// in process; [Redis] shares them between replicas.
//
//	l := ratelimit.New(ratelimit.NewMemory(), ratelimit.Config{Limit: 5, Window: time.Minute})
//	defer l.Close()
//
//	res, err := l.Allow(ctx, clientIP)
//	if err == nil && !res.Allowed {
//		// reject until res.ResetAt
//	}
package ratelimit
