package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// hitScript increments the counter, opens the window on the first hit and
// returns the count with the remaining TTL in milliseconds.
var hitScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("PEXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("PTTL", KEYS[1])}
`)

// Redis is a Store shared through Redis. The client is owned by the caller.
type Redis struct {
	client redis.UniversalClient
	prefix string
}

// NewRedis creates a Redis store. Keys are stored as prefix:key.
func NewRedis(client redis.UniversalClient, prefix string) *Redis {
	if prefix == "" {
		prefix = "ratelimit"
	}
	return &Redis{client: client, prefix: prefix}
}

// Hit implements Store.
func (r *Redis) Hit(ctx context.Context, key string, d time.Duration) (int64, time.Time, error) {
	res, err := hitScript.Run(ctx, r.client, []string{r.prefix + ":" + key}, d.Milliseconds()).Int64Slice()
	if err != nil {
		return 0, time.Time{}, fmt.Errorf("ratelimit: %w", err)
	}
	if len(res) != 2 {
		return 0, time.Time{}, fmt.Errorf("ratelimit: unexpected script reply %v", res)
	}

	ttl := time.Duration(res[1]) * time.Millisecond
	if ttl < 0 {
		ttl = d
	}
	return res[0], time.Now().Add(ttl), nil
}

// Close is a no-op; close the client with pkg/redis.Shutdown.
func (r *Redis) Close() error {
	return nil
}
