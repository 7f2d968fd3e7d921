package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rafaelleal24/inventory/internal/adapters/http/middleware"
)

// Fixed window counter. Returns the hit count and the window's remaining
// lifetime in milliseconds.
var rateLimitScript = goredis.NewScript(`
local count = redis.call('INCR', KEYS[1])
if count == 1 then
	redis.call('PEXPIRE', KEYS[1], ARGV[1])
end
return {count, redis.call('PTTL', KEYS[1])}
`)

type RateLimiter struct {
	rdb *goredis.Client
}

func NewRateLimiter(client *Client) middleware.RateLimiter {
	return &RateLimiter{rdb: client.rdb}
}

func (r *RateLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (middleware.Decision, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)
	values, err := rateLimitScript.Run(ctx, r.rdb, []string{redisKey}, window.Milliseconds()).Int64Slice()
	if err != nil {
		return middleware.Decision{}, err
	}
	if len(values) != 2 {
		return middleware.Decision{}, fmt.Errorf("unexpected rate limit reply: %v", values)
	}

	count, ttl := int(values[0]), time.Duration(values[1])*time.Millisecond
	remaining := limit - count
	if remaining < 0 {
		remaining = 0
	}
	return middleware.Decision{
		Allowed:    count <= limit,
		Remaining:  remaining,
		RetryAfter: ttl,
	}, nil
}
