package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/rafaelleal24/inventory/internal/core/port"
)

// Each key is a hash holding the encoded value and the version it was read at.
var setIfNewerScript = goredis.NewScript(`
local current = tonumber(redis.call('HGET', KEYS[1], 'version'))
if current and current >= tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'version', ARGV[1], 'value', ARGV[2])
redis.call('PEXPIRE', KEYS[1], ARGV[3])
return 1
`)

// The value is always dropped; the version only moves forward.
var invalidateScript = goredis.NewScript(`
redis.call('HDEL', KEYS[1], 'value')
local current = tonumber(redis.call('HGET', KEYS[1], 'version'))
if not current or current < tonumber(ARGV[1]) then
	redis.call('HSET', KEYS[1], 'version', ARGV[1])
end
redis.call('PEXPIRE', KEYS[1], ARGV[2])
return 1
`)

type VersionedCache[T any] struct {
	rdb    *goredis.Client
	prefix string
}

func NewVersionedCache[T any](client *Client, prefix string) port.VersionedCachePort[T] {
	return &VersionedCache[T]{rdb: client.rdb, prefix: prefix}
}

func (c *VersionedCache[T]) key(id string) string {
	return fmt.Sprintf("%s:%s", c.prefix, id)
}

func (c *VersionedCache[T]) Get(ctx context.Context, id string) (*T, error) {
	data, err := c.rdb.HGet(ctx, c.key(id), "value").Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decode cached %s: %w", c.key(id), err)
	}
	return &value, nil
}

func (c *VersionedCache[T]) SetIfNewer(ctx context.Context, id string, value *T, version int64, ttl time.Duration) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, err
	}
	stored, err := setIfNewerScript.Run(ctx, c.rdb, []string{c.key(id)}, version, data, ttl.Milliseconds()).Int()
	if err != nil {
		return false, err
	}
	return stored == 1, nil
}

func (c *VersionedCache[T]) Invalidate(ctx context.Context, id string, version int64, ttl time.Duration) error {
	return invalidateScript.Run(ctx, c.rdb, []string{c.key(id)}, version, ttl.Milliseconds()).Err()
}
