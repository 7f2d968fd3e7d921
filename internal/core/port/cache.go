package port

import (
	"context"
	"time"
)

//go:generate mockgen -source=$GOFILE -destination=mock/$GOFILE -package=mock

// CachePort stores values of T under string keys. Get reports a miss as
// (nil, nil); errors mean the cache itself is unreachable.
type CachePort[T any] interface {
	Get(ctx context.Context, key string) (*T, error)
	Set(ctx context.Context, key string, value *T, ttl time.Duration) error
	// SetNX stores value only when key is absent and reports whether it did.
	SetNX(ctx context.Context, key string, value *T, ttl time.Duration) (bool, error)
	Del(ctx context.Context, key string) error
}

// VersionedCachePort keeps one value per key tagged with the version it was
// read at. A write whose version is not above the stored one is dropped, so
// an older snapshot never replaces a newer one. Invalidate drops the value
// but keeps the version, which blocks reads taken before it from
// repopulating the key.
type VersionedCachePort[T any] interface {
	Get(ctx context.Context, key string) (*T, error)
	SetIfNewer(ctx context.Context, key string, value *T, version int64, ttl time.Duration) (bool, error)
	Invalidate(ctx context.Context, key string, version int64, ttl time.Duration) error
}
