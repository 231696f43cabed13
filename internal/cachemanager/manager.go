// Package cachemanager provides a TTL cache used for expensive render work.
package cachemanager

import (
	"context"
	"time"
)

// CacheManager is a generic TTL cache.
type CacheManager[K ~string, V any] interface {
	Get(ctx context.Context, key K) (V, bool)
	Set(ctx context.Context, key K, value V, ttl time.Duration)
	Delete(ctx context.Context, keys ...K) error
	Flush(ctx context.Context) error
}
