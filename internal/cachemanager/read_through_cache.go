package cachemanager

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"
)

// ReadThroughCache loads missing entries through fn. Concurrent misses for
// the same key share one call to fn.
type ReadThroughCache[K ~string, V any, I any] struct {
	cache     CacheManager[K, V]
	fn        func(ctx context.Context, input I) (V, error)
	cacheable func(V) bool
	skip      bool
	group     singleflight.Group
}

// NewReadThroughCache creates a read-through cache. cacheable decides which
// loaded values are stored; nil stores every value. A skipping cache always
// calls fn.
func NewReadThroughCache[K ~string, V any, I any](
	cache CacheManager[K, V],
	fn func(ctx context.Context, input I) (V, error),
	cacheable func(V) bool,
	shouldSkipCache bool,
) *ReadThroughCache[K, V, I] {
	return &ReadThroughCache[K, V, I]{
		cache:     cache,
		fn:        fn,
		cacheable: cacheable,
		skip:      shouldSkipCache,
	}
}

// Get returns the cached value for key or loads it from input. hit reports
// whether the value came from the cache.
func (r *ReadThroughCache[K, V, I]) Get(ctx context.Context, key K, input I, ttl time.Duration) (value V, hit bool, err error) {
	if r.skip {
		value, err = r.fn(ctx, input)
		return value, false, err
	}

	if value, ok := r.cache.Get(ctx, key); ok {
		return value, true, nil
	}

	v, err, _ := r.group.Do(string(key), func() (any, error) {
		loaded, err := r.fn(ctx, input)
		if err != nil {
			return loaded, err
		}
		if r.cacheable == nil || r.cacheable(loaded) {
			r.cache.Set(ctx, key, loaded, ttl)
		}
		return loaded, nil
	})
	value, _ = v.(V)
	return value, false, err
}

// Forget drops key from the cache and from any pending load.
func (r *ReadThroughCache[K, V, I]) Forget(ctx context.Context, key K) {
	r.group.Forget(string(key))
	r.cache.Delete(ctx, key)
}
