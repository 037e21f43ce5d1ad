package service

import (
	"context"
	"time"

	"github.com/zjrosen/relens/internal/cachemanager"
	"github.com/zjrosen/relens/internal/log"
)

// CachedClient serves repeated snapshots from a TTL cache. Identical
// snapshots in flight at the same time share one upstream call. Failed
// results are never cached.
type CachedClient struct {
	next Client
	ttl  time.Duration
	rtc  *cachemanager.ReadThroughCache[string, Result, Snapshot]
}

// NewCachedClient wraps next. A non-positive ttl uses the cache default.
func NewCachedClient(next Client, cache cachemanager.CacheManager[string, Result], ttl time.Duration) *CachedClient {
	if ttl <= 0 {
		ttl = cachemanager.DefaultExpiration
	}
	c := &CachedClient{next: next, ttl: ttl}
	c.rtc = cachemanager.NewReadThroughCache[string, Result, Snapshot](
		cache,
		func(ctx context.Context, s Snapshot) (Result, error) {
			return next.Run(ctx, s), nil
		},
		func(r Result) bool { return !r.Failed() },
		false,
	)
	return c
}

// Run implements Client.
func (c *CachedClient) Run(ctx context.Context, s Snapshot) Result {
	key := s.Key()
	res, hit, err := c.rtc.Get(ctx, key, s, c.ttl)
	if err != nil {
		return NetworkError(err)
	}
	if hit {
		log.Debug(log.CatCache, "served result from cache", "key", key)
	}
	return cloneResult(res)
}

// cloneResult copies the acceptance slice so callers cannot alias a cached
// entry.
func cloneResult(r Result) Result {
	if r.Accepted != nil {
		r.Accepted = append([]Acceptance(nil), r.Accepted...)
	}
	return r
}
