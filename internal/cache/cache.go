package cache

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/renderfront/tiercache/config"
	"github.com/renderfront/tiercache/internal/fast"
	"github.com/renderfront/tiercache/internal/persist"
	"github.com/renderfront/tiercache/internal/writeback"
)

// RenderFunc produces the artifact for a key. It is the expensive external
// collaborator this cache fronts.
type RenderFunc func(ctx context.Context) ([]byte, error)

type Cacher interface {
	GetCached(ctx context.Context, key string) (Result, bool)
	Store(ctx context.Context, key string, payload []byte, trusted bool)
	Fetch(ctx context.Context, key string, trusted bool, render RenderFunc) (Result, error)
	CacheMetrics() (fastHits, persistentHits, misses, stores int64)
}

// Cache composes the two tiers: lookups go fast → persistent → miss, with
// lazy promotion on a persistent hit; writes apply a trust-dependent TTL and
// persist only trusted artifacts, through the background write-back queue.
type Cache struct {
	cfg      *config.Cache
	logger   *slog.Logger
	fast     *fast.Tier
	persist  *persist.Tier // nil when the persistent tier is disabled
	queue    *writeback.Queue
	group    singleflight.Group
	counters *counters
}

func New(
	cfg *config.Cache,
	logger *slog.Logger,
	fastTier *fast.Tier,
	persistTier *persist.Tier,
	queue *writeback.Queue,
) *Cache {
	return &Cache{
		cfg:      cfg,
		logger:   logger,
		fast:     fastTier,
		persist:  persistTier,
		queue:    queue,
		counters: newCounters(),
	}
}

// GetCached looks the key up in the fast tier, then the persistent tier.
// A persistent hit is promoted into the fast tier with the standard
// (trusted-length) TTL regardless of how the caller will treat this
// particular response.
func (c *Cache) GetCached(_ context.Context, key string) (Result, bool) {
	if payload, ttl, ok := c.fast.Get(key); ok {
		c.counters.fastHits.Add(1)
		return Result{Key: key, Payload: payload, Source: SourceFast, TTL: ttl}, true
	}

	if c.persist != nil {
		if payload, ok := c.persist.Read(key); ok {
			c.fast.Put(key, payload, c.cfg.Fast.StandardTTL)
			c.counters.persistentHits.Add(1)
			return Result{Key: key, Payload: payload, Source: SourcePersistent, TTL: c.cfg.Fast.StandardTTL}, true
		}
	}

	c.counters.misses.Add(1)
	return Result{}, false
}

// Store writes the rendered artifact. Trusted callers get the standard TTL
// and a durable copy; untrusted callers get the short TTL and stay in memory
// only, which bounds what unauthenticated traffic can put on disk.
func (c *Cache) Store(_ context.Context, key string, payload []byte, trusted bool) {
	ttl := c.ttlFor(trusted)
	c.fast.Put(key, payload, ttl)
	c.counters.stores.Add(1)

	if trusted && c.queue != nil {
		c.queue.Submit(key, payload)
	}
}

// Fetch is the coalesced read-through path: a cached result is returned
// directly; otherwise concurrent misses on the same key share a single
// render call, and the winner's result is stored and fanned out.
//
// GetCached/Store keep the raw, uncoalesced contract for callers that manage
// rendering themselves.
func (c *Cache) Fetch(ctx context.Context, key string, trusted bool, render RenderFunc) (Result, error) {
	if res, ok := c.GetCached(ctx, key); ok {
		return res, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// a concurrent flight may have stored the key since our miss
		if res, ok := c.GetCached(ctx, key); ok {
			return res, nil
		}
		payload, err := render(ctx)
		if err != nil {
			return Result{}, err
		}
		c.Store(ctx, key, payload, trusted)
		return Result{Key: key, Payload: payload, Source: SourceMiss, TTL: c.ttlFor(trusted)}, nil
	})
	if err != nil {
		return Result{}, err
	}
	return v.(Result), nil
}

func (c *Cache) CacheMetrics() (fastHits, persistentHits, misses, stores int64) {
	return c.counters.snapshot()
}

func (c *Cache) ttlFor(trusted bool) time.Duration {
	if trusted {
		return c.cfg.Fast.StandardTTL
	}
	return c.cfg.Fast.ShortTTL
}
