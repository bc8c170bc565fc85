package cache

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/renderfront/tiercache/config"
	"github.com/renderfront/tiercache/internal/fast"
	"github.com/renderfront/tiercache/internal/persist"
	"github.com/renderfront/tiercache/internal/writeback"
)

type fixture struct {
	cache   *Cache
	fast    *fast.Tier
	persist *persist.Tier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	cfg := &config.Cache{
		Fast: config.FastCfg{
			MaxEntries:  16,
			StandardTTL: time.Hour,
			ShortTTL:    time.Minute,
		},
		Persist: &config.PersistCfg{
			Dir:         t.TempDir(),
			Ext:         ".png",
			LegacyExt:   ".jpg",
			TTL:         time.Hour,
			QueueSize:   64,
			DrainPerSec: 10_000,
		},
		Admin: &config.AdminCfg{Secret: "sekrit"},
	}

	persistTier, err := persist.New(cfg.Persist)
	require.NoError(t, err)

	queue := writeback.New(t.Context(), cfg.Persist.QueueSize, cfg.Persist.DrainPerSec, slog.Default(), persistTier)
	t.Cleanup(func() { _ = queue.Close() })

	fastTier := fast.New(nil)
	return &fixture{
		cache:   New(cfg, slog.Default(), fastTier, persistTier, queue),
		fast:    fastTier,
		persist: persistTier,
	}
}

func TestCache_StoreThenGetCachedRoundTrip(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	f.cache.Store(ctx, "profile:dark", []byte("artifact"), true)

	res, ok := f.cache.GetCached(ctx, "profile:dark")
	require.True(t, ok)
	require.Equal(t, []byte("artifact"), res.Payload)
	require.Equal(t, SourceFast, res.Source)
	require.Equal(t, time.Hour, res.TTL)
}

// TestCache_TrustGatedPersistence: untrusted artifacts never reach disk even
// though they are served from the fast tier within their short TTL.
func TestCache_TrustGatedPersistence(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	f.cache.Store(ctx, "k", []byte("untrusted"), false)

	res, ok := f.cache.GetCached(ctx, "k")
	require.True(t, ok)
	require.Equal(t, SourceFast, res.Source)
	require.Equal(t, time.Minute, res.TTL)

	// give the write-back worker a moment; nothing may appear on disk
	time.Sleep(50 * time.Millisecond)
	_, persisted := f.persist.Read("k")
	require.False(t, persisted)
}

func TestCache_TrustedWritePersists(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	f.cache.Store(ctx, "k", []byte("trusted"), true)

	require.Eventually(t, func() bool {
		_, ok := f.persist.Read("k")
		return ok
	}, time.Second, 5*time.Millisecond)
}

// TestCache_Promotion: a key seeded only on disk is served from the
// persistent tier once, then from the fast tier.
func TestCache_Promotion(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	f.persist.Write("k", []byte("durable"))

	res, ok := f.cache.GetCached(ctx, "k")
	require.True(t, ok)
	require.Equal(t, SourcePersistent, res.Source)
	require.Equal(t, []byte("durable"), res.Payload)
	require.Equal(t, time.Hour, res.TTL) // promoted with the standard TTL

	res, ok = f.cache.GetCached(ctx, "k")
	require.True(t, ok)
	require.Equal(t, SourceFast, res.Source)
}

func TestCache_MissMetrics(t *testing.T) {
	f := newFixture(t)

	_, ok := f.cache.GetCached(t.Context(), "absent")
	require.False(t, ok)

	fastHits, persistentHits, misses, stores := f.cache.CacheMetrics()
	require.Equal(t, int64(0), fastHits)
	require.Equal(t, int64(0), persistentHits)
	require.Equal(t, int64(1), misses)
	require.Equal(t, int64(0), stores)
}

func TestCache_FetchRendersOnMissAndCaches(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	var renders atomic.Int64
	render := func(context.Context) ([]byte, error) {
		renders.Add(1)
		return []byte("rendered"), nil
	}

	res, err := f.cache.Fetch(ctx, "k", true, render)
	require.NoError(t, err)
	require.Equal(t, SourceMiss, res.Source)
	require.Equal(t, []byte("rendered"), res.Payload)

	res, err = f.cache.Fetch(ctx, "k", true, render)
	require.NoError(t, err)
	require.Equal(t, SourceFast, res.Source)
	require.Equal(t, int64(1), renders.Load())
}

// TestCache_FetchCoalescesConcurrentMisses: concurrent misses on one key
// share a single render call.
func TestCache_FetchCoalescesConcurrentMisses(t *testing.T) {
	f := newFixture(t)
	ctx := t.Context()

	var renders atomic.Int64
	gate := make(chan struct{})
	render := func(context.Context) ([]byte, error) {
		renders.Add(1)
		<-gate
		return []byte("rendered"), nil
	}

	const callers = 8
	var wg sync.WaitGroup
	results := make([]Result, callers)
	wg.Add(callers)
	for i := 0; i < callers; i++ {
		go func(i int) {
			defer wg.Done()
			res, err := f.cache.Fetch(ctx, "k", true, render)
			require.NoError(t, err)
			results[i] = res
		}(i)
	}

	// let every caller reach the flight before the render completes
	time.Sleep(50 * time.Millisecond)
	close(gate)
	wg.Wait()

	require.Equal(t, int64(1), renders.Load())
	for _, res := range results {
		require.Equal(t, []byte("rendered"), res.Payload)
	}
}

func TestCache_FetchRenderErrorPropagates(t *testing.T) {
	f := newFixture(t)

	boom := errors.New("renderer down")
	_, err := f.cache.Fetch(t.Context(), "k", true, func(context.Context) ([]byte, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)

	_, ok := f.cache.GetCached(t.Context(), "k")
	require.False(t, ok)
}

func TestResult_Metadata(t *testing.T) {
	res := Result{Key: "profile:dark", Source: SourceFast, TTL: 90 * time.Second}

	require.Equal(t, "HIT-FAST", res.Status())
	require.Equal(t, "public, max-age=90", res.CacheControl())

	tag := res.ETag()
	require.True(t, len(tag) > 2 && tag[0] == '"' && tag[len(tag)-1] == '"')
	require.Equal(t, tag, Result{Key: "profile:dark"}.ETag())
}
