package telemetry

import (
	"github.com/renderfront/tiercache/internal/admission"
	"github.com/renderfront/tiercache/internal/cache"
	"github.com/renderfront/tiercache/internal/sweeper"
	"github.com/renderfront/tiercache/internal/writeback"
)

type sampler struct {
	cache   cache.Cacher
	sweeper sweeper.Sweeper
	limiter admission.Limiter
	queue   *writeback.Queue // nil when the persistent tier is disabled
}

func newSampler(c cache.Cacher, s sweeper.Sweeper, l admission.Limiter, q *writeback.Queue) sampler {
	return sampler{cache: c, sweeper: s, limiter: l, queue: q}
}

// snapshot holds cumulative counters (monotonic).
type snapshot struct {
	fastHits       uint64
	persistentHits uint64
	misses         uint64
	stores         uint64

	sweepPasses  uint64
	sweepExpired uint64
	sweepTrimmed uint64

	admitAllowed  uint64
	admitRejected uint64
	admitErrors   uint64

	wbSubmitted uint64
	wbWritten   uint64
	wbDropped   uint64
}

func (s sampler) snapshot() snapshot {
	fastHits, persistentHits, misses, stores := s.cache.CacheMetrics()
	passes, expired, trimmed := s.sweeper.SweeperMetrics()
	allowed, rejected, errs := s.limiter.Metrics()

	snap := snapshot{
		fastHits:       uint64(max(fastHits, 0)),
		persistentHits: uint64(max(persistentHits, 0)),
		misses:         uint64(max(misses, 0)),
		stores:         uint64(max(stores, 0)),

		sweepPasses:  uint64(max(passes, 0)),
		sweepExpired: uint64(max(expired, 0)),
		sweepTrimmed: uint64(max(trimmed, 0)),

		admitAllowed:  uint64(max(allowed, 0)),
		admitRejected: uint64(max(rejected, 0)),
		admitErrors:   uint64(max(errs, 0)),
	}

	if s.queue != nil {
		submitted, written, dropped := s.queue.Metrics()
		snap.wbSubmitted = uint64(max(submitted, 0))
		snap.wbWritten = uint64(max(written, 0))
		snap.wbDropped = uint64(max(dropped, 0))
	}
	return snap
}

// deltaSnapshot converts cumulative snapshots to per-interval deltas.
// If counters reset (cur < prev), it treats cur as the delta.
func deltaSnapshot(prev, cur snapshot) snapshot {
	return snapshot{
		fastHits:       delta(prev.fastHits, cur.fastHits),
		persistentHits: delta(prev.persistentHits, cur.persistentHits),
		misses:         delta(prev.misses, cur.misses),
		stores:         delta(prev.stores, cur.stores),

		sweepPasses:  delta(prev.sweepPasses, cur.sweepPasses),
		sweepExpired: delta(prev.sweepExpired, cur.sweepExpired),
		sweepTrimmed: delta(prev.sweepTrimmed, cur.sweepTrimmed),

		admitAllowed:  delta(prev.admitAllowed, cur.admitAllowed),
		admitRejected: delta(prev.admitRejected, cur.admitRejected),
		admitErrors:   delta(prev.admitErrors, cur.admitErrors),

		wbSubmitted: delta(prev.wbSubmitted, cur.wbSubmitted),
		wbWritten:   delta(prev.wbWritten, cur.wbWritten),
		wbDropped:   delta(prev.wbDropped, cur.wbDropped),
	}
}

func delta(prev, cur uint64) uint64 {
	if cur >= prev {
		return cur - prev
	}
	return cur
}
