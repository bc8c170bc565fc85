package cache

import "sync/atomic"

type counters struct {
	fastHits       atomic.Int64
	persistentHits atomic.Int64
	misses         atomic.Int64
	stores         atomic.Int64
}

func newCounters() *counters {
	return &counters{
		fastHits:       atomic.Int64{},
		persistentHits: atomic.Int64{},
		misses:         atomic.Int64{},
		stores:         atomic.Int64{},
	}
}

func (c *counters) snapshot() (fastHits, persistentHits, misses, stores int64) {
	return c.fastHits.Load(), c.persistentHits.Load(), c.misses.Load(), c.stores.Load()
}
