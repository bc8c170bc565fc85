package admission

import "sync/atomic"

type limiterCounters struct {
	allowed  atomic.Int64
	rejected atomic.Int64
	errors   atomic.Int64 // backend failures resolved by the fail-open policy
}

func newLimiterCounters() *limiterCounters {
	return &limiterCounters{
		allowed:  atomic.Int64{},
		rejected: atomic.Int64{},
		errors:   atomic.Int64{},
	}
}

func (c *limiterCounters) snapshot() (allowed, rejected, errors int64) {
	return c.allowed.Load(), c.rejected.Load(), c.errors.Load()
}
