package sweeper

import "sync/atomic"

type sweeperCounters struct {
	passes  atomic.Int64
	expired atomic.Int64
	trimmed atomic.Int64
}

func newSweeperCounters() *sweeperCounters {
	return &sweeperCounters{
		passes:  atomic.Int64{},
		expired: atomic.Int64{},
		trimmed: atomic.Int64{},
	}
}

func (c *sweeperCounters) snapshot() (passes, expired, trimmed int64) {
	return c.passes.Load(), c.expired.Load(), c.trimmed.Load()
}
