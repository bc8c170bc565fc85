package writeback

import "sync/atomic"

type counters struct {
	submitted atomic.Int64
	written   atomic.Int64
	dropped   atomic.Int64
}

func newCounters() *counters {
	return &counters{
		submitted: atomic.Int64{},
		written:   atomic.Int64{},
		dropped:   atomic.Int64{},
	}
}

func (c *counters) snapshot() (submitted, written, dropped int64) {
	return c.submitted.Load(), c.written.Load(), c.dropped.Load()
}
