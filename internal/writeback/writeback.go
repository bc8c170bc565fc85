package writeback

import (
	"context"
	"log/slog"
	"sync"

	"go.uber.org/ratelimit"
)

// Sink receives drained write jobs. Writes are advisory; a Sink must swallow
// its own failures.
type Sink interface {
	Write(key string, payload []byte)
}

type job struct {
	key     string
	payload []byte
}

// Queue turns fire-and-forget persistent writes into an observable, bounded
// background task: Submit never blocks the response path, a paced worker
// drains into the Sink, and drops are counted instead of silently lost.
type Queue struct {
	ctx     context.Context
	cancel  context.CancelFunc
	logger  *slog.Logger
	sink    Sink
	limiter ratelimit.Limiter

	mu         sync.Mutex
	buf        []job
	head, tail int

	notify   chan struct{}
	counters *counters
}

func New(ctx context.Context, size, drainPerSec int, logger *slog.Logger, sink Sink) *Queue {
	if size < 2 {
		size = 2
	}
	if drainPerSec <= 0 {
		drainPerSec = 1
	}

	ctx, cancel := context.WithCancel(ctx)
	q := &Queue{
		ctx:      ctx,
		cancel:   cancel,
		logger:   logger,
		sink:     sink,
		limiter:  ratelimit.New(drainPerSec),
		buf:      make([]job, size),
		notify:   make(chan struct{}, 1),
		counters: newCounters(),
	}
	go q.drain()
	return q
}

// Submit enqueues a write. A full queue drops the job (and counts the drop)
// rather than block the caller.
func (q *Queue) Submit(key string, payload []byte) bool {
	if !q.tryPush(job{key: key, payload: payload}) {
		q.counters.dropped.Add(1)
		q.logger.Warn("write-back queue full, artifact dropped", "key", key)
		return false
	}
	q.counters.submitted.Add(1)

	select {
	case q.notify <- struct{}{}:
	default:
	}
	return true
}

// Metrics reports submitted, written and dropped job totals.
func (q *Queue) Metrics() (submitted, written, dropped int64) {
	return q.counters.snapshot()
}

func (q *Queue) Close() error {
	q.cancel()
	return nil
}

func (q *Queue) drain() {
	for {
		select {
		case <-q.ctx.Done():
			return
		case <-q.notify:
		}
		for {
			j, ok := q.tryPop()
			if !ok {
				break
			}
			q.limiter.Take()
			q.sink.Write(j.key, j.payload)
			q.counters.written.Add(1)
		}
	}
}

func (q *Queue) tryPush(j job) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	next := (q.head + 1) % len(q.buf)
	if next == q.tail { // full
		return false
	}
	q.buf[q.head] = j
	q.head = next
	return true
}

func (q *Queue) tryPop() (job, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.head == q.tail {
		return job{}, false
	}
	j := q.buf[q.tail]
	q.buf[q.tail] = job{}
	q.tail = (q.tail + 1) % len(q.buf)
	return j, true
}
