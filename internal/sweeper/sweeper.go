package sweeper

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/renderfront/tiercache/config"
	"github.com/renderfront/tiercache/internal/fast"
)

var ErrSweeperNotResponded = errors.New("sweeper not responded")

type Sweeper interface {
	ForceCall(timeout time.Duration) error
	SweeperMetrics() (passes, expired, trimmed int64)
	Close() error
}

// SweepWorker runs fixed-period maintenance passes over the fast tier:
// TTL-expired entries go first, then the tier is trimmed back to its bound,
// oldest insertion first. The pass runs under the tier lock, so it never
// interleaves mid-mutation with request-path writes.
type SweepWorker struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.SweeperCfg
	logger   *slog.Logger
	tier     *fast.Tier
	max      int
	counters *sweeperCounters
	invokeCh chan struct{}
}

func New(
	ctx context.Context,
	cfg *config.SweeperCfg,
	logger *slog.Logger,
	tier *fast.Tier,
	maxEntries int,
) Sweeper {
	if !cfg.Enabled() {
		return &NoOpSweeper{}
	}

	ctx, cancel := context.WithCancel(ctx)
	return (&SweepWorker{
		ctx:      ctx,
		cancel:   cancel,
		cfg:      cfg,
		logger:   logger,
		tier:     tier,
		max:      maxEntries,
		counters: newSweeperCounters(),
		invokeCh: make(chan struct{}),
	}).run()
}

// ForceCall triggers one pass out of schedule and waits until the worker
// picks it up or the timeout elapses.
func (w *SweepWorker) ForceCall(timeout time.Duration) error {
	after := time.NewTimer(timeout)
	defer after.Stop()

	select {
	case <-w.ctx.Done():
	case w.invokeCh <- struct{}{}:
	case <-after.C:
		return ErrSweeperNotResponded
	}
	return nil
}

func (w *SweepWorker) SweeperMetrics() (passes, expired, trimmed int64) {
	return w.counters.snapshot()
}

func (w *SweepWorker) Close() error {
	w.cancel()
	return nil
}

func (w *SweepWorker) run() *SweepWorker {
	w.logger.Info("sweeper is running", "interval", w.cfg.Interval.String(), "max_entries", w.max)

	go func() {
		defer w.logger.Info("sweeper is stopped")

		tick := time.NewTicker(w.cfg.Interval)
		defer tick.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-tick.C:
				w.pass()
			case <-w.invokeCh:
				w.pass()
			}
		}
	}()

	return w
}

func (w *SweepWorker) pass() {
	expired, trimmed := w.tier.Sweep(w.max)
	w.counters.passes.Add(1)
	if expired > 0 || trimmed > 0 {
		w.counters.expired.Add(int64(expired))
		w.counters.trimmed.Add(int64(trimmed))
	}
}
