package telemetry

import (
	"context"
	"log/slog"
	"time"

	"github.com/renderfront/tiercache/config"
	"github.com/renderfront/tiercache/internal/admission"
	"github.com/renderfront/tiercache/internal/cache"
	"github.com/renderfront/tiercache/internal/fast"
	"github.com/renderfront/tiercache/internal/sweeper"
	"github.com/renderfront/tiercache/internal/writeback"
)

type Logger interface {
	Interval() time.Duration
	Close() error
}

// Logs periodically writes per-interval counter deltas and current tier
// occupancy to the structured log.
type Logs struct {
	ctx      context.Context
	cancel   context.CancelFunc
	cfg      *config.Cache
	logger   *slog.Logger
	tier     *fast.Tier
	sampler  sampler
	interval time.Duration
}

func New(
	ctx context.Context,
	cfg *config.Cache,
	logger *slog.Logger,
	tier *fast.Tier,
	cacher cache.Cacher,
	sw sweeper.Sweeper,
	limiter admission.Limiter,
	queue *writeback.Queue,
) *Logs {
	ctx, cancel := context.WithCancel(ctx)
	l := &Logs{
		ctx:     ctx,
		cancel:  cancel,
		cfg:     cfg,
		logger:  logger,
		tier:    tier,
		sampler: newSampler(cacher, sw, limiter, queue),
	}
	if cfg.Telemetry.Enabled() {
		l.interval = cfg.Telemetry.Interval
		go l.loop()
	}
	return l
}

func (l *Logs) Interval() time.Duration {
	return l.interval
}

func (l *Logs) Close() error {
	l.cancel()
	return nil
}

func (l *Logs) loop() {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	prev := l.sampler.snapshot()

	for {
		select {
		case <-l.ctx.Done():
			return

		case <-ticker.C:
			cur := l.sampler.snapshot()
			d := deltaSnapshot(prev, cur)
			prev = cur

			common := []any{"interval", l.interval.String()}

			l.logger.Info("lookups",
				append(common,
					"fast_hits", int64(d.fastHits),
					"persistent_hits", int64(d.persistentHits),
					"misses", int64(d.misses),
					"stores", int64(d.stores),
				)...,
			)

			if l.cfg.Sweeper.Enabled() {
				l.logger.Info("sweeper",
					append(common,
						"passes", int64(d.sweepPasses),
						"expired", int64(d.sweepExpired),
						"trimmed", int64(d.sweepTrimmed),
					)...,
				)
			}

			if l.cfg.Admission.Enabled() {
				l.logger.Info("admission_controller",
					append(common,
						"allowed", int64(d.admitAllowed),
						"rejected", int64(d.admitRejected),
						"errors", int64(d.admitErrors),
					)...,
				)
			}

			if l.cfg.Persist.Enabled() {
				l.logger.Info("write_back",
					append(common,
						"submitted", int64(d.wbSubmitted),
						"written", int64(d.wbWritten),
						"dropped", int64(d.wbDropped),
					)...,
				)
			}

			l.logger.Info("storage",
				append(common,
					"entries", l.tier.Len(),
					"max_entries", l.cfg.Fast.MaxEntries,
				)...,
			)
		}
	}
}
