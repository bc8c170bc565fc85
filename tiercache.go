// Package tiercache fronts an expensive render operation with a two-level
// cache (a bounded in-memory tier over a durable on-disk tier) and a
// pluggable per-caller admission layer.
package tiercache

import (
	"context"
	"io"
	"log/slog"

	"github.com/renderfront/tiercache/config"
	"github.com/renderfront/tiercache/internal/admission"
	"github.com/renderfront/tiercache/internal/cache"
	"github.com/renderfront/tiercache/internal/fast"
	"github.com/renderfront/tiercache/internal/key"
	"github.com/renderfront/tiercache/internal/persist"
	"github.com/renderfront/tiercache/internal/sweeper"
	"github.com/renderfront/tiercache/internal/telemetry"
	"github.com/renderfront/tiercache/internal/writeback"
)

type TierCache interface {
	cache.Cacher
	cache.Admin
	sweeper.Sweeper
	admission.Limiter
	telemetry.Logger
	io.Closer
}

type Cache struct {
	cache.Cacher
	cache.Admin
	sweeper.Sweeper
	admission.Limiter
	telemetry.Logger
	cls context.CancelFunc
}

// New wires every service from the configuration. The strategy and tier
// choices made here (admission backend, persistent tier presence) hold for
// the lifetime of the process.
func New(ctx context.Context, cfg *config.Cache, logger *slog.Logger) (*Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)

	fastTier := fast.New(nil)

	var (
		persistTier *persist.Tier
		queue       *writeback.Queue
	)
	if cfg.Persist.Enabled() {
		var err error
		if persistTier, err = persist.New(cfg.Persist); err != nil {
			cancel()
			return nil, err
		}
		queue = writeback.New(ctx, cfg.Persist.QueueSize, cfg.Persist.DrainPerSec, logger, persistTier)
	}

	cacher := cache.New(cfg, logger, fastTier, persistTier, queue)
	sw := sweeper.New(ctx, cfg.Sweeper, logger, fastTier, cfg.Fast.MaxEntries)
	limiter := admission.New(ctx, cfg.Admission, logger)
	telemeter := telemetry.New(ctx, cfg, logger, fastTier, cacher, sw, limiter, queue)

	return &Cache{
		cls:     cancel,
		Cacher:  cacher,
		Admin:   cacher,
		Sweeper: sw,
		Limiter: limiter,
		Logger:  telemeter,
	}, nil
}

func (c *Cache) Close() error {
	c.cls()
	return c.Limiter.Close()
}

// BuildKey derives the stable cache key for the logical request parameters.
func BuildKey(subject string, attrs ...string) string {
	return key.Build(subject, attrs...)
}
