package admission

import (
	"context"
	"log/slog"
	"time"

	"github.com/renderfront/tiercache/config"
)

// Decision is the outcome of one admission check for a caller identity.
type Decision struct {
	Admitted   bool
	Remaining  int
	ResetAt    time.Time
	RetryAfter time.Duration // positive only on rejection
}

// Limiter admits or rejects callers before the expensive render runs.
//
// Contract: one strategy per process lifetime. Backend failures never
// propagate to the caller — the strategy resolves them internally (this
// implementation fails open) and exposes them through Metrics.
type Limiter interface {
	Decide(ctx context.Context, identity string) Decision
	Metrics() (allowed, rejected, errors int64)
	Close() error
}

// New selects the strategy once, at startup: distributed sliding window when
// Redis connection parameters are configured, in-process fixed window
// otherwise. The configuration is never re-checked per request.
func New(ctx context.Context, cfg *config.AdmissionCfg, logger *slog.Logger) Limiter {
	if !cfg.Enabled() {
		return &NoOpLimiter{}
	}
	if cfg.Distributed() {
		return NewSlidingWindow(ctx, cfg, logger)
	}
	return NewFixedWindow(cfg, logger)
}
