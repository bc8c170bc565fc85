package admission

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/renderfront/tiercache/config"
)

type window struct {
	count   int
	resetAt time.Time
}

// FixedWindow is the in-process fallback strategy: a per-identity counter
// that resets at fixed window boundaries. It never suspends and needs no
// external backend.
type FixedWindow struct {
	cfg      *config.AdmissionCfg
	logger   *slog.Logger
	clock    clock.Clock
	counters *limiterCounters

	mu      sync.Mutex
	windows map[string]*window
}

func NewFixedWindow(cfg *config.AdmissionCfg, logger *slog.Logger) *FixedWindow {
	return &FixedWindow{
		cfg:      cfg,
		logger:   logger,
		clock:    clock.New(),
		counters: newLimiterCounters(),
		windows:  make(map[string]*window),
	}
}

func (f *FixedWindow) Decide(_ context.Context, identity string) Decision {
	f.mu.Lock()
	defer f.mu.Unlock()

	now := f.clock.Now()
	w, ok := f.windows[identity]
	if !ok || !now.Before(w.resetAt) {
		w = &window{count: 1, resetAt: now.Add(f.cfg.Window)}
		f.windows[identity] = w
		f.counters.allowed.Add(1)
		return Decision{Admitted: true, Remaining: f.cfg.Max - 1, ResetAt: w.resetAt}
	}

	if w.count >= f.cfg.Max {
		f.counters.rejected.Add(1)
		return Decision{
			Admitted:   false,
			Remaining:  0,
			ResetAt:    w.resetAt,
			RetryAfter: w.resetAt.Sub(now),
		}
	}

	w.count++
	f.counters.allowed.Add(1)
	return Decision{Admitted: true, Remaining: f.cfg.Max - w.count, ResetAt: w.resetAt}
}

func (f *FixedWindow) Metrics() (allowed, rejected, errors int64) {
	return f.counters.snapshot()
}

func (f *FixedWindow) Close() error {
	return nil
}
