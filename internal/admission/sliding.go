package admission

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/renderfront/tiercache/config"
)

const keyPrefix = "admit:"

// SlidingWindow delegates counting to a Redis backend shared by every
// replica: a sorted set per identity holds one member per request, trimmed
// to the window on each decision.
//
// Failure policy: fail open. When the backend is unreachable the caller is
// admitted, the failure is logged and counted. Rejecting everything while
// Redis is down would turn a limiter outage into a render outage.
type SlidingWindow struct {
	cfg      *config.AdmissionCfg
	logger   *slog.Logger
	client   *redis.Client
	counters *limiterCounters
}

func NewSlidingWindow(ctx context.Context, cfg *config.AdmissionCfg, logger *slog.Logger) *SlidingWindow {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("admission backend not reachable at startup, decisions fail open", "addr", cfg.Redis.Addr, "error", err)
	}

	return &SlidingWindow{
		cfg:      cfg,
		logger:   logger,
		client:   client,
		counters: newLimiterCounters(),
	}
}

func (s *SlidingWindow) Decide(ctx context.Context, identity string) Decision {
	now := time.Now()
	k := keyPrefix + identity
	horizon := now.Add(-s.cfg.Window).UnixNano()

	pipe := s.client.Pipeline()
	pipe.ZRemRangeByScore(ctx, k, "0", strconv.FormatInt(horizon, 10))
	pipe.ZAdd(ctx, k, redis.Z{Score: float64(now.UnixNano()), Member: now.UnixNano()})
	card := pipe.ZCard(ctx, k)
	pipe.Expire(ctx, k, s.cfg.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		s.counters.errors.Add(1)
		s.counters.allowed.Add(1)
		s.logger.Warn("admission backend error, failing open", "identity", identity, "error", err)
		return Decision{Admitted: true, Remaining: 0, ResetAt: now.Add(s.cfg.Window)}
	}

	count := int(card.Val())
	resetAt := now.Add(s.cfg.Window)

	if count > s.cfg.Max {
		s.counters.rejected.Add(1)
		return Decision{
			Admitted:   false,
			Remaining:  0,
			ResetAt:    resetAt,
			RetryAfter: s.cfg.Window,
		}
	}

	s.counters.allowed.Add(1)
	return Decision{Admitted: true, Remaining: s.cfg.Max - count, ResetAt: resetAt}
}

func (s *SlidingWindow) Metrics() (allowed, rejected, errors int64) {
	return s.counters.snapshot()
}

func (s *SlidingWindow) Close() error {
	return s.client.Close()
}
