package admission

import "context"

// NoOpLimiter is used when admission is not configured: every caller is
// admitted unconditionally.
type NoOpLimiter struct{}

// Decide always admits.
func (NoOpLimiter) Decide(context.Context, string) Decision {
	return Decision{Admitted: true, Remaining: -1}
}

// Metrics always returns zero values.
func (NoOpLimiter) Metrics() (allowed, rejected, errors int64) {
	return 0, 0, 0
}

// Close does nothing and returns nil.
func (NoOpLimiter) Close() error {
	return nil
}
