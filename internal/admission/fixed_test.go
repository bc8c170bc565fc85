package admission

import (
	"log/slog"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/stretchr/testify/require"

	"github.com/renderfront/tiercache/config"
)

func newFixed(t *testing.T, max int, win time.Duration) (*FixedWindow, *clock.Mock) {
	t.Helper()
	f := NewFixedWindow(&config.AdmissionCfg{Window: win, Max: max}, slog.Default())
	clk := clock.NewMock()
	f.clock = clk
	return f, clk
}

// TestFixedWindow_AdmitAdmitReject: three rapid calls for the same identity
// with max=2 give [admit, admit, reject], the rejection carrying remaining=0
// and a positive retry-after.
func TestFixedWindow_AdmitAdmitReject(t *testing.T) {
	f, _ := newFixed(t, 2, time.Minute)
	ctx := t.Context()

	d1 := f.Decide(ctx, "10.0.0.1")
	require.True(t, d1.Admitted)
	require.Equal(t, 1, d1.Remaining)

	d2 := f.Decide(ctx, "10.0.0.1")
	require.True(t, d2.Admitted)
	require.Equal(t, 0, d2.Remaining)

	d3 := f.Decide(ctx, "10.0.0.1")
	require.False(t, d3.Admitted)
	require.Equal(t, 0, d3.Remaining)
	require.Positive(t, d3.RetryAfter)

	allowed, rejected, errs := f.Metrics()
	require.Equal(t, int64(2), allowed)
	require.Equal(t, int64(1), rejected)
	require.Equal(t, int64(0), errs)
}

func TestFixedWindow_ResetAfterBoundary(t *testing.T) {
	f, clk := newFixed(t, 1, time.Minute)
	ctx := t.Context()

	require.True(t, f.Decide(ctx, "ip").Admitted)
	require.False(t, f.Decide(ctx, "ip").Admitted)

	clk.Add(time.Minute)
	d := f.Decide(ctx, "ip")
	require.True(t, d.Admitted)
	require.Equal(t, 0, d.Remaining)
}

func TestFixedWindow_IdentitiesIndependent(t *testing.T) {
	f, _ := newFixed(t, 1, time.Minute)
	ctx := t.Context()

	require.True(t, f.Decide(ctx, "a").Admitted)
	require.False(t, f.Decide(ctx, "a").Admitted)
	require.True(t, f.Decide(ctx, "b").Admitted)
}
