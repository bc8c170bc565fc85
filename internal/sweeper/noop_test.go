package sweeper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestNoOpSweeper_ForceCall returns nil immediately.
func TestNoOpSweeper_ForceCall(t *testing.T) {
	var sw NoOpSweeper

	err := sw.ForceCall(time.Second)
	require.NoError(t, err)
}

// TestNoOpSweeper_SweeperMetrics returns zero values.
func TestNoOpSweeper_SweeperMetrics(t *testing.T) {
	var sw NoOpSweeper

	passes, expired, trimmed := sw.SweeperMetrics()
	require.Equal(t, int64(0), passes)
	require.Equal(t, int64(0), expired)
	require.Equal(t, int64(0), trimmed)
}

// TestNoOpSweeper_Close returns nil.
func TestNoOpSweeper_Close(t *testing.T) {
	var sw NoOpSweeper

	err := sw.Close()
	require.NoError(t, err)
}
