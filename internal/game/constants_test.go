package game

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadBalanceMissingFileUsesDefaults(t *testing.T) {
	bal, err := LoadBalance(filepath.Join(t.TempDir(), "balance.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBalance(), bal)
}

func TestLoadBalanceOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_speed: 250\nboost_duration_ms: 5000\n"), 0o644))

	bal, err := LoadBalance(path)
	require.NoError(t, err)
	assert.Equal(t, 250, bal.BaseSpeed)
	assert.Equal(t, int64(5000), bal.BoostDurationMs)

	// Untouched fields keep their defaults.
	assert.Equal(t, DefaultBalance().BaseStorage, bal.BaseStorage)
	assert.Equal(t, DefaultBalance().EventIntervalMs, bal.EventIntervalMs)
}

func TestLoadBalanceMalformedFileErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "balance.yaml")
	require.NoError(t, os.WriteFile(path, []byte("base_speed: [oops"), 0o644))

	_, err := LoadBalance(path)
	assert.Error(t, err)
}

func TestMilestoneProgress(t *testing.T) {
	bal := DefaultBalance()

	t.Run("before the first milestone", func(t *testing.T) {
		current, next := bal.MilestoneProgress(0)
		assert.Nil(t, current)
		require.NotNil(t, next)
		assert.Equal(t, "moon", next.Key)
	})

	t.Run("between milestones", func(t *testing.T) {
		current, next := bal.MilestoneProgress(500_000)
		require.NotNil(t, current)
		assert.Equal(t, "moon", current.Key)
		require.NotNil(t, next)
		assert.Equal(t, "mars", next.Key)
	})

	t.Run("past the last milestone", func(t *testing.T) {
		current, next := bal.MilestoneProgress(1e13)
		require.NotNil(t, current)
		assert.Equal(t, "interstellar", current.Key)
		assert.Nil(t, next)
	})
}
