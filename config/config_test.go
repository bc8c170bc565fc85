package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAdjustConfig_Defaults(t *testing.T) {
	cfg := &Cache{Persist: &PersistCfg{Dir: t.TempDir(), TTL: time.Hour}}
	cfg.AdjustConfig()

	require.Equal(t, defaultStandardTTL, cfg.Fast.StandardTTL)
	require.Equal(t, defaultShortTTL, cfg.Fast.ShortTTL)
	require.Equal(t, defaultMaxEntries, cfg.Fast.MaxEntries)
	require.Equal(t, ".png", cfg.Persist.Ext)
	require.Equal(t, ".jpg", cfg.Persist.LegacyExt)
	require.Equal(t, defaultQueueSize, cfg.Persist.QueueSize)
	require.Equal(t, defaultDrainRate, cfg.Persist.DrainPerSec)
}

func TestValidate_MalformedRedisAddr(t *testing.T) {
	cfg := &Cache{
		Admission: &AdmissionCfg{
			Window: time.Minute,
			Max:    10,
			Redis:  &RedisCfg{Addr: "not a host port"},
		},
	}
	cfg.AdjustConfig()

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "malformed redis addr")
}

func TestValidate_PersistRequiresDirAndTTL(t *testing.T) {
	cfg := &Cache{Persist: &PersistCfg{}}
	cfg.AdjustConfig()
	require.Error(t, cfg.Validate())

	cfg.Persist.Dir = t.TempDir()
	require.Error(t, cfg.Validate())

	cfg.Persist.TTL = time.Hour
	require.NoError(t, cfg.Validate())
}

func TestLoadConfig_Yaml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.yaml")
	body := `
fast:
  max_entries: 50
  standard_ttl: 1h
  short_ttl: 5m
sweeper:
  interval: 30s
admission:
  window: 1m
  max: 20
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, 50, cfg.Fast.MaxEntries)
	require.Equal(t, time.Hour, cfg.Fast.StandardTTL)
	require.Equal(t, 5*time.Minute, cfg.Fast.ShortTTL)
	require.Equal(t, 30*time.Second, cfg.Sweeper.Interval)
	require.True(t, cfg.Admission.Enabled())
	require.False(t, cfg.Admission.Distributed())
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestFromEnv_SelectsDistributedByPresence(t *testing.T) {
	t.Setenv(EnvAdmitWindow, "1m")
	t.Setenv(EnvAdmitMax, "5")

	cfg, err := FromEnv()
	require.NoError(t, err)
	require.True(t, cfg.Admission.Enabled())
	require.False(t, cfg.Admission.Distributed())

	t.Setenv(EnvRedisAddr, "127.0.0.1:6379")
	cfg, err = FromEnv()
	require.NoError(t, err)
	require.True(t, cfg.Admission.Distributed())
}

func TestFromEnv_MalformedDuration(t *testing.T) {
	t.Setenv(EnvStandardTTL, "one day")

	_, err := FromEnv()
	require.Error(t, err)
}
