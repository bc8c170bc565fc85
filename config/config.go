package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	defaultStandardTTL = 24 * time.Hour
	defaultShortTTL    = 10 * time.Minute
	defaultMaxEntries  = 1024
	defaultExt         = ".png"
	defaultLegacyExt   = ".jpg"
	defaultQueueSize   = 1024
	defaultDrainRate   = 64
)

var errNilConfig = errors.New("config is nil")

// AdjustConfig fills derived and defaulted fields. It is called by LoadConfig
// and FromEnv; hand-built configs (tests) should call it themselves.
func (cfg *Cache) AdjustConfig() {
	if cfg.Fast.StandardTTL <= 0 {
		cfg.Fast.StandardTTL = defaultStandardTTL
	}
	if cfg.Fast.ShortTTL <= 0 {
		cfg.Fast.ShortTTL = defaultShortTTL
	}
	if cfg.Fast.MaxEntries <= 0 {
		cfg.Fast.MaxEntries = defaultMaxEntries
	}

	if cfg.Persist.Enabled() {
		if cfg.Persist.Ext == "" {
			cfg.Persist.Ext = defaultExt
		}
		if cfg.Persist.LegacyExt == "" {
			cfg.Persist.LegacyExt = defaultLegacyExt
		}
		if cfg.Persist.QueueSize <= 0 {
			cfg.Persist.QueueSize = defaultQueueSize
		}
		if cfg.Persist.DrainPerSec <= 0 {
			cfg.Persist.DrainPerSec = defaultDrainRate
		}
	}
}

// Validate rejects configurations that must prevent startup rather than
// degrade silently.
func (cfg *Cache) Validate() error {
	if cfg == nil {
		return errNilConfig
	}
	if cfg.Persist.Enabled() && cfg.Persist.Dir == "" {
		return errors.New("persist: dir is required")
	}
	if cfg.Persist.Enabled() && cfg.Persist.TTL <= 0 {
		return errors.New("persist: ttl must be positive")
	}
	if cfg.Sweeper.Enabled() && cfg.Sweeper.Interval <= 0 {
		return errors.New("sweeper: interval must be positive")
	}
	if cfg.Admission.Enabled() {
		if cfg.Admission.Window <= 0 {
			return errors.New("admission: window must be positive")
		}
		if cfg.Admission.Max <= 0 {
			return errors.New("admission: max must be positive")
		}
		if cfg.Admission.Distributed() {
			if _, _, err := net.SplitHostPort(cfg.Admission.Redis.Addr); err != nil {
				return fmt.Errorf("admission: malformed redis addr %q: %w", cfg.Admission.Redis.Addr, err)
			}
		}
	}
	return nil
}

func LoadConfig(path string) (*Cache, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("stat config path: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config yaml file %s: %w", path, err)
	}

	var cfg *Cache
	if err = yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal yaml from %s: %w", path, err)
	}
	if cfg == nil {
		cfg = &Cache{}
	}
	cfg.AdjustConfig()

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config from %s: %w", path, err)
	}
	return cfg, nil
}
