package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Environment variable names understood by FromEnv.
const (
	EnvStandardTTL    = "TIERCACHE_STANDARD_TTL"
	EnvShortTTL       = "TIERCACHE_SHORT_TTL"
	EnvMaxEntries     = "TIERCACHE_MAX_ENTRIES"
	EnvPersistDir     = "TIERCACHE_PERSIST_DIR"
	EnvPersistTTL     = "TIERCACHE_PERSIST_TTL"
	EnvSweepInterval  = "TIERCACHE_SWEEP_INTERVAL"
	EnvAdmitWindow    = "TIERCACHE_ADMIT_WINDOW"
	EnvAdmitMax       = "TIERCACHE_ADMIT_MAX"
	EnvRedisAddr      = "TIERCACHE_REDIS_ADDR"
	EnvRedisPassword  = "TIERCACHE_REDIS_PASSWORD"
	EnvRedisDB        = "TIERCACHE_REDIS_DB"
	EnvAdminSecret    = "TIERCACHE_ADMIN_SECRET"
	EnvStatLogsPeriod = "TIERCACHE_STAT_LOGS_PERIOD"
)

// FromEnv builds a configuration from the process environment. Values are
// read once at startup and never re-read. The distributed admission backend
// is selected solely by the presence of TIERCACHE_REDIS_ADDR.
func FromEnv() (*Cache, error) {
	cfg := &Cache{}

	var err error
	if cfg.Fast.StandardTTL, err = envDuration(EnvStandardTTL); err != nil {
		return nil, err
	}
	if cfg.Fast.ShortTTL, err = envDuration(EnvShortTTL); err != nil {
		return nil, err
	}
	if cfg.Fast.MaxEntries, err = envInt(EnvMaxEntries); err != nil {
		return nil, err
	}

	if dir := os.Getenv(EnvPersistDir); dir != "" {
		cfg.Persist = &PersistCfg{Dir: dir}
		if cfg.Persist.TTL, err = envDuration(EnvPersistTTL); err != nil {
			return nil, err
		}
		if cfg.Persist.TTL <= 0 {
			cfg.Persist.TTL = 7 * 24 * time.Hour
		}
	}

	if interval, err := envDuration(EnvSweepInterval); err != nil {
		return nil, err
	} else if interval > 0 {
		cfg.Sweeper = &SweeperCfg{Interval: interval}
	}

	window, err := envDuration(EnvAdmitWindow)
	if err != nil {
		return nil, err
	}
	max, err := envInt(EnvAdmitMax)
	if err != nil {
		return nil, err
	}
	if window > 0 && max > 0 {
		cfg.Admission = &AdmissionCfg{Window: window, Max: max}
		if addr := os.Getenv(EnvRedisAddr); addr != "" {
			db, err := envInt(EnvRedisDB)
			if err != nil {
				return nil, err
			}
			cfg.Admission.Redis = &RedisCfg{
				Addr:     addr,
				Password: os.Getenv(EnvRedisPassword),
				DB:       db,
			}
		}
	}

	if secret := os.Getenv(EnvAdminSecret); secret != "" {
		cfg.Admin = &AdminCfg{Secret: secret}
	}

	if period, err := envDuration(EnvStatLogsPeriod); err != nil {
		return nil, err
	} else if period > 0 {
		cfg.Telemetry = &TelemetryCfg{Interval: period}
	}

	cfg.AdjustConfig()

	if err = cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config from env: %w", err)
	}
	return cfg, nil
}

func envDuration(name string) (time.Duration, error) {
	v := os.Getenv(name)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", name, v, err)
	}
	return d, nil
}

func envInt(name string) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q: %w", name, v, err)
	}
	return n, nil
}
