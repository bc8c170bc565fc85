package config

import "time"

type SweeperCfg struct {
	// Interval is the fixed period between maintenance passes. Each pass
	// removes TTL-expired entries and then trims the tier back to
	// Fast.MaxEntries by deleting the oldest-inserted survivors.
	// Example: "30s".
	Interval time.Duration `yaml:"interval"`
}

func (cfg *SweeperCfg) Enabled() bool {
	return cfg != nil
}
