package config

import "time"

type TelemetryCfg struct {
	// Interval is the period between stat log lines.
	// Example: "5s".
	Interval time.Duration `yaml:"interval"`
}

func (cfg *TelemetryCfg) Enabled() bool {
	return cfg != nil && cfg.Interval > 0
}
