package config

import "time"

// AdmissionCfg configures per-caller request admission.
//
// The strategy is selected once at startup: when Redis connection parameters
// are present a distributed sliding window is used, otherwise an in-process
// fixed window. The choice is never re-evaluated per request.
type AdmissionCfg struct {
	// Window is the counting interval.
	// Example: "1m".
	Window time.Duration `yaml:"window"`

	// Max is the number of admitted requests per identity per window.
	Max int `yaml:"max"`

	// Redis holds distributed-backend connection parameters.
	// Absence selects the in-process fixed-window fallback.
	Redis *RedisCfg `yaml:"redis"`
}

type RedisCfg struct {
	// Addr is the backend address in host:port form.
	Addr string `yaml:"addr"`

	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

func (cfg *AdmissionCfg) Enabled() bool {
	return cfg != nil
}

func (cfg *AdmissionCfg) Distributed() bool {
	return cfg != nil && cfg.Redis != nil && cfg.Redis.Addr != ""
}
