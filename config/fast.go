package config

import "time"

type FastCfg struct {
	// MaxEntries bounds the fast tier by entry count. The bound is enforced
	// by the sweeper, not by writes, so the tier may transiently exceed it
	// between passes.
	MaxEntries int `yaml:"max_entries"`

	// StandardTTL is applied to writes from trusted callers and to entries
	// promoted from the persistent tier.
	// Example: "24h".
	StandardTTL time.Duration `yaml:"standard_ttl"`

	// ShortTTL is applied to writes from untrusted callers.
	// Example: "10m".
	ShortTTL time.Duration `yaml:"short_ttl"`
}
