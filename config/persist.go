package config

import "time"

type PersistCfg struct {
	// Dir specifies the directory where artifact files are stored.
	// It is created on startup if absent.
	Dir string `yaml:"dir"`

	// Ext is the extension of newly written artifact files.
	// Defaults to ".png".
	Ext string `yaml:"ext"`

	// LegacyExt is probed when a key has no file under Ext. Deployments
	// migrated from the previous artifact format may still hold such files.
	// Defaults to ".jpg".
	LegacyExt string `yaml:"legacy_ext"`

	// TTL is the single global lifetime of persisted artifacts, measured
	// against file modification time. Expired files are removed by the read
	// path itself.
	// Example: "168h".
	TTL time.Duration `yaml:"ttl"`

	// QueueSize bounds the background write-back queue. Writes submitted
	// while the queue is full are dropped (and counted), never blocked on.
	QueueSize int `yaml:"queue_size"`

	// DrainPerSec paces the write-back worker. Zero falls back to a default.
	DrainPerSec int `yaml:"drain_per_sec"`
}

func (cfg *PersistCfg) Enabled() bool {
	return cfg != nil
}
