package config

// Cache groups configuration of all subsystems of the tiered render cache.
// Optional components can be disabled by leaving their section nil.
type Cache struct {
	// Fast configures the bounded in-memory tier and the trust-dependent TTLs
	// applied on writes.
	Fast FastCfg `yaml:"fast"`

	// Persist configures the durable on-disk tier. If nil, the persistent
	// tier is disabled and trusted writes stay in memory only.
	Persist *PersistCfg `yaml:"persist"`

	// Sweeper configures the periodic fast-tier maintenance pass.
	// If nil, entries expire only lazily on read and the size bound is never
	// enforced (not recommended).
	Sweeper *SweeperCfg `yaml:"sweeper"`

	// Admission configures per-caller request admission.
	// If nil, every caller is admitted unconditionally.
	Admission *AdmissionCfg `yaml:"admission"`

	// Admin configures the authenticated administrative surface.
	// If nil, administrative operations are rejected unconditionally.
	Admin *AdminCfg `yaml:"admin"`

	// Telemetry configures periodic stat logging.
	Telemetry *TelemetryCfg `yaml:"telemetry"`
}
