package config

type AdminCfg struct {
	// Secret is the bearer credential required by every administrative
	// operation. An empty secret disables the surface entirely.
	Secret string `yaml:"secret"`
}

func (cfg *AdminCfg) Enabled() bool {
	return cfg != nil && cfg.Secret != ""
}
