package help

import (
	"time"

	"github.com/renderfront/tiercache/config"
)

const AdminSecret = "integration-secret"

// Cfg is the baseline integration configuration: both tiers, a manually
// triggered sweeper, fixed-window admission and an enabled admin surface.
func Cfg(persistDir string) *config.Cache {
	c := &config.Cache{
		Fast: config.FastCfg{
			MaxEntries:  16,
			StandardTTL: time.Hour,
			ShortTTL:    time.Minute,
		},
		Persist: &config.PersistCfg{
			Dir: persistDir,
			TTL: time.Hour,
		},
		Sweeper: &config.SweeperCfg{
			Interval: time.Hour, // passes are forced by tests
		},
		Admission: &config.AdmissionCfg{
			Window: time.Minute,
			Max:    2,
		},
		Admin: &config.AdminCfg{
			Secret: AdminSecret,
		},
	}
	c.AdjustConfig()
	return c
}

// MemoryOnlyCfg disables the persistent tier.
func MemoryOnlyCfg() *config.Cache {
	c := Cfg("")
	c.Persist = nil
	return c
}

// TinyTTLCfg shrinks both trust TTLs so expiry is observable in a test.
func TinyTTLCfg(persistDir string) *config.Cache {
	c := Cfg(persistDir)
	c.Fast.StandardTTL = time.Second
	c.Fast.ShortTTL = 100 * time.Millisecond
	return c
}

// BoundCfg caps the fast tier at max entries.
func BoundCfg(persistDir string, max int) *config.Cache {
	c := Cfg(persistDir)
	c.Fast.MaxEntries = max
	return c
}
