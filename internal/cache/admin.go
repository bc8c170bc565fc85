package cache

import (
	"crypto/subtle"
	"errors"
)

// ErrUnauthorized is returned when the bearer credential is absent or wrong.
// Authorization is checked before either tier is touched.
var ErrUnauthorized = errors.New("unauthorized")

// Admin is the authenticated management surface over both tiers. It is not
// on the hot path.
type Admin interface {
	ClearAll(token string) (fastRemoved, persistRemoved int, err error)
	DeleteOne(token, key string) (fastDeleted, persistDeleted bool, err error)
	Status(token string) (StatusReport, error)
}

type StatusReport struct {
	FastEntries    int      `json:"fast_entries"`
	FastMaxEntries int      `json:"fast_max_entries"`
	FastKeys       []string `json:"fast_keys"`
	PersistEntries int      `json:"persist_entries"`
	PersistKeys    []string `json:"persist_keys"`
}

// ClearAll drops everything from both tiers and reports per-tier counts.
func (c *Cache) ClearAll(token string) (fastRemoved, persistRemoved int, err error) {
	if err = c.authorize(token); err != nil {
		return 0, 0, err
	}
	fastRemoved = c.fast.Clear()
	if c.persist != nil {
		persistRemoved = c.persist.Clear()
	}
	c.logger.Info("cache cleared", "fast_removed", fastRemoved, "persist_removed", persistRemoved)
	return fastRemoved, persistRemoved, nil
}

// DeleteOne removes a single key from both tiers.
func (c *Cache) DeleteOne(token, key string) (fastDeleted, persistDeleted bool, err error) {
	if err = c.authorize(token); err != nil {
		return false, false, err
	}
	fastDeleted = c.fast.Delete(key)
	if c.persist != nil {
		persistDeleted = c.persist.Delete(key)
	}
	return fastDeleted, persistDeleted, nil
}

// Status reports entry counts, the configured bound, and key listings for
// both tiers.
func (c *Cache) Status(token string) (StatusReport, error) {
	if err := c.authorize(token); err != nil {
		return StatusReport{}, err
	}
	report := StatusReport{
		FastEntries:    c.fast.Len(),
		FastMaxEntries: c.cfg.Fast.MaxEntries,
		FastKeys:       c.fast.Keys(),
	}
	if c.persist != nil {
		report.PersistKeys = c.persist.Keys()
		report.PersistEntries = len(report.PersistKeys)
	}
	return report, nil
}

func (c *Cache) authorize(token string) error {
	if !c.cfg.Admin.Enabled() || token == "" {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(token), []byte(c.cfg.Admin.Secret)) != 1 {
		return ErrUnauthorized
	}
	return nil
}
