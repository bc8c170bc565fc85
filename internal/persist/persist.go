package persist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/renderfront/tiercache/config"
	"github.com/renderfront/tiercache/internal/key"
)

// Tier is the unbounded durable tier: one artifact file per key, named by
// the sanitized key plus a tier extension. File modification time stands in
// for creation time; a single global TTL applies to every artifact.
//
// All failures on the hot path are advisory. Reads degrade to a miss and
// writes are best-effort — the fast tier (or a fresh render) always covers
// for a broken disk.
type Tier struct {
	dir       string
	ext       string
	legacyExt string
	ttl       time.Duration
}

func New(cfg *config.PersistCfg) (*Tier, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir %s: %w", cfg.Dir, err)
	}
	return &Tier{
		dir:       cfg.Dir,
		ext:       cfg.Ext,
		legacyExt: cfg.LegacyExt,
		ttl:       cfg.TTL,
	}, nil
}

// Read returns the artifact for key, probing the legacy extension when the
// primary file is absent. An over-age file is deleted by the read itself
// (pull-based expiry, no disk sweeper) and reported as a miss.
func (t *Tier) Read(k string) ([]byte, bool) {
	path := t.path(k, t.ext)
	info, err := os.Stat(path)
	if err != nil {
		// historical format left behind by the previous artifact pipeline
		path = t.path(k, t.legacyExt)
		if info, err = os.Stat(path); err != nil {
			return nil, false
		}
	}

	if time.Since(info.ModTime()) > t.ttl {
		if err = os.Remove(path); err != nil {
			log.Warn().Err(err).Str("file", path).Msg("remove expired artifact")
		}
		return nil, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn().Err(err).Str("file", path).Msg("read artifact")
		return nil, false
	}
	return data, true
}

// Write persists the artifact. Failures are logged and swallowed: the write
// is advisory and must never fail the request that produced the payload.
func (t *Tier) Write(k string, payload []byte) {
	path := t.path(k, t.ext)
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		log.Error().Err(err).Str("file", path).Msg("write artifact")
	}
}

// Delete removes the artifact under either extension and reports whether
// anything was removed.
func (t *Tier) Delete(k string) bool {
	deleted := os.Remove(t.path(k, t.ext)) == nil
	if os.Remove(t.path(k, t.legacyExt)) == nil {
		deleted = true
	}
	return deleted
}

// Keys lists the sanitized key stems of every stored artifact.
func (t *Tier) Keys() []string {
	entries, err := os.ReadDir(t.dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", t.dir).Msg("list artifact dir")
		return nil
	}
	keys := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		ext := filepath.Ext(name)
		if ext != t.ext && ext != t.legacyExt {
			continue
		}
		keys = append(keys, strings.TrimSuffix(name, ext))
	}
	return keys
}

func (t *Tier) Len() int {
	return len(t.Keys())
}

// Clear removes every artifact and returns how many were deleted.
func (t *Tier) Clear() int {
	entries, err := os.ReadDir(t.dir)
	if err != nil {
		log.Warn().Err(err).Str("dir", t.dir).Msg("list artifact dir")
		return 0
	}
	var removed int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext != t.ext && ext != t.legacyExt {
			continue
		}
		if err := os.Remove(filepath.Join(t.dir, e.Name())); err == nil {
			removed++
		}
	}
	return removed
}

func (t *Tier) path(k, ext string) string {
	return filepath.Join(t.dir, key.Sanitize(k)+ext)
}
