package fast

import (
	"sort"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
)

type entry struct {
	payload   []byte
	createdAt time.Time
	ttl       time.Duration
}

func (e *entry) expired(now time.Time) bool {
	return now.Sub(e.createdAt) > e.ttl
}

// Tier is the bounded, volatile in-memory tier. Each entry carries its own
// TTL; reads expire lazily. Put never evicts — the size bound is enforced
// exclusively by Sweep, so the tier may transiently exceed it between passes.
type Tier struct {
	mu      sync.RWMutex
	entries map[string]*entry
	clock   clock.Clock
}

func New(clk clock.Clock) *Tier {
	if clk == nil {
		clk = clock.New()
	}
	return &Tier{
		entries: make(map[string]*entry),
		clock:   clk,
	}
}

// Get returns the payload and the TTL that was applied on write if the
// entry is present and unexpired. An expired entry is removed on the spot,
// independently of the sweeper.
func (t *Tier) Get(key string) (payload []byte, ttl time.Duration, ok bool) {
	t.mu.RLock()
	e, found := t.entries[key]
	t.mu.RUnlock()

	if !found {
		return nil, 0, false
	}
	if e.expired(t.clock.Now()) {
		t.mu.Lock()
		// re-check: the entry may have been replaced since the read lock
		if cur, still := t.entries[key]; still && cur == e {
			delete(t.entries, key)
		}
		t.mu.Unlock()
		return nil, 0, false
	}
	return e.payload, e.ttl, true
}

// Put inserts or overwrites unconditionally.
func (t *Tier) Put(key string, payload []byte, ttl time.Duration) {
	t.mu.Lock()
	t.entries[key] = &entry{
		payload:   payload,
		createdAt: t.clock.Now(),
		ttl:       ttl,
	}
	t.mu.Unlock()
}

func (t *Tier) Delete(key string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.entries[key]; !ok {
		return false
	}
	delete(t.entries, key)
	return true
}

func (t *Tier) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

func (t *Tier) Keys() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	keys := make([]string, 0, len(t.entries))
	for k := range t.entries {
		keys = append(keys, k)
	}
	return keys
}

// Clear removes everything and reports how many entries were dropped.
func (t *Tier) Clear() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := len(t.entries)
	t.entries = make(map[string]*entry)
	return n
}

// Sweep runs one maintenance pass under the tier lock: TTL-expired entries
// go first, then, if the tier still exceeds max, survivors are trimmed
// oldest-insertion-first (creation time ascending, not last access).
func (t *Tier) Sweep(max int) (expired, trimmed int) {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	for k, e := range t.entries {
		if e.expired(now) {
			delete(t.entries, k)
			expired++
		}
	}

	over := len(t.entries) - max
	if max <= 0 || over <= 0 {
		return expired, 0
	}

	type aged struct {
		key       string
		createdAt time.Time
	}
	byAge := make([]aged, 0, len(t.entries))
	for k, e := range t.entries {
		byAge = append(byAge, aged{key: k, createdAt: e.createdAt})
	}
	sort.Slice(byAge, func(i, j int) bool {
		return byAge[i].createdAt.Before(byAge[j].createdAt)
	})

	for _, a := range byAge[:over] {
		delete(t.entries, a.key)
		trimmed++
	}
	return expired, trimmed
}
