package cache

import (
	"fmt"
	"time"

	"github.com/renderfront/tiercache/internal/key"
)

// Source tells which tier served a lookup.
type Source string

const (
	SourceFast       Source = "HIT-FAST"
	SourcePersistent Source = "HIT-PERSISTENT"
	SourceMiss       Source = "MISS" // freshly rendered, not served from a tier
)

// Result is a served artifact plus the provenance the HTTP layer needs to
// build response headers.
type Result struct {
	Key     string
	Payload []byte
	Source  Source

	// TTL is the lifetime that was applied to the entry serving (or storing)
	// this response.
	TTL time.Duration
}

// Status is the cache-status header value.
func (r Result) Status() string {
	return string(r.Source)
}

// CacheControl is the cache-control directive whose max-age equals the
// applied TTL.
func (r Result) CacheControl() string {
	return fmt.Sprintf("public, max-age=%d", int(r.TTL.Seconds()))
}

// ETag is the entity tag derived from the sanitized key.
func (r Result) ETag() string {
	return key.ETag(r.Key)
}
