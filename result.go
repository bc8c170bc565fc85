package tiercache

import (
	"github.com/renderfront/tiercache/internal/admission"
	"github.com/renderfront/tiercache/internal/cache"
)

// Result is a served artifact plus provenance for response headers.
type Result = cache.Result

// Source tells which tier served a lookup.
type Source = cache.Source

const (
	SourceFast       = cache.SourceFast
	SourcePersistent = cache.SourcePersistent
	SourceMiss       = cache.SourceMiss
)

// RenderFunc produces the artifact for a key on a cache miss.
type RenderFunc = cache.RenderFunc

// Decision is the outcome of one admission check.
type Decision = admission.Decision

// StatusReport is the administrative status of both tiers.
type StatusReport = cache.StatusReport

// ErrUnauthorized is returned by administrative operations when the bearer
// credential is absent or wrong.
var ErrUnauthorized = cache.ErrUnauthorized
