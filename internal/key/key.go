package key

import (
	"strconv"
	"strings"

	"github.com/zeebo/xxh3"
)

const separator = ":"

// Build derives a stable cache key from the logical request parameters.
// Fields are joined with a plain separator and are expected to be already
// trimmed and defaulted by the caller's validator. Same input, same output,
// across restarts, since the key doubles as the on-disk filename stem.
//
// Note: fields are not escaped, so tuples whose boundaries shift around the
// separator can collide (("AB","C") and ("A","BC") produce the same key).
// This matches the historical key format; see the collision test.
func Build(subject string, attrs ...string) string {
	if len(attrs) == 0 {
		return subject
	}
	var b strings.Builder
	b.Grow(len(subject) + len(attrs)*8)
	b.WriteString(subject)
	for _, a := range attrs {
		b.WriteString(separator)
		b.WriteString(a)
	}
	return b.String()
}

// Sanitize maps a cache key onto a filesystem-safe stem: every character
// outside [A-Za-z0-9_-] is replaced with an underscore.
func Sanitize(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return '_'
		}
	}, key)
}

// ETag derives a strong entity tag from the sanitized form of a key.
func ETag(key string) string {
	sum := xxh3.HashString(Sanitize(key))
	return `"` + strconv.FormatUint(sum, 16) + `"`
}
