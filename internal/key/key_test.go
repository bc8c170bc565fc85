package key

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestBuild_Deterministic verifies that identical tuples produce identical keys.
func TestBuild_Deterministic(t *testing.T) {
	a := Build("profile", "dark", "wide", "v2")
	b := Build("profile", "dark", "wide", "v2")
	require.Equal(t, a, b)
	require.Equal(t, "profile:dark:wide:v2", a)
}

func TestBuild_NoAttrs(t *testing.T) {
	require.Equal(t, "profile", Build("profile"))
}

// TestBuild_CollisionBoundary pins the known precision gap of the plain-join
// key format: field boundaries shifting around the separator collide.
func TestBuild_CollisionBoundary(t *testing.T) {
	require.Equal(t, Build("A", "B:C"), Build("A:B", "C"))
	require.NotEqual(t, Build("AB", "C"), Build("A", "BC"))
}

func TestSanitize(t *testing.T) {
	require.Equal(t, "profile_dark_wide_v2", Sanitize("profile:dark:wide/v2"))
	require.Equal(t, "safe_Azaz09-_", Sanitize("safe.Azaz09-_"))
	require.Equal(t, "", Sanitize(""))
}

func TestETag_StableAndQuoted(t *testing.T) {
	tag := ETag("profile:dark")
	require.Equal(t, tag, ETag("profile:dark"))
	require.True(t, len(tag) > 2 && tag[0] == '"' && tag[len(tag)-1] == '"')

	// sanitization happens before hashing, so keys equal after sanitizing share a tag
	require.Equal(t, ETag("profile:dark"), ETag("profile_dark"))
	require.NotEqual(t, ETag("profile:dark"), ETag("profile:light"))
}
