package files

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for GlobMatcher:
// - "**/" patterns match root-level and nested paths
// - Base-name patterns match at any depth
// - Invalid patterns are rejected
// - Nil and empty matchers match nothing

func TestGlobMatcher(t *testing.T) {
	t.Parallel()

	m, err := NewGlobMatcher([]string{"**/*.md", "Makefile", "configs/*.yaml"})
	require.NoError(t, err)
	assert.Equal(t, 3, m.Len())

	tests := []struct {
		path string
		want bool
	}{
		{"README.md", true},
		{"docs/guide.md", true},
		{"Makefile", true},
		{"tools/Makefile", true},
		{"configs/app.yaml", true},
		{"configs/nested/app.yaml", false},
		{"main.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.Matches(tt.path))
		})
	}
}

func TestGlobMatcher_Empty(t *testing.T) {
	t.Parallel()

	var nilMatcher *GlobMatcher
	assert.False(t, nilMatcher.Matches("README.md"))
	assert.Equal(t, 0, nilMatcher.Len())

	m, err := NewGlobMatcher(nil)
	require.NoError(t, err)
	assert.False(t, m.Matches("README.md"))
}

func TestGlobMatcher_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewGlobMatcher([]string{"[a-"})
	assert.Error(t, err)
}
