package files

import "path"

// GlobMatcher selects files that are emitted verbatim instead of being digested.
type GlobMatcher struct {
	patterns []compiledPattern
}

// NewGlobMatcher compiles patterns such as "**/*.md" or "Makefile".
func NewGlobMatcher(patterns []string) (*GlobMatcher, error) {
	compiled, err := compilePatterns(patterns)
	if err != nil {
		return nil, err
	}
	return &GlobMatcher{patterns: compiled}, nil
}

// Matches reports whether relPath, a slash-separated path relative to the walk root,
// or its base name matches any pattern. A nil matcher matches nothing.
func (m *GlobMatcher) Matches(relPath string) bool {
	if m == nil || len(m.patterns) == 0 {
		return false
	}
	if matchesAnyPattern(relPath, m.patterns) {
		return true
	}
	return matchesAnyPattern(path.Base(relPath), m.patterns)
}

// Len returns the number of patterns.
func (m *GlobMatcher) Len() int {
	if m == nil {
		return 0
	}
	return len(m.patterns)
}
