package files

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// compilePatterns compiles slash-separated glob patterns.
func compilePatterns(patterns []string) ([]compiledPattern, error) {
	compiled := make([]compiledPattern, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, compiledPattern{pattern: pattern, glob: g})
	}
	return compiled, nil
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// A root-level path (no slash) also matches patterns with their **/ prefix
	// removed, so "**/*.md" matches both "README.md" and "docs/guide.md".
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if strings.HasPrefix(cp.pattern, "**/") {
				simplified := strings.TrimPrefix(cp.pattern, "**/")
				if simplifiedGlob, err := glob.Compile(simplified, '/'); err == nil {
					if simplifiedGlob.Match(path) {
						return true
					}
				}
			}
		}
	}

	return false
}

// matchesIgnore reports whether relPath matches an ignore pattern, either directly or as a
// directory covered by a "dir/**" pattern.
func matchesIgnore(relPath string, patterns []compiledPattern) bool {
	if len(patterns) == 0 {
		return false
	}
	if matchesAnyPattern(relPath, patterns) {
		return true
	}
	// "node_modules" should match pattern "node_modules/**"
	return matchesAnyPattern(relPath+"/**", patterns)
}
