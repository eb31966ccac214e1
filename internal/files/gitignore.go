package files

import (
	"bufio"
	"bytes"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// ignoreFileNames are read in every directory, in this order. Later patterns win.
var ignoreFileNames = []string{".gitignore", ".ignore"}

// ignoreStack holds the patterns of every ignore file from the walk root down to the
// directory being read. A nil stack ignores nothing.
type ignoreStack struct {
	patterns []gitignore.Pattern
	matcher  gitignore.Matcher
}

// push returns the stack extended with the ignore files of dir. relDir is dir's slash path
// relative to the walk root, "" for the root. The receiver is left untouched.
func (s *ignoreStack) push(dir, relDir string) *ignoreStack {
	patterns := readIgnorePatterns(dir, splitRel(relDir))
	if len(patterns) == 0 {
		return s
	}

	var combined []gitignore.Pattern
	if s != nil {
		combined = make([]gitignore.Pattern, 0, len(s.patterns)+len(patterns))
		combined = append(combined, s.patterns...)
	}
	combined = append(combined, patterns...)
	return &ignoreStack{patterns: combined, matcher: gitignore.NewMatcher(combined)}
}

// ignored reports whether relPath is excluded. The last matching pattern decides, so a
// deeper "!pattern" can re-include what a parent ignored.
func (s *ignoreStack) ignored(relPath string, isDir bool) bool {
	if s == nil {
		return false
	}
	return s.matcher.Match(splitRel(relPath), isDir)
}

// readIgnorePatterns reads the ignore files of dir. domain is dir's path from the walk root.
func readIgnorePatterns(dir string, domain []string) []gitignore.Pattern {
	var patterns []gitignore.Pattern
	for _, name := range ignoreFileNames {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				log.Printf("Warning: failed to read %s: %v", filepath.Join(dir, name), err)
			}
			continue
		}
		patterns = append(patterns, parseIgnorePatterns(data, domain)...)
	}
	return patterns
}

// parseIgnorePatterns parses gitignore syntax, skipping comments and blank lines.
func parseIgnorePatterns(content []byte, domain []string) []gitignore.Pattern {
	var patterns []gitignore.Pattern
	scanner := bufio.NewScanner(bytes.NewReader(content))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}
		patterns = append(patterns, gitignore.ParsePattern(line, domain))
	}
	return patterns
}

// splitRel splits a slash path relative to the walk root. The root itself is nil.
func splitRel(relPath string) []string {
	if relPath == "" || relPath == "." {
		return nil
	}
	return strings.Split(relPath, "/")
}
