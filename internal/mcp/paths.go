package mcp

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot indicates a requested path that escapes the served directory.
var ErrOutsideRoot = errors.New("path is outside project root")

// resolvePath turns a path relative to root (or absolute) into an absolute path and a
// slash-separated path relative to root.
func resolvePath(root, p string) (abs, rel string, err error) {
	if p == "" {
		p = "."
	}
	if !filepath.IsAbs(p) {
		p = filepath.Join(root, p)
	}
	abs = filepath.Clean(p)

	r, err := filepath.Rel(root, abs)
	if err != nil {
		return "", "", fmt.Errorf("%w: %s", ErrOutsideRoot, p)
	}
	if r == ".." || strings.HasPrefix(r, ".."+string(filepath.Separator)) {
		return "", "", fmt.Errorf("%w: %s", ErrOutsideRoot, p)
	}
	return abs, filepath.ToSlash(r), nil
}
