// Package files enumerates source trees for digesting and matches the glob patterns
// that select verbatim files.
package files

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// ErrNotDirectory indicates a walk root that is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// EntryKind distinguishes files from directories.
type EntryKind int

const (
	EntryFile EntryKind = iota
	EntryDir
)

func (k EntryKind) String() string {
	if k == EntryDir {
		return "dir"
	}
	return "file"
}

// Entry is one file or directory found by a Walker.
type Entry struct {
	Path    string    // root joined with RelPath
	RelPath string    // slash-separated from the walker's root, "." for the root
	Kind    EntryKind
	Depth   int       // 0 for the directory the walk started at
}

// IsDir reports whether the entry is a directory.
func (e Entry) IsDir() bool { return e.Kind == EntryDir }

// Name returns the last element of the entry's path, "." for the root.
func (e Entry) Name() string {
	if e.RelPath == "." {
		return "."
	}
	return path.Base(e.RelPath)
}

// Walker enumerates a directory tree in lexicographic pre-order, skipping hidden
// entries, entries excluded by .gitignore or .ignore files, configured ignore
// directories and configured ignore globs.
type Walker struct {
	root           string
	absRoot        string
	start          string // slash path below root where Walk begins, "" for root
	ignoreDirs     map[string]bool
	ignorePatterns []compiledPattern
}

// NewWalker creates a walker for root. ignoreDirs are paths, absolute or relative to the
// working directory, with "~" expanded. ignorePatterns are globs matched against the
// slash path relative to root.
func NewWalker(root string, ignoreDirs, ignorePatterns []string) (*Walker, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", root, err)
	}

	w := &Walker{
		root:       root,
		absRoot:    absRoot,
		ignoreDirs: make(map[string]bool, len(ignoreDirs)),
	}

	for _, dir := range ignoreDirs {
		expanded, err := ExpandHome(dir)
		if err != nil {
			return nil, err
		}
		abs, err := filepath.Abs(expanded)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve ignore directory %s: %w", dir, err)
		}
		w.ignoreDirs[abs] = true
	}

	w.ignorePatterns, err = compilePatterns(ignorePatterns)
	if err != nil {
		return nil, err
	}

	return w, nil
}

// Root returns the directory the walk starts at.
func (w *Walker) Root() string { return w.diskPath(w.start) }

// Within returns a walker that only visits the subdirectory rel of the root. Ignore files
// of the root and of every directory above rel still apply, and entries keep their paths
// relative to the root so globs match the same way a full walk would.
func (w *Walker) Within(rel string) (*Walker, error) {
	rel = filepath.ToSlash(filepath.Clean(filepath.FromSlash(rel)))
	if rel == ".." || strings.HasPrefix(rel, "../") || path.IsAbs(rel) {
		return nil, fmt.Errorf("%s is outside %s", rel, w.root)
	}
	if rel == "." {
		rel = ""
	}
	sub := *w
	sub.start = rel
	return &sub, nil
}

// Walk returns the start directory followed by every surviving entry below it. When the
// start directory is itself excluded only the start directory is returned.
func (w *Walker) Walk() ([]Entry, error) {
	startPath := w.Root()
	info, err := os.Stat(startPath)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrNotDirectory, startPath)
	}

	rootRel := "."
	if w.start != "" {
		rootRel = w.start
	}
	entries := []Entry{{Path: startPath, RelPath: rootRel, Kind: EntryDir, Depth: 0}}

	stack, excluded := w.ancestors(w.start)
	if excluded {
		return entries, nil
	}
	if err := w.walkDir(startPath, w.start, 1, stack, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Excluded reports whether p, a file or directory below the root, would be left out of a
// full walk. Paths outside the root are excluded; the root itself never is.
func (w *Walker) Excluded(p string, isDir bool) bool {
	abs, err := filepath.Abs(p)
	if err != nil {
		return true
	}
	rel, err := filepath.Rel(w.absRoot, abs)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return true
	}
	if rel == "." {
		return false
	}

	rel = filepath.ToSlash(rel)
	parent, name := path.Split(rel)
	parent = strings.TrimSuffix(parent, "/")

	stack, excluded := w.ancestors(parent)
	if excluded {
		return true
	}
	stack = stack.push(w.diskPath(parent), parent)
	return w.excluded(name, rel, isDir, stack)
}

// ancestors collects the ignore files of every directory above rel and reports whether rel
// or one of those directories is excluded.
func (w *Walker) ancestors(rel string) (*ignoreStack, bool) {
	var stack *ignoreStack
	relDir := ""
	for _, name := range splitRel(rel) {
		stack = stack.push(w.diskPath(relDir), relDir)
		relDir = joinRel(relDir, name)
		if w.excluded(name, relDir, true, stack) {
			return stack, true
		}
	}
	return stack, false
}

func (w *Walker) excluded(name, relPath string, isDir bool, stack *ignoreStack) bool {
	if strings.HasPrefix(name, ".") {
		return true
	}
	if isDir && w.ignoreDirs[filepath.Join(w.absRoot, filepath.FromSlash(relPath))] {
		return true
	}
	if matchesIgnore(relPath, w.ignorePatterns) {
		return true
	}
	return stack.ignored(relPath, isDir)
}

func (w *Walker) walkDir(dir, relDir string, depth int, parent *ignoreStack, entries *[]Entry) error {
	stack := parent.push(dir, relDir)

	dirEntries, err := os.ReadDir(dir)
	if err != nil {
		// The start directory must be readable; deeper failures are logged and skipped
		if depth == 1 {
			return err
		}
		log.Printf("Warning: error accessing %s: %v", dir, err)
		return nil
	}

	// os.ReadDir returns entries sorted by filename
	for _, de := range dirEntries {
		name := de.Name()
		relPath := joinRel(relDir, name)
		isDir := de.IsDir()

		if w.excluded(name, relPath, isDir, stack) {
			continue
		}

		fullPath := filepath.Join(dir, name)
		kind := EntryFile
		if isDir {
			kind = EntryDir
		}
		*entries = append(*entries, Entry{Path: fullPath, RelPath: relPath, Kind: kind, Depth: depth})

		if isDir {
			if err := w.walkDir(fullPath, relPath, depth+1, stack, entries); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Walker) diskPath(relDir string) string {
	return filepath.Join(w.root, filepath.FromSlash(relDir))
}

func joinRel(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

// Files returns only the file entries, keeping their order.
func Files(entries []Entry) []Entry {
	var out []Entry
	for _, e := range entries {
		if e.Kind == EntryFile {
			out = append(out, e)
		}
	}
	return out
}

// ExpandHome replaces a leading "~" with the user's home directory.
func ExpandHome(p string) (string, error) {
	if p != "~" && !strings.HasPrefix(p, "~/") {
		return p, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to expand %s: %w", p, err)
	}
	return filepath.Join(home, strings.TrimPrefix(p, "~")), nil
}
