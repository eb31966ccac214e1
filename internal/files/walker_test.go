package files

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test Plan for Walker:
// - Root is entry 0 at depth 0, children follow in lexicographic pre-order
// - Hidden files and directories are skipped
// - .gitignore rules apply, including negation and directory-only rules
// - .ignore files in subdirectories apply below their directory only
// - Configured ignore directories and ignore globs prune whole subtrees
// - "**/name" in a root .gitignore prunes name at the root and at any depth
// - Within walks a subtree with the root's ignore files and root-relative paths
// - Within an excluded subtree yields only its start entry
// - Excluded agrees with Walk for files, directories and paths outside the root
// - A file root is rejected with ErrNotDirectory
// - ExpandHome expands "~" only at the start

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0644))
}

func relPaths(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.RelPath
	}
	return out
}

func TestWalker_IgnoreRules(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, ".gitignore", "# build output\n*.log\nbuild/\n!keep.log\n")
	writeFile(t, root, ".hidden/x.go", "package x")
	writeFile(t, root, "a/file_a1.go", "package a")
	writeFile(t, root, "a/file_a2.go", "package a")
	writeFile(t, root, "a/debug.log", "noise")
	writeFile(t, root, "a/keep.log", "kept")
	writeFile(t, root, "b/file_b1.rs", "fn main() {}")
	writeFile(t, root, "build/out.go", "package out")
	writeFile(t, root, "node_modules/pkg/index.js", "")
	writeFile(t, root, "vendor/lib/lib.go", "package lib")
	writeFile(t, root, "sub/.ignore", "secret.txt\n")
	writeFile(t, root, "sub/secret.txt", "")
	writeFile(t, root, "sub/public.txt", "")
	writeFile(t, root, "secret.txt", "")

	w, err := NewWalker(root, []string{filepath.Join(root, "vendor")}, []string{"node_modules/**"})
	require.NoError(t, err)

	entries, err := w.Walk()
	require.NoError(t, err)

	assert.Equal(t, []string{
		".",
		"a",
		"a/file_a1.go",
		"a/file_a2.go",
		"a/keep.log",
		"b",
		"b/file_b1.rs",
		"secret.txt",
		"sub",
		"sub/public.txt",
	}, relPaths(entries))

	assert.Equal(t, root, entries[0].Path)
	assert.Equal(t, 0, entries[0].Depth)
	assert.True(t, entries[0].IsDir())
	assert.Equal(t, ".", entries[0].Name())

	assert.Equal(t, 1, entries[1].Depth)
	assert.Equal(t, EntryDir, entries[1].Kind)
	assert.Equal(t, 2, entries[2].Depth)
	assert.Equal(t, EntryFile, entries[2].Kind)
	assert.Equal(t, filepath.Join(root, "a", "file_a1.go"), entries[2].Path)
	assert.Equal(t, "file_a1.go", entries[2].Name())
}

func TestWalker_DoubleStarMatchesAtRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, ".gitignore", "**/gen\n")
	writeFile(t, root, "gen/x.go", "package gen")
	writeFile(t, root, "a/gen/y.go", "package gen")
	writeFile(t, root, "a/z.go", "package a")

	w, err := NewWalker(root, nil, nil)
	require.NoError(t, err)

	entries, err := w.Walk()
	require.NoError(t, err)
	assert.Equal(t, []string{".", "a", "a/z.go"}, relPaths(entries))
}

func TestWalker_Within(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, ".gitignore", "*.log\n/src/generated/\n")
	writeFile(t, root, "src/.ignore", "scratch.go\n")
	writeFile(t, root, "src/lib/lib.go", "package lib")
	writeFile(t, root, "src/lib/trace.log", "noise")
	writeFile(t, root, "src/lib/scratch.go", "package lib")
	writeFile(t, root, "src/generated/gen.go", "package generated")
	writeFile(t, root, "src/lib/skip_me.go", "package lib")
	writeFile(t, root, "other.go", "package other")

	w, err := NewWalker(root, nil, []string{"src/lib/skip_*.go"})
	require.NoError(t, err)

	sub, err := w.Within("src/lib")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "src", "lib"), sub.Root())

	entries, err := sub.Walk()
	require.NoError(t, err)
	assert.Equal(t, []string{"src/lib", "src/lib/lib.go"}, relPaths(entries))
	assert.Equal(t, 0, entries[0].Depth)
	assert.Equal(t, 1, entries[1].Depth)
	assert.Equal(t, filepath.Join(root, "src", "lib", "lib.go"), entries[1].Path)

	excluded, err := w.Within("src/generated")
	require.NoError(t, err)
	entries, err = excluded.Walk()
	require.NoError(t, err)
	assert.Equal(t, []string{"src/generated"}, relPaths(entries))

	whole, err := w.Within(".")
	require.NoError(t, err)
	entries, err = whole.Walk()
	require.NoError(t, err)
	assert.Equal(t, ".", entries[0].RelPath)
	assert.Contains(t, relPaths(entries), "other.go")

	_, err = w.Within("../elsewhere")
	assert.Error(t, err)
}

func TestWalker_Excluded(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, ".gitignore", "*.log\nbuild/\n")
	writeFile(t, root, "pkg/.ignore", "local/\n")

	w, err := NewWalker(root, []string{filepath.Join(root, "vendor")}, []string{"node_modules/**"})
	require.NoError(t, err)

	tests := []struct {
		path  string
		isDir bool
		want  bool
	}{
		{"main.go", false, false},
		{"pkg", true, false},
		{"pkg/util.go", false, false},
		{"debug.log", false, true},
		{"pkg/trace.log", false, true},
		{"build", true, true},
		{"build/out.go", false, true},
		{"pkg/local", true, true},
		{"local", true, false},
		{"vendor", true, true},
		{"vendor/lib/lib.go", false, true},
		{"node_modules", true, true},
		{"node_modules/pkg", true, true},
		{".git", true, true},
		{".git/objects", true, true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, w.Excluded(filepath.Join(root, filepath.FromSlash(tt.path)), tt.isDir))
		})
	}

	assert.False(t, w.Excluded(root, true))
	assert.True(t, w.Excluded(filepath.Dir(root), true))
}

func TestWalker_IgnoreGlobAtRoot(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "main.go", "package main")
	writeFile(t, root, "main_test.go", "package main")
	writeFile(t, root, "pkg/util_test.go", "package pkg")
	writeFile(t, root, "pkg/util.go", "package pkg")

	w, err := NewWalker(root, nil, []string{"**/*_test.go"})
	require.NoError(t, err)

	entries, err := w.Walk()
	require.NoError(t, err)
	assert.Equal(t, []string{".", "main.go", "pkg", "pkg/util.go"}, relPaths(entries))
	assert.Equal(t, []string{"main.go", "pkg/util.go"}, relPaths(Files(entries)))
}

func TestWalker_EmptyDirectory(t *testing.T) {
	t.Parallel()

	w, err := NewWalker(t.TempDir(), nil, nil)
	require.NoError(t, err)

	entries, err := w.Walk()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Empty(t, Files(entries))
}

func TestWalker_RootMustBeDirectory(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	writeFile(t, root, "file.go", "package f")

	w, err := NewWalker(filepath.Join(root, "file.go"), nil, nil)
	require.NoError(t, err)

	_, err = w.Walk()
	assert.ErrorIs(t, err, ErrNotDirectory)

	w, err = NewWalker(filepath.Join(root, "missing"), nil, nil)
	require.NoError(t, err)
	_, err = w.Walk()
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestNewWalker_InvalidPattern(t *testing.T) {
	t.Parallel()

	_, err := NewWalker(t.TempDir(), nil, []string{"[unclosed"})
	assert.Error(t, err)
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandHome("~/projects/x")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "projects", "x"), got)

	got, err = ExpandHome("~")
	require.NoError(t, err)
	assert.Equal(t, home, got)

	got, err = ExpandHome("/abs/~/x")
	require.NoError(t, err)
	assert.Equal(t, "/abs/~/x", got)
}

func TestWalker_IgnoreDirWithTilde(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	writeFile(t, home, "skip/a.go", "package a")
	writeFile(t, home, "keep/b.go", "package b")

	w, err := NewWalker(home, []string{"~/skip"}, nil)
	require.NoError(t, err)

	entries, err := w.Walk()
	require.NoError(t, err)
	assert.Equal(t, []string{".", "keep", "keep/b.go"}, relPaths(entries))
}
