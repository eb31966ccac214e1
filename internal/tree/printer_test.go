package tree

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/code-digest/internal/files"
)

// Test Plan for the tree printer:
// - Root prints as "."
// - Two directories with three files use ├── for non-last and └── for last siblings
// - Descendants of a last directory are indented with blanks instead of │
// - Deep nesting keeps │ for ancestors that still have following siblings
// - Empty input prints nothing

func entry(rel string, kind files.EntryKind, depth int) files.Entry {
	return files.Entry{Path: rel, RelPath: rel, Kind: kind, Depth: depth}
}

func TestRender_TwoDirectories(t *testing.T) {
	t.Parallel()

	entries := []files.Entry{
		entry(".", files.EntryDir, 0),
		entry("a", files.EntryDir, 1),
		entry("a/file_a1.txt", files.EntryFile, 2),
		entry("a/file_a2.txt", files.EntryFile, 2),
		entry("b", files.EntryDir, 1),
		entry("b/file_b1.txt", files.EntryFile, 2),
	}

	want := ".\n" +
		"├── a\n" +
		"│   ├── file_a1.txt\n" +
		"│   └── file_a2.txt\n" +
		"└── b\n" +
		"    └── file_b1.txt\n"
	assert.Equal(t, want, Render(entries))
}

func TestRender_DeepNesting(t *testing.T) {
	t.Parallel()

	entries := []files.Entry{
		entry(".", files.EntryDir, 0),
		entry("cmd", files.EntryDir, 1),
		entry("cmd/tool", files.EntryDir, 2),
		entry("cmd/tool/main.go", files.EntryFile, 3),
		entry("cmd/x.go", files.EntryFile, 2),
		entry("go.mod", files.EntryFile, 1),
		entry("internal", files.EntryDir, 1),
		entry("internal/a", files.EntryDir, 2),
		entry("internal/a/a.go", files.EntryFile, 3),
	}

	want := ".\n" +
		"├── cmd\n" +
		"│   ├── tool\n" +
		"│   │   └── main.go\n" +
		"│   └── x.go\n" +
		"├── go.mod\n" +
		"└── internal\n" +
		"    └── a\n" +
		"        └── a.go\n"
	assert.Equal(t, want, Render(entries))
}

func TestPrint(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Print(&buf, []files.Entry{entry(".", files.EntryDir, 0), entry("main.go", files.EntryFile, 1)}))
	assert.Equal(t, ".\n└── main.go\n", buf.String())

	buf.Reset()
	require.NoError(t, Print(&buf, nil))
	assert.Empty(t, buf.String())
}
