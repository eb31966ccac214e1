package mcp

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/code-digest/internal/digest/languages"
	"github.com/mvp-joe/code-digest/internal/files"
	"github.com/mvp-joe/code-digest/internal/processor"
)

// Test Plan for MCP tools:
// - digest_file returns the rendered block for a supported file
// - digest_file returns glob-matched files verbatim
// - digest_file reports missing path, unsupported type, directories and paths outside the root
// - digest_tree digests a subdirectory and optionally prints the tree first
// - digest_tree on a subdirectory honors the root .gitignore and root-relative include globs
// - digest_tree accepts a request without arguments
// - handlers are usable as server.ToolHandlerFunc
// - string-typed booleans from clients are coerced
// - NewServer rejects an incomplete source

func newTestSource(t *testing.T) *DigestSource {
	t.Helper()
	root := t.TempDir()
	write := func(rel, content string) {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	write("main.go", "package main\n\nimport \"fmt\"\n\nfunc main() {\n\tfmt.Println(\"hi\")\n}\n")
	write("README.md", "# Title\n")
	write("notes.txt", "plain")
	write("src/lib.rs", "pub fn add(a: i32, b: i32) -> i32 {\n    a + b\n}\n")

	set, err := languages.NewSet(languages.DefaultExtensions())
	require.NoError(t, err)
	include, err := files.NewGlobMatcher([]string{"*.md"})
	require.NoError(t, err)

	return &DigestSource{
		Root:      root,
		Processor: processor.New(processor.Options{Languages: set, Include: include, Workers: 2}),
	}
}

func callTool(t *testing.T, handler ToolHandler, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	request := mcp.CallToolRequest{}
	if args != nil {
		request.Params = mcp.CallToolParams{Arguments: args}
	}
	result, err := handler(context.Background(), request)
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "content should be text")
	return textContent.Text
}

func TestAddTools(t *testing.T) {
	t.Parallel()

	mcpServer := server.NewMCPServer("test", "1.0.0", server.WithToolCapabilities(true))
	src := newTestSource(t)

	AddDigestFileTool(mcpServer, src)
	AddDigestTreeTool(mcpServer, src)

	// mcp-go does not expose the tool list, handlers are exercised directly below
	assert.NotNil(t, mcpServer)

	handlers := map[string]server.ToolHandlerFunc{
		"digest_file": createDigestFileHandler(src),
		"digest_tree": createDigestTreeHandler(src),
	}
	for name, handler := range handlers {
		request := mcp.CallToolRequest{}
		request.Params = mcp.CallToolParams{Name: name, Arguments: map[string]interface{}{"path": "src/lib.rs"}}
		result, err := handler(context.Background(), request)
		require.NoError(t, err, name)
		require.NotNil(t, result, name)
	}
}

func TestDigestFileHandler_GoFile(t *testing.T) {
	t.Parallel()

	src := newTestSource(t)
	result := callTool(t, createDigestFileHandler(src), map[string]interface{}{"path": "main.go"})

	assert.False(t, result.IsError)
	expected := "`" + filepath.Join(src.Root, "main.go") + "`\n" +
		"```go\nimport \"fmt\"\n\nfunc main() {\n\t// ...\n}\n```"
	assert.Equal(t, expected, resultText(t, result))
}

func TestDigestFileHandler_Verbatim(t *testing.T) {
	t.Parallel()

	src := newTestSource(t)
	result := callTool(t, createDigestFileHandler(src), map[string]interface{}{"path": "README.md"})

	assert.False(t, result.IsError)
	assert.Equal(t, "`"+filepath.Join(src.Root, "README.md")+"`\n```\n# Title\n```", resultText(t, result))
}

func TestDigestFileHandler_Errors(t *testing.T) {
	t.Parallel()

	src := newTestSource(t)
	handler := createDigestFileHandler(src)

	tests := []struct {
		name string
		args map[string]interface{}
		want string
	}{
		{"missing path", map[string]interface{}{}, "path parameter is required"},
		{"unsupported", map[string]interface{}{"path": "notes.txt"}, "unsupported file type"},
		{"directory", map[string]interface{}{"path": "src"}, "is a directory"},
		{"missing file", map[string]interface{}{"path": "nope.go"}, "cannot access"},
		{"outside root", map[string]interface{}{"path": "../etc/passwd"}, "outside project root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := callTool(t, handler, tt.args)
			assert.True(t, result.IsError)
			assert.Contains(t, resultText(t, result), tt.want)
		})
	}
}

func TestDigestTreeHandler_Subdirectory(t *testing.T) {
	t.Parallel()

	src := newTestSource(t)
	result := callTool(t, createDigestTreeHandler(src), map[string]interface{}{"path": "src"})

	assert.False(t, result.IsError)
	text := resultText(t, result)
	assert.True(t, strings.HasPrefix(text, "`"+filepath.Join(src.Root, "src", "lib.rs")+"`\n```rust\n"), text)
	assert.NotContains(t, text, "main.go")
}

func TestDigestTreeHandler_SubdirectoryUsesRootRules(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	write := func(rel, content string) {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}
	write(".gitignore", "generated.rs\n")
	write("src/lib.rs", "pub fn add(a: i32, b: i32) -> i32 {\n    a + b\n}\n")
	write("src/generated.rs", "pub fn noise() {}\n")
	write("src/notes/todo.txt", "ship it")

	set, err := languages.NewSet(languages.DefaultExtensions())
	require.NoError(t, err)
	include, err := files.NewGlobMatcher([]string{"src/notes/*.txt"})
	require.NoError(t, err)
	src := &DigestSource{
		Root:      root,
		Processor: processor.New(processor.Options{Languages: set, Include: include, Workers: 2}),
	}

	result := callTool(t, createDigestTreeHandler(src), map[string]interface{}{"path": "src", "tree": true})

	assert.False(t, result.IsError)
	text := resultText(t, result)
	assert.True(t, strings.HasPrefix(text, ".\n├── lib.rs\n└── notes\n    └── todo.txt\n\n"), text)
	assert.NotContains(t, text, "generated.rs")
	assert.Contains(t, text, "`"+filepath.Join(root, "src", "notes", "todo.txt")+"`\n```\nship it\n```")
}

func TestDigestTreeHandler_WithTree(t *testing.T) {
	t.Parallel()

	src := newTestSource(t)
	result := callTool(t, createDigestTreeHandler(src), map[string]interface{}{"tree": "true"})

	assert.False(t, result.IsError)
	text := resultText(t, result)
	assert.True(t, strings.HasPrefix(text, ".\n├── README.md\n├── main.go\n├── notes.txt\n└── src\n    └── lib.rs\n\n"), text)
	assert.Contains(t, text, "```go\n")
	assert.Contains(t, text, "```rust\n")
}

func TestDigestTreeHandler_NoArguments(t *testing.T) {
	t.Parallel()

	src := newTestSource(t)
	result := callTool(t, createDigestTreeHandler(src), nil)

	assert.False(t, result.IsError)
	text := resultText(t, result)
	assert.True(t, strings.HasPrefix(text, "`"+filepath.Join(src.Root, "README.md")+"`"), text)
	assert.NotContains(t, text, "├──")
}

func TestDigestTreeHandler_Errors(t *testing.T) {
	t.Parallel()

	src := newTestSource(t)
	handler := createDigestTreeHandler(src)

	result := callTool(t, handler, map[string]interface{}{"path": "main.go"})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "not a directory")

	result = callTool(t, handler, map[string]interface{}{"path": "../.."})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "outside project root")
}

func TestNewServer(t *testing.T) {
	t.Parallel()

	_, err := NewServer(nil, "dev")
	assert.Error(t, err)

	_, err = NewServer(&DigestSource{Root: "/tmp"}, "dev")
	assert.Error(t, err)

	src := newTestSource(t)
	s, err := NewServer(src, "dev")
	require.NoError(t, err)
	assert.NotNil(t, s.mcp)
}
