package mcp

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/code-digest/internal/files"
	"github.com/mvp-joe/code-digest/internal/processor"
)

// ToolHandler is the signature mcp-go expects for tool handlers. It is an alias so
// handlers pass straight to server.AddTool.
type ToolHandler = func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// DigestSource is what the tools need from the serving side.
type DigestSource struct {
	Root           string // absolute directory the tools are confined to
	Processor      *processor.Processor
	IgnoreDirs     []string
	IgnorePatterns []string
}

type digestFileArgs struct {
	Path string `json:"path"`
}

type digestTreeArgs struct {
	Path string `json:"path,omitempty"`
	Tree bool   `json:"tree,omitempty"`
}

// AddDigestFileTool registers the digest_file tool with an MCP server.
func AddDigestFileTool(s *server.MCPServer, src *DigestSource) {
	tool := mcp.NewTool(
		"digest_file",
		mcp.WithDescription("Return the structural digest of one source file: imports, type declarations and signatures, with function bodies elided. Files matching the include globs are returned verbatim."),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("File path, relative to the project root")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createDigestFileHandler(src))
}

// AddDigestTreeTool registers the digest_tree tool with an MCP server.
func AddDigestTreeTool(s *server.MCPServer, src *DigestSource) {
	tool := mcp.NewTool(
		"digest_tree",
		mcp.WithDescription("Return the digest of every supported file under a directory, in path order, optionally preceded by an ASCII file tree. Use for a quick structural overview of a package or project."),
		mcp.WithString("path",
			mcp.Description("Directory, relative to the project root (default: the root)")),
		mcp.WithBoolean("tree",
			mcp.Description("Print the file tree before the digest (default: false)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createDigestTreeHandler(src))
}

func createDigestFileHandler(src *DigestSource) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, ok := request.GetRawArguments().(map[string]any); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var args digestFileArgs
		if err := bindArguments(request, &args); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}
		if args.Path == "" {
			return mcp.NewToolResultError("path parameter is required"), nil
		}

		abs, rel, err := resolvePath(src.Root, args.Path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		info, err := os.Stat(abs)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("cannot access %s: %v", args.Path, err)), nil
		}
		if info.IsDir() {
			return mcp.NewToolResultError(fmt.Sprintf("%s is a directory, use digest_tree", args.Path)), nil
		}

		result := src.Processor.ProcessFile(files.Entry{Path: abs, RelPath: rel, Kind: files.EntryFile})
		switch {
		case result.Err != nil:
			return mcp.NewToolResultError(fmt.Sprintf("failed to digest %s: %v", args.Path, result.Err)), nil
		case result.Skipped:
			return mcp.NewToolResultError(fmt.Sprintf("unsupported file type: %s", args.Path)), nil
		}
		return mcp.NewToolResultText(result.Output), nil
	}
}

func createDigestTreeHandler(src *DigestSource) ToolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args digestTreeArgs
		if raw := request.GetRawArguments(); raw != nil {
			if _, ok := raw.(map[string]any); !ok {
				return mcp.NewToolResultError("invalid arguments format"), nil
			}
			if err := bindArguments(request, &args); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
			}
		}

		_, rel, err := resolvePath(src.Root, args.Path)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		// Walk from the root so its ignore files and globs apply to the subtree
		rootWalker, err := files.NewWalker(src.Root, src.IgnoreDirs, src.IgnorePatterns)
		if err != nil {
			return nil, err
		}
		walker, err := rootWalker.Within(rel)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		var buf bytes.Buffer
		if _, err := src.Processor.Run(ctx, &buf, walker, args.Tree); err != nil {
			if errors.Is(err, files.ErrNotDirectory) || errors.Is(err, os.ErrNotExist) {
				return mcp.NewToolResultError(err.Error()), nil
			}
			return nil, err
		}
		return mcp.NewToolResultText(buf.String()), nil
	}
}
