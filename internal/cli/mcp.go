package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/code-digest/internal/mcp"
	"github.com/mvp-joe/code-digest/internal/processor"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [directory]",
	Short: "Start the MCP server exposing code digests",
	Long: `Start a Model Context Protocol (MCP) server that lets coding assistants
request structural digests of the project.

The MCP server:
- Provides digest_file for a single source file
- Provides digest_tree for a directory, with an optional file tree
- Caches digests in memory across calls
- Communicates via stdio (standard MCP transport)

Example:
  code-digest mcp`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	root, err := filepath.Abs(targetDir(args))
	if err != nil {
		return fmt.Errorf("failed to resolve project root: %w", err)
	}

	// Stdout carries the protocol, so no progress output
	p, err := newPipeline(root, cmd.Flags(), processor.NoOpProgressReporter{})
	if err != nil {
		return err
	}
	defer p.Close()

	fmt.Fprintf(os.Stderr, "code-digest MCP Server\n")
	fmt.Fprintf(os.Stderr, "Project Root: %s\n", root)
	fmt.Fprintf(os.Stderr, "Languages: %v\n\n", p.langs.Extensions())

	srv, err := mcp.NewServer(&mcp.DigestSource{
		Root:           root,
		Processor:      p.proc,
		IgnoreDirs:     p.cfg.Paths.IgnoreDirs,
		IgnorePatterns: p.cfg.Paths.Ignore,
	}, Version)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	return srv.Serve(cmd.Context())
}
