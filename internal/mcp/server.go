// Package mcp serves code digests over the Model Context Protocol.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"
)

// ServerName is reported to MCP clients.
const ServerName = "code-digest"

// Server manages the MCP server lifecycle.
type Server struct {
	src *DigestSource
	mcp *server.MCPServer
}

// NewServer creates an MCP server exposing digest_file and digest_tree for src.Root.
func NewServer(src *DigestSource, version string) (*Server, error) {
	if src == nil || src.Processor == nil {
		return nil, fmt.Errorf("digest source with a processor is required")
	}
	if src.Root == "" {
		return nil, fmt.Errorf("project root is required")
	}

	mcpServer := server.NewMCPServer(
		ServerName,
		version,
		server.WithToolCapabilities(true),
	)

	AddDigestFileTool(mcpServer, src)
	AddDigestTreeTool(mcpServer, src)

	return &Server{src: src, mcp: mcpServer}, nil
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio for %s...", s.src.Root)
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
			return
		}
		errCh <- nil
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		return nil
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
