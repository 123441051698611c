// Package mcp exposes stored game state to MCP clients for inspection.
// The server is read-only: it serves snapshots and the turn log, it
// never mutates them.
package mcp

import (
	"context"
	"errors"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"ascension/internal/save"
)

const (
	serverName    = "ascension-inspector"
	serverVersion = "1.0.0"
)

// Server hosts the inspector MCP server over a save store.
type Server struct {
	mcpServer *mcp.Server
	store     *save.Store
}

// New builds an inspector server backed by the given store.
func New(store *save.Store) *Server {
	mcpServer := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	registerTools(mcpServer, store)
	return &Server{mcpServer: mcpServer, store: store}
}

// Serve runs the server on stdio until the client disconnects or the
// context ends.
func (s *Server) Serve(ctx context.Context) error {
	if s == nil || s.mcpServer == nil {
		return fmt.Errorf("inspector server is not configured")
	}
	err := s.mcpServer.Run(ctx, &mcp.StdioTransport{})
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return nil
	}
	return err
}
