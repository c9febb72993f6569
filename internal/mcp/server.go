// ABOUTME: MCP server setup for the nutrient tracker.
// ABOUTME: Wraps an MCP server around a Tracker so writes recompute snapshots.
package mcp

import (
	"context"
	"errors"

	"github.com/harperreed/nutrients/internal/tracker"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with tracker access.
type Server struct {
	mcpServer *mcp.Server
	tracker   *tracker.Tracker
}

// NewServer creates a new MCP server over the given tracker.
func NewServer(t *tracker.Tracker) (*Server, error) {
	if t == nil {
		return nil, errors.New("tracker is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "nutrients",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		tracker:   t,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
