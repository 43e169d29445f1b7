// ABOUTME: MCP server setup for the lifeops daily health reports.
// ABOUTME: Wraps the MCP server around a read-only Aggregator.
package mcp

import (
	"context"

	"github.com/harperreed/lifeops/internal/aggregate"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with report access.
type Server struct {
	mcpServer *mcp.Server
	agg       *aggregate.Aggregator
}

// NewServer creates a new MCP server backed by agg.
func NewServer(agg *aggregate.Aggregator) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "lifeops",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		agg:       agg,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
