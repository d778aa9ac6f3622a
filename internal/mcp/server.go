// ABOUTME: MCP server setup for the fitness tracker.
// ABOUTME: Wraps the MCP server around the fitness application service.
package mcp

import (
	"context"
	"errors"

	"github.com/harperreed/fitness/internal/fitness"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Server wraps the MCP server with access to the fitness service.
type Server struct {
	mcpServer *mcp.Server
	svc       *fitness.Service
}

// NewServer creates a new MCP server over the given service.
func NewServer(svc *fitness.Service) (*Server, error) {
	if svc == nil {
		return nil, errors.New("fitness service is required")
	}

	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "fitness",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		svc:       svc,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}
