// Package mcp implements the Model Context Protocol server for AnimSmith.
//
// The MCP server exposes the animation authoring actions as tools and the
// asset catalog as resources, allowing MCP-compatible AI agents to author
// clips and controllers.
package mcp

import (
	"log/slog"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/animsmith/animsmith/internal/asset"
	"github.com/animsmith/animsmith/internal/service/anim"
)

// Server wraps the MCP server with the authoring service layer.
type Server struct {
	mcpServer *mcpserver.MCPServer
	svc       *anim.Service
	store     asset.Store
	logger    *slog.Logger
}

// New creates and configures a new MCP server with all tools and resources.
func New(svc *anim.Service, store asset.Store, logger *slog.Logger, version string) *Server {
	s := &Server{
		svc:    svc,
		store:  store,
		logger: logger,
	}

	s.mcpServer = mcpserver.NewMCPServer(
		"animsmith",
		version,
		mcpserver.WithResourceCapabilities(true, true),
		mcpserver.WithToolCapabilities(true),
	)

	s.registerResources()
	s.registerTools()

	return s
}

// MCPServer returns the underlying mcp-go server for transport setup.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcpServer
}
