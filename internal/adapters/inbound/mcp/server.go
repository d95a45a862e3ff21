package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/rdc-cli/rdc/internal/domain"
)

// NewRDCMCPServer creates an MCP server with the rdc tools and resources
// registered. Relative capture paths resolve against projectPath, and cfg
// supplies the defaults for arguments a caller leaves out.
func NewRDCMCPServer(projectPath string, cfg domain.Config) *server.MCPServer {
	s := server.NewMCPServer(
		"rdc",
		"0.1.0",
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	svc := newDiffService()
	registerTools(s, svc, projectPath, cfg)
	registerResources(s, svc, projectPath, cfg)

	return s
}
