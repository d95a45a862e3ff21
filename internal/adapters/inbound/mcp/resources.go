package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/rdc-cli/rdc/internal/application"
	"github.com/rdc-cli/rdc/internal/domain"
)

// registerResources registers all rdc MCP resources on the given server.
func registerResources(s *server.MCPServer, svc *application.DiffService, projectPath string, cfg domain.Config) {
	// 1. rdc://history - recorded diff runs
	s.AddResource(
		mcplib.NewResource(
			"rdc://history",
			"Diff History",
			mcplib.WithResourceDescription("Recorded draw diff runs with counts by status"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(svc, projectPath, cfg),
	)

	// 2. rdc://config - effective configuration
	s.AddResource(
		mcplib.NewResource(
			"rdc://config",
			"Configuration",
			mcplib.WithResourceDescription("Diff defaults in effect for this server"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(cfg),
	)
}

func handleHistoryResource(svc *application.DiffService, projectPath string, cfg domain.Config) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := svc.History(historyDir(projectPath, cfg), 0)
		if err != nil {
			return nil, err
		}
		if entries == nil {
			entries = []domain.DiffEntry{}
		}
		return jsonContents(request.Params.URI, entries)
	}
}

func handleConfigResource(cfg domain.Config) server.ResourceHandlerFunc {
	return func(_ context.Context, request mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		return jsonContents(request.Params.URI, cfg)
	}
}

func jsonContents(uri string, v any) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
