package cli

import (
	mcpadapter "github.com/rdc-cli/rdc/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	"github.com/rdc-cli/rdc/internal/domain"
)

func newMCPCmd(global *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the rdc MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(global))
	return cmd
}

func newMCPServeCmd(global *globalOptions) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start rdc MCP server (stdio)",
		Long:  "Start the rdc MCP server using stdio transport. This lets AI assistants diff exported draw lists and read the diff history.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.ServeStdio(newMCPServer(projectPath, global.cfg))
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Directory that relative capture paths resolve against (defaults to current working directory)")

	return cmd
}

func newMCPServer(projectPath string, cfg domain.Config) *server.MCPServer {
	if projectPath == "" {
		projectPath = "."
	}
	return mcpadapter.NewRDCMCPServer(projectPath, cfg)
}
