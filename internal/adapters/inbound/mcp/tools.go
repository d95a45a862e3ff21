package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cast"

	"github.com/rdc-cli/rdc/internal/adapters/outbound/cache"
	"github.com/rdc-cli/rdc/internal/adapters/outbound/drawfile"
	"github.com/rdc-cli/rdc/internal/adapters/outbound/gitinfo"
	"github.com/rdc-cli/rdc/internal/adapters/outbound/history"
	"github.com/rdc-cli/rdc/internal/adapters/outbound/render"
	"github.com/rdc-cli/rdc/internal/application"
	"github.com/rdc-cli/rdc/internal/domain"
	"github.com/rdc-cli/rdc/internal/domain/drawdiff"
)

// registerTools registers all rdc MCP tools on the given server.
func registerTools(s *server.MCPServer, svc *application.DiffService, projectPath string, cfg domain.Config) {
	// 1. rdc_diff_draws
	s.AddTool(
		mcplib.NewTool("rdc_diff_draws",
			mcplib.WithDescription("Diff the draw calls of two exported captures and return the rendered diff"),
			mcplib.WithString("capture_a",
				mcplib.Required(),
				mcplib.Description("Path to the baseline draw list (JSON), relative to the project"),
			),
			mcplib.WithString("capture_b",
				mcplib.Required(),
				mcplib.Description("Path to the draw list to compare against the baseline"),
			),
			mcplib.WithString("format", mcplib.Description("Output format: tsv, unified, json, shortstat (default from config)")),
			mcplib.WithString("fallback", mcplib.Description("Without debug markers: positional or refuse")),
			mcplib.WithNumber("min_confidence", mcplib.Description("Minimum share of positional pairs agreeing on shader and topology, 0 to 1")),
		),
		handleDiffDraws(svc, projectPath, cfg),
	)

	// 2. rdc_diff_summary
	s.AddTool(
		mcplib.NewTool("rdc_diff_summary",
			mcplib.WithDescription("Diff two exported captures and return only the counts by status and by pass as JSON"),
			mcplib.WithString("capture_a", mcplib.Required(), mcplib.Description("Path to the baseline draw list")),
			mcplib.WithString("capture_b", mcplib.Required(), mcplib.Description("Path to the draw list to compare")),
			mcplib.WithString("fallback", mcplib.Description("Without debug markers: positional or refuse")),
		),
		handleDiffSummary(svc, projectPath, cfg),
	)

	// 3. rdc_diff_history
	s.AddTool(
		mcplib.NewTool("rdc_diff_history",
			mcplib.WithDescription("Returns recorded diff runs, oldest first, as JSON"),
			mcplib.WithNumber("limit", mcplib.Description("Return only the most recent N runs")),
		),
		handleDiffHistory(svc, projectPath, cfg),
	)
}

// newDiffService builds the service shared by all handlers. Capture files are
// cached between calls.
func newDiffService() *application.DiffService {
	return application.NewDiffService(cache.New(drawfile.New()), history.New(), gitinfo.New())
}

// diffRequest runs the diff described by the tool arguments.
func diffRequest(ctx context.Context, svc *application.DiffService, projectPath string, cfg domain.Config, request mcplib.CallToolRequest) (*application.DiffReport, error) {
	refA, err := request.RequireString("capture_a")
	if err != nil {
		return nil, err
	}
	refB, err := request.RequireString("capture_b")
	if err != nil {
		return nil, err
	}
	if refA == drawfile.StdinRef || refB == drawfile.StdinRef {
		return nil, fmt.Errorf("stdin is not available to MCP tools; pass file paths")
	}

	args := request.GetArguments()
	opts := application.DiffOptions{
		Align: drawdiff.AlignOptions{
			Fallback:      cfg.Diff.Fallback,
			MinConfidence: cfg.Diff.MinConfidenceValue(),
		},
		Timeout: cfg.Diff.Timeout,
	}

	if fb, _ := args["fallback"].(string); fb != "" {
		policy, err := domain.ParseFallback(fb)
		if err != nil {
			return nil, err
		}
		opts.Align.Fallback = policy
	}
	if raw, ok := args["min_confidence"]; ok && raw != nil {
		mc, err := cast.ToFloat64E(raw)
		if err != nil || mc < 0 || mc > 1 {
			return nil, fmt.Errorf("min_confidence must be a number between 0.0 and 1.0 (got %v)", raw)
		}
		opts.Align.MinConfidence = mc
	}

	return svc.Diff(ctx, resolve(projectPath, refA), resolve(projectPath, refB), opts)
}

func handleDiffDraws(svc *application.DiffService, projectPath string, cfg domain.Config) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		format := cfg.Diff.Format
		if f, _ := request.GetArguments()["format"].(string); f != "" {
			parsed, err := domain.ParseFormat(f)
			if err != nil {
				return errorResult(err.Error()), nil
			}
			format = parsed
		}

		report, err := diffRequest(ctx, svc, projectPath, cfg, request)
		if err != nil {
			return errorResult(fmt.Sprintf("diff failed: %v", err)), nil
		}

		out, err := render.Diff(format, report.Result, report.Summary, render.Options{
			LabelA: report.CaptureA,
			LabelB: report.CaptureB,
			Header: cfg.Diff.HeaderEnabled(),
		})
		if err != nil {
			return errorResult(err.Error()), nil
		}
		return textResult(out), nil
	}
}

func handleDiffSummary(svc *application.DiffService, projectPath string, cfg domain.Config) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		report, err := diffRequest(ctx, svc, projectPath, cfg, request)
		if err != nil {
			return errorResult(fmt.Sprintf("diff failed: %v", err)), nil
		}
		return jsonResult(report.Summary)
	}
}

func handleDiffHistory(svc *application.DiffService, projectPath string, cfg domain.Config) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		limit := cast.ToInt(request.GetArguments()["limit"])

		entries, err := svc.History(historyDir(projectPath, cfg), limit)
		if err != nil {
			return errorResult(err.Error()), nil
		}
		if entries == nil {
			entries = []domain.DiffEntry{}
		}
		return jsonResult(entries)
	}
}

func resolve(projectPath, ref string) string {
	if filepath.IsAbs(ref) {
		return ref
	}
	return filepath.Join(projectPath, ref)
}

func historyDir(projectPath string, cfg domain.Config) string {
	if cfg.History.Dir != "" {
		return resolve(projectPath, cfg.History.Dir)
	}
	return projectPath
}

// jsonResult marshals v to JSON and returns it as a text content result.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// textResult returns a plain text content result.
func textResult(text string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(text)},
	}
}

// errorResult returns a tool result that indicates an error occurred.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
