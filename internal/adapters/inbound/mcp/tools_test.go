package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdc-cli/rdc/internal/adapters/outbound/history"
	"github.com/rdc-cli/rdc/internal/domain"
)

const (
	beforeJSON = `[
  {"eid": 10, "marker": "Shadow", "triangles": 100, "instances": 1, "pass": "Shadow"},
  {"eid": 20, "marker": "GBuffer", "triangles": 200, "instances": 1, "pass": "GBuffer"}
]`
	afterJSON = `[
  {"eid": 11, "marker": "Shadow", "triangles": 100, "instances": 1, "pass": "Shadow"},
  {"eid": 21, "marker": "GBuffer", "triangles": 300, "instances": 1, "pass": "GBuffer"}
]`
)

func writeCaptures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "before.json"), []byte(beforeJSON), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "after.json"), []byte(afterJSON), 0644))
	return dir
}

func callRequest(name string, args map[string]any) mcplib.CallToolRequest {
	var req mcplib.CallToolRequest
	req.Params.Name = name
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcplib.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcplib.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestDiffDraws_TSV(t *testing.T) {
	dir := writeCaptures(t)
	handler := handleDiffDraws(newDiffService(), dir, domain.DefaultConfig())

	res, err := handler(context.Background(), callRequest("rdc_diff_draws", map[string]any{
		"capture_a": "before.json",
		"capture_b": "after.json",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)

	out := resultText(t, res)
	assert.Contains(t, out, "STATUS\tEID_A")
	assert.Contains(t, out, "MODIFIED\t20\t21\tGBuffer\t200\t300\t1\t1\ttriangles\thigh")
}

func TestDiffDraws_Shortstat(t *testing.T) {
	dir := writeCaptures(t)
	handler := handleDiffDraws(newDiffService(), dir, domain.DefaultConfig())

	res, err := handler(context.Background(), callRequest("rdc_diff_draws", map[string]any{
		"capture_a": "before.json",
		"capture_b": "after.json",
		"format":    "shortstat",
	}))
	require.NoError(t, err)
	assert.Equal(t, "2 draws: 1 equal, 1 modified, 0 added, 0 deleted\n", resultText(t, res))
}

func TestDiffDraws_UnknownFormat(t *testing.T) {
	dir := writeCaptures(t)
	handler := handleDiffDraws(newDiffService(), dir, domain.DefaultConfig())

	res, err := handler(context.Background(), callRequest("rdc_diff_draws", map[string]any{
		"capture_a": "before.json",
		"capture_b": "after.json",
		"format":    "xml",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestDiffDraws_MissingArgument(t *testing.T) {
	handler := handleDiffDraws(newDiffService(), t.TempDir(), domain.DefaultConfig())

	res, err := handler(context.Background(), callRequest("rdc_diff_draws", map[string]any{
		"capture_a": "before.json",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestDiffDraws_RejectsStdin(t *testing.T) {
	dir := writeCaptures(t)
	handler := handleDiffDraws(newDiffService(), dir, domain.DefaultConfig())

	res, err := handler(context.Background(), callRequest("rdc_diff_draws", map[string]any{
		"capture_a": "-",
		"capture_b": "after.json",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "stdin")
}

func TestDiffDraws_BadMinConfidence(t *testing.T) {
	dir := writeCaptures(t)
	handler := handleDiffDraws(newDiffService(), dir, domain.DefaultConfig())

	res, err := handler(context.Background(), callRequest("rdc_diff_draws", map[string]any{
		"capture_a":      "before.json",
		"capture_b":      "after.json",
		"min_confidence": 1.5,
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestDiffSummary(t *testing.T) {
	dir := writeCaptures(t)
	handler := handleDiffSummary(newDiffService(), dir, domain.DefaultConfig())

	res, err := handler(context.Background(), callRequest("rdc_diff_summary", map[string]any{
		"capture_a": "before.json",
		"capture_b": "after.json",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError)

	var summary domain.Summary
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &summary))
	assert.Equal(t, domain.AlignModeLCS, summary.Mode)
	assert.Equal(t, domain.Counts{Equal: 1, Modified: 1}, summary.Counts)
	require.Len(t, summary.ByPass, 2)
	assert.Equal(t, "Shadow", summary.ByPass[0].Pass)
}

func TestDiffHistory(t *testing.T) {
	dir := t.TempDir()
	hist := history.New()
	require.NoError(t, hist.Save(dir, domain.DiffEntry{ID: "one", CaptureA: "a", CaptureB: "b"}))
	require.NoError(t, hist.Save(dir, domain.DiffEntry{ID: "two", CaptureA: "a", CaptureB: "c"}))

	handler := handleDiffHistory(newDiffService(), dir, domain.DefaultConfig())
	res, err := handler(context.Background(), callRequest("rdc_diff_history", map[string]any{"limit": 1}))
	require.NoError(t, err)

	var entries []domain.DiffEntry
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "two", entries[0].ID)
}

func TestHistoryResource_Empty(t *testing.T) {
	handler := handleHistoryResource(newDiffService(), t.TempDir(), domain.DefaultConfig())

	var req mcplib.ReadResourceRequest
	req.Params.URI = "rdc://history"
	contents, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcplib.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, "rdc://history", text.URI)
	assert.Equal(t, "[]", text.Text)
}
