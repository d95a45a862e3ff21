package mcp_test

import (
	"testing"

	mcpadapter "github.com/rdc-cli/rdc/internal/adapters/inbound/mcp"
	"github.com/rdc-cli/rdc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRDCMCPServer(t *testing.T) {
	s := mcpadapter.NewRDCMCPServer(".", domain.DefaultConfig())
	require.NotNil(t, s)
}

func TestMCPServerHasTools(t *testing.T) {
	s := mcpadapter.NewRDCMCPServer(".", domain.DefaultConfig())
	require.NotNil(t, s)

	tools := s.ListTools()
	require.NotNil(t, tools)

	expectedTools := []string{
		"rdc_diff_draws",
		"rdc_diff_summary",
		"rdc_diff_history",
	}

	for _, name := range expectedTools {
		_, exists := tools[name]
		assert.True(t, exists, "tool %q should be registered", name)
	}

	assert.Len(t, tools, len(expectedTools), "should have exactly %d tools", len(expectedTools))
}
