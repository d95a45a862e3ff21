package cli_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rdc-cli/rdc/internal/adapters/inbound/cli"
)

func TestMCPCommandExists(t *testing.T) {
	cmd := cli.NewRootCmdForTest()
	cmd.SetArgs([]string{"mcp", "--help"})
	err := cmd.Execute()
	assert.NoError(t, err)
}

func TestMCPServeFlags(t *testing.T) {
	root := cli.NewRootCmdForTest()
	serve, _, err := root.Find([]string{"mcp", "serve"})
	require.NoError(t, err)
	assert.Equal(t, "serve", serve.Name())

	path := serve.Flags().Lookup("path")
	require.NotNil(t, path)
	assert.Equal(t, "", path.DefValue)
	assert.Contains(t, path.Usage, "relative capture paths")

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetArgs([]string{"mcp", "serve", "--help"})
	require.NoError(t, root.Execute())
	assert.Contains(t, out.String(), "--path")
}
