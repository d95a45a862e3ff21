package logger_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/op/go-logging"
	"github.com/rdc-cli/rdc/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, logger.Init(&buf, "WARNING", ""))

	log := logging.MustGetLogger("rdc.test")
	log.Info("hidden")
	log.Warning("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "rdc.test")
}

func TestInit_UnknownLevel(t *testing.T) {
	err := logger.Init(&bytes.Buffer{}, "LOUD", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `log level "LOUD"`)
}

func TestInit_WritesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "logs", "rdc.log")

	require.NoError(t, logger.Init(&bytes.Buffer{}, "DEBUG", path))
	logging.MustGetLogger("rdc.test").Debug("to file")

	_, err := os.Stat(filepath.Join(dir, "logs"))
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "to file")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, logger.IsTerminal(&bytes.Buffer{}))

	f, err := os.Create(filepath.Join(t.TempDir(), "out.log"))
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, logger.IsTerminal(f))
}
