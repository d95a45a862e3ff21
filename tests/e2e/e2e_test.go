package e2e_test

import (
	"bytes"
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rdc-cli/rdc/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var binaryPath string

func TestMain(m *testing.M) {
	// Build binary before running tests
	dir, err := os.MkdirTemp("", "rdc-e2e")
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)

	binaryPath = filepath.Join(dir, "rdc")
	cmd := exec.Command("go", "build", "-o", binaryPath, "../../cmd/rdc")
	if out, err := cmd.CombinedOutput(); err != nil {
		panic("build failed: " + string(out))
	}

	os.Exit(m.Run())
}

func fixturePath(name string) string {
	abs, _ := filepath.Abs(filepath.Join("../../testdata/draws", name))
	return abs
}

// run executes the binary in dir and returns stdout, stderr and the exit code.
func run(t *testing.T, dir, stdin string, args ...string) (string, string, int) {
	t.Helper()
	cmd := exec.Command(binaryPath, args...)
	cmd.Dir = dir
	cmd.Stdin = strings.NewReader(stdin)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	exitCode := 0
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
	}
	return stdout.String(), stderr.String(), exitCode
}

// --- Diff Tests ---

func TestE2E_DiffIdentical(t *testing.T) {
	out, _, code := run(t, t.TempDir(), "", "diff", fixturePath("frame_a.json"), fixturePath("frame_a.json"), "--draws")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "STATUS\tEID_A")
	assert.Equal(t, 5, strings.Count(out, "\n"), "header plus four rows")
}

func TestE2E_DiffChanges(t *testing.T) {
	out, stderr, code := run(t, t.TempDir(), "", "diff", fixturePath("frame_a.json"), fixturePath("frame_b.json"), "--draws", "--no-header")
	assert.Equal(t, 1, code)
	assert.Empty(t, stderr)

	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 5)
	assert.True(t, strings.HasPrefix(lines[0], "EQUAL\t10\t12\tShadow/Cascade0"))
	assert.True(t, strings.HasPrefix(lines[1], "DELETED\t11\t-\tShadow/Cascade1"))
	assert.Equal(t, "MODIFIED\t20\t22\tGBuffer/Opaque\t50000\t52000\t4\t4\ttriangles\thigh", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "ADDED\t-\t23\tGBuffer/Decals"))
	assert.True(t, strings.HasPrefix(lines[4], "EQUAL\t30\t31\tUI/HUD"))
}

func TestE2E_DiffShortstat(t *testing.T) {
	out, _, code := run(t, t.TempDir(), "", "diff", fixturePath("frame_a.json"), fixturePath("frame_b.json"), "--draws", "--shortstat")
	assert.Equal(t, 1, code)
	assert.Equal(t, "5 draws: 2 equal, 1 modified, 1 added, 1 deleted\n", out)
}

func TestE2E_DiffJSON(t *testing.T) {
	out, _, code := run(t, t.TempDir(), "", "diff", fixturePath("frame_a.json"), fixturePath("frame_b.json"), "--draws", "--format", "json")
	assert.Equal(t, 1, code)

	var rows []domain.DrawDiffRow
	require.NoError(t, json.Unmarshal([]byte(out), &rows))
	require.Len(t, rows, 5)
	assert.Equal(t, domain.StatusDeleted, rows[1].Status)
	assert.Nil(t, rows[1].EIDB)
	assert.Equal(t, []string{"triangles"}, rows[2].Changed)
}

func TestE2E_DiffStdin(t *testing.T) {
	data, err := os.ReadFile(fixturePath("frame_b.json"))
	require.NoError(t, err)

	out, _, code := run(t, t.TempDir(), string(data), "diff", fixturePath("frame_a.json"), "-", "--draws", "--shortstat")
	assert.Equal(t, 1, code)
	assert.Contains(t, out, "1 modified")
}

func TestE2E_DiffMissingCapture(t *testing.T) {
	out, stderr, code := run(t, t.TempDir(), "", "diff", fixturePath("frame_a.json"), fixturePath("missing.json"), "--draws")
	assert.Equal(t, 2, code)
	assert.Empty(t, out)
	assert.Contains(t, stderr, "loading capture B")
}

func TestE2E_DiffMalformed(t *testing.T) {
	_, stderr, code := run(t, t.TempDir(), "", "diff", fixturePath("malformed.json"), fixturePath("frame_a.json"), "--draws")
	assert.Equal(t, 2, code)
	assert.Contains(t, stderr, "draw row 1: eid is missing")
}

func TestE2E_DiffWithoutDrawsFlag(t *testing.T) {
	_, _, code := run(t, t.TempDir(), "", "diff", fixturePath("frame_a.json"), fixturePath("frame_b.json"))
	assert.Equal(t, 2, code)
}

func TestE2E_DiffRecordAndHistory(t *testing.T) {
	dir := t.TempDir()

	_, _, code := run(t, dir, "", "diff", fixturePath("frame_a.json"), fixturePath("frame_b.json"), "--draws", "--record")
	assert.Equal(t, 1, code)
	assert.FileExists(t, filepath.Join(dir, ".rdc", "history", "diffs.json"))

	out, _, code := run(t, dir, "", "diff", "history", "--json")
	assert.Equal(t, 0, code)

	var entries []domain.DiffEntry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, domain.Counts{Equal: 2, Modified: 1, Added: 1, Deleted: 1}, entries[0].Counts)
}

func TestE2E_ConfigInWorkingDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".rdc.yaml"), []byte("diff:\n  format: shortstat\n"), 0644))

	out, _, code := run(t, dir, "", "diff", fixturePath("frame_a.json"), fixturePath("frame_a.json"), "--draws")
	assert.Equal(t, 0, code)
	assert.Equal(t, "4 draws: 4 equal, 0 modified, 0 added, 0 deleted\n", out)
}

// --- Version ---

func TestE2E_Version(t *testing.T) {
	out, _, code := run(t, t.TempDir(), "", "version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, "rdc")
}
