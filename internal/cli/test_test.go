package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// copyScenario copies the triangle scenario into a fresh scenarios dir and
// returns that dir. Golden files land in its sibling golden/ dir.
func copyScenario(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(triangleScenario)
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "scenarios")
	require.NoError(t, os.MkdirAll(dir, 0755))
	writeFile(t, dir, "triangle.yaml", string(data))
	return dir
}

func TestTestCommandMissingArgs(t *testing.T) {
	_, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg")
}

func TestTestCommandNonExistentDir(t *testing.T) {
	_, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), "/nonexistent/scenarios")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "scenarios directory not found")
}

func TestTestCommandEmptyDir(t *testing.T) {
	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "No scenarios found.")
}

func TestTestCommandHarnessScenarios(t *testing.T) {
	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), scenariosDir)
	require.NoError(t, err)

	assert.Contains(t, out, "✓ local_overrides")
	assert.Contains(t, out, "✓ triangle")
	assert.Contains(t, out, "2 passed, 0 failed, 2 total")
}

func TestTestCommandJSON(t *testing.T) {
	out, err := execute(t, NewTestCommand(&RootOptions{Format: "json"}), scenariosDir)
	require.NoError(t, err)

	var resp struct {
		Status string     `json:"status"`
		Data   TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 2, resp.Data.Passed)
	for _, sr := range resp.Data.Scenarios {
		assert.Equal(t, "match", sr.Golden, sr.Name)
	}
}

func TestTestCommandFilter(t *testing.T) {
	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), scenariosDir, "--filter", "tri*")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ triangle")
	assert.NotContains(t, out, "local_overrides")
	assert.Contains(t, out, "1 passed, 0 failed, 1 total")
}

func TestTestCommandInvalidFilter(t *testing.T) {
	_, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), scenariosDir, "--filter", "[")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "invalid filter pattern")
}

func TestTestCommandUpdateThenMatch(t *testing.T) {
	dir := copyScenario(t)
	goldenPath := filepath.Join(filepath.Dir(dir), "golden", "triangle.golden")

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir, "--update")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ triangle (golden updated)")

	written, err := os.ReadFile(goldenPath)
	require.NoError(t, err)
	want, err := os.ReadFile(filepath.Join(scenariosDir, "..", "golden", "triangle.golden"))
	require.NoError(t, err)
	assert.Equal(t, string(want), string(written))

	out, err = execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ triangle")
}

func TestTestCommandGoldenMismatch(t *testing.T) {
	dir := copyScenario(t)
	goldenDir := t.TempDir()
	writeFile(t, goldenDir, "triangle.golden", `{"scenario_name":"triangle","trace":[]}`)

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir, "--golden-dir", goldenDir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, err.Error(), "1 of 1 scenarios failed")
	assert.Contains(t, out, "✗ triangle")
	assert.Contains(t, out, "trace does not match golden file")
}

func TestTestCommandNoGoldenUsesAssertions(t *testing.T) {
	dir := copyScenario(t)

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "json"}), dir)
	require.NoError(t, err)

	var resp struct {
		Data TestResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &resp))
	require.Len(t, resp.Data.Scenarios, 1)
	assert.True(t, resp.Data.Scenarios[0].Pass)
	assert.Equal(t, "none", resp.Data.Scenarios[0].Golden)
}

func TestTestCommandLoadError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "typo.yaml", "name: typo\nstepz: []\n")

	out, err := execute(t, NewTestCommand(&RootOptions{Format: "text"}), dir)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, out, "✗ typo.yaml")
	assert.Contains(t, out, "failed to load scenario")
}
