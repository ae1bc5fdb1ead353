package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	scenariosDir     = "../harness/testdata/scenarios"
	triangleScenario = "../harness/testdata/scenarios/triangle.yaml"
	callsConfig      = "../harness/testdata/scenarios/calls.cue"
)

// execute runs cmd with args and returns its stdout.
func execute(t *testing.T, cmd *cobra.Command, args ...string) (string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// recordTriangle records the triangle scenario under session in a fresh
// database and returns the database path.
func recordTriangle(t *testing.T, session string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "glbridge.db")
	recordInto(t, dbPath, session)
	return dbPath
}

func recordInto(t *testing.T, dbPath, session string) {
	t.Helper()
	_, err := execute(t, NewRunCommand(&RootOptions{Format: "text"}),
		triangleScenario, "--db", dbPath, "--session", session)
	require.NoError(t, err)
}

// writeFile writes content under dir and returns the path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "glbridge", cmd.Use)
	assert.Equal(t, "0.1.0 (protocol 1)", cmd.Version)
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()
	commands := []string{"run", "test", "trace", "replay", "validate"}

	for _, cmdName := range commands {
		t.Run(cmdName, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{cmdName})
			require.NoError(t, err, "Command %s should exist", cmdName)
			require.NotNil(t, subCmd)
			assert.Equal(t, cmdName, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	verboseFlag := cmd.PersistentFlags().Lookup("verbose")
	require.NotNil(t, verboseFlag)
	assert.Equal(t, "v", verboseFlag.Shorthand)
	assert.Equal(t, "false", verboseFlag.DefValue)

	formatFlag := cmd.PersistentFlags().Lookup("format")
	require.NotNil(t, formatFlag)
	assert.Equal(t, "text", formatFlag.DefValue)
}

func TestInvalidFormat(t *testing.T) {
	_, err := execute(t, NewRootCommand(), "--format", "yaml", "validate", callsConfig)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid format "yaml"`)
}

func TestRootDispatchesToSubcommand(t *testing.T) {
	out, err := execute(t, NewRootCommand(), "validate", callsConfig)
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Call config valid")
}

func TestDatabaseFlags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"trace", "replay"} {
		t.Run(name, func(t *testing.T) {
			sub, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			dbFlag := sub.Flags().Lookup("db")
			require.NotNil(t, dbFlag)
			assert.Equal(t, "", dbFlag.DefValue)
		})
	}

	runCmd, _, err := cmd.Find([]string{"run"})
	require.NoError(t, err)
	assert.NotNil(t, runCmd.Flags().Lookup("db"))
	assert.NotNil(t, runCmd.Flags().Lookup("session"))
}
