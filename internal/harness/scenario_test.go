package harness

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadScenario(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/local_overrides.yaml")
	require.NoError(t, err)

	assert.Equal(t, "local_overrides", s.Name)
	assert.Equal(t, ModeLocal, s.Mode)
	assert.Equal(t, filepath.Join("testdata", "scenarios", "calls.cue"), s.Calls)
	assert.Equal(t, map[string]string{"getAttribLocation": "2"}, s.Replies)
	require.Len(t, s.Steps, 7)
	assert.Equal(t, "program", s.Steps[0].As)
	assert.Equal(t, []any{"$program", "a_position"}, s.Steps[1].Args)
	assert.Equal(t, 2, s.Steps[1].Expect)
	assert.Equal(t, "UNSUPPORTED_PAYLOAD", s.Steps[4].Fails)
	require.Len(t, s.Steps[5].Frame, 1)
	assert.Equal(t, 1, s.Steps[6].Tick)
}

func TestLoadScenario_DefaultsToBridged(t *testing.T) {
	s, err := ParseScenario([]byte("name: x\nsteps:\n  - call: flush\n"))
	require.NoError(t, err)
	assert.Equal(t, ModeBridged, s.Mode)
}

func TestLoadScenario_Missing(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/nope.yaml")
	assert.ErrorContains(t, err, "failed to read scenario file")
}

func TestLoadScenarios(t *testing.T) {
	scenarios, err := LoadScenarios("testdata/scenarios")
	require.NoError(t, err)
	require.Len(t, scenarios, 2)
	assert.Equal(t, "local_overrides", scenarios[0].Name)
	assert.Equal(t, "triangle", scenarios[1].Name)
}

func TestLoadScenarios_ReportsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("name: bad\n"), 0o644))
	_, err := LoadScenarios(dir)
	assert.ErrorContains(t, err, "bad.yaml: invalid scenario: steps list is required")
}

func TestParseScenario_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		err  string
	}{
		{"unknown field", "name: x\nstep: []\n", "failed to parse YAML"},
		{"no name", "steps:\n  - call: flush\n", "name is required"},
		{"bad mode", "name: x\nmode: remote\nsteps:\n  - call: flush\n", `unknown mode "remote"`},
		{"no steps", "name: x\n", "steps list is required"},
		{"empty step", "name: x\nsteps:\n  - as: y\n", "steps[0]: exactly one of call, frame or tick"},
		{"two kinds", "name: x\nsteps:\n  - call: flush\n    tick: 1\n", "steps[0]: exactly one of"},
		{"saved twice", "name: x\nsteps:\n  - call: createBuffer\n    as: b\n  - call: createBuffer\n    as: b\n", `steps[1]: handle "b" saved twice`},
		{"nested saved twice", "name: x\nsteps:\n  - call: createBuffer\n    as: b\n  - frame:\n      - call: createBuffer\n        as: b\n", `steps[1].frame[0]: handle "b" saved twice`},
		{"frame with args", "name: x\nsteps:\n  - frame: []\n    args: [1]\n", "frame steps take only nested steps"},
		{"negative tick", "name: x\nsteps:\n  - tick: -1\n", "tick must be positive"},
		{"tick with args", "name: x\nsteps:\n  - tick: 1\n    args: [1]\n", "tick steps take only a count"},
		{"fails and expect", "name: x\nsteps:\n  - call: flush\n    fails: TRANSPORT\n    expect: 1\n", "a failing call has no result"},
		{"assertion type", "name: x\nsteps:\n  - call: flush\nassertions:\n  - type: final_state\n", `unknown assertion type "final_state"`},
		{"assertion no type", "name: x\nsteps:\n  - call: flush\nassertions:\n  - call: flush\n", "assertions[0]: type is required"},
		{"contains no call", "name: x\nsteps:\n  - call: flush\nassertions:\n  - type: trace_contains\n", "call is required for trace_contains"},
		{"order no calls", "name: x\nsteps:\n  - call: flush\nassertions:\n  - type: trace_order\n", "calls list is required"},
		{"count negative", "name: x\nsteps:\n  - call: flush\nassertions:\n  - type: trace_count\n    call: flush\n    count: -1\n", "count must be non-negative"},
		{"correlation no id", "name: x\nsteps:\n  - call: flush\nassertions:\n  - type: correlation\n    call: createBuffer\n", "positive id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.err)
		})
	}
}
