package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/glbridge/internal/ir"
)

func traceOf(t *testing.T, msgs ...string) []TraceEvent {
	t.Helper()
	trace := make([]TraceEvent, len(msgs))
	for i, m := range msgs {
		e := TraceEvent{Seq: int64(i + 1), Kind: "async", Call: m}
		if !ir.IsFrameSignal(m) {
			d, err := ir.ParseDescriptor(m)
			require.NoError(t, err)
			e.Call = d.Name
			e.Descriptor = d
		}
		trace[i] = e
	}
	return trace
}

func sampleResult(t *testing.T) *Result {
	r := NewResult()
	r.Trace = traceOf(t,
		`{"name":"createProgram","args":[],"correlationId":1}`,
		`{"name":"createShader","args":[35633],"correlationId":2}`,
		`{"name":"attachShader","args":[{"correlationId":1},{"correlationId":2}]}`,
		ir.FrameBegin,
		`{"name":"drawArrays","args":[4,0,3]}`,
		ir.FrameEnd,
	)
	r.Handles = map[string]int64{"program": 1, "vs": 2}
	r.Frames = 1
	return r
}

func TestEvaluateAssertions_Pass(t *testing.T) {
	failures := EvaluateAssertions(sampleResult(t), []Assertion{
		{Type: AssertTraceContains, Call: "drawArrays"},
		{Type: AssertTraceContains, Call: "drawArrays", Args: []any{4, 0, 3}},
		{Type: AssertTraceContains, Call: "attachShader", Args: []any{"$program", "$vs"}},
		{Type: AssertTraceOrder, Calls: []string{"createProgram", "attachShader", "endFrame"}},
		{Type: AssertTraceCount, Call: "startFrame", Count: 1},
		{Type: AssertTraceCount, Call: "clear", Count: 0},
		{Type: AssertCorrelation, Call: "createShader", ID: 2},
		{Type: AssertFrames, Count: 1},
	})
	assert.Empty(t, failures)
}

func TestEvaluateAssertions_Fail(t *testing.T) {
	failures := EvaluateAssertions(sampleResult(t), []Assertion{
		{Type: AssertTraceContains, Call: "drawArrays", Args: []any{4, 0, 6}},
		{Type: AssertTraceContains, Call: "attachShader", Args: []any{"$vs", "$program"}},
		{Type: AssertTraceContains, Call: "attachShader", Args: []any{"$nope"}},
		{Type: AssertTraceOrder, Calls: []string{"drawArrays", "createProgram"}},
		{Type: AssertTraceCount, Call: "drawArrays", Count: 2},
		{Type: AssertCorrelation, Call: "createShader", ID: 1},
		{Type: AssertFrames, Count: 3},
		{Type: "bogus"},
	})
	require.Len(t, failures, 8)
	assert.Contains(t, failures[0], "Expected: drawArrays with args [4,0,6]")
	assert.Contains(t, failures[1], "not found in trace")
	assert.Contains(t, failures[2], "unbound reference $nope")
	assert.Contains(t, failures[3], "createProgram not found after [drawArrays]")
	assert.Contains(t, failures[4], "Actual: 1 occurrences")
	assert.Contains(t, failures[5], "Actual: ids [2]")
	assert.Contains(t, failures[6], "Expected: 3 frames")
	assert.Equal(t, `assertions[7]: unknown assertion type "bogus"`, failures[7])
}

func TestAssertionError_Format(t *testing.T) {
	err := &AssertionError{
		Type:     AssertTraceCount,
		Expected: "2 occurrences of flush",
		Actual:   "1 occurrences",
		Trace:    traceOf(t, ir.FrameBegin, `{"name":"flush","args":[]}`),
	}
	assert.Equal(t, "Assertion failed: trace_count\n"+
		"  Expected: 2 occurrences of flush\n"+
		"  Actual: 1 occurrences\n"+
		"\nFull trace:\n"+
		"  [1] startFrame\n"+
		`  [2] async {"name":"flush","args":[]}`+"\n", err.Error())
}
