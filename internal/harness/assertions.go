package harness

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/roach88/glbridge/internal/ir"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Trace) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, event := range e.Trace {
			if event.IsSignal() {
				fmt.Fprintf(&buf, "  [%d] %s\n", event.Seq, event.Call)
				continue
			}
			body, _ := event.Descriptor.Encode()
			fmt.Fprintf(&buf, "  [%d] %s %s\n", event.Seq, event.Kind, body)
		}
	}

	return buf.String()
}

// EvaluateAssertions checks every assertion against a run result and
// returns the failure messages.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var failures []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertTraceContains:
			err = assertTraceContains(result, a)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, a)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		case AssertCorrelation:
			err = assertCorrelation(result.Trace, a)
		case AssertFrames:
			err = assertFrames(result, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			failures = append(failures, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return failures
}

// assertTraceContains checks that the call was sent, with exactly the
// given args if any are specified. "$name" args match saved handles.
func assertTraceContains(result *Result, assertion Assertion) error {
	var want []byte
	if assertion.Args != nil {
		args, err := expectedArgs(result.Handles, assertion.Args)
		if err != nil {
			return err
		}
		want = args
	}

	for _, event := range result.Trace {
		if event.Call != assertion.Call || event.IsSignal() {
			continue
		}
		if want == nil {
			return nil
		}
		got, err := ir.MarshalCanonical(event.Descriptor.Args)
		if err == nil && bytes.Equal(got, want) {
			return nil
		}
	}

	expected := assertion.Call
	if want != nil {
		expected = fmt.Sprintf("%s with args %s", assertion.Call, want)
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: expected,
		Actual:   "not found in trace",
		Trace:    result.Trace,
	}
}

// expectedArgs canonicalizes assertion args, turning "$name" into the
// handle's wire form.
func expectedArgs(handles map[string]int64, args []any) ([]byte, error) {
	resolved := make([]any, len(args))
	for i, arg := range args {
		resolved[i] = arg
		s, ok := arg.(string)
		if !ok {
			continue
		}
		name, ok := strings.CutPrefix(s, "$")
		if !ok {
			continue
		}
		id, ok := handles[name]
		if !ok {
			return nil, fmt.Errorf("unbound reference %s", s)
		}
		resolved[i] = ir.Object{ir.CorrelationKey: ir.Int(id)}
	}
	v, err := ir.FromGo(resolved)
	if err != nil {
		return nil, err
	}
	return ir.MarshalCanonical(v)
}

// assertTraceOrder checks if calls appear in the specified order.
// Calls don't need to be consecutive (intervening calls are allowed).
func assertTraceOrder(trace []TraceEvent, assertion Assertion) error {
	next := 0
	for _, event := range trace {
		if next < len(assertion.Calls) && event.Call == assertion.Calls[next] {
			next++
		}
	}
	if next == len(assertion.Calls) {
		return nil
	}
	return &AssertionError{
		Type:     AssertTraceOrder,
		Expected: fmt.Sprintf("calls in order: %v", assertion.Calls),
		Actual:   fmt.Sprintf("%s not found after %v", assertion.Calls[next], assertion.Calls[:next]),
		Trace:    trace,
	}
}

// assertTraceCount checks if the call appears exactly the specified number of times.
func assertTraceCount(trace []TraceEvent, assertion Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Call == assertion.Call {
			count++
		}
	}

	if count != assertion.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", assertion.Count, assertion.Call),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertCorrelation checks that a creation call carried the given id.
func assertCorrelation(trace []TraceEvent, assertion Assertion) error {
	var seen []int64
	for _, event := range trace {
		if event.Call != assertion.Call || event.IsSignal() || event.Descriptor.CorrelationID == nil {
			continue
		}
		id := *event.Descriptor.CorrelationID
		if id == assertion.ID {
			return nil
		}
		seen = append(seen, id)
	}
	return &AssertionError{
		Type:     AssertCorrelation,
		Expected: fmt.Sprintf("%s with correlation id %d", assertion.Call, assertion.ID),
		Actual:   fmt.Sprintf("ids %v", seen),
		Trace:    trace,
	}
}

func assertFrames(result *Result, assertion Assertion) error {
	if result.Frames != assertion.Count {
		return &AssertionError{
			Type:     AssertFrames,
			Expected: fmt.Sprintf("%d frames", assertion.Count),
			Actual:   fmt.Sprintf("%d frames", result.Frames),
		}
	}
	return nil
}
