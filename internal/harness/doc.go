// Package harness runs scripted graphics sessions through a real bridge and
// captures the transport trace.
//
// # Scenario Format
//
// Scenarios are YAML files:
//
//	name: triangle
//	description: "Compile, link and draw one triangle per frame"
//	mode: bridged                # or local (runs against a fake context)
//	calls: calls.cue             # optional classification overrides
//	config: { antialias: true }  # optional configure payload
//	replies:
//	  getProgramParameter: "true"
//	steps:
//	  - call: createProgram
//	    as: program
//	  - call: linkProgram
//	    args: ["$program"]
//	  - call: getProgramParameter
//	    args: ["$program", 35714]
//	    expect: true
//	  - frame:
//	      - call: drawArrays
//	        args: [4, 0, 3]
//	  - tick: 1
//	assertions:
//	  - type: trace_order
//	    calls: [createProgram, linkProgram, drawArrays]
//
// A "$name" argument is replaced by the handle a previous step saved with
// "as". Frame steps register an animation callback running their nested
// steps; tick steps fire pending frames on a manual platform with a
// deterministic clock.
//
// # Assertion Types
//
//   - trace_contains: a call was sent, optionally with exactly these args
//   - trace_order: calls were sent in this order (gaps allowed)
//   - trace_count: a call was sent exactly N times
//   - correlation: a creation call carried the given correlation id
//   - frames: exactly N frames were bracketed
//
// # Deterministic Testing
//
// Correlation ids start at 1 for every run and frame timestamps come from
// testutil.TickClock, so a scenario produces an identical trace on every
// run. Traces are compared against golden files with goldie.
package harness
