package harness

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"gopkg.in/yaml.v3"
)

// Scenario is a scripted session.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description"`

	// Mode is "bridged" (the default) or "local".
	Mode string `yaml:"mode,omitempty"`

	// Calls is an optional CUE classification config, relative to the
	// scenario file.
	Calls string `yaml:"calls,omitempty"`

	// Config is sent as the configure payload when the context is wrapped.
	Config any `yaml:"config,omitempty"`

	// Replies are canned host replies to sync calls, by call name.
	Replies map[string]string `yaml:"replies,omitempty"`

	Steps []Step `yaml:"steps"`

	Assertions []Assertion `yaml:"assertions,omitempty"`
}

// Step is one scenario action. Exactly one of Call, Frame and Tick is set.
type Step struct {
	// Call is the call name to issue.
	Call string `yaml:"call,omitempty"`

	// Args are the call arguments. "$name" strings reference saved handles.
	Args []any `yaml:"args,omitempty"`

	// As saves the call's handle result under a name.
	As string `yaml:"as,omitempty"`

	// Expect, if set, must equal the call's result.
	Expect any `yaml:"expect,omitempty"`

	// Fails, if set, is the error code the call must fail with, e.g.
	// UNSUPPORTED_PAYLOAD.
	Fails string `yaml:"fails,omitempty"`

	// Frame registers an animation callback running these steps.
	Frame []Step `yaml:"frame,omitempty"`

	// Tick fires this many platform frames.
	Tick int `yaml:"tick,omitempty"`
}

// Assertion validates the trace.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Call is the call name (trace_contains, trace_count, correlation).
	Call string `yaml:"call,omitempty"`

	// Args, if set, must equal the call's encoded args (trace_contains).
	Args []any `yaml:"args,omitempty"`

	// Calls is the expected order (trace_order).
	Calls []string `yaml:"calls,omitempty"`

	// Count is the expected number of occurrences (trace_count, frames).
	Count int `yaml:"count,omitempty"`

	// ID is the expected correlation id (correlation).
	ID int64 `yaml:"id,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertCorrelation   = "correlation"
	AssertFrames        = "frames"
)

// Scenario modes.
const (
	ModeBridged = "bridged"
	ModeLocal   = "local"
)

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
// A relative Calls path is resolved against the scenario's directory.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenario, err := ParseScenario(data)
	if err != nil {
		return nil, err
	}

	if scenario.Calls != "" && !filepath.IsAbs(scenario.Calls) {
		scenario.Calls = filepath.Join(filepath.Dir(path), scenario.Calls)
	}
	return scenario, nil
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

// LoadScenarios loads every *.yaml scenario in dir, sorted by file name.
func LoadScenarios(dir string) ([]*Scenario, error) {
	paths, err := filepath.Glob(filepath.Join(dir, "*.yaml"))
	if err != nil {
		return nil, err
	}
	slices.Sort(paths)

	scenarios := make([]*Scenario, 0, len(paths))
	for _, path := range paths {
		s, err := LoadScenario(path)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
		scenarios = append(scenarios, s)
	}
	return scenarios, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	switch s.Mode {
	case "":
		s.Mode = ModeBridged
	case ModeBridged, ModeLocal:
	default:
		return fmt.Errorf("unknown mode %q", s.Mode)
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	saved := make(map[string]bool)
	if err := validateSteps("steps", s.Steps, saved); err != nil {
		return err
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion); err != nil {
			return err
		}
	}

	return nil
}

func validateSteps(path string, steps []Step, saved map[string]bool) error {
	for i, step := range steps {
		where := fmt.Sprintf("%s[%d]", path, i)

		set := 0
		if step.Call != "" {
			set++
		}
		if step.Frame != nil {
			set++
		}
		if step.Tick != 0 {
			set++
		}
		if set != 1 {
			return fmt.Errorf("%s: exactly one of call, frame or tick is required", where)
		}

		switch {
		case step.Call != "":
			if step.Fails != "" && (step.Expect != nil || step.As != "") {
				return fmt.Errorf("%s: a failing call has no result to expect or save", where)
			}
			if step.As != "" {
				if saved[step.As] {
					return fmt.Errorf("%s: handle %q saved twice", where, step.As)
				}
				saved[step.As] = true
			}
		case step.Frame != nil:
			if step.As != "" || step.Args != nil || step.Expect != nil || step.Fails != "" {
				return fmt.Errorf("%s: frame steps take only nested steps", where)
			}
			if err := validateSteps(where+".frame", step.Frame, saved); err != nil {
				return err
			}
		default:
			if step.Tick < 0 {
				return fmt.Errorf("%s: tick must be positive", where)
			}
			if step.As != "" || step.Args != nil || step.Expect != nil || step.Fails != "" {
				return fmt.Errorf("%s: tick steps take only a count", where)
			}
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion) error {
	if a.Type == "" {
		return fmt.Errorf("assertions[%d]: type is required", index)
	}

	switch a.Type {
	case AssertTraceContains:
		if a.Call == "" {
			return fmt.Errorf("assertions[%d]: call is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Calls) == 0 {
			return fmt.Errorf("assertions[%d]: calls list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Call == "" {
			return fmt.Errorf("assertions[%d]: call is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for trace_count", index)
		}
	case AssertCorrelation:
		if a.Call == "" || a.ID <= 0 {
			return fmt.Errorf("assertions[%d]: call and a positive id are required for correlation", index)
		}
	case AssertFrames:
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for frames", index)
		}
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}

	return nil
}
