package harness

import "github.com/roach88/glbridge/internal/ir"

// TraceEvent is one transport message captured during a run.
type TraceEvent struct {
	Seq  int64  `json:"seq"`
	Kind string `json:"kind"` // "sync" or "async"

	// Call is the descriptor's name, or the frame signal itself.
	Call string `json:"call"`

	// Descriptor is nil for frame signals.
	Descriptor *ir.Descriptor `json:"descriptor,omitempty"`
}

// IsSignal reports whether the event is a frame signal.
func (e TraceEvent) IsSignal() bool {
	return e.Descriptor == nil
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true if every step and assertion succeeded.
	Pass bool `json:"pass"`

	// Trace contains every transport message in send order.
	Trace []TraceEvent `json:"trace"`

	// Errors contains step and assertion failures.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Handles maps saved handle names to their correlation ids.
	Handles map[string]int64 `json:"handles,omitempty"`

	// Frames is the number of completed frames.
	Frames int `json:"frames"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:    true,
		Trace:   []TraceEvent{},
		Errors:  []string{},
		Handles: make(map[string]int64),
	}
}

// AddError adds a failure and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Calls returns the call names of the trace in order, signals included.
func (r *Result) Calls() []string {
	out := make([]string, len(r.Trace))
	for i, e := range r.Trace {
		out[i] = e.Call
	}
	return out
}
