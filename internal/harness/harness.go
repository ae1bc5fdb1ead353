package harness

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/roach88/glbridge/internal/bridge"
	"github.com/roach88/glbridge/internal/calls"
	"github.com/roach88/glbridge/internal/frame"
	"github.com/roach88/glbridge/internal/gl"
	"github.com/roach88/glbridge/internal/ir"
	"github.com/roach88/glbridge/internal/testutil"
	"github.com/roach88/glbridge/internal/transport"
)

// Option configures a run.
type Option func(*runConfig)

type runConfig struct {
	logger *slog.Logger
	wrap   func(transport.Transport) transport.Transport
}

// WithLogger sets the logger passed to the bridge. Default: discard.
func WithLogger(logger *slog.Logger) Option {
	return func(c *runConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithTransport interposes a transport between the bridge and the trace
// recorder, e.g. a store.Tee. A transport with a Flush method, such as
// transport.Pipeline, is flushed before the trace is collected.
func WithTransport(wrap func(next transport.Transport) transport.Transport) Option {
	return func(c *runConfig) {
		c.wrap = wrap
	}
}

type flusher interface {
	Flush() error
}

// Harness executes one scenario against a fresh bridge.
type Harness struct {
	proxy    *bridge.Proxy
	frames   *frame.Scheduler
	platform *frame.ManualPlatform
	clock    *testutil.TickClock
	handles  map[string]*gl.Handle
	logger   *slog.Logger
	result   *Result
}

// Run executes a scenario and returns the result.
//
// Each run gets a fresh bridge, correlator and frame platform, so the
// trace depends only on the scenario. Step and assertion failures are
// reported in the result; the error is for scenarios that cannot start.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&cfg)
	}

	rec := transport.NewRecorder()
	for name, reply := range scenario.Replies {
		rec.SetReply(name, reply)
	}
	var t transport.Transport = rec
	if cfg.wrap != nil {
		t = cfg.wrap(rec)
	}

	bopts := []bridge.Option{bridge.WithLogger(cfg.logger)}
	if scenario.Calls != "" {
		callCfg, err := calls.LoadConfig(scenario.Calls)
		if err != nil {
			return nil, fmt.Errorf("failed to load call config: %w", err)
		}
		bopts = append(bopts, bridge.WithConfig(callCfg))
	}
	b := bridge.New(t, bopts...)

	var underlying gl.Context
	if scenario.Mode == ModeLocal {
		fake, err := fakeContext(scenario.Replies)
		if err != nil {
			return nil, err
		}
		underlying = fake
	}
	proxy, err := b.Wrap(underlying, bridge.CreationOptions{
		PassThrough: scenario.Mode == ModeLocal,
		Config:      scenario.Config,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to wrap context: %w", err)
	}

	platform := frame.NewManualPlatform()
	frames, err := b.InstallFrames(platform)
	if err != nil {
		return nil, fmt.Errorf("failed to install frames: %w", err)
	}

	h := &Harness{
		proxy:    proxy,
		frames:   frames,
		platform: platform,
		clock:    testutil.NewTickClock(testutil.FrameStep),
		handles:  make(map[string]*gl.Handle),
		logger:   cfg.logger,
		result:   NewResult(),
	}

	h.executeSteps("steps", scenario.Steps)
	if n := platform.Outstanding(); n > 0 {
		h.logger.Info("frames left pending", "count", n)
	}
	if f, ok := t.(flusher); ok {
		if err := f.Flush(); err != nil {
			return nil, fmt.Errorf("failed to flush transport: %w", err)
		}
	}

	result := h.result
	for name, handle := range h.handles {
		result.Handles[name] = handle.CorrelationID()
	}
	result.Trace, err = buildTrace(rec.Messages())
	if err != nil {
		return nil, err
	}
	for _, e := range result.Trace {
		if e.Call == ir.FrameEnd {
			result.Frames++
		}
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

// fakeContext builds the local-mode context. Canned replies double as the
// fake's results so expectations hold in both modes.
func fakeContext(replies map[string]string) (*testutil.FakeContext, error) {
	fake := testutil.NewFakeContext(0, 0)
	for name, reply := range replies {
		v, err := ir.DecodeReply(reply)
		if err != nil {
			return nil, fmt.Errorf("reply for %s: %w", name, err)
		}
		fake.SetResult(name, ir.ToGo(v))
	}
	return fake, nil
}

// executeSteps runs steps in order. Failures are recorded, not returned,
// so one bad step does not hide the rest of the trace.
func (h *Harness) executeSteps(path string, steps []Step) {
	for i, step := range steps {
		where := fmt.Sprintf("%s[%d]", path, i)
		switch {
		case step.Call != "":
			h.executeCall(where, step)
		case step.Frame != nil:
			nested := step.Frame
			h.frames.RequestAnimationFrame(func(float64) {
				h.executeSteps(where+".frame", nested)
			})
		default:
			for n := 0; n < step.Tick; n++ {
				if !h.platform.Tick(h.clock.Next()) {
					h.result.AddError(fmt.Sprintf("%s: tick %d: no frame requested", where, n+1))
					break
				}
			}
		}
	}
}

func (h *Harness) executeCall(where string, step Step) {
	args, err := h.resolveArgs(step.Args)
	if err != nil {
		h.result.AddError(fmt.Sprintf("%s: %s: %v", where, step.Call, err))
		return
	}

	res, err := h.proxy.Call(step.Call, args...)
	if step.Fails != "" {
		var e *ir.Error
		switch {
		case err == nil:
			h.result.AddError(fmt.Sprintf("%s: %s: expected %s error, call succeeded", where, step.Call, step.Fails))
		case !errors.As(err, &e) || string(e.Code) != step.Fails:
			h.result.AddError(fmt.Sprintf("%s: %s: expected %s error, got %v", where, step.Call, step.Fails, err))
		}
		return
	}
	if err != nil {
		h.result.AddError(fmt.Sprintf("%s: %s: %v", where, step.Call, err))
		return
	}

	if step.As != "" {
		handle, ok := res.(*gl.Handle)
		if !ok {
			h.result.AddError(fmt.Sprintf("%s: %s returned %T, not a handle", where, step.Call, res))
			return
		}
		h.handles[step.As] = handle
	}

	if step.Expect != nil {
		equal, err := sameValue(step.Expect, res)
		if err != nil {
			h.result.AddError(fmt.Sprintf("%s: %s: %v", where, step.Call, err))
		} else if !equal {
			h.result.AddError(fmt.Sprintf("%s: %s: expected %v, got %v", where, step.Call, step.Expect, res))
		}
	}

	h.logger.Debug("step executed", "step", where, "call", step.Call)
}

// resolveArgs replaces "$name" references with saved handles.
func (h *Harness) resolveArgs(args []any) ([]any, error) {
	out := make([]any, len(args))
	for i, arg := range args {
		resolved, err := h.resolve(arg)
		if err != nil {
			return nil, fmt.Errorf("arg %d: %w", i, err)
		}
		out[i] = resolved
	}
	return out, nil
}

func (h *Harness) resolve(arg any) (any, error) {
	switch v := arg.(type) {
	case string:
		name, ok := strings.CutPrefix(v, "$")
		if !ok {
			return v, nil
		}
		handle, ok := h.handles[name]
		if !ok {
			return nil, fmt.Errorf("unbound reference %s", v)
		}
		return handle, nil
	case []any:
		return h.resolveArgs(v)
	}
	return arg, nil
}

// sameValue compares two plain values by their canonical JSON form, so a
// YAML int matches a decoded int64 or float64 of the same value.
func sameValue(want, got any) (bool, error) {
	a, err := canonical(want)
	if err != nil {
		return false, fmt.Errorf("expected value: %w", err)
	}
	b, err := canonical(got)
	if err != nil {
		return false, fmt.Errorf("result: %w", err)
	}
	return bytes.Equal(a, b), nil
}

func canonical(v any) ([]byte, error) {
	value, err := ir.FromGo(v)
	if err != nil {
		return nil, err
	}
	return ir.MarshalCanonical(value)
}

// buildTrace turns recorded messages into trace events.
func buildTrace(msgs []transport.Message) ([]TraceEvent, error) {
	trace := make([]TraceEvent, len(msgs))
	for i, m := range msgs {
		e := TraceEvent{Seq: int64(i + 1), Kind: string(m.Kind)}
		if ir.IsFrameSignal(m.Body) {
			e.Call = m.Body
		} else {
			d, err := ir.ParseDescriptor(m.Body)
			if err != nil {
				return nil, fmt.Errorf("trace message %d: %w", e.Seq, err)
			}
			e.Call = d.Name
			e.Descriptor = d
		}
		trace[i] = e
	}
	return trace, nil
}
