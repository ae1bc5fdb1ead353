package host

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/roach88/glbridge/internal/ir"
	"github.com/roach88/glbridge/internal/transport"
)

// State errors. They are logged and counted, never returned to the caller
// of CallAsync, which has no error path.
var (
	ErrNestedFrame   = errors.New("startFrame inside an open frame")
	ErrNoFrame       = errors.New("endFrame outside a frame")
	ErrPendingUpdate = errors.New("pre-frame batch must be processed before rendering")
)

// Op is one message ready for execution.
type Op struct {
	Descriptor *ir.Descriptor

	// Native is the id minted for a creation call, 0 otherwise.
	Native uint32
}

// Executor runs ops on the render side.
type Executor interface {
	Execute(op Op) error
}

// ExecutorFunc adapts a function to Executor.
type ExecutorFunc func(op Op) error

func (f ExecutorFunc) Execute(op Op) error { return f(op) }

// Handler answers a sync call. A String result is sent wrapped as
// {"resultString": ...}; a nil result is sent as null.
type Handler func(d *ir.Descriptor) (ir.Value, error)

// Stats counts what the host has seen.
type Stats struct {
	Messages    int `json:"messages"`
	SyncCalls   int `json:"sync_calls"`
	Frames      int `json:"frames"`
	Updates     int `json:"updates"`
	Renders     int `json:"renders"`
	Rejected    int `json:"rejected"`
	StateErrors int `json:"state_errors"`
}

// Host is a reference transport endpoint.
//
// Thread-safety: all methods are safe for concurrent use. Executors run
// without the host lock held.
type Host struct {
	exec   Executor
	logger *slog.Logger

	mu         sync.Mutex
	inFrame    bool
	pending    []Op
	preFrame   []Op
	frame      []Op
	published  []Op
	natives    map[int64]uint32
	nextNative uint32
	handlers   map[string]Handler
	config     ir.Value
	lastErr    error
	stats      Stats
}

var _ transport.Transport = (*Host)(nil)

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger. Default: slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// New creates a host running ops on exec. A nil exec discards them.
func New(exec Executor, opts ...Option) *Host {
	if exec == nil {
		exec = ExecutorFunc(func(Op) error { return nil })
	}
	h := &Host{
		exec:     exec,
		logger:   slog.Default(),
		natives:  make(map[int64]uint32),
		handlers: make(map[string]Handler),
	}
	for _, opt := range opts {
		opt(h)
	}
	h.handlers[ir.ConfigureCall] = h.configure
	return h
}

// Register installs the handler for a sync call, replacing any previous one.
func (h *Host) Register(name string, fn Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.handlers[name] = fn
}

func (h *Host) configure(d *ir.Descriptor) (ir.Value, error) {
	if len(d.Args) != 1 {
		return nil, fmt.Errorf("configure takes 1 argument, got %d", len(d.Args))
	}
	h.mu.Lock()
	h.config = d.Args[0]
	h.mu.Unlock()
	h.logger.Info("host configured")
	return nil, nil
}

// Config returns the payload of the last configure call, or nil.
func (h *Host) Config() ir.Value {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.config
}

// CallAsync accepts a fire-and-forget message or frame signal.
func (h *Host) CallAsync(msg string) {
	switch msg {
	case ir.FrameBegin:
		h.startFrame()
		return
	case ir.FrameEnd:
		h.endFrame()
		return
	}

	d, err := ir.ParseDescriptor(msg)
	if err != nil {
		h.mu.Lock()
		h.stats.Rejected++
		h.mu.Unlock()
		h.logger.Warn("message rejected", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats.Messages++
	op := Op{Descriptor: d}
	if d.CorrelationID != nil {
		h.nextNative++
		op.Native = h.nextNative
		h.natives[*d.CorrelationID] = op.Native
	}
	if h.inFrame {
		h.frame = append(h.frame, op)
	} else {
		h.pending = append(h.pending, op)
	}
}

// CallSync answers a blocking call from the registered handlers. Unknown
// calls reply null.
func (h *Host) CallSync(msg string) (string, error) {
	if ir.IsFrameSignal(msg) {
		return "", fmt.Errorf("frame signal %s sent synchronously", msg)
	}
	d, err := ir.ParseDescriptor(msg)
	if err != nil {
		return "", err
	}

	h.mu.Lock()
	h.stats.SyncCalls++
	fn, ok := h.handlers[d.Name]
	h.mu.Unlock()
	if !ok {
		h.logger.Debug("no handler", "call", d.Name)
		return "null", nil
	}

	v, err := fn(d)
	if err != nil {
		return "", fmt.Errorf("%s: %w", d.Name, err)
	}
	if s, ok := v.(ir.String); ok {
		v = ir.StringResult(string(s))
	}
	if v == nil {
		v = ir.Null{}
	}
	return ir.EncodeReply(v)
}

func (h *Host) startFrame() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.inFrame {
		h.stateError(ErrNestedFrame)
		return
	}
	h.inFrame = true
	h.preFrame = append(h.preFrame, h.pending...)
	h.pending = nil
}

func (h *Host) endFrame() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.inFrame {
		h.stateError(ErrNoFrame)
		return
	}
	h.inFrame = false
	h.published = h.frame
	h.frame = nil
	h.stats.Frames++
}

// stateError must be called with h.mu held.
func (h *Host) stateError(err error) {
	h.stats.StateErrors++
	h.lastErr = err
	h.logger.Error("frame state error", "error", err)
}

// Update runs the pre-frame batch and clears it. Every op runs; the
// returned error joins their failures.
func (h *Host) Update() error {
	h.mu.Lock()
	batch := h.preFrame
	h.preFrame = nil
	h.stats.Updates++
	h.mu.Unlock()

	return h.run(batch)
}

// RenderFrame runs the last published frame. It fails with
// ErrPendingUpdate while a pre-frame batch is waiting for Update.
func (h *Host) RenderFrame() error {
	h.mu.Lock()
	if len(h.preFrame) > 0 {
		h.mu.Unlock()
		return ErrPendingUpdate
	}
	batch := h.published
	h.stats.Renders++
	h.mu.Unlock()

	return h.run(batch)
}

// DrawFrame is one render-thread iteration: Update, then RenderFrame.
func (h *Host) DrawFrame() error {
	if err := h.Update(); err != nil {
		return err
	}
	return h.RenderFrame()
}

func (h *Host) run(batch []Op) error {
	var errs []error
	for _, op := range batch {
		if err := h.exec.Execute(op); err != nil {
			h.logger.Warn("op failed", "call", op.Descriptor.Name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", op.Descriptor.Name, err))
		}
	}
	return errors.Join(errs...)
}

// Native returns the native id bound to a correlation id.
func (h *Host) Native(id int64) (uint32, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	n, ok := h.natives[id]
	return n, ok
}

// Resolve returns the native id of a handle argument ({"correlationId": N}).
func (h *Host) Resolve(arg ir.Value) (uint32, bool) {
	obj, ok := arg.(ir.Object)
	if !ok || len(obj) != 1 {
		return 0, false
	}
	id, ok := obj[ir.CorrelationKey].(ir.Int)
	if !ok {
		return 0, false
	}
	return h.Native(int64(id))
}

// InFrame reports whether a frame is open.
func (h *Host) InFrame() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.inFrame
}

// Published returns the names of the calls in the published frame.
func (h *Host) Published() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return opNames(h.published)
}

// PreFrame returns the names of the calls waiting for Update.
func (h *Host) PreFrame() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return opNames(h.preFrame)
}

func opNames(ops []Op) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.Descriptor.Name
	}
	return out
}

// Err returns the last frame state error, or nil.
func (h *Host) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.lastErr
}

// Stats returns a snapshot of the counters.
func (h *Host) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.stats
}

// Natives returns the bound correlation ids in ascending order.
func (h *Host) Natives() []int64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	ids := make([]int64, 0, len(h.natives))
	for id := range h.natives {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
