package frame

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/glbridge/internal/ir"
)

// Callback is an animation callback. It receives the tick timestamp in
// milliseconds.
type Callback func(timestamp float64)

// Platform is the native frame primitive. RequestFrame arranges for tick to
// run once on the next frame.
type Platform interface {
	RequestFrame(tick func(timestamp float64))
}

// Signaler sends frame signals. Every transport.Transport is a Signaler.
type Signaler interface {
	CallAsync(msg string)
}

// State is the scheduler state.
type State int

const (
	Idle State = iota
	Scheduled
	Running
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Scheduled:
		return "scheduled"
	case Running:
		return "running"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Scheduler is the frame-bracketing replacement for the platform primitive.
//
// Thread-safety: RequestAnimationFrame may be called from any goroutine,
// including from inside a running callback. Callbacks run on whatever
// goroutine the Platform ticks on, outside the scheduler's lock.
type Scheduler struct {
	platform Platform
	signals  Signaler
	logger   *slog.Logger

	queue callbackQueue

	mu     sync.Mutex
	state  State
	frames int64
}

// NewScheduler creates an idle scheduler. A nil logger uses slog.Default().
func NewScheduler(platform Platform, signals Signaler, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{platform: platform, signals: signals, logger: logger}
}

// RequestAnimationFrame queues cb for a future frame. Only a registration
// made while Idle asks the platform for a tick; later registrations wait
// their turn in the queue.
func (s *Scheduler) RequestAnimationFrame(cb Callback) {
	if cb == nil {
		return
	}
	s.mu.Lock()
	n := s.queue.push(cb)
	request := s.state == Idle
	if request {
		s.state = Scheduled
	}
	s.mu.Unlock()

	s.logger.Debug("frame callback registered", "pending", n, "request", request)
	if request {
		s.platform.RequestFrame(s.dispatch)
	}
}

// dispatch runs exactly one callback between startFrame and endFrame.
func (s *Scheduler) dispatch(timestamp float64) {
	s.mu.Lock()
	cb, ok := s.queue.pop()
	if !ok {
		s.mu.Unlock()
		panic(ir.NewConfigurationError("frame dispatched with no pending callback"))
	}
	s.state = Running
	s.frames++
	frame := s.frames
	s.mu.Unlock()

	s.logger.Debug("frame begin", "frame", frame, "timestamp", timestamp)
	s.signals.CallAsync(ir.FrameBegin)
	defer s.finish(frame)
	cb(timestamp)
}

// finish closes the frame and reschedules if more callbacks are queued.
// It runs even if the callback panics, so the host never sees an open frame.
func (s *Scheduler) finish(frame int64) {
	s.signals.CallAsync(ir.FrameEnd)

	s.mu.Lock()
	request := s.queue.len() > 0
	if request {
		s.state = Scheduled
	} else {
		s.state = Idle
	}
	s.mu.Unlock()

	s.logger.Debug("frame end", "frame", frame, "reschedule", request)
	if request {
		s.platform.RequestFrame(s.dispatch)
	}
}

// State returns the current state.
func (s *Scheduler) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Pending returns the number of queued callbacks.
func (s *Scheduler) Pending() int {
	return s.queue.len()
}

// Frames returns the number of frames dispatched so far.
func (s *Scheduler) Frames() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frames
}
