package testutil

import "sync"

// TickClock produces deterministic frame timestamps for tests.
//
// Each call to Next advances by a fixed step, so a scenario driven by
// TickClock sees the same timestamps on every run. The first call returns
// one step, matching a platform that reports time since page load.
//
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type TickClock struct {
	mu   sync.Mutex
	step float64
	now  float64
}

// FrameStep is the default step: one frame at 60Hz, in milliseconds.
const FrameStep = 16.0

// NewTickClock creates a clock advancing by step milliseconds per tick.
// A non-positive step uses FrameStep.
func NewTickClock(step float64) *TickClock {
	if step <= 0 {
		step = FrameStep
	}
	return &TickClock{step: step}
}

// Next advances the clock and returns the new timestamp.
func (c *TickClock) Next() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now += c.step
	return c.now
}

// Current returns the last timestamp without advancing.
func (c *TickClock) Current() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Reset rewinds the clock to 0.
func (c *TickClock) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = 0
}
