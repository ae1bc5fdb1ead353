package frame

import (
	"context"
	"sync"
	"time"
)

// ManualPlatform ticks only when told to. It records every outstanding
// request so tests can check that at most one exists.
type ManualPlatform struct {
	mu       sync.Mutex
	pending  []func(float64)
	requests int
}

// NewManualPlatform creates a platform with no outstanding request.
func NewManualPlatform() *ManualPlatform {
	return &ManualPlatform{}
}

func (p *ManualPlatform) RequestFrame(tick func(timestamp float64)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = append(p.pending, tick)
	p.requests++
}

// Tick runs the oldest outstanding request with the given timestamp.
// It reports false if nothing was requested.
func (p *ManualPlatform) Tick(timestamp float64) bool {
	p.mu.Lock()
	if len(p.pending) == 0 {
		p.mu.Unlock()
		return false
	}
	tick := p.pending[0]
	p.pending = p.pending[1:]
	p.mu.Unlock()

	tick(timestamp)
	return true
}

// Outstanding returns the number of requests not yet ticked.
func (p *ManualPlatform) Outstanding() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

// Requests returns the total number of requests made.
func (p *ManualPlatform) Requests() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.requests
}

// DefaultInterval is one frame at 60Hz.
const DefaultInterval = time.Second / 60

// TickerPlatform ticks on a time.Ticker. Requests are served by Run, on
// Run's goroutine; a request made between ticks waits for the next one.
type TickerPlatform struct {
	interval time.Duration

	mu      sync.Mutex
	pending func(float64)
}

// NewTickerPlatform creates a platform ticking every interval. A
// non-positive interval uses DefaultInterval.
func NewTickerPlatform(interval time.Duration) *TickerPlatform {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &TickerPlatform{interval: interval}
}

// RequestFrame replaces any outstanding request. The Scheduler never makes
// a second request while one is outstanding.
func (p *TickerPlatform) RequestFrame(tick func(timestamp float64)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = tick
}

// Run ticks until ctx is cancelled. Timestamps are milliseconds since Run
// started.
func (p *TickerPlatform) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()
	start := time.Now()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case now := <-ticker.C:
			p.mu.Lock()
			tick := p.pending
			p.pending = nil
			p.mu.Unlock()

			if tick != nil {
				tick(float64(now.Sub(start)) / float64(time.Millisecond))
			}
		}
	}
}
