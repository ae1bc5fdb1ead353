package transport

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
)

// Pipeline decouples asynchronous delivery from the caller.
//
// CallAsync enqueues and returns immediately; a single Run goroutine hands
// messages to the next transport in issue order. CallSync first waits until
// every earlier asynchronous message has been delivered, so the host sees
// one ordered stream across both primitives.
//
// Thread-safety model:
//   - CallAsync, CallSync, Flush, Close: safe from any goroutine, but the
//     ordering guarantee holds per calling goroutine
//   - Run: must be called from exactly one goroutine
type Pipeline struct {
	next   Transport
	queue  *messageQueue
	logger *slog.Logger

	mu        sync.Mutex
	cond      *sync.Cond
	enqueued  int64
	delivered int64
	stopped   bool
}

// NewPipeline creates a pipeline in front of next. A nil logger uses
// slog.Default(). Run must be started before the first CallSync.
func NewPipeline(next Transport, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		next:   next,
		queue:  newMessageQueue(),
		logger: logger,
	}
	p.cond = sync.NewCond(&p.mu)
	return p
}

// CallAsync enqueues msg. Messages sent after the pipeline stopped are
// dropped with a warning.
func (p *Pipeline) CallAsync(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped || !p.queue.Enqueue(msg) {
		p.logger.Warn("dropping async message: pipeline stopped", "message", msg)
		return
	}
	p.enqueued++
}

// CallSync flushes pending asynchronous messages, then forwards msg.
func (p *Pipeline) CallSync(msg string) (string, error) {
	if err := p.Flush(); err != nil {
		return "", err
	}
	return p.next.CallSync(msg)
}

// Flush blocks until every message enqueued so far has been delivered.
// It fails if the pipeline stops with messages still pending.
func (p *Pipeline) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	for p.delivered < p.enqueued && !p.stopped {
		p.cond.Wait()
	}
	if pending := p.enqueued - p.delivered; pending > 0 {
		return fmt.Errorf("pipeline stopped with %d undelivered messages", pending)
	}
	return nil
}

// Run delivers queued messages until ctx is cancelled or Close is called.
// After Close, messages already queued are still delivered before Run
// returns nil.
func (p *Pipeline) Run(ctx context.Context) error {
	p.logger.Debug("pipeline starting")
	defer p.stop()

	for {
		if err := ctx.Err(); err != nil {
			p.logger.Debug("pipeline stopping: context cancelled", "pending", p.queue.Len())
			return err
		}
		if msg, ok := p.queue.TryDequeue(); ok {
			p.next.CallAsync(msg)
			p.markDelivered()
			continue
		}

		select {
		case <-ctx.Done():
			p.logger.Debug("pipeline stopping: context cancelled", "pending", p.queue.Len())
			return ctx.Err()
		case <-p.queue.Wait():
			if p.queue.Drained() {
				p.logger.Debug("pipeline stopping: closed")
				return nil
			}
		}
	}
}

// Close stops accepting messages. Run exits once the queue is drained.
func (p *Pipeline) Close() {
	p.queue.Close()
}

// Stats returns the number of messages enqueued and delivered.
func (p *Pipeline) Stats() (enqueued, delivered int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.enqueued, p.delivered
}

func (p *Pipeline) markDelivered() {
	p.mu.Lock()
	p.delivered++
	p.cond.Broadcast()
	p.mu.Unlock()
}

func (p *Pipeline) stop() {
	p.mu.Lock()
	p.stopped = true
	p.cond.Broadcast()
	p.mu.Unlock()
	p.queue.Close()
}
