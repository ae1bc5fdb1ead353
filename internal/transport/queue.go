package transport

import "sync"

// messageQueue is a thread-safe unbounded FIFO of serialized messages.
//
// The signal channel lets the Pipeline wait for work and for context
// cancellation in one select.
type messageQueue struct {
	mu       sync.Mutex
	messages []string
	closed   bool
	signal   chan struct{} // buffered, size 1
}

func newMessageQueue() *messageQueue {
	return &messageQueue{
		messages: make([]string, 0, 64),
		signal:   make(chan struct{}, 1),
	}
}

// Enqueue adds msg to the back of the queue.
// Returns false if the queue is closed.
func (q *messageQueue) Enqueue(msg string) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return false
	}
	q.messages = append(q.messages, msg)

	// Non-blocking: the buffer of 1 coalesces signals.
	select {
	case q.signal <- struct{}{}:
	default:
	}
	return true
}

// TryDequeue removes and returns the front message without blocking.
func (q *messageQueue) TryDequeue() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.messages) == 0 {
		return "", false
	}
	msg := q.messages[0]
	q.messages[0] = ""
	if len(q.messages) == 1 {
		q.messages = q.messages[:0]
	} else {
		q.messages = q.messages[1:]
	}
	return msg, true
}

// Wait returns a channel that fires when messages may be available.
// It is closed once the queue is closed.
func (q *messageQueue) Wait() <-chan struct{} {
	return q.signal
}

func (q *messageQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.messages)
}

// Drained reports whether the queue is closed and empty.
func (q *messageQueue) Drained() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.closed && len(q.messages) == 0
}

// Close stops further enqueues and wakes any waiter.
func (q *messageQueue) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return
	}
	q.closed = true
	close(q.signal)
}
