package frame

import "sync"

// callbackQueue is a thread-safe FIFO of pending callbacks.
type callbackQueue struct {
	mu        sync.Mutex
	callbacks []Callback
}

func (q *callbackQueue) push(cb Callback) int {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.callbacks = append(q.callbacks, cb)
	return len(q.callbacks)
}

// pop removes the oldest callback. Returns false if the queue is empty.
func (q *callbackQueue) pop() (Callback, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.callbacks) == 0 {
		return nil, false
	}
	cb := q.callbacks[0]
	// Release the closure for GC.
	q.callbacks[0] = nil
	if len(q.callbacks) == 1 {
		q.callbacks = q.callbacks[:0]
	} else {
		q.callbacks = q.callbacks[1:]
	}
	return cb, true
}

func (q *callbackQueue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.callbacks)
}
