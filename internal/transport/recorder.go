package transport

import (
	"sync"

	"github.com/roach88/glbridge/internal/ir"
)

// Kind tells which primitive carried a message.
type Kind string

const (
	KindSync  Kind = "sync"
	KindAsync Kind = "async"
)

// Message is one recorded transport message.
type Message struct {
	Kind Kind   `json:"kind"`
	Body string `json:"body"`
}

// Responder answers a synchronous call.
type Responder func(d *ir.Descriptor) (string, error)

// Recorder is a Transport that records every message in order and answers
// synchronous calls from canned replies. It stands in for a host in tests
// and scenario runs.
//
// Thread-safety: all methods are safe for concurrent use.
type Recorder struct {
	mu        sync.Mutex
	messages  []Message
	replies   map[string]string
	responder Responder
}

// NewRecorder creates an empty recorder. Unanswered sync calls reply null.
func NewRecorder() *Recorder {
	return &Recorder{replies: make(map[string]string)}
}

// SetReply registers the reply returned for every sync call named name.
func (r *Recorder) SetReply(name, reply string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.replies[name] = reply
}

// SetResponder installs a function consulted before canned replies.
func (r *Recorder) SetResponder(fn Responder) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responder = fn
}

func (r *Recorder) CallSync(msg string) (string, error) {
	r.mu.Lock()
	r.messages = append(r.messages, Message{Kind: KindSync, Body: msg})
	responder := r.responder
	r.mu.Unlock()

	d, err := ir.ParseDescriptor(msg)
	if err != nil {
		return "", err
	}
	if responder != nil {
		return responder(d)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if reply, ok := r.replies[d.Name]; ok {
		return reply, nil
	}
	return "null", nil
}

func (r *Recorder) CallAsync(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, Message{Kind: KindAsync, Body: msg})
}

// Messages returns a copy of everything recorded so far.
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Message, len(r.messages))
	copy(out, r.messages)
	return out
}

// Bodies returns the recorded message bodies in order.
func (r *Recorder) Bodies() []string {
	msgs := r.Messages()
	out := make([]string, len(msgs))
	for i, m := range msgs {
		out[i] = m.Body
	}
	return out
}

// Reset forgets recorded messages. Replies are kept.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = nil
}
