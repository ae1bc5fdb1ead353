package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/roach88/glbridge/internal/transport"
)

// Tee is a transport that records every message under one session before
// passing it on. Delivery never depends on the store: a failed write is
// logged and kept for Err, and the message is forwarded anyway.
//
// Both methods write to the store before returning, so CallAsync blocks
// for one insert. Put a transport.Pipeline in front of a Tee when async
// callers must not wait on disk.
//
// Thread-safety: Tee is safe for concurrent use. Seq numbers follow the
// order in which calls enter the Tee.
type Tee struct {
	ctx     context.Context
	store   *Store
	next    transport.Transport
	session string
	logger  *slog.Logger

	mu  sync.Mutex
	seq int64
	err error
}

var _ transport.Transport = (*Tee)(nil)

// NewTee records to session in st and forwards to next. Recording into an
// existing session continues after its last message.
func NewTee(ctx context.Context, st *Store, session string, next transport.Transport, logger *slog.Logger) (*Tee, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := st.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	last, err := st.LastSeq(ctx, session)
	if err != nil {
		return nil, err
	}
	logger.Info("recording session", "session", session, "resume_seq", last)
	return &Tee{
		ctx:     ctx,
		store:   st,
		next:    next,
		session: session,
		logger:  logger,
		seq:     last,
	}, nil
}

// Session returns the session id being recorded.
func (t *Tee) Session() string {
	return t.session
}

// Err returns the first recording failure, or nil.
func (t *Tee) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *Tee) CallAsync(msg string) {
	seq := t.nextSeq()
	if rec, err := NewRecord(t.session, seq, transport.KindAsync, msg); err != nil {
		t.fail(err)
	} else {
		t.append(rec)
	}
	t.next.CallAsync(msg)
}

func (t *Tee) CallSync(msg string) (string, error) {
	seq := t.nextSeq()
	reply, err := t.next.CallSync(msg)

	rec, recErr := NewRecord(t.session, seq, transport.KindSync, msg)
	if recErr != nil {
		t.fail(recErr)
		return reply, err
	}
	if err == nil {
		rec = rec.WithReply(reply)
	}
	t.append(rec)
	return reply, err
}

func (t *Tee) nextSeq() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	return t.seq
}

func (t *Tee) append(rec Record) {
	if err := t.store.Append(t.ctx, rec); err != nil {
		t.fail(err)
	}
}

func (t *Tee) fail(err error) {
	err = fmt.Errorf("record session %s: %w", t.session, err)
	t.logger.Warn("recording failed", "error", err)
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err == nil {
		t.err = err
	}
}
