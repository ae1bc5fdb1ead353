package store

import (
	"fmt"

	"github.com/roach88/glbridge/internal/ir"
	"github.com/roach88/glbridge/internal/transport"
)

// Record is one logged transport message.
type Record struct {
	Session       string
	Seq           int64
	Kind          transport.Kind
	Name          string
	CorrelationID *int64
	Body          string
	Hash          string

	// Reply is set for sync calls once the host has answered.
	Reply *string
}

// NewRecord describes msg for the log. The name and correlation id are
// read from the descriptor; frame signals are named by themselves.
func NewRecord(session string, seq int64, kind transport.Kind, msg string) (Record, error) {
	rec := Record{Session: session, Seq: seq, Kind: kind, Body: msg}

	hash, err := ir.MessageHash(msg)
	if err != nil {
		return Record{}, fmt.Errorf("describe message %d: %w", seq, err)
	}
	rec.Hash = hash

	if ir.IsFrameSignal(msg) {
		rec.Name = msg
		return rec, nil
	}
	d, err := ir.ParseDescriptor(msg)
	if err != nil {
		return Record{}, fmt.Errorf("describe message %d: %w", seq, err)
	}
	rec.Name = d.Name
	rec.CorrelationID = d.CorrelationID
	return rec, nil
}

// WithReply returns a copy of r carrying the host's reply.
func (r Record) WithReply(reply string) Record {
	r.Reply = &reply
	return r
}

// Verify checks that the stored hash matches the body.
func (r Record) Verify() error {
	hash, err := ir.MessageHash(r.Body)
	if err != nil {
		return fmt.Errorf("seq %d: %w", r.Seq, err)
	}
	if hash != r.Hash {
		return fmt.Errorf("seq %d: hash mismatch: stored %s, computed %s", r.Seq, r.Hash, hash)
	}
	return nil
}

func nullableInt(v *int64) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
