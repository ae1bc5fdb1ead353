package store

import (
	"context"
	"fmt"

	"github.com/roach88/glbridge/internal/ir"
)

// CreateSession registers a recording session. Uses ON CONFLICT DO NOTHING
// for idempotency: reopening a session keeps its original versions.
func (s *Store) CreateSession(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("create session: empty id")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO sessions (id, bridge_version, protocol_version)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, id, ir.BridgeVersion, ir.ProtocolVersion)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Append inserts a message record. Uses ON CONFLICT(session, seq) DO
// NOTHING for idempotency - a record already written is silently kept.
//
// Note: The session must exist (foreign key constraint).
func (s *Store) Append(ctx context.Context, rec Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO messages
		(session, seq, kind, name, correlation_id, body, hash, reply)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(session, seq) DO NOTHING
	`,
		rec.Session,
		rec.Seq,
		string(rec.Kind),
		rec.Name,
		nullableInt(rec.CorrelationID),
		rec.Body,
		rec.Hash,
		nullableString(rec.Reply),
	)
	if err != nil {
		return fmt.Errorf("append message %d: %w", rec.Seq, err)
	}
	return nil
}
