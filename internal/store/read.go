package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/glbridge/internal/transport"
)

// SessionInfo summarizes one recording session.
type SessionInfo struct {
	ID              string `json:"id"`
	BridgeVersion   string `json:"bridge_version"`
	ProtocolVersion string `json:"protocol_version"`
	Messages        int64  `json:"messages"`
}

// ReadSession returns every message of a session in send order.
//
// Returns an empty slice (not nil) if the session has no messages.
func (s *Store) ReadSession(ctx context.Context, session string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session, seq, kind, name, correlation_id, body, hash, reply
		FROM messages
		WHERE session = ?
		ORDER BY seq ASC
	`, session)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return records, nil
}

// ReadCall returns the messages of a session for one call name.
func (s *Store) ReadCall(ctx context.Context, session, name string) ([]Record, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT session, seq, kind, name, correlation_id, body, hash, reply
		FROM messages
		WHERE session = ? AND name = ?
		ORDER BY seq ASC
	`, session, name)
	if err != nil {
		return nil, fmt.Errorf("query messages: %w", err)
	}
	defer rows.Close()

	records := []Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate messages: %w", err)
	}
	return records, nil
}

// Sessions lists recording sessions ordered by id. UUIDv7 ids sort by
// creation time.
func (s *Store) Sessions(ctx context.Context) ([]SessionInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT s.id, s.bridge_version, s.protocol_version, COUNT(m.seq)
		FROM sessions s
		LEFT JOIN messages m ON m.session = s.id
		GROUP BY s.id
		ORDER BY s.id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []SessionInfo{}
	for rows.Next() {
		var info SessionInfo
		if err := rows.Scan(&info.ID, &info.BridgeVersion, &info.ProtocolVersion, &info.Messages); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		sessions = append(sessions, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// LastSeq returns the highest seq recorded for a session, or 0.
func (s *Store) LastSeq(ctx context.Context, session string) (int64, error) {
	var seq sql.NullInt64
	err := s.db.QueryRowContext(ctx, `
		SELECT MAX(seq) FROM messages WHERE session = ?
	`, session).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("last seq: %w", err)
	}
	return seq.Int64, nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var (
		rec   Record
		kind  string
		corr  sql.NullInt64
		reply sql.NullString
	)
	if err := rows.Scan(&rec.Session, &rec.Seq, &kind, &rec.Name, &corr, &rec.Body, &rec.Hash, &reply); err != nil {
		return Record{}, fmt.Errorf("scan message: %w", err)
	}
	rec.Kind = transport.Kind(kind)
	if corr.Valid {
		id := corr.Int64
		rec.CorrelationID = &id
	}
	if reply.Valid {
		r := reply.String
		rec.Reply = &r
	}
	return rec, nil
}
