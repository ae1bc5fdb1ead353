// Package store records bridge traffic in SQLite.
//
// The log is append-only. Each row is one transport message:
//   - session: the recording session (UUIDv7 by default)
//   - seq: position within the session, from 1
//   - kind: "sync" or "async"
//   - name: the call name, or the frame signal itself
//   - correlation_id: set for creation calls
//   - body: the message exactly as sent
//   - hash: content hash of the message (see ir.MessageHash)
//   - reply: the host's reply to a sync call
//
// All reads order by seq, so a session reads back in send order and
// Replay re-sends it identically.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
