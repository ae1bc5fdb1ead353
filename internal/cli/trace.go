package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/glbridge/internal/ir"
	"github.com/roach88/glbridge/internal/store"
	"github.com/roach88/glbridge/internal/transport"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
	Session  string
	Call     string // optional - filter to one call name
}

// TraceMessage is one recorded message.
type TraceMessage struct {
	Seq           int64   `json:"seq"`
	Kind          string  `json:"kind"`
	Name          string  `json:"name"`
	CorrelationID *int64  `json:"correlation_id,omitempty"`
	Body          string  `json:"body"`
	Reply         *string `json:"reply,omitempty"`
	Verified      bool    `json:"verified"`
}

// TraceResult holds a session's messages and summary counts.
type TraceResult struct {
	Session  string         `json:"session"`
	Messages []TraceMessage `json:"messages"`
	Stats    TraceStats     `json:"stats"`
}

// TraceStats summarizes a session.
type TraceStats struct {
	Total     int `json:"total"`
	Sync      int `json:"sync"`
	Async     int `json:"async"`
	Frames    int `json:"frames"`
	Creations int `json:"creations"`
	Corrupt   int `json:"corrupt"`
}

// SessionList is the trace output when no session is given.
type SessionList struct {
	Sessions []store.SessionInfo `json:"sessions"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace",
		Short: "Inspect recorded sessions",
		Long: `Inspect a recording database.

Without --session, lists every recorded session with its message count.
With --session, prints the session's messages in send order. Each
message's hash is checked against its body; tampered messages are
flagged.

Examples:
  glbridge trace --db ./glbridge.db
  glbridge trace --db ./glbridge.db --session 0191e2c4-...
  glbridge trace --db ./glbridge.db --session 0191e2c4-... --call createBuffer
  glbridge trace --db ./glbridge.db --session 0191e2c4-... --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session to print")
	cmd.Flags().StringVar(&opts.Call, "call", "", "filter to one call name")

	return cmd
}

func runTrace(opts *TraceOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	ctx := cmd.Context()

	st, err := openExisting(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	if opts.Session == "" {
		sessions, err := st.Sessions(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
		if opts.Format == "json" {
			return formatter.Success(SessionList{Sessions: sessions})
		}
		outputSessionsText(formatter.Writer, sessions)
		return nil
	}

	var records []store.Record
	if opts.Call != "" {
		records, err = st.ReadCall(ctx, opts.Session, opts.Call)
	} else {
		records, err = st.ReadSession(ctx, opts.Session)
	}
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read session", err)
	}

	result := buildTrace(opts.Session, records)
	if len(records) == 0 && opts.Format != "json" {
		fmt.Fprintf(formatter.Writer, "No messages found for session: %s\n", opts.Session)
		return nil
	}
	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		outputTraceText(formatter.Writer, result)
	}

	if result.Stats.Corrupt > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d message(s) failed hash verification", result.Stats.Corrupt))
	}
	return nil
}

// openExisting opens a database that must already exist.
func openExisting(path string) (*store.Store, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("%s: database not found: %s", ErrCodeNotFound, path))
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	return st, nil
}

func buildTrace(session string, records []store.Record) TraceResult {
	result := TraceResult{
		Session:  session,
		Messages: make([]TraceMessage, 0, len(records)),
	}
	for _, rec := range records {
		msg := TraceMessage{
			Seq:           rec.Seq,
			Kind:          string(rec.Kind),
			Name:          rec.Name,
			CorrelationID: rec.CorrelationID,
			Body:          rec.Body,
			Reply:         rec.Reply,
			Verified:      rec.Verify() == nil,
		}
		result.Messages = append(result.Messages, msg)

		result.Stats.Total++
		if rec.Kind == transport.KindSync {
			result.Stats.Sync++
		} else {
			result.Stats.Async++
		}
		if rec.Body == ir.FrameEnd {
			result.Stats.Frames++
		}
		if rec.CorrelationID != nil {
			result.Stats.Creations++
		}
		if !msg.Verified {
			result.Stats.Corrupt++
		}
	}
	return result
}

func outputSessionsText(w io.Writer, sessions []store.SessionInfo) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, "No sessions recorded.")
		return
	}
	for _, s := range sessions {
		fmt.Fprintf(w, "%s  %d messages  (bridge %s, protocol %s)\n",
			s.ID, s.Messages, s.BridgeVersion, s.ProtocolVersion)
	}
}

func outputTraceText(w io.Writer, result TraceResult) {
	fmt.Fprintf(w, "Session: %s\n", result.Session)
	for _, msg := range result.Messages {
		line := traceLine(msg.Seq, msg.Kind, msg.Body)
		if msg.Reply != nil {
			line += " -> " + *msg.Reply
		}
		if !msg.Verified {
			line += "  (hash mismatch)"
		}
		fmt.Fprintln(w, line)
	}
	s := result.Stats
	fmt.Fprintf(w, "\n%d messages: %d sync, %d async, %d frames, %d creations\n",
		s.Total, s.Sync, s.Async, s.Frames, s.Creations)
	if s.Corrupt > 0 {
		fmt.Fprintf(w, "✗ %d message(s) failed hash verification\n", s.Corrupt)
	}
}
