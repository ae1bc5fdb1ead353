package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	"github.com/roach88/glbridge/internal/host"
	"github.com/roach88/glbridge/internal/ir"
	"github.com/roach88/glbridge/internal/store"
	"github.com/roach88/glbridge/internal/transport"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Session  string // optional - specific session only
	Strict   bool
}

// ReplaySessionResult holds the replay result for a single session.
type ReplaySessionResult struct {
	Session  string `json:"session"`
	Messages int    `json:"messages"`
	Sync     int    `json:"sync"`
	Frames   int    `json:"frames"`

	// Diverged lists the seqs of sync calls the reference host answered
	// differently from the recording.
	Diverged []int64 `json:"diverged,omitempty"`

	Host          host.Stats `json:"host"`
	Natives       int        `json:"natives"`
	Deterministic bool       `json:"deterministic"`
	Errors        []string   `json:"errors,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Sessions         []ReplaySessionResult `json:"sessions"`
	TotalSessions    int                   `json:"total_sessions"`
	AllDeterministic bool                  `json:"all_deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay recorded sessions into the reference host",
		Long: `Replay recorded sessions into the reference host and verify determinism.

Every message hash is checked before anything is sent. Each session is
then replayed twice into fresh hosts, drawing after every endFrame; the
two runs must produce the same replies, counters and native bindings.

Sync calls the reference host answers differently from the recording
are reported as diverged. With --strict, divergence is a failure.

Exit codes:
  0 - All sessions replayed deterministically
  1 - Verification failed (tampered log, nondeterminism, or --strict divergence)
  2 - Command error (database not found, etc.)

Examples:
  glbridge replay --db ./glbridge.db
  glbridge replay --db ./glbridge.db --session 0191e2c4-...
  glbridge replay --db ./glbridge.db --strict --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Session, "session", "", "replay specific session only")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "fail when a reply differs from the recording")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := formatter.Logger()
	ctx := cmd.Context()

	st, err := openExisting(opts.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	var sessions []string
	if opts.Session != "" {
		sessions = []string{opts.Session}
	} else {
		infos, err := st.Sessions(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to list sessions", err)
		}
		for _, info := range infos {
			sessions = append(sessions, info.ID)
		}
	}

	result := ReplayResult{
		Sessions:         make([]ReplaySessionResult, 0, len(sessions)),
		TotalSessions:    len(sessions),
		AllDeterministic: true,
	}
	failed := false
	for _, session := range sessions {
		formatter.VerboseLog("Replaying session %s", session)
		sr := replaySession(ctx, st, session, logger)
		if !sr.Deterministic {
			result.AllDeterministic = false
			failed = true
		}
		if opts.Strict && len(sr.Diverged) > 0 {
			failed = true
		}
		result.Sessions = append(result.Sessions, sr)
	}

	if opts.Format == "json" {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		outputReplayText(formatter.Writer, result)
	}

	if failed {
		return NewExitError(ExitFailure, "replay verification failed")
	}
	return nil
}

// hostRun is what one replay into a fresh host produced.
type hostRun struct {
	replay  store.ReplayResult
	replies []string
	stats   host.Stats
	natives []int64
	errs    []string
}

func replaySession(ctx context.Context, st *store.Store, session string, logger *slog.Logger) ReplaySessionResult {
	sr := ReplaySessionResult{Session: session}

	first, err := replayOnce(ctx, st, session, logger)
	if err != nil {
		sr.Errors = []string{err.Error()}
		return sr
	}
	second, err := replayOnce(ctx, st, session, logger)
	if err != nil {
		sr.Errors = []string{err.Error()}
		return sr
	}

	sr.Messages = first.replay.Messages
	sr.Sync = first.replay.Sync
	sr.Frames = first.replay.Frames
	sr.Diverged = first.replay.Mismatches
	sr.Host = first.stats
	sr.Natives = len(first.natives)
	sr.Errors = first.errs
	sr.Deterministic = slices.Equal(first.replies, second.replies) &&
		first.stats == second.stats &&
		slices.Equal(first.natives, second.natives)
	return sr
}

// replayOnce feeds a session to a fresh host, drawing after every frame.
func replayOnce(ctx context.Context, st *store.Store, session string, logger *slog.Logger) (hostRun, error) {
	var run hostRun

	exec := host.ExecutorFunc(func(op host.Op) error {
		logger.Debug("execute", "call", op.Descriptor.Name, "native", op.Native)
		return nil
	})
	h := host.New(exec, host.WithLogger(logger))

	t := transport.Funcs{
		Sync: func(msg string) (string, error) {
			reply, err := h.CallSync(msg)
			if err == nil {
				run.replies = append(run.replies, reply)
			}
			return reply, err
		},
		Async: func(msg string) {
			h.CallAsync(msg)
			if msg == ir.FrameEnd {
				if err := h.DrawFrame(); err != nil {
					run.errs = append(run.errs, err.Error())
				}
			}
		},
	}

	res, err := store.Replay(ctx, st, session, t)
	if err != nil {
		return run, err
	}
	run.replay = res
	run.stats = h.Stats()
	run.natives = h.Natives()
	if err := h.Err(); err != nil {
		run.errs = append(run.errs, err.Error())
	}
	return run, nil
}

func outputReplayText(w io.Writer, result ReplayResult) {
	if result.TotalSessions == 0 {
		fmt.Fprintln(w, "No sessions to replay.")
		return
	}

	for _, sr := range result.Sessions {
		mark := "✓"
		if !sr.Deterministic {
			mark = "✗"
		}
		fmt.Fprintf(w, "%s %s\n", mark, sr.Session)
		fmt.Fprintf(w, "  messages: %d (sync %d), frames: %d, natives: %d\n",
			sr.Messages, sr.Sync, sr.Frames, sr.Natives)
		fmt.Fprintf(w, "  host: %d updates, %d renders, %d rejected, %d state errors\n",
			sr.Host.Updates, sr.Host.Renders, sr.Host.Rejected, sr.Host.StateErrors)
		if len(sr.Diverged) > 0 {
			fmt.Fprintf(w, "  diverged at seq %v\n", sr.Diverged)
		}
		for _, e := range sr.Errors {
			fmt.Fprintf(w, "  %s\n", e)
		}
	}

	if result.AllDeterministic {
		fmt.Fprintf(w, "\n✓ All %d session(s) replayed deterministically\n", result.TotalSessions)
	} else {
		fmt.Fprintln(w, "\n✗ Replay verification failed")
	}
}
