package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/glbridge/internal/harness"
	"github.com/roach88/glbridge/internal/ir"
	"github.com/roach88/glbridge/internal/store"
	"github.com/roach88/glbridge/internal/transport"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
	Session  string
}

// RunResult is the outcome of one scenario run.
type RunResult struct {
	Scenario string               `json:"scenario"`
	Mode     string               `json:"mode"`
	Pass     bool                 `json:"pass"`
	Frames   int                  `json:"frames"`
	Session  string               `json:"session,omitempty"`
	Handles  map[string]int64     `json:"handles,omitempty"`
	Trace    []harness.TraceEvent `json:"trace"`
	Errors   []string             `json:"errors,omitempty"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a call scenario through the bridge",
		Long: `Run one scenario through a fresh bridge and print every message
that reached the host, in send order.

With --db the messages are also recorded to a SQLite session that can
later be inspected with trace or re-sent with replay.

Exit codes:
  0 - Scenario passed
  1 - A step or assertion failed
  2 - Command error (missing file, bad scenario, database error)

Examples:
  glbridge run ./scenarios/triangle.yaml
  glbridge run ./scenarios/triangle.yaml --db ./glbridge.db
  glbridge run ./scenarios/triangle.yaml --db ./glbridge.db --session demo
  glbridge run ./scenarios/triangle.yaml -v --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRun(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "record messages to this SQLite database")
	cmd.Flags().StringVar(&opts.Session, "session", "", "session id to record under (default: new UUIDv7)")

	return cmd
}

func runRun(opts *RunOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := formatter.Logger()

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("scenario not found: %s", path), nil)
	}
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, "failed to load scenario", err)
	}
	formatter.VerboseLog("Loaded scenario %s (%d steps)", scenario.Name, len(scenario.Steps))

	harnessOpts := []harness.Option{harness.WithLogger(logger)}
	var rec *recording
	if opts.Database != "" {
		rec, err = openRecording(cmd.Context(), opts.Database, opts.Session, logger)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
		}
		defer rec.Close()
		harnessOpts = append(harnessOpts, harness.WithTransport(rec.wrap))
	}

	result, err := harness.Run(scenario, harnessOpts...)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "scenario could not start", err)
	}

	out := RunResult{
		Scenario: scenario.Name,
		Mode:     scenario.Mode,
		Pass:     result.Pass,
		Frames:   result.Frames,
		Handles:  result.Handles,
		Trace:    result.Trace,
		Errors:   result.Errors,
	}
	if rec != nil {
		if err := rec.Err(); err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "recording failed", err)
		}
		out.Session = rec.session
	}

	if opts.Format == "json" {
		if err := formatter.Success(out); err != nil {
			return err
		}
	} else {
		outputRunText(formatter.Writer, out)
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("scenario %s failed", scenario.Name))
	}
	return nil
}

func outputRunText(w io.Writer, out RunResult) {
	fmt.Fprintf(w, "Scenario: %s (%s)\n", out.Scenario, out.Mode)
	for _, e := range out.Trace {
		fmt.Fprintln(w, traceLine(e.Seq, e.Kind, eventBody(e)))
	}
	fmt.Fprintf(w, "Frames: %d\n", out.Frames)
	if out.Session != "" {
		fmt.Fprintf(w, "Session: %s\n", out.Session)
	}
	if out.Pass {
		fmt.Fprintln(w, "✓ PASS")
		return
	}
	fmt.Fprintln(w, "✗ FAIL")
	for _, msg := range out.Errors {
		fmt.Fprintf(w, "  %s\n", msg)
	}
}

// traceLine renders one message: signals by name, descriptors with their kind.
func traceLine(seq int64, kind, body string) string {
	if ir.IsFrameSignal(body) {
		return fmt.Sprintf("  [%d] %s", seq, body)
	}
	return fmt.Sprintf("  [%d] %-5s %s", seq, kind, body)
}

func eventBody(e harness.TraceEvent) string {
	if e.Descriptor == nil {
		return e.Call
	}
	body, err := e.Descriptor.Encode()
	if err != nil {
		return e.Call
	}
	return body
}

// recording tees a harness run into one store session. Messages pass
// through a transport.Pipeline so store writes happen off the bridge's
// goroutine.
type recording struct {
	ctx     context.Context
	store   *store.Store
	session string
	logger  *slog.Logger

	tee  *store.Tee
	pipe *transport.Pipeline
	done chan error
	err  error
}

func openRecording(ctx context.Context, path, session string, logger *slog.Logger) (*recording, error) {
	st, err := store.Open(path)
	if err != nil {
		return nil, err
	}
	if session == "" {
		session = store.UUIDv7Generator{}.Generate()
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &recording{ctx: ctx, store: st, session: session, logger: logger}, nil
}

func (r *recording) wrap(next transport.Transport) transport.Transport {
	tee, err := store.NewTee(r.ctx, r.store, r.session, next, r.logger)
	if err != nil {
		r.err = err
		return next
	}
	r.tee = tee
	r.pipe = transport.NewPipeline(tee, r.logger)
	r.done = make(chan error, 1)
	go func() { r.done <- r.pipe.Run(r.ctx) }()
	return r.pipe
}

// Err reports a failure to start or keep recording.
func (r *recording) Err() error {
	if r.err != nil {
		return r.err
	}
	if r.tee != nil {
		return r.tee.Err()
	}
	return nil
}

// Close drains the pipeline, then closes the store.
func (r *recording) Close() error {
	if r.pipe != nil {
		r.pipe.Close()
		if err := <-r.done; err != nil {
			r.logger.Warn("recording pipeline stopped early", "error", err)
		}
	}
	return r.store.Close()
}
