package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/spf13/cobra"

	"github.com/roach88/glbridge/internal/calls"
)

// ConfigProblem is one error found in a call config.
type ConfigProblem struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
	Line    int    `json:"line,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool            `json:"valid"`
	Counts map[string]int  `json:"counts,omitempty"`
	Errors []ConfigProblem `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <calls.cue>",
		Short: "Validate a call classification config",
		Long: `Validate a CUE call classification config.

Checks the config's structure (only suppressed, sync, async and create
are allowed; create values must be known resource kinds) and its
consistency: no empty names, no protocol messages, no call listed
twice or under two classes. All problems are reported, not just the
first.

Exit codes:
  0 - Config is valid
  1 - Config has errors
  2 - Command error (file not found)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return formatter.Fail(ExitCommandError, ErrCodeNotFound, fmt.Sprintf("config not found: %s", path), nil)
	}
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeLoadFailed, "failed to read config", err)
	}

	v := cuecontext.New().CompileBytes(data, cue.Filename(path))
	cfg, err := calls.CompileConfig(v)
	if err != nil {
		return outputValidationErrors(formatter, []ConfigProblem{compileProblem(err)})
	}
	formatter.VerboseLog("Compiled %s", path)

	if verrs := calls.Validate(cfg); len(verrs) > 0 {
		problems := make([]ConfigProblem, len(verrs))
		for i, e := range verrs {
			problems[i] = ConfigProblem{Field: e.Field, Message: e.Message, Code: e.Code}
		}
		return outputValidationErrors(formatter, problems)
	}

	return outputValidateSuccess(formatter, map[string]int{
		"suppressed": len(cfg.Suppressed),
		"sync":       len(cfg.Sync),
		"async":      len(cfg.Async),
		"create":     len(cfg.Create),
	})
}

// compileProblem converts a structural error, keeping its source line.
func compileProblem(err error) ConfigProblem {
	var cErr *calls.CompileError
	if errors.As(err, &cErr) {
		p := ConfigProblem{Field: cErr.Field, Message: cErr.Message, Code: ErrCodeLoadFailed}
		if cErr.Pos.IsValid() {
			p.Line = cErr.Pos.Line()
		}
		return p
	}
	return ConfigProblem{Field: "config", Message: err.Error(), Code: ErrCodeLoadFailed}
}

func outputValidateSuccess(formatter *OutputFormatter, counts map[string]int) error {
	if formatter.Format == "json" {
		return formatter.Success(ValidationResult{Valid: true, Counts: counts})
	}

	fmt.Fprintln(formatter.Writer, "✓ Call config valid")
	fmt.Fprintf(formatter.Writer, "  suppressed: %d, sync: %d, async: %d, create: %d\n",
		counts["suppressed"], counts["sync"], counts["async"], counts["create"])
	return nil
}

func outputValidationErrors(formatter *OutputFormatter, errs []ConfigProblem) error {
	if formatter.Format == "json" {
		response := CLIResponse{
			Status: "error",
			Data:   ValidationResult{Valid: false, Errors: errs},
			Error: &CLIError{
				Code:    errs[0].Code,
				Message: errs[0].Message,
			},
		}
		encoder := json.NewEncoder(formatter.Writer)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	for _, e := range errs {
		if e.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", e.Line)
		}
		fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", e.Code, e.Field, e.Message)
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
