package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/layerpaint/internal/harness"
)

// RunOutput is the JSON payload of the run command.
type RunOutput struct {
	Pass     bool             `json:"pass"`
	Errors   []string         `json:"errors,omitempty"`
	Snapshot harness.Snapshot `json:"snapshot"`
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "run <scenario>",
		Short: "Execute a scenario and print the surface",
		Long: `Execute a painting scenario against a fresh session and print the
resulting surface, the per-step trace, and any failed expectations.

Exit codes:
  0 - All step expectations and assertions held
  1 - One or more expectations failed
  2 - Command error (unreadable scenario, unknown layer, etc.)

Examples:
  layerpaint run ./scenarios/stripes.yaml
  layerpaint run ./scenarios/stripes.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenarioFile(rootOpts, args[0], cmd)
		},
	}
}

func runScenarioFile(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(cmd, opts)

	scenario, result, err := loadAndRun(opts, path, false)
	if err != nil {
		_ = f.Failure(err)
		return err
	}

	snap := result.Snapshot(scenario.Name)
	if opts.Format == "json" {
		resp := CLIResponse{
			Status:  "ok",
			Data:    RunOutput{Pass: result.Pass, Errors: result.Errors, Snapshot: snap},
			Session: sessionToken(scenario),
		}
		if !result.Pass {
			resp.Status = "error"
			resp.Error = &CLIError{Code: "E_ASSERTION", Message: fmt.Sprintf("%d expectation(s) failed", len(result.Errors))}
		}
		if err := f.Response(resp); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s (%s %s)\n", scenario.Name, snap.Policy, snap.Size)
		writeTrace(w, snap.Trace)
		writeSurface(w, snap)
		for _, e := range result.Errors {
			fmt.Fprintf(w, "✗ %s\n", e)
		}
		if result.Pass {
			fmt.Fprintln(w, "✓ all expectations held")
		}
	}

	if !result.Pass {
		return NewExitError(ExitFailure, fmt.Sprintf("%d expectation(s) failed", len(result.Errors)))
	}
	return nil
}

// loadAndRun loads the scenario at path and executes it. forceReplay turns
// on playback regardless of the file.
func loadAndRun(opts *RootOptions, path string, forceReplay bool) (*harness.Scenario, *harness.Result, error) {
	scenario, err := harness.LoadScenario(path)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to load scenario", err)
	}
	if forceReplay {
		scenario.Replay = true
	}

	hopts, err := harnessOptions(opts)
	if err != nil {
		return nil, nil, err
	}

	result, err := harness.Run(scenario, hopts...)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "failed to execute scenario", err)
	}
	return scenario, result, nil
}

func sessionToken(s *harness.Scenario) string {
	if s.Session != "" {
		return s.Session
	}
	return harness.DefaultSession
}

func writeTrace(w io.Writer, trace []harness.TraceEvent) {
	for _, ev := range trace {
		fmt.Fprintf(w, "  [%d] %-10s", ev.Step, ev.Op)
		switch {
		case ev.Error != "":
			fmt.Fprintf(w, " error=%s", ev.Error)
		case ev.ActionID != "":
			fmt.Fprintf(w, " %s (%d edits)", ev.ActionID, ev.Edits)
		case ev.Brush != nil:
			fmt.Fprintf(w, " brush=%d", *ev.Brush)
		default:
			fmt.Fprint(w, " no change")
		}
		fmt.Fprintln(w)
	}
}

func writeSurface(w io.Writer, snap harness.Snapshot) {
	fmt.Fprintln(w, "layers:")
	for _, row := range snap.Layers {
		fmt.Fprintf(w, "  %s\n", row)
	}
	fmt.Fprintln(w, "colours:")
	for _, row := range snap.Render {
		fmt.Fprintf(w, "  %s\n", row)
	}
	fmt.Fprintf(w, "history: %d undoable, %d redoable\n", snap.Done, snap.Undone)
}
