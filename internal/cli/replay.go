package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/layerpaint/internal/harness"
)

// ReplayOutput is the JSON payload of the replay command.
type ReplayOutput struct {
	Scenario string `json:"scenario"`
	Steps    int    `json:"steps"`

	// Reproduced is true when playing the log back on a fresh surface
	// rebuilt the live surface.
	Reproduced bool `json:"reproduced"`

	// Deterministic is true when two independent runs produced identical
	// snapshots.
	Deterministic bool `json:"deterministic"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "replay <scenario>",
		Short: "Replay a scenario and verify determinism",
		Long: `Execute a scenario, play its replay log back on a fresh surface, and
verify that playback rebuilds the live surface. The scenario is run twice
to check that traces and surfaces are identical across runs.

Step expectations and assertions are not checked; use "run" for that.

Exit codes:
  0 - Replay reproduced the surface and both runs matched
  1 - Determinism verification failed
  2 - Command error (unreadable scenario, etc.)

Examples:
  layerpaint replay ./scenarios/stripes.yaml
  layerpaint replay ./scenarios/stripes.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(rootOpts, args[0], cmd)
		},
	}
}

func runReplay(opts *RootOptions, path string, cmd *cobra.Command) error {
	f := newFormatter(cmd, opts)

	scenario, first, err := loadAndRun(opts, path, true)
	if err != nil {
		_ = f.Failure(err)
		return err
	}
	_, second, err := loadAndRun(opts, path, true)
	if err != nil {
		_ = f.Failure(err)
		return err
	}

	out := ReplayOutput{
		Scenario:   scenario.Name,
		Steps:      len(first.Trace),
		Reproduced: first.ReplayMatches(),
	}
	out.Deterministic, err = sameSnapshot(scenario.Name, first, second)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to compare runs", err)
	}
	f.VerboseLog("replayed %d steps of %s", out.Steps, scenario.Name)

	ok := out.Reproduced && out.Deterministic
	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: out, Session: sessionToken(scenario)}
		if !ok {
			resp.Status = "error"
			resp.Error = &CLIError{Code: "E_NONDETERMINISTIC", Message: "replay did not reproduce the session"}
		}
		if err := f.Response(resp); err != nil {
			return err
		}
	} else {
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s: %d steps\n", scenario.Name, out.Steps)
		fmt.Fprintf(w, "  %s replay reproduces live surface\n", mark(out.Reproduced))
		fmt.Fprintf(w, "  %s runs are identical\n", mark(out.Deterministic))
	}

	if !ok {
		return NewExitError(ExitFailure, "replay did not reproduce the session")
	}
	return nil
}

func sameSnapshot(name string, a, b *harness.Result) (bool, error) {
	da, err := harness.MarshalSnapshot(a.Snapshot(name))
	if err != nil {
		return false, err
	}
	db, err := harness.MarshalSnapshot(b.Snapshot(name))
	if err != nil {
		return false, err
	}
	return bytes.Equal(da, db), nil
}

func mark(ok bool) string {
	if ok {
		return "✓"
	}
	return "✗"
}
