package cli

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/layerpaint/internal/harness"
)

// Golden outcomes reported per scenario.
const (
	GoldenNone     = ""         // no golden file
	GoldenMatch    = "match"    // snapshot equals golden file
	GoldenMismatch = "mismatch" // snapshot differs
	GoldenUpdated  = "updated"  // golden file rewritten
)

// ScenarioOutcome is the result of one scenario file.
type ScenarioOutcome struct {
	Name   string   `json:"name"`
	File   string   `json:"file"`
	Pass   bool     `json:"pass"`
	Golden string   `json:"golden,omitempty"`
	Errors []string `json:"errors,omitempty"`
}

// SuiteReport is the JSON payload of the test command.
type SuiteReport struct {
	Scenarios []ScenarioOutcome `json:"scenarios"`
	Passed    int               `json:"passed"`
	Failed    int               `json:"failed"`
}

// Total returns the number of scenarios run.
func (r SuiteReport) Total() int { return r.Passed + r.Failed }

type suite struct {
	dir    string
	filter string
	update bool
	hopts  []harness.Option
}

// NewTestCommand creates the test command.
func NewTestCommand(rootOpts *RootOptions) *cobra.Command {
	s := &suite{}

	cmd := &cobra.Command{
		Use:   "test <scenarios-dir>",
		Short: "Run every scenario in a directory",
		Long: `Run each *.yaml or *.yml scenario in a directory and check its step
expectations and assertions. A scenario with a golden file at
<scenarios-dir>/golden/<name>.golden must also reproduce it exactly.

Exit codes:
  0 - Every scenario passed
  1 - At least one scenario failed
  2 - Command error (missing directory, bad filter, etc.)

Examples:
  layerpaint test ./scenarios
  layerpaint test ./scenarios --filter "set_*"
  layerpaint test ./scenarios --update
  layerpaint test ./scenarios --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			s.dir = args[0]
			return s.run(rootOpts, cmd)
		},
	}

	cmd.Flags().BoolVar(&s.update, "update", false, "rewrite golden files from this run")
	cmd.Flags().StringVar(&s.filter, "filter", "", "only run scenarios whose file name matches this glob")

	return cmd
}

func (s *suite) run(opts *RootOptions, cmd *cobra.Command) error {
	if info, err := os.Stat(s.dir); err != nil || !info.IsDir() {
		return NewExitError(ExitCommandError, fmt.Sprintf("scenarios directory not found: %s", s.dir))
	}

	files, err := s.files()
	if err != nil {
		return WrapExitError(ExitCommandError, "cannot list scenarios", err)
	}

	s.hopts, err = harnessOptions(opts)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	report := SuiteReport{Scenarios: make([]ScenarioOutcome, 0, len(files))}
	for _, file := range files {
		outcome := s.runOne(file)
		report.Scenarios = append(report.Scenarios, outcome)
		if outcome.Pass {
			report.Passed++
		} else {
			report.Failed++
		}
		if opts.Format != "json" {
			writeOutcome(w, outcome)
		}
	}

	var failure error
	if report.Failed > 0 {
		failure = NewExitError(ExitFailure, fmt.Sprintf("%d of %d scenarios failed", report.Failed, report.Total()))
	}

	if opts.Format == "json" {
		resp := CLIResponse{Status: "ok", Data: report}
		if failure != nil {
			resp.Status = "error"
			resp.Error = &CLIError{Code: "E_TEST_FAILED", Message: failure.Error()}
		}
		if err := newFormatter(cmd, opts).Response(resp); err != nil {
			return err
		}
		return failure
	}

	switch {
	case report.Total() == 0:
		fmt.Fprintln(w, "No scenarios found.")
	case failure == nil:
		fmt.Fprintf(w, "\n%d/%d scenarios passed\n", report.Passed, report.Total())
	default:
		fmt.Fprintf(w, "\n%d/%d scenarios passed, %d failed\n", report.Passed, report.Total(), report.Failed)
	}
	return failure
}

// files lists the scenario files whose base name, without extension,
// matches the filter.
func (s *suite) files() ([]string, error) {
	all, err := harness.FindScenarios(s.dir)
	if err != nil || s.filter == "" {
		return all, err
	}
	kept := all[:0]
	for _, path := range all {
		ok, err := filepath.Match(s.filter, scenarioStem(path))
		if err != nil {
			return nil, fmt.Errorf("filter %q: %w", s.filter, err)
		}
		if ok {
			kept = append(kept, path)
		}
	}
	return kept, nil
}

func (s *suite) runOne(file string) ScenarioOutcome {
	out := ScenarioOutcome{Name: scenarioStem(file), File: file}

	scenario, err := harness.LoadScenario(file)
	if err != nil {
		out.Errors = []string{fmt.Sprintf("failed to load scenario: %v", err)}
		return out
	}
	out.Name = scenario.Name

	result, err := harness.Run(scenario, s.hopts...)
	if err != nil {
		out.Errors = []string{fmt.Sprintf("execution failed: %v", err)}
		return out
	}
	out.Errors = append(out.Errors, result.Errors...)

	snapshot, err := harness.MarshalSnapshot(result.Snapshot(scenario.Name))
	if err != nil {
		out.Errors = append(out.Errors, fmt.Sprintf("snapshot: %v", err))
		return out
	}
	if out.Golden, err = s.golden(file, snapshot); err != nil {
		out.Errors = append(out.Errors, err.Error())
	}

	out.Pass = len(out.Errors) == 0
	return out
}

// golden compares snapshot against the scenario's golden file, or rewrites
// it when updating.
func (s *suite) golden(file string, snapshot []byte) (string, error) {
	path := goldenFilePath(file)
	if s.update {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return GoldenNone, fmt.Errorf("create golden directory: %w", err)
		}
		if err := os.WriteFile(path, snapshot, 0644); err != nil {
			return GoldenNone, fmt.Errorf("write golden file: %w", err)
		}
		return GoldenUpdated, nil
	}

	want, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return GoldenNone, nil
	case err != nil:
		return GoldenNone, fmt.Errorf("read golden file: %w", err)
	case !bytes.Equal(want, snapshot):
		return GoldenMismatch, fmt.Errorf("snapshot does not match %s (rerun with --update)", path)
	}
	return GoldenMatch, nil
}

// goldenFilePath maps dir/name.yaml to dir/golden/name.golden.
func goldenFilePath(scenarioFile string) string {
	return filepath.Join(filepath.Dir(scenarioFile), "golden", scenarioStem(scenarioFile)+".golden")
}

func scenarioStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func writeOutcome(w io.Writer, o ScenarioOutcome) {
	fmt.Fprintf(w, "%s %s", mark(o.Pass), o.Name)
	if o.Golden != GoldenNone {
		fmt.Fprintf(w, " [golden %s]", o.Golden)
	}
	fmt.Fprintln(w)
	for _, e := range o.Errors {
		fmt.Fprintf(w, "    %s\n", e)
	}
}
