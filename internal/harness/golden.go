package harness

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// Snapshot is the deterministic, human-readable outcome of a run.
type Snapshot struct {
	Scenario string       `json:"scenario"`
	Policy   string       `json:"policy"`
	Size     string       `json:"size"`
	Trace    []TraceEvent `json:"trace"`

	// Layers has one string per row; each cell is its layer names joined
	// by "+", "." when empty, with "!" appended when inverted.
	Layers []string `json:"layers"`

	// Render has one string per row of #rrggbb colours.
	Render []string `json:"render"`

	Done   int    `json:"done"`
	Undone int    `json:"undone"`
	Replay string `json:"replay,omitempty"` // "match" or "mismatch"
}

// Snapshot captures the live surface of r.
func (r *Result) Snapshot(name string) Snapshot {
	s := Snapshot{
		Scenario: name,
		Trace:    r.Trace,
		Layers:   []string{},
		Render:   []string{},
		Done:     r.Done,
		Undone:   r.Undone,
	}
	if r.Surface == nil {
		return s
	}
	s.Policy = r.Surface.Policy().String()
	s.Size = fmt.Sprintf("%dx%d", r.Surface.Width(), r.Surface.Height())

	for _, row := range r.Surface.State() {
		cells := make([]string, len(row))
		for x, st := range row {
			names := make([]string, len(st.Layers))
			for i, idx := range st.Layers {
				names[i] = kindName(r.catalog, idx)
			}
			c := strings.Join(names, "+")
			if c == "" {
				c = "."
			}
			if st.Inverted {
				c += "!"
			}
			cells[x] = c
		}
		s.Layers = append(s.Layers, strings.Join(cells, " "))
	}

	for _, row := range r.Surface.Render(r.start, r.tick) {
		cells := make([]string, len(row))
		for x, c := range row {
			cells[x] = c.String()
		}
		s.Render = append(s.Render, strings.Join(cells, " "))
	}

	if r.Replayed != nil {
		s.Replay = "mismatch"
		if r.ReplayMatches() {
			s.Replay = "match"
		}
	}
	return s
}

// MarshalSnapshot renders s as indented JSON with a trailing newline.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

// RunWithGolden executes a scenario and compares its snapshot against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails. A snapshot mismatch fails t.
func RunWithGolden(t *testing.T, scenario *Scenario, opts ...Option) (*Result, error) {
	t.Helper()

	result, err := Run(scenario, opts...)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an existing result against its golden file.
func AssertGolden(t *testing.T, name string, result *Result) error {
	t.Helper()

	data, err := MarshalSnapshot(result.Snapshot(name))
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, name, data)

	return nil
}
