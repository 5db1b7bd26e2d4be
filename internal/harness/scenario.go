package harness

import (
	"bytes"
	"fmt"
	"os"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/roach88/layerpaint/internal/cell"
	"github.com/roach88/layerpaint/internal/fault"
	"github.com/roach88/layerpaint/internal/grid"
	"github.com/roach88/layerpaint/internal/layer"
)

// Scenario is a scripted painting session with expectations.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	Description string `yaml:"description"`

	// Policy is SET, ADD or SEQUENCE (case-insensitive).
	Policy string `yaml:"policy"`

	Width  int `yaml:"width"`
	Height int `yaml:"height"`

	// Start is the colour layers are applied to. Defaults to white.
	Start *layer.RGB `yaml:"start,omitempty"`

	// Tick is the animation time used for rendering and colour assertions.
	Tick int64 `yaml:"tick,omitempty"`

	// Brush overrides the initial brush size.
	Brush *int `yaml:"brush,omitempty"`

	// Session fixes the session token. Defaults to "test-session".
	Session string `yaml:"session,omitempty"`

	Steps []Step `yaml:"steps"`

	// Replay plays the recorded log back on a fresh surface after the steps.
	Replay bool `yaml:"replay,omitempty"`

	Assertions []Assertion `yaml:"assertions"`
}

// Step is one gesture.
type Step struct {
	Op     string      `yaml:"op"`
	At     *grid.Point `yaml:"at,omitempty"`
	Layer  string      `yaml:"layer,omitempty"`
	Expect *StepExpect `yaml:"expect,omitempty"`
}

// StepExpect constrains a single step's outcome.
type StepExpect struct {
	// Error is the expected fault code, e.g. INDEX_OUT_OF_BOUNDS.
	Error string `yaml:"error,omitempty"`

	// Noop requires the step to change nothing.
	Noop bool `yaml:"noop,omitempty"`

	// Edits is the expected number of cell edits in the resulting action.
	Edits *int `yaml:"edits,omitempty"`
}

// Assertion checks the final state.
type Assertion struct {
	Type string `yaml:"type"`

	// At addresses the cell (cell_layers, cell_colour).
	At *grid.Point `yaml:"at,omitempty"`

	// Layers lists expected layer names in application order (cell_layers).
	Layers []string `yaml:"layers,omitempty"`

	// Inverted optionally checks the special flag (cell_layers).
	Inverted *bool `yaml:"inverted,omitempty"`

	// Colour is the expected rendered colour (cell_colour).
	Colour *layer.RGB `yaml:"colour,omitempty"`

	// Done and Undone are expected stack sizes (history).
	Done   *int `yaml:"done,omitempty"`
	Undone *int `yaml:"undone,omitempty"`

	// Event or Gesture selects what journal_count counts.
	Event   string `yaml:"event,omitempty"`
	Gesture string `yaml:"gesture,omitempty"`
	Count   int    `yaml:"count,omitempty"`
}

// Step operations.
const (
	OpPaint     = "paint"
	OpErase     = "erase"
	OpSpecial   = "special"
	OpUndo      = "undo"
	OpRedo      = "redo"
	OpBrushUp   = "brush_up"
	OpBrushDown = "brush_down"
)

// Assertion type constants.
const (
	AssertCellLayers    = "cell_layers"
	AssertCellColour    = "cell_colour"
	AssertHistory       = "history"
	AssertJournalCount  = "journal_count"
	AssertReplayMatches = "replay_matches"
)

var faultCodes = []string{
	string(fault.CodeInvalidArgument),
	string(fault.CodeInvalidInput),
	string(fault.CodeIndexOutOfBounds),
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed,
// contains unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	// Strict field validation catches typos like "assertion:" vs "assertions:".
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
// Layer names are resolved at run time against the run's catalog.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}

	if s.Description == "" {
		return fmt.Errorf("description is required")
	}

	if _, err := cell.ParsePolicy(s.Policy); err != nil {
		return err
	}

	if s.Width <= 0 || s.Height <= 0 {
		return fmt.Errorf("width and height must be positive, got %dx%d", s.Width, s.Height)
	}

	if s.Brush != nil && (*s.Brush < grid.MinBrush || *s.Brush > grid.MaxBrush) {
		return fmt.Errorf("brush must be in [%d, %d], got %d", grid.MinBrush, grid.MaxBrush, *s.Brush)
	}

	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	if len(s.Assertions) == 0 {
		return fmt.Errorf("assertions list is required and must be non-empty")
	}

	for i, step := range s.Steps {
		if err := validateStep(i, &step); err != nil {
			return err
		}
	}

	for i, assertion := range s.Assertions {
		if err := validateAssertion(i, &assertion, s.Replay); err != nil {
			return err
		}
	}

	return nil
}

func validateStep(index int, st *Step) error {
	switch st.Op {
	case OpPaint, OpErase:
		if st.At == nil {
			return fmt.Errorf("steps[%d]: at is required for %s", index, st.Op)
		}
		if st.Layer == "" {
			return fmt.Errorf("steps[%d]: layer is required for %s", index, st.Op)
		}
	case OpSpecial, OpUndo, OpRedo, OpBrushUp, OpBrushDown:
		if st.Layer != "" {
			return fmt.Errorf("steps[%d]: layer is not allowed for %s", index, st.Op)
		}
		if st.At != nil && st.Op != OpSpecial {
			return fmt.Errorf("steps[%d]: at is not allowed for %s", index, st.Op)
		}
	case "":
		return fmt.Errorf("steps[%d]: op is required", index)
	default:
		return fmt.Errorf("steps[%d]: unknown op %q", index, st.Op)
	}

	if e := st.Expect; e != nil {
		if e.Error != "" && !slices.Contains(faultCodes, e.Error) {
			return fmt.Errorf("steps[%d].expect: unknown error code %q", index, e.Error)
		}
		if e.Error != "" && (e.Noop || e.Edits != nil) {
			return fmt.Errorf("steps[%d].expect: error cannot be combined with noop or edits", index)
		}
		if e.Noop && e.Edits != nil {
			return fmt.Errorf("steps[%d].expect: noop cannot be combined with edits", index)
		}
	}
	return nil
}

// validateAssertion validates a single assertion based on its type.
func validateAssertion(index int, a *Assertion, replay bool) error {
	switch a.Type {
	case AssertCellLayers:
		if a.At == nil {
			return fmt.Errorf("assertions[%d]: at is required for cell_layers", index)
		}
	case AssertCellColour:
		if a.At == nil {
			return fmt.Errorf("assertions[%d]: at is required for cell_colour", index)
		}
		if a.Colour == nil {
			return fmt.Errorf("assertions[%d]: colour is required for cell_colour", index)
		}
	case AssertHistory:
		if a.Done == nil && a.Undone == nil {
			return fmt.Errorf("assertions[%d]: done or undone is required for history", index)
		}
	case AssertJournalCount:
		if (a.Event == "") == (a.Gesture == "") {
			return fmt.Errorf("assertions[%d]: exactly one of event or gesture is required for journal_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative for journal_count", index)
		}
	case AssertReplayMatches:
		if !replay {
			return fmt.Errorf("assertions[%d]: replay_matches requires replay: true", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
