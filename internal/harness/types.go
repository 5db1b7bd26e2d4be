package harness

import (
	"github.com/roach88/layerpaint/internal/cell"
	"github.com/roach88/layerpaint/internal/grid"
	"github.com/roach88/layerpaint/internal/layer"
)

// TraceEvent records what one step did.
type TraceEvent struct {
	Step     int    `json:"step"`
	Op       string `json:"op"`
	ActionID string `json:"action,omitempty"`
	Edits    int    `json:"edits,omitempty"`
	Brush    *int   `json:"brush,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Result is the outcome of a scenario run.
type Result struct {
	// Pass is true when every step expectation and assertion held.
	Pass bool `json:"pass"`

	Trace []TraceEvent `json:"trace"`

	// Errors contains validation error messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// Surface is the live surface after the last step, before any replay.
	Surface *grid.Surface `json:"-"`

	// Replayed is the surface rebuilt from the replay log, when the
	// scenario asked for a replay.
	Replayed *grid.Surface `json:"-"`

	// Done and Undone are the history stack sizes after the last step.
	Done   int `json:"done"`
	Undone int `json:"undone"`

	catalog *layer.Catalog
	start   layer.RGB
	tick    int64
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends a step outcome.
func (r *Result) AddTrace(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}

// ReplayMatches reports whether the replayed surface equals the live one.
// False when no replay ran.
func (r *Result) ReplayMatches() bool {
	if r.Surface == nil || r.Replayed == nil {
		return false
	}
	return r.Surface.Equal(r.Replayed)
}

// States snapshots the live surface, indexed [y][x].
func (r *Result) States() [][]cell.State {
	if r.Surface == nil {
		return nil
	}
	return r.Surface.State()
}
