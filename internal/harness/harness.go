package harness

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/layerpaint/internal/action"
	"github.com/roach88/layerpaint/internal/cell"
	"github.com/roach88/layerpaint/internal/fault"
	"github.com/roach88/layerpaint/internal/grid"
	"github.com/roach88/layerpaint/internal/history"
	"github.com/roach88/layerpaint/internal/layer"
	"github.com/roach88/layerpaint/internal/replay"
	"github.com/roach88/layerpaint/internal/session"
	"github.com/roach88/layerpaint/internal/store"
	"github.com/roach88/layerpaint/internal/testutil"
)

// DefaultSession is the session token used when a scenario sets none.
const DefaultSession = "test-session"

// Harness executes one scenario against a fresh session.
type Harness struct {
	session *session.Session
	journal *store.Store
	catalog *layer.Catalog
	start   layer.RGB
	tick    int64
}

type runConfig struct {
	catalog    *layer.Catalog
	logger     *slog.Logger
	historyCap int
	replayCap  int
}

// Option configures Run.
type Option func(*runConfig)

// WithCatalog runs against cat instead of layer.Default().
func WithCatalog(cat *layer.Catalog) Option {
	return func(c *runConfig) { c.catalog = cat }
}

// WithLogger routes session logs to l. Runs are silent by default.
func WithLogger(l *slog.Logger) Option {
	return func(c *runConfig) { c.logger = l }
}

// WithCapacities bounds the history stacks and the replay log.
func WithCapacities(historyCap, replayCap int) Option {
	return func(c *runConfig) {
		c.historyCap = historyCap
		c.replayCap = replayCap
	}
}

// Run executes a scenario and returns the result.
//
// Each run uses a fresh in-memory journal, sequential action IDs and a
// logical clock starting at 1. A returned error means the scenario could
// not be executed at all (unknown layer, journal failure); failed
// expectations are reported in Result.Errors instead.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	cfg := runConfig{
		catalog:    layer.Default(),
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		historyCap: history.DefaultCapacity,
		replayCap:  replay.DefaultCapacity,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	policy, err := cell.ParsePolicy(scenario.Policy)
	if err != nil {
		return nil, err
	}
	surface, err := grid.New(policy, scenario.Width, scenario.Height, cfg.catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to create surface: %w", err)
	}
	if scenario.Brush != nil {
		setBrush(surface, *scenario.Brush)
	}

	journal, err := store.OpenMemory()
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer journal.Close()

	token := scenario.Session
	if token == "" {
		token = DefaultSession
	}

	h := &Harness{
		session: session.New(surface,
			session.WithJournal(journal),
			session.WithLogger(cfg.logger),
			session.WithIDGenerator(testutil.NewSequentialIDs("")),
			session.WithSequencer(testutil.NewStepClock()),
			session.WithToken(token),
			session.WithHistoryCapacity(cfg.historyCap),
			session.WithReplayCapacity(cfg.replayCap),
		),
		journal: journal,
		catalog: cfg.catalog,
		start:   layer.White,
		tick:    scenario.Tick,
	}
	if scenario.Start != nil {
		h.start = *scenario.Start
	}

	ctx := context.Background()
	result := NewResult()
	result.catalog = h.catalog
	result.start = h.start
	result.tick = h.tick

	if err := h.executeSteps(ctx, scenario.Steps, result); err != nil {
		return nil, fmt.Errorf("failed to execute steps: %w", err)
	}

	result.Surface = h.session.Surface()
	result.Done = h.session.History().Done()
	result.Undone = h.session.History().Undone()

	if scenario.Replay {
		if err := h.session.ReplayAll(ctx); err != nil {
			result.AddError(fmt.Sprintf("replay failed: %v", err))
		}
		result.Replayed = h.session.Surface()
	}

	for _, msg := range h.evaluate(ctx, scenario.Assertions, result) {
		result.AddError(msg)
	}

	return result, nil
}

// executeSteps runs every step in order. Step failures that the scenario
// did not expect are recorded as result errors and execution continues.
func (h *Harness) executeSteps(ctx context.Context, steps []Step, result *Result) error {
	for i, step := range steps {
		ev := TraceEvent{Step: i, Op: step.Op}
		a, noop, err := h.execute(ctx, step)
		if err != nil {
			var fe *fault.Error
			if !errors.As(err, &fe) {
				return fmt.Errorf("step %d (%s): %w", i, step.Op, err)
			}
			ev.Error = string(fe.Code)
		}
		if a != nil {
			ev.ActionID = a.ID()
			ev.Edits = len(a.Edits())
		}
		if step.Op == OpBrushUp || step.Op == OpBrushDown {
			brush := h.session.Surface().Brush()
			ev.Brush = &brush
		}
		result.AddTrace(ev)

		if msg := checkExpect(i, step, ev, noop); msg != "" {
			result.AddError(msg)
		}
	}
	return nil
}

// execute performs one step. noop is true when the gesture was valid but
// changed nothing.
func (h *Harness) execute(ctx context.Context, step Step) (a *action.Action, noop bool, err error) {
	switch step.Op {
	case OpPaint, OpErase:
		k, ok := h.catalog.ByName(step.Layer)
		if !ok {
			return nil, false, fmt.Errorf("unknown layer %q", step.Layer)
		}
		if step.Op == OpPaint {
			a, err = h.session.Paint(ctx, step.At.X, step.At.Y, k)
		} else {
			a, err = h.session.Erase(ctx, step.At.X, step.At.Y, k)
		}
	case OpSpecial:
		if step.At != nil {
			a, err = h.session.SpecialAt(ctx, step.At.X, step.At.Y)
		} else {
			a, err = h.session.Special(ctx)
		}
	case OpUndo:
		a, err = h.session.Undo(ctx)
	case OpRedo:
		a, err = h.session.Redo(ctx)
	case OpBrushUp:
		before := h.session.Surface().Brush()
		return nil, h.session.IncreaseBrush() == before, nil
	case OpBrushDown:
		before := h.session.Surface().Brush()
		return nil, h.session.DecreaseBrush() == before, nil
	default:
		return nil, false, fmt.Errorf("unknown op %q", step.Op)
	}
	return a, err == nil && a == nil, err
}

func checkExpect(index int, step Step, ev TraceEvent, noop bool) string {
	e := step.Expect
	if e == nil {
		if ev.Error != "" {
			return fmt.Sprintf("steps[%d] (%s): unexpected error %s", index, step.Op, ev.Error)
		}
		return ""
	}
	switch {
	case e.Error != "":
		if ev.Error != e.Error {
			return fmt.Sprintf("steps[%d] (%s): expected error %s, got %q", index, step.Op, e.Error, ev.Error)
		}
	case ev.Error != "":
		return fmt.Sprintf("steps[%d] (%s): unexpected error %s", index, step.Op, ev.Error)
	case e.Noop:
		if !noop {
			return fmt.Sprintf("steps[%d] (%s): expected no change", index, step.Op)
		}
	case e.Edits != nil:
		if ev.Edits != *e.Edits {
			return fmt.Sprintf("steps[%d] (%s): expected %d edits, got %d", index, step.Op, *e.Edits, ev.Edits)
		}
	}
	return ""
}

func setBrush(s *grid.Surface, size int) {
	for s.Brush() < size {
		s.IncreaseBrush()
	}
	for s.Brush() > size {
		s.DecreaseBrush()
	}
}
