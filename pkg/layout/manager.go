package layout

import (
	"context"
	"fmt"
	"io"
	"math"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umlayout/pkg/command"
	"github.com/matzehuels/umlayout/pkg/diagram"
	errs "github.com/matzehuels/umlayout/pkg/errors"
	"github.com/matzehuels/umlayout/pkg/geom"
	"github.com/matzehuels/umlayout/pkg/observability"
)

// MoveThreshold is the distance a class must travel along either axis for
// ApplyLayoutWithCommands to record a move.
const MoveThreshold = 1.0

// Manager selects algorithms by type and applies them to diagrams.
//
// It keeps one configured algorithm per type for every diagram id it has
// seen, so repeated layouts of the same diagram reuse their instances.
// A Manager is safe for concurrent use across diagrams; laying out the same
// diagram from two goroutines at once is serialized.
type Manager struct {
	cfg    Config
	logger *log.Logger

	mu     sync.Mutex
	states map[string]*diagramState
}

// diagramState holds the algorithms created for one diagram.
type diagramState struct {
	mu         sync.Mutex
	algorithms map[Type]Algorithm
}

// NewManager returns a manager that builds algorithms from cfg. A nil logger
// discards output.
func NewManager(cfg Config, logger *log.Logger) *Manager {
	cfg.SetDefaults()
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return &Manager{
		cfg:    cfg,
		logger: logger,
		states: make(map[string]*diagramState),
	}
}

// ApplyLayout runs the algorithm of type t on d in place with the given
// canvas size. Non-positive dimensions fall back to DefaultWidth and
// DefaultHeight. A nil or empty diagram is left untouched.
func (m *Manager) ApplyLayout(ctx context.Context, d *diagram.ClassDiagram, t Type, width, height float64) error {
	if d.IsEmpty() {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	state, algo, err := m.algorithm(d.ID, t)
	if err != nil {
		return err
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, t.String(), d.ClassCount())

	state.mu.Lock()
	algo.SetDimensions(width, height)
	algo.Layout(d)
	state.mu.Unlock()

	elapsed := time.Since(start)
	observability.Pipeline().OnLayoutComplete(ctx, t.String(), -1, elapsed)
	m.logger.Debug("applied layout",
		"diagram", d.ID,
		"algorithm", t,
		"classes", d.ClassCount(),
		"duration", elapsed)
	return nil
}

// ApplyLayoutWithCommands runs the algorithm like ApplyLayout, then records
// one command.Move for every class that moved more than MoveThreshold along
// either axis. The moves are executed on exec inside a single group named
// "Auto Layout (<type>)", so the whole re-layout is one undo step. When no
// class moved the group stays empty and exec discards it.
//
// It returns the number of moves recorded. Errors from exec are returned
// unchanged after the group is closed.
func (m *Manager) ApplyLayoutWithCommands(ctx context.Context, d *diagram.ClassDiagram, t Type, width, height float64, exec command.Executor) (int, error) {
	if d.IsEmpty() {
		return 0, nil
	}
	if exec == nil {
		return 0, errs.New(errs.ErrCodeInvalidInput, "command executor is required")
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	state, algo, err := m.algorithm(d.ID, t)
	if err != nil {
		return 0, err
	}

	classes := d.Classes()
	before := make([]geom.Vec, len(classes))
	for i, c := range classes {
		before[i] = c.Pos()
	}

	start := time.Now()
	observability.Pipeline().OnLayoutStart(ctx, t.String(), len(classes))

	state.mu.Lock()
	algo.SetDimensions(width, height)
	algo.Layout(d)
	state.mu.Unlock()

	moves := make([]*command.Move, 0, len(classes))
	for i, c := range classes {
		after := c.Pos()
		if Moved(before[i], after) {
			moves = append(moves, command.NewMove(c, before[i], after))
		}
	}

	exec.BeginGroup(GroupName(t))
	var execErr error
	for _, mv := range moves {
		if execErr = exec.Execute(mv); execErr != nil {
			break
		}
	}
	if err := exec.EndGroup(); err != nil && execErr == nil {
		execErr = err
	}

	elapsed := time.Since(start)
	observability.Pipeline().OnLayoutComplete(ctx, t.String(), len(moves), elapsed)
	if execErr != nil {
		m.logger.Warn("recording layout moves failed", "diagram", d.ID, "algorithm", t, "err", execErr)
		return 0, execErr
	}
	m.logger.Debug("applied layout",
		"diagram", d.ID,
		"algorithm", t,
		"classes", len(classes),
		"moved", len(moves),
		"duration", elapsed)
	return len(moves), nil
}

// GroupName returns the command group name used for a layout of type t.
func GroupName(t Type) string {
	return fmt.Sprintf("Auto Layout (%s)", t)
}

// ClearCachedLayouts drops every per-diagram state.
func (m *Manager) ClearCachedLayouts() {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.states)
}

// Forget drops the state kept for one diagram.
func (m *Manager) Forget(diagramID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.states, diagramID)
}

// CachedLayouts returns the number of diagrams with kept state.
func (m *Manager) CachedLayouts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}

// algorithm returns the state for diagramID and its algorithm of type t,
// creating either on first use.
func (m *Manager) algorithm(diagramID string, t Type) (*diagramState, Algorithm, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	state, ok := m.states[diagramID]
	if !ok {
		state = &diagramState{algorithms: make(map[Type]Algorithm, len(Types))}
	}
	if algo, ok := state.algorithms[t]; ok {
		m.logger.Debug("reusing layout state", "diagram", diagramID, "algorithm", t)
		return state, algo, nil
	}

	algo, err := New(t, m.cfg)
	if err != nil {
		return nil, nil, err
	}
	state.algorithms[t] = algo
	m.states[diagramID] = state
	return state, algo, nil
}

// Moved reports whether a class going from one position to another travels
// more than MoveThreshold along either axis.
func Moved(from, to geom.Vec) bool {
	return math.Abs(to.X-from.X) > MoveThreshold || math.Abs(to.Y-from.Y) > MoveThreshold
}
