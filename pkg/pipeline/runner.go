package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/umlayout/pkg/cache"
	"github.com/matzehuels/umlayout/pkg/command"
	"github.com/matzehuels/umlayout/pkg/diagram"
	errs "github.com/matzehuels/umlayout/pkg/errors"
	"github.com/matzehuels/umlayout/pkg/geom"
	"github.com/matzehuels/umlayout/pkg/layout"
	"github.com/matzehuels/umlayout/pkg/observability"
	"github.com/matzehuels/umlayout/pkg/render/dot"
)

// Runner encapsulates pipeline execution with caching and undo.
//
// Every layout, computed or served from the cache, is recorded as one group
// on the runner's command stack, so [Runner.Undo] reverts a whole layout.
// A Runner is not safe for concurrent use.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	stack    *command.Stack
	managers map[string]*layout.Manager
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:    c,
		Keyer:    keyer,
		Logger:   logger,
		stack:    command.NewStack(command.DefaultCapacity),
		managers: make(map[string]*layout.Manager),
	}
}

// =============================================================================
// Layout
// =============================================================================

// Layout lays out d in place. Cached positions for the same diagram content
// and options are reused unless opts.NoCache is set.
func (r *Runner) Layout(ctx context.Context, d *diagram.ClassDiagram, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	if d == nil {
		return nil, errs.New(errs.ErrCodeInvalidDiagram, "diagram is required")
	}
	if err := diagram.Validate(d); err != nil {
		return nil, err
	}

	start := time.Now()
	t := opts.Type()
	key := r.Keyer.LayoutKey(DiagramHash(d), opts.LayoutKeyOpts())

	if !opts.NoCache {
		if positions, ok := r.cachedPositions(ctx, key, d.ClassCount()); ok {
			moved, err := r.applyPositions(d, t, positions)
			if err != nil {
				return nil, err
			}
			res := r.result(d, t, moved, true, start)
			opts.Logger.Info("reused cached layout",
				"algorithm", t,
				"classes", d.ClassCount(),
				"moved", moved)
			return res, nil
		}
	}

	moved, err := r.manager(opts).ApplyLayoutWithCommands(ctx, d, t, opts.Width, opts.Height, r.stack)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	if !opts.NoCache {
		r.storePositions(ctx, key, d)
	}

	res := r.result(d, t, moved, false, start)
	opts.Logger.Info("computed layout",
		"algorithm", t,
		"classes", d.ClassCount(),
		"relations", d.RelationCount(),
		"moved", moved,
		"duration", res.Duration)
	return res, nil
}

// manager returns the layout manager for the algorithm settings in opts.
func (r *Runner) manager(opts Options) *layout.Manager {
	key := opts.LayoutKeyOpts().ConfigHash
	m, ok := r.managers[key]
	if !ok {
		m = layout.NewManager(opts.Layout, opts.Logger)
		r.managers[key] = m
	}
	return m
}

func (r *Runner) cachedPositions(ctx context.Context, key string, n int) ([]geom.Vec, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	var positions []geom.Vec
	if err := json.Unmarshal(data, &positions); err != nil || len(positions) != n {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")
	return positions, true
}

func (r *Runner) storePositions(ctx context.Context, key string, d *diagram.ClassDiagram) {
	classes := d.Classes()
	positions := make([]geom.Vec, len(classes))
	for i, c := range classes {
		positions[i] = c.Pos()
	}
	data, err := json.Marshal(positions)
	if err != nil {
		return
	}
	if err := r.Cache.Set(ctx, key, data, cache.TTLLayout); err != nil {
		r.Logger.Warn("cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "layout", len(data))
}

// applyPositions moves classes to cached positions, recorded as one group
// like a computed layout.
func (r *Runner) applyPositions(d *diagram.ClassDiagram, t layout.Type, positions []geom.Vec) (int, error) {
	r.stack.BeginGroup(layout.GroupName(t))
	moved := 0
	var execErr error
	for i, c := range d.Classes() {
		from, to := c.Pos(), positions[i]
		if !layout.Moved(from, to) {
			c.SetPos(to)
			continue
		}
		if execErr = r.stack.Execute(command.NewMove(c, from, to)); execErr != nil {
			break
		}
		moved++
	}
	if err := r.stack.EndGroup(); err != nil && execErr == nil {
		execErr = err
	}
	return moved, execErr
}

func (r *Runner) result(d *diagram.ClassDiagram, t layout.Type, moved int, hit bool, start time.Time) *Result {
	return &Result{
		Algorithm: t,
		Moved:     moved,
		CacheHit:  hit,
		Duration:  time.Since(start),
		Positions: d.Positions(),
	}
}

// =============================================================================
// Render
// =============================================================================

// RenderWithCacheInfo renders d in opts.Format and reports whether the
// artifact came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, d *diagram.ClassDiagram, opts Options) ([]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, fmt.Errorf("invalid options: %w", err)
	}
	if d == nil {
		return nil, false, errs.New(errs.ErrCodeInvalidDiagram, "diagram is required")
	}

	// The DOT source captures everything the drawing depends on.
	src := dot.ToDOT(d, dot.Options{Detailed: opts.Detailed})
	key := r.Keyer.ArtifactKey(cache.Hash([]byte(src)), opts.ArtifactKeyOpts())
	if !opts.NoCache {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "artifact")
			return data, true, nil
		}
		observability.Cache().OnCacheMiss(ctx, "artifact")
	}

	start := time.Now()
	observability.Pipeline().OnRenderStart(ctx, opts.Format)
	data, err := dot.Render(ctx, src, opts.Format)
	observability.Pipeline().OnRenderComplete(ctx, opts.Format, len(data), time.Since(start), err)
	if err != nil {
		return nil, false, fmt.Errorf("render: %w", err)
	}

	opts.Logger.Info("rendered diagram",
		"format", opts.Format,
		"bytes", len(data),
		"duration", time.Since(start))

	if !opts.NoCache {
		if err := r.Cache.Set(ctx, key, data, cache.TTLArtifact); err == nil {
			observability.Cache().OnCacheSet(ctx, "artifact", len(data))
		}
	}
	return data, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, d *diagram.ClassDiagram, opts Options) ([]byte, error) {
	data, _, err := r.RenderWithCacheInfo(ctx, d, opts)
	return data, err
}

// =============================================================================
// History
// =============================================================================

// Undo reverts the most recent layout.
func (r *Runner) Undo() error { return r.stack.Undo() }

// Redo re-applies the most recently undone layout.
func (r *Runner) Redo() error { return r.stack.Redo() }

// History returns the names of the applied layouts, oldest first.
func (r *Runner) History() []string { return r.stack.History() }

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
