// Package pipeline runs the load → layout → render flow shared by the CLI
// and by programs embedding the layout engine.
//
// # Architecture
//
// The pipeline consists of two stages that both go through a [cache.Cache]:
//
//  1. Layout: run a layout algorithm through a [layout.Manager], recording
//     the moves on an undo stack
//  2. Render: export the laid-out diagram as DOT, SVG or PNG
//
// # Usage
//
//	runner := pipeline.NewRunner(fileCache, nil, logger)
//	defer runner.Close()
//
//	opts, err := pipeline.LoadOptions("umlayout.toml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	opts.Algorithm = "hierarchical"
//
//	res, err := runner.Layout(ctx, d, opts)
//	svg, err := runner.Render(ctx, d, opts)
//
//	runner.Undo() // restores the positions from before Layout
//
// # Configuration
//
// [Options] can be loaded from a TOML file. Zero values mean "use the
// default", so a file only needs the settings it changes:
//
//	algorithm = "force"
//	width = 1600
//	height = 1200
//
//	[layout.force]
//	iterations = 300
//	gravity = 0.05
package pipeline

import (
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/umlayout/pkg/cache"
	errs "github.com/matzehuels/umlayout/pkg/errors"
	"github.com/matzehuels/umlayout/pkg/geom"
	"github.com/matzehuels/umlayout/pkg/layout"
	"github.com/matzehuels/umlayout/pkg/render/dot"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultAlgorithm is the layout algorithm used when none is given.
	DefaultAlgorithm = "force"

	// DefaultWidth is the default canvas width.
	DefaultWidth = layout.DefaultWidth

	// DefaultHeight is the default canvas height.
	DefaultHeight = layout.DefaultHeight

	// DefaultFormat is the default render format.
	DefaultFormat = dot.FormatSVG
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
type Options struct {
	// Layout options
	Algorithm string        `toml:"algorithm" json:"algorithm,omitempty"`
	Width     float64       `toml:"width" json:"width,omitempty"`
	Height    float64       `toml:"height" json:"height,omitempty"`
	Layout    layout.Config `toml:"layout" json:"layout"`

	// Render options
	Format   string `toml:"format" json:"format,omitempty"`
	Detailed bool   `toml:"detailed" json:"detailed,omitempty"`

	// Runtime options (not serialized)
	NoCache bool        `toml:"-" json:"-"`
	Logger  *log.Logger `toml:"-" json:"-"`
}

// Result describes one layout run.
type Result struct {
	// Algorithm is the algorithm that produced the positions.
	Algorithm layout.Type

	// Moved is the number of classes that moved by more than
	// layout.MoveThreshold.
	Moved int

	// CacheHit is true when positions came from the cache.
	CacheHit bool

	// Duration is the wall time of the run.
	Duration time.Duration

	// Positions holds the final position of every class, by class ID.
	Positions map[string]geom.Vec
}

// LoadOptions reads options from a TOML file. Unknown keys are rejected so
// typos do not silently fall back to defaults.
func LoadOptions(path string) (Options, error) {
	var opts Options
	md, err := toml.DecodeFile(path, &opts)
	if errors.Is(err, fs.ErrNotExist) {
		return opts, errs.Wrap(errs.ErrCodeFileNotFound, err, "config file %s not found", path)
	}
	if err != nil {
		return opts, errs.Wrap(errs.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return opts, errs.New(errs.ErrCodeInvalidConfig, "config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return opts, nil
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a render format is supported.
func ValidateFormat(format string) error {
	if !slices.Contains(dot.Formats, format) {
		return errs.New(errs.ErrCodeInvalidFormat,
			"invalid format: %q (must be one of: %s)", format, strings.Join(dot.Formats, ", "))
	}
	return nil
}

// ValidateAlgorithm checks that an algorithm name is known.
func ValidateAlgorithm(name string) error {
	_, err := layout.ParseType(name)
	return err
}

// =============================================================================
// Options Methods
// =============================================================================

// SetDefaults fills zero fields with defaults.
func (o *Options) SetDefaults() {
	if o.Algorithm == "" {
		o.Algorithm = DefaultAlgorithm
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Format == "" {
		o.Format = DefaultFormat
	}
	o.Layout.SetDefaults()
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateAndSetDefaults applies defaults and checks every field.
func (o *Options) ValidateAndSetDefaults() error {
	o.SetDefaults()
	if err := ValidateAlgorithm(o.Algorithm); err != nil {
		return err
	}
	if err := errs.ValidateDimensions(o.Width, o.Height); err != nil {
		return err
	}
	return ValidateFormat(o.Format)
}

// Type returns the parsed algorithm; call ValidateAndSetDefaults first.
func (o *Options) Type() layout.Type {
	t, _ := layout.ParseType(o.Algorithm)
	return t
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	cfg, _ := json.Marshal(o.Layout)
	return cache.LayoutKeyOpts{
		Algorithm:  o.Type().String(),
		Width:      o.Width,
		Height:     o.Height,
		ConfigHash: cache.Hash(cfg),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts() cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   o.Format,
		Detailed: o.Detailed,
	}
}
