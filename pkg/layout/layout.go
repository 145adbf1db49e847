package layout

import (
	"math"
	"strings"

	"github.com/matzehuels/umlayout/pkg/diagram"
	errs "github.com/matzehuels/umlayout/pkg/errors"
	"github.com/matzehuels/umlayout/pkg/geom"
)

// Default canvas size used when the caller cannot supply one.
const (
	DefaultWidth  = 1000.0
	DefaultHeight = 800.0
)

// Type selects a layout algorithm.
type Type int

const (
	// ForceDirected runs the physics simulation.
	ForceDirected Type = iota
	// Hierarchical produces layered rows following inheritance.
	Hierarchical
	// Grid packs classes row by row.
	Grid
)

// Types lists every algorithm type in display order.
var Types = []Type{ForceDirected, Hierarchical, Grid}

var typeNames = [...]string{
	ForceDirected: "force",
	Hierarchical:  "hierarchical",
	Grid:          "grid",
}

var typeDescriptions = [...]string{
	ForceDirected: "organic layout from a spring/repulsion simulation",
	Hierarchical:  "layered rows with supertypes above subtypes",
	Grid:          "rows and columns in diagram order",
}

// String returns the short name used on the command line and in config files.
func (t Type) String() string {
	if !t.valid() {
		return "unknown"
	}
	return typeNames[t]
}

// Description returns a one-line summary of the algorithm.
func (t Type) Description() string {
	if !t.valid() {
		return ""
	}
	return typeDescriptions[t]
}

func (t Type) valid() bool { return t >= 0 && int(t) < len(typeNames) }

// ParseType parses an algorithm name case-insensitively. Besides the short
// names it accepts the enum spellings FORCE_DIRECTED, HIERARCHICAL and GRID.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.NewReplacer("-", "_", " ", "_").Replace(strings.TrimSpace(s))) {
	case "force", "force_directed", "forcedirected", "organic":
		return ForceDirected, nil
	case "hierarchical", "hierarchy", "layered":
		return Hierarchical, nil
	case "grid":
		return Grid, nil
	}
	return ForceDirected, errs.New(errs.ErrCodeInvalidLayoutType,
		"unknown layout algorithm %q (must be one of: force, hierarchical, grid)", s)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(b []byte) error {
	v, err := ParseType(string(b))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// Algorithm lays out a diagram by writing class positions in place.
//
// Implementations are synchronous, allocate only transient state and never
// fail; an empty or nil diagram is a no-op.
type Algorithm interface {
	// SetDimensions sets the target canvas size.
	SetDimensions(width, height float64)
	// Layout moves every class of d.
	Layout(d *diagram.ClassDiagram)
	// Type identifies the algorithm.
	Type() Type
}

// New returns a freshly configured algorithm of the given type.
func New(t Type, cfg Config) (Algorithm, error) {
	cfg.SetDefaults()
	switch t {
	case ForceDirected:
		return NewForceDirected(cfg.Force), nil
	case Hierarchical:
		return NewHierarchical(cfg.Hierarchical), nil
	case Grid:
		return NewGrid(cfg.Grid), nil
	}
	return nil, errs.New(errs.ErrCodeInvalidLayoutType, "unknown layout algorithm %d", int(t))
}

// canvas holds the dimensions shared by all algorithms.
type canvas struct {
	width, height float64
}

func newCanvas() canvas { return canvas{width: DefaultWidth, height: DefaultHeight} }

// SetDimensions implements Algorithm. Non-positive or non-finite values fall
// back to the defaults.
func (c *canvas) SetDimensions(width, height float64) {
	c.width = orDefault(width, DefaultWidth)
	c.height = orDefault(height, DefaultHeight)
}

// Dimensions returns the current canvas size.
func (c *canvas) Dimensions() (width, height float64) { return c.width, c.height }

func (c *canvas) center() geom.Vec { return geom.Vec{X: c.width / 2, Y: c.height / 2} }

func orDefault(v, def float64) float64 {
	if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
