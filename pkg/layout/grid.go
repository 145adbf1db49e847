package layout

import (
	"math"

	"github.com/matzehuels/umlayout/pkg/diagram"
)

// GridLayout places classes left to right, top to bottom in fixed-size
// cells, in diagram insertion order. It is fully deterministic.
type GridLayout struct {
	canvas
	cfg GridConfig
}

// NewGrid returns a grid layout. Zero fields of cfg take their defaults.
func NewGrid(cfg GridConfig) *GridLayout {
	cfg.SetDefaults()
	return &GridLayout{canvas: newCanvas(), cfg: cfg}
}

// Type implements Algorithm.
func (g *GridLayout) Type() Type { return Grid }

// Columns returns the column count for the current canvas width:
// max(1, floor((width - 2*margin) / cellWidth)).
func (g *GridLayout) Columns() int {
	cols := int(math.Floor((g.width - 2*g.cfg.Margin) / g.cfg.CellWidth))
	return max(1, cols)
}

// Layout implements Algorithm.
func (g *GridLayout) Layout(d *diagram.ClassDiagram) {
	cols := g.Columns()
	for i, c := range d.Classes() {
		col, row := i%cols, i/cols
		c.X = g.cfg.Margin + float64(col)*g.cfg.CellWidth
		c.Y = g.cfg.Margin + float64(row)*g.cfg.CellHeight
	}
}
