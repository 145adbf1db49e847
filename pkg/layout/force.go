package layout

import (
	"math"

	"github.com/matzehuels/umlayout/pkg/diagram"
	"github.com/matzehuels/umlayout/pkg/geom"
)

// Spring strength per relation kind; stronger relations pull their classes
// closer together.
var relationWeights = map[diagram.RelationKind]float64{
	diagram.RelInheritance:    2.5,
	diagram.RelImplementation: 2.0,
	diagram.RelComposition:    1.8,
	diagram.RelAggregation:    1.5,
	diagram.RelAssociation:    1.2,
	diagram.RelDependency:     1.0,
}

// RelationWeight returns the spring strength of a relation kind, 1.0 for
// kinds without a dedicated weight.
func RelationWeight(k diagram.RelationKind) float64 {
	if w, ok := relationWeights[k]; ok {
		return w
	}
	return 1.0
}

// ClassWeight returns the repulsion weight of a class. Larger classes push
// harder: 1 + 0.1 per attribute + 0.15 per method, times 1.2 for abstract
// classes and 1.3 for interfaces.
func ClassWeight(c *diagram.Class) float64 {
	w := 1 + 0.1*float64(c.Attributes) + 0.15*float64(c.Methods)
	switch c.Kind {
	case diagram.KindAbstractClass:
		w *= 1.2
	case diagram.KindInterface:
		w *= 1.3
	}
	return w
}

// ForceDirectedLayout simulates classes as charged particles joined by
// springs.
//
// Each iteration accumulates, per class, pairwise repulsion k²/d scaled by
// sqrt(wᵢ·wⱼ), a pull toward the canvas center proportional to the offset,
// and a spring pull d/k along every relation scaled by [RelationWeight].
// Velocities are damped, clamped to MaxVelocity, integrated, and positions
// clamped to the canvas minus the margin. After the last iteration a single
// pass nudges supertypes toward their subtypes and pushes subtypes below
// their supertypes.
//
// The simulation consumes no randomness: the same diagram and settings
// always give the same positions.
type ForceDirectedLayout struct {
	canvas
	cfg ForceConfig
}

// NewForceDirected returns a force-directed layout. Zero fields of cfg take
// their defaults.
func NewForceDirected(cfg ForceConfig) *ForceDirectedLayout {
	cfg.SetDefaults()
	return &ForceDirectedLayout{canvas: newCanvas(), cfg: cfg}
}

// Type implements Algorithm.
func (f *ForceDirectedLayout) Type() Type { return ForceDirected }

// body is the simulation state of one class.
type body struct {
	class  *diagram.Class
	pos    geom.Vec
	vel    geom.Vec
	force  geom.Vec
	weight float64
}

// spring is a relation resolved to body indexes.
type spring struct {
	src, dst int
	weight   float64
}

// Layout implements Algorithm.
func (f *ForceDirectedLayout) Layout(d *diagram.ClassDiagram) {
	if d.IsEmpty() {
		return
	}
	bodies, index := f.initialize(d)
	springs := make([]spring, 0, d.RelationCount())
	for _, r := range d.Relations() {
		src, okS := index[r.Source]
		dst, okD := index[r.Target]
		if !okS || !okD || src == dst {
			continue
		}
		springs = append(springs, spring{src: src, dst: dst, weight: RelationWeight(r.Kind)})
	}

	bounds := geom.NewBox(0, 0, f.width, f.height).Inset(f.cfg.Margin)
	for range f.cfg.Iterations {
		f.step(bodies, springs, bounds)
	}
	for _, b := range bodies {
		b.class.SetPos(b.pos)
	}
	f.correctHierarchy(d, index, bodies, bounds)
}

// initialize keeps existing positions and spreads unplaced classes evenly on
// a circle of radius min(width, height)/3 around the canvas center.
func (f *ForceDirectedLayout) initialize(d *diagram.ClassDiagram) ([]*body, map[string]int) {
	classes := d.Classes()
	bodies := make([]*body, len(classes))
	index := make(map[string]int, len(classes))

	unplaced := 0
	for _, c := range classes {
		if !c.Placed() {
			unplaced++
		}
	}

	center := f.center()
	radius := math.Min(f.width, f.height) / 3
	k := 0
	for i, c := range classes {
		b := &body{class: c, pos: c.Pos(), weight: ClassWeight(c)}
		if !c.Placed() {
			angle := 2 * math.Pi * float64(k) / float64(unplaced)
			b.pos = geom.Vec{X: center.X + radius*math.Cos(angle), Y: center.Y + radius*math.Sin(angle)}
			k++
		}
		bodies[i] = b
		index[c.ID] = i
	}
	return bodies, index
}

func (f *ForceDirectedLayout) step(bodies []*body, springs []spring, bounds geom.Box) {
	k2 := f.cfg.K * f.cfg.K
	for _, b := range bodies {
		b.force = geom.Vec{}
	}

	for i := range bodies {
		a := bodies[i]
		for j := i + 1; j < len(bodies); j++ {
			b := bodies[j]
			delta := a.pos.Sub(b.pos)
			dist := math.Max(delta.Len(), 1)
			mag := k2 / dist * math.Sqrt(a.weight*b.weight)
			push := delta.Scale(mag / dist)
			a.force = a.force.Add(push)
			b.force = b.force.Sub(push)
		}
	}

	center := f.center()
	for _, b := range bodies {
		b.force = b.force.Sub(b.pos.Sub(center).Scale(f.cfg.Gravity))
	}

	for _, s := range springs {
		a, b := bodies[s.src], bodies[s.dst]
		delta := b.pos.Sub(a.pos)
		dist := math.Max(delta.Len(), 1)
		mag := dist / f.cfg.K * s.weight
		pull := delta.Scale(mag / dist)
		a.force = a.force.Add(pull)
		b.force = b.force.Sub(pull)
	}

	for _, b := range bodies {
		b.vel = b.vel.Add(b.force).Scale(f.cfg.Damping).Clamp(f.cfg.MaxVelocity)
		b.pos = bounds.ClampPoint(b.pos.Add(b.vel))
	}
}

// correctHierarchy runs once over the finished simulation. Parents move 20%
// toward the mean x of their children; each child is pushed at least
// VerticalSpacing below its parent and moved 20% toward the parent's x.
// Results are clamped back into bounds.
func (f *ForceDirectedLayout) correctHierarchy(d *diagram.ClassDiagram, index map[string]int, bodies []*body, bounds geom.Box) {
	children := make(map[int][]int)
	var parents []int
	for _, r := range d.Relations() {
		if !r.Kind.IsHierarchy() {
			continue
		}
		child, okC := index[r.Source]
		parent, okP := index[r.Target]
		if !okC || !okP || child == parent {
			continue
		}
		if _, seen := children[parent]; !seen {
			parents = append(parents, parent)
		}
		children[parent] = append(children[parent], child)
	}

	for _, pi := range parents {
		parent := bodies[pi].class
		kids := children[pi]

		sum := 0.0
		for _, ci := range kids {
			sum += bodies[ci].class.X
		}
		parent.X = 0.8*parent.X + 0.2*(sum/float64(len(kids)))

		for _, ci := range kids {
			child := bodies[ci].class
			if child.Y < parent.Y+f.cfg.VerticalSpacing {
				child.Y = parent.Y + f.cfg.VerticalSpacing
			}
			child.X = 0.8*child.X + 0.2*parent.X
		}
	}

	for _, b := range bodies {
		b.class.SetPos(bounds.ClampPoint(b.class.Pos()))
	}
}
