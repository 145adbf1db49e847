package layout

import (
	"maps"
	"slices"

	"github.com/matzehuels/umlayout/pkg/diagram"
)

// Node size estimate for layered rows: fixed width, height growing with the
// member count.
const (
	nodeBaseHeight   = 120.0
	nodeMemberHeight = 20.0
	rootFraction     = 0.2
)

// NodeHeight estimates the drawn height of a class box: a fixed header plus
// one line per attribute and method. Boxes are DefaultNodeWidth wide.
func NodeHeight(c *diagram.Class) float64 {
	return nodeBaseHeight + nodeMemberHeight*float64(c.Members())
}

// HierarchicalLayout arranges classes in layers, supertypes above subtypes.
//
// # Algorithm
//
//  1. Wrap each class in a node carrying twelve adjacency sets, one pair per
//     relation kind. For inheritance and implementation the relation target
//     is the parent.
//  2. Pick roots (see [HierarchicalLayout.Roots]).
//  3. Assign levels by recursive descent from each root (see
//     [HierarchicalLayout.Levels]).
//  4. Place each level as a row, best-connected nodes first.
//  5. Center every row horizontally on the canvas.
//  6. Pull nodes toward the mean x of their parents, then of their children,
//     for a fixed number of passes.
type HierarchicalLayout struct {
	canvas
	cfg HierarchicalConfig
}

// NewHierarchical returns a layered layout. Zero fields of cfg take their
// defaults.
func NewHierarchical(cfg HierarchicalConfig) *HierarchicalLayout {
	cfg.SetDefaults()
	return &HierarchicalLayout{canvas: newCanvas(), cfg: cfg}
}

// Type implements Algorithm.
func (h *HierarchicalLayout) Type() Type { return Hierarchical }

// Layout implements Algorithm.
func (h *HierarchicalLayout) Layout(d *diagram.ClassDiagram) {
	if d.IsEmpty() {
		return
	}
	nodes := buildNodes(d)
	roots, _ := findRoots(nodes)
	assignLevels(nodes, roots)
	rows := h.position(nodes)
	h.center(rows)
	h.align(nodes)
}

// Roots returns the IDs of the classes the level assignment starts from,
// and whether the fallback rule produced them.
//
// A class is a root when it has no supertype, no implementing classes, and
// is the part of at least one aggregation or composition. When no class
// qualifies, the top 20% of classes (at least one) ranked by number of
// subclasses plus implementing classes are used instead.
func (h *HierarchicalLayout) Roots(d *diagram.ClassDiagram) (ids []string, fallback bool) {
	if d.IsEmpty() {
		return nil, false
	}
	roots, fallback := findRoots(buildNodes(d))
	for _, n := range roots {
		ids = append(ids, n.class.ID)
	}
	return ids, fallback
}

// Levels returns the level assigned to every class, 0 being the top row.
//
// Descent from a root gives a subclass or implementing class at least its
// parent's level plus one, and a composed, aggregated or associated class
// at least its owner's level. Each class is expanded once, when first
// reached; classes no root reaches start their own descent at level 0.
// A final pass lifts any subtype that still sits at or above one of its
// supertypes.
func (h *HierarchicalLayout) Levels(d *diagram.ClassDiagram) map[string]int {
	out := make(map[string]int, d.ClassCount())
	if d.IsEmpty() {
		return out
	}
	nodes := buildNodes(d)
	roots, _ := findRoots(nodes)
	assignLevels(nodes, roots)
	for _, n := range nodes {
		out[n.class.ID] = n.level
	}
	return out
}

// position lays out each level as a row and returns the rows top to bottom.
func (h *HierarchicalLayout) position(nodes []*hnode) [][]*hnode {
	byLevel := make(map[int][]*hnode)
	for _, n := range nodes {
		byLevel[n.level] = append(byLevel[n.level], n)
	}

	rows := make([][]*hnode, 0, len(byLevel))
	y := h.cfg.Margin
	for _, level := range slices.Sorted(maps.Keys(byLevel)) {
		row := byLevel[level]
		slices.SortStableFunc(row, func(a, b *hnode) int { return b.degree() - a.degree() })

		x := h.cfg.Margin
		tallest := 0.0
		for _, n := range row {
			n.class.X, n.class.Y = x, y
			x += h.cfg.NodeWidth + h.cfg.HorizontalSpacing
			tallest = max(tallest, n.height())
		}
		y += tallest + h.cfg.VerticalSpacing
		rows = append(rows, row)
	}
	return rows
}

// center shifts each row right by half the space left of the canvas width.
func (h *HierarchicalLayout) center(rows [][]*hnode) {
	for _, row := range rows {
		maxX := 0.0
		for _, n := range row {
			maxX = max(maxX, n.class.X+h.cfg.NodeWidth)
		}
		shift := (h.width - maxX) / 2
		if shift <= 0 {
			continue
		}
		for _, n := range row {
			n.class.X += shift
		}
	}
}

// align pulls nodes toward their parents, then toward their children. Nodes
// are updated in place one after another, so later nodes see earlier moves.
func (h *HierarchicalLayout) align(nodes []*hnode) {
	keep := 1 - h.cfg.AlignBlend
	for range h.cfg.AlignIterations {
		for _, n := range nodes {
			if x, ok := meanX(n.parents, n.implemented); ok {
				n.class.X = keep*n.class.X + h.cfg.AlignBlend*x
			}
			if x, ok := meanX(n.children, n.implementing); ok {
				n.class.X = keep*n.class.X + h.cfg.AlignBlend*x
			}
		}
	}
}

// hnode wraps a class with its adjacency per relation kind. The first set of
// each pair holds targets of relations this node is the source of; for
// hierarchy kinds that is reversed, since the target is the parent.
type hnode struct {
	class *diagram.Class
	level int

	parents, children          nodeSet // inheritance
	implemented, implementing  nodeSet // implementation
	compositions, compositedBy nodeSet
	aggregations, aggregatedBy nodeSet
	associations, associatedBy nodeSet
	dependencies, dependedOnBy nodeSet
}

func (n *hnode) height() float64 { return NodeHeight(n.class) }

func (n *hnode) degree() int {
	return n.parents.len() + n.children.len() +
		n.implemented.len() + n.implementing.len() +
		n.compositions.len() + n.compositedBy.len() +
		n.aggregations.len() + n.aggregatedBy.len() +
		n.associations.len() + n.associatedBy.len() +
		n.dependencies.len() + n.dependedOnBy.len()
}

func (n *hnode) hierarchyChildren() []*hnode {
	return append(slices.Clone(n.children.items), n.implementing.items...)
}

func (n *hnode) hierarchyParents() []*hnode {
	return append(slices.Clone(n.parents.items), n.implemented.items...)
}

func buildNodes(d *diagram.ClassDiagram) []*hnode {
	classes := d.Classes()
	nodes := make([]*hnode, len(classes))
	byID := make(map[string]*hnode, len(classes))
	for i, c := range classes {
		nodes[i] = &hnode{class: c}
		byID[c.ID] = nodes[i]
	}

	for _, r := range d.Relations() {
		src, dst := byID[r.Source], byID[r.Target]
		if src == nil || dst == nil {
			continue
		}
		switch r.Kind {
		case diagram.RelInheritance:
			src.parents.add(dst)
			dst.children.add(src)
		case diagram.RelImplementation:
			src.implemented.add(dst)
			dst.implementing.add(src)
		case diagram.RelComposition:
			src.compositions.add(dst)
			dst.compositedBy.add(src)
		case diagram.RelAggregation:
			src.aggregations.add(dst)
			dst.aggregatedBy.add(src)
		case diagram.RelAssociation:
			src.associations.add(dst)
			dst.associatedBy.add(src)
		case diagram.RelDependency:
			src.dependencies.add(dst)
			dst.dependedOnBy.add(src)
		}
	}
	return nodes
}

func findRoots(nodes []*hnode) (roots []*hnode, fallback bool) {
	for _, n := range nodes {
		if n.parents.len() == 0 && n.implementing.len() == 0 &&
			(n.aggregatedBy.len() > 0 || n.compositedBy.len() > 0) {
			roots = append(roots, n)
		}
	}
	if len(roots) > 0 || len(nodes) == 0 {
		return roots, false
	}

	ranked := slices.Clone(nodes)
	slices.SortStableFunc(ranked, func(a, b *hnode) int {
		return (b.children.len() + b.implementing.len()) - (a.children.len() + a.implementing.len())
	})
	n := max(1, int(float64(len(nodes))*rootFraction))
	return ranked[:n], true
}

func assignLevels(nodes, roots []*hnode) {
	visited := make(map[*hnode]bool, len(nodes))

	var visit func(n *hnode, level int)
	visit = func(n *hnode, level int) {
		if visited[n] {
			return
		}
		visited[n] = true
		n.level = max(n.level, level)

		for _, c := range n.hierarchyChildren() {
			visit(c, max(c.level, n.level+1))
		}
		for _, set := range []nodeSet{n.compositions, n.aggregations, n.associations} {
			for _, c := range set.items {
				visit(c, max(c.level, n.level))
			}
		}
	}

	for _, r := range roots {
		visit(r, 0)
	}
	for _, n := range nodes {
		visit(n, 0)
	}

	// A class first reached through a composition or a shorter path can end
	// up level with one of its supertypes. Lift such subtypes; cycles stop
	// after len(nodes) passes.
	for range len(nodes) {
		changed := false
		for _, n := range nodes {
			for _, p := range n.hierarchyParents() {
				if p != n && n.level <= p.level {
					n.level = p.level + 1
					changed = true
				}
			}
		}
		if !changed {
			return
		}
	}
}

func meanX(sets ...nodeSet) (float64, bool) {
	sum, count := 0.0, 0
	for _, s := range sets {
		for _, n := range s.items {
			sum += n.class.X
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}

// nodeSet is an insertion-ordered set, so traversal order follows diagram
// order and layouts are reproducible.
type nodeSet struct {
	items []*hnode
	seen  map[*hnode]struct{}
}

func (s *nodeSet) add(n *hnode) {
	if s.seen == nil {
		s.seen = make(map[*hnode]struct{})
	}
	if _, ok := s.seen[n]; ok {
		return
	}
	s.seen[n] = struct{}{}
	s.items = append(s.items, n)
}

func (s nodeSet) len() int { return len(s.items) }
