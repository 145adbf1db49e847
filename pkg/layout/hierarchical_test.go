package layout

import (
	"math"
	"slices"
	"testing"

	"github.com/matzehuels/umlayout/pkg/diagram"
)

func TestHierarchicalRoots(t *testing.T) {
	tests := []struct {
		name         string
		classes      []string
		rels         [][3]string
		want         []string
		wantFallback bool
	}{
		{
			name:    "composed part is root",
			classes: []string{"Order", "Line"},
			rels:    [][3]string{{"Order", "composition", "Line"}},
			want:    []string{"Line"},
		},
		{
			name:    "aggregated part is root",
			classes: []string{"Team", "Player"},
			rels:    [][3]string{{"Team", "aggregation", "Player"}},
			want:    []string{"Player"},
		},
		{
			name:    "part with supertype is not root",
			classes: []string{"Order", "Line", "Entity"},
			rels: [][3]string{
				{"Order", "composition", "Line"},
				{"Line", "inheritance", "Entity"},
			},
			want:         []string{"Entity"},
			wantFallback: true,
		},
		{
			name:    "fallback picks most specialized",
			classes: []string{"A", "B", "C", "D", "E", "F", "G", "H", "I", "J"},
			rels: [][3]string{
				{"B", "inheritance", "A"},
				{"C", "inheritance", "E"},
				{"D", "inheritance", "E"},
				{"F", "implementation", "E"},
				{"G", "inheritance", "H"},
				{"I", "inheritance", "H"},
			},
			want:         []string{"E", "H"},
			wantFallback: true,
		},
		{
			name:         "no relations",
			classes:      []string{"A", "B"},
			want:         []string{"A"},
			wantFallback: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := build(t, classes(tt.classes...), tt.rels)
			got, fallback := NewHierarchical(HierarchicalConfig{}).Roots(d)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Roots() = %v, want %v", got, tt.want)
			}
			if fallback != tt.wantFallback {
				t.Errorf("fallback = %v, want %v", fallback, tt.wantFallback)
			}
		})
	}
}

func TestHierarchicalLevels(t *testing.T) {
	d := build(t, classes("Animal", "Dog", "Cat", "Puppy", "Loner"), [][3]string{
		{"Dog", "inheritance", "Animal"},
		{"Cat", "inheritance", "Animal"},
		{"Puppy", "inheritance", "Dog"},
	})
	got := NewHierarchical(HierarchicalConfig{}).Levels(d)
	want := map[string]int{"Animal": 0, "Dog": 1, "Cat": 1, "Puppy": 2, "Loner": 0}
	for id, w := range want {
		if got[id] != w {
			t.Errorf("level(%s) = %d, want %d", id, got[id], w)
		}
	}
}

func TestHierarchicalSubtypeBelowSupertype(t *testing.T) {
	// Leaf is first reached through a composition at level 0, level with
	// its supertype Other.
	d := build(t, classes("Whole", "Part", "Leaf", "Other"), [][3]string{
		{"Whole", "composition", "Part"},
		{"Part", "composition", "Leaf"},
		{"Leaf", "inheritance", "Other"},
	})
	h := NewHierarchical(HierarchicalConfig{})
	levels := h.Levels(d)
	if levels["Leaf"] <= levels["Other"] {
		t.Errorf("level(Leaf) = %d, level(Other) = %d, want subtype below", levels["Leaf"], levels["Other"])
	}

	h.Layout(d)
	for _, r := range d.Relations() {
		if !r.Kind.IsHierarchy() {
			continue
		}
		_, cy := pos(t, d, r.Source)
		_, py := pos(t, d, r.Target)
		if cy <= py {
			t.Errorf("%s (y=%v) not below %s (y=%v)", r.Source, cy, r.Target, py)
		}
	}
}

func TestHierarchicalLevelsMonotonic(t *testing.T) {
	d := build(t, []diagram.Class{
		{ID: "Shape", Kind: diagram.KindInterface},
		{ID: "Base", Kind: diagram.KindAbstractClass},
		{ID: "Circle"}, {ID: "Square"}, {ID: "Rounded"},
		{ID: "Canvas"}, {ID: "Layer"},
	}, [][3]string{
		{"Base", "implementation", "Shape"},
		{"Circle", "inheritance", "Base"},
		{"Square", "inheritance", "Base"},
		{"Rounded", "inheritance", "Square"},
		{"Rounded", "implementation", "Shape"},
		{"Canvas", "composition", "Layer"},
		{"Layer", "aggregation", "Circle"},
		{"Canvas", "dependency", "Rounded"},
	})
	levels := NewHierarchical(HierarchicalConfig{}).Levels(d)
	for _, r := range d.Relations() {
		if r.Kind.IsHierarchy() && levels[r.Source] <= levels[r.Target] {
			t.Errorf("%s -%s-> %s: level %d not below %d",
				r.Source, r.Kind, r.Target, levels[r.Source], levels[r.Target])
		}
	}
}

func TestHierarchicalLayout(t *testing.T) {
	d := build(t, classes("Animal", "Dog", "Cat"), [][3]string{
		{"Dog", "inheritance", "Animal"},
		{"Cat", "inheritance", "Animal"},
	})
	h := NewHierarchical(HierarchicalConfig{})
	h.SetDimensions(1000, 800)
	h.Layout(d)

	ax, ay := pos(t, d, "Animal")
	dx, dy := pos(t, d, "Dog")
	cx, cy := pos(t, d, "Cat")

	if ay != 50 {
		t.Errorf("Animal.Y = %v, want 50", ay)
	}
	// Second row starts below the first row's node (120) plus spacing (150).
	if dy != 320 || cy != 320 {
		t.Errorf("Dog.Y = %v, Cat.Y = %v, want 320", dy, cy)
	}
	if math.Abs(ax-425) > 1e-9 {
		t.Errorf("Animal.X = %v, want 425 (centered)", ax)
	}
	if dx >= cx {
		t.Errorf("Dog.X = %v should be left of Cat.X = %v", dx, cx)
	}
	// Alignment pulls both children toward their parent symmetrically.
	if math.Abs((dx+cx)/2-ax) > 1e-9 {
		t.Errorf("children mean x = %v, want %v", (dx+cx)/2, ax)
	}
	if dx <= 225 || cx >= 625 {
		t.Errorf("children not pulled toward parent: Dog.X = %v, Cat.X = %v", dx, cx)
	}
}

func TestHierarchicalSingleClassCentered(t *testing.T) {
	d := build(t, classes("Only"), nil)
	h := NewHierarchical(HierarchicalConfig{})
	h.SetDimensions(1000, 800)
	h.Layout(d)
	if x, y := pos(t, d, "Only"); x != 425 || y != 50 {
		t.Errorf("Only at (%v, %v), want (425, 50)", x, y)
	}
}

func TestHierarchicalRowHeightFollowsMembers(t *testing.T) {
	d := build(t, []diagram.Class{
		{ID: "Base", Attributes: 3, Methods: 2},
		{ID: "Sub"},
	}, [][3]string{{"Sub", "inheritance", "Base"}})
	NewHierarchical(HierarchicalConfig{}).Layout(d)
	// 50 + (120 + 20*5) + 150
	if _, y := pos(t, d, "Sub"); y != 420 {
		t.Errorf("Sub.Y = %v, want 420", y)
	}
}

func TestHierarchicalCycleTerminates(t *testing.T) {
	d := build(t, classes("A", "B", "C"), [][3]string{
		{"A", "inheritance", "B"},
		{"B", "inheritance", "C"},
		{"C", "inheritance", "A"},
	})
	NewHierarchical(HierarchicalConfig{}).Layout(d)
	for _, c := range d.Classes() {
		if !c.Pos().IsFinite() {
			t.Errorf("%s has non-finite position %v", c.ID, c.Pos())
		}
	}
}

func TestHierarchicalDeterministic(t *testing.T) {
	mk := func() *diagram.ClassDiagram {
		return build(t, classes("A", "B", "C", "D", "E"), [][3]string{
			{"B", "inheritance", "A"},
			{"C", "inheritance", "A"},
			{"D", "association", "C"},
			{"E", "implementation", "A"},
		})
	}
	d1, d2 := mk(), mk()
	NewHierarchical(HierarchicalConfig{}).Layout(d1)
	NewHierarchical(HierarchicalConfig{}).Layout(d2)
	for id, p := range d1.Positions() {
		if q := d2.Positions()[id]; p != q {
			t.Errorf("%s: %v vs %v", id, p, q)
		}
	}
}
