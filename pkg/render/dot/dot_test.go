package dot

import (
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/umlayout/pkg/diagram"
	errs "github.com/matzehuels/umlayout/pkg/errors"
)

func sample(t *testing.T) *diagram.ClassDiagram {
	t.Helper()
	d := diagram.NewWithID("zoo", "Zoo")
	for _, c := range []diagram.Class{
		{ID: "Animal", Kind: diagram.KindAbstractClass, Attributes: 1, X: 50, Y: 50},
		{ID: "Dog", Methods: 2, X: 50, Y: 320},
		{ID: "Pet", Kind: diagram.KindInterface, X: 400, Y: 50},
		{ID: "Zoo", Name: "Zoo{main}", X: 700, Y: 50},
	} {
		if _, err := d.AddClass(c); err != nil {
			t.Fatal(err)
		}
	}
	for _, r := range []diagram.Relation{
		{ID: "r1", Source: "Dog", Target: "Animal", Kind: diagram.RelInheritance},
		{ID: "r2", Source: "Dog", Target: "Pet", Kind: diagram.RelImplementation},
		{ID: "r3", Source: "Zoo", Target: "Animal", Kind: diagram.RelAggregation, Label: "houses"},
	} {
		if _, err := d.AddRelation(r); err != nil {
			t.Fatal(err)
		}
	}
	return d
}

func TestToDOTPinsPositions(t *testing.T) {
	src := ToDOT(sample(t), Options{Height: 800})

	// Animal: 200 wide, 120+20 tall, top-left (50, 50) on an 800 high canvas.
	if !strings.Contains(src, `"Animal" [label="{«abstract»\nAnimal}", pos="150.00,680.00!", width=2.78, height=1.94]`) {
		t.Errorf("Animal node not pinned as expected:\n%s", src)
	}
	if !strings.Contains(src, "inputscale=72;") {
		t.Error("missing inputscale")
	}
}

func TestToDOTFlipsAgainstLowestBox(t *testing.T) {
	d := diagram.NewWithID("one", "")
	d.AddClass(diagram.Class{ID: "A", X: 0, Y: 0})
	src := ToDOT(d, Options{})
	if !strings.Contains(src, `pos="100.00,60.00!"`) {
		t.Errorf("unexpected position:\n%s", src)
	}
	if !strings.HasPrefix(src, `digraph "G" {`) {
		t.Errorf("unnamed diagram header: %s", strings.SplitN(src, "\n", 2)[0])
	}
}

func TestToDOTEdges(t *testing.T) {
	src := ToDOT(sample(t), Options{})
	tests := []string{
		`"Dog" -> "Animal" [arrowhead=onormal];`,
		`"Dog" -> "Pet" [arrowhead=onormal, style=dashed];`,
		`"Zoo" -> "Animal" [dir=back, arrowtail=odiamond, label="houses"];`,
	}
	for _, want := range tests {
		if !strings.Contains(src, want) {
			t.Errorf("missing %s in:\n%s", want, src)
		}
	}
}

func TestEdgeAttrs(t *testing.T) {
	tests := []struct {
		kind diagram.RelationKind
		want string
	}{
		{diagram.RelInheritance, "arrowhead=onormal"},
		{diagram.RelImplementation, "arrowhead=onormal, style=dashed"},
		{diagram.RelComposition, "dir=back, arrowtail=diamond"},
		{diagram.RelAggregation, "dir=back, arrowtail=odiamond"},
		{diagram.RelAssociation, "arrowhead=vee"},
		{diagram.RelDependency, "arrowhead=vee, style=dashed"},
	}
	for _, tt := range tests {
		t.Run(tt.kind.String(), func(t *testing.T) {
			if got := strings.Join(edgeAttrs(tt.kind), ", "); got != tt.want {
				t.Errorf("edgeAttrs(%v) = %s, want %s", tt.kind, got, tt.want)
			}
		})
	}
}

func TestRecordLabel(t *testing.T) {
	tests := []struct {
		name     string
		class    diagram.Class
		detailed bool
		want     string
	}{
		{"plain", diagram.Class{ID: "A"}, false, `{A}`},
		{"interface", diagram.Class{ID: "I", Kind: diagram.KindInterface}, false, `{«interface»\nI}`},
		{"enum", diagram.Class{ID: "E", Kind: diagram.KindEnum}, false, `{«enumeration»\nE}`},
		{"escaped", diagram.Class{ID: "x", Name: "Map<K|V>"}, false, `{Map\<K\|V\>}`},
		{"detailed", diagram.Class{ID: "A", Attributes: 1, Methods: 3}, true, `{A|1 attribute\l|3 methods\l}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := recordLabel(&tt.class, tt.detailed); got != tt.want {
				t.Errorf("recordLabel = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRenderDOTPassthrough(t *testing.T) {
	out, err := Render(context.Background(), "digraph G {}\n", FormatDOT)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if string(out) != "digraph G {}\n" {
		t.Errorf("Render(dot) = %q", out)
	}
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(context.Background(), "digraph G {}", "pdf")
	if !errs.Is(err, errs.ErrCodeInvalidFormat) {
		t.Errorf("Render(pdf) error = %v, want INVALID_FORMAT", err)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="300pt" height="200pt" viewBox="0.00 0.00 300.00 200.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.HasPrefix(out, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 300.00 200.00" width="300" height="200">`) {
		t.Errorf("normalizeViewBox = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg>")); string(got) != "<svg>" {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}
