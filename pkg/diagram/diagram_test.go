package diagram

import (
	"testing"

	errs "github.com/matzehuels/umlayout/pkg/errors"
	"github.com/matzehuels/umlayout/pkg/geom"
)

func buildShop(t *testing.T) *ClassDiagram {
	t.Helper()
	d := NewWithID("shop", "Shop")
	for _, c := range []Class{
		{ID: "Entity", Kind: KindAbstractClass, Attributes: 1},
		{ID: "Order", Attributes: 3, Methods: 2},
		{ID: "Line", Attributes: 2},
		{ID: "Priced", Kind: KindInterface, Methods: 1},
	} {
		if _, err := d.AddClass(c); err != nil {
			t.Fatalf("AddClass(%s): %v", c.ID, err)
		}
	}
	for _, r := range []Relation{
		{ID: "r1", Source: "Order", Target: "Entity", Kind: RelInheritance},
		{ID: "r2", Source: "Order", Target: "Line", Kind: RelComposition},
		{ID: "r3", Source: "Line", Target: "Priced", Kind: RelImplementation},
	} {
		if _, err := d.AddRelation(r); err != nil {
			t.Fatalf("AddRelation(%s): %v", r.ID, err)
		}
	}
	return d
}

func TestAddClass(t *testing.T) {
	d := New("test")
	c, err := d.AddClass(Class{Name: "Anon"})
	if err != nil {
		t.Fatalf("AddClass: %v", err)
	}
	if c.ID == "" {
		t.Error("AddClass should assign an ID")
	}

	if _, err := d.AddClass(Class{ID: c.ID}); !errs.Is(err, errs.ErrCodeInvalidDiagram) {
		t.Errorf("duplicate ID error = %v, want %s", err, errs.ErrCodeInvalidDiagram)
	}
}

func TestAddRelationUnknownEndpoint(t *testing.T) {
	d := buildShop(t)
	if _, err := d.AddRelation(Relation{Source: "Order", Target: "Missing"}); err == nil {
		t.Error("relation to unknown class should fail")
	}
	if _, err := d.AddRelation(Relation{Source: "Missing", Target: "Order"}); err == nil {
		t.Error("relation from unknown class should fail")
	}
}

func TestClassesKeepInsertionOrder(t *testing.T) {
	d := buildShop(t)
	want := []string{"Entity", "Order", "Line", "Priced"}
	got := d.Classes()
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, c := range got {
		if c.ID != want[i] {
			t.Errorf("Classes()[%d] = %s, want %s", i, c.ID, want[i])
		}
	}
}

func TestRemoveClassCascades(t *testing.T) {
	d := buildShop(t)
	if !d.RemoveClass("Order") {
		t.Fatal("RemoveClass(Order) = false")
	}
	if d.ClassCount() != 3 {
		t.Errorf("ClassCount = %d, want 3", d.ClassCount())
	}
	if d.RelationCount() != 1 {
		t.Errorf("RelationCount = %d, want 1", d.RelationCount())
	}
	if _, ok := d.Relation("r1"); ok {
		t.Error("r1 should be removed with Order")
	}
	if d.RemoveClass("Order") {
		t.Error("second RemoveClass should report false")
	}
	if err := Validate(d); err != nil {
		t.Errorf("Validate after cascade: %v", err)
	}
}

func TestRemoveRelation(t *testing.T) {
	d := buildShop(t)
	if !d.RemoveRelation("r2") {
		t.Fatal("RemoveRelation(r2) = false")
	}
	if d.RemoveRelation("r2") {
		t.Error("second RemoveRelation should report false")
	}
	if d.RelationCount() != 2 {
		t.Errorf("RelationCount = %d, want 2", d.RelationCount())
	}
}

func TestValidateDangling(t *testing.T) {
	d := buildShop(t)
	r, _ := d.Relation("r2")
	r.Target = "Ghost"
	if err := Validate(d); !errs.Is(err, errs.ErrCodeInvalidDiagram) {
		t.Errorf("Validate() = %v, want %s", err, errs.ErrCodeInvalidDiagram)
	}
}

func TestPositionsRoundTrip(t *testing.T) {
	d := buildShop(t)
	n := d.SetPositions(map[string]geom.Vec{
		"Order":   {X: 10, Y: 20},
		"Unknown": {X: 1, Y: 1},
	})
	if n != 1 {
		t.Errorf("SetPositions updated %d, want 1", n)
	}
	pos := d.Positions()
	if pos["Order"] != (geom.Vec{X: 10, Y: 20}) {
		t.Errorf("Positions()[Order] = %v", pos["Order"])
	}
	if c, _ := d.Class("Line"); c.Placed() {
		t.Error("Line should not be placed")
	}
}

func TestNilDiagram(t *testing.T) {
	var d *ClassDiagram
	if !d.IsEmpty() {
		t.Error("nil diagram should be empty")
	}
	if d.Classes() != nil || d.Relations() != nil {
		t.Error("nil diagram should have no classes or relations")
	}
	if err := Validate(d); err != nil {
		t.Errorf("Validate(nil) = %v", err)
	}
}

func TestCloneIsDeep(t *testing.T) {
	d := buildShop(t)
	cp := d.Clone()
	c, _ := cp.Class("Order")
	c.X = 99
	if orig, _ := d.Class("Order"); orig.X == 99 {
		t.Error("Clone shares class records")
	}
	if cp.RelationCount() != d.RelationCount() {
		t.Errorf("Clone RelationCount = %d, want %d", cp.RelationCount(), d.RelationCount())
	}
}

func TestBounds(t *testing.T) {
	d := buildShop(t)
	if _, ok := New("empty").Bounds(); ok {
		t.Error("empty diagram should have no bounds")
	}
	d.SetPositions(map[string]geom.Vec{"Entity": {X: -5, Y: 3}, "Priced": {X: 40, Y: 70}})
	b, ok := d.Bounds()
	if !ok {
		t.Fatal("Bounds() ok = false")
	}
	if b.Min != (geom.Vec{X: -5, Y: 0}) || b.Max != (geom.Vec{X: 40, Y: 70}) {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestView(t *testing.T) {
	d := buildShop(t)
	v := NewView(d)

	if a, m := v.SizeHint("Order"); a != 3 || m != 2 {
		t.Errorf("SizeHint(Order) = %d,%d want 3,2", a, m)
	}
	if a, m := v.SizeHint("nope"); a != 0 || m != 0 {
		t.Errorf("SizeHint(nope) = %d,%d want 0,0", a, m)
	}
	src, dst, ok := v.Endpoints("r1")
	if !ok || src.ID != "Order" || dst.ID != "Entity" {
		t.Errorf("Endpoints(r1) = %v, %v, %v", src, dst, ok)
	}
	if _, _, ok := v.Endpoints("nope"); ok {
		t.Error("Endpoints(nope) should fail")
	}
	if got := v.Degree("Order"); got != 2 {
		t.Errorf("Degree(Order) = %d, want 2", got)
	}
	if got := len(v.Incoming("Priced")); got != 1 {
		t.Errorf("Incoming(Priced) = %d, want 1", got)
	}
}

func TestParseKinds(t *testing.T) {
	classKinds := map[string]ClassKind{
		"":               KindClass,
		"Interface":      KindInterface,
		"ABSTRACT_CLASS": KindAbstractClass,
		"abstract class": KindAbstractClass,
		"enum":           KindEnum,
	}
	for in, want := range classKinds {
		got, err := ParseClassKind(in)
		if err != nil || got != want {
			t.Errorf("ParseClassKind(%q) = %v, %v want %v", in, got, err, want)
		}
	}
	if _, err := ParseClassKind("struct"); err == nil {
		t.Error("ParseClassKind(struct) should fail")
	}

	relKinds := map[string]RelationKind{
		"":               RelAssociation,
		"INHERITANCE":    RelInheritance,
		"implements":     RelImplementation,
		"composition":    RelComposition,
		"aggregation":    RelAggregation,
		"dependency":     RelDependency,
		"generalization": RelInheritance,
	}
	for in, want := range relKinds {
		got, err := ParseRelationKind(in)
		if err != nil || got != want {
			t.Errorf("ParseRelationKind(%q) = %v, %v want %v", in, got, err, want)
		}
	}
	if _, err := ParseRelationKind("friendship"); err == nil {
		t.Error("ParseRelationKind(friendship) should fail")
	}
	if !RelImplementation.IsHierarchy() || RelComposition.IsHierarchy() {
		t.Error("IsHierarchy mismatch")
	}
}
