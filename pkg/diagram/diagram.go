package diagram

import (
	"slices"

	"github.com/google/uuid"

	errs "github.com/matzehuels/umlayout/pkg/errors"
	"github.com/matzehuels/umlayout/pkg/geom"
)

// Class is a class box on the diagram. Layout algorithms only ever write X
// and Y; everything else belongs to the editor that owns the diagram.
//
// A position of (0, 0) means "not placed yet".
type Class struct {
	ID         string    `json:"id" yaml:"id" toml:"id"`
	Name       string    `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`
	Kind       ClassKind `json:"kind" yaml:"kind" toml:"kind"`
	Attributes int       `json:"attributes,omitempty" yaml:"attributes,omitempty" toml:"attributes,omitempty"`
	Methods    int       `json:"methods,omitempty" yaml:"methods,omitempty" toml:"methods,omitempty"`
	X          float64   `json:"x" yaml:"x" toml:"x"`
	Y          float64   `json:"y" yaml:"y" toml:"y"`
}

// Pos returns the class position as a vector.
func (c *Class) Pos() geom.Vec { return geom.Vec{X: c.X, Y: c.Y} }

// SetPos moves the class to p.
func (c *Class) SetPos(p geom.Vec) { c.X, c.Y = p.X, p.Y }

// Placed reports whether the class has a non-zero position.
func (c *Class) Placed() bool { return c.X != 0 || c.Y != 0 }

// Members returns the number of attributes plus methods.
func (c *Class) Members() int { return c.Attributes + c.Methods }

// DisplayName returns the name if set, otherwise the ID.
func (c *Class) DisplayName() string {
	if c.Name != "" {
		return c.Name
	}
	return c.ID
}

// Relation is a directed edge between two classes. Source and Target are
// class IDs; for hierarchy kinds the target is the supertype.
type Relation struct {
	ID     string       `json:"id" yaml:"id" toml:"id"`
	Source string       `json:"source" yaml:"source" toml:"source"`
	Target string       `json:"target" yaml:"target" toml:"target"`
	Kind   RelationKind `json:"kind" yaml:"kind" toml:"kind"`
	Label  string       `json:"label,omitempty" yaml:"label,omitempty" toml:"label,omitempty"`
}

// ClassDiagram is an arena of classes and relations addressed by stable ID.
// Classes and relations are kept in insertion order, which is the order the
// layout algorithms iterate in.
//
// The zero value is not usable - use New to create a diagram.
// ClassDiagram is not safe for concurrent use without external synchronization.
type ClassDiagram struct {
	ID   string
	Name string

	classes   []*Class
	relations []*Relation
	classIdx  map[string]*Class
	relIdx    map[string]*Relation
}

// New creates an empty diagram with a fresh random ID.
func New(name string) *ClassDiagram {
	return NewWithID(uuid.NewString(), name)
}

// NewWithID creates an empty diagram with the given ID.
func NewWithID(id, name string) *ClassDiagram {
	return &ClassDiagram{
		ID:       id,
		Name:     name,
		classIdx: make(map[string]*Class),
		relIdx:   make(map[string]*Relation),
	}
}

// AddClass adds a class and returns the stored pointer. An empty ID is
// replaced with a random UUID.
func (d *ClassDiagram) AddClass(c Class) (*Class, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := errs.ValidateID("class", c.ID); err != nil {
		return nil, err
	}
	if _, exists := d.classIdx[c.ID]; exists {
		return nil, errs.New(errs.ErrCodeInvalidDiagram, "duplicate class id %q", c.ID)
	}
	stored := &c
	d.classes = append(d.classes, stored)
	d.classIdx[c.ID] = stored
	return stored, nil
}

// AddRelation adds a relation between two existing classes. An empty ID is
// replaced with a random UUID.
func (d *ClassDiagram) AddRelation(r Relation) (*Relation, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if err := errs.ValidateID("relation", r.ID); err != nil {
		return nil, err
	}
	if _, exists := d.relIdx[r.ID]; exists {
		return nil, errs.New(errs.ErrCodeInvalidDiagram, "duplicate relation id %q", r.ID)
	}
	if _, ok := d.classIdx[r.Source]; !ok {
		return nil, errs.New(errs.ErrCodeInvalidDiagram, "relation %q: unknown source class %q", r.ID, r.Source)
	}
	if _, ok := d.classIdx[r.Target]; !ok {
		return nil, errs.New(errs.ErrCodeInvalidDiagram, "relation %q: unknown target class %q", r.ID, r.Target)
	}
	stored := &r
	d.relations = append(d.relations, stored)
	d.relIdx[r.ID] = stored
	return stored, nil
}

// RemoveClass deletes a class together with every relation touching it.
// It reports whether the class existed.
func (d *ClassDiagram) RemoveClass(id string) bool {
	if _, ok := d.classIdx[id]; !ok {
		return false
	}
	delete(d.classIdx, id)
	d.classes = slices.DeleteFunc(d.classes, func(c *Class) bool { return c.ID == id })
	d.relations = slices.DeleteFunc(d.relations, func(r *Relation) bool {
		if r.Source == id || r.Target == id {
			delete(d.relIdx, r.ID)
			return true
		}
		return false
	})
	return true
}

// RemoveRelation deletes a relation. It reports whether it existed.
func (d *ClassDiagram) RemoveRelation(id string) bool {
	if _, ok := d.relIdx[id]; !ok {
		return false
	}
	delete(d.relIdx, id)
	d.relations = slices.DeleteFunc(d.relations, func(r *Relation) bool { return r.ID == id })
	return true
}

// Class returns the class with the given ID.
func (d *ClassDiagram) Class(id string) (*Class, bool) {
	c, ok := d.classIdx[id]
	return c, ok
}

// Relation returns the relation with the given ID.
func (d *ClassDiagram) Relation(id string) (*Relation, bool) {
	r, ok := d.relIdx[id]
	return r, ok
}

// Classes returns the classes in insertion order. The slice is a copy but
// the pointers are shared, so algorithms can move classes through it.
func (d *ClassDiagram) Classes() []*Class {
	if d == nil {
		return nil
	}
	return slices.Clone(d.classes)
}

// Relations returns the relations in insertion order.
func (d *ClassDiagram) Relations() []*Relation {
	if d == nil {
		return nil
	}
	return slices.Clone(d.relations)
}

// ClassCount returns the number of classes. A nil diagram has none.
func (d *ClassDiagram) ClassCount() int {
	if d == nil {
		return 0
	}
	return len(d.classes)
}

// RelationCount returns the number of relations.
func (d *ClassDiagram) RelationCount() int {
	if d == nil {
		return 0
	}
	return len(d.relations)
}

// IsEmpty reports whether d is nil or has no classes.
func (d *ClassDiagram) IsEmpty() bool { return d.ClassCount() == 0 }

// Positions returns a snapshot of every class position keyed by class ID.
func (d *ClassDiagram) Positions() map[string]geom.Vec {
	out := make(map[string]geom.Vec, d.ClassCount())
	for _, c := range d.Classes() {
		out[c.ID] = c.Pos()
	}
	return out
}

// SetPositions moves classes to the given positions. Unknown IDs are ignored
// and classes missing from pos keep their position. It returns how many
// classes were updated.
func (d *ClassDiagram) SetPositions(pos map[string]geom.Vec) int {
	n := 0
	for id, p := range pos {
		if c, ok := d.classIdx[id]; ok {
			c.SetPos(p)
			n++
		}
	}
	return n
}

// Bounds returns the box spanned by the class positions. The second result
// is false for an empty diagram.
func (d *ClassDiagram) Bounds() (geom.Box, bool) {
	if d.IsEmpty() {
		return geom.Box{}, false
	}
	first := d.classes[0].Pos()
	b := geom.Box{Min: first, Max: first}
	for _, c := range d.classes[1:] {
		p := c.Pos()
		b = b.Union(geom.Box{Min: p, Max: p})
	}
	return b, true
}

// Clone returns a deep copy of the diagram with the same IDs.
func (d *ClassDiagram) Clone() *ClassDiagram {
	out := NewWithID(d.ID, d.Name)
	for _, c := range d.classes {
		cp := *c
		out.classes = append(out.classes, &cp)
		out.classIdx[cp.ID] = &cp
	}
	for _, r := range d.relations {
		cp := *r
		out.relations = append(out.relations, &cp)
		out.relIdx[cp.ID] = &cp
	}
	return out
}

// Validate checks referential integrity: every relation must point at
// classes that exist in the diagram. Diagrams built through AddRelation are
// always valid; Validate guards diagrams assembled from external data.
func Validate(d *ClassDiagram) error {
	if d == nil {
		return nil
	}
	for _, r := range d.relations {
		if _, ok := d.classIdx[r.Source]; !ok {
			return errs.New(errs.ErrCodeInvalidDiagram, "relation %q: dangling source %q", r.ID, r.Source)
		}
		if _, ok := d.classIdx[r.Target]; !ok {
			return errs.New(errs.ErrCodeInvalidDiagram, "relation %q: dangling target %q", r.ID, r.Target)
		}
	}
	return nil
}
