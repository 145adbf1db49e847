package diagram

// View is a read-only adapter over a diagram's classes and relations. It
// indexes relations by endpoint once so algorithms can query adjacency
// without walking the relation list.
//
// A View is a snapshot of the structure at construction time; positions are
// read through the shared class pointers and therefore stay live.
type View struct {
	d        *ClassDiagram
	outgoing map[string][]*Relation
	incoming map[string][]*Relation
}

// NewView builds a view over d. A nil diagram yields an empty view.
func NewView(d *ClassDiagram) *View {
	v := &View{
		d:        d,
		outgoing: make(map[string][]*Relation),
		incoming: make(map[string][]*Relation),
	}
	for _, r := range d.Relations() {
		v.outgoing[r.Source] = append(v.outgoing[r.Source], r)
		v.incoming[r.Target] = append(v.incoming[r.Target], r)
	}
	return v
}

// Classes returns the classes in diagram order.
func (v *View) Classes() []*Class { return v.d.Classes() }

// Relations returns the relations in diagram order.
func (v *View) Relations() []*Relation { return v.d.Relations() }

// Class looks up a class by ID.
func (v *View) Class(id string) (*Class, bool) {
	if v.d == nil {
		return nil, false
	}
	return v.d.Class(id)
}

// SizeHint returns the attribute and method counts of a class.
func (v *View) SizeHint(id string) (attributes, methods int) {
	if c, ok := v.Class(id); ok {
		return c.Attributes, c.Methods
	}
	return 0, 0
}

// Endpoints returns the source and target classes of a relation. ok is false
// when the relation is unknown or either endpoint is missing.
func (v *View) Endpoints(relID string) (source, target *Class, ok bool) {
	if v.d == nil {
		return nil, nil, false
	}
	r, found := v.d.Relation(relID)
	if !found {
		return nil, nil, false
	}
	source, okS := v.d.Class(r.Source)
	target, okT := v.d.Class(r.Target)
	return source, target, okS && okT
}

// Outgoing returns relations whose source is the given class.
func (v *View) Outgoing(id string) []*Relation { return v.outgoing[id] }

// Incoming returns relations whose target is the given class.
func (v *View) Incoming(id string) []*Relation { return v.incoming[id] }

// Degree returns the number of relations touching the class. A self
// relation counts twice.
func (v *View) Degree(id string) int { return len(v.outgoing[id]) + len(v.incoming[id]) }
