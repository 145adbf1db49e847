package pipeline

import (
	"encoding/json"

	"github.com/matzehuels/umlayout/pkg/cache"
	"github.com/matzehuels/umlayout/pkg/diagram"
)

// hashClass and hashRelation are the parts of a diagram a layout depends
// on. IDs are left out: files without IDs get fresh UUIDs on every load, so
// classes are identified by position in the class list instead.
type hashClass struct {
	Name    string            `json:"n"`
	Kind    diagram.ClassKind `json:"k"`
	Attrs   int               `json:"a"`
	Methods int               `json:"m"`
	X       float64           `json:"x"`
	Y       float64           `json:"y"`
}

type hashRelation struct {
	Source int                  `json:"s"`
	Target int                  `json:"t"`
	Kind   diagram.RelationKind `json:"k"`
}

// DiagramHash returns a content hash of everything that influences a
// layout of d: class order, kinds, sizes and starting positions, and the
// relation structure.
func DiagramHash(d *diagram.ClassDiagram) string {
	classes := d.Classes()
	index := make(map[string]int, len(classes))
	hc := make([]hashClass, len(classes))
	for i, c := range classes {
		index[c.ID] = i
		hc[i] = hashClass{Name: c.Name, Kind: c.Kind, Attrs: c.Attributes, Methods: c.Methods, X: c.X, Y: c.Y}
	}
	hr := make([]hashRelation, 0, d.RelationCount())
	for _, r := range d.Relations() {
		hr = append(hr, hashRelation{Source: index[r.Source], Target: index[r.Target], Kind: r.Kind})
	}
	data, _ := json.Marshal(struct {
		Classes   []hashClass    `json:"c"`
		Relations []hashRelation `json:"r"`
	}{hc, hr})
	return cache.Hash(data)
}
