package diagram

import (
	"fmt"
	"strings"

	errs "github.com/matzehuels/umlayout/pkg/errors"
)

// ClassKind distinguishes concrete classes, interfaces, abstract classes and
// enums. The kind affects a class's layout weight, never the algorithm used.
type ClassKind int

const (
	// KindClass is a concrete class. It is the zero value.
	KindClass ClassKind = iota
	// KindInterface is an interface.
	KindInterface
	// KindAbstractClass is an abstract class.
	KindAbstractClass
	// KindEnum is an enumeration.
	KindEnum
)

var classKindNames = [...]string{
	KindClass:         "class",
	KindInterface:     "interface",
	KindAbstractClass: "abstract_class",
	KindEnum:          "enum",
}

// String returns the canonical lower-case name of the kind.
func (k ClassKind) String() string {
	if k < 0 || int(k) >= len(classKindNames) {
		return fmt.Sprintf("ClassKind(%d)", int(k))
	}
	return classKindNames[k]
}

// ParseClassKind parses a kind name case-insensitively. The empty string
// yields KindClass.
func ParseClassKind(s string) (ClassKind, error) {
	switch normalizeName(s) {
	case "", "class", "concrete":
		return KindClass, nil
	case "interface":
		return KindInterface, nil
	case "abstract_class", "abstract", "abstractclass":
		return KindAbstractClass, nil
	case "enum", "enumeration":
		return KindEnum, nil
	}
	return KindClass, errs.New(errs.ErrCodeInvalidDiagram, "unknown class kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k ClassKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *ClassKind) UnmarshalText(b []byte) error {
	v, err := ParseClassKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// RelationKind distinguishes the UML relationships a diagram can carry. The
// kind decides attraction strength in force-directed layout and hierarchy
// direction in hierarchical layout.
type RelationKind int

const (
	// RelAssociation is a plain association. It is the zero value.
	RelAssociation RelationKind = iota
	// RelAggregation is a shared whole/part relation.
	RelAggregation
	// RelComposition is an owning whole/part relation.
	RelComposition
	// RelInheritance points from a subclass (source) to its superclass (target).
	RelInheritance
	// RelImplementation points from a class (source) to an interface (target).
	RelImplementation
	// RelDependency is a usage dependency.
	RelDependency
)

var relationKindNames = [...]string{
	RelAssociation:    "association",
	RelAggregation:    "aggregation",
	RelComposition:    "composition",
	RelInheritance:    "inheritance",
	RelImplementation: "implementation",
	RelDependency:     "dependency",
}

// String returns the canonical lower-case name of the kind.
func (k RelationKind) String() string {
	if k < 0 || int(k) >= len(relationKindNames) {
		return fmt.Sprintf("RelationKind(%d)", int(k))
	}
	return relationKindNames[k]
}

// IsHierarchy reports whether the relation orders its endpoints vertically,
// with the target above the source.
func (k RelationKind) IsHierarchy() bool {
	return k == RelInheritance || k == RelImplementation
}

// ParseRelationKind parses a relation name case-insensitively. The empty
// string yields RelAssociation.
func ParseRelationKind(s string) (RelationKind, error) {
	switch normalizeName(s) {
	case "", "association", "assoc":
		return RelAssociation, nil
	case "aggregation":
		return RelAggregation, nil
	case "composition":
		return RelComposition, nil
	case "inheritance", "extends", "generalization":
		return RelInheritance, nil
	case "implementation", "implements", "realization":
		return RelImplementation, nil
	case "dependency", "uses":
		return RelDependency, nil
	}
	return RelAssociation, errs.New(errs.ErrCodeInvalidDiagram, "unknown relation kind %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (k RelationKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *RelationKind) UnmarshalText(b []byte) error {
	v, err := ParseRelationKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	return strings.NewReplacer("-", "_", " ", "_").Replace(s)
}
