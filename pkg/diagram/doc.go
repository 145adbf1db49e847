// Package diagram models a UML class diagram as the layout engine sees it.
//
// A [ClassDiagram] is an arena of [Class] and [Relation] records addressed by
// stable IDs. The layout algorithms in pkg/layout only mutate class
// positions; creating and deleting classes is the editor's business.
//
// # Structure
//
//   - [Class]: ID, name, [ClassKind], attribute and method counts, position
//   - [Relation]: ID, directed Source → Target class IDs, [RelationKind]
//   - [View]: read-only adapter with size hints and endpoint lookups
//
// For inheritance and implementation the target is the supertype. Removing
// a class removes every relation touching it, so a diagram built through
// this package never holds dangling relations. [Validate] re-checks that
// invariant for diagrams assembled elsewhere.
//
// # Files
//
// Diagrams are read and written as JSON, YAML or TOML:
//
//	d, err := diagram.ReadFile("shop.yaml")
//	// ... lay out ...
//	err = diagram.WriteFile(d, "shop.layout.json")
//
// Relations in files may reference classes by name instead of ID.
//
// # Concurrency
//
// Diagrams are not safe for concurrent mutation. Callers laying out a
// diagram off the interactive goroutine must hand it over exclusively.
package diagram
