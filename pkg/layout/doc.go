// Package layout computes 2D positions for the classes of a UML class
// diagram.
//
// # Overview
//
// Three interchangeable algorithms implement [Algorithm]. Each mutates only
// the X and Y fields of the diagram's classes and never fails; an empty or
// nil diagram is a no-op.
//
//   - [GridLayout] packs classes in insertion order into fixed-size cells.
//   - [HierarchicalLayout] stacks supertypes above subtypes in layered rows.
//   - [ForceDirectedLayout] runs a spring and repulsion simulation.
//
// Pick one by [Type] through [New], or by name through [ParseType]. All
// tunable distances and iteration counts live in [Config]; zero fields take
// the package defaults.
//
// # Determinism
//
// No algorithm consumes randomness. The same diagram (same insertion order,
// same starting positions) and the same settings always give the same
// positions.
//
// # Applying Layouts
//
// [Manager] keeps one configured algorithm per diagram and type and applies
// it in one of two modes. [Manager.ApplyLayout] writes positions directly.
// [Manager.ApplyLayoutWithCommands] records every significant move as a
// [command.Move] inside a single named group on a [command.Executor], so a
// whole re-layout is undone in one step:
//
//	stack := command.NewStack(0)
//	m := layout.NewManager(layout.DefaultConfig(), logger)
//	moved, err := m.ApplyLayoutWithCommands(ctx, d, layout.Hierarchical, 1200, 900, stack)
//	...
//	stack.Undo() // every class back where it was
//
// # Coordinates
//
// The origin is the top-left corner of the canvas, x grows right and y grows
// down. Positions are the top-left corners of class boxes.
package layout
