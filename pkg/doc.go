// Package pkg provides the libraries behind umlayout, an automatic layout
// engine for UML class diagrams.
//
// # Overview
//
// A diagram is a set of classes (boxes with a kind and member counts) and
// typed relations between them. The libraries compute a position for every
// class and draw the result:
//
//  1. [diagram] - The class diagram model and its JSON, YAML and TOML codecs
//  2. [layout] - Force-directed, hierarchical and grid algorithms plus the
//     per-diagram layout manager
//  3. [command] - Undoable move commands and the history stack
//  4. [render/dot] - Graphviz DOT generation and SVG/PNG rendering
//  5. [pipeline] - Orchestration (read → layout → cache → render)
//  6. [cache] - Layout and artifact caching
//
// # Architecture
//
//	diagram file (json/yaml/toml)
//	         ↓
//	    [diagram] package (decode, validate)
//	         ↓
//	    [layout] package (positions, applied through [command])
//	         ↓
//	    [render/dot] package (DOT → SVG/PNG)
//
// # Quick Start
//
//	d, _ := diagram.ReadFile("shop.yaml")
//	runner := pipeline.NewRunner(nil, nil, nil)
//	res, err := runner.Layout(ctx, d, pipeline.Options{Algorithm: "hierarchical"})
//	svg, err := runner.Render(ctx, d, pipeline.Options{Format: "svg"})
//
// Supporting packages: [errors] carries coded errors, [geom] the vector math,
// [observability] the instrumentation hooks, and [buildinfo] version data.
package pkg
