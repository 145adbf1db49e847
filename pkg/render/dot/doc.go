// Package dot exports laid-out class diagrams to Graphviz.
//
// # Overview
//
// [ToDOT] turns a diagram into DOT source in which every class is a UML-style
// record box pinned at the position the layout engine computed. Graphviz is
// only used to draw: the neato engine honours pinned positions and routes
// the edges, so the picture matches the layout exactly.
//
//	src := dot.ToDOT(d, dot.Options{Detailed: true})
//	svg, err := dot.RenderSVG(ctx, src)
//
// # Coordinates
//
// Layout coordinates put the origin top-left with y growing down and refer
// to the top-left corner of a class box. Graphviz puts the origin
// bottom-left and positions node centers, so ToDOT flips y and shifts every
// node by half its size. One layout unit is one Graphviz point.
//
// # Notation
//
// Relations are drawn with the usual UML arrowheads:
//
//   - inheritance: solid line, hollow triangle at the supertype
//   - implementation: dashed line, hollow triangle at the interface
//   - composition: filled diamond at the whole
//   - aggregation: hollow diamond at the whole
//   - association: solid line, open arrow
//   - dependency: dashed line, open arrow
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which embeds Graphviz
// compiled to WebAssembly; no system installation is required.
package dot
