// Package render turns finalized diagrams into image artifacts.
//
// The package has two halves: a deterministic DOT emitter ([ToDOT]) that
// serializes a diagram's clusters, nodes, and edges in stable order, and
// the [Backend] capability boundary with two implementations:
//
//   - [Graphviz]: layout and rasterization via the embedded Graphviz
//     engine (PNG, SVG, or raw DOT output)
//   - [NullBackend]: always-unavailable stand-in for environments
//     without a layout engine
//
// Backends never leak failures: every internal error, including engine
// panics, is converted into a [Result] with OK set to false.
package render
