// Package treeviz draws converted documents as node-link diagrams.
//
// Each design node becomes a box connected to its parent by an arrow, so
// the nesting produced by the builder (frames, explicit and implicit
// groups, placeholders) can be inspected at a glance.
//
// # Usage
//
//	dot := treeviz.ToDOT(doc, treeviz.Options{Detailed: true})
//	svg, err := treeviz.RenderSVG(dot)
//	png, err := treeviz.RenderPNG(dot)
//
// [TreeDOT] does the same for an unmaterialized [design.Node] tree.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz] in process; no external
// Graphviz installation is needed.
package treeviz
