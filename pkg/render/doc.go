// Package render holds the visual outputs of a converted document.
//
// The [treeviz] subpackage draws a design tree or a materialized document
// as a Graphviz node-link diagram (DOT, SVG or PNG), one box per node,
// colored by kind:
//
//	dot := treeviz.ToDOT(doc, treeviz.Options{Detailed: true})
//	svg, err := treeviz.RenderSVG(dot)
package render
