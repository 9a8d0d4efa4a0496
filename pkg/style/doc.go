// Package style translates computed CSS strings into normalized design
// primitives.
//
// # Overview
//
// Every function in this package is total: unparsable input never returns
// an error, it falls back to a documented default instead.
//
//   - Colors default to opaque black
//   - Corner radius defaults to 0
//   - Text alignment defaults to LEFT
//   - Line height defaults to AUTO
//   - Font family defaults to Inter
//
// Only a bounded subset of CSS is understood. Anything outside it is
// ignored rather than approximated.
//
// # Colors
//
// [ParseColor] accepts hex (#rgb, #rgba, #rrggbb, #rrggbbaa), rgb()/rgba()
// in comma or space syntax, hsl()/hsla(), the CSS named-color table and
// "transparent". All results are RGBA in [0,1]:
//
//	style.ParseColor("#ff0000")           // {1 0 0 1}
//	style.ParseColor("rgb(255 0 0 / 50%)") // {1 0 0 0.5}
//	style.ParseColor("hsl(0, 100%, 50%)")  // {1 0 0 1}
//
// # Gradients
//
// [ParseGradient] handles linear-gradient, radial-gradient and
// conic-gradient. Directions may be named ("to top right"), or an angle in
// deg, turn, rad or grad. The default direction is 180deg (top to bottom).
// Stops without a position are spread evenly.
//
// # Aggregate
//
// [Parse] reads an element's whole style map into a [Style], which is what
// the tree builder consumes.
package style
