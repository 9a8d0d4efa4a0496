// Package element defines the extracted visual-element records that feed a
// conversion.
//
// An [Element] is produced once by the page extractor and consumed exactly
// once by the tree builder. Elements are treated as immutable after
// decoding; nothing in framecast writes back into them.
//
// # JSON
//
// Elements decode from the extractor's wire format, which uses tagName and
// textContent, and from a shorter hand-written form using tag and text:
//
//	{
//	  "id": "hero",
//	  "tagName": "DIV",
//	  "bounds": {"x": 0, "y": 0, "width": 1440, "height": 600},
//	  "styles": {"backgroundColor": "#fafafa", "zIndex": 2},
//	  "children": [...]
//	}
//
// Style values may be strings or numbers; numbers are stored in their
// shortest decimal form. Kebab-case style keys are folded to camelCase so
// that "font-size" and "fontSize" address the same property.
package element

import (
	"math"
	"strconv"
	"strings"
)

// Bounds is an element's pixel rectangle in page coordinates.
type Bounds struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Degenerate reports whether the rectangle rounds to less than one pixel
// in either dimension. No design node is built for degenerate bounds.
func (b Bounds) Degenerate() bool {
	return math.Round(b.Width) < 1 || math.Round(b.Height) < 1
}

// Element is one extracted visual element.
type Element struct {
	ID        string     `json:"id,omitempty"`
	Tag       string     `json:"tagName"`
	Text      string     `json:"textContent,omitempty"`
	ClassName string     `json:"className,omitempty"`
	Bounds    *Bounds    `json:"bounds"`
	Styles    Styles     `json:"styles,omitempty"`
	Src       string     `json:"src,omitempty"`
	ZIndex    *int       `json:"zIndex,omitempty"`
	Children  []*Element `json:"children,omitempty"`
}

// LowerTag returns the tag name in lower case.
func (e *Element) LowerTag() string {
	return strings.ToLower(strings.TrimSpace(e.Tag))
}

// TrimmedText returns the text content without surrounding whitespace.
func (e *Element) TrimmedText() string {
	return strings.TrimSpace(e.Text)
}

// Z returns the element's stacking index. The explicit ZIndex field wins,
// then an integer zIndex style; anything else (including "auto") is 0.
func (e *Element) Z() int {
	if e.ZIndex != nil {
		return *e.ZIndex
	}
	if v := e.Styles.Get("zIndex"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return 0
}

// FirstClass returns the first whitespace-separated class name, or "".
func (e *Element) FirstClass() string {
	fields := strings.Fields(e.ClassName)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// Viewport is the page viewport the elements were extracted from.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// DefaultViewport is used when a page carries no viewport.
var DefaultViewport = Viewport{Width: 1440, Height: 900}

// Page is a complete extraction: page metadata plus the top-level elements.
type Page struct {
	Title    string     `json:"title,omitempty"`
	URL      string     `json:"url,omitempty"`
	Viewport Viewport   `json:"viewport"`
	Elements []*Element `json:"elements"`
}

// Name returns the page title, falling back to its URL.
func (p *Page) Name() string {
	if t := strings.TrimSpace(p.Title); t != "" {
		return t
	}
	return p.URL
}

// Walk visits every element in depth-first document order. Returning
// false from fn skips that element's children.
func Walk(elements []*Element, fn func(el *Element, depth int) bool) {
	var visit func(els []*Element, depth int)
	visit = func(els []*Element, depth int) {
		for _, el := range els {
			if el == nil {
				continue
			}
			if fn(el, depth) {
				visit(el.Children, depth+1)
			}
		}
	}
	visit(elements, 0)
}

// Count returns the number of elements in the forest, descendants included.
func Count(elements []*Element) int {
	n := 0
	Walk(elements, func(*Element, int) bool {
		n++
		return true
	})
	return n
}
