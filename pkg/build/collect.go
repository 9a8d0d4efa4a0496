package build

import (
	"slices"
	"strings"

	"github.com/matzehuels/framecast/pkg/design"
	"github.com/matzehuels/framecast/pkg/element"
	"github.com/matzehuels/framecast/pkg/style"
)

// CollectURLs returns the unique image and background URLs in the forest,
// in document order.
func CollectURLs(elements []*element.Element) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(u string) {
		if u = strings.TrimSpace(u); u != "" && !seen[u] {
			seen[u] = true
			out = append(out, u)
		}
	}
	element.Walk(elements, func(el *element.Element, _ int) bool {
		add(el.Src)
		add(style.BackgroundURL(el.Styles.Get("backgroundImage")))
		return true
	})
	return out
}

// CollectFonts maps each font family used by a text-bearing element to
// the sorted variants it needs. Every family includes Regular.
func CollectFonts(elements []*element.Element) map[string][]string {
	fonts := make(map[string][]string)
	element.Walk(elements, func(el *element.Element, _ int) bool {
		if el.TrimmedText() == "" && el.Styles.Get("fontFamily") == "" {
			return true
		}
		t := style.ParseTypography(el.Styles)
		variants := fonts[t.Font.Family]
		for _, v := range []string{"Regular", t.Font.Style} {
			if !slices.Contains(variants, v) {
				variants = append(variants, v)
			}
		}
		fonts[t.Font.Family] = variants
		return true
	})
	for _, v := range fonts {
		slices.Sort(v)
	}
	return fonts
}

// Section is a landmark region of the page.
type Section struct {
	Name     string
	Elements []*element.Element
	// Bounds covers the elements that have bounds. It is nil when none do.
	Bounds *design.Rect
}

var sectionOrder = []struct{ tag, name string }{
	{"header", "Header"},
	{"nav", "Navigation"},
	{"main", "Main Content"},
	{"aside", "Sidebar"},
	{"footer", "Footer"},
}

// Sections sorts top-level elements into landmark sections by tag. Tags
// without a landmark go to Main Content. Empty sections are omitted.
func Sections(elements []*element.Element) []Section {
	byTag := make(map[string][]*element.Element)
	for _, el := range elements {
		if el == nil {
			continue
		}
		tag := el.LowerTag()
		switch tag {
		case "header", "nav", "aside", "footer":
		default:
			tag = "main"
		}
		byTag[tag] = append(byTag[tag], el)
	}

	var out []Section
	for _, s := range sectionOrder {
		els := byTag[s.tag]
		if len(els) == 0 {
			continue
		}
		out = append(out, Section{Name: s.name, Elements: els, Bounds: sectionBounds(els)})
	}
	return out
}

func sectionBounds(els []*element.Element) *design.Rect {
	var rects []design.Rect
	for _, el := range els {
		if b := el.Bounds; b != nil {
			rects = append(rects, design.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height})
		}
	}
	if len(rects) == 0 {
		return nil
	}
	r := design.UnionRects(rects)
	return &r
}
