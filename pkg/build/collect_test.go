package build

import (
	"slices"
	"testing"

	"github.com/matzehuels/framecast/pkg/element"
)

func TestCollectURLs(t *testing.T) {
	els := []*element.Element{
		{Tag: "img", Src: "https://a/1.png"},
		{Tag: "div", Styles: element.Styles{"backgroundImage": `url("https://a/2.png")`}, Children: []*element.Element{
			{Tag: "img", Src: "https://a/1.png"},
			{Tag: "div", Styles: element.Styles{"backgroundImage": "linear-gradient(red, blue)"}},
			{Tag: "img", Src: "//cdn/3.png"},
		}},
	}
	got := CollectURLs(els)
	want := []string{"https://a/1.png", "https://a/2.png", "//cdn/3.png"}
	if !slices.Equal(got, want) {
		t.Errorf("CollectURLs = %v, want %v", got, want)
	}
}

func TestCollectFonts(t *testing.T) {
	els := []*element.Element{
		{Tag: "p", Text: "a", Styles: element.Styles{"fontFamily": "Helvetica, sans-serif", "fontWeight": "700"}},
		{Tag: "p", Text: "b", Styles: element.Styles{"fontFamily": "Arial", "fontWeight": "500"}},
		{Tag: "p", Text: "c", Styles: element.Styles{"fontFamily": "Georgia", "fontStyle": "italic"}},
		{Tag: "div"},
	}
	got := CollectFonts(els)
	if want := []string{"Bold", "Medium", "Regular"}; !slices.Equal(got["Inter"], want) {
		t.Errorf("Inter = %v, want %v", got["Inter"], want)
	}
	if want := []string{"Italic", "Regular"}; !slices.Equal(got["Georgia"], want) {
		t.Errorf("Georgia = %v, want %v", got["Georgia"], want)
	}
	if len(got) != 2 {
		t.Errorf("families = %v", got)
	}
}

func TestSections(t *testing.T) {
	els := []*element.Element{
		{Tag: "footer", Bounds: &element.Bounds{Y: 900, Width: 100, Height: 50}},
		{Tag: "HEADER", Bounds: &element.Bounds{Width: 100, Height: 80}},
		{Tag: "div", Bounds: &element.Bounds{Y: 100, Width: 50, Height: 50}},
		{Tag: "section", Bounds: &element.Bounds{X: 50, Y: 200, Width: 50, Height: 100}},
		{Tag: "aside"},
	}
	got := Sections(els)
	var names []string
	for _, s := range got {
		names = append(names, s.Name)
	}
	if want := []string{"Header", "Main Content", "Sidebar", "Footer"}; !slices.Equal(names, want) {
		t.Fatalf("sections = %v, want %v", names, want)
	}
	main := got[1]
	if len(main.Elements) != 2 || main.Bounds == nil || main.Bounds.Y != 100 || main.Bounds.Height != 200 || main.Bounds.Width != 100 {
		t.Errorf("main = %+v bounds %+v", main, main.Bounds)
	}
	if got[2].Bounds != nil {
		t.Errorf("aside without bounds should have nil Bounds")
	}
}
