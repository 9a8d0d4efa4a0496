package build

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/matzehuels/framecast/pkg/asset"
	"github.com/matzehuels/framecast/pkg/design"
	"github.com/matzehuels/framecast/pkg/element"
	ferrors "github.com/matzehuels/framecast/pkg/errors"
	"github.com/matzehuels/framecast/pkg/style"
)

type fakeResolver map[string]string

func (f fakeResolver) Resolve(_ context.Context, url string) (*asset.Record, error) {
	switch h, ok := f[url]; {
	case url == "panic":
		panic("resolver exploded")
	case ok:
		return &asset.Record{URL: url, Handle: h}, nil
	}
	return nil, ferrors.New(ferrors.ErrCodeAssetNetwork, "fetch %s: status 404", url)
}

func box(x, y, w, h float64) *element.Bounds {
	return &element.Bounds{X: x, Y: y, Width: w, Height: h}
}

func zi(z int) *int { return &z }

func decodeElement(t *testing.T, data string) *element.Element {
	t.Helper()
	var el element.Element
	if err := json.Unmarshal([]byte(data), &el); err != nil {
		t.Fatalf("decode element: %v", err)
	}
	return &el
}

func TestBuildBounds(t *testing.T) {
	b := New(Options{})
	ctx := context.Background()

	n, err := b.Build(ctx, &element.Element{Tag: "div", Bounds: box(0, 0, 0.4, 50)}, 0)
	if n != nil || err != nil {
		t.Errorf("degenerate = %v, %v; want nil, nil", n, err)
	}
	_, err = b.Build(ctx, &element.Element{Tag: "div"}, 0)
	if !ferrors.Is(err, ferrors.ErrCodeInvalidElement) {
		t.Errorf("missing bounds err = %v", err)
	}
	if st := b.Stats(); st.Skipped != 1 || st.Created != 0 {
		t.Errorf("Stats = %+v", st)
	}
}

func TestBuildText(t *testing.T) {
	b := New(Options{})
	el := &element.Element{
		Tag:    "h1",
		Text:   "  Hello&nbsp;&amp;   “world”  ",
		Bounds: box(10, 20, 300, 40),
		Styles: element.Styles{
			"fontSize":      "31.6px",
			"fontWeight":    "700",
			"color":         "rgb(255, 0, 0)",
			"textTransform": "uppercase",
		},
	}
	n, err := b.Build(context.Background(), el, 0)
	if err != nil {
		t.Fatal(err)
	}
	txt, ok := n.(*design.Text)
	if !ok {
		t.Fatalf("node = %T, want *design.Text", n)
	}
	if txt.Characters != `HELLO & "WORLD"` {
		t.Errorf("Characters = %q", txt.Characters)
	}
	if txt.Typography.Size != 32 || txt.Typography.Font.Style != "Bold" {
		t.Errorf("Typography = %+v", txt.Typography)
	}
	if len(txt.Fills) != 1 || txt.Fills[0].Color.R != 1 {
		t.Errorf("Fills = %+v", txt.Fills)
	}
	if txt.Bounds != (design.Rect{X: 10, Y: 20, Width: 300, Height: 40}) {
		t.Errorf("Bounds = %+v", txt.Bounds)
	}
}

type fallbackFonts struct{}

func (fallbackFonts) Load(_ context.Context, f style.Font) (style.Font, error) {
	if f.Family == "Inter" {
		return f, nil
	}
	return style.DefaultFont, ferrors.New(ferrors.ErrCodeFontUnavailable, "missing")
}

func TestBuildFontFallback(t *testing.T) {
	b := New(Options{Fonts: fallbackFonts{}})
	el := &element.Element{Tag: "p", Text: "x", Bounds: box(0, 0, 10, 10), Styles: element.Styles{"fontFamily": "Papyrus", "fontWeight": "900"}}
	n, err := b.Build(context.Background(), el, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got := n.(*design.Text).Typography.Font; got != style.DefaultFont {
		t.Errorf("font = %+v, want default", got)
	}
}

func TestBuildZOrder(t *testing.T) {
	b := New(Options{})
	el := &element.Element{
		Tag:    "div",
		Bounds: box(0, 0, 100, 100),
		Children: []*element.Element{
			{ID: "top", Tag: "span", Text: "a", Bounds: box(0, 0, 10, 10), ZIndex: zi(2)},
			{ID: "first", Tag: "span", Text: "b", Bounds: box(0, 0, 10, 10)},
			{ID: "under", Tag: "span", Text: "c", Bounds: box(0, 0, 10, 10), Styles: element.Styles{"zIndex": "-1"}},
			{ID: "second", Tag: "span", Text: "d", Bounds: box(0, 0, 10, 10)},
		},
	}
	n, err := b.Build(context.Background(), el, 0)
	if err != nil {
		t.Fatal(err)
	}
	f, ok := n.(*design.Frame)
	if !ok {
		t.Fatalf("node = %T, want frame (depth 0 is never wrapped)", n)
	}
	want := []string{"under", "first", "second", "top"}
	for i, c := range f.Children() {
		if c.Common().Name != want[i] {
			t.Errorf("child %d = %s, want %s", i, c.Common().Name, want[i])
		}
	}
	if err := design.Validate(f); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestBuildExplicitGroup(t *testing.T) {
	b := New(Options{})
	kids := []*element.Element{
		{Tag: "span", Text: "a", Bounds: box(10, 10, 10, 10)},
		{Tag: "span", Text: "b", Bounds: box(30, 10, 10, 10)},
		{Tag: "span", Text: "c", Bounds: box(50, 10, 100, 10)},
	}
	el := &element.Element{ClassName: "hero big", Tag: "section", Bounds: box(0, 0, 120, 50), Children: kids}

	n, err := b.Build(context.Background(), el, 1)
	if err != nil {
		t.Fatal(err)
	}
	g, ok := n.(*design.Group)
	if !ok || g.Implicit {
		t.Fatalf("node = %T (%+v), want explicit group", n, n)
	}
	if g.Name != "hero Group" {
		t.Errorf("Name = %q", g.Name)
	}
	ch := g.Children()
	if len(ch) != 4 || ch[0].Kind() != design.KindFrame {
		t.Fatalf("children = %d, first %v", len(ch), ch[0].Kind())
	}
	if g.Bounds != (design.Rect{X: 0, Y: 0, Width: 150, Height: 50}) {
		t.Errorf("group bounds = %+v", g.Bounds)
	}
}

func TestBuildImages(t *testing.T) {
	res := fakeResolver{"https://img/ok.png": "h-ok", "https://img/bg.png": "h-bg"}
	b := New(Options{Assets: res})
	ctx := context.Background()

	tests := []struct {
		name      string
		el        *element.Element
		wantMode  style.ScaleMode
		wantHash  string
		wantCount int
	}{
		{"img src fits", &element.Element{Tag: "img", Src: "https://img/ok.png", Bounds: box(0, 0, 50, 50)}, style.ScaleFit, "h-ok", 1},
		{"background cover fills", &element.Element{Tag: "figure", Bounds: box(0, 0, 50, 50), Styles: element.Styles{
			"backgroundImage": `url("https://img/bg.png")`, "backgroundSize": "cover", "backgroundColor": "#fff",
		}}, style.ScaleFill, "h-bg", 2},
		{"extractor contain fits", decodeElement(t, `{"tagName":"FIGURE","bounds":{"x":0,"y":0,"width":50,"height":50},
			"styles":{"backgroundImage":"https://img/bg.png","backgroundProperties":{"size":"contain","position":"center center"}}}`),
			style.ScaleFit, "h-bg", 1},
		{"extractor explicit size crops", decodeElement(t, `{"tagName":"FIGURE","bounds":{"x":0,"y":0,"width":50,"height":50},
			"styles":{"backgroundImage":"https://img/bg.png","backgroundProperties":{"size":"120px 80px","position":"left top"}}}`),
			style.ScaleCrop, "h-bg", 1},
		{"gradient and image", &element.Element{Tag: "img", Src: "https://img/ok.png", Bounds: box(0, 0, 50, 50), Styles: element.Styles{
			"backgroundImage": "linear-gradient(red, blue)",
		}}, style.ScaleFit, "h-ok", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := b.Build(ctx, tt.el, 0)
			if err != nil {
				t.Fatal(err)
			}
			s, ok := n.(*design.Shape)
			if !ok {
				t.Fatalf("node = %T", n)
			}
			if len(s.Fills) != tt.wantCount {
				t.Fatalf("fills = %+v", s.Fills)
			}
			last := s.Fills[len(s.Fills)-1]
			if last.Type != style.PaintImage || last.ScaleMode != tt.wantMode || last.ImageHash != tt.wantHash {
				t.Errorf("image fill = %+v", last)
			}
		})
	}
}

func TestBuildPlaceholder(t *testing.T) {
	b := New(Options{Assets: fakeResolver{}})
	el := &element.Element{Tag: "img", Src: "https://img/missing.png", Bounds: box(100, 100, 200, 100)}

	n, err := b.Build(context.Background(), el, 0)
	if err != nil {
		t.Fatalf("image failure must not fail the element: %v", err)
	}
	g, ok := n.(*design.Group)
	if !ok || !g.Implicit {
		t.Fatalf("node = %T, want implicit group", n)
	}
	ch := g.Children()
	if len(ch) != 2 {
		t.Fatalf("children = %d, want shape and label", len(ch))
	}
	shape, label := ch[0].(*design.Shape), ch[1].(*design.Text)
	if !shape.Placeholder || shape.Fills[0].Color.R != 0.95 {
		t.Errorf("shape = %+v", shape)
	}
	if label.Characters != PlaceholderText {
		t.Errorf("label = %q", label.Characters)
	}
	if want := (design.Rect{X: 140, Y: 142, Width: 120, Height: 16}); label.Bounds != want {
		t.Errorf("label bounds = %+v, want %+v", label.Bounds, want)
	}
	if st := b.Stats(); st.ImagesFailed != 1 || st.ImagesOK != 0 {
		t.Errorf("Stats = %+v", st)
	}
}

func TestBuildIsolatesChildFailures(t *testing.T) {
	b := New(Options{Assets: fakeResolver{}})
	el := &element.Element{
		Tag:    "div",
		Bounds: box(0, 0, 100, 100),
		Children: []*element.Element{
			{Tag: "img", Src: "panic", Bounds: box(0, 0, 10, 10)},
			{Tag: "p", Text: "no bounds"},
			{Tag: "p", Text: "ok", Bounds: box(0, 0, 10, 10)},
			nil,
		},
	}
	n, err := b.Build(context.Background(), el, 0)
	if err != nil {
		t.Fatal(err)
	}
	f := n.(*design.Frame)
	if len(f.Children()) != 1 || f.Children()[0].Common().Name != "ok" {
		t.Errorf("children = %d", len(f.Children()))
	}
	if st := b.Stats(); st.ChildErrors != 3 {
		t.Errorf("ChildErrors = %d, want 3", st.ChildErrors)
	}
}

func TestBuildCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{}).Build(ctx, &element.Element{Tag: "div", Bounds: box(0, 0, 5, 5)}, 0)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestBuildLeafWithChildren(t *testing.T) {
	b := New(Options{})
	el := &element.Element{
		Tag:    "a",
		Text:   "Read more",
		Bounds: box(0, 0, 100, 20),
		Children: []*element.Element{
			{Tag: "span", Text: "icon", Bounds: box(90, 0, 10, 20)},
		},
	}
	n, err := b.Build(context.Background(), el, 2)
	if err != nil {
		t.Fatal(err)
	}
	g, ok := n.(*design.Group)
	if !ok || !g.Implicit || len(g.Children()) != 2 {
		t.Fatalf("node = %T, want implicit group with 2 children", n)
	}
	if g.Children()[0].Kind() != design.KindText || g.Children()[0].Common().Name != "Read more" {
		t.Errorf("wrapped node should sort first, got %s", g.Children()[0].Common().Name)
	}
}
