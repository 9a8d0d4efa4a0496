// Package build turns extracted elements into design nodes.
//
// [Builder.Build] classifies an element, applies its parsed style, resolves
// images through an asset resolver and recurses into children in z-order.
// Errors and panics below the top level are logged and drop only the
// affected subtree.
package build

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"math"
	"slices"
	"sync/atomic"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/framecast/pkg/asset"
	"github.com/matzehuels/framecast/pkg/classify"
	"github.com/matzehuels/framecast/pkg/design"
	"github.com/matzehuels/framecast/pkg/element"
	ferrors "github.com/matzehuels/framecast/pkg/errors"
	"github.com/matzehuels/framecast/pkg/style"
)

// Resolver resolves an image URL. *asset.Pipeline implements it.
type Resolver interface {
	Resolve(ctx context.Context, url string) (*asset.Record, error)
}

// FontLoader makes a font available, returning the font actually usable.
// *host.FontCache implements it.
type FontLoader interface {
	Load(ctx context.Context, font style.Font) (style.Font, error)
}

// Options configures a [Builder]. Every field is optional.
type Options struct {
	// Assets resolves image sources. Nil leaves images unresolved: the
	// source is recorded on the shape but no fill is added.
	Assets Resolver
	// Fonts loads text fonts. Nil keeps the parsed font as is.
	Fonts  FontLoader
	Logger *log.Logger
}

// Stats counts what a builder did across all Build calls.
type Stats struct {
	Created      int64
	Skipped      int64
	ImagesOK     int64
	ImagesFailed int64
	ChildErrors  int64
}

// Builder builds design nodes. It is safe for concurrent use.
type Builder struct {
	assets Resolver
	fonts  FontLoader
	logger *log.Logger

	created      atomic.Int64
	skipped      atomic.Int64
	imagesOK     atomic.Int64
	imagesFailed atomic.Int64
	childErrors  atomic.Int64
}

// New returns a builder.
func New(opts Options) *Builder {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	return &Builder{assets: opts.Assets, fonts: opts.Fonts, logger: opts.Logger}
}

// Stats returns a snapshot of the counters.
func (b *Builder) Stats() Stats {
	return Stats{
		Created:      b.created.Load(),
		Skipped:      b.skipped.Load(),
		ImagesOK:     b.imagesOK.Load(),
		ImagesFailed: b.imagesFailed.Load(),
		ChildErrors:  b.childErrors.Load(),
	}
}

// Build returns the node for el and its descendants. It returns (nil, nil)
// when el's bounds are degenerate, and an INVALID_ELEMENT error when el
// has no bounds. The caller sets Order on the returned node.
func (b *Builder) Build(ctx context.Context, el *element.Element, depth int) (n design.Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			n, err = nil, ferrors.New(ferrors.ErrCodeInvalidElement, "build %s: %v", describe(el), r)
		}
	}()
	return b.build(ctx, el, depth)
}

func (b *Builder) build(ctx context.Context, el *element.Element, depth int) (design.Node, error) {
	if el == nil {
		return nil, ferrors.New(ferrors.ErrCodeInvalidElement, "nil element")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if el.Bounds == nil {
		return nil, ferrors.New(ferrors.ErrCodeInvalidElement, "%s has no bounds", describe(el))
	}
	if el.Bounds.Degenerate() {
		b.skipped.Add(1)
		return nil, nil
	}

	st := style.Parse(el.Styles)
	rect := design.Rect{X: el.Bounds.X, Y: el.Bounds.Y, Width: el.Bounds.Width, Height: el.Bounds.Height}
	name := NodeName(el)
	kind := classify.Classify(el)

	var (
		node  design.Node
		label *design.Text
	)
	switch kind {
	case design.KindText:
		node = b.text(ctx, el, st, name, rect)
	case design.KindFrame:
		f := design.NewFrame(name, rect)
		f.Fills = st.Fills
		if st.Gradient != nil {
			f.Fills = append(slices.Clone(f.Fills), style.GradientPaint(st.Gradient))
		}
		f.Layout = st.Layout
		node = f
	case design.KindGroup:
		g := design.NewGroup(name)
		g.Bounds = rect
		node = g
	default:
		s := design.NewShape(name, rect)
		s.Fills = st.Fills
		label = b.image(ctx, el, st, s)
		node = s
	}
	applyCommon(node, st)
	node.Common().Z = el.Z()
	b.created.Add(1)

	kids := b.children(ctx, el, depth)
	if label != nil {
		kids = append(kids, label)
	}

	var holder design.Container
	switch c, isContainer := node.(design.Container); {
	case depth > 0 && classify.IsContainerTag(el.Tag) && len(el.Children) > 2:
		holder = b.wrap(node, name+" Group", false)
	case !isContainer && len(kids) > 0:
		holder = b.wrap(node, name, true)
	case isContainer:
		holder = c
	default:
		return node, nil
	}

	for _, k := range kids {
		if err := design.Attach(holder, k); err != nil {
			return nil, ferrors.Wrap(ferrors.ErrCodeInternal, err, "attach child of %s", name)
		}
	}
	design.SortChildren(holder)
	if g, ok := holder.(*design.Group); ok && len(g.Children()) > 0 {
		design.FitToChildren(g)
	}
	return holder, nil
}

// wrap puts node in a new group that takes over its stacking position.
// Inside the group, node sorts below its former children.
func (b *Builder) wrap(node design.Node, name string, implicit bool) *design.Group {
	g := design.NewGroup(name)
	g.Implicit = implicit
	nb := node.Common()
	g.Z, g.Bounds = nb.Z, nb.Bounds
	nb.Z, nb.Order = 0, -1
	_ = design.Attach(g, node)
	b.created.Add(1)
	return g
}

// children builds el's children in (z, index) order, dropping the ones
// that fail.
func (b *Builder) children(ctx context.Context, el *element.Element, depth int) []design.Node {
	if len(el.Children) == 0 {
		return nil
	}
	idx := make([]int, len(el.Children))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(a, c int) int {
		return cmp.Compare(zOf(el.Children[a]), zOf(el.Children[c]))
	})

	out := make([]design.Node, 0, len(idx))
	for _, i := range idx {
		if n := b.child(ctx, el.Children[i], depth+1, i); n != nil {
			out = append(out, n)
		}
	}
	return out
}

func (b *Builder) child(ctx context.Context, el *element.Element, depth, order int) (n design.Node) {
	defer func() {
		if r := recover(); r != nil {
			b.childErrors.Add(1)
			b.logger.Warn("child element panicked", "element", describe(el), "panic", r)
			n = nil
		}
	}()
	n, err := b.build(ctx, el, depth)
	if err != nil {
		if ctx.Err() == nil {
			b.childErrors.Add(1)
			b.logger.Warn("skipping child element", "element", describe(el), "err", err)
		}
		return nil
	}
	if n != nil {
		n.Common().Order = order
	}
	return n
}

func zOf(el *element.Element) int {
	if el == nil {
		return 0
	}
	return el.Z()
}

func (b *Builder) text(ctx context.Context, el *element.Element, st *style.Style, name string, rect design.Rect) *design.Text {
	t := design.NewText(name, rect, CleanText(el.Text, st.Typography.Transform))
	typo := st.Typography
	typo.Size = math.Max(1, math.Round(typo.Size))
	typo.Font = b.loadFont(ctx, typo.Font)
	t.Typography = typo
	t.Fills = []style.Paint{style.Solid(st.TextColor)}
	return t
}

func (b *Builder) loadFont(ctx context.Context, font style.Font) style.Font {
	if b.fonts == nil {
		return font
	}
	got, err := b.fonts.Load(ctx, font)
	if err != nil {
		b.logger.Debug("font fallback", "family", font.Family, "style", font.Style, "err", err)
	}
	return got
}

func applyCommon(n design.Node, st *style.Style) {
	c := n.Common()
	if st.Stroke != nil {
		c.Strokes = []style.Stroke{*st.Stroke}
	}
	c.Effects = st.Effects
	if st.HasOpacity {
		c.Opacity = st.Opacity
	}
	if n.Kind() == design.KindFrame || n.Kind() == design.KindShape {
		c.CornerRadius = st.CornerRadius
	}
}

func describe(el *element.Element) string {
	if el == nil {
		return "<nil>"
	}
	if el.ID != "" {
		return fmt.Sprintf("<%s id=%q>", el.LowerTag(), el.ID)
	}
	return fmt.Sprintf("<%s>", el.LowerTag())
}
