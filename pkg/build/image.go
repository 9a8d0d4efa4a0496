package build

import (
	"context"
	"math"
	"slices"

	"github.com/matzehuels/framecast/pkg/design"
	"github.com/matzehuels/framecast/pkg/element"
	ferrors "github.com/matzehuels/framecast/pkg/errors"
	"github.com/matzehuels/framecast/pkg/style"
)

// Placeholder geometry and colors for images that fail to resolve.
const (
	PlaceholderText   = "Image failed to load"
	placeholderWidth  = 120
	placeholderHeight = 16
	placeholderSize   = 12
)

var (
	placeholderFill = style.Color{R: 0.95, G: 0.95, B: 0.95, A: 1}
	placeholderInk  = style.Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
)

// image applies gradient and image fills to s. When the image cannot be
// resolved, s gets a placeholder fill and the returned label should be
// shown over it.
func (b *Builder) image(ctx context.Context, el *element.Element, st *style.Style, s *design.Shape) *design.Text {
	if st.Gradient != nil {
		s.Fills = append(slices.Clone(s.Fills), style.GradientPaint(st.Gradient))
	}

	var (
		url       string
		mode      style.ScaleMode
		transform *style.Matrix
	)
	switch {
	case el.Src != "":
		url, mode = el.Src, style.ScaleFit
	case st.BackgroundURL != "":
		url, mode, transform = st.BackgroundURL, st.BackgroundMode, st.BackgroundTransform
	default:
		return nil
	}
	s.ImageURL = url
	if b.assets == nil {
		return nil
	}

	rec, err := b.assets.Resolve(ctx, url)
	if err != nil {
		b.imagesFailed.Add(1)
		if ferrors.IsAsset(err) {
			b.logger.Debug("image placeholder", "url", url, "err", err)
		} else {
			b.logger.Warn("image placeholder", "url", url, "err", err)
		}
		s.Placeholder = true
		s.Fills = []style.Paint{style.Solid(placeholderFill)}
		return b.placeholderLabel(ctx, s.Bounds)
	}
	b.imagesOK.Add(1)
	s.Fills = append(slices.Clone(s.Fills), style.ImagePaint(rec.Handle, mode, transform))
	return nil
}

func (b *Builder) placeholderLabel(ctx context.Context, on design.Rect) *design.Text {
	rect := design.Rect{
		X:      on.X + (on.Width-placeholderWidth)/2,
		Y:      on.Y + (on.Height-placeholderHeight)/2,
		Width:  placeholderWidth,
		Height: placeholderHeight,
	}
	t := design.NewText("Placeholder", rect, PlaceholderText)
	t.Typography = style.Typography{
		Font:       b.loadFont(ctx, style.DefaultFont),
		Size:       placeholderSize,
		LineHeight: style.Auto,
		Align:      style.AlignCenter,
		Decoration: style.DecorationNone,
	}
	t.Fills = []style.Paint{style.Solid(placeholderInk)}
	t.Order = math.MaxInt32
	b.created.Add(1)
	return t
}
