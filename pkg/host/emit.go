package host

import (
	"context"
	"fmt"

	"github.com/matzehuels/framecast/pkg/design"
)

// Emitted maps design node IDs to the handles the host assigned.
type Emitted struct {
	Root    Handle
	Handles map[string]Handle
}

// Emit materializes the tree rooted at root through h. A nil fonts cache
// creates one. Empty groups are skipped.
func Emit(ctx context.Context, h Host, root design.Node, fonts *FontCache) (*Emitted, error) {
	if fonts == nil {
		fonts = NewFontCache(h, nil)
	}
	e := &emitter{host: h, fonts: fonts, out: &Emitted{Handles: make(map[string]Handle)}}
	handle, err := e.emit(ctx, root, "", 0, 0)
	if err != nil {
		return nil, err
	}
	e.out.Root = handle
	return e.out, nil
}

type emitter struct {
	host  Host
	fonts *FontCache
	out   *Emitted
}

// emit creates n under parent. ox, oy is the page origin of the nearest
// frame ancestor.
func (e *emitter) emit(ctx context.Context, n design.Node, parent Handle, ox, oy float64) (Handle, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	b := n.Common()

	if g, ok := n.(*design.Group); ok {
		var kids []Handle
		for _, c := range g.Children() {
			k, err := e.emit(ctx, c, parent, ox, oy)
			if err != nil {
				return "", err
			}
			if k != "" {
				kids = append(kids, k)
			}
		}
		if len(kids) == 0 {
			return "", nil
		}
		handle, err := e.host.GroupNodes(kids, parent)
		if err != nil {
			return "", fmt.Errorf("group %s: %w", b.Name, err)
		}
		e.out.Handles[b.ID] = handle
		if err := e.host.SetName(handle, b.Name); err != nil {
			return "", err
		}
		if b.Opacity < 1 {
			if err := e.host.SetOpacity(handle, b.Opacity); err != nil {
				return "", err
			}
		}
		return handle, nil
	}

	handle, err := e.host.CreateNode(n.Kind())
	if err != nil {
		return "", fmt.Errorf("create %s: %w", b.Name, err)
	}
	e.out.Handles[b.ID] = handle

	if t, ok := n.(*design.Text); ok {
		typo := t.Typography
		typo.Font, _ = e.fonts.Load(ctx, typo.Font)
		if err := e.host.SetText(handle, t.Characters, typo); err != nil {
			return "", err
		}
	}
	if err := e.apply(handle, b, ox, oy); err != nil {
		return "", fmt.Errorf("style %s: %w", b.Name, err)
	}
	if parent != "" {
		if err := e.host.AppendChild(parent, handle); err != nil {
			return "", err
		}
	}

	if f, ok := n.(*design.Frame); ok {
		if f.Layout != nil {
			if err := e.host.SetLayout(handle, *f.Layout); err != nil {
				return "", err
			}
		}
		for _, c := range f.Children() {
			if _, err := e.emit(ctx, c, handle, b.Bounds.X, b.Bounds.Y); err != nil {
				return "", err
			}
		}
	}
	return handle, nil
}

func (e *emitter) apply(h Handle, b *design.Base, ox, oy float64) error {
	steps := []func() error{
		func() error { return e.host.SetName(h, b.Name) },
		func() error { return e.host.Resize(h, b.Bounds.Width, b.Bounds.Height) },
		func() error { return e.host.SetPosition(h, b.Bounds.X-ox, b.Bounds.Y-oy) },
		func() error { return e.host.SetFills(h, b.Fills) },
	}
	if len(b.Strokes) > 0 {
		steps = append(steps, func() error { return e.host.SetStrokes(h, b.Strokes) })
	}
	if len(b.Effects) > 0 {
		steps = append(steps, func() error { return e.host.SetEffects(h, b.Effects) })
	}
	if b.Opacity < 1 {
		steps = append(steps, func() error { return e.host.SetOpacity(h, b.Opacity) })
	}
	if b.CornerRadius > 0 {
		steps = append(steps, func() error { return e.host.SetCornerRadius(h, b.CornerRadius) })
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}
