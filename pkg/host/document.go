package host

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/matzehuels/framecast/pkg/design"
	"github.com/matzehuels/framecast/pkg/style"
)

var (
	// ErrNotContainer is returned when appending to a text or shape node.
	ErrNotContainer = errors.New("node cannot hold children")

	// ErrCycle is returned when a node would be moved under itself.
	ErrCycle = errors.New("node cannot be moved under its own descendant")
)

// DocNode is one node of a [Document].
type DocNode struct {
	ID           Handle            `json:"id"`
	Type         design.Kind       `json:"type"`
	Name         string            `json:"name"`
	X            float64           `json:"x"`
	Y            float64           `json:"y"`
	Width        float64           `json:"width"`
	Height       float64           `json:"height"`
	Opacity      float64           `json:"opacity"`
	CornerRadius float64           `json:"cornerRadius,omitempty"`
	Fills        []style.Paint     `json:"fills,omitempty"`
	Strokes      []style.Stroke    `json:"strokes,omitempty"`
	Effects      []style.Effect    `json:"effects,omitempty"`
	Layout       *style.AutoLayout `json:"layout,omitempty"`
	Characters   string            `json:"characters,omitempty"`
	Typography   *style.Typography `json:"typography,omitempty"`
	Children     []*DocNode        `json:"children,omitempty"`

	parent *DocNode
}

// Parent returns the node's parent, or nil for roots.
func (n *DocNode) Parent() *DocNode { return n.parent }

func (n *DocNode) container() bool {
	return n.Type == design.KindFrame || n.Type == design.KindGroup
}

// Document is an in-memory [Host]. It is safe for concurrent use.
type Document struct {
	Name  string       `json:"name"`
	Roots []*DocNode   `json:"roots"`
	Fonts []style.Font `json:"fonts,omitempty"`

	mu        sync.Mutex
	nodes     map[Handle]*DocNode
	seq       int
	available func(style.Font) bool
}

// DocumentOption configures a [Document].
type DocumentOption func(*Document)

// WithFontFilter limits which fonts [Document.LoadTypography] accepts.
func WithFontFilter(available func(style.Font) bool) DocumentOption {
	return func(d *Document) { d.available = available }
}

// NewDocument returns an empty document.
func NewDocument(name string, opts ...DocumentOption) *Document {
	d := &Document{Name: name, nodes: make(map[Handle]*DocNode)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Document) node(h Handle) (*DocNode, error) {
	n, ok := d.nodes[h]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownHandle, h)
	}
	return n, nil
}

func (d *Document) update(h Handle, fn func(*DocNode)) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, err := d.node(h)
	if err != nil {
		return err
	}
	fn(n)
	return nil
}

// Node returns the node for h.
func (d *Document) Node(h Handle) (*DocNode, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, ok := d.nodes[h]
	return n, ok
}

// Len returns the number of nodes.
func (d *Document) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.nodes)
}

// CreateNode adds a root-level node of the given kind.
func (d *Document) CreateNode(kind design.Kind) (Handle, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.seq++
	n := &DocNode{ID: Handle(fmt.Sprintf("1:%d", d.seq)), Type: kind, Opacity: 1}
	d.nodes[n.ID] = n
	d.Roots = append(d.Roots, n)
	return n.ID, nil
}

func (d *Document) SetName(h Handle, name string) error {
	return d.update(h, func(n *DocNode) { n.Name = name })
}

func (d *Document) Resize(h Handle, width, height float64) error {
	return d.update(h, func(n *DocNode) { n.Width, n.Height = width, height })
}

func (d *Document) SetPosition(h Handle, x, y float64) error {
	return d.update(h, func(n *DocNode) { n.X, n.Y = x, y })
}

func (d *Document) SetFills(h Handle, fills []style.Paint) error {
	return d.update(h, func(n *DocNode) { n.Fills = slices.Clone(fills) })
}

func (d *Document) SetStrokes(h Handle, strokes []style.Stroke) error {
	return d.update(h, func(n *DocNode) { n.Strokes = slices.Clone(strokes) })
}

func (d *Document) SetEffects(h Handle, effects []style.Effect) error {
	return d.update(h, func(n *DocNode) { n.Effects = slices.Clone(effects) })
}

func (d *Document) SetOpacity(h Handle, opacity float64) error {
	return d.update(h, func(n *DocNode) { n.Opacity = opacity })
}

func (d *Document) SetCornerRadius(h Handle, radius float64) error {
	return d.update(h, func(n *DocNode) { n.CornerRadius = radius })
}

func (d *Document) SetLayout(h Handle, layout style.AutoLayout) error {
	return d.update(h, func(n *DocNode) { n.Layout = &layout })
}

// SetText sets the characters of a text node. The font must have been
// loaded.
func (d *Document) SetText(h Handle, characters string, typography style.Typography) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	n, err := d.node(h)
	if err != nil {
		return err
	}
	if n.Type != design.KindText {
		return fmt.Errorf("set text on %s node %s", n.Type, h)
	}
	if !slices.Contains(d.Fonts, typography.Font) {
		return fmt.Errorf("font %s %s not loaded", typography.Font.Family, typography.Font.Style)
	}
	n.Characters = characters
	n.Typography = &typography
	return nil
}

// AppendChild moves child to the end of parent's children.
func (d *Document) AppendChild(parent, child Handle) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	p, err := d.node(parent)
	if err != nil {
		return err
	}
	c, err := d.node(child)
	if err != nil {
		return err
	}
	if !p.container() {
		return fmt.Errorf("%w: %s", ErrNotContainer, p.Type)
	}
	for a := p; a != nil; a = a.parent {
		if a == c {
			return ErrCycle
		}
	}
	d.unlink(c)
	c.parent = p
	p.Children = append(p.Children, c)
	return nil
}

// GroupNodes wraps children in a new group placed where the first child
// was. The group covers the union of the children's boxes.
func (d *Document) GroupNodes(children []Handle, parent Handle) (Handle, error) {
	if len(children) == 0 {
		return "", errors.New("group needs at least one node")
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	var p *DocNode
	if parent != "" {
		var err error
		if p, err = d.node(parent); err != nil {
			return "", err
		}
		if !p.container() {
			return "", fmt.Errorf("%w: %s", ErrNotContainer, p.Type)
		}
	}
	kids := make([]*DocNode, 0, len(children))
	for _, h := range children {
		c, err := d.node(h)
		if err != nil {
			return "", err
		}
		kids = append(kids, c)
	}

	d.seq++
	g := &DocNode{ID: Handle(fmt.Sprintf("1:%d", d.seq)), Type: design.KindGroup, Opacity: 1, parent: p}
	d.nodes[g.ID] = g

	siblings := &d.Roots
	if p != nil {
		siblings = &p.Children
	}
	at := slices.Index(*siblings, kids[0])
	if at < 0 {
		at = len(*siblings)
	}
	*siblings = slices.Insert(*siblings, at, g)

	for _, c := range kids {
		d.unlink(c)
		c.parent = g
		g.Children = append(g.Children, c)
	}
	g.X, g.Y, g.Width, g.Height = unionBox(kids)
	return g.ID, nil
}

func (d *Document) unlink(n *DocNode) {
	if n.parent == nil {
		d.Roots = slices.DeleteFunc(d.Roots, func(r *DocNode) bool { return r == n })
		return
	}
	n.parent.Children = slices.DeleteFunc(n.parent.Children, func(c *DocNode) bool { return c == n })
	n.parent = nil
}

func unionBox(nodes []*DocNode) (x, y, w, h float64) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, n := range nodes {
		minX = math.Min(minX, n.X)
		minY = math.Min(minY, n.Y)
		maxX = math.Max(maxX, n.X+n.Width)
		maxY = math.Max(maxY, n.Y+n.Height)
	}
	return minX, minY, maxX - minX, maxY - minY
}

// LoadTypography records font as loaded unless the font filter rejects it.
func (d *Document) LoadTypography(ctx context.Context, font style.Font) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.available != nil && !d.available(font) {
		return fmt.Errorf("font %s %s is not installed", font.Family, font.Style)
	}
	if !slices.Contains(d.Fonts, font) {
		d.Fonts = append(d.Fonts, font)
	}
	return nil
}

// Walk visits every node depth-first.
func (d *Document) Walk(fn func(n *DocNode, depth int)) {
	var visit func(n *DocNode, depth int)
	visit = func(n *DocNode, depth int) {
		fn(n, depth)
		for _, c := range n.Children {
			visit(c, depth+1)
		}
	}
	for _, r := range d.Roots {
		visit(r, 0)
	}
}

// UnmarshalJSON decodes a document and rebuilds its handle index.
func (d *Document) UnmarshalJSON(data []byte) error {
	type wire Document
	var w wire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	d.Name, d.Roots, d.Fonts = w.Name, w.Roots, w.Fonts
	d.nodes = make(map[Handle]*DocNode)
	d.seq = 0
	var index func(n, parent *DocNode)
	index = func(n, parent *DocNode) {
		n.parent = parent
		d.nodes[n.ID] = n
		d.seq++
		for _, c := range n.Children {
			index(c, n)
		}
	}
	for _, r := range d.Roots {
		index(r, nil)
	}
	return nil
}

var _ Host = (*Document)(nil)
