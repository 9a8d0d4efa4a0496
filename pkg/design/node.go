package design

import (
	"cmp"
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/framecast/pkg/style"
)

var (
	// ErrHasParent is returned by [Attach] when the child already belongs
	// to a container.
	ErrHasParent = errors.New("node already has a parent")

	// ErrSelfAttach is returned by [Attach] when a node would contain
	// itself or one of its ancestors.
	ErrSelfAttach = errors.New("node cannot contain its own ancestor")

	// ErrUnsorted is returned by [Validate] when siblings are out of
	// (Z, Order) order.
	ErrUnsorted = errors.New("children not in z-order")

	// ErrBrokenParent is returned by [Validate] when a child's parent link
	// does not point at the container holding it.
	ErrBrokenParent = errors.New("parent link mismatch")
)

// Kind names a node variant.
type Kind string

const (
	KindText  Kind = "TEXT"
	KindFrame Kind = "FRAME"
	KindShape Kind = "RECTANGLE"
	KindGroup Kind = "GROUP"
)

// Rect is a pixel rectangle in page coordinates.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

// Base holds the attributes shared by every variant.
type Base struct {
	ID           string
	Name         string
	Bounds       Rect
	Fills        []style.Paint
	Strokes      []style.Stroke
	Effects      []style.Effect
	Opacity      float64
	CornerRadius float64

	// Z and Order are builder metadata for the z-order pass.
	Z     int
	Order int

	parent Container
}

func newBase(name string, bounds Rect) Base {
	return Base{
		ID:      uuid.NewString(),
		Name:    name,
		Bounds:  bounds,
		Opacity: 1,
	}
}

// Common returns the shared attributes.
func (b *Base) Common() *Base { return b }

func (b *Base) sealed() {}

// Node is a design node. The concrete type is one of [*Text], [*Frame],
// [*Shape] or [*Group].
type Node interface {
	Kind() Kind
	Common() *Base
	sealed()
}

// Container is a node that owns children: [*Frame] or [*Group].
type Container interface {
	Node
	Children() []Node
	list() *children
}

type children struct {
	items []Node
}

// Children returns the owned children in paint order.
func (c *children) Children() []Node { return c.items }

func (c *children) list() *children { return c }

// Text is a text run.
type Text struct {
	Base
	Characters string
	Typography style.Typography
}

// Frame is a styled container.
type Frame struct {
	Base
	Layout *style.AutoLayout
	children
}

// Shape is a leaf rectangle.
type Shape struct {
	Base
	// ImageURL is the source of an image fill, if any.
	ImageURL string
	// Placeholder is set when the image could not be resolved.
	Placeholder bool
}

// Group is a container whose bounds are the union of its children.
type Group struct {
	Base
	// Implicit marks groups introduced to give a leaf somewhere to put
	// children.
	Implicit bool
	children
}

func (*Text) Kind() Kind  { return KindText }
func (*Frame) Kind() Kind { return KindFrame }
func (*Shape) Kind() Kind { return KindShape }
func (*Group) Kind() Kind { return KindGroup }

// NewText returns a text node with a fresh ID.
func NewText(name string, bounds Rect, characters string) *Text {
	return &Text{Base: newBase(name, bounds), Characters: characters}
}

// NewFrame returns an empty frame with a fresh ID.
func NewFrame(name string, bounds Rect) *Frame {
	return &Frame{Base: newBase(name, bounds)}
}

// NewShape returns a shape with a fresh ID.
func NewShape(name string, bounds Rect) *Shape {
	return &Shape{Base: newBase(name, bounds)}
}

// NewGroup returns an empty group with a fresh ID.
func NewGroup(name string) *Group {
	return &Group{Base: newBase(name, Rect{})}
}

// Parent returns the container holding n, or nil.
func Parent(n Node) Container {
	return n.Common().parent
}

// Attach appends child to parent's children.
func Attach(parent Container, child Node) error {
	if child.Common().parent != nil {
		return ErrHasParent
	}
	for p := Node(parent); p != nil; p = Parent(p) {
		if p == child {
			return ErrSelfAttach
		}
	}
	child.Common().parent = parent
	l := parent.list()
	l.items = append(l.items, child)
	return nil
}

// Detach removes n from its parent. It is a no-op for roots.
func Detach(n Node) {
	p := Parent(n)
	if p == nil {
		return
	}
	l := p.list()
	l.items = slices.DeleteFunc(l.items, func(c Node) bool { return c == n })
	n.Common().parent = nil
}

// SortChildren orders c's children by ascending (Z, Order).
func SortChildren(c Container) {
	slices.SortStableFunc(c.list().items, compareZ)
}

func compareZ(a, b Node) int {
	ab, bb := a.Common(), b.Common()
	return cmp.Or(cmp.Compare(ab.Z, bb.Z), cmp.Compare(ab.Order, bb.Order))
}

// FitToChildren sets a group's bounds to the union of its children.
func FitToChildren(g *Group) {
	if len(g.items) > 0 {
		g.Bounds = UnionBounds(g.items)
	}
}
