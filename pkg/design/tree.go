package design

import (
	"fmt"
	"math"
)

// Walk visits n and its descendants depth-first in paint order.
func Walk(n Node, fn func(n Node, depth int)) {
	var visit func(n Node, depth int)
	visit = func(n Node, depth int) {
		fn(n, depth)
		if c, ok := n.(Container); ok {
			for _, child := range c.Children() {
				visit(child, depth+1)
			}
		}
	}
	visit(n, 0)
}

// Flatten returns n and every descendant in depth-first order.
func Flatten(n Node) []Node {
	var out []Node
	Walk(n, func(n Node, _ int) { out = append(out, n) })
	return out
}

// Count returns the number of nodes in the tree rooted at n.
func Count(n Node) int {
	c := 0
	Walk(n, func(Node, int) { c++ })
	return c
}

// UnionBounds returns the smallest rectangle covering every node.
// An empty slice yields the zero Rect.
func UnionBounds(nodes []Node) Rect {
	rects := make([]Rect, len(nodes))
	for i, n := range nodes {
		rects[i] = n.Common().Bounds
	}
	return UnionRects(rects)
}

// UnionRects returns the smallest rectangle covering every rect.
func UnionRects(rects []Rect) Rect {
	if len(rects) == 0 {
		return Rect{}
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, b := range rects {
		minX = math.Min(minX, b.X)
		minY = math.Min(minY, b.Y)
		maxX = math.Max(maxX, b.Right())
		maxY = math.Max(maxY, b.Bottom())
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// Validate checks the structural invariants of the tree rooted at n:
// every child's parent link points at its holder, and siblings are
// sorted by (Z, Order). Attach already rules out cycles.
func Validate(n Node) error {
	var err error
	Walk(n, func(node Node, _ int) {
		if err != nil {
			return
		}
		c, ok := node.(Container)
		if !ok {
			return
		}
		kids := c.Children()
		for i, child := range kids {
			if Parent(child) != c {
				err = fmt.Errorf("%s in %s: %w", child.Common().ID, node.Common().ID, ErrBrokenParent)
				return
			}
			if i > 0 && compareZ(kids[i-1], child) > 0 {
				err = fmt.Errorf("%s: %w", node.Common().Name, ErrUnsorted)
				return
			}
		}
	})
	return err
}
