package treeviz

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/framecast/pkg/design"
	"github.com/matzehuels/framecast/pkg/host"
	"github.com/matzehuels/framecast/pkg/style"
)

// Options configures diagram generation.
type Options struct {
	// Detailed adds size and first fill color to each label.
	// When false, only the node name and kind are shown.
	Detailed bool

	// MaxDepth stops descending below this depth. Zero draws everything.
	MaxDepth int
}

// kindColors are the box fills per node kind.
var kindColors = map[design.Kind]string{
	design.KindFrame: "#dbeafe",
	design.KindGroup: "#f3f4f6",
	design.KindText:  "#fef9c3",
	design.KindShape: "#dcfce7",
}

type vertex struct {
	id       string
	name     string
	kind     design.Kind
	w, h     float64
	fills    []style.Paint
	depth    int
	parentID string
	implicit bool
}

// ToDOT converts a materialized document to Graphviz DOT format.
func ToDOT(doc *host.Document, opts Options) string {
	var vs []vertex
	doc.Walk(func(n *host.DocNode, depth int) {
		v := vertex{
			id: string(n.ID), name: n.Name, kind: n.Type,
			w: n.Width, h: n.Height, fills: n.Fills, depth: depth,
		}
		if p := n.Parent(); p != nil {
			v.parentID = string(p.ID)
		}
		vs = append(vs, v)
	})
	return writeDOT(doc.Name, vs, opts)
}

// TreeDOT converts a design tree to Graphviz DOT format.
func TreeDOT(root design.Node, opts Options) string {
	var vs []vertex
	design.Walk(root, func(n design.Node, depth int) {
		c := n.Common()
		v := vertex{
			id: c.ID, name: c.Name, kind: n.Kind(),
			w: c.Bounds.Width, h: c.Bounds.Height, fills: c.Fills, depth: depth,
		}
		if p := design.Parent(n); p != nil {
			v.parentID = p.Common().ID
		}
		if g, ok := n.(*design.Group); ok {
			v.implicit = g.Implicit
		}
		vs = append(vs, v)
	})
	return writeDOT(root.Common().Name, vs, opts)
}

func writeDOT(title string, vs []vertex, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	fmt.Fprintf(&buf, "  label=%q;\n", title)
	buf.WriteString("  labelloc=t;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.4;\n")
	buf.WriteString("  nodesep=0.25;\n")
	buf.WriteString("\n")

	drawn := make(map[string]bool, len(vs))
	for _, v := range vs {
		if opts.MaxDepth > 0 && v.depth > opts.MaxDepth {
			continue
		}
		drawn[v.id] = true
		fmt.Fprintf(&buf, "  %q [%s];\n", v.id, strings.Join(fmtAttrs(v, opts.Detailed), ", "))
	}

	buf.WriteString("\n")
	for _, v := range vs {
		if v.parentID != "" && drawn[v.id] && drawn[v.parentID] {
			fmt.Fprintf(&buf, "  %q -> %q;\n", v.parentID, v.id)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(v vertex, detailed bool) string {
	name := v.name
	if name == "" {
		name = v.id
	}
	parts := []string{name, string(v.kind)}
	if detailed {
		parts = append(parts, fmt.Sprintf("%.0fx%.0f", v.w, v.h))
		if fill := firstFill(v.fills); fill != "" {
			parts = append(parts, fill)
		}
	}
	return strings.Join(parts, "\n")
}

func firstFill(fills []style.Paint) string {
	if len(fills) == 0 {
		return ""
	}
	p := fills[0]
	if p.Type == style.PaintSolid && p.Color != nil {
		return p.Color.Hex()
	}
	return strings.ToLower(string(p.Type))
}

func fmtAttrs(v vertex, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(v, detailed))}
	if c, ok := kindColors[v.kind]; ok {
		attrs = append(attrs, fmt.Sprintf("fillcolor=%q", c))
	}
	if v.implicit {
		attrs = append(attrs, "style=\"rounded,filled,dashed\"")
	}
	return attrs
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	out, err := render(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
