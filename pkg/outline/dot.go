package outline

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
	"github.com/matzehuels/dashforge/pkg/snapshot"
)

// RootID is the DOT id of the dashboard node every top-level component hangs off.
const RootID = "__dashboard__"

// Options configures outline generation.
type Options struct {
	// Detailed adds each node's properties to its label.
	// When false, labels show the component name and id.
	Detailed bool
}

// ToDOT converts a dashboard tree to Graphviz DOT. Edges run from parent to
// child; siblings keep their document order. Unknown types are drawn dashed
// and grey, container types filled.
func ToDOT(d *ir.Dashboard, reg *registry.Registry, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	title := d.Title
	if title == "" {
		title = "Dashboard"
	}
	fmt.Fprintf(&buf, "  %q [label=%q, shape=folder, fillcolor=\"#e2e8f0\"];\n", RootID, title)

	var edges []string
	ir.Walk(d.Components, func(n *ir.Node, _ int) bool {
		def, known := reg.Lookup(n.Type)
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(fmtAttrs(n, def, known, opts.Detailed), ", "))
		for _, c := range n.Children {
			if c != nil {
				edges = append(edges, fmt.Sprintf("  %q -> %q;\n", n.ID, c.ID))
			}
		}
		return true
	})

	buf.WriteString("\n")
	for _, n := range d.Components {
		if n != nil {
			fmt.Fprintf(&buf, "  %q -> %q;\n", RootID, n.ID)
		}
	}
	for _, e := range edges {
		buf.WriteString(e)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *ir.Node, def registry.Definition, known, detailed bool) string {
	name := n.Type
	if known {
		name = def.Name
	}
	lines := []string{name, n.ID}
	if detailed {
		for k, v := range n.Props.All() {
			lines = append(lines, fmt.Sprintf("%s: %s", k, short(v)))
		}
	}
	return strings.Join(lines, "\n")
}

func fmtAttrs(n *ir.Node, def registry.Definition, known, detailed bool) []string {
	attrs := []string{fmt.Sprintf("label=%q", fmtLabel(n, def, known, detailed))}
	switch {
	case !known:
		attrs = append(attrs, "style=\"rounded,filled,dashed\"", "fillcolor=lightgrey", "fontcolor=black")
	case def.Container:
		attrs = append(attrs, "fillcolor=\"#dbeafe\"")
	}
	return attrs
}

func short(v any) string {
	var s string
	switch x := v.(type) {
	case string:
		s = x
	case []any:
		s = fmt.Sprintf("[%d items]", len(x))
	case ir.Props:
		s = fmt.Sprintf("{%d keys}", x.Len())
	default:
		s = fmt.Sprint(x)
	}
	if r := []rune(s); len(r) > 32 {
		s = string(r[:31]) + "…"
	}
	return s
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render outline")
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg tag with one sized in
// plain units so the outline scales like the other snapshots.
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}

// RenderPDF renders a DOT graph as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, dot string) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return snapshot.ToPDF(ctx, svg)
}

// RenderPNG renders a DOT graph as PNG via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, dot string, scale float64) ([]byte, error) {
	svg, err := RenderSVG(ctx, dot)
	if err != nil {
		return nil, err
	}
	return snapshot.ToPNG(ctx, svg, scale)
}
