package snapshot

import (
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
)

// Height hints for the preview stylesheet, in CSS pixels.
const (
	pagePadding   = 48
	headerHeight  = 48
	descHeight    = 28
	cardChrome    = 32 // card padding, top and bottom
	cardHeader    = 28
	tableHeadRow  = 40
	tableRow      = 37
	listItem      = 28
	unknownHeight = 64
	maxDepth      = 64
)

// estimateHeight approximates the rendered height of d, so the
// foreignObject is tall enough for the whole page. Grid rows take the height
// of their tallest cell.
func estimateHeight(reg *registry.Registry, d *ir.Dashboard) float64 {
	h := float64(pagePadding + headerHeight)
	if d.Description != "" {
		h += descHeight
	}
	cols := d.Layout.EffectiveColumns()
	if d.Layout.Mode == ir.LayoutStack {
		cols = 1
	}
	return h + stackHeight(reg, d.Components, cols, float64(max(d.Layout.Gap, 0)), 0)
}

// stackHeight lays nodes out in rows of cols cells.
func stackHeight(reg *registry.Registry, nodes []*ir.Node, cols int, gap float64, depth int) float64 {
	if len(nodes) == 0 {
		return 0
	}
	cols = max(cols, 1)
	var total float64
	rows := 0
	for i := 0; i < len(nodes); i += cols {
		var row float64
		for _, n := range nodes[i:min(i+cols, len(nodes))] {
			row = max(row, nodeHeight(reg, n, depth))
		}
		total += row
		rows++
	}
	return total + gap*float64(rows-1)
}

func nodeHeight(reg *registry.Registry, n *ir.Node, depth int) float64 {
	if n == nil || depth > maxDepth {
		return unknownHeight
	}
	def, ok := reg.Lookup(n.Type)
	if !ok {
		return unknownHeight
	}
	switch def.Kind {
	case registry.KindTable:
		rows := len(n.Props.Rows("rows"))
		return max(def.Size.H, cardChrome+titleHeight(n)+tableHeadRow+tableRow*float64(rows))
	case registry.KindList:
		items, _ := n.Props.Get("items")
		arr, _ := items.([]any)
		return max(def.Size.H, cardChrome+titleHeight(n)+listItem*float64(len(arr)))
	case registry.KindContainer:
		return containerHeight(reg, n, depth)
	}
	return def.Size.H
}

func containerHeight(reg *registry.Registry, n *ir.Node, depth int) float64 {
	gap := max(n.Props.Float("gap", 16), 0)
	cols := 1
	switch {
	case n.Props.Has("columns"):
		cols = min(max(int(n.Props.Float("columns", 2)), 1), 12)
	case n.Props.String("direction", "") == "row":
		cols = len(n.Children)
	}
	return cardChrome + titleHeight(n) + stackHeight(reg, n.Children, cols, gap, depth+1)
}

func titleHeight(n *ir.Node) float64 {
	if n.Props.String("title", "") == "" {
		return 0
	}
	return cardHeader
}
