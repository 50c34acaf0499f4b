package preview

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
)

const (
	attrNodeID   = "data-node-id"
	attrNodeType = "data-node-type"

	// maxDepth bounds recursion on trees that were never validated.
	maxDepth = 64
)

type handler func(r *Renderer, n *ir.Node, def registry.Definition, depth int) *Element

// Renderer turns IR nodes into visual element trees. It holds no mutable
// state, so a single Renderer may be shared and called repeatedly; the same
// input always yields an identical tree.
type Renderer struct {
	reg      *registry.Registry
	handlers map[registry.Kind]handler
}

// New creates a renderer over reg.
func New(reg *registry.Registry) *Renderer {
	return &Renderer{
		reg: reg,
		handlers: map[registry.Kind]handler{
			registry.KindStatTile:  renderStatTile,
			registry.KindMiniTile:  renderMiniTile,
			registry.KindAlertTile: renderAlertTile,
			registry.KindLine:      renderLineChart,
			registry.KindArea:      renderAreaChart,
			registry.KindBar:       renderBarChart,
			registry.KindPie:       renderPieChart,
			registry.KindTable:     renderTable,
			registry.KindList:      renderList,
			registry.KindContainer: renderContainer,
			registry.KindHeading:   renderHeading,
			registry.KindText:      renderText,
			registry.KindBadge:     renderBadge,
			registry.KindButton:    renderButton,
			registry.KindInput:     renderInput,
			registry.KindSelect:    renderSelect,
			registry.KindDivider:   renderDivider,
		},
	}
}

// Render renders one node and, for container types, its children.
// Unknown types and nodes whose handler panics render as placeholders; they
// never abort the rest of the tree.
func (r *Renderer) Render(n *ir.Node) *Element {
	return r.render(n, 0)
}

// RenderAll renders a node list in order.
func (r *Renderer) RenderAll(nodes []*ir.Node) []*Element {
	return r.renderList(nodes, 0)
}

// RenderDashboard renders the dashboard header and its top-level components
// inside a layout wrapper that follows the layout mode.
func (r *Renderer) RenderDashboard(d *ir.Dashboard) *Element {
	root := El("div", "class", "dashboard")
	header := El("header", "class", "dashboard-header").Add(TextEl("h1", d.Title, "class", "dashboard-title"))
	if d.Description != "" {
		header.Add(TextEl("p", d.Description, "class", "dashboard-description"))
	}
	root.Add(header)

	body := El("div", "class", "layout layout-"+string(layoutMode(d.Layout)), "style", layoutStyle(d.Layout))
	body.Add(r.RenderAll(d.Components)...)
	return root.Add(body)
}

func (r *Renderer) render(n *ir.Node, depth int) (out *Element) {
	if n == nil {
		return placeholder("", "", "Empty component")
	}
	if depth > maxDepth {
		return placeholder(n.ID, n.Type, "Component nested too deeply")
	}
	def, ok := r.reg.Lookup(n.Type)
	if !ok {
		return placeholder(n.ID, n.Type, "Unknown component: "+n.Type)
	}
	h, ok := r.handlers[def.Kind]
	if !ok {
		return placeholder(n.ID, n.Type, "Unsupported component: "+n.Type)
	}

	defer func() {
		if rec := recover(); rec != nil {
			out = placeholder(n.ID, n.Type, fmt.Sprintf("Failed to render %s: %v", n.Type, rec))
		}
	}()

	el := h(r, n, def, depth)
	el.Attrs = append([]Attr{{attrNodeID, n.ID}, {attrNodeType, n.Type}}, el.Attrs...)
	return el
}

func (r *Renderer) renderList(nodes []*ir.Node, depth int) []*Element {
	out := make([]*Element, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, r.render(n, depth))
	}
	return out
}

func placeholder(id, typ, msg string) *Element {
	el := El("div", "class", "unknown-component", "role", "alert")
	if id != "" {
		el.Attrs = append([]Attr{{attrNodeID, id}, {attrNodeType, typ}}, el.Attrs...)
	}
	return el.Add(TextEl("span", msg))
}

func layoutMode(l ir.Layout) ir.LayoutMode {
	if l.Mode.Valid() {
		return l.Mode
	}
	return ir.LayoutGrid
}

func layoutStyle(l ir.Layout) string {
	gap := strconv.Itoa(max(l.Gap, 0)) + "px"
	switch layoutMode(l) {
	case ir.LayoutFlex:
		return "display:flex;flex-wrap:wrap;gap:" + gap
	case ir.LayoutStack:
		return "display:flex;flex-direction:column;gap:" + gap
	}
	return fmt.Sprintf("display:grid;grid-template-columns:repeat(%d,minmax(0,1fr));gap:%s", l.EffectiveColumns(), gap)
}
