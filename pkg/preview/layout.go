package preview

import (
	"strconv"
	"strings"

	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
)

// renderContainer serves every container type. The props a definition
// carries decide the arrangement: columns means grid, direction means flex,
// and a title adds a card header.
func renderContainer(r *Renderer, n *ir.Node, def registry.Definition, depth int) *Element {
	gap := strconv.Itoa(int(max(n.Props.Float("gap", 16), 0))) + "px"

	var style string
	switch {
	case n.Props.Has("columns"):
		cols := min(max(int(n.Props.Float("columns", 2)), 1), 12)
		style = "display:grid;grid-template-columns:repeat(" + strconv.Itoa(cols) + ",minmax(0,1fr));gap:" + gap
	case n.Props.Has("direction"):
		dir := oneOf(n.Props.String("direction", ""), "column", "column", "row")
		style = "display:flex;flex-direction:" + dir + ";gap:" + gap
	default:
		style = "display:flex;flex-direction:column;gap:" + gap
	}

	el := El("div", "class", "container container-"+strings.ToLower(def.CodeName))
	if n.Props.Has("title") {
		el.Attrs[0].Val += " card"
		el.Add(El("div", "class", "card-header").Add(TextEl("span", n.Props.String("title", ""), "class", "card-title")))
	}
	body := El("div", "class", "container-body", "style", style)
	body.Add(r.renderList(n.Children, depth+1)...)
	return el.Add(body)
}

func renderHeading(_ *Renderer, n *ir.Node, _ registry.Definition, _ int) *Element {
	level := oneOf(n.Props.String("level", ""), "h2", "h1", "h2", "h3")
	return TextEl(level, n.Props.String("text", ""), "class", "heading")
}

func renderText(_ *Renderer, n *ir.Node, _ registry.Definition, _ int) *Element {
	class := "text"
	if n.Props.Bool("muted", false) {
		class += " text-muted"
	}
	return TextEl("p", n.Props.String("content", ""), "class", class)
}

func renderBadge(_ *Renderer, n *ir.Node, _ registry.Definition, _ int) *Element {
	variant := oneOf(n.Props.String("variant", ""), "default", "default", "secondary", "destructive", "outline")
	return TextEl("span", n.Props.String("label", ""), "class", "badge badge-"+variant)
}

func renderButton(_ *Renderer, n *ir.Node, _ registry.Definition, _ int) *Element {
	variant := oneOf(n.Props.String("variant", ""), "default", "default", "secondary", "outline", "ghost")
	return TextEl("button", n.Props.String("label", ""), "type", "button", "class", "btn btn-"+variant)
}

func renderInput(_ *Renderer, n *ir.Node, _ registry.Definition, _ int) *Element {
	input := El("input", "type", "text", "class", "input", "placeholder", n.Props.String("placeholder", ""))
	label := n.Props.String("label", "")
	if label == "" {
		return input
	}
	return El("label", "class", "field").Add(TextEl("span", label, "class", "field-label"), input)
}

func renderSelect(_ *Renderer, n *ir.Node, _ registry.Definition, _ int) *Element {
	sel := El("select", "class", "select")
	sel.Add(TextEl("option", n.Props.String("placeholder", ""), "value", "", "disabled", "disabled", "selected", "selected"))
	for _, o := range n.Props.Strings("options") {
		sel.Add(TextEl("option", o, "value", o))
	}
	return sel
}

func renderDivider(_ *Renderer, _ *ir.Node, _ registry.Definition, _ int) *Element {
	return El("hr", "class", "divider")
}
