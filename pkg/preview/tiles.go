package preview

import (
	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
)

func renderStatTile(_ *Renderer, n *ir.Node, _ registry.Definition, _ int) *Element {
	changeType := oneOf(n.Props.String("changeType", ""), "neutral", "positive", "negative", "neutral")
	card := El("div", "class", "card stat-card")
	card.Add(
		El("div", "class", "card-header").Add(TextEl("span", n.Props.String("title", ""), "class", "card-title")),
		TextEl("div", n.Props.String("value", ""), "class", "stat-value"),
	)
	if change := n.Props.String("change", ""); change != "" {
		card.Add(TextEl("p", change, "class", "stat-change change-"+changeType))
	}
	return card
}

func renderMiniTile(_ *Renderer, n *ir.Node, _ registry.Definition, _ int) *Element {
	trend := oneOf(n.Props.String("trend", ""), "up", "up", "down")
	arrow := "▲"
	if trend == "down" {
		arrow = "▼"
	}
	return El("div", "class", "card mini-stat").Add(
		TextEl("span", n.Props.String("label", ""), "class", "mini-stat-label"),
		El("div", "class", "mini-stat-row").Add(
			TextEl("span", n.Props.String("value", ""), "class", "mini-stat-value"),
			TextEl("span", arrow, "class", "trend trend-"+trend),
		),
	)
}

func renderAlertTile(_ *Renderer, n *ir.Node, _ registry.Definition, _ int) *Element {
	severity := oneOf(n.Props.String("severity", ""), "info", "info", "success", "warning", "error")
	return El("div", "class", "alert alert-"+severity, "role", "status").Add(
		TextEl("strong", n.Props.String("title", ""), "class", "alert-title"),
		TextEl("p", n.Props.String("message", ""), "class", "alert-message"),
	)
}

// oneOf returns v when it is one of allowed, otherwise def.
func oneOf(v, def string, allowed ...string) string {
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	return def
}

// color returns the color prop when it is a valid hex color, otherwise def.
func color(p ir.Props, key, def string) string {
	c := p.String(key, "")
	if errors.ValidateColor(c) != nil {
		return def
	}
	return c
}
