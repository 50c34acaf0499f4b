package export

import (
	"github.com/matzehuels/dashforge/pkg/fonts"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
)

// Tile texts sit at literal offsets inside their fixed-size frames.

func buildStatTile(r *run, frame Ref, n *ir.Node, _ registry.Definition, _ registry.Size, _ int) error {
	changeType := n.Props.String("changeType", "neutral")
	texts := []TextSpec{
		{Name: "Title", Text: n.Props.String("title", ""), X: 20, Y: 20, Font: fonts.Medium, Size: 14, Color: colorMuted},
		{Name: "Value", Text: n.Props.String("value", ""), X: 20, Y: 48, Font: fonts.Bold, Size: 28},
		{Name: "Change", Text: n.Props.String("change", ""), X: 20, Y: 100, Font: fonts.Regular, Size: 12,
			Color: lookup(changeColors, changeType, "neutral")},
	}
	for _, t := range texts {
		if t.Text == "" {
			continue
		}
		if err := r.text(frame, t); err != nil {
			return err
		}
	}
	return nil
}

func buildMiniTile(r *run, frame Ref, n *ir.Node, _ registry.Definition, size registry.Size, _ int) error {
	trend := n.Props.String("trend", "up")
	arrow := "▲"
	if trend == "down" {
		arrow = "▼"
	}
	texts := []TextSpec{
		{Name: "Label", Text: n.Props.String("label", ""), X: 16, Y: 14, Font: fonts.Regular, Size: 12, Color: colorMuted},
		{Name: "Value", Text: n.Props.String("value", ""), X: 16, Y: 38, Font: fonts.SemiBold, Size: 20},
		{Name: "Trend", Text: arrow, X: size.W - 36, Y: 40, Font: fonts.Regular, Size: 14,
			Color: lookup(trendColors, trend, "up")},
	}
	for _, t := range texts {
		if err := r.text(frame, t); err != nil {
			return err
		}
	}
	return nil
}

func buildAlertTile(r *run, frame Ref, n *ir.Node, _ registry.Definition, size registry.Size, _ int) error {
	t := lookup(severityTones, n.Props.String("severity", "info"), "info")
	if err := r.shape(frame, ShapeSpec{
		Kind: ShapeRect, Name: "Accent", X: 0, Y: 0, W: 4, H: size.H, Fill: t.Text,
	}); err != nil {
		return err
	}
	if err := r.text(frame, TextSpec{
		Name: "Title", Text: n.Props.String("title", ""), X: 20, Y: 18,
		Font: fonts.SemiBold, Size: 14, Color: t.Text,
	}); err != nil {
		return err
	}
	return r.text(frame, TextSpec{
		Name: "Message", Text: n.Props.String("message", ""), X: 20, Y: 46,
		Font: fonts.Regular, Size: 13, Color: "#334155",
	})
}
