package export

import (
	"github.com/matzehuels/dashforge/pkg/fonts"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
)

var headingSizes = map[string]float64{"h1": 30, "h2": 24, "h3": 18}

func buildHeading(r *run, frame Ref, n *ir.Node, _ registry.Definition, _ registry.Size, _ int) error {
	return r.text(frame, TextSpec{
		Name: "Heading", Text: n.Props.String("text", ""), X: 0, Y: 4,
		Font: fonts.Bold, Size: lookup(headingSizes, n.Props.String("level", "h2"), "h2"),
	})
}

func buildText(r *run, frame Ref, n *ir.Node, _ registry.Definition, _ registry.Size, _ int) error {
	color := colorText
	if n.Props.Bool("muted", false) {
		color = colorMuted
	}
	return r.text(frame, TextSpec{
		Name: "Text", Text: n.Props.String("content", ""), X: 0, Y: 4,
		Font: fonts.Regular, Size: 14, Color: color,
	})
}

func buildBadge(r *run, frame Ref, n *ir.Node, _ registry.Definition, size registry.Size, _ int) error {
	t := lookup(variantTones, n.Props.String("variant", "default"), "default")
	return r.text(frame, TextSpec{
		Name: "Label", Text: n.Props.String("label", ""), X: 0, Y: (size.H - 12) / 2, Width: size.W, Align: AlignCenter,
		Font: fonts.Medium, Size: 12, Color: t.Text,
	})
}

func buildButton(r *run, frame Ref, n *ir.Node, _ registry.Definition, size registry.Size, _ int) error {
	t := lookup(variantTones, n.Props.String("variant", "default"), "default")
	return r.text(frame, TextSpec{
		Name: "Label", Text: n.Props.String("label", ""), X: 0, Y: (size.H - 14) / 2, Width: size.W, Align: AlignCenter,
		Font: fonts.Medium, Size: 14, Color: t.Text,
	})
}

func buildInput(r *run, frame Ref, n *ir.Node, _ registry.Definition, size registry.Size, _ int) error {
	return r.text(frame, TextSpec{
		Name: "Placeholder", Text: n.Props.String("placeholder", ""), X: 12, Y: (size.H - 14) / 2,
		Font: fonts.Regular, Size: 14, Color: colorMuted,
	})
}

func buildSelect(r *run, frame Ref, n *ir.Node, def registry.Definition, size registry.Size, depth int) error {
	if err := buildInput(r, frame, n, def, size, depth); err != nil {
		return err
	}
	return r.text(frame, TextSpec{
		Name: "Chevron", Text: "▾", X: size.W - 28, Y: (size.H - 14) / 2,
		Font: fonts.Regular, Size: 14, Color: colorMuted,
	})
}

func buildDivider(r *run, frame Ref, _ *ir.Node, _ registry.Definition, size registry.Size, _ int) error {
	return r.shape(frame, ShapeSpec{Kind: ShapeRect, Name: "Rule", W: size.W, H: 1, Fill: colorBorder})
}

const listItemStep = 22.0

// buildList writes one bullet per string item, as many as fit the frame.
func buildList(r *run, frame Ref, n *ir.Node, _ registry.Definition, size registry.Size, _ int) error {
	y := 16.0
	if title := n.Props.String("title", ""); title != "" {
		if err := r.text(frame, TextSpec{
			Name: "Title", Text: title, X: 16, Y: y, Font: fonts.SemiBold, Size: 14,
		}); err != nil {
			return err
		}
		y += 28
	}
	for _, item := range n.Props.Strings("items") {
		if y+listItemStep > size.H {
			break
		}
		if err := r.text(frame, TextSpec{
			Name: "Item", Text: "• " + item, X: 16, Y: y, Font: fonts.Regular, Size: 13,
		}); err != nil {
			return err
		}
		y += listItemStep
	}
	return nil
}
