package export

import (
	"github.com/matzehuels/dashforge/pkg/fonts"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
	"github.com/matzehuels/dashforge/pkg/sample"
)

// Literal column offsets of the sample table.
var tableColumns = [...]float64{20, 170, 360, 460}

const (
	tableHeaderY = 52.0
	tableFirstY  = 88.0
	tableRowStep = 40.0
	pillW        = 64.0
	pillH        = 22.0
	amountW      = 80.0
)

// buildTable draws the fixed three-row sample table. The binary status
// column renders as a two-color pill.
func buildTable(r *run, frame Ref, n *ir.Node, _ registry.Definition, size registry.Size, _ int) error {
	if title := n.Props.String("title", ""); title != "" {
		if err := r.text(frame, TextSpec{
			Name: "Title", Text: title, X: 20, Y: 16, Font: fonts.SemiBold, Size: 16,
		}); err != nil {
			return err
		}
	}
	for i, h := range sample.TableColumns() {
		if err := r.text(frame, TextSpec{
			Name: "Header", Text: h, X: tableColumns[i], Y: tableHeaderY,
			Font: fonts.Medium, Size: 12, Color: colorMuted,
		}); err != nil {
			return err
		}
	}
	if err := r.shape(frame, ShapeSpec{
		Kind: ShapeRect, Name: "Rule", X: 20, Y: tableHeaderY + 22, W: size.W - 40, H: 1, Fill: colorBorder,
	}); err != nil {
		return err
	}

	for i, row := range sample.Table() {
		y := tableFirstY + float64(i)*tableRowStep
		if err := r.text(frame, TextSpec{
			Name: "Name", Text: row.Name, X: tableColumns[0], Y: y, Font: fonts.Medium, Size: 13,
		}); err != nil {
			return err
		}
		if err := r.text(frame, TextSpec{
			Name: "Email", Text: row.Email, X: tableColumns[1], Y: y, Font: fonts.Regular, Size: 13, Color: colorMuted,
		}); err != nil {
			return err
		}
		if err := r.statusPill(frame, row, tableColumns[2], y-3); err != nil {
			return err
		}
		if err := r.text(frame, TextSpec{
			Name: "Amount", Text: row.Amount, X: tableColumns[3], Y: y, Width: amountW, Align: AlignRight,
			Font: fonts.Regular, Size: 13,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) statusPill(frame Ref, row sample.Row, x, y float64) error {
	t := statusTones[row.Active]
	if err := r.shape(frame, ShapeSpec{
		Kind: ShapeRect, Name: "Status", X: x, Y: y, W: pillW, H: pillH, Fill: t.Fill, CornerRadius: pillH / 2,
	}); err != nil {
		return err
	}
	return r.text(frame, TextSpec{
		Name: "Status", Text: row.Status(), X: x, Y: y + 4, Width: pillW, Align: AlignCenter,
		Font: fonts.Medium, Size: 11, Color: t.Text,
	})
}
