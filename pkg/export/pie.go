package export

import (
	"math"
	"strconv"

	"github.com/matzehuels/dashforge/pkg/fonts"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
	"github.com/matzehuels/dashforge/pkg/sample"
)

const (
	pieRadius    = 100.0
	pieCenterX   = 140.0
	pieCenterY   = 170.0
	donutRatio   = 0.6
	legendX      = 270.0
	legendY      = 110.0
	legendStep   = 28.0
	legendSwatch = 12.0
)

// buildPieChart draws the device breakdown as ellipse sectors starting at
// 12 o'clock, with a legend of name and percentage per slice.
func buildPieChart(r *run, frame Ref, n *ir.Node, _ registry.Definition, _ registry.Size, _ int) error {
	data := sample.Breakdown()
	values := make([]float64, len(data))
	for i, s := range data {
		values[i] = s.Value
	}
	inner := 0.0
	if n.Props.Bool("donut", false) {
		inner = donutRatio
	}

	if err := r.chartTitle(frame, n); err != nil {
		return err
	}
	for i, sl := range PieSlices(values) {
		if err := r.shape(frame, ShapeSpec{
			Kind: ShapeEllipse, Name: data[i].Name,
			X: pieCenterX - pieRadius, Y: pieCenterY - pieRadius, W: 2 * pieRadius, H: 2 * pieRadius,
			Arc:  &Arc{Start: sl.Start, End: sl.End, InnerRatio: inner},
			Fill: data[i].Color,
		}); err != nil {
			return err
		}

		y := legendY + float64(i)*legendStep
		if err := r.shape(frame, ShapeSpec{
			Kind: ShapeRect, Name: "Swatch", X: legendX, Y: y, W: legendSwatch, H: legendSwatch,
			Fill: data[i].Color, CornerRadius: 3,
		}); err != nil {
			return err
		}
		pct := strconv.Itoa(int(math.Round(sl.Fraction * 100)))
		if err := r.text(frame, TextSpec{
			Name: "Legend", Text: data[i].Name + " " + pct + "%", X: legendX + legendSwatch + 8, Y: y - 1,
			Font: fonts.Regular, Size: 12, Color: colorText,
		}); err != nil {
			return err
		}
	}
	return nil
}
