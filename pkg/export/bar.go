package export

import (
	"strconv"

	"github.com/matzehuels/dashforge/pkg/fonts"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
	"github.com/matzehuels/dashforge/pkg/sample"
)

const barGap = 16.0

// buildBarChart divides the plot width evenly among the weekday series and
// scales each bar against the series maximum. Value labels sit above each
// bar, category labels below the baseline.
func buildBarChart(r *run, frame Ref, n *ir.Node, def registry.Definition, size registry.Size, _ int) error {
	data := sample.Series(def.Sample)
	if data == nil {
		data = sample.Weekday()
	}
	area := plotArea(size)
	color := r.chartColor(n)
	maxValue := sample.Max(data)

	values := make([]float64, len(data))
	labels := make([]string, len(data))
	for i, p := range data {
		values[i], labels[i] = p.Value, p.Label
	}
	bars := BarLayout(values, area, barGap, maxValue)

	if err := r.chartTitle(frame, n); err != nil {
		return err
	}
	if err := r.shape(frame, ShapeSpec{
		Kind: ShapeRect, Name: "Baseline", X: area.X, Y: area.Bottom(), W: area.W, H: 1, Fill: colorBorder,
	}); err != nil {
		return err
	}

	xs := make([]float64, len(bars))
	for i, b := range bars {
		xs[i] = b.X + b.W/2
		if err := r.shape(frame, ShapeSpec{
			Kind: ShapeRect, Name: labels[i], X: b.X, Y: b.Y, W: b.W, H: b.H, Fill: color, CornerRadius: 4,
		}); err != nil {
			return err
		}
		if err := r.text(frame, TextSpec{
			Name: "Value", Text: strconv.FormatFloat(values[i], 'f', -1, 64),
			X: b.X, Y: b.Y - 16, Width: b.W, Align: AlignCenter,
			Font: fonts.Medium, Size: 11, Color: colorText,
		}); err != nil {
			return err
		}
	}
	width := 40.0
	if len(bars) > 0 {
		width = bars[0].W
	}
	return r.xLabels(frame, area, labels, xs, width)
}
