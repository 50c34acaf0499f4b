package export

import (
	"strconv"

	"github.com/matzehuels/dashforge/pkg/fonts"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
	"github.com/matzehuels/dashforge/pkg/sample"
)

// Chart chrome offsets shared by line, area and bar charts.
const (
	chartTitleX = 20.0
	chartTitleY = 20.0
	plotLeft    = 56.0
	plotTop     = 64.0
	plotRight   = 24.0
	plotBottom  = 40.0
	markerSize  = 8.0
	yTicks      = 4
)

func plotArea(size registry.Size) PlotArea {
	return PlotArea{
		X: plotLeft,
		Y: plotTop,
		W: max(size.W-plotLeft-plotRight, 0),
		H: max(size.H-plotTop-plotBottom, 0),
	}
}

// chartColor is the node's color prop, or the theme color when missing or
// malformed.
func (r *run) chartColor(n *ir.Node) string {
	return validColor(n.Props.String("color", ""), validColor(r.theme.PrimaryColor, "#3b82f6"))
}

func (r *run) chartTitle(frame Ref, n *ir.Node) error {
	title := n.Props.String("title", "")
	if title == "" {
		return nil
	}
	return r.text(frame, TextSpec{
		Name: "Title", Text: title, X: chartTitleX, Y: chartTitleY, Font: fonts.SemiBold, Size: 16,
	})
}

// yAxis draws horizontal grid lines and value labels at even fractions of
// the ceiling.
func (r *run) yAxis(frame Ref, area PlotArea, ceiling float64) error {
	for i := 0; i <= yTicks; i++ {
		frac := float64(i) / yTicks
		y := area.Bottom() - frac*area.H
		if err := r.shape(frame, ShapeSpec{
			Kind: ShapeRect, Name: "Grid", X: area.X, Y: y, W: area.W, H: 1, Fill: colorGrid,
		}); err != nil {
			return err
		}
		if err := r.text(frame, TextSpec{
			Name: "Tick", Text: strconv.FormatFloat(ceiling*frac, 'f', -1, 64),
			X: 4, Y: y - 6, Width: plotLeft - 12, Align: AlignRight,
			Font: fonts.Regular, Size: 10, Color: colorMuted,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (r *run) xLabels(frame Ref, area PlotArea, labels []string, xs []float64, width float64) error {
	for i, l := range labels {
		if err := r.text(frame, TextSpec{
			Name: "Label", Text: l, X: xs[i] - width/2, Y: area.Bottom() + 10, Width: width, Align: AlignCenter,
			Font: fonts.Regular, Size: 11, Color: colorMuted,
		}); err != nil {
			return err
		}
	}
	return nil
}

func buildLineChart(r *run, frame Ref, n *ir.Node, def registry.Definition, size registry.Size, _ int) error {
	return r.seriesChart(frame, n, def, size, false)
}

func buildAreaChart(r *run, frame Ref, n *ir.Node, def registry.Definition, size registry.Size, _ int) error {
	return r.seriesChart(frame, n, def, size, true)
}

// seriesChart draws the fixed time series as individual segments with a
// marker per point, scaled against the fixed ceiling. With fill set, one
// quad per segment is filled down to the baseline first.
func (r *run) seriesChart(frame Ref, n *ir.Node, def registry.Definition, size registry.Size, fill bool) error {
	data := sample.Series(def.Sample)
	if data == nil {
		data = sample.TimeSeries()
	}
	area := plotArea(size)
	color := r.chartColor(n)

	values := make([]float64, len(data))
	labels := make([]string, len(data))
	for i, p := range data {
		values[i], labels[i] = p.Value, p.Label
	}
	pts := PlotPoints(values, area, sample.TimeSeriesCeiling)
	segs := Segments(pts)

	if err := r.chartTitle(frame, n); err != nil {
		return err
	}
	if err := r.yAxis(frame, area, sample.TimeSeriesCeiling); err != nil {
		return err
	}
	if fill {
		for _, q := range AreaQuads(segs, area.Bottom()) {
			if err := r.shape(frame, ShapeSpec{
				Kind: ShapePolygon, Name: "Area", Points: q, Fill: color, Opacity: 0.2,
			}); err != nil {
				return err
			}
		}
	}
	for _, s := range segs {
		if err := r.shape(frame, ShapeSpec{
			Kind: ShapeLine, Name: "Segment", X: s.Start.X, Y: s.Start.Y, W: s.Length,
			Rotation: -s.Angle, Stroke: color, StrokeWidth: 2,
		}); err != nil {
			return err
		}
	}
	xs := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
		if err := r.shape(frame, ShapeSpec{
			Kind: ShapeEllipse, Name: "Marker",
			X: p.X - markerSize/2, Y: p.Y - markerSize/2, W: markerSize, H: markerSize,
			Fill: colorSurface, Stroke: color, StrokeWidth: 2,
		}); err != nil {
			return err
		}
	}
	return r.xLabels(frame, area, labels, xs, 40)
}
