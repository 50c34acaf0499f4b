package preview

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
	"github.com/matzehuels/dashforge/pkg/sample"
)

// Chart viewport in SVG user units. The element scales to its container.
const (
	chartW   = 400.0
	chartH   = 200.0
	chartPad = 24.0

	defaultChartColor = "#3b82f6"
	axisColor         = "#e5e7eb"
	labelColor        = "#6b7280"
)

func chartCard(n *ir.Node, svg *Element) *Element {
	return El("div", "class", "card chart-card").Add(
		El("div", "class", "card-header").Add(TextEl("span", n.Props.String("title", ""), "class", "card-title")),
		El("div", "class", "chart-body").Add(svg),
	)
}

func chartSVG() *Element {
	return El("svg",
		"xmlns", "http://www.w3.org/2000/svg",
		"viewBox", "0 0 "+num(chartW)+" "+num(chartH),
		"preserveAspectRatio", "none",
		"class", "chart",
	)
}

// seriesPoints maps a series onto the plot area, scaling against the series max.
func seriesPoints(points []sample.Point) [][2]float64 {
	ceiling := sample.Max(points)
	plotW, plotH := chartW-2*chartPad, chartH-2*chartPad
	out := make([][2]float64, len(points))
	for i, p := range points {
		x := chartPad
		if len(points) > 1 {
			x += float64(i) * plotW / float64(len(points)-1)
		}
		y := chartH - chartPad
		if ceiling > 0 {
			y -= p.Value / ceiling * plotH
		}
		out[i] = [2]float64{x, y}
	}
	return out
}

func axisAndLabels(svg *Element, points []sample.Point, xs [][2]float64) {
	base := num(chartH - chartPad)
	svg.Add(El("line", "x1", num(chartPad), "y1", base, "x2", num(chartW-chartPad), "y2", base, "stroke", axisColor))
	for i, p := range points {
		svg.Add(TextEl("text", p.Label,
			"x", num(xs[i][0]), "y", num(chartH-chartPad/4),
			"text-anchor", "middle", "font-size", "10", "fill", labelColor))
	}
}

func polyline(pts [][2]float64) string {
	parts := make([]string, len(pts))
	for i, p := range pts {
		parts[i] = num(p[0]) + "," + num(p[1])
	}
	return strings.Join(parts, " ")
}

func renderLineChart(_ *Renderer, n *ir.Node, def registry.Definition, _ int) *Element {
	data := sample.Series(def.Sample)
	pts := seriesPoints(data)
	stroke := color(n.Props, "color", defaultChartColor)

	svg := chartSVG()
	axisAndLabels(svg, data, pts)
	svg.Add(El("polyline", "points", polyline(pts), "fill", "none", "stroke", stroke, "stroke-width", "2"))
	for _, p := range pts {
		svg.Add(El("circle", "cx", num(p[0]), "cy", num(p[1]), "r", "3", "fill", stroke))
	}
	return chartCard(n, svg)
}

func renderAreaChart(_ *Renderer, n *ir.Node, def registry.Definition, _ int) *Element {
	data := sample.Series(def.Sample)
	pts := seriesPoints(data)
	fill := color(n.Props, "color", defaultChartColor)

	svg := chartSVG()
	axisAndLabels(svg, data, pts)
	if len(pts) > 0 {
		base := chartH - chartPad
		var d strings.Builder
		d.WriteString("M" + num(pts[0][0]) + "," + num(base))
		for _, p := range pts {
			d.WriteString(" L" + num(p[0]) + "," + num(p[1]))
		}
		d.WriteString(" L" + num(pts[len(pts)-1][0]) + "," + num(base) + " Z")
		svg.Add(El("path", "d", d.String(), "fill", fill, "fill-opacity", "0.3", "stroke", "none"))
	}
	svg.Add(El("polyline", "points", polyline(pts), "fill", "none", "stroke", fill, "stroke-width", "2"))
	return chartCard(n, svg)
}

func renderBarChart(_ *Renderer, n *ir.Node, def registry.Definition, _ int) *Element {
	data := sample.Series(def.Sample)
	fill := color(n.Props, "color", defaultChartColor)
	ceiling := sample.Max(data)

	svg := chartSVG()
	plotW, plotH := chartW-2*chartPad, chartH-2*chartPad
	slot := plotW / float64(max(len(data), 1))
	barW := slot * 0.6
	base := chartH - chartPad
	for i, p := range data {
		h := 0.0
		if ceiling > 0 {
			h = p.Value / ceiling * plotH
		}
		x := chartPad + float64(i)*slot + (slot-barW)/2
		svg.Add(
			El("rect", "x", num(x), "y", num(base-h), "width", num(barW), "height", num(h), "rx", "3", "fill", fill),
			TextEl("text", p.Label, "x", num(x+barW/2), "y", num(chartH-chartPad/4),
				"text-anchor", "middle", "font-size", "10", "fill", labelColor),
		)
	}
	return chartCard(n, svg)
}

func renderPieChart(_ *Renderer, n *ir.Node, _ registry.Definition, _ int) *Element {
	data := sample.Breakdown()
	total := sample.Total(data)
	cx, cy := chartH/2, chartH/2
	radius := chartH/2 - chartPad/2

	svg := chartSVG()
	legend := El("ul", "class", "chart-legend")
	start := -math.Pi / 2
	for _, s := range data {
		sweep := s.Value / total * 2 * math.Pi
		svg.Add(El("path", "d", arcPath(cx, cy, radius, start, start+sweep), "fill", s.Color))
		start += sweep

		pct := strconv.Itoa(int(math.Round(s.Value / total * 100)))
		legend.Add(El("li").Add(
			El("span", "class", "legend-swatch", "style", "background:"+s.Color),
			TextEl("span", s.Name+" "+pct+"%"),
		))
	}
	if n.Props.Bool("donut", false) {
		svg.Add(El("circle", "cx", num(cx), "cy", num(cy), "r", num(radius*0.6), "fill", "#ffffff"))
	}
	return chartCard(n, svg).Add(legend)
}

func arcPath(cx, cy, r, a0, a1 float64) string {
	x0, y0 := cx+r*math.Cos(a0), cy+r*math.Sin(a0)
	x1, y1 := cx+r*math.Cos(a1), cy+r*math.Sin(a1)
	large := "0"
	if a1-a0 > math.Pi {
		large = "1"
	}
	return "M" + num(cx) + "," + num(cy) +
		" L" + num(x0) + "," + num(y0) +
		" A" + num(r) + "," + num(r) + " 0 " + large + " 1 " + num(x1) + "," + num(y1) + " Z"
}
