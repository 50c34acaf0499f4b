package export

import "math"

// Point is a position in frame coordinates (y grows downward).
type Point struct {
	X, Y float64
}

// PlotArea is the rectangle a chart draws into, origin at the top left.
type PlotArea struct {
	X, Y, W, H float64
}

// Bottom returns the baseline y of the area.
func (a PlotArea) Bottom() float64 { return a.Y + a.H }

// PlotPoints maps values onto area by linear interpolation: x is spread
// evenly across the width, y scales value/ceiling over the height. Values
// outside [0, ceiling] are clamped to the area.
func PlotPoints(values []float64, area PlotArea, ceiling float64) []Point {
	pts := make([]Point, len(values))
	step := 0.0
	if len(values) > 1 {
		step = area.W / float64(len(values)-1)
	}
	for i, v := range values {
		frac := 0.0
		if ceiling > 0 {
			frac = clamp(v/ceiling, 0, 1)
		}
		pts[i] = Point{X: area.X + float64(i)*step, Y: area.Bottom() - frac*area.H}
	}
	return pts
}

// Segment is a straight line between two consecutive plot points.
// Angle is in degrees, measured clockwise from the +x axis in frame
// coordinates; hosts that rotate counter-clockwise use -Angle.
type Segment struct {
	Start  Point
	End    Point
	Length float64
	Angle  float64
}

// Segments joins consecutive points. Length and angle come from the
// coordinate delta: hypot(dx, dy) and atan2(dy, dx).
func Segments(pts []Point) []Segment {
	if len(pts) < 2 {
		return nil
	}
	out := make([]Segment, 0, len(pts)-1)
	for i := 1; i < len(pts); i++ {
		dx, dy := pts[i].X-pts[i-1].X, pts[i].Y-pts[i-1].Y
		out = append(out, Segment{
			Start:  pts[i-1],
			End:    pts[i],
			Length: math.Hypot(dx, dy),
			Angle:  math.Atan2(dy, dx) * 180 / math.Pi,
		})
	}
	return out
}

// AreaQuads returns, for each segment, the quad between it and the baseline:
// start, end, end projected to the baseline, start projected to the baseline.
func AreaQuads(segs []Segment, baseline float64) [][]Point {
	out := make([][]Point, len(segs))
	for i, s := range segs {
		out[i] = []Point{
			s.Start,
			s.End,
			{X: s.End.X, Y: baseline},
			{X: s.Start.X, Y: baseline},
		}
	}
	return out
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, W, H float64
}

// BarHeight returns value/maxValue*plotHeight clamped to [0, plotHeight].
func BarHeight(value, maxValue, plotHeight float64) float64 {
	if maxValue <= 0 || plotHeight <= 0 {
		return 0
	}
	return clamp(value/maxValue*plotHeight, 0, plotHeight)
}

// BarLayout divides the area width evenly among the values with gap between
// neighbors and stands each bar on the area's baseline.
func BarLayout(values []float64, area PlotArea, gap, maxValue float64) []Rect {
	n := len(values)
	if n == 0 {
		return nil
	}
	w := max((area.W-gap*float64(n-1))/float64(n), 0)
	out := make([]Rect, n)
	for i, v := range values {
		h := BarHeight(v, maxValue, area.H)
		out[i] = Rect{X: area.X + float64(i)*(w+gap), Y: area.Bottom() - h, W: w, H: h}
	}
	return out
}

// Slice is the angular span of one pie value, in radians.
type Slice struct {
	Start    float64
	End      float64
	Fraction float64
}

// Sweep returns End-Start.
func (s Slice) Sweep() float64 { return s.End - s.Start }

// PieStart is the 12 o'clock position where the first slice begins.
const PieStart = -math.Pi / 2

// PieSlices splits a full turn among values: each slice spans
// value/total*2π, starting at 12 o'clock and accumulating clockwise.
// Negative values count as zero. The last slice ends at exactly
// PieStart+2π. A zero total yields zero-width slices.
func PieSlices(values []float64) []Slice {
	var total float64
	for _, v := range values {
		total += max(v, 0)
	}
	out := make([]Slice, len(values))
	start := PieStart
	for i, v := range values {
		frac := 0.0
		if total > 0 {
			frac = max(v, 0) / total
		}
		end := start + frac*2*math.Pi
		if i == len(values)-1 && total > 0 {
			end = PieStart + 2*math.Pi
		}
		out[i] = Slice{Start: start, End: end, Fraction: frac}
		start = end
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
