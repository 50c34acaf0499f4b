package export

import (
	"math"
	"testing"
)

const eps = 1e-9

func TestPieSlices(t *testing.T) {
	slices := PieSlices([]float64{400, 300, 200})
	if len(slices) != 3 {
		t.Fatalf("got %d slices, want 3", len(slices))
	}
	if slices[0].Start != -math.Pi/2 {
		t.Errorf("first slice starts at %v, want -π/2", slices[0].Start)
	}

	var sum float64
	for i, s := range slices {
		sum += s.Sweep()
		if i > 0 && s.Start != slices[i-1].End {
			t.Errorf("slice %d starts at %v, previous ends at %v", i, s.Start, slices[i-1].End)
		}
	}
	if math.Abs(sum-2*math.Pi) > eps {
		t.Errorf("sweeps sum to %v, want 2π", sum)
	}
	if end := slices[2].End; end != -math.Pi/2+2*math.Pi {
		t.Errorf("last slice ends at %v, want exactly 3π/2", end)
	}

	wantFrac := []float64{4.0 / 9, 3.0 / 9, 2.0 / 9}
	for i, s := range slices {
		if math.Abs(s.Fraction-wantFrac[i]) > eps {
			t.Errorf("slice %d fraction = %v, want %v", i, s.Fraction, wantFrac[i])
		}
		if math.Abs(s.Sweep()-wantFrac[i]*2*math.Pi) > eps {
			t.Errorf("slice %d sweep = %v", i, s.Sweep())
		}
	}
}

func TestPieSlicesDegenerate(t *testing.T) {
	for _, s := range PieSlices([]float64{0, 0}) {
		if s.Sweep() != 0 {
			t.Errorf("zero total produced sweep %v", s.Sweep())
		}
	}
	s := PieSlices([]float64{-5, 10})
	if s[0].Sweep() != 0 || math.Abs(s[1].Sweep()-2*math.Pi) > eps {
		t.Errorf("negative value not treated as zero: %+v", s)
	}
	if got := PieSlices(nil); len(got) != 0 {
		t.Errorf("PieSlices(nil) = %v", got)
	}
}

func TestBarHeight(t *testing.T) {
	tests := []struct {
		name               string
		value, max, height float64
		want               float64
	}{
		{"proportional", 105, 210, 188, 94},
		{"at max", 210, 210, 188, 188},
		{"above max clamps", 500, 210, 188, 188},
		{"negative clamps", -10, 210, 188, 0},
		{"zero max", 10, 0, 188, 0},
		{"zero plot", 10, 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BarHeight(tt.value, tt.max, tt.height); math.Abs(got-tt.want) > eps {
				t.Errorf("BarHeight(%v, %v, %v) = %v, want %v", tt.value, tt.max, tt.height, got, tt.want)
			}
		})
	}
}

func TestBarLayout(t *testing.T) {
	area := PlotArea{X: 10, Y: 20, W: 400, H: 200}
	bars := BarLayout([]float64{50, 100, 25, 150}, area, 16, 100)
	if len(bars) != 4 {
		t.Fatalf("got %d bars", len(bars))
	}
	wantW := (400 - 16*3) / 4.0
	for i, b := range bars {
		if math.Abs(b.W-wantW) > eps {
			t.Errorf("bar %d width = %v, want %v", i, b.W, wantW)
		}
		if math.Abs(b.Y+b.H-area.Bottom()) > eps {
			t.Errorf("bar %d does not stand on the baseline", i)
		}
		if b.H > area.H {
			t.Errorf("bar %d height %v exceeds plot", i, b.H)
		}
	}
	last := bars[3]
	if math.Abs(last.X+last.W-(area.X+area.W)) > eps {
		t.Errorf("bars do not span the plot width: right edge %v", last.X+last.W)
	}
	if bars[3].H != area.H {
		t.Errorf("value above max not clamped: %v", bars[3].H)
	}
	if BarLayout(nil, area, 16, 100) != nil {
		t.Error("empty input should yield nil")
	}
}

func TestPlotPoints(t *testing.T) {
	area := PlotArea{X: 50, Y: 60, W: 400, H: 200}
	pts := PlotPoints([]float64{0, 3000, 6000, 9000}, area, 6000)

	want := []Point{
		{50, 260},
		{50 + 400.0/3, 160},
		{50 + 800.0/3, 60},
		{450, 60},
	}
	for i := range want {
		if math.Abs(pts[i].X-want[i].X) > eps || math.Abs(pts[i].Y-want[i].Y) > eps {
			t.Errorf("point %d = %+v, want %+v", i, pts[i], want[i])
		}
	}

	single := PlotPoints([]float64{3000}, area, 6000)
	if single[0].X != area.X {
		t.Errorf("single point x = %v, want %v", single[0].X, area.X)
	}
}

func TestSegments(t *testing.T) {
	segs := Segments([]Point{{0, 0}, {3, 4}, {6, 4}, {6, 0}})
	if len(segs) != 3 {
		t.Fatalf("got %d segments, want 3", len(segs))
	}

	tests := []struct {
		length, angle float64
	}{
		{5, math.Atan2(4, 3) * 180 / math.Pi},
		{3, 0},
		{4, -90},
	}
	for i, tt := range tests {
		if math.Abs(segs[i].Length-tt.length) > eps {
			t.Errorf("segment %d length = %v, want %v", i, segs[i].Length, tt.length)
		}
		if math.Abs(segs[i].Angle-tt.angle) > eps {
			t.Errorf("segment %d angle = %v, want %v", i, segs[i].Angle, tt.angle)
		}
	}
	if Segments([]Point{{1, 1}}) != nil {
		t.Error("a single point has no segments")
	}
}

func TestAreaQuads(t *testing.T) {
	segs := Segments([]Point{{0, 10}, {10, 5}})
	quads := AreaQuads(segs, 20)
	want := []Point{{0, 10}, {10, 5}, {10, 20}, {0, 20}}
	if len(quads) != 1 {
		t.Fatalf("got %d quads", len(quads))
	}
	for i, p := range want {
		if quads[0][i] != p {
			t.Errorf("corner %d = %+v, want %+v", i, quads[0][i], p)
		}
	}
}
