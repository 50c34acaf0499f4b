package scene

import (
	"bytes"
	"fmt"
	"html"
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/dashforge/pkg/export"
	"github.com/matzehuels/dashforge/pkg/fonts"
)

// SVG writes the scene as a standalone SVG document. Frames become groups
// translated to their position; text baselines are approximated from the
// font size.
func (s *Scene) SVG() []byte {
	var w, h float64
	for _, n := range s.roots {
		if n.Kind == KindContainer {
			w = max(w, n.Container.X+n.Container.W)
			h = max(h, n.Container.Y+n.Container.H)
		}
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w, h)
	fmt.Fprintf(&buf, "  <style>\n%s  </style>\n", fonts.CSS())
	for _, n := range s.roots {
		writeNode(&buf, n, 1)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func writeNode(buf *bytes.Buffer, n *Node, depth int) {
	pad := strings.Repeat("  ", depth)
	switch n.Kind {
	case KindContainer:
		c := n.Container
		fmt.Fprintf(buf, "%s<g id=%q transform=\"translate(%s,%s)\">\n", pad, string(n.Ref), f(c.X), f(c.Y))
		if c.Fill != "" || c.Stroke != "" {
			fmt.Fprintf(buf, "%s  <rect width=\"%s\" height=\"%s\"%s%s/>\n", pad, f(c.W), f(c.H),
				radius(c.CornerRadius), paint(c.Fill, 0, c.Stroke, c.StrokeWidth))
		}
		for _, child := range n.Children {
			writeNode(buf, child, depth+1)
		}
		fmt.Fprintf(buf, "%s</g>\n", pad)
	case KindText:
		writeText(buf, pad, n.Text)
	case KindShape:
		writeShape(buf, pad, n.Shape)
	}
}

func writeText(buf *bytes.Buffer, pad string, t export.TextSpec) {
	x, anchor := t.X, "start"
	switch t.Align {
	case export.AlignCenter:
		x, anchor = t.X+t.Width/2, "middle"
	case export.AlignRight:
		x, anchor = t.X+t.Width, "end"
	}
	fmt.Fprintf(buf, "%s<text x=\"%s\" y=\"%s\" class=%q font-size=\"%s\" fill=%q text-anchor=%q>%s</text>\n",
		pad, f(x), f(t.Y+t.Size*0.8), fonts.Class(t.Font), f(t.Size), t.Color, anchor, html.EscapeString(t.Text))
}

func writeShape(buf *bytes.Buffer, pad string, s export.ShapeSpec) {
	style := paint(s.Fill, s.Opacity, s.Stroke, s.StrokeWidth)
	switch s.Kind {
	case export.ShapeRect:
		fmt.Fprintf(buf, "%s<rect x=\"%s\" y=\"%s\" width=\"%s\" height=\"%s\"%s%s/>\n",
			pad, f(s.X), f(s.Y), f(s.W), f(s.H), radius(s.CornerRadius), style)
	case export.ShapeEllipse:
		cx, cy, rx, ry := s.X+s.W/2, s.Y+s.H/2, s.W/2, s.H/2
		if s.Arc == nil {
			fmt.Fprintf(buf, "%s<ellipse cx=\"%s\" cy=\"%s\" rx=\"%s\" ry=\"%s\"%s/>\n", pad, f(cx), f(cy), f(rx), f(ry), style)
			return
		}
		fmt.Fprintf(buf, "%s<path d=%q%s/>\n", pad, sectorPath(cx, cy, rx, ry, *s.Arc), style)
	case export.ShapeLine:
		rad := -s.Rotation * math.Pi / 180
		x2, y2 := s.X+s.W*math.Cos(rad), s.Y+s.W*math.Sin(rad)
		fmt.Fprintf(buf, "%s<line x1=\"%s\" y1=\"%s\" x2=\"%s\" y2=\"%s\"%s/>\n", pad, f(s.X), f(s.Y), f(x2), f(y2), style)
	case export.ShapePolygon:
		pts := make([]string, len(s.Points))
		for i, p := range s.Points {
			pts[i] = f(p.X) + "," + f(p.Y)
		}
		fmt.Fprintf(buf, "%s<polygon points=%q%s/>\n", pad, strings.Join(pts, " "), style)
	}
}

// sectorPath draws an elliptical sector, or a ring sector when the arc has
// an inner ratio.
func sectorPath(cx, cy, rx, ry float64, a export.Arc) string {
	sweep := a.End - a.Start
	if sweep >= 2*math.Pi-1e-9 {
		// A full turn cannot be expressed as a single arc; split it.
		mid := a.Start + math.Pi
		return sectorPath(cx, cy, rx, ry, export.Arc{Start: a.Start, End: mid, InnerRatio: a.InnerRatio}) + " " +
			sectorPath(cx, cy, rx, ry, export.Arc{Start: mid, End: a.End, InnerRatio: a.InnerRatio})
	}
	large := "0"
	if sweep > math.Pi {
		large = "1"
	}
	at := func(r float64, ang float64) (string, string) {
		return f(cx + r*rx*math.Cos(ang)), f(cy + r*ry*math.Sin(ang))
	}
	ox0, oy0 := at(1, a.Start)
	ox1, oy1 := at(1, a.End)
	if a.InnerRatio <= 0 {
		return fmt.Sprintf("M%s,%s L%s,%s A%s,%s 0 %s 1 %s,%s Z", f(cx), f(cy), ox0, oy0, f(rx), f(ry), large, ox1, oy1)
	}
	ix0, iy0 := at(a.InnerRatio, a.Start)
	ix1, iy1 := at(a.InnerRatio, a.End)
	irx, iry := f(rx*a.InnerRatio), f(ry*a.InnerRatio)
	return fmt.Sprintf("M%s,%s A%s,%s 0 %s 1 %s,%s L%s,%s A%s,%s 0 %s 0 %s,%s Z",
		ox0, oy0, f(rx), f(ry), large, ox1, oy1, ix1, iy1, irx, iry, large, ix0, iy0)
}

func paint(fill string, opacity float64, stroke string, width float64) string {
	var b strings.Builder
	if fill == "" {
		fill = "none"
	}
	b.WriteString(` fill="` + fill + `"`)
	if opacity > 0 && opacity < 1 {
		b.WriteString(` fill-opacity="` + f(opacity) + `"`)
	}
	if stroke != "" {
		b.WriteString(` stroke="` + stroke + `"`)
		if width > 0 {
			b.WriteString(` stroke-width="` + f(width) + `"`)
		}
	}
	return b.String()
}

func radius(r float64) string {
	if r <= 0 {
		return ""
	}
	return ` rx="` + f(r) + `"`
}

func f(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
