// Package snapshot produces static images of a dashboard.
//
// [Render] serializes the rendered preview as SVG: the preview markup and
// stylesheet sit inside a foreignObject, so the image shows what the preview
// draws, including table and list rows from props. [Export] is the separate
// vector path: it drives the exporter against the in-memory scene host and
// serializes the frames a design tool would receive.
//
// [ToPDF] and [ToPNG] convert any SVG with the external [Converter] tool
// (rsvg-convert from librsvg by default).
//
//	svg, err := snapshot.Render(reg, d)
//	png, err := snapshot.ToPNG(ctx, svg, 2.0)
package snapshot
