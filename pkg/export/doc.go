// Package export rebuilds a dashboard as native vector shapes inside a host
// design application.
//
// The exporter receives the dashboard only as a serialized transfer message
// (see package transfer) and shares nothing with the preview renderer: chart
// geometry is recomputed here from the same fixed sample datasets.
//
//   - Tiles are fixed-size frames with texts at literal offsets and an
//     enum-to-color lookup for delta direction and alert severity.
//   - Line and area charts interpolate each point over a fixed plot box and
//     value ceiling ([PlotPoints]), then join neighbors with individual
//     segments whose length and angle come from the coordinate delta
//     ([Segments]). Area charts fill one quad per segment ([AreaQuads]).
//   - Bar charts split the plot width evenly with fixed gaps ([BarLayout]);
//     heights are value/max*plotHeight clamped to the plot ([BarHeight]).
//   - Pie charts start at 12 o'clock and accumulate value/total*2π per
//     slice ([PieSlices]); donuts use an inner radius ratio.
//   - Tables draw the fixed three-row sample at literal column offsets with a
//     two-color status pill.
//
// The host is reached through the narrow [Host] interface. Text creation
// always waits for the font to be loaded first. Package export/scene
// provides an in-memory Host that also writes the scene as SVG.
//
// # Failure handling
//
// Unknown types are skipped and logged. A node that fails or panics is
// recorded as an errors.NodeError and the rest of the document still builds.
// Failures of the whole operation are returned. In every case the host
// receives exactly one notification at the end.
package export
