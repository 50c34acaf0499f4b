// Package outline renders the structure of a dashboard as a node-link
// diagram.
//
// Each component becomes a box labelled with its component name and id,
// hanging off a single dashboard root; containers point at their children.
// The outline is a debugging aid for nested layouts and is not a preview
// of the rendered dashboard.
//
//	dot := outline.ToDOT(d, reg, outline.Options{Detailed: true})
//	svg, err := outline.RenderSVG(ctx, dot)
//
// The generated DOT uses a top-to-bottom layout (rankdir=TB) with rounded
// box nodes. SVG rendering runs Graphviz in-process through
// [github.com/goccy/go-graphviz]; PDF and PNG conversion requires librsvg
// (rsvg-convert).
package outline
