package export

import (
	"context"

	"github.com/matzehuels/dashforge/pkg/fonts"
)

// Ref is an opaque handle to a node created by a [Host]. The empty Ref is
// the host's current page.
type Ref string

// ContainerSpec describes a frame that clips and groups child nodes.
// Coordinates are relative to the parent.
type ContainerSpec struct {
	Name         string
	X, Y         float64
	W, H         float64
	Fill         string
	Stroke       string
	StrokeWidth  float64
	CornerRadius float64
}

// TextSpec describes a single-line text node. The font must have been
// loaded with [Host.LoadFont] first.
type TextSpec struct {
	Name  string
	Text  string
	X, Y  float64
	Font  fonts.Font
	Size  float64
	Color string
	Align Align
	Width float64 // box width for Align center/right; 0 means auto
}

// Align is horizontal text alignment inside TextSpec.Width.
type Align string

// Alignments.
const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ShapeKind selects the primitive a ShapeSpec creates.
type ShapeKind string

// Shape kinds.
const (
	// ShapeRect is an axis-aligned rectangle at X,Y with size W,H.
	ShapeRect ShapeKind = "rect"
	// ShapeEllipse is an ellipse in the box X,Y,W,H. A non-zero Arc makes it
	// a pie or donut sector.
	ShapeEllipse ShapeKind = "ellipse"
	// ShapeLine starts at X,Y, runs W units long and is rotated by Rotation
	// degrees counter-clockwise about its start.
	ShapeLine ShapeKind = "line"
	// ShapePolygon is a closed path through Points.
	ShapePolygon ShapeKind = "polygon"
)

// Arc is the sector of an ellipse, angles in radians clockwise from 3 o'clock.
type Arc struct {
	Start      float64
	End        float64
	InnerRatio float64 // 0 for a full pie slice, (0,1) for a donut ring
}

// ShapeSpec describes a vector primitive.
type ShapeSpec struct {
	Kind         ShapeKind
	Name         string
	X, Y         float64
	W, H         float64
	Rotation     float64
	Points       []Point
	Arc          *Arc
	Fill         string
	Opacity      float64 // 0 means opaque
	Stroke       string
	StrokeWidth  float64
	CornerRadius float64
}

// Host is the narrow capability set the exporter needs from a design
// application. Calls are made sequentially from one goroutine.
type Host interface {
	// LoadFont makes a font available to CreateText. Loading the same font
	// again is a no-op.
	LoadFont(ctx context.Context, f fonts.Font) error

	// CreateContainer creates a frame under parent.
	CreateContainer(ctx context.Context, parent Ref, spec ContainerSpec) (Ref, error)

	// CreateText creates a text node under parent. It fails with
	// FONT_NOT_LOADED when spec.Font was not loaded.
	CreateText(ctx context.Context, parent Ref, spec TextSpec) (Ref, error)

	// CreateShape creates a vector primitive under parent.
	CreateShape(ctx context.Context, parent Ref, spec ShapeSpec) (Ref, error)

	// Notify shows a message to the user.
	Notify(ctx context.Context, message string, isError bool)
}

// Remover is an optional [Host] capability. When a component fails partway
// through, the builder removes its frame from hosts that implement it; other
// hosts keep the partial frame.
type Remover interface {
	// Remove deletes the node for ref and everything under it.
	Remove(ctx context.Context, ref Ref) error
}
