package snapshot

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashforge/pkg/export"
	"github.com/matzehuels/dashforge/pkg/export/scene"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/preview"
	"github.com/matzehuels/dashforge/pkg/registry"
	"github.com/matzehuels/dashforge/pkg/transfer"
)

// DefaultPageWidth is the snapshot width when none is set.
const DefaultPageWidth = 1280.0

// Option configures a snapshot.
type Option func(*options)

type options struct {
	theme      transfer.Theme
	logger     *log.Logger
	pageWidth  float64
	pageHeight float64
	scale      float64
	now        func() time.Time
}

// WithTheme sets the theme the exporter colors charts with.
func WithTheme(t transfer.Theme) Option { return func(o *options) { o.theme = t } }

// WithLogger sets the exporter logger.
func WithLogger(l *log.Logger) Option { return func(o *options) { o.logger = l } }

// WithPageWidth sets the page width. The preview snapshot lays out at this
// width and the exporter wraps components at it.
func WithPageWidth(w float64) Option { return func(o *options) { o.pageWidth = w } }

// WithPageHeight fixes the preview snapshot height instead of estimating it
// from the tree.
func WithPageHeight(h float64) Option { return func(o *options) { o.pageHeight = h } }

// WithScale sets the PNG scale factor (default 2.0 for 2x resolution).
func WithScale(s float64) Option { return func(o *options) { o.scale = s } }

func newOptions(opts []Option) options {
	o := options{
		theme: transfer.Theme{PrimaryColor: transfer.DefaultPrimaryColor},
		scale: 2.0,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// =============================================================================
// Preview Snapshots
// =============================================================================

// Render serializes the rendered preview of d as an SVG document: the
// preview markup and its stylesheet inside a foreignObject sized to the page.
func Render(reg *registry.Registry, d *ir.Dashboard, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	w := o.pageWidth
	if w <= 0 {
		w = DefaultPageWidth
	}
	h := o.pageHeight
	if h <= 0 {
		h = estimateHeight(reg, d)
	}
	return wrap(preview.New(reg).RenderDashboard(d), w, h)
}

// RenderNode serializes the preview of a single node at the given size.
func RenderNode(reg *registry.Registry, n *ir.Node, w, h float64) ([]byte, error) {
	return wrap(preview.New(reg).Render(n), w, h)
}

func wrap(el *preview.Element, w, h float64) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">`+"\n", w, h, w, h)
	fmt.Fprintf(&buf, `<foreignObject x="0" y="0" width="%.0f" height="%.0f">`+"\n", w, h)
	buf.WriteString(`<div xmlns="http://www.w3.org/1999/xhtml" class="snapshot">` + "\n<style>")
	buf.WriteString(snapshotCSS)
	buf.WriteString(preview.Stylesheet)
	buf.WriteString("</style>\n")
	if err := preview.WriteHTML(&buf, el); err != nil {
		return nil, err
	}
	buf.WriteString("\n</div>\n</foreignObject>\n</svg>\n")
	return buf.Bytes(), nil
}

const snapshotCSS = `
.snapshot { font-family: Inter, system-ui, sans-serif; color: #0f172a; background: #f8fafc; width: 100%; height: 100%; }
`

// RenderPDF renders the preview of d and converts it to PDF.
func RenderPDF(ctx context.Context, reg *registry.Registry, d *ir.Dashboard, opts ...Option) ([]byte, error) {
	svg, err := Render(reg, d, opts...)
	if err != nil {
		return nil, err
	}
	return ToPDF(ctx, svg)
}

// RenderPNG renders the preview of d and converts it to PNG.
func RenderPNG(ctx context.Context, reg *registry.Registry, d *ir.Dashboard, opts ...Option) ([]byte, error) {
	o := newOptions(opts)
	svg, err := Render(reg, d, opts...)
	if err != nil {
		return nil, err
	}
	return ToPNG(ctx, svg, o.scale)
}

// =============================================================================
// Vector Export
// =============================================================================

// Result is the vector export serialized as SVG, together with the export
// document that produced it.
type Result struct {
	SVG      []byte
	Document *export.DocumentNode
}

// Export runs the vector exporter against an in-memory scene and returns the
// scene as SVG. Unknown and failing components are reported in the document
// rather than failing the export.
func Export(ctx context.Context, reg *registry.Registry, d *ir.Dashboard, opts ...Option) (*Result, error) {
	o := newOptions(opts)
	data, err := transfer.Marshal(transfer.FromDashboard(d, o.theme, o.now()))
	if err != nil {
		return nil, err
	}

	var bopts []export.Option
	if o.pageWidth > 0 {
		bopts = append(bopts, export.WithPageWidth(o.pageWidth))
	}
	s := scene.New()
	doc, err := export.NewBuilder(reg, s, o.logger, bopts...).Build(ctx, data)
	if err != nil {
		return nil, err
	}
	return &Result{SVG: s.SVG(), Document: doc}, nil
}
