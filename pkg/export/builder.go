package export

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/fonts"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/observability"
	"github.com/matzehuels/dashforge/pkg/registry"
	"github.com/matzehuels/dashforge/pkg/transfer"
)

const (
	defaultPageWidth = 1440.0
	pagePadding      = 40.0
	pageGap          = 24.0
	titleHeight      = 56.0
	maxDepth         = 32
)

// Option configures a [Builder].
type Option func(*Builder)

// WithPageWidth sets the width top-level frames wrap at (default 1440).
func WithPageWidth(w float64) Option {
	return func(b *Builder) {
		if w > 0 {
			b.pageWidth = w
		}
	}
}

// Builder rebuilds a dashboard as native shapes in a [Host].
type Builder struct {
	reg       *registry.Registry
	host      Host
	logger    *log.Logger
	pageWidth float64
	handlers  map[registry.Kind]kindBuilder
}

// kindBuilder draws one node into frame, which was already created at the
// node's measured size with the node's surface style.
type kindBuilder func(r *run, frame Ref, n *ir.Node, def registry.Definition, size registry.Size, depth int) error

// NewBuilder creates a builder. A nil logger discards log output.
func NewBuilder(reg *registry.Registry, host Host, logger *log.Logger, opts ...Option) *Builder {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	b := &Builder{
		reg:       reg,
		host:      host,
		logger:    logger,
		pageWidth: defaultPageWidth,
		handlers: map[registry.Kind]kindBuilder{
			registry.KindStatTile:  buildStatTile,
			registry.KindMiniTile:  buildMiniTile,
			registry.KindAlertTile: buildAlertTile,
			registry.KindLine:      buildLineChart,
			registry.KindArea:      buildAreaChart,
			registry.KindBar:       buildBarChart,
			registry.KindPie:       buildPieChart,
			registry.KindTable:     buildTable,
			registry.KindList:      buildList,
			registry.KindContainer: buildContainer,
			registry.KindHeading:   buildHeading,
			registry.KindText:      buildText,
			registry.KindBadge:     buildBadge,
			registry.KindButton:    buildButton,
			registry.KindInput:     buildInput,
			registry.KindSelect:    buildSelect,
			registry.KindDivider:   buildDivider,
		},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build parses a serialized transfer message and recreates its components
// in the host, in list order, so later components sit above earlier ones.
//
// Failures are handled at two levels. A node that fails or panics is
// recorded in DocumentNode.Failures and the build continues; an unknown
// type is logged and recorded in DocumentNode.Skipped. A failure of the
// whole operation (undecodable payload, fonts unavailable, root frame
// rejected) returns an error. Either way the host receives exactly one
// notification.
func (b *Builder) Build(ctx context.Context, data []byte) (*DocumentNode, error) {
	start := time.Now()
	hooks := observability.Export()

	msg, err := transfer.Parse(data)
	if err != nil {
		return nil, b.abort(ctx, start, "Import failed", err)
	}
	hooks.OnExportStart(ctx, msg.Name, ir.Count(msg.Components))
	b.logger.Debug("building document", "name", msg.Name, "components", len(msg.Components))

	r := &run{
		b:       b,
		ctx:     ctx,
		theme:   msg.Theme,
		loaded:  make(map[fonts.Font]bool),
		doc:     &DocumentNode{Name: msg.Name},
		measure: make(map[*ir.Node]registry.Size),
	}
	if err := r.loadFonts(); err != nil {
		return nil, b.abort(ctx, start, "Export failed", err)
	}
	if err := r.page(msg.Components); err != nil {
		return nil, b.abort(ctx, start, "Export failed", err)
	}

	doc := r.doc
	isError := len(doc.Components) == 0 && len(doc.Failures) > 0
	b.host.Notify(ctx, doc.Summary(), isError)
	b.logger.Info("export complete",
		"exported", len(doc.Components), "skipped", len(doc.Skipped), "failed", len(doc.Failures))
	hooks.OnExportComplete(ctx, len(doc.Components), len(doc.Skipped), len(doc.Failures), time.Since(start), nil)
	return doc, nil
}

func (b *Builder) abort(ctx context.Context, start time.Time, prefix string, err error) error {
	b.logger.Error(prefix, "err", err)
	b.host.Notify(ctx, prefix+": "+errors.UserMessage(err), true)
	observability.Export().OnExportComplete(ctx, 0, 0, 0, time.Since(start), err)
	return err
}

// run holds the state of one Build call.
type run struct {
	b       *Builder
	ctx     context.Context
	theme   transfer.Theme
	loaded  map[fonts.Font]bool
	doc     *DocumentNode
	measure map[*ir.Node]registry.Size
}

func (r *run) loadFonts() error {
	for _, f := range fonts.All() {
		if err := r.ensureFont(f); err != nil {
			return err
		}
	}
	return nil
}

// ensureFont loads f once per run. Every text path goes through it.
func (r *run) ensureFont(f fonts.Font) error {
	if r.loaded[f] {
		return nil
	}
	if err := r.b.host.LoadFont(r.ctx, f); err != nil {
		return errors.Wrap(errors.ErrCodeFontNotLoaded, err, "load font %s", f)
	}
	r.loaded[f] = true
	return nil
}

func (r *run) text(parent Ref, spec TextSpec) error {
	if err := r.ensureFont(spec.Font); err != nil {
		return err
	}
	if spec.Color == "" {
		spec.Color = colorText
	}
	if _, err := r.b.host.CreateText(r.ctx, parent, spec); err != nil {
		return fmt.Errorf("text %q: %w", spec.Name, err)
	}
	return nil
}

func (r *run) shape(parent Ref, spec ShapeSpec) error {
	if _, err := r.b.host.CreateShape(r.ctx, parent, spec); err != nil {
		return fmt.Errorf("%s %q: %w", spec.Kind, spec.Name, err)
	}
	return nil
}

func (r *run) container(parent Ref, spec ContainerSpec) (Ref, error) {
	ref, err := r.b.host.CreateContainer(r.ctx, parent, spec)
	if err != nil {
		return "", fmt.Errorf("frame %q: %w", spec.Name, err)
	}
	return ref, nil
}

// page lays the top-level components out left to right, wrapping at the
// page width, and builds each into the root frame.
func (r *run) page(nodes []*ir.Node) error {
	type placed struct {
		n    *ir.Node
		x, y float64
		size registry.Size
	}

	var (
		items       []placed
		x, y        = pagePadding, pagePadding + titleHeight
		rowH, pageW float64
	)
	limit := r.b.pageWidth - pagePadding
	for _, n := range nodes {
		if !r.known(n) {
			continue
		}
		size := r.size(n, 0)
		if x > pagePadding && x+size.W > limit {
			x, y = pagePadding, y+rowH+pageGap
			rowH = 0
		}
		items = append(items, placed{n, x, y, size})
		pageW = max(pageW, x+size.W+pagePadding)
		rowH = max(rowH, size.H)
		x += size.W + pageGap
	}
	pageH := y + rowH + pagePadding
	if len(items) == 0 {
		pageW, pageH = r.b.pageWidth, pagePadding*2+titleHeight
	}

	root, err := r.container("", ContainerSpec{
		Name: pageName(r.doc.Name), W: pageW, H: pageH, Fill: colorPage,
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeHost, err, "create page frame")
	}
	r.doc.Ref, r.doc.W, r.doc.H = root, pageW, pageH

	if err := r.text(root, TextSpec{
		Name: "Title", Text: pageName(r.doc.Name), X: pagePadding, Y: pagePadding,
		Font: fonts.Bold, Size: 24,
	}); err != nil {
		return errors.Wrap(errors.ErrCodeHost, err, "create page title")
	}

	// Unknown top-level nodes are recorded in document order.
	for _, n := range nodes {
		if !r.known(n) {
			r.skip(n)
		}
	}
	for _, it := range items {
		ref, err := r.node(root, it.n, it.x, it.y, 0)
		if err != nil {
			continue
		}
		r.doc.Components = append(r.doc.Components, Frame{
			NodeID: it.n.ID, Type: it.n.Type, Ref: ref,
			X: it.x, Y: it.y, W: it.size.W, H: it.size.H,
		})
	}
	return nil
}

func pageName(name string) string {
	if name == "" {
		return "Dashboard"
	}
	return name
}

func (r *run) known(n *ir.Node) bool {
	if n == nil {
		return false
	}
	def, ok := r.b.reg.Lookup(n.Type)
	if !ok {
		return false
	}
	_, ok = r.b.handlers[def.Kind]
	return ok
}

func (r *run) skip(n *ir.Node) {
	id, typ := "", ""
	if n != nil {
		id, typ = n.ID, n.Type
	}
	r.b.logger.Warn("skipping unknown component", "id", id, "type", typ)
	r.doc.Skipped = append(r.doc.Skipped, Skip{NodeID: id, Type: typ})
	observability.Export().OnNodeSkipped(r.ctx, id, typ)
}

// node builds one known node at (x, y) inside parent. Any error or panic is
// recorded as a node failure and returned so the caller can leave it out;
// it never propagates further. The partial frame is removed when the host
// is a [Remover].
func (r *run) node(parent Ref, n *ir.Node, x, y float64, depth int) (ref Ref, err error) {
	def, _ := r.b.reg.Lookup(n.Type)
	size := r.size(n, depth)

	var frame Ref
	defer func() {
		if rec := recover(); rec != nil {
			err = errors.New(errors.ErrCodeInternal, "panic: %v", rec)
		}
		if err != nil {
			nerr := &errors.NodeError{NodeID: n.ID, Type: n.Type, Err: err}
			r.b.logger.Error("component failed", "id", n.ID, "type", n.Type, "err", err)
			r.doc.Failures = append(r.doc.Failures, nerr)
			observability.Export().OnNodeFailed(r.ctx, n.ID, n.Type, err)
			r.discard(frame)
			ref = ""
		}
	}()

	spec := surface(n, def)
	spec.Name, spec.X, spec.Y, spec.W, spec.H = def.Name, x, y, size.W, size.H
	frame, err = r.container(parent, spec)
	if err != nil {
		return "", err
	}
	r.b.logger.Debug("building component", "id", n.ID, "type", n.Type, "x", x, "y", y)
	if err := r.b.handlers[def.Kind](r, frame, n, def, size, depth); err != nil {
		return "", err
	}
	return frame, nil
}

func (r *run) discard(frame Ref) {
	rm, ok := r.b.host.(Remover)
	if frame == "" || !ok {
		return
	}
	if err := rm.Remove(r.ctx, frame); err != nil {
		r.b.logger.Warn("could not remove failed frame", "ref", frame, "err", err)
	}
}

// size returns the frame size of a known node. Leaves use their registry
// size; containers grow to fit their arranged children.
func (r *run) size(n *ir.Node, depth int) registry.Size {
	if s, ok := r.measure[n]; ok {
		return s
	}
	def, _ := r.b.reg.Lookup(n.Type)
	s := def.Size
	if def.Container && depth < maxDepth {
		s = arrangeContainer(r, n, def, depth).Size
	}
	r.measure[n] = s
	return s
}
