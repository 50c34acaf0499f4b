package export

import (
	"github.com/matzehuels/dashforge/pkg/fonts"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
)

const (
	containerPad    = 16.0
	containerHeader = 40.0
)

type slot struct {
	n    *ir.Node
	x, y float64
}

type arrangement struct {
	Size  registry.Size
	Slots []slot
}

// arrangeContainer positions the known children of a container. A columns
// prop arranges a grid of equal cells, direction "row" a horizontal strip,
// anything else a vertical stack. Unknown children take no space.
func arrangeContainer(r *run, n *ir.Node, def registry.Definition, depth int) arrangement {
	gap := max(n.Props.Float("gap", 16), 0)
	top := containerPad
	if n.Props.Has("title") {
		top += containerHeader
	}

	var (
		kids  []*ir.Node
		sizes []registry.Size
	)
	for _, c := range n.Children {
		if r.known(c) {
			kids = append(kids, c)
			sizes = append(sizes, r.size(c, depth+1))
		}
	}
	if len(kids) == 0 {
		return arrangement{Size: def.Size}
	}

	out := arrangement{Slots: make([]slot, len(kids))}
	var contentW, contentH float64
	switch {
	case n.Props.Has("columns"):
		cols := min(max(int(n.Props.Float("columns", 2)), 1), 12)
		var cellW float64
		for _, s := range sizes {
			cellW = max(cellW, s.W)
		}
		y := top
		for rowStart := 0; rowStart < len(kids); rowStart += cols {
			var rowH float64
			for i := rowStart; i < min(rowStart+cols, len(kids)); i++ {
				col := i - rowStart
				out.Slots[i] = slot{kids[i], containerPad + float64(col)*(cellW+gap), y}
				rowH = max(rowH, sizes[i].H)
			}
			y += rowH + gap
		}
		used := min(cols, len(kids))
		contentW = float64(used)*cellW + float64(used-1)*gap
		contentH = y - gap - top
	case n.Props.String("direction", "") == "row":
		x := containerPad
		for i, s := range sizes {
			out.Slots[i] = slot{kids[i], x, top}
			x += s.W + gap
			contentH = max(contentH, s.H)
		}
		contentW = x - gap - containerPad
	default:
		y := top
		for i, s := range sizes {
			out.Slots[i] = slot{kids[i], containerPad, y}
			y += s.H + gap
			contentW = max(contentW, s.W)
		}
		contentH = y - gap - top
	}
	out.Size = registry.Size{W: contentW + 2*containerPad, H: top + contentH + containerPad}
	return out
}

// buildContainer draws the optional card title and builds each child in its
// slot. Children fail and skip individually, like top-level components.
func buildContainer(r *run, frame Ref, n *ir.Node, def registry.Definition, _ registry.Size, depth int) error {
	if n.Props.Has("title") {
		if err := r.text(frame, TextSpec{
			Name: "Title", Text: n.Props.String("title", ""), X: containerPad, Y: containerPad,
			Font: fonts.SemiBold, Size: 16,
		}); err != nil {
			return err
		}
	}
	if depth+1 >= maxDepth {
		return nil
	}
	for _, c := range n.Children {
		if !r.known(c) {
			r.skip(c)
		}
	}
	for _, s := range arrangeContainer(r, n, def, depth).Slots {
		_, _ = r.node(frame, s.n, s.x, s.y, depth+1)
	}
	return nil
}
