package ir

import (
	"bytes"
	"strings"

	"github.com/google/uuid"
)

// Node is one component in the dashboard tree.
//
// Children are structurally meaningful only for container types (see the
// registry); backends ignore children on anything else rather than failing.
type Node struct {
	ID       string  `json:"id"`
	Type     string  `json:"type"`
	Props    Props   `json:"props"`
	Children []*Node `json:"children,omitempty"`
}

// MarshalJSON writes children whenever the slice is non-nil, so an empty
// container decodes back to an empty, non-nil slice.
func (n Node) MarshalJSON() ([]byte, error) {
	out := struct {
		ID       string   `json:"id"`
		Type     string   `json:"type"`
		Props    Props    `json:"props"`
		Children *[]*Node `json:"children,omitempty"`
	}{ID: n.ID, Type: n.Type, Props: n.Props}
	if n.Children != nil {
		out.Children = &n.Children
	}
	var buf bytes.Buffer
	if err := encodeValue(&buf, out); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// NewNode creates a node of the given type with a freshly assigned id.
func NewNode(typ string, props Props) *Node {
	return &Node{ID: NewID(typ), Type: typ, Props: props}
}

// NewID returns a new node id of the form "<type>-<8 hex chars>".
// Ids only need to be unique within one tree; the uuid suffix makes
// collisions between independently created nodes practically impossible.
func NewID(typ string) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	if typ == "" {
		return "node-" + suffix
	}
	return typ + "-" + suffix
}

// HasChildren reports whether n carries any children.
func (n *Node) HasChildren() bool { return len(n.Children) > 0 }

// Clone returns a deep copy of n, keeping ids.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	out := &Node{ID: n.ID, Type: n.Type, Props: n.Props.Clone()}
	if n.Children != nil {
		out.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			out.Children[i] = c.Clone()
		}
	}
	return out
}

// CloneWithNewIDs returns a deep copy of n where every node gets a fresh id.
func (n *Node) CloneWithNewIDs() *Node {
	out := n.Clone()
	Walk([]*Node{out}, func(c *Node, _ int) bool {
		c.ID = NewID(c.Type)
		return true
	})
	return out
}

// Walk visits nodes depth-first in document order. depth is 0 for the
// top-level list. Returning false from fn skips the node's children.
// Walk does not guard against cycles; call [Validate] on untrusted trees.
func Walk(nodes []*Node, fn func(n *Node, depth int) bool) {
	walk(nodes, 0, fn)
}

func walk(nodes []*Node, depth int, fn func(*Node, int) bool) {
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if fn(n, depth) {
			walk(n.Children, depth+1, fn)
		}
	}
}

// Find returns the node with the given id anywhere in the tree.
func Find(nodes []*Node, id string) (*Node, bool) {
	var found *Node
	Walk(nodes, func(n *Node, _ int) bool {
		if found != nil {
			return false
		}
		if n.ID == id {
			found = n
			return false
		}
		return true
	})
	return found, found != nil
}

// Count returns the total number of nodes in the tree.
func Count(nodes []*Node) int {
	count := 0
	Walk(nodes, func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// LayoutMode selects how top-level components are arranged.
type LayoutMode string

// Layout modes.
const (
	LayoutGrid  LayoutMode = "grid"
	LayoutFlex  LayoutMode = "flex"
	LayoutStack LayoutMode = "stack"
)

// Valid reports whether m is a known layout mode.
func (m LayoutMode) Valid() bool {
	switch m {
	case LayoutGrid, LayoutFlex, LayoutStack:
		return true
	}
	return false
}

// Layout describes the arrangement of the top-level component list.
type Layout struct {
	Mode    LayoutMode `json:"mode"`
	Columns int        `json:"columns,omitempty"`
	Gap     int        `json:"gap,omitempty"`
}

// DefaultLayout is a four-column grid with a 16px gap.
func DefaultLayout() Layout {
	return Layout{Mode: LayoutGrid, Columns: 4, Gap: 16}
}

// Dashboard is the configuration wrapper around the top-level node list.
// The order of Components drives both layout position and export z-order.
type Dashboard struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Layout      Layout  `json:"layout"`
	Components  []*Node `json:"components"`
}

// New creates an empty dashboard with the default layout.
func New(title string) *Dashboard {
	return &Dashboard{Title: title, Layout: DefaultLayout(), Components: []*Node{}}
}

// Clone returns a deep copy of d.
func (d *Dashboard) Clone() *Dashboard {
	out := *d
	out.Components = make([]*Node, len(d.Components))
	for i, n := range d.Components {
		out.Components[i] = n.Clone()
	}
	return &out
}

// EffectiveColumns returns the column count, at least 1.
func (l Layout) EffectiveColumns() int {
	if l.Columns < 1 {
		return 1
	}
	return l.Columns
}
