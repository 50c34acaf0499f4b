package editor

import (
	"slices"
	"time"

	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
	"github.com/matzehuels/dashforge/pkg/transfer"
)

// DefaultTitle is the title of a new, empty session.
const DefaultTitle = "Untitled Dashboard"

// Session is one editor's in-memory dashboard plus its selection.
//
// Every mutation is synchronous and either applies fully or leaves the
// dashboard unchanged. A Session is not safe for concurrent use.
type Session struct {
	reg      *registry.Registry
	dash     *ir.Dashboard
	selected string
}

// NewSession creates a session holding an empty dashboard.
func NewSession(reg *registry.Registry) *Session {
	return &Session{reg: reg, dash: ir.New(DefaultTitle)}
}

// Open creates a session seeded with a copy of d.
func Open(reg *registry.Registry, d *ir.Dashboard) (*Session, error) {
	if err := ir.ValidateDashboard(d); err != nil {
		return nil, err
	}
	return &Session{reg: reg, dash: d.Clone()}, nil
}

// Registry returns the registry the session seeds nodes from.
func (s *Session) Registry() *registry.Registry { return s.reg }

// Dashboard returns a deep copy of the current dashboard.
func (s *Session) Dashboard() *ir.Dashboard { return s.dash.Clone() }

// Len returns the number of top-level components.
func (s *Session) Len() int { return len(s.dash.Components) }

// Add appends a new node of type typ to the top-level list, seeded with the
// registry defaults, and returns a copy of it.
func (s *Session) Add(typ string) (*ir.Node, error) {
	n, err := s.newNode(typ)
	if err != nil {
		return nil, err
	}
	s.dash.Components = append(s.dash.Components, n)
	return n.Clone(), nil
}

// AddChild appends a new node to the children of the container parentID.
func (s *Session) AddChild(parentID, typ string) (*ir.Node, error) {
	parent, ok := ir.Find(s.dash.Components, parentID)
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "component %q not found", parentID)
	}
	if !s.reg.IsContainer(parent.Type) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "component %q (%s) cannot hold children", parentID, parent.Type)
	}
	n, err := s.newNode(typ)
	if err != nil {
		return nil, err
	}
	parent.Children = append(parent.Children, n)
	return n.Clone(), nil
}

func (s *Session) newNode(typ string) (*ir.Node, error) {
	def, ok := s.reg.Lookup(typ)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownType, "unknown component type %q", typ)
	}
	n := ir.NewNode(typ, def.DefaultProps())
	for s.exists(n.ID) {
		n.ID = ir.NewID(typ)
	}
	return n, nil
}

func (s *Session) exists(id string) bool {
	_, ok := ir.Find(s.dash.Components, id)
	return ok
}

// Delete removes the node id, wherever it is in the tree, together with its
// children. The selection is cleared when it pointed at a removed node.
func (s *Session) Delete(id string) error {
	removed, ok := removeNode(&s.dash.Components, id)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "component %q not found", id)
	}
	if s.selected != "" {
		if _, gone := ir.Find([]*ir.Node{removed}, s.selected); gone {
			s.selected = ""
		}
	}
	return nil
}

func removeNode(list *[]*ir.Node, id string) (*ir.Node, bool) {
	for i, n := range *list {
		if n.ID == id {
			*list = slices.Delete(*list, i, i+1)
			return n, true
		}
		if removed, ok := removeNode(&n.Children, id); ok {
			return removed, true
		}
	}
	return nil, false
}

// Move reorders the top-level list with [MoveItem]. Selection is unaffected.
func (s *Session) Move(from, to int) error {
	out, err := MoveItem(s.dash.Components, from, to)
	if err != nil {
		return err
	}
	s.dash.Components = out
	return nil
}

// MoveByID shifts a top-level node by delta positions, stopping at either end.
func (s *Session) MoveByID(id string, delta int) error {
	from := s.Index(id)
	if from < 0 {
		return errors.New(errors.ErrCodeNotFound, "top-level component %q not found", id)
	}
	to := min(max(from+delta, 0), len(s.dash.Components)-1)
	return s.Move(from, to)
}

// Index returns the top-level position of id, or -1.
func (s *Session) Index(id string) int {
	return slices.IndexFunc(s.dash.Components, func(n *ir.Node) bool { return n.ID == id })
}

// Select marks id as the node being edited. An empty id clears the selection.
func (s *Session) Select(id string) error {
	if id != "" && !s.exists(id) {
		return errors.New(errors.ErrCodeNotFound, "component %q not found", id)
	}
	s.selected = id
	return nil
}

// SelectedID returns the selected node id, or "".
func (s *Session) SelectedID() string { return s.selected }

// Selected returns a copy of the selected node.
func (s *Session) Selected() (*ir.Node, bool) {
	if s.selected == "" {
		return nil, false
	}
	n, ok := ir.Find(s.dash.Components, s.selected)
	if !ok {
		return nil, false
	}
	return n.Clone(), true
}

// Editable returns the property descriptors for node id. Nodes of unknown
// type report false: they are shown but cannot be edited.
func (s *Session) Editable(id string) ([]registry.PropDescriptor, bool) {
	n, ok := ir.Find(s.dash.Components, id)
	if !ok {
		return nil, false
	}
	def, ok := s.reg.Lookup(n.Type)
	if !ok {
		return nil, false
	}
	return def.Editable, true
}

// SetProp sets one editable property on node id. Select widgets only accept
// their listed options.
func (s *Session) SetProp(id, key string, value any) error {
	n, ok := ir.Find(s.dash.Components, id)
	if !ok {
		return errors.New(errors.ErrCodeNotFound, "component %q not found", id)
	}
	def, ok := s.reg.Lookup(n.Type)
	if !ok {
		return errors.New(errors.ErrCodeUnknownType, "component %q has unknown type %q and is not editable", id, n.Type)
	}
	if _, ok := def.Descriptor(key); !ok {
		return errors.New(errors.ErrCodeInvalidInput, "%s has no editable property %q", def.Type, key)
	}
	if !def.Allows(key, value) {
		return errors.New(errors.ErrCodeInvalidInput, "value %v not allowed for %s.%s", value, def.Type, key)
	}
	n.Props.Set(key, value)
	return nil
}

// Duplicate inserts a copy of node id, with fresh ids throughout, right
// after the original in the same list, and returns a copy of it.
func (s *Session) Duplicate(id string) (*ir.Node, error) {
	list, idx := locate(&s.dash.Components, id)
	if list == nil {
		return nil, errors.New(errors.ErrCodeNotFound, "component %q not found", id)
	}
	dup := (*list)[idx].CloneWithNewIDs()
	ir.Walk([]*ir.Node{dup}, func(n *ir.Node, _ int) bool {
		for s.exists(n.ID) {
			n.ID = ir.NewID(n.Type)
		}
		return true
	})
	*list = slices.Insert(*list, idx+1, dup)
	return dup.Clone(), nil
}

func locate(list *[]*ir.Node, id string) (*[]*ir.Node, int) {
	for i, n := range *list {
		if n.ID == id {
			return list, i
		}
		if l, j := locate(&n.Children, id); l != nil {
			return l, j
		}
	}
	return nil, -1
}

// SetTitle sets the dashboard title and description.
func (s *Session) SetTitle(title, description string) {
	s.dash.Title = title
	s.dash.Description = description
}

// SetLayout replaces the layout descriptor.
func (s *Session) SetLayout(l ir.Layout) error {
	d := *s.dash
	d.Layout = l
	if err := ir.ValidateDashboard(&d); err != nil {
		return err
	}
	s.dash.Layout = l
	return nil
}

// Import replaces the dashboard with a decoded one. Both the raw dashboard
// JSON and transfer messages are accepted. On any failure the current
// dashboard and selection are left untouched.
func (s *Session) Import(data []byte) error {
	d, err := transfer.DecodeDashboard(data)
	if err != nil {
		return err
	}
	s.dash = d
	s.selected = ""
	return nil
}

// Export serializes the dashboard as a transfer message.
func (s *Session) Export(theme transfer.Theme, now time.Time) ([]byte, error) {
	return transfer.Marshal(transfer.FromDashboard(s.dash, theme, now))
}
