// Package scene is an in-memory [export.Host].
//
// A Scene records the node tree the exporter creates, enforces the
// load-font-before-text rule of real design hosts, keeps the notifications
// it receives, and serializes the result as SVG.
package scene

import (
	"context"
	"slices"
	"strconv"

	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/export"
	"github.com/matzehuels/dashforge/pkg/fonts"
)

// Kind is the type of a scene node.
type Kind string

// Node kinds.
const (
	KindContainer Kind = "container"
	KindText      Kind = "text"
	KindShape     Kind = "shape"
)

// Node is one created node.
type Node struct {
	Ref       export.Ref
	Kind      Kind
	Container export.ContainerSpec
	Text      export.TextSpec
	Shape     export.ShapeSpec
	Children  []*Node
}

// Name returns the Name field of whichever spec created the node.
func (n *Node) Name() string {
	switch n.Kind {
	case KindContainer:
		return n.Container.Name
	case KindText:
		return n.Text.Name
	}
	return n.Shape.Name
}

// Notification is a message passed to [Scene.Notify].
type Notification struct {
	Message string
	IsError bool
}

// FailFunc lets tests make a host call fail. op is "container", "text",
// "shape" or "font"; name is the node name or font name.
type FailFunc func(op, name string) error

// Option configures a Scene.
type Option func(*Scene)

// WithFailures installs a fault injector.
func WithFailures(f FailFunc) Option { return func(s *Scene) { s.fail = f } }

// Scene is an in-memory host. It is not safe for concurrent use.
type Scene struct {
	roots         []*Node
	nodes         map[export.Ref]*Node
	loaded        map[fonts.Font]bool
	fontLoads     int
	notifications []Notification
	next          int
	fail          FailFunc
}

var (
	_ export.Host    = (*Scene)(nil)
	_ export.Remover = (*Scene)(nil)
)

// New creates an empty scene.
func New(opts ...Option) *Scene {
	s := &Scene{
		nodes:  make(map[export.Ref]*Node),
		loaded: make(map[fonts.Font]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LoadFont marks f as available. Repeated loads are no-ops.
func (s *Scene) LoadFont(_ context.Context, f fonts.Font) error {
	if err := s.check("font", f.String()); err != nil {
		return err
	}
	if !s.loaded[f] {
		s.loaded[f] = true
		s.fontLoads++
	}
	return nil
}

// CreateContainer adds a frame.
func (s *Scene) CreateContainer(_ context.Context, parent export.Ref, spec export.ContainerSpec) (export.Ref, error) {
	if err := s.check("container", spec.Name); err != nil {
		return "", err
	}
	return s.add(parent, &Node{Kind: KindContainer, Container: spec})
}

// CreateText adds a text node. The font must be loaded.
func (s *Scene) CreateText(_ context.Context, parent export.Ref, spec export.TextSpec) (export.Ref, error) {
	if !s.loaded[spec.Font] {
		return "", errors.New(errors.ErrCodeFontNotLoaded, "font %s is not loaded", spec.Font)
	}
	if err := s.check("text", spec.Name); err != nil {
		return "", err
	}
	return s.add(parent, &Node{Kind: KindText, Text: spec})
}

// CreateShape adds a vector primitive.
func (s *Scene) CreateShape(_ context.Context, parent export.Ref, spec export.ShapeSpec) (export.Ref, error) {
	if err := s.check("shape", spec.Name); err != nil {
		return "", err
	}
	return s.add(parent, &Node{Kind: KindShape, Shape: spec})
}

// Remove detaches ref from its parent and forgets it and its descendants.
func (s *Scene) Remove(_ context.Context, ref export.Ref) error {
	n, ok := s.nodes[ref]
	if !ok {
		return errors.New(errors.ErrCodeHost, "unknown node %s", ref)
	}
	same := func(c *Node) bool { return c == n }
	s.roots = slices.DeleteFunc(s.roots, same)
	for _, p := range s.nodes {
		p.Children = slices.DeleteFunc(p.Children, same)
	}

	var forget func(*Node)
	forget = func(x *Node) {
		delete(s.nodes, x.Ref)
		for _, c := range x.Children {
			forget(c)
		}
	}
	forget(n)
	return nil
}

// Notify records a user notification.
func (s *Scene) Notify(_ context.Context, message string, isError bool) {
	s.notifications = append(s.notifications, Notification{Message: message, IsError: isError})
}

func (s *Scene) check(op, name string) error {
	if s.fail == nil {
		return nil
	}
	if err := s.fail(op, name); err != nil {
		return errors.Wrap(errors.ErrCodeHost, err, "%s %q rejected", op, name)
	}
	return nil
}

func (s *Scene) add(parent export.Ref, n *Node) (export.Ref, error) {
	s.next++
	n.Ref = export.Ref(string(n.Kind) + ":" + strconv.Itoa(s.next))

	if parent == "" {
		s.roots = append(s.roots, n)
	} else {
		p, ok := s.nodes[parent]
		if !ok {
			return "", errors.New(errors.ErrCodeHost, "unknown parent %s", parent)
		}
		if p.Kind != KindContainer {
			return "", errors.New(errors.ErrCodeHost, "parent %s is not a container", parent)
		}
		p.Children = append(p.Children, n)
	}
	s.nodes[n.Ref] = n
	return n.Ref, nil
}

// Roots returns the top-level nodes in creation order.
func (s *Scene) Roots() []*Node { return s.roots }

// Node returns the node for ref.
func (s *Scene) Node(ref export.Ref) (*Node, bool) {
	n, ok := s.nodes[ref]
	return n, ok
}

// Len returns the number of nodes in the scene.
func (s *Scene) Len() int { return len(s.nodes) }

// FontLoads returns how many distinct fonts were loaded.
func (s *Scene) FontLoads() int { return s.fontLoads }

// Notifications returns the notifications received so far.
func (s *Scene) Notifications() []Notification { return s.notifications }

// Walk visits every node depth-first in creation order.
func (s *Scene) Walk(fn func(n *Node, depth int)) {
	var walk func([]*Node, int)
	walk = func(nodes []*Node, depth int) {
		for _, n := range nodes {
			fn(n, depth)
			walk(n.Children, depth+1)
		}
	}
	walk(s.roots, 0)
}
