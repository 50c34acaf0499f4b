package ir

import (
	"github.com/matzehuels/dashforge/pkg/errors"
)

// Validate checks the structural invariants of a component tree:
//   - every node has a valid id and a non-empty type tag
//   - ids are unique across the whole tree
//   - no node appears among its own descendants (the tree is acyclic)
//
// Validate does not consult the registry: unknown types and children on
// non-container types are legal IR that backends degrade around.
func Validate(nodes []*Node) error {
	v := validator{
		ids:     make(map[string]struct{}),
		onStack: make(map[*Node]struct{}),
	}
	return v.check(nodes)
}

type validator struct {
	ids     map[string]struct{}
	onStack map[*Node]struct{}
}

func (v *validator) check(nodes []*Node) error {
	for _, n := range nodes {
		if n == nil {
			return errors.New(errors.ErrCodeInvalidTree, "nil node in component list")
		}
		if _, cyclic := v.onStack[n]; cyclic {
			return errors.New(errors.ErrCodeInvalidTree, "node %q is its own ancestor", n.ID)
		}
		if err := errors.ValidateNodeID(n.ID); err != nil {
			return err
		}
		if n.Type == "" {
			return errors.New(errors.ErrCodeInvalidTree, "node %q has no type", n.ID)
		}
		if _, dup := v.ids[n.ID]; dup {
			return errors.New(errors.ErrCodeInvalidTree, "duplicate node id %q", n.ID)
		}
		v.ids[n.ID] = struct{}{}

		v.onStack[n] = struct{}{}
		if err := v.check(n.Children); err != nil {
			return err
		}
		delete(v.onStack, n)
	}
	return nil
}

// ValidateDashboard validates the layout descriptor and the component tree.
func ValidateDashboard(d *Dashboard) error {
	if d == nil {
		return errors.New(errors.ErrCodeInvalidInput, "dashboard is nil")
	}
	if d.Layout.Mode != "" && !d.Layout.Mode.Valid() {
		return errors.New(errors.ErrCodeInvalidInput, "invalid layout mode %q (must be grid, flex or stack)", d.Layout.Mode)
	}
	if d.Layout.Columns < 0 || d.Layout.Columns > 12 {
		return errors.New(errors.ErrCodeInvalidInput, "layout columns must be between 0 and 12, got %d", d.Layout.Columns)
	}
	return Validate(d.Components)
}
