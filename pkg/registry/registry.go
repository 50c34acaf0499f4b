package registry

import (
	"slices"

	"github.com/matzehuels/dashforge/pkg/errors"
)

// Registry is an immutable catalog of component definitions keyed by type tag.
// Build it once and inject it into every backend; there is no package-level
// instance to reach for.
type Registry struct {
	defs  map[string]Definition
	order []string
}

// New builds a registry from definitions. Declaration order is kept for
// listings. It fails on invalid or duplicate type tags, or on a definition
// without a Kind.
func New(defs ...Definition) (*Registry, error) {
	r := &Registry{defs: make(map[string]Definition, len(defs))}
	for _, d := range defs {
		if err := errors.ValidateTypeTag(d.Type); err != nil {
			return nil, err
		}
		if _, dup := r.defs[d.Type]; dup {
			return nil, errors.New(errors.ErrCodeInvalidInput, "duplicate definition for %q", d.Type)
		}
		if d.Kind == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "definition %q has no kind", d.Type)
		}
		if d.CodeName == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "definition %q has no code name", d.Type)
		}
		d.Defaults = d.Defaults.Clone()
		d.Editable = slices.Clone(d.Editable)
		r.defs[d.Type] = d
		r.order = append(r.order, d.Type)
	}
	return r, nil
}

// Lookup returns the definition for a type tag. An unknown tag returns false;
// callers treat the node as uneditable rather than failing.
func (r *Registry) Lookup(typ string) (Definition, bool) {
	if r == nil {
		return Definition{}, false
	}
	d, ok := r.defs[typ]
	if !ok {
		return Definition{}, false
	}
	d.Defaults = d.Defaults.Clone()
	return d, true
}

// IsContainer reports whether typ is a registered container type.
func (r *Registry) IsContainer(typ string) bool {
	d, ok := r.Lookup(typ)
	return ok && d.Container
}

// Types returns all registered type tags in declaration order.
func (r *Registry) Types() []string {
	return slices.Clone(r.order)
}

// Definitions returns all definitions in declaration order.
func (r *Registry) Definitions() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, t := range r.order {
		d, _ := r.Lookup(t)
		out = append(out, d)
	}
	return out
}

// ByCategory returns the definitions of one category in declaration order.
func (r *Registry) ByCategory(c Category) []Definition {
	var out []Definition
	for _, d := range r.Definitions() {
		if d.Category == c {
			out = append(out, d)
		}
	}
	return out
}
