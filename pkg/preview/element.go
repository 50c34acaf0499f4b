package preview

import (
	"math"
	"strconv"
)

// Attr is one element attribute. Attributes keep their insertion order so
// serialized markup is byte-stable.
type Attr struct {
	Key string `json:"key"`
	Val string `json:"val"`
}

// Element is a node of the visual tree produced by the renderer.
// A text-only element has an empty Tag.
type Element struct {
	Tag      string     `json:"tag,omitempty"`
	Attrs    []Attr     `json:"attrs,omitempty"`
	Text     string     `json:"text,omitempty"`
	Children []*Element `json:"children,omitempty"`
}

// El creates an element with attributes given as alternating key/value pairs.
func El(tag string, kv ...string) *Element {
	e := &Element{Tag: tag}
	for i := 0; i+1 < len(kv); i += 2 {
		e.Attrs = append(e.Attrs, Attr{Key: kv[i], Val: kv[i+1]})
	}
	return e
}

// TextEl creates an element holding only text.
func TextEl(tag, text string, kv ...string) *Element {
	e := El(tag, kv...)
	e.Text = text
	return e
}

// Add appends children, skipping nils, and returns e for chaining.
func (e *Element) Add(children ...*Element) *Element {
	for _, c := range children {
		if c != nil {
			e.Children = append(e.Children, c)
		}
	}
	return e
}

// Attr returns the value of the attribute key.
func (e *Element) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Walk visits e and its descendants depth-first.
func (e *Element) Walk(fn func(*Element)) {
	if e == nil {
		return
	}
	fn(e)
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// FindComponent returns the rendered subtree of the component with node id.
func (e *Element) FindComponent(id string) (*Element, bool) {
	var found *Element
	e.Walk(func(x *Element) {
		if found != nil {
			return
		}
		if v, ok := x.Attr(attrNodeID); ok && v == id {
			found = x
		}
	})
	return found, found != nil
}

// Equal reports whether two trees are structurally identical.
func Equal(a, b *Element) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Tag != b.Tag || a.Text != b.Text || len(a.Attrs) != len(b.Attrs) || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Attrs {
		if a.Attrs[i] != b.Attrs[i] {
			return false
		}
	}
	for i := range a.Children {
		if !Equal(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}

// num formats a coordinate with at most two decimals.
func num(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}
