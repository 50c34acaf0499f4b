// Package registry is the catalog of dashboard component types.
//
// Each [Definition] is the single descriptor for one type tag: display
// metadata, default properties, editable-property descriptors for a generic
// property panel, and the rendering hints ([Kind], [Sample], CodeName, Size)
// that the preview renderer, code generator and vector exporter dispatch on.
// Adding a type that reuses an existing Kind needs only a new Definition.
//
// A [Registry] is immutable once built. Construct it once, usually with
// [Default], and pass it to every consumer:
//
//	reg := registry.Default()
//	r := preview.New(reg)
//	g := codegen.New(reg)
//
// Lookups of unknown type tags return false. Callers treat such nodes as
// uneditable and never fail on them.
package registry
