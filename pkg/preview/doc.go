// Package preview renders dashboard IR trees into visual element trees.
//
// [Renderer.Render] dispatches on the registry Kind of each node, one handler
// per Kind. It is pure: no I/O, no clocks, no randomness, so rendering the
// same tree twice yields [Equal] results and it is safe to call on every edit.
//
// Chart kinds always draw the fixed datasets from package sample; node props
// only set the title and colors. Tables and lists read their rows from props
// and render empty when none are set.
//
// An unknown type tag, or a handler that panics, produces an
// "unknown-component" placeholder element in place of that node; siblings
// and the rest of the dashboard render normally.
//
// Element trees serialize with [WriteHTML] and [WritePage]. The markup is also
// well-formed XML, which is what package snapshot relies on.
package preview
