// Package codegen emits component source text from dashboard IR trees.
//
// The output nests exactly like the IR: an opening tag carrying the node's
// props, the children, and a closing tag, or a self-closing tag for nodes
// without children. String props are written as quoted attributes; numbers,
// booleans, arrays and objects as braced literals. Output is deterministic:
// the same tree at the same indent always produces the same bytes.
//
// The text is a one-way download artifact. Nothing reads it back.
package codegen
