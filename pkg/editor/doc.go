// Package editor maintains the dashboard being edited: the ordered
// top-level component list, insertion with registry defaults, property
// edits, and the current selection.
//
// Reordering is the classic array move ([MoveItem]); it is a permutation,
// so a move followed by the reverse move restores the original order.
// Selection is independent of order and is cleared whenever the selected
// node is deleted.
package editor
