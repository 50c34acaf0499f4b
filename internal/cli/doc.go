// Package cli implements the dashforge command-line interface.
//
// Every command loads a dashboard from a source (a JSON dashboard, a
// transfer file, a TOML preset file, an http(s) URL, or "preset:<name>"),
// hands it to one of the backends and writes the result.
//
// # Commands
//
//   - new: Start a dashboard from a preset
//   - render: Produce html, svg, png, pdf, tsx, json, transfer, vector or dot artifacts
//   - codegen: Print React/TSX source
//   - export, import: Convert to and from the transfer format
//   - edit: Reorder and edit components in a terminal UI
//   - outline: Draw the component tree as a Graphviz diagram
//   - registry: List component types
//   - serve: Run the HTTP API
//   - cache: Manage the artifact cache
//
// # Configuration
//
// Settings come from defaults, dashforge.yaml, DASHFORGE_* environment
// variables and flags, in increasing precedence. All commands support
// --verbose (-v) for debug-level logging.
package cli
