// Package pkg provides the core libraries for Dashforge dashboard building.
//
// # Overview
//
// Dashforge treats a dashboard as an ordered tree of typed components. The
// tree is a single intermediate representation ([ir]) that every backend
// reads: an HTML preview, React/TSX source, a portable transfer file, and a
// vector document that can be rasterized to SVG, PNG, or PDF.
//
// # Architecture
//
// The typical data flow through Dashforge:
//
//	preset / dashboard JSON / transfer file
//	         ↓
//	    [editor] package (select, add, move, edit props)
//	         ↓
//	    [ir] package (validated component tree)
//	         ↓
//	    [pipeline] package (cache, fan out to backends)
//	         ↓
//	    [preview] HTML · [codegen] TSX · [transfer] JSON · [export] vector
//
// # Quick Start
//
// Load a preset and generate its component source:
//
//	import (
//	    "github.com/matzehuels/dashforge/pkg/codegen"
//	    "github.com/matzehuels/dashforge/pkg/preset"
//	    "github.com/matzehuels/dashforge/pkg/registry"
//	)
//
//	reg := registry.Default()
//	d, _ := preset.Load(reg, preset.Analytics)
//	src := codegen.New(reg).EmitDashboard(d)
//
// # Main Packages
//
//   - [registry]: the component catalog (types, defaults, editable props)
//   - [ir]: nodes, ordered props, tree walking and validation
//   - [editor]: the editing session and its operations
//   - [preset]: built-in and TOML starting dashboards
//   - [sample]: fixed datasets that charts draw
//   - [preview]: the HTML renderer
//   - [codegen]: the React/TSX generator
//   - [transfer]: the versioned export/import message
//   - [export]: the vector exporter and its host interface
//   - [snapshot]: SVG to PNG/PDF conversion
//   - [outline]: Graphviz views of the tree
//   - [pipeline]: render orchestration with caching
//
// Supporting packages: [cache], [httputil], [fonts], [errors],
// [observability], and [buildinfo].
package pkg
