// Package server exposes the dashboard pipeline over HTTP.
//
// Routes (all under /api):
//
//	GET  /health              build information
//	GET  /registry            every component definition
//	GET  /registry/{type}     one component definition
//	GET  /presets             built-in preset names
//	GET  /presets/{name}      a preset as dashboard JSON
//	POST /preview             dashboard JSON in, HTML preview out
//	POST /codegen             dashboard JSON in, TSX module out
//	POST /export?format=svg   dashboard JSON in, svg|png|pdf|vector out
//	POST /transfer            dashboard JSON in, transfer message out
//	POST /import              transfer message in, dashboard JSON out
//
// POST bodies may be plain dashboard JSON or a transfer message. Errors are
// written as {"error": {"code": ..., "message": ...}} with a status derived
// from the error code.
//
// Each request works on its own decoded dashboard, so handlers share nothing
// but the registry and the pipeline runner.
package server
