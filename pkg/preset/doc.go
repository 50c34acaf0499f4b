// Package preset provides starting dashboards.
//
// Three presets are built in (blank, analytics and sales); more can be
// loaded from TOML files of the same shape:
//
//	title = "Ops"
//
//	[layout]
//	mode = "grid"
//	columns = 3
//
//	[[components]]
//	id = "uptime"
//	type = "stat-card"
//	[components.props]
//	title = "Uptime"
//	value = "99.98%"
//
// Components are seeded with registry defaults, so a preset only lists the
// properties it changes.
package preset
