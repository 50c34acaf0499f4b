package export

import (
	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
)

// Palette used for frames and neutral text.
const (
	colorSurface = "#ffffff"
	colorPage    = "#f8fafc"
	colorBorder  = "#e2e8f0"
	colorText    = "#0f172a"
	colorMuted   = "#64748b"
	colorGrid    = "#f1f5f9"
)

// changeColors encodes the direction of a stat delta.
var changeColors = map[string]string{
	"positive": "#16a34a",
	"negative": "#dc2626",
	"neutral":  colorMuted,
}

// trendColors encodes mini-stat trends.
var trendColors = map[string]string{
	"up":   "#16a34a",
	"down": "#dc2626",
}

// tone is the fill, border and foreground of a semantic state.
type tone struct {
	Fill, Border, Text string
}

var severityTones = map[string]tone{
	"info":    {"#eff6ff", "#bfdbfe", "#1d4ed8"},
	"success": {"#f0fdf4", "#bbf7d0", "#15803d"},
	"warning": {"#fffbeb", "#fde68a", "#b45309"},
	"error":   {"#fef2f2", "#fecaca", "#b91c1c"},
}

// statusTones are the two pill colors of the table status column.
var statusTones = map[bool]tone{
	true:  {"#dcfce7", "", "#166534"},
	false: {"#f1f5f9", "", "#475569"},
}

var variantTones = map[string]tone{
	"default":     {colorText, "", colorSurface},
	"secondary":   {"#f1f5f9", "", colorText},
	"destructive": {"#dc2626", "", colorSurface},
	"outline":     {colorSurface, colorBorder, colorText},
	"ghost":       {colorSurface, "", colorText},
}

// lookup returns m[key], or m[def] when key is not in m.
func lookup[V any](m map[string]V, key, def string) V {
	if v, ok := m[key]; ok {
		return v
	}
	return m[def]
}

// validColor returns c when it is a hex color, otherwise def.
func validColor(c, def string) string {
	if errors.ValidateColor(c) != nil {
		return def
	}
	return c
}

// surface returns the frame styling of a node: cards get a white bordered
// surface, alerts and pills take their state colors, the rest stay clear.
func surface(n *ir.Node, def registry.Definition) ContainerSpec {
	card := ContainerSpec{Fill: colorSurface, Stroke: colorBorder, StrokeWidth: 1, CornerRadius: 12}
	switch def.Kind {
	case registry.KindStatTile, registry.KindMiniTile, registry.KindLine, registry.KindArea,
		registry.KindBar, registry.KindPie, registry.KindTable, registry.KindList:
		return card
	case registry.KindAlertTile:
		t := lookup(severityTones, n.Props.String("severity", ""), "info")
		return ContainerSpec{Fill: t.Fill, Stroke: t.Border, StrokeWidth: 1, CornerRadius: 8}
	case registry.KindBadge, registry.KindButton:
		t := lookup(variantTones, n.Props.String("variant", ""), "default")
		radius := 6.0
		if def.Kind == registry.KindBadge {
			radius = def.Size.H / 2
		}
		spec := ContainerSpec{Fill: t.Fill, CornerRadius: radius}
		if t.Border != "" {
			spec.Stroke, spec.StrokeWidth = t.Border, 1
		}
		return spec
	case registry.KindInput, registry.KindSelect:
		return ContainerSpec{Fill: colorSurface, Stroke: colorBorder, StrokeWidth: 1, CornerRadius: 6}
	case registry.KindContainer:
		if n.Props.Has("title") {
			return card
		}
	}
	return ContainerSpec{}
}
