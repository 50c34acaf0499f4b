package registry

import "github.com/matzehuels/dashforge/pkg/ir"

// Kind is the rendering behavior shared by every backend. Backends keep one
// handler per Kind, so a new type tag that reuses an existing Kind needs only
// a new [Definition].
type Kind string

// Rendering kinds.
const (
	KindStatTile  Kind = "stat-tile"
	KindMiniTile  Kind = "mini-tile"
	KindAlertTile Kind = "alert-tile"
	KindLine      Kind = "line"
	KindArea      Kind = "area"
	KindBar       Kind = "bar"
	KindPie       Kind = "pie"
	KindTable     Kind = "table"
	KindList      Kind = "list"
	KindContainer Kind = "container"
	KindHeading   Kind = "heading"
	KindText      Kind = "text"
	KindBadge     Kind = "badge"
	KindButton    Kind = "button"
	KindInput     Kind = "input"
	KindSelect    Kind = "select"
	KindDivider   Kind = "divider"
)

// IsChart reports whether k draws one of the sample datasets.
func (k Kind) IsChart() bool {
	switch k {
	case KindLine, KindArea, KindBar, KindPie:
		return true
	}
	return false
}

// Category groups definitions in pickers and listings.
type Category string

// Categories.
const (
	CategoryData   Category = "data"
	CategoryChart  Category = "chart"
	CategoryLayout Category = "layout"
	CategoryText   Category = "text"
	CategoryInput  Category = "input"
)

// Widget is the edit control a property panel shows for a property.
type Widget string

// Edit widgets.
const (
	WidgetText     Widget = "text"
	WidgetTextarea Widget = "textarea"
	WidgetNumber   Widget = "number"
	WidgetSelect   Widget = "select"
	WidgetColor    Widget = "color"
	WidgetBoolean  Widget = "boolean"
)

// PropDescriptor describes one editable property.
type PropDescriptor struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Widget  Widget   `json:"widget"`
	Options []string `json:"options,omitempty"` // allowed values for WidgetSelect
}

// Sample identifies one of the fixed built-in chart datasets.
type Sample string

// Sample dataset ids.
const (
	SampleNone       Sample = ""
	SampleTimeSeries Sample = "time-series"
	SampleWeekday    Sample = "weekday"
	SampleBreakdown  Sample = "breakdown"
)

// Size is a fixed frame size in document units, used by the vector exporter.
type Size struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Definition is the canonical per-type descriptor: display metadata, default
// props, editable-property descriptors, and the rendering hints consumed by
// the preview renderer, the code generator and the vector exporter.
type Definition struct {
	Type        string           `json:"type"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    Category         `json:"category"`
	Kind        Kind             `json:"kind"`
	Container   bool             `json:"container,omitempty"`
	Sample      Sample           `json:"sample,omitempty"`
	CodeName    string           `json:"codeName"`
	Size        Size             `json:"size"`
	Defaults    ir.Props         `json:"defaults"`
	Editable    []PropDescriptor `json:"editable"`
}

// DefaultProps returns a fresh copy of the default properties.
func (d Definition) DefaultProps() ir.Props {
	return d.Defaults.Clone()
}

// Descriptor returns the editable-property descriptor for key.
func (d Definition) Descriptor(key string) (PropDescriptor, bool) {
	for _, p := range d.Editable {
		if p.Key == key {
			return p, true
		}
	}
	return PropDescriptor{}, false
}

// Allows reports whether value is acceptable for the select property key.
// Non-select and unknown properties accept anything.
func (d Definition) Allows(key string, value any) bool {
	p, ok := d.Descriptor(key)
	if !ok || p.Widget != WidgetSelect || len(p.Options) == 0 {
		return true
	}
	s, ok := value.(string)
	if !ok {
		return false
	}
	for _, o := range p.Options {
		if o == s {
			return true
		}
	}
	return false
}
