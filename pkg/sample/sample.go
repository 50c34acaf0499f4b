// Package sample holds the fixed datasets that chart components draw.
//
// Charts never read values from node properties: the preview renderer and
// the vector exporter both substitute one of these datasets, and node props
// only choose the title and colors. Each caller gets its own copy.
package sample

import "github.com/matzehuels/dashforge/pkg/registry"

// Point is one labeled value of a series.
type Point struct {
	Label string
	Value float64
}

// Slice is one category of a breakdown.
type Slice struct {
	Name  string
	Value float64
	Color string
}

// Row is one record of the sample table.
type Row struct {
	Name   string
	Email  string
	Active bool
	Amount string
}

// Status returns the status label shown in the pill badge.
func (r Row) Status() string {
	if r.Active {
		return "active"
	}
	return "inactive"
}

// TimeSeriesCeiling is the fixed value ceiling line and area plots scale against.
const TimeSeriesCeiling = 6000

// TimeSeries returns the six-month revenue series.
func TimeSeries() []Point {
	return []Point{
		{"Jan", 4000},
		{"Feb", 3000},
		{"Mar", 5000},
		{"Apr", 4500},
		{"May", 6000},
		{"Jun", 5500},
	}
}

// Weekday returns the five-day sales series.
func Weekday() []Point {
	return []Point{
		{"Mon", 120},
		{"Tue", 180},
		{"Wed", 150},
		{"Thu", 210},
		{"Fri", 170},
	}
}

// Breakdown returns the three-category device split.
func Breakdown() []Slice {
	return []Slice{
		{"Desktop", 400, "#3b82f6"},
		{"Mobile", 300, "#10b981"},
		{"Tablet", 200, "#f59e0b"},
	}
}

// Table returns the three-row order table used by the vector exporter.
func Table() []Row {
	return []Row{
		{"Olivia Martin", "olivia@example.com", true, "$1,999.00"},
		{"Jackson Lee", "jackson@example.com", false, "$39.00"},
		{"Isabella Nguyen", "isabella@example.com", true, "$299.00"},
	}
}

// TableColumns are the column headers of [Table].
func TableColumns() []string {
	return []string{"Name", "Email", "Status", "Amount"}
}

// Series returns the point series for a registry sample id, or nil for
// breakdowns and non-chart ids.
func Series(id registry.Sample) []Point {
	switch id {
	case registry.SampleTimeSeries:
		return TimeSeries()
	case registry.SampleWeekday:
		return Weekday()
	}
	return nil
}

// Max returns the largest value in points, or 0 for an empty series.
func Max(points []Point) float64 {
	var m float64
	for _, p := range points {
		m = max(m, p.Value)
	}
	return m
}

// Total returns the sum of slice values.
func Total(slices []Slice) float64 {
	var t float64
	for _, s := range slices {
		t += s.Value
	}
	return t
}
