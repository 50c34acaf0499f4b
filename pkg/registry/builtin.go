package registry

import "github.com/matzehuels/dashforge/pkg/ir"

// Type tags of the built-in components.
const (
	TypeStatCard  = "stat-card"
	TypeMiniStat  = "mini-stat"
	TypeAlertCard = "alert-card"
	TypeLineChart = "line-chart"
	TypeAreaChart = "area-chart"
	TypeBarChart  = "bar-chart"
	TypePieChart  = "pie-chart"
	TypeDataTable = "data-table"
	TypeList      = "list"
	TypeContainer = "container"
	TypeGrid      = "grid"
	TypeCard      = "card"
	TypeHeading   = "heading"
	TypeText      = "text"
	TypeBadge     = "badge"
	TypeButton    = "button"
	TypeInput     = "input"
	TypeSelect    = "select"
	TypeDivider   = "divider"
)

var (
	titleProp = PropDescriptor{Key: "title", Label: "Title", Widget: WidgetText}
	colorProp = PropDescriptor{Key: "color", Label: "Color", Widget: WidgetColor}
)

// Default returns a registry with every built-in component.
func Default() *Registry {
	r, err := New(builtins()...)
	if err != nil {
		panic("registry: invalid built-in definitions: " + err.Error())
	}
	return r
}

func builtins() []Definition {
	return []Definition{
		{
			Type: TypeStatCard, Name: "Stat Card", Category: CategoryData, Kind: KindStatTile,
			Description: "Headline metric with a change indicator",
			CodeName:    "StatCard", Size: Size{W: 280, H: 140},
			Defaults: ir.NewProps(
				"title", "Total Revenue",
				"value", "$45,231.89",
				"change", "+20.1% from last month",
				"changeType", "positive",
			),
			Editable: []PropDescriptor{
				titleProp,
				{Key: "value", Label: "Value", Widget: WidgetText},
				{Key: "change", Label: "Change", Widget: WidgetText},
				{Key: "changeType", Label: "Change Type", Widget: WidgetSelect, Options: []string{"positive", "negative", "neutral"}},
			},
		},
		{
			Type: TypeMiniStat, Name: "Mini Stat", Category: CategoryData, Kind: KindMiniTile,
			Description: "Compact metric with a trend arrow",
			CodeName:    "MiniStat", Size: Size{W: 200, H: 80},
			Defaults: ir.NewProps(
				"label", "Active Users",
				"value", "2,350",
				"trend", "up",
			),
			Editable: []PropDescriptor{
				{Key: "label", Label: "Label", Widget: WidgetText},
				{Key: "value", Label: "Value", Widget: WidgetText},
				{Key: "trend", Label: "Trend", Widget: WidgetSelect, Options: []string{"up", "down"}},
			},
		},
		{
			Type: TypeAlertCard, Name: "Alert", Category: CategoryData, Kind: KindAlertTile,
			Description: "Callout with a severity color",
			CodeName:    "AlertCard", Size: Size{W: 360, H: 96},
			Defaults: ir.NewProps(
				"title", "Heads up!",
				"message", "You can add components to your dashboard.",
				"severity", "info",
			),
			Editable: []PropDescriptor{
				titleProp,
				{Key: "message", Label: "Message", Widget: WidgetTextarea},
				{Key: "severity", Label: "Severity", Widget: WidgetSelect, Options: []string{"info", "success", "warning", "error"}},
			},
		},
		{
			Type: TypeLineChart, Name: "Line Chart", Category: CategoryChart, Kind: KindLine,
			Description: "Trend over time",
			Sample:      SampleTimeSeries, CodeName: "LineChartCard", Size: Size{W: 480, H: 300},
			Defaults: ir.NewProps("title", "Revenue Over Time", "color", "#3b82f6"),
			Editable: []PropDescriptor{titleProp, colorProp},
		},
		{
			Type: TypeAreaChart, Name: "Area Chart", Category: CategoryChart, Kind: KindArea,
			Description: "Filled trend over time",
			Sample:      SampleTimeSeries, CodeName: "AreaChartCard", Size: Size{W: 480, H: 300},
			Defaults: ir.NewProps("title", "Traffic Overview", "color", "#8b5cf6"),
			Editable: []PropDescriptor{titleProp, colorProp},
		},
		{
			Type: TypeBarChart, Name: "Bar Chart", Category: CategoryChart, Kind: KindBar,
			Description: "Comparison across categories",
			Sample:      SampleWeekday, CodeName: "BarChartCard", Size: Size{W: 480, H: 300},
			Defaults: ir.NewProps("title", "Weekly Sales", "color", "#10b981"),
			Editable: []PropDescriptor{titleProp, colorProp},
		},
		{
			Type: TypePieChart, Name: "Pie Chart", Category: CategoryChart, Kind: KindPie,
			Description: "Share of a whole",
			Sample:      SampleBreakdown, CodeName: "PieChartCard", Size: Size{W: 400, H: 300},
			Defaults: ir.NewProps("title", "Device Breakdown", "donut", true),
			Editable: []PropDescriptor{
				titleProp,
				{Key: "donut", Label: "Donut", Widget: WidgetBoolean},
			},
		},
		{
			Type: TypeDataTable, Name: "Data Table", Category: CategoryData, Kind: KindTable,
			Description: "Rows of structured records",
			CodeName:    "DataTable", Size: Size{W: 560, H: 220},
			Defaults: ir.NewProps(
				"title", "Recent Orders",
				"columns", []any{"name", "email", "status", "amount"},
				"rows", []any{},
			),
			Editable: []PropDescriptor{titleProp},
		},
		{
			Type: TypeList, Name: "List", Category: CategoryData, Kind: KindList,
			Description: "Simple bulleted list",
			CodeName:    "List", Size: Size{W: 280, H: 180},
			Defaults: ir.NewProps("title", "Tasks", "items", []any{}),
			Editable: []PropDescriptor{titleProp},
		},
		{
			Type: TypeContainer, Name: "Container", Category: CategoryLayout, Kind: KindContainer,
			Description: "Groups children vertically",
			Container:   true, CodeName: "Container", Size: Size{W: 560, H: 320},
			Defaults: ir.NewProps("direction", "column", "gap", 16),
			Editable: []PropDescriptor{
				{Key: "direction", Label: "Direction", Widget: WidgetSelect, Options: []string{"column", "row"}},
				{Key: "gap", Label: "Gap", Widget: WidgetNumber},
			},
		},
		{
			Type: TypeGrid, Name: "Grid", Category: CategoryLayout, Kind: KindContainer,
			Description: "Lays children out in columns",
			Container:   true, CodeName: "Grid", Size: Size{W: 560, H: 320},
			Defaults: ir.NewProps("columns", 2, "gap", 16),
			Editable: []PropDescriptor{
				{Key: "columns", Label: "Columns", Widget: WidgetNumber},
				{Key: "gap", Label: "Gap", Widget: WidgetNumber},
			},
		},
		{
			Type: TypeCard, Name: "Card", Category: CategoryLayout, Kind: KindContainer,
			Description: "Bordered panel with a title",
			Container:   true, CodeName: "Card", Size: Size{W: 360, H: 240},
			Defaults: ir.NewProps("title", "Card Title"),
			Editable: []PropDescriptor{titleProp},
		},
		{
			Type: TypeHeading, Name: "Heading", Category: CategoryText, Kind: KindHeading,
			Description: "Section heading",
			CodeName:    "Heading", Size: Size{W: 360, H: 40},
			Defaults: ir.NewProps("text", "Dashboard", "level", "h2"),
			Editable: []PropDescriptor{
				{Key: "text", Label: "Text", Widget: WidgetText},
				{Key: "level", Label: "Level", Widget: WidgetSelect, Options: []string{"h1", "h2", "h3"}},
			},
		},
		{
			Type: TypeText, Name: "Text", Category: CategoryText, Kind: KindText,
			Description: "Paragraph of text",
			CodeName:    "Text", Size: Size{W: 360, H: 48},
			Defaults: ir.NewProps("content", "Add your text here.", "muted", false),
			Editable: []PropDescriptor{
				{Key: "content", Label: "Content", Widget: WidgetTextarea},
				{Key: "muted", Label: "Muted", Widget: WidgetBoolean},
			},
		},
		{
			Type: TypeBadge, Name: "Badge", Category: CategoryText, Kind: KindBadge,
			Description: "Small status label",
			CodeName:    "Badge", Size: Size{W: 80, H: 24},
			Defaults: ir.NewProps("label", "New", "variant", "default"),
			Editable: []PropDescriptor{
				{Key: "label", Label: "Label", Widget: WidgetText},
				{Key: "variant", Label: "Variant", Widget: WidgetSelect, Options: []string{"default", "secondary", "destructive", "outline"}},
			},
		},
		{
			Type: TypeButton, Name: "Button", Category: CategoryInput, Kind: KindButton,
			Description: "Clickable action",
			CodeName:    "Button", Size: Size{W: 120, H: 40},
			Defaults: ir.NewProps("label", "Click me", "variant", "default"),
			Editable: []PropDescriptor{
				{Key: "label", Label: "Label", Widget: WidgetText},
				{Key: "variant", Label: "Variant", Widget: WidgetSelect, Options: []string{"default", "secondary", "outline", "ghost"}},
			},
		},
		{
			Type: TypeInput, Name: "Input", Category: CategoryInput, Kind: KindInput,
			Description: "Single-line text field",
			CodeName:    "Input", Size: Size{W: 240, H: 40},
			Defaults: ir.NewProps("placeholder", "Search..."),
			Editable: []PropDescriptor{
				{Key: "placeholder", Label: "Placeholder", Widget: WidgetText},
			},
		},
		{
			Type: TypeSelect, Name: "Select", Category: CategoryInput, Kind: KindSelect,
			Description: "Dropdown picker",
			CodeName:    "Select", Size: Size{W: 240, H: 40},
			Defaults: ir.NewProps(
				"placeholder", "Select an option",
				"options", []any{"Option 1", "Option 2", "Option 3"},
			),
			Editable: []PropDescriptor{
				{Key: "placeholder", Label: "Placeholder", Widget: WidgetText},
			},
		},
		{
			Type: TypeDivider, Name: "Divider", Category: CategoryLayout, Kind: KindDivider,
			Description: "Horizontal rule",
			CodeName:    "Separator", Size: Size{W: 560, H: 1},
		},
	}
}
