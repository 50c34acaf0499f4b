package codegen

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
)

func TestEmitLiterals(t *testing.T) {
	g := New(registry.Default())

	tests := []struct {
		name  string
		props ir.Props
		want  string
	}{
		{"string", ir.NewProps("label", "New"), `<Badge label="New" />` + "\n"},
		{"number", ir.NewProps("label", 3), `<Badge label={3} />` + "\n"},
		{"bool", ir.NewProps("label", true), `<Badge label={true} />` + "\n"},
		{"null", ir.NewProps("label", nil), `<Badge label={null} />` + "\n"},
		{"quoted string", ir.NewProps("label", `say "hi"`), `<Badge label={"say \"hi\""} />` + "\n"},
		{"array", ir.NewProps("label", []string{"a", "b"}), `<Badge label={["a","b"]} />` + "\n"},
		{"object", ir.NewProps("label", map[string]any{"b": 1, "a": "<x>"}), `<Badge label={{"a":"<x>","b":1}} />` + "\n"},
		{"empty", ir.Props{}, "<Badge />\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Emit(&ir.Node{ID: "b", Type: registry.TypeBadge, Props: tt.props}, 0)
			if got != tt.want {
				t.Errorf("Emit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmitKeepsNestedOrder(t *testing.T) {
	g := New(registry.Default())

	tests := []struct {
		name string
		json string
		want string
	}{
		{"object", `{"style":{"z":1,"a":2}}`, `<Card style={{"z":1,"a":2}} />` + "\n"},
		{"deep", `{"style":{"z":{"y":1,"b":2},"a":[{"k":1,"c":2}]}}`, `<Card style={{"z":{"y":1,"b":2},"a":[{"k":1,"c":2}]}} />` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var props ir.Props
			if err := json.Unmarshal([]byte(tt.json), &props); err != nil {
				t.Fatal(err)
			}
			got := g.Emit(&ir.Node{ID: "c", Type: registry.TypeCard, Props: props}, 0)
			if got != tt.want {
				t.Errorf("Emit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmitInvalidAttributeNames(t *testing.T) {
	g := New(registry.Default())

	tests := []struct {
		name  string
		props ir.Props
		want  string
	}{
		{"space", ir.NewProps("my key", "v"), `<Badge {...{"my key": "v"}} />` + "\n"},
		{"leading digit", ir.NewProps("1x", 2), `<Badge {...{"1x": 2}} />` + "\n"},
		{"hyphenated is valid", ir.NewProps("data-id", "a"), `<Badge data-id="a" />` + "\n"},
		{"order kept", ir.NewProps("label", "New", "a b", true, "variant", "outline"),
			`<Badge label="New" {...{"a b": true}} variant="outline" />` + "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := g.Emit(&ir.Node{ID: "b", Type: registry.TypeBadge, Props: tt.props}, 0)
			if got != tt.want {
				t.Errorf("Emit() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestEmitNesting(t *testing.T) {
	g := New(registry.Default())
	n := &ir.Node{
		ID: "g", Type: registry.TypeGrid, Props: ir.NewProps("columns", 2),
		Children: []*ir.Node{
			{ID: "t1", Type: registry.TypeText, Props: ir.NewProps("content", "one")},
			{ID: "t2", Type: registry.TypeText, Props: ir.NewProps("content", "two")},
		},
	}
	want := "" +
		"  <Grid columns={2}>\n" +
		"    <Text content=\"one\" />\n" +
		"    <Text content=\"two\" />\n" +
		"  </Grid>\n"
	if got := g.Emit(n, 1); got != want {
		t.Errorf("Emit() =\n%s\nwant\n%s", got, want)
	}
}

func TestEmitIgnoresChildrenOfLeaves(t *testing.T) {
	g := New(registry.Default())
	n := &ir.Node{
		ID: "t", Type: registry.TypeText,
		Children: []*ir.Node{{ID: "x", Type: registry.TypeText}},
	}
	if got := g.Emit(n, 0); got != "<Text />\n" {
		t.Errorf("Emit() = %q", got)
	}
}

func TestEmitUnknownType(t *testing.T) {
	g := New(registry.Default())
	out := g.EmitAll([]*ir.Node{
		{ID: "a", Type: registry.TypeDivider},
		{ID: "b", Type: "frobnicate"},
		{ID: "c", Type: registry.TypeDivider},
	}, 0)
	want := "<Separator />\n{/* Unknown component: frobnicate */}\n<Separator />\n"
	if out != want {
		t.Errorf("EmitAll() = %q, want %q", out, want)
	}
}

func TestEmitPreservesPropOrder(t *testing.T) {
	g := New(registry.Default())
	a := g.Emit(&ir.Node{Type: registry.TypeBadge, Props: ir.NewProps("variant", "outline", "label", "x")}, 0)
	b := g.Emit(&ir.Node{Type: registry.TypeBadge, Props: ir.NewProps("label", "x", "variant", "outline")}, 0)
	if a == b {
		t.Fatal("prop order did not affect output")
	}
	if !strings.HasPrefix(a, `<Badge variant="outline"`) {
		t.Errorf("Emit() = %q", a)
	}
}

func TestEmitDashboardScenario(t *testing.T) {
	g := New(registry.Default())
	d := ir.New("Revenue")
	d.Components = []*ir.Node{
		{ID: "stat-1", Type: registry.TypeStatCard, Props: ir.NewProps(
			"title", "Total Revenue", "value", "$45,231", "change", "+20.1%", "changeType", "positive")},
		{ID: "line-1", Type: registry.TypeLineChart, Props: ir.NewProps("title", "Revenue Over Time")},
	}

	out := g.EmitDashboard(d)
	tile := strings.Index(out, `<StatCard title="Total Revenue" value="$45,231" change="+20.1%" changeType="positive" />`)
	chart := strings.Index(out, `<LineChartCard title="Revenue Over Time" />`)
	if tile < 0 || chart < 0 {
		t.Fatalf("blocks missing from output:\n%s", out)
	}
	if tile >= chart {
		t.Errorf("stat tile at %d not before chart at %d", tile, chart)
	}
	if !strings.HasPrefix(out, `import { StatCard, LineChartCard } from "@/components/dashboard";`) {
		t.Errorf("import line wrong:\n%s", out)
	}
	if !strings.Contains(out, "export default function RevenueDashboard() {") {
		t.Errorf("function header wrong:\n%s", out)
	}
	if !strings.Contains(out, `<div className="grid grid-cols-4 gap-4">`) {
		t.Errorf("layout wrapper wrong:\n%s", out)
	}
}

func TestEmitDashboardDeterministic(t *testing.T) {
	g := New(registry.Default(), WithIndentWidth(4))
	d := ir.New("Ops")
	d.Layout = ir.Layout{Mode: ir.LayoutStack, Gap: 8}
	d.Components = []*ir.Node{
		{ID: "c", Type: registry.TypeCard, Props: ir.NewProps("title", "Card"), Children: []*ir.Node{
			{ID: "s", Type: registry.TypeSelect, Props: ir.NewProps("options", []string{"a", "b"})},
		}},
		{ID: "x", Type: "mystery"},
	}
	first := g.EmitDashboard(d)
	for range 10 {
		if got := g.EmitDashboard(d); got != first {
			t.Fatalf("output changed between runs:\n%s\n---\n%s", first, got)
		}
	}
	if !strings.Contains(first, `        <div className="flex flex-col gap-2">`) {
		t.Errorf("stack wrapper or indent wrong:\n%s", first)
	}
}

func TestFuncName(t *testing.T) {
	tests := map[string]string{
		"":                 "Dashboard",
		"sales overview":   "SalesOverviewDashboard",
		"Ops Dashboard":    "OpsDashboard",
		"2024 q1-results!": "Q1ResultsDashboard",
	}
	for in, want := range tests {
		if got := FuncName(in); got != want {
			t.Errorf("FuncName(%q) = %q, want %q", in, got, want)
		}
	}
}
