package registry

import (
	"slices"
	"testing"

	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/ir"
)

func TestDefaultLookup(t *testing.T) {
	reg := Default()

	tests := []struct {
		typ      string
		wantKind Kind
		wantOK   bool
	}{
		{TypeStatCard, KindStatTile, true},
		{TypeMiniStat, KindMiniTile, true},
		{TypeLineChart, KindLine, true},
		{TypePieChart, KindPie, true},
		{TypeGrid, KindContainer, true},
		{"frobnicate", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.typ, func(t *testing.T) {
			def, ok := reg.Lookup(tt.typ)
			if ok != tt.wantOK {
				t.Fatalf("Lookup(%q) ok = %v, want %v", tt.typ, ok, tt.wantOK)
			}
			if def.Kind != tt.wantKind {
				t.Errorf("Lookup(%q).Kind = %q, want %q", tt.typ, def.Kind, tt.wantKind)
			}
		})
	}
}

func TestDefaultDefinitionsAreConsistent(t *testing.T) {
	for _, def := range Default().Definitions() {
		t.Run(def.Type, func(t *testing.T) {
			if def.Kind.IsChart() && def.Sample == SampleNone {
				t.Errorf("chart %s has no sample dataset", def.Type)
			}
			if !def.Kind.IsChart() && def.Sample != SampleNone {
				t.Errorf("non-chart %s has sample %q", def.Type, def.Sample)
			}
			if def.Container != (def.Kind == KindContainer) {
				t.Errorf("%s: Container = %v but Kind = %s", def.Type, def.Container, def.Kind)
			}
			if def.Size.W <= 0 || def.Size.H <= 0 {
				t.Errorf("%s: non-positive size %+v", def.Type, def.Size)
			}
			for _, p := range def.Editable {
				if p.Widget == WidgetSelect && len(p.Options) == 0 {
					t.Errorf("%s.%s: select without options", def.Type, p.Key)
				}
				v, ok := def.Defaults.Get(p.Key)
				if ok && !def.Allows(p.Key, v) {
					t.Errorf("%s.%s: default %v not in options %v", def.Type, p.Key, v, p.Options)
				}
			}
		})
	}
}

func TestLookupReturnsCopies(t *testing.T) {
	reg := Default()

	def, _ := reg.Lookup(TypeStatCard)
	def.Defaults.Set("title", "mutated")
	props := def.DefaultProps()
	props.Set("value", "mutated")

	again, _ := reg.Lookup(TypeStatCard)
	if got := again.Defaults.String("title", ""); got != "Total Revenue" {
		t.Errorf("registry defaults mutated: title = %q", got)
	}
	if got := again.Defaults.String("value", ""); got == "mutated" {
		t.Error("registry defaults mutated through DefaultProps")
	}
}

func TestDefaultPropsOrder(t *testing.T) {
	def, _ := Default().Lookup(TypeStatCard)
	want := []string{"title", "value", "change", "changeType"}
	if got := def.DefaultProps().Keys(); !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
}

func TestNewRejectsBadDefinitions(t *testing.T) {
	ok := Definition{Type: "widget", Kind: KindText, CodeName: "Widget"}

	tests := []struct {
		name string
		defs []Definition
		code errors.Code
	}{
		{"duplicate", []Definition{ok, ok}, errors.ErrCodeInvalidInput},
		{"bad tag", []Definition{{Type: "Bad Tag", Kind: KindText, CodeName: "X"}}, errors.ErrCodeInvalidInput},
		{"no kind", []Definition{{Type: "x", CodeName: "X"}}, errors.ErrCodeInvalidInput},
		{"no code name", []Definition{{Type: "x", Kind: KindText}}, errors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.defs...)
			if !errors.Is(err, tt.code) {
				t.Errorf("New() error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestCustomKindReuse(t *testing.T) {
	reg, err := New(Definition{
		Type: "kpi", Kind: KindStatTile, CodeName: "Kpi",
		Size:     Size{W: 100, H: 50},
		Defaults: ir.NewProps("title", "KPI"),
	})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	def, ok := reg.Lookup("kpi")
	if !ok || def.Kind != KindStatTile {
		t.Errorf("Lookup(kpi) = %+v, %v", def, ok)
	}
	if !slices.Equal(reg.Types(), []string{"kpi"}) {
		t.Errorf("Types() = %v", reg.Types())
	}
}

func TestByCategory(t *testing.T) {
	charts := Default().ByCategory(CategoryChart)
	var types []string
	for _, d := range charts {
		types = append(types, d.Type)
	}
	want := []string{TypeLineChart, TypeAreaChart, TypeBarChart, TypePieChart}
	if !slices.Equal(types, want) {
		t.Errorf("ByCategory(chart) = %v, want %v", types, want)
	}
}

func TestAllows(t *testing.T) {
	def, _ := Default().Lookup(TypeAlertCard)
	if !def.Allows("severity", "warning") {
		t.Error("severity=warning should be allowed")
	}
	if def.Allows("severity", "catastrophic") {
		t.Error("severity=catastrophic should be rejected")
	}
	if def.Allows("severity", 3.0) {
		t.Error("non-string select value should be rejected")
	}
	if !def.Allows("message", 42.0) {
		t.Error("free-form prop should accept anything")
	}
}

func TestNilRegistryLookup(t *testing.T) {
	var reg *Registry
	if _, ok := reg.Lookup(TypeText); ok {
		t.Error("nil registry lookup should report false")
	}
}
