package outline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
)

func tree() *ir.Dashboard {
	d := ir.New("Sales")
	d.Components = []*ir.Node{
		{ID: "card-1", Type: registry.TypeCard, Props: ir.NewProps("title", "Details"), Children: []*ir.Node{
			{ID: "text-1", Type: registry.TypeText, Props: ir.NewProps("content", "hello")},
			{ID: "table-1", Type: registry.TypeDataTable, Props: ir.NewProps("rows", []any{map[string]any{"a": 1}})},
		}},
		{ID: "spark-1", Type: "sparkline"},
	}
	return d
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(tree(), registry.Default(), Options{})

	tests := []struct {
		name string
		want string
	}{
		{"root", `"__dashboard__" [label="Sales", shape=folder`},
		{"container fill", `"card-1" [label="Card\ncard-1", fillcolor="#dbeafe"]`},
		{"unknown dashed", `"spark-1" [label="sparkline\nspark-1", style="rounded,filled,dashed"`},
		{"root edge", `"__dashboard__" -> "card-1";`},
		{"child edge", `"card-1" -> "table-1";`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !strings.Contains(dot, tt.want) {
				t.Errorf("DOT missing %s\n%s", tt.want, dot)
			}
		})
	}

	// Children keep document order.
	if strings.Index(dot, `-> "text-1"`) > strings.Index(dot, `-> "table-1"`) {
		t.Error("child edges out of order")
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(tree(), registry.Default(), Options{Detailed: true})
	for _, want := range []string{`content: hello`, `rows: [1 items]`, `title: Details`} {
		if !strings.Contains(dot, want) {
			t.Errorf("detailed DOT missing %q", want)
		}
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"plain", "plain"},
		{float64(3), "3"},
		{true, "true"},
		{ir.NewProps("a", 1, "b", 2), "{2 keys}"},
		{strings.Repeat("x", 40), strings.Repeat("x", 31) + "…"},
	}
	for _, tt := range tests {
		if got := short(tt.in); got != tt.want {
			t.Errorf("short(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?><svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := normalizeViewBox(in)
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.00 50.00" width="100" height="50">`
	if !bytes.Contains(out, []byte(want)) {
		t.Errorf("normalized = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("svg without viewBox changed: %s", got)
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(tree(), registry.Default(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	// Graphviz escapes hyphens in node ids and labels.
	for _, want := range []string{"<svg", "card&#45;1", ">Card<"} {
		if !bytes.Contains(svg, []byte(want)) {
			t.Errorf("svg missing %q: %.80s", want, svg)
		}
	}
}
