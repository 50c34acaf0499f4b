package preset

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
)

func TestNames(t *testing.T) {
	want := []string{Analytics, Blank, Sales}
	if got := Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestLoadBuiltins(t *testing.T) {
	reg := registry.Default()
	tests := []struct {
		name       string
		components int
		total      int
		layout     ir.LayoutMode
	}{
		{Blank, 0, 0, ir.LayoutGrid},
		{Analytics, 7, 7, ir.LayoutGrid},
		{Sales, 6, 8, ir.LayoutGrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Load(reg, tt.name)
			if err != nil {
				t.Fatalf("Load: %v", err)
			}
			if len(d.Components) != tt.components {
				t.Errorf("components = %d, want %d", len(d.Components), tt.components)
			}
			if got := ir.Count(d.Components); got != tt.total {
				t.Errorf("total nodes = %d, want %d", got, tt.total)
			}
			if d.Layout.Mode != tt.layout {
				t.Errorf("layout = %q", d.Layout.Mode)
			}
			ir.Walk(d.Components, func(n *ir.Node, _ int) bool {
				if _, ok := reg.Lookup(n.Type); !ok {
					t.Errorf("node %s has unregistered type %q", n.ID, n.Type)
				}
				return true
			})
		})
	}
}

func TestLoadDeterministic(t *testing.T) {
	reg := registry.Default()
	a, _ := Load(reg, Sales)
	b, _ := Load(reg, Sales)
	da, _ := ir.MarshalDashboard(a)
	db, _ := ir.MarshalDashboard(b)
	if string(da) != string(db) {
		t.Error("built-in preset is not deterministic")
	}
}

func TestLoadUnknown(t *testing.T) {
	if _, err := Load(registry.Default(), "finance"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("error = %v, want NOT_FOUND", err)
	}
}

func TestParseOverlaysDefaults(t *testing.T) {
	data := []byte(`
title = "Ops"

[[components]]
id = "uptime"
type = "stat-card"
[components.props]
zeta = 1
value = "99.98%"
alpha = true
`)
	d, err := Parse(registry.Default(), data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	props := d.Components[0].Props
	want := []string{"title", "value", "change", "changeType", "alpha", "zeta"}
	if got := props.Keys(); !slices.Equal(got, want) {
		t.Errorf("keys = %v, want %v", got, want)
	}
	if props.String("value", "") != "99.98%" {
		t.Errorf("value = %q", props.String("value", ""))
	}
	if props.Float("zeta", 0) != 1 {
		t.Errorf("zeta = %v", props.Float("zeta", 0))
	}
	if d.Layout != ir.DefaultLayout() {
		t.Errorf("layout = %+v, want default", d.Layout)
	}
}

func TestParseAssignsIDs(t *testing.T) {
	d, err := Parse(registry.Default(), []byte("[[components]]\ntype = \"divider\"\n[[components]]\ntype = \"divider\"\n"))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if d.Components[0].ID == "" || d.Components[0].ID == d.Components[1].ID {
		t.Errorf("ids = %q, %q", d.Components[0].ID, d.Components[1].ID)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		code errors.Code
	}{
		{"bad toml", "title = ", errors.ErrCodeDecode},
		{"unknown type", "[[components]]\ntype = \"sparkline\"", errors.ErrCodeUnknownType},
		{"children on leaf", "[[components]]\ntype = \"text\"\n[[components.children]]\ntype = \"badge\"", errors.ErrCodeInvalidInput},
		{"duplicate ids", "[[components]]\nid = \"a\"\ntype = \"text\"\n[[components]]\nid = \"a\"\ntype = \"text\"", errors.ErrCodeInvalidTree},
		{"bad layout", "[layout]\nmode = \"masonry\"", errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(registry.Default(), []byte(tt.data))
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.toml")
	if err := os.WriteFile(path, []byte("title = \"Ops\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	d, err := LoadFile(registry.Default(), path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if d.Title != "Ops" {
		t.Errorf("title = %q", d.Title)
	}
	if _, err := LoadFile(registry.Default(), filepath.Join(t.TempDir(), "missing.toml")); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("missing file error = %v", err)
	}
}
