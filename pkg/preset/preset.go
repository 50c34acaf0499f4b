package preset

import (
	"embed"
	"os"
	"path"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
)

//go:embed presets/*.toml
var builtin embed.FS

// Built-in preset names.
const (
	Blank     = "blank"
	Analytics = "analytics"
	Sales     = "sales"
)

// file is the TOML shape of a preset.
type file struct {
	Title       string      `toml:"title"`
	Description string      `toml:"description"`
	Layout      *layoutFile `toml:"layout"`
	Components  []component `toml:"components"`
}

type layoutFile struct {
	Mode    string `toml:"mode"`
	Columns int    `toml:"columns"`
	Gap     int    `toml:"gap"`
}

type component struct {
	ID       string         `toml:"id"`
	Type     string         `toml:"type"`
	Props    map[string]any `toml:"props"`
	Children []component    `toml:"children"`
}

// Names lists the built-in presets in sorted order.
func Names() []string {
	entries, err := builtin.ReadDir("presets")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".toml"))
	}
	sort.Strings(names)
	return names
}

// Load builds the named built-in preset.
func Load(reg *registry.Registry, name string) (*ir.Dashboard, error) {
	data, err := builtin.ReadFile(path.Join("presets", name+".toml"))
	if err != nil {
		return nil, errors.New(errors.ErrCodeNotFound, "unknown preset %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return Parse(reg, data)
}

// LoadFile builds a preset from a TOML file on disk.
func LoadFile(reg *registry.Registry, filename string) (*ir.Dashboard, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read preset %s", filename)
	}
	return Parse(reg, data)
}

// Parse builds a dashboard from TOML preset data.
//
// Each component starts from its registry defaults; props given in the file
// override them in place, and props the registry does not know are appended
// in sorted order. Components without an id get a fresh one.
func Parse(reg *registry.Registry, data []byte) (*ir.Dashboard, error) {
	var f file
	if _, err := toml.Decode(string(data), &f); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode preset")
	}

	d := ir.New(f.Title)
	d.Description = f.Description
	if f.Layout != nil {
		d.Layout = ir.Layout{Mode: ir.LayoutMode(f.Layout.Mode), Columns: f.Layout.Columns, Gap: f.Layout.Gap}
		if d.Layout.Mode == "" {
			d.Layout.Mode = ir.LayoutGrid
		}
	}

	for _, c := range f.Components {
		n, err := build(reg, c)
		if err != nil {
			return nil, err
		}
		d.Components = append(d.Components, n)
	}
	if err := ir.ValidateDashboard(d); err != nil {
		return nil, err
	}
	return d, nil
}

func build(reg *registry.Registry, c component) (*ir.Node, error) {
	def, ok := reg.Lookup(c.Type)
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownType, "preset component %q: unknown type %q", c.ID, c.Type)
	}
	if len(c.Children) > 0 && !def.Container {
		return nil, errors.New(errors.ErrCodeInvalidInput, "preset component %q: %s cannot hold children", c.ID, c.Type)
	}

	props := def.DefaultProps()
	var extra []string
	for k := range c.Props {
		if props.Has(k) {
			props.Set(k, c.Props[k])
		} else {
			extra = append(extra, k)
		}
	}
	slices.Sort(extra)
	for _, k := range extra {
		props.Set(k, c.Props[k])
	}

	n := &ir.Node{ID: c.ID, Type: c.Type, Props: props}
	if n.ID == "" {
		n.ID = ir.NewID(c.Type)
	}
	for _, child := range c.Children {
		cn, err := build(reg, child)
		if err != nil {
			return nil, err
		}
		n.Children = append(n.Children, cn)
	}
	return n, nil
}
