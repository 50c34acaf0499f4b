package codegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
)

// DefaultImportPath is the module components are imported from.
const DefaultImportPath = "@/components/dashboard"

// Option configures a [Generator].
type Option func(*Generator)

// WithIndentWidth sets the number of spaces per nesting level (default 2).
func WithIndentWidth(n int) Option { return func(g *Generator) { g.indent = max(n, 0) } }

// WithImportPath sets the module the generated file imports components from.
func WithImportPath(p string) Option { return func(g *Generator) { g.importPath = p } }

// Generator emits component source text for IR trees. It is stateless
// between calls and safe to reuse.
type Generator struct {
	reg        *registry.Registry
	indent     int
	importPath string
}

// New creates a generator over reg.
func New(reg *registry.Registry, opts ...Option) *Generator {
	g := &Generator{reg: reg, indent: 2, importPath: DefaultImportPath}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Emit returns the source for n at nesting level indent. Property and child
// order follow the IR exactly.
func (g *Generator) Emit(n *ir.Node, indent int) string {
	var buf bytes.Buffer
	g.emit(&buf, n, indent, 0)
	return buf.String()
}

// EmitAll emits a node list at the given level, one node after another.
func (g *Generator) EmitAll(nodes []*ir.Node, indent int) string {
	var buf bytes.Buffer
	for _, n := range nodes {
		g.emit(&buf, n, indent, 0)
	}
	return buf.String()
}

const maxDepth = 64

func (g *Generator) emit(buf *bytes.Buffer, n *ir.Node, level, depth int) {
	pad := strings.Repeat(" ", level*g.indent)
	if n == nil {
		return
	}
	def, ok := g.reg.Lookup(n.Type)
	if !ok {
		fmt.Fprintf(buf, "%s{/* Unknown component: %s */}\n", pad, commentSafe(n.Type))
		return
	}

	buf.WriteString(pad)
	buf.WriteByte('<')
	buf.WriteString(def.CodeName)
	for k, v := range n.Props.All() {
		buf.WriteByte(' ')
		if !attrName.MatchString(k) {
			buf.WriteString(spread(k, v))
			continue
		}
		buf.WriteString(k)
		buf.WriteByte('=')
		buf.WriteString(literal(v))
	}

	children := n.Children
	if !def.Container || depth >= maxDepth {
		children = nil
	}
	if len(children) == 0 {
		buf.WriteString(" />\n")
		return
	}
	buf.WriteString(">\n")
	for _, c := range children {
		g.emit(buf, c, level+1, depth+1)
	}
	fmt.Fprintf(buf, "%s</%s>\n", pad, def.CodeName)
}

// literal serializes one prop value as an attribute value.
// Plain strings become quoted attributes; everything else, and strings that
// cannot live inside quotes, becomes a braced JSON literal.
func literal(v any) string {
	if s, ok := v.(string); ok && !strings.ContainsAny(s, "\"\n\r{}") {
		return `"` + s + `"`
	}
	switch x := v.(type) {
	case float64:
		return "{" + strconv.FormatFloat(x, 'f', -1, 64) + "}"
	case bool:
		return "{" + strconv.FormatBool(x) + "}"
	case nil:
		return "{null}"
	}
	js, err := jsonText(v)
	if err != nil {
		return "{undefined}"
	}
	return "{" + js + "}"
}

// attrName matches keys that can be written as a bare JSX attribute.
var attrName = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$-]*$`)

// spread writes a prop whose key is not a valid attribute name as an object
// spread, e.g. {...{"my key": 1}}.
func spread(key string, v any) string {
	val, err := jsonText(v)
	if err != nil {
		val = "undefined"
	}
	k, _ := jsonText(key)
	return "{...{" + k + ": " + val + "}}"
}

func jsonText(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

func commentSafe(s string) string {
	return strings.ReplaceAll(s, "*/", "* /")
}

// EmitDashboard emits a complete module: one import line listing the used
// components in first-appearance order and a default-exported function
// returning the layout wrapper.
func (g *Generator) EmitDashboard(d *ir.Dashboard) string {
	var buf bytes.Buffer
	if names := g.usedComponents(d.Components); len(names) > 0 {
		fmt.Fprintf(&buf, "import { %s } from %q;\n\n", strings.Join(names, ", "), g.importPath)
	}
	if d.Title != "" {
		fmt.Fprintf(&buf, "// %s\n", strings.ReplaceAll(d.Title, "\n", " "))
	}
	if d.Description != "" {
		fmt.Fprintf(&buf, "// %s\n", strings.ReplaceAll(d.Description, "\n", " "))
	}

	pad := strings.Repeat(" ", g.indent)
	fmt.Fprintf(&buf, "export default function %s() {\n", FuncName(d.Title))
	fmt.Fprintf(&buf, "%sreturn (\n", pad)
	fmt.Fprintf(&buf, "%s<div className=%q>\n", strings.Repeat(pad, 2), layoutClass(d.Layout))
	buf.WriteString(g.EmitAll(d.Components, 3))
	fmt.Fprintf(&buf, "%s</div>\n", strings.Repeat(pad, 2))
	fmt.Fprintf(&buf, "%s);\n}\n", pad)
	return buf.String()
}

func (g *Generator) usedComponents(nodes []*ir.Node) []string {
	var names []string
	seen := make(map[string]bool)
	ir.Walk(nodes, func(n *ir.Node, depth int) bool {
		def, ok := g.reg.Lookup(n.Type)
		if !ok || depth >= maxDepth {
			return false
		}
		if !seen[def.CodeName] {
			seen[def.CodeName] = true
			names = append(names, def.CodeName)
		}
		return def.Container
	})
	return names
}

// FuncName derives an exported function name from a dashboard title.
func FuncName(title string) string {
	var b strings.Builder
	upper := true
	for _, r := range title {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if b.Len() == 0 && unicode.IsDigit(r) {
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	name := b.String()
	if !strings.HasSuffix(name, "Dashboard") {
		name += "Dashboard"
	}
	return name
}

func layoutClass(l ir.Layout) string {
	gap := max(l.Gap, 0) / 4
	switch l.Mode {
	case ir.LayoutFlex:
		return fmt.Sprintf("flex flex-wrap gap-%d", gap)
	case ir.LayoutStack:
		return fmt.Sprintf("flex flex-col gap-%d", gap)
	}
	return fmt.Sprintf("grid grid-cols-%d gap-%d", l.EffectiveColumns(), gap)
}
