package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/registry"
)

// registryCommand creates the registry command, which lists component types
// or shows one in detail.
func (c *CLI) registryCommand() *cobra.Command {
	var (
		category string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "registry [type]",
		Short: "List component types",
		Example: `  dashforge registry
  dashforge registry --category chart
  dashforge registry stat-card`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
			return c.Registry.Types(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 1 {
				def, ok := c.Registry.Lookup(args[0])
				if !ok {
					return errors.New(errors.ErrCodeUnknownType, "unknown component type %q", args[0])
				}
				if asJSON {
					return writeJSON(w, def)
				}
				fmt.Fprint(w, renderDefinition(def))
				return nil
			}

			defs := c.Registry.Definitions()
			if category != "" {
				defs = c.Registry.ByCategory(registry.Category(category))
				if len(defs) == 0 {
					return errors.New(errors.ErrCodeNotFound, "no component types in category %q", category)
				}
			}
			if asJSON {
				return writeJSON(w, defs)
			}
			fmt.Fprintln(w, renderRegistryTable(defs))
			return nil
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", "", "only list one category (data, chart, layout, text, input)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print definitions as JSON")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// renderRegistryTable draws one row per definition.
func renderRegistryTable(defs []registry.Definition) string {
	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		container := ""
		if d.Container {
			container = "✓"
		}
		keys := make([]string, len(d.Editable))
		for i, p := range d.Editable {
			keys[i] = p.Key
		}
		rows = append(rows, []string{d.Type, d.Name, string(d.Category), string(d.Kind), container, strings.Join(keys, ", ")})
	}

	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(styleBorder).
		Headers("Type", "Name", "Category", "Kind", "Container", "Editable").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == -1:
				return styleHeader
			case col == 0:
				return StyleHighlight
			case col >= 2 && col <= 3:
				return StyleDim
			}
			return StyleValue
		}).
		Render()
}

// renderDefinition formats one definition as labeled lines.
func renderDefinition(d registry.Definition) string {
	var b strings.Builder
	key := styleLabel
	line := func(k, v string) {
		b.WriteString(key.Render(k) + " " + StyleValue.Render(v) + "\n")
	}

	b.WriteString(StyleTitle.Render(d.Name) + " " + StyleDim.Render(d.Type) + "\n")
	b.WriteString(StyleDim.Render(d.Description) + "\n\n")
	line("Category", string(d.Category))
	line("Kind", string(d.Kind))
	line("Component", d.CodeName)
	line("Size", fmt.Sprintf("%g × %g", d.Size.W, d.Size.H))
	if d.Container {
		line("Container", "yes")
	}
	if d.Sample != registry.SampleNone {
		line("Sample", string(d.Sample))
	}
	if d.Defaults.Len() > 0 {
		defaults, _ := json.Marshal(d.Defaults)
		line("Defaults", string(defaults))
	}
	for i, p := range d.Editable {
		label := ""
		if i == 0 {
			label = "Editable"
		}
		desc := fmt.Sprintf("%s (%s)", p.Key, p.Widget)
		if len(p.Options) > 0 {
			desc += ": " + strings.Join(p.Options, " | ")
		}
		line(label, desc)
	}
	return b.String()
}
