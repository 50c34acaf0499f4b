package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashforge/pkg/editor"
	"github.com/matzehuels/dashforge/pkg/httputil"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/pipeline"
)

// editCommand creates the edit command, an interactive editor for the
// component order and properties.
func (c *CLI) editCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "edit <source>",
		Short: "Edit a dashboard interactively",
		Long: `Edit a dashboard in the terminal: reorder, add, duplicate and delete
components, and change their properties. Press w to save.

JSON sources are saved in place unless --output is given; presets, TOML
files and URLs are saved to <output-dir>/<name>.json.`,
		Example: `  dashforge edit dashboard.json
  dashforge edit preset:analytics -o analytics.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			d, err := c.loadDashboard(cmd.Context(), src)
			if err != nil {
				return err
			}
			s, err := editor.Open(c.Registry, d)
			if err != nil {
				return err
			}

			path := editTarget(src, output, c.config.OutputDir)
			save := func(d *ir.Dashboard) error {
				if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
					return err
				}
				return ir.WriteDashboardFile(d, path)
			}

			final, err := tea.NewProgram(NewEditModel(s, save), tea.WithContext(cmd.Context())).Run()
			if err != nil {
				return fmt.Errorf("edit: %w", err)
			}
			if m, ok := final.(EditModel); ok && m.Dirty {
				printWarning("Quit with unsaved changes")
				return nil
			}
			printSuccess("Done editing %s", StyleHighlight.Render(s.Dashboard().Title))
			printFile(path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "file to save to")
	cmd.Flags().String("output-dir", ".", "directory for the saved file when the source is not a JSON file")

	return cmd
}

// editTarget returns where the editor saves: the explicit output, the source
// itself for local JSON files, or a JSON file named after the source.
func editTarget(src, output, dir string) string {
	if output != "" {
		return output
	}
	local := !httputil.IsURL(src) && !strings.HasPrefix(src, pipeline.PresetScheme)
	if local && strings.EqualFold(filepath.Ext(src), ".json") {
		return src
	}
	return outputBase(src, "", dir) + ".json"
}
