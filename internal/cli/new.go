package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/preset"
)

// newCommand creates the new command, which starts a dashboard file from a
// built-in preset or a TOML preset file.
func (c *CLI) newCommand() *cobra.Command {
	var (
		presetName string
		presetFile string
		title      string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "new [file]",
		Short: "Create a dashboard from a preset",
		Long: `Create a dashboard JSON file from a built-in preset or a TOML preset file.

Built-in presets: ` + strings.Join(preset.Names(), ", "),
		Example: `  dashforge new
  dashforge new sales.json --preset sales
  dashforge new team.json --preset-file presets/team.toml --title "Team KPIs"`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := filepath.Join(c.config.OutputDir, "dashboard.json")
			if len(args) == 1 {
				path = args[0]
			}
			if err := refuseOverwrite(path, force); err != nil {
				return err
			}

			var (
				d   *ir.Dashboard
				err error
			)
			if presetFile != "" {
				d, err = preset.LoadFile(c.Registry, presetFile)
			} else {
				d, err = preset.Load(c.Registry, presetName)
			}
			if err != nil {
				return err
			}
			if title != "" {
				d.Title = title
			}

			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			if err := ir.WriteDashboardFile(d, path); err != nil {
				return err
			}

			printSuccess("Created %s", StyleHighlight.Render(d.Title))
			printFile(path)
			printDetail("%d components · %s layout", len(d.Components), d.Layout.Mode)
			printNewline()
			printNextStep("Preview it", "dashforge render "+path+" -f html")
			return nil
		},
	}

	cmd.Flags().StringVarP(&presetName, "preset", "p", preset.Blank, "built-in preset")
	cmd.Flags().StringVar(&presetFile, "preset-file", "", "TOML preset file (overrides --preset)")
	cmd.Flags().StringVarP(&title, "title", "t", "", "dashboard title")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().String("output-dir", ".", "directory for the default output file")

	_ = cmd.RegisterFlagCompletionFunc("preset", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return preset.Names(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}
