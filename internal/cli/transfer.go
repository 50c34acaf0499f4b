package cli

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashforge/pkg/editor"
	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/httputil"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/transfer"
)

// exportCommand creates the export command, which writes a dashboard in the
// portable transfer format.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export <source>",
		Short: "Export a dashboard as a transfer file",
		Example: `  dashforge export dashboard.json -o sales.transfer.json
  dashforge export preset:sales --primary-color "#10b981"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.loadDashboard(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			msg := transfer.FromDashboard(d, transfer.Theme{PrimaryColor: c.config.Theme.PrimaryColor}, time.Now())
			data, err := transfer.Marshal(msg)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd.OutOrStdout(), output, data); err != nil {
				return err
			}
			if output != "" && output != stdoutPath {
				printSuccess("Exported %s (%d components, version %s)", StyleHighlight.Render(msg.Name), len(msg.Components), msg.Version)
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().String("primary-color", "", "theme primary color")

	return cmd
}

// importCommand creates the import command, which reads a transfer file (or
// a dashboard JSON file) and writes it as a dashboard.
func (c *CLI) importCommand() *cobra.Command {
	var (
		output string
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "import <file|url>",
		Short: "Import a transfer file as a dashboard",
		Example: `  dashforge import sales.transfer.json -o sales.json
  dashforge import https://example.com/dashboards/ops.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			data, err := c.readSource(cmd.Context(), src)
			if err != nil {
				return err
			}

			s := editor.NewSession(c.Registry)
			if err := s.Import(data); err != nil {
				return err
			}
			d := s.Dashboard()

			path := output
			if path == "" {
				path = outputBase(src, "", c.config.OutputDir) + ".json"
				if path == src {
					path = outputBase(src, "", c.config.OutputDir) + ".dashboard.json"
				}
			}
			if err := refuseOverwrite(path, force); err != nil {
				return err
			}
			buf, err := ir.MarshalDashboard(d)
			if err != nil {
				return err
			}
			if err := writeOutput(cmd.OutOrStdout(), path, buf); err != nil {
				return err
			}

			if path != stdoutPath {
				printSuccess("Imported %s", StyleHighlight.Render(d.Title))
				printDetail("%d components · %d nodes", len(d.Components), ir.Count(d.Components))
				printFile(path)
			}
			ir.Walk(d.Components, func(n *ir.Node, _ int) bool {
				if _, ok := c.Registry.Lookup(n.Type); !ok {
					printWarning("Unknown component type %q (%s) will render as a placeholder", n.Type, n.ID)
				}
				return true
			})
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output dashboard file, or - for stdout")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "overwrite an existing file")
	cmd.Flags().String("output-dir", ".", "directory for the default output file")

	return cmd
}

// readSource returns the raw bytes of a local file or an http(s) URL.
func (c *CLI) readSource(ctx context.Context, src string) ([]byte, error) {
	if httputil.IsURL(src) {
		return c.newFetcher(false).Fetch(ctx, src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read %s", src)
	}
	return data, nil
}
