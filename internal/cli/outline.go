package cli

import (
	"slices"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/outline"
)

var outlineFormats = []string{"svg", "dot", "pdf", "png"}

// outlineCommand creates the outline command, which draws the component
// tree as a node-link diagram.
func (c *CLI) outlineCommand() *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "outline <source>",
		Short: "Draw the component tree as a diagram",
		Example: `  dashforge outline dashboard.json
  dashforge outline preset:sales -f dot -o - | dot -Tpng > sales.png
  dashforge outline dashboard.json --detailed -f pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(outlineFormats, format) {
				return errors.New(errors.ErrCodeInvalidFormat, "outline format must be one of %v, got %q", outlineFormats, format)
			}
			ctx := cmd.Context()
			d, err := c.loadDashboard(ctx, args[0])
			if err != nil {
				return err
			}

			dot := outline.ToDOT(d, c.Registry, outline.Options{Detailed: detailed})
			var data []byte
			switch format {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = outline.RenderSVG(ctx, dot)
			case "pdf":
				data, err = outline.RenderPDF(ctx, dot)
			case "png":
				data, err = outline.RenderPNG(ctx, dot, c.config.Snapshot.Scale)
			}
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = outputBase(args[0], "", c.config.OutputDir) + ".outline." + format
			}
			if err := writeOutput(cmd.OutOrStdout(), path, data); err != nil {
				return err
			}
			if path != stdoutPath {
				printSuccess("Outlined %s", StyleHighlight.Render(d.Title))
				printFile(path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file, or - for stdout")
	cmd.Flags().StringVarP(&format, "format", "f", "svg", "output format: svg, dot, pdf, png")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include properties in node labels")
	cmd.Flags().String("output-dir", ".", "directory for the default output file")
	cmd.Flags().Float64("scale", 2, "png scale factor")

	return cmd
}
