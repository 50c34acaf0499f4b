package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashforge/pkg/codegen"
)

// codegenCommand creates the codegen command, which prints the React/TSX
// source for a dashboard.
func (c *CLI) codegenCommand() *cobra.Command {
	var (
		output     string
		importPath string
		indent     int
	)

	cmd := &cobra.Command{
		Use:   "codegen <source>",
		Short: "Generate React/TSX source for a dashboard",
		Example: `  dashforge codegen dashboard.json > Dashboard.tsx
  dashforge codegen preset:analytics --import-path @/ui -o src/Analytics.tsx`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := c.loadDashboard(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			gen := codegen.New(c.Registry, codegen.WithImportPath(importPath), codegen.WithIndentWidth(indent))
			src := gen.EmitDashboard(d)
			if err := writeOutput(cmd.OutOrStdout(), output, []byte(src)); err != nil {
				return err
			}
			if output != "" && output != stdoutPath {
				printSuccess("Generated %s", codegen.FuncName(d.Title))
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().StringVar(&importPath, "import-path", codegen.DefaultImportPath, "module path the components are imported from")
	cmd.Flags().IntVar(&indent, "indent", 2, "spaces per indentation level")

	return cmd
}
