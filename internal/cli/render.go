package cli

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command. Scale,
// page width and theme color come from the merged config.
type renderOpts struct {
	output     string // output base path; the format extension is appended
	formats    string // comma-separated formats
	detailed   bool   // property labels in dot output
	importPath string // module path imported by tsx output
	refresh    bool   // ignore cached artifacts
	noCache    bool   // disable the artifact cache entirely
}

// snapshotFormats go through the external converter and can take a while.
var snapshotFormats = []string{pipeline.FormatPNG, pipeline.FormatPDF}

// renderCommand creates the render command for producing dashboard artifacts.
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render <source>",
		Short: "Render a dashboard to one or more formats",
		Long: `Render a dashboard to one or more formats.

The source is a dashboard JSON file, a transfer file, a TOML preset file,
an http(s) URL, or preset:<name>.

Formats: ` + strings.Join(pipeline.FormatNames(), ", "),
		Example: `  dashforge render dashboard.json
  dashforge render preset:sales -f html,svg,tsx -o out/sales
  dashforge render dashboard.json -f png --scale 3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output base path (default: <output-dir>/<source name>)")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", pipeline.FormatHTML, "comma-separated output formats")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include properties in dot output")
	cmd.Flags().StringVar(&opts.importPath, "import-path", "", "module path imported by tsx output")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "re-render even when cached")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the artifact cache")
	addCacheFlags(cmd)
	cmd.Flags().String("output-dir", ".", "directory for artifacts when --output is unset")
	cmd.Flags().Float64("scale", pipeline.DefaultScale, "png scale factor")
	cmd.Flags().Float64("page-width", pipeline.DefaultPageWidth, "vector page width")
	cmd.Flags().String("primary-color", "", "theme color for transfer output")

	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return pipeline.FormatNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, src string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	formats := parseFormats(opts.formats)
	if err := pipeline.ValidateFormats(formats); err != nil {
		return err
	}
	toStdout := opts.output == stdoutPath
	if toStdout && len(formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput, "--output - needs exactly one format, got %d", len(formats))
	}

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(logger)
	d, err := runner.Load(ctx, src)
	if err != nil {
		return err
	}

	var spin *Spinner
	if !toStdout && slices.ContainsFunc(formats, func(f string) bool { return slices.Contains(snapshotFormats, f) }) {
		spin = newSpinnerWithContext(ctx, "Rendering "+strings.Join(formats, ", "))
		spin.Start()
	}
	res, err := runner.Render(ctx, d, pipeline.Options{
		Formats:      formats,
		Scale:        c.config.Snapshot.Scale,
		PageWidth:    c.config.Snapshot.PageWidth,
		PrimaryColor: c.config.Theme.PrimaryColor,
		Detailed:     opts.detailed,
		ImportPath:   opts.importPath,
		Refresh:      opts.refresh,
	})
	if spin != nil {
		spin.Stop()
	}
	if err != nil {
		return err
	}

	if toStdout {
		return writeOutput(cmd.OutOrStdout(), stdoutPath, res.Artifacts[formats[0]])
	}

	paths, err := writeArtifacts(outputBase(src, opts.output, c.config.OutputDir), formats, res.Artifacts)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d artifacts", len(paths)))

	printSuccess("Rendered %s", StyleHighlight.Render(d.Title))
	printStats(res.Stats.Components, res.Stats.Nodes, len(res.CacheHits), len(paths))
	for _, p := range paths {
		printFile(p)
	}
	if doc := res.Document; doc != nil {
		for _, s := range doc.Skipped {
			printWarning("Skipped %s: unknown type %q", s.NodeID, s.Type)
		}
		for _, f := range doc.Failures {
			printWarning("Failed %s (%s): %s", f.NodeID, f.Type, errors.UserMessage(f.Err))
		}
	}
	return nil
}
