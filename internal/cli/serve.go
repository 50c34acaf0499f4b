package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashforge/internal/server"
	"github.com/matzehuels/dashforge/pkg/pipeline"
)

// serveCommand creates the serve command for the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API over HTTP",
		Long: `Serve the dashboard API over HTTP.

The API previews, generates code for, exports and converts dashboards sent
as JSON. Rendered artifacts share the cache used by 'render'.

Endpoints:
  GET  /api/health
  GET  /api/registry[/{type}]
  GET  /api/presets[/{name}]
  POST /api/preview
  POST /api/codegen?import_path=...
  POST /api/export?format=svg|png|pdf|vector
  POST /api/transfer?primary_color=...
  POST /api/import

The server stops gracefully on Ctrl+C.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			cfg := c.config
			srv := server.New(server.Config{
				Addr:     cfg.Server.Addr,
				Registry: c.Registry,
				Runner:   runner,
				Logger:   c.Logger,
				Render: pipeline.Options{
					Scale:        cfg.Snapshot.Scale,
					PageWidth:    cfg.Snapshot.PageWidth,
					PrimaryColor: cfg.Theme.PrimaryColor,
				},
			})

			printSuccess("Dashboard API listening")
			printKeyValue("URL", StyleLink.Render("http://"+cfg.Server.Addr+"/api/health"))
			printKeyValue("Cache", cfg.Cache.Backend)
			printNewline()

			if err := srv.Serve(ctx); err != nil {
				return err
			}
			printInfo("Server stopped")
			return nil
		},
	}

	cmd.Flags().String("addr", defaultServerAddr, "listen address (host:port)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable artifact caching")
	addCacheFlags(cmd)

	return cmd
}
