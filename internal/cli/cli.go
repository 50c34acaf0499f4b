package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dashforge/pkg/buildinfo"
	"github.com/matzehuels/dashforge/pkg/cache"
	"github.com/matzehuels/dashforge/pkg/httputil"
	"github.com/matzehuels/dashforge/pkg/pipeline"
	"github.com/matzehuels/dashforge/pkg/registry"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "dashforge"

	// remoteTTL is how long fetched remote sources stay cached.
	remoteTTL = time.Hour
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger   *log.Logger
	Registry *registry.Registry

	configFile string
	config     *Config
}

// New creates a new CLI instance with a default logger and the built-in
// component registry.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:   newLogger(w, level),
		Registry: registry.Default(),
		config:   DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Dashforge builds dashboards from a component tree",
		Long:         `Dashforge edits a dashboard as a tree of typed components and turns it into an HTML preview, React/TSX source, a portable transfer file, or a vector document (SVG, PNG, PDF).`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			c.config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configFile, "config", "", "config file (default: ./dashforge.yaml)")

	root.AddCommand(c.newCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.codegenCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.editCommand())
	root.AddCommand(c.outlineCommand())
	root.AddCommand(c.registryCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Config returns the configuration loaded for the running command.
func (c *CLI) Config() *Config { return c.config }

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	// Artifacts are scoped to the build that rendered them.
	keyer := cache.NewScopedKeyer(nil, buildinfo.Version+":")
	r := pipeline.NewRunner(c.Registry, store, keyer, c.Logger)
	r.TTL = c.config.Cache.TTL
	r.Fetcher = c.newFetcher(noCache)
	return r, nil
}

// addCacheFlags registers the flags that select the artifact cache. Their
// values reach the config through flagKeys.
func addCacheFlags(cmd *cobra.Command) {
	cmd.Flags().String("cache", CacheFile, "cache backend: file, redis, none")
	cmd.Flags().String("redis-addr", defaultRedisAddr, "redis address for the redis backend")
	cmd.Flags().Duration("cache-ttl", pipeline.DefaultTTL, "lifetime of cached artifacts")
}

func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.config.Cache.Backend {
	case CacheNone:
		return cache.NewNullCache(), nil
	case CacheRedis:
		rc, err := cache.NewRedisCache(ctx, cache.RedisConfig{Addr: c.config.Cache.RedisAddr})
		if err != nil {
			return nil, fmt.Errorf("redis cache at %s: %w", c.config.Cache.RedisAddr, err)
		}
		return rc, nil
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "error", err)
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newFetcher creates the downloader for URL sources. Responses share the
// file cache directory unless caching is off.
func (c *CLI) newFetcher(noCache bool) *httputil.Fetcher {
	opts := []httputil.Option{httputil.WithLogger(c.Logger)}
	if !noCache && c.config.Cache.Backend != CacheNone {
		if dir, err := cacheDir(); err == nil {
			if hc, err := httputil.NewCache(dir, remoteTTL); err == nil {
				opts = append(opts, httputil.WithCache(hc))
			}
		}
	}
	return httputil.NewFetcher(opts...)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/dashforge/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// outputBase returns the path, without extension, that artifacts for src are
// written to. An explicit output wins; otherwise the source's base name is
// placed in dir.
func outputBase(src, output, dir string) string {
	if output != "" {
		return strings.TrimSuffix(output, filepath.Ext(output))
	}
	name := src
	if n, ok := strings.CutPrefix(src, pipeline.PresetScheme); ok {
		name = n
	} else if httputil.IsURL(src) {
		name = src[strings.LastIndex(src, "/")+1:]
		if i := strings.IndexAny(name, "?#"); i >= 0 {
			name = name[:i]
		}
	}
	name = filepath.Base(name)
	name = strings.TrimSuffix(name, filepath.Ext(name))
	if name == "" || name == "." || name == "/" {
		name = "dashboard"
	}
	return filepath.Join(dir, name)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatHTML}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(strings.ToLower(f)); f != "" {
			out = append(out, f)
		}
	}
	return out
}
