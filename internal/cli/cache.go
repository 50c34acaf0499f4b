package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dashforge/pkg/httputil"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact and remote-source caches",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheInfoCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached artifact and fetched source",
		Long: `Remove every cached artifact and fetched source.

With the file backend this empties the cache directory. With the redis
backend it deletes the keys under the dashforge prefix and also drops the
fetched remote sources kept on disk.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), false)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Close()

			count, err := runner.Clear(cmd.Context())
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}

			if c.config.Cache.Backend != CacheFile {
				n, err := clearRemote()
				if err != nil {
					return fmt.Errorf("clear remote sources: %w", err)
				}
				count += n
			}

			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}
			printSuccess("Cleared %d cached entries", count)
			printDetail("Backend: %s", c.config.Cache.Backend)
			return nil
		},
	}
	addCacheFlags(cmd)
	return cmd
}

// clearRemote removes fetched remote sources from the cache directory.
func clearRemote() (int, error) {
	dir, err := cacheDir()
	if err != nil {
		return 0, err
	}
	hc, err := httputil.NewCache(dir, remoteTTL)
	if err != nil {
		return 0, err
	}
	return hc.Clear()
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the effective cache configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				dir = "unavailable: " + err.Error()
			}
			cfg := c.config.Cache
			printKeyValue("Backend", cfg.Backend)
			if cfg.Backend == CacheRedis {
				printKeyValue("Redis", cfg.RedisAddr)
			}
			printKeyValue("TTL", cfg.TTL.String())
			printKeyValue("Directory", dir)
			printKeyValue("Remote TTL", remoteTTL.Round(time.Minute).String())
			if c.config.File != "" {
				printKeyValue("Config", c.config.File)
			}
			return nil
		},
	}
}
