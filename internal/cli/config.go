package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/pipeline"
	"github.com/matzehuels/dashforge/pkg/transfer"
)

// Cache backends.
const (
	CacheFile  = "file"
	CacheRedis = "redis"
	CacheNone  = "none"
)

const (
	envPrefix         = "DASHFORGE_"
	defaultServerAddr = "127.0.0.1:8080"
	defaultRedisAddr  = "localhost:6379"
)

// configFiles are looked up in the working directory when --config is unset.
var configFiles = []string{"dashforge.yaml", "dashforge.yml"}

// Config is the merged CLI configuration.
// Precedence (highest to lowest): flags > env vars > config file > defaults.
type Config struct {
	OutputDir string         `koanf:"output_dir"`
	Cache     CacheConfig    `koanf:"cache"`
	Theme     ThemeConfig    `koanf:"theme"`
	Server    ServerConfig   `koanf:"server"`
	Snapshot  SnapshotConfig `koanf:"snapshot"`

	// File is the config file that was read, if any.
	File string `koanf:"-"`
}

// CacheConfig selects and configures the artifact cache.
type CacheConfig struct {
	Backend   string        `koanf:"backend"`
	RedisAddr string        `koanf:"redis_addr"`
	TTL       time.Duration `koanf:"ttl"`
}

// ThemeConfig holds cosmetic defaults applied to exports.
type ThemeConfig struct {
	PrimaryColor string `koanf:"primary_color"`
}

// ServerConfig configures `dashforge serve`.
type ServerConfig struct {
	Addr string `koanf:"addr"`
}

// SnapshotConfig configures raster and PDF output.
type SnapshotConfig struct {
	Scale     float64 `koanf:"scale"`
	PageWidth float64 `koanf:"page_width"`
}

// DefaultConfig returns the configuration used when nothing overrides it.
func DefaultConfig() *Config {
	return &Config{
		OutputDir: ".",
		Cache:     CacheConfig{Backend: CacheFile, RedisAddr: defaultRedisAddr, TTL: pipeline.DefaultTTL},
		Theme:     ThemeConfig{PrimaryColor: transfer.DefaultPrimaryColor},
		Server:    ServerConfig{Addr: defaultServerAddr},
		Snapshot:  SnapshotConfig{Scale: pipeline.DefaultScale, PageWidth: pipeline.DefaultPageWidth},
	}
}

func defaultsMap() map[string]any {
	d := DefaultConfig()
	return map[string]any{
		"output_dir":          d.OutputDir,
		"cache.backend":       d.Cache.Backend,
		"cache.redis_addr":    d.Cache.RedisAddr,
		"cache.ttl":           d.Cache.TTL.String(),
		"theme.primary_color": d.Theme.PrimaryColor,
		"server.addr":         d.Server.Addr,
		"snapshot.scale":      d.Snapshot.Scale,
		"snapshot.page_width": d.Snapshot.PageWidth,
	}
}

// flagKeys maps command flags onto config keys. Flags not listed here are
// command-local and never reach the config.
var flagKeys = map[string]string{
	"output-dir":    "output_dir",
	"cache":         "cache.backend",
	"redis-addr":    "cache.redis_addr",
	"cache-ttl":     "cache.ttl",
	"primary-color": "theme.primary_color",
	"addr":          "server.addr",
	"scale":         "snapshot.scale",
	"page-width":    "snapshot.page_width",
}

// configSections are the nested config tables; envKey splits the first
// underscore after one of these into a dot.
var configSections = []string{"cache", "theme", "server", "snapshot"}

// envKey maps DASHFORGE_CACHE_REDIS_ADDR to cache.redis_addr.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, envPrefix))
	for _, sec := range configSections {
		if rest, ok := strings.CutPrefix(key, sec+"_"); ok {
			return sec + "." + rest
		}
	}
	return key
}

// findConfigFile returns explicit, or the first default config file present.
func findConfigFile(explicit string) string {
	if explicit != "" {
		return explicit
	}
	for _, name := range configFiles {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

// loadConfig merges defaults, the config file, DASHFORGE_* environment
// variables and explicitly set flags.
func loadConfig(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaultsMap(), "."), nil); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	used := findConfigFile(cfgFile)
	if used != "" {
		if err := k.Load(file.Provider(used), yaml.Parser()); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "read config file %s", used)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
			key, ok := flagKeys[f.Name]
			if !ok || !f.Changed {
				return "", nil
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return nil, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode config")
	}
	cfg.File = used
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the merged configuration.
func (c *Config) Validate() error {
	switch c.Cache.Backend {
	case CacheFile, CacheRedis, CacheNone:
	default:
		return errors.New(errors.ErrCodeInvalidInput, "cache.backend must be one of file, redis, none; got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == CacheRedis && c.Cache.RedisAddr == "" {
		return errors.New(errors.ErrCodeInvalidInput, "cache.redis_addr is required for the redis backend")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	if err := errors.ValidateColor(c.Theme.PrimaryColor); err != nil {
		return err
	}
	if c.Snapshot.Scale <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "snapshot.scale must be positive")
	}
	if c.Snapshot.PageWidth <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "snapshot.page_width must be positive")
	}
	if c.OutputDir == "" {
		c.OutputDir = "."
	}
	return nil
}
