package pipeline

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashforge/pkg/cache"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/observability"
	"github.com/matzehuels/dashforge/pkg/registry"
)

// Runner encapsulates rendering with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store render results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Registry *registry.Registry
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	TTL      time.Duration

	// Fetcher downloads URL sources in Load. Nil uses a default
	// [httputil.Fetcher] without a response cache.
	Fetcher Fetcher
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(reg *registry.Registry, c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if reg == nil {
		reg = registry.Default()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Registry: reg, Cache: c, Keyer: keyer, Logger: logger, TTL: DefaultTTL}
}

// Load reads a dashboard with the runner's registry. See [Load].
func (r *Runner) Load(ctx context.Context, src string) (*ir.Dashboard, error) {
	d, err := load(ctx, r.Registry, src, r.Fetcher)
	if err != nil {
		return nil, err
	}
	r.Logger.Debug("loaded dashboard", "source", src, "components", len(d.Components), "nodes", ir.Count(d.Components))
	return d, nil
}

// Render produces every requested format, serving what it can from cache
// and rendering the rest in a single pass.
func (r *Runner) Render(ctx context.Context, d *ir.Dashboard, opts Options) (result *Result, err error) {
	if err := ir.ValidateDashboard(d); err != nil {
		return nil, err
	}
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}

	start := time.Now()
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	defer func() {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	}()

	hash, err := ContentHash(d)
	if err != nil {
		return nil, err
	}
	result = &Result{
		ContentHash: hash,
		Artifacts:   make(map[string][]byte, len(opts.Formats)),
		Stats:       Stats{Components: len(d.Components), Nodes: ir.Count(d.Components)},
	}

	var missing []string
	for _, format := range opts.Formats {
		if slices.Contains(missing, format) || result.Artifacts[format] != nil {
			continue
		}
		if data, ok := r.lookup(ctx, hash, format, opts); ok {
			result.Artifacts[format] = data
			result.CacheHits = append(result.CacheHits, format)
			continue
		}
		missing = append(missing, format)
	}

	if len(missing) > 0 {
		out, err := render(ctx, r.Registry, d, missing, opts)
		if err != nil {
			return nil, err
		}
		if out.vector != nil {
			result.Document = out.vector.Document
		}
		for format, data := range out.artifacts {
			result.Artifacts[format] = data
			r.store(ctx, hash, format, data, opts)
		}
	}

	result.Stats.RenderTime = time.Since(start)
	r.Logger.Info("rendered dashboard",
		"title", d.Title,
		"formats", opts.Formats,
		"cached", len(result.CacheHits),
		"duration", result.Stats.RenderTime)
	return result, nil
}

func (r *Runner) lookup(ctx context.Context, hash, format string, opts Options) ([]byte, bool) {
	if opts.Refresh || uncached[format] {
		return nil, false
	}
	key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "format", format, "error", err)
		return nil, false
	}
	if !hit {
		observability.Cache().OnCacheMiss(ctx, format)
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, format)
	return data, true
}

func (r *Runner) store(ctx context.Context, hash, format string, data []byte, opts Options) {
	if uncached[format] {
		return
	}
	key := r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(format))
	if err := r.Cache.Set(ctx, key, data, r.TTL); err != nil {
		r.Logger.Warn("cache write failed", "format", format, "error", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, format, len(data))
}

// Clear empties the cache when the backend supports it.
func (r *Runner) Clear(ctx context.Context) (int, error) {
	c, ok := r.Cache.(cache.Clearer)
	if !ok {
		return 0, fmt.Errorf("cache backend %T cannot be cleared", r.Cache)
	}
	return c.Clear(ctx)
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
