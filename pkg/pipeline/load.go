package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/httputil"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/preset"
	"github.com/matzehuels/dashforge/pkg/registry"
	"github.com/matzehuels/dashforge/pkg/transfer"
)

// PresetScheme prefixes built-in preset sources, as in "preset:sales".
const PresetScheme = "preset:"

// Fetcher downloads remote sources. [httputil.Fetcher] implements it.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Load reads a dashboard from src:
//   - "preset:<name>" loads a built-in preset
//   - a .toml file is parsed as a preset file
//   - an http(s) URL is downloaded with a default [httputil.Fetcher]
//   - any other file is JSON, either a dashboard or a transfer message
func Load(ctx context.Context, reg *registry.Registry, src string) (*ir.Dashboard, error) {
	return load(ctx, reg, src, nil)
}

func load(ctx context.Context, reg *registry.Registry, src string, fetcher Fetcher) (*ir.Dashboard, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if name, ok := strings.CutPrefix(src, PresetScheme); ok {
		return preset.Load(reg, name)
	}

	if httputil.IsURL(src) {
		if fetcher == nil {
			fetcher = httputil.NewFetcher()
		}
		data, err := fetcher.Fetch(ctx, src)
		if err != nil {
			return nil, err
		}
		if strings.HasSuffix(strings.ToLower(src), ".toml") {
			return preset.Parse(reg, data)
		}
		return transfer.DecodeDashboard(data)
	}

	if strings.EqualFold(filepath.Ext(src), ".toml") {
		return preset.LoadFile(reg, src)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "read %s", src)
	}
	return transfer.DecodeDashboard(data)
}
