package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/pipeline"
)

// stdoutPath selects standard output wherever a command takes an output path.
const stdoutPath = "-"

// loadDashboard reads src without touching the artifact cache.
func (c *CLI) loadDashboard(ctx context.Context, src string) (*ir.Dashboard, error) {
	r := pipeline.NewRunner(c.Registry, nil, nil, c.Logger)
	r.Fetcher = c.newFetcher(false)
	return r.Load(ctx, src)
}

// writeOutput writes data to path, creating parent directories. An empty
// path or "-" writes to w instead.
func writeOutput(w io.Writer, path string, data []byte) error {
	if path == "" || path == stdoutPath {
		_, err := w.Write(data)
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeArtifacts writes each rendered format next to base and returns the
// paths in format order.
func writeArtifacts(base string, formats []string, artifacts map[string][]byte) ([]string, error) {
	var paths []string
	seen := make(map[string]bool, len(formats))
	for _, f := range formats {
		data, ok := artifacts[f]
		if !ok || seen[f] {
			continue
		}
		seen[f] = true
		path := base + pipeline.Extensions[f]
		if err := writeOutput(nil, path, data); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// refuseOverwrite fails when path exists and force is unset.
func refuseOverwrite(path string, force bool) error {
	if force || path == "" || path == stdoutPath {
		return nil
	}
	if _, err := os.Stat(path); err == nil {
		return errors.New(errors.ErrCodeInvalidInput, "%s already exists (use --force to overwrite)", path)
	}
	return nil
}
