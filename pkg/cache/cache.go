// Package cache provides the artifact cache used by the render pipeline.
//
// Rendered artifacts (HTML previews, SVG and PNG snapshots, generated TSX,
// outlines) are pure functions of the dashboard content and the render
// options, so they are cached under a key derived from both:
//
//	keyer := cache.NewDefaultKeyer()
//	key := keyer.ArtifactKey(cache.Hash(dashboardJSON), cache.ArtifactKeyOpts{Format: "png", Scale: 2})
//
// Three backends are provided:
//   - [FileCache]: entries as JSON files under a directory (CLI default)
//   - [RedisCache]: a shared Redis instance (server deployments)
//   - [NullCache]: never stores anything (caching disabled)
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads with an optional time-to-live.
//
// Get reports a miss as (nil, false, nil); an error means the backend itself
// failed. A zero ttl stores the entry without expiration.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they hold.
// Clear returns the number of entries removed.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

// Keyer generates cache keys.
type Keyer interface {
	// ArtifactKey returns the key of a rendered artifact of the dashboard
	// whose serialized content hashes to contentHash.
	ArtifactKey(contentHash string, opts ArtifactKeyOpts) string
}

// ArtifactKeyOpts holds every render option that changes artifact bytes.
type ArtifactKeyOpts struct {
	Format     string  `json:"format"`
	Scale      float64 `json:"scale,omitempty"`
	PageWidth  float64 `json:"page_width,omitempty"`
	Theme      string  `json:"theme,omitempty"`
	Detailed   bool    `json:"detailed,omitempty"`
	// ImportPath is the module generated code imports components from.
	ImportPath string `json:"import_path,omitempty"`
}

// DefaultKeyer produces keys of the form "artifact:<format>:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer creates the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(contentHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact:"+opts.Format, contentHash, opts)
}
