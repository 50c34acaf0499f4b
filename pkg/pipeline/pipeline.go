// Package pipeline provides the artifact pipeline shared by the CLI and the
// HTTP API.
//
// The pipeline has two stages:
//
//  1. Load: read a dashboard from a JSON file, a transfer message, a TOML
//     preset file or a built-in preset name
//  2. Render: produce artifacts in any of the supported formats
//
// Rendering is cached per format under a key derived from the dashboard
// content and the options that affect the output bytes.
//
// # Usage
//
//	runner := pipeline.NewRunner(registry.Default(), cache, nil, logger)
//	d, err := runner.Load(ctx, "dashboards/sales.json")
//	result, err := runner.Render(ctx, d, pipeline.Options{Formats: []string{"tsx", "png"}})
//	tsx := result.Artifacts["tsx"]
package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/dashforge/pkg/cache"
	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/export"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/transfer"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultScale is the PNG scale factor.
	DefaultScale = 2.0

	// DefaultPageWidth is the width top-level frames wrap at in vector output
	// and the width of png and pdf snapshots.
	DefaultPageWidth = 1440.0

	// DefaultTTL is how long rendered artifacts stay cached.
	DefaultTTL = 7 * 24 * time.Hour
)

// Format constants for output formats.
const (
	FormatHTML     = "html"
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatPDF      = "pdf"
	FormatTSX      = "tsx"
	FormatJSON     = "json"
	FormatTransfer = "transfer"
	FormatVector   = "vector"
	FormatDOT      = "dot"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML:     true,
	FormatSVG:      true,
	FormatPNG:      true,
	FormatPDF:      true,
	FormatTSX:      true,
	FormatJSON:     true,
	FormatTransfer: true,
	FormatVector:   true,
	FormatDOT:      true,
}

// Extensions maps each format to its file extension.
var Extensions = map[string]string{
	FormatHTML:     ".html",
	FormatSVG:      ".svg",
	FormatPNG:      ".png",
	FormatPDF:      ".pdf",
	FormatTSX:      ".tsx",
	FormatJSON:     ".json",
	FormatTransfer: ".transfer.json",
	FormatVector:   ".vector.json",
	FormatDOT:      ".dot",
}

// uncached formats embed the export time, so equal content does not give
// equal bytes.
var uncached = map[string]bool{
	FormatTransfer: true,
}

// FormatNames returns the supported formats in display order.
func FormatNames() []string {
	return []string{FormatHTML, FormatSVG, FormatPNG, FormatPDF, FormatTSX, FormatJSON, FormatTransfer, FormatVector, FormatDOT}
}

// =============================================================================
// Options - Render Configuration
// =============================================================================

// Options contains all configuration for a render.
// This struct supports JSON serialization for API requests.
type Options struct {
	Formats      []string `json:"formats,omitempty"`
	Scale        float64  `json:"scale,omitempty"`
	PageWidth    float64  `json:"page_width,omitempty"`
	PrimaryColor string   `json:"primary_color,omitempty"`
	Detailed     bool     `json:"detailed,omitempty"` // property labels in outline output
	ImportPath   string   `json:"import_path,omitempty"`
	Refresh      bool     `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger      `json:"-"`
	Now    func() time.Time `json:"-"`
}

// Result contains the outputs of a render.
type Result struct {
	// ContentHash is the hash of the canonical dashboard JSON.
	ContentHash string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Document is the vector export result, set when svg or vector was
	// rendered rather than served from cache.
	Document *export.DocumentNode

	// Stats contains timing and size information.
	Stats Stats

	// CacheHits lists the formats served from cache.
	CacheHits []string
}

// Stats contains render statistics.
type Stats struct {
	Components int
	Nodes      int
	RenderTime time.Duration
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errors.New(errors.ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)",
			format, strings.Join(FormatNames(), ", "))
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
func (o *Options) ValidateAndSetDefaults() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.Scale < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "scale must be positive, got %g", o.Scale)
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.PageWidth < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "page width must be positive, got %g", o.PageWidth)
	}
	if o.PageWidth == 0 {
		o.PageWidth = DefaultPageWidth
	}
	if o.PrimaryColor == "" {
		o.PrimaryColor = transfer.DefaultPrimaryColor
	}
	if err := errors.ValidateColor(o.PrimaryColor); err != nil {
		return err
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return nil
}

// Theme returns the transfer theme for the options.
func (o *Options) Theme() transfer.Theme {
	return transfer.Theme{PrimaryColor: o.PrimaryColor}
}

// ArtifactKeyOpts returns cache key options for one format. Options that do
// not affect a format's bytes are left out so they do not split the cache.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	k := cache.ArtifactKeyOpts{Format: format}
	switch format {
	case FormatSVG, FormatVector:
		k.PageWidth, k.Theme = o.PageWidth, o.PrimaryColor
	case FormatPDF:
		k.PageWidth = o.PageWidth
	case FormatPNG:
		k.PageWidth, k.Scale = o.PageWidth, o.Scale
	case FormatDOT:
		k.Detailed = o.Detailed
	case FormatTSX:
		k.ImportPath = o.ImportPath
	}
	return k
}

// ContentHash returns the cache hash of a dashboard's canonical JSON.
func ContentHash(d *ir.Dashboard) (string, error) {
	data, err := ir.MarshalDashboard(d)
	if err != nil {
		return "", fmt.Errorf("serialize dashboard for cache key: %w", err)
	}
	return cache.Hash(data), nil
}
