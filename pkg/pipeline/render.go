package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/dashforge/pkg/codegen"
	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/outline"
	"github.com/matzehuels/dashforge/pkg/preview"
	"github.com/matzehuels/dashforge/pkg/registry"
	"github.com/matzehuels/dashforge/pkg/snapshot"
	"github.com/matzehuels/dashforge/pkg/transfer"
)

// rendered is the output of one uncached render pass.
type rendered struct {
	artifacts map[string][]byte
	vector    *snapshot.Result
}

// Render generates artifacts for the given formats without caching.
// opts must already be validated.
func Render(ctx context.Context, reg *registry.Registry, d *ir.Dashboard, formats []string, opts Options) (map[string][]byte, error) {
	out, err := render(ctx, reg, d, formats, opts)
	if err != nil {
		return nil, err
	}
	return out.artifacts, nil
}

func render(ctx context.Context, reg *registry.Registry, d *ir.Dashboard, formats []string, opts Options) (*rendered, error) {
	out := &rendered{artifacts: make(map[string][]byte, len(formats))}

	// svg and vector share one export pass; png and pdf share one preview
	// snapshot.
	vector := func() (*snapshot.Result, error) {
		if out.vector != nil {
			return out.vector, nil
		}
		res, err := snapshot.Export(ctx, reg, d,
			snapshot.WithTheme(opts.Theme()),
			snapshot.WithPageWidth(opts.PageWidth),
			snapshot.WithLogger(opts.Logger),
		)
		if err != nil {
			return nil, err
		}
		out.vector = res
		return res, nil
	}
	var snap []byte
	previewSnapshot := func() ([]byte, error) {
		if snap != nil {
			return snap, nil
		}
		svg, err := snapshot.Render(reg, d, snapshot.WithPageWidth(opts.PageWidth))
		snap = svg
		return svg, err
	}

	for _, format := range formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatHTML:
			data, err = renderHTML(reg, d)
		case FormatTSX:
			gen := codegen.New(reg, codegen.WithImportPath(importPath(opts)))
			data = []byte(gen.EmitDashboard(d))
		case FormatJSON:
			data, err = ir.MarshalDashboard(d)
		case FormatTransfer:
			data, err = transfer.Marshal(transfer.FromDashboard(d, opts.Theme(), opts.Now()))
		case FormatDOT:
			data = []byte(outline.ToDOT(d, reg, outline.Options{Detailed: opts.Detailed}))
		case FormatSVG, FormatVector:
			var res *snapshot.Result
			if res, err = vector(); err != nil {
				break
			}
			if format == FormatSVG {
				data = res.SVG
			} else {
				data, err = res.Document.MarshalReport()
			}
		case FormatPNG, FormatPDF:
			var svg []byte
			if svg, err = previewSnapshot(); err != nil {
				break
			}
			if format == FormatPNG {
				data, err = snapshot.ToPNG(ctx, svg, opts.Scale)
			} else {
				data, err = snapshot.ToPDF(ctx, svg)
			}
		default:
			return nil, errors.New(errors.ErrCodeUnsupported, "unsupported format: %s", format)
		}
		if err != nil {
			return nil, errors.Wrap(errors.GetCodeOr(err, errors.ErrCodeInternal), err, "render %s", format)
		}
		out.artifacts[format] = data
	}
	return out, nil
}

func renderHTML(reg *registry.Registry, d *ir.Dashboard) ([]byte, error) {
	var buf bytes.Buffer
	body := preview.New(reg).RenderDashboard(d)
	if err := preview.WritePage(&buf, d.Title, body); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func importPath(opts Options) string {
	if opts.ImportPath == "" {
		return codegen.DefaultImportPath
	}
	return opts.ImportPath
}
