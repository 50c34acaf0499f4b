package snapshot

import (
	"bytes"
	"context"
	"os/exec"
	"strconv"
	"strings"

	"github.com/matzehuels/dashforge/pkg/errors"
)

// Converter is the librsvg command used for PDF and PNG conversion.
var Converter = "rsvg-convert"

// Available reports whether [Converter] is on the PATH.
func Available() bool {
	_, err := exec.LookPath(Converter)
	return err == nil
}

// ToPDF converts an SVG document to PDF.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "-f", "pdf")
}

// ToPNG converts an SVG document to PNG. A scale of 2.0 doubles the
// resolution; non-positive scales are treated as 1.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(ctx, svg, "-f", "png", "-z", strconv.FormatFloat(scale, 'f', -1, 64))
}

func convert(ctx context.Context, svg []byte, args ...string) ([]byte, error) {
	if len(svg) == 0 {
		return nil, errors.New(errors.ErrCodeSnapshotFailed, "empty svg input")
	}
	path, err := exec.LookPath(Converter)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeSnapshotFailed, err,
			"%s not found (install librsvg: brew install librsvg, apt install librsvg2-bin)", Converter)
	}

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Stdin = bytes.NewReader(svg)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, errors.Wrap(errors.ErrCodeSnapshotFailed, err, "%s: %s", Converter, msg)
		}
		return nil, errors.Wrap(errors.ErrCodeSnapshotFailed, err, "%s", Converter)
	}
	return stdout.Bytes(), nil
}
