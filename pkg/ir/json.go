package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/dashforge/pkg/errors"
)

// =============================================================================
// Dashboard Serialization API
// =============================================================================

// MarshalDashboard converts a dashboard to indented JSON bytes.
// Component and property order are preserved exactly.
func MarshalDashboard(d *Dashboard) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDashboard(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDashboard writes a dashboard as JSON to w.
func WriteDashboard(d *Dashboard, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteDashboardFile writes a dashboard to a JSON file.
func WriteDashboardFile(d *Dashboard, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteDashboard(d, f)
}

// ReadDashboard decodes and validates a dashboard from r.
// Any failure is reported as a single DECODE_FAILED or INVALID_TREE error.
func ReadDashboard(r io.Reader) (*Dashboard, error) {
	var d Dashboard
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode dashboard")
	}
	if d.Components == nil {
		d.Components = []*Node{}
	}
	if d.Layout.Mode == "" {
		d.Layout.Mode = LayoutGrid
	}
	if err := ValidateDashboard(&d); err != nil {
		return nil, err
	}
	return &d, nil
}

// UnmarshalDashboard decodes and validates a dashboard from JSON bytes.
func UnmarshalDashboard(data []byte) (*Dashboard, error) {
	return ReadDashboard(bytes.NewReader(data))
}

// ReadDashboardFile reads a dashboard JSON file.
func ReadDashboardFile(path string) (*Dashboard, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadDashboard(f)
}

// MarshalNodes encodes a component list as compact JSON.
func MarshalNodes(nodes []*Node) ([]byte, error) {
	if nodes == nil {
		nodes = []*Node{}
	}
	return json.Marshal(nodes)
}

// UnmarshalNodes decodes and validates a component list.
func UnmarshalNodes(data []byte) ([]*Node, error) {
	var nodes []*Node
	if err := json.Unmarshal(data, &nodes); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode components")
	}
	if nodes == nil {
		nodes = []*Node{}
	}
	if err := Validate(nodes); err != nil {
		return nil, err
	}
	return nodes, nil
}
