// Package transfer defines the portable message that carries a dashboard
// from the builder to the vector exporter.
//
// The message is the only contract between the two sides. It travels
// out-of-band as JSON (a file, or a clipboard paste into the host
// application) and shares no runtime state with the builder:
//
//	{
//	  "name": "Sales",
//	  "components": [ ...nodes... ],
//	  "theme": { "primaryColor": "#3b82f6" },
//	  "exportedAt": "2026-01-02T15:04:05Z",
//	  "version": "1.0"
//	}
package transfer

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"strings"
	"time"

	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/ir"
)

// Version is the message format version written by [Marshal].
const Version = "1.0"

// DefaultPrimaryColor is used when a message carries no usable theme color.
const DefaultPrimaryColor = "#3b82f6"

// Theme holds the cosmetic settings carried along with the tree.
type Theme struct {
	PrimaryColor string `json:"primaryColor"`
}

// Message is the transfer payload.
type Message struct {
	Name       string     `json:"name"`
	Components []*ir.Node `json:"components"`
	Theme      Theme      `json:"theme"`
	ExportedAt time.Time  `json:"exportedAt"`
	Version    string     `json:"version"`
}

// FromDashboard builds a message from a dashboard. The components are deep
// copied, so later edits do not leak into the message.
func FromDashboard(d *ir.Dashboard, theme Theme, now time.Time) *Message {
	comps := make([]*ir.Node, len(d.Components))
	for i, n := range d.Components {
		comps[i] = n.Clone()
	}
	if errors.ValidateColor(theme.PrimaryColor) != nil {
		theme.PrimaryColor = DefaultPrimaryColor
	}
	return &Message{
		Name:       d.Title,
		Components: comps,
		Theme:      theme,
		ExportedAt: now.UTC().Truncate(time.Millisecond),
		Version:    Version,
	}
}

// Dashboard returns a dashboard holding the message's components with the
// default layout.
func (m *Message) Dashboard() *ir.Dashboard {
	d := ir.New(m.Name)
	for _, n := range m.Components {
		d.Components = append(d.Components, n.Clone())
	}
	return d
}

// Marshal encodes m as indented JSON.
func Marshal(m *Message) ([]byte, error) {
	if m.Components == nil {
		cp := *m
		cp.Components = []*ir.Node{}
		m = &cp
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "encode transfer message")
	}
	return data, nil
}

// Parse decodes and validates a transfer message.
//
// Decode errors are DECODE_FAILED; an unsupported major version is
// INVALID_FORMAT; a structurally invalid tree is INVALID_TREE. A malformed
// theme color falls back to [DefaultPrimaryColor] instead of failing.
func Parse(data []byte) (*Message, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New(errors.ErrCodeDecode, "transfer payload is empty")
	}
	var m Message
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode transfer payload")
	}
	if m.Version != "" && !strings.HasPrefix(m.Version, "1.") && m.Version != "1" {
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported transfer version %q", m.Version)
	}
	if m.Components == nil {
		m.Components = []*ir.Node{}
	}
	if err := ir.Validate(m.Components); err != nil {
		return nil, err
	}
	if errors.ValidateColor(m.Theme.PrimaryColor) != nil {
		m.Theme.PrimaryColor = DefaultPrimaryColor
	}
	return &m, nil
}

// Read parses a message from r.
func Read(r io.Reader) (*Message, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "read transfer payload")
	}
	return Parse(data)
}

// ReadFile parses a message from a file.
func ReadFile(path string) (*Message, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
	}
	return Parse(data)
}

// WriteFile writes m to path.
func WriteFile(path string, m *Message) error {
	data, err := Marshal(m)
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// DecodeDashboard parses JSON that is either a plain dashboard or a transfer
// message. A payload carrying "version" or "exportedAt" is treated as a
// transfer message.
func DecodeDashboard(data []byte) (*ir.Dashboard, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(bytes.TrimSpace(data), &probe); err != nil {
		return nil, errors.Wrap(errors.ErrCodeDecode, err, "decode dashboard")
	}
	_, hasVersion := probe["version"]
	_, hasExported := probe["exportedAt"]
	if hasVersion || hasExported {
		m, err := Parse(data)
		if err != nil {
			return nil, err
		}
		return m.Dashboard(), nil
	}
	return ir.UnmarshalDashboard(data)
}
