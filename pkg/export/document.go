package export

import (
	"encoding/json"
	"strconv"

	"github.com/matzehuels/dashforge/pkg/errors"
)

// DocumentNode is the result of a build: the root frame created in the host
// and a record of what happened to each top-level component.
type DocumentNode struct {
	Ref        Ref
	Name       string
	W, H       float64
	Components []Frame
	Skipped    []Skip
	Failures   []*errors.NodeError
}

// Frame is one exported component and where it was placed in the root.
type Frame struct {
	NodeID string  `json:"nodeId"`
	Type   string  `json:"type"`
	Ref    Ref     `json:"ref"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
}

// Skip records a node left out of the document because its type is unknown.
type Skip struct {
	NodeID string `json:"nodeId"`
	Type   string `json:"type"`
}

// Summary returns the user-facing notification text for the build.
func (d *DocumentNode) Summary() string {
	msg := pluralize(len(d.Components), "component") + " exported"
	if n := len(d.Skipped); n > 0 {
		msg += ", " + pluralize(n, "unknown component") + " skipped"
	}
	if n := len(d.Failures); n > 0 {
		msg += ", " + pluralize(n, "component") + " failed"
	}
	return msg
}

func pluralize(n int, noun string) string {
	s := strconv.Itoa(n) + " " + noun
	if n != 1 {
		s += "s"
	}
	return s
}

// Report is the serializable form of a build result.
type Report struct {
	Name       string    `json:"name"`
	Ref        Ref       `json:"ref"`
	Width      float64   `json:"width"`
	Height     float64   `json:"height"`
	Summary    string    `json:"summary"`
	Components []Frame   `json:"components"`
	Skipped    []Skip    `json:"skipped"`
	Failures   []Failure `json:"failures"`
}

// Failure is one isolated node failure in a [Report].
type Failure struct {
	NodeID  string `json:"nodeId"`
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Report converts the build result for serialization.
func (d *DocumentNode) Report() Report {
	r := Report{
		Name: d.Name, Ref: d.Ref, Width: d.W, Height: d.H, Summary: d.Summary(),
		Components: append([]Frame{}, d.Components...),
		Skipped:    append([]Skip{}, d.Skipped...),
		Failures:   make([]Failure, 0, len(d.Failures)),
	}
	for _, f := range d.Failures {
		r.Failures = append(r.Failures, Failure{
			NodeID: f.NodeID, Type: f.Type, Code: string(f.Code()), Message: errors.UserMessage(f.Err),
		})
	}
	return r
}

// MarshalReport encodes the build result as indented JSON.
func (d *DocumentNode) MarshalReport() ([]byte, error) {
	return json.MarshalIndent(d.Report(), "", "  ")
}
