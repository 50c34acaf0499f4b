package ir

import (
	"reflect"
	"strings"
	"testing"

	"github.com/matzehuels/dashforge/pkg/errors"
)

func sampleTree() *Dashboard {
	d := New("Sales")
	d.Components = []*Node{
		{ID: "stat-1", Type: "stat-card", Props: NewProps(
			"title", "Total Revenue",
			"value", "$45,231",
			"change", "+20.1%",
			"changeType", "positive",
		)},
		{ID: "card-1", Type: "card", Props: NewProps("title", "Details"), Children: []*Node{
			{ID: "table-1", Type: "data-table", Props: NewProps(
				"columns", []any{"name", "status"},
				"rows", []any{map[string]any{"name": "Alice", "status": "active"}},
			)},
			{ID: "text-1", Type: "text", Props: NewProps("content", "hello")},
		}},
		{ID: "line-1", Type: "line-chart", Props: NewProps("title", "Revenue Over Time", "color", "#3b82f6")},
	}
	return d
}

func TestDashboardRoundTrip(t *testing.T) {
	d := sampleTree()

	data, err := MarshalDashboard(d)
	if err != nil {
		t.Fatalf("MarshalDashboard: %v", err)
	}
	got, err := UnmarshalDashboard(data)
	if err != nil {
		t.Fatalf("UnmarshalDashboard: %v", err)
	}
	if !reflect.DeepEqual(got, d) {
		t.Errorf("round trip mismatch\n got: %#v\nwant: %#v", got, d)
	}
}

func TestNodesRoundTrip(t *testing.T) {
	nodes := sampleTree().Components

	data, err := MarshalNodes(nodes)
	if err != nil {
		t.Fatalf("MarshalNodes: %v", err)
	}
	got, err := UnmarshalNodes(data)
	if err != nil {
		t.Fatalf("UnmarshalNodes: %v", err)
	}
	if !reflect.DeepEqual(got, nodes) {
		t.Error("round trip mismatch")
	}
}

func TestNodeChildrenRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		node *Node
	}{
		{"nil children", &Node{ID: "t", Type: "text", Props: NewProps("content", "x")}},
		{"empty children", &Node{ID: "c", Type: "card", Props: NewProps("title", "Empty"), Children: []*Node{}}},
		{"nested empty", &Node{ID: "g", Type: "grid", Children: []*Node{{ID: "c", Type: "card", Children: []*Node{}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := MarshalNodes([]*Node{tt.node})
			if err != nil {
				t.Fatal(err)
			}
			got, err := UnmarshalNodes(data)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, []*Node{tt.node}) {
				t.Errorf("round trip mismatch for %s", data)
			}
			if clone := tt.node.Clone(); !reflect.DeepEqual(clone, tt.node) {
				t.Errorf("Clone() = %#v", clone)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	dup := []*Node{
		{ID: "a", Type: "text"},
		{ID: "b", Type: "card", Children: []*Node{{ID: "a", Type: "text"}}},
	}

	parent := &Node{ID: "p", Type: "card"}
	child := &Node{ID: "c", Type: "card", Children: []*Node{parent}}
	parent.Children = []*Node{child}

	shared := &Node{ID: "s", Type: "text"}

	tests := []struct {
		name    string
		nodes   []*Node
		wantErr string
	}{
		{"valid", sampleTree().Components, ""},
		{"empty", []*Node{}, ""},
		{"duplicate id", dup, "duplicate node id"},
		{"cycle", []*Node{parent}, "its own ancestor"},
		{"missing id", []*Node{{Type: "text"}}, "node id cannot be empty"},
		{"missing type", []*Node{{ID: "x"}}, "has no type"},
		{"nil node", []*Node{nil}, "nil node"},
		{"same pointer twice", []*Node{shared, shared}, "duplicate node id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.nodes)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() error = %v, want %q", err, tt.wantErr)
			}
			if !errors.Is(err, errors.ErrCodeInvalidTree) {
				t.Errorf("code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidTree)
			}
		})
	}
}

func TestReadDashboardRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		in   string
		code errors.Code
	}{
		{"not json", "{", errors.ErrCodeDecode},
		{"wrong shape", `{"components": 3}`, errors.ErrCodeDecode},
		{"bad layout", `{"title":"x","layout":{"mode":"masonry"},"components":[]}`, errors.ErrCodeInvalidInput},
		{"dup ids", `{"title":"x","components":[{"id":"a","type":"text","props":{}},{"id":"a","type":"text","props":{}}]}`, errors.ErrCodeInvalidTree},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalDashboard([]byte(tt.in))
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %v", err, tt.code)
			}
		})
	}
}

func TestWalkFindCount(t *testing.T) {
	nodes := sampleTree().Components

	var order []string
	Walk(nodes, func(n *Node, depth int) bool {
		order = append(order, strings.Repeat(">", depth)+n.ID)
		return true
	})
	want := []string{"stat-1", "card-1", ">table-1", ">text-1", "line-1"}
	if !reflect.DeepEqual(order, want) {
		t.Errorf("Walk order = %v, want %v", order, want)
	}

	if n, ok := Find(nodes, "text-1"); !ok || n.Type != "text" {
		t.Errorf("Find(text-1) = %v, %v", n, ok)
	}
	if _, ok := Find(nodes, "missing"); ok {
		t.Error("Find(missing) should fail")
	}
	if got := Count(nodes); got != 5 {
		t.Errorf("Count() = %d, want 5", got)
	}
}

func TestCloneWithNewIDs(t *testing.T) {
	orig := sampleTree().Components[1]
	c := orig.CloneWithNewIDs()

	if c.ID == orig.ID || c.Children[0].ID == orig.Children[0].ID {
		t.Error("clone should receive fresh ids")
	}
	if !strings.HasPrefix(c.ID, "card-") {
		t.Errorf("clone id %q should keep the type prefix", c.ID)
	}
	if err := Validate([]*Node{orig, c}); err != nil {
		t.Errorf("original and clone should coexist: %v", err)
	}
}
