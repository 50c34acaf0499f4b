package editor

import (
	"slices"
	"testing"
	"time"

	"github.com/matzehuels/dashforge/pkg/errors"
	"github.com/matzehuels/dashforge/pkg/ir"
	"github.com/matzehuels/dashforge/pkg/registry"
	"github.com/matzehuels/dashforge/pkg/transfer"
)

func TestMoveItem(t *testing.T) {
	tests := []struct {
		name     string
		from, to int
		want     []string
	}{
		{"forward", 0, 2, []string{"b", "c", "a", "d"}},
		{"backward", 3, 1, []string{"a", "d", "b", "c"}},
		{"same", 1, 1, []string{"a", "b", "c", "d"}},
		{"to end", 0, 3, []string{"b", "c", "d", "a"}},
		{"to front", 3, 0, []string{"d", "a", "b", "c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := []string{"a", "b", "c", "d"}
			got, err := MoveItem(in, tt.from, tt.to)
			if err != nil {
				t.Fatalf("MoveItem: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if !slices.Equal(in, []string{"a", "b", "c", "d"}) {
				t.Errorf("input modified: %v", in)
			}
		})
	}
}

func TestMoveItemReversible(t *testing.T) {
	in := []int{1, 2, 3, 4, 5, 6}
	for from := range in {
		for to := range in {
			moved, err := MoveItem(in, from, to)
			if err != nil {
				t.Fatal(err)
			}
			back, err := MoveItem(moved, to, from)
			if err != nil {
				t.Fatal(err)
			}
			if !slices.Equal(back, in) {
				t.Errorf("move %d->%d->%d = %v", from, to, from, back)
			}
			sorted := slices.Clone(moved)
			slices.Sort(sorted)
			if !slices.Equal(sorted, in) {
				t.Errorf("move %d->%d is not a permutation: %v", from, to, moved)
			}
		}
	}
}

func TestMoveItemOutOfRange(t *testing.T) {
	for _, tc := range [][2]int{{-1, 0}, {0, 3}, {3, 0}, {0, -1}} {
		if _, err := MoveItem([]int{1, 2, 3}, tc[0], tc[1]); !errors.Is(err, errors.ErrCodeInvalidInput) {
			t.Errorf("MoveItem(%d, %d) error = %v, want INVALID_INPUT", tc[0], tc[1], err)
		}
	}
}

func ids(s *Session) []string {
	d := s.Dashboard()
	out := make([]string, len(d.Components))
	for i, n := range d.Components {
		out[i] = n.ID
	}
	return out
}

func mustAdd(t *testing.T, s *Session, typ string) *ir.Node {
	t.Helper()
	n, err := s.Add(typ)
	if err != nil {
		t.Fatalf("Add(%s): %v", typ, err)
	}
	return n
}

func TestSessionAdd(t *testing.T) {
	s := NewSession(registry.Default())

	n := mustAdd(t, s, registry.TypeStatCard)
	if n.Props.String("title", "") != "Total Revenue" {
		t.Errorf("defaults not seeded: %v", n.Props.Keys())
	}
	if _, err := s.Add("sparkline"); !errors.Is(err, errors.ErrCodeUnknownType) {
		t.Errorf("Add(unknown) error = %v, want UNKNOWN_TYPE", err)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d, want 1", s.Len())
	}

	// Returned nodes are copies.
	n.Props.Set("title", "changed")
	if got := s.Dashboard().Components[0].Props.String("title", ""); got != "Total Revenue" {
		t.Errorf("session mutated through returned node: %q", got)
	}
}

func TestSessionAddChild(t *testing.T) {
	s := NewSession(registry.Default())
	card := mustAdd(t, s, registry.TypeCard)
	heading := mustAdd(t, s, registry.TypeHeading)

	child, err := s.AddChild(card.ID, registry.TypeText)
	if err != nil {
		t.Fatalf("AddChild: %v", err)
	}
	if _, err := s.AddChild(heading.ID, registry.TypeText); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("AddChild(leaf) error = %v, want INVALID_INPUT", err)
	}
	if _, err := s.AddChild("missing", registry.TypeText); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("AddChild(missing) error = %v, want NOT_FOUND", err)
	}

	got := s.Dashboard().Components[0]
	if len(got.Children) != 1 || got.Children[0].ID != child.ID {
		t.Errorf("children = %v", got.Children)
	}
	if err := ir.ValidateDashboard(s.Dashboard()); err != nil {
		t.Errorf("tree invalid: %v", err)
	}
}

func TestSessionDeleteClearsSelection(t *testing.T) {
	s := NewSession(registry.Default())
	a := mustAdd(t, s, registry.TypeStatCard)
	b := mustAdd(t, s, registry.TypeCard)
	child, _ := s.AddChild(b.ID, registry.TypeBadge)

	tests := []struct {
		name       string
		selected   string
		delete     string
		wantSelect string
	}{
		{"other node keeps selection", a.ID, child.ID, a.ID},
		{"selected node", a.ID, a.ID, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.Select(tt.selected); err != nil {
				t.Fatalf("Select: %v", err)
			}
			if err := s.Delete(tt.delete); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if s.SelectedID() != tt.wantSelect {
				t.Errorf("selected = %q, want %q", s.SelectedID(), tt.wantSelect)
			}
		})
	}

	// Deleting a container clears a selection inside it.
	c, _ := s.AddChild(b.ID, registry.TypeText)
	_ = s.Select(c.ID)
	if err := s.Delete(b.ID); err != nil {
		t.Fatal(err)
	}
	if _, ok := s.Selected(); ok {
		t.Error("selection survived deleting its ancestor")
	}
	if err := s.Delete(b.ID); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("second Delete error = %v, want NOT_FOUND", err)
	}
}

func TestSessionMove(t *testing.T) {
	s := NewSession(registry.Default())
	a := mustAdd(t, s, registry.TypeStatCard)
	b := mustAdd(t, s, registry.TypeLineChart)
	c := mustAdd(t, s, registry.TypeDataTable)
	_ = s.Select(b.ID)

	if err := s.Move(0, 2); err != nil {
		t.Fatal(err)
	}
	if got, want := ids(s), []string{b.ID, c.ID, a.ID}; !slices.Equal(got, want) {
		t.Errorf("after Move = %v, want %v", got, want)
	}
	if s.SelectedID() != b.ID {
		t.Error("Move changed the selection")
	}
	if err := s.Move(2, 0); err != nil {
		t.Fatal(err)
	}
	if got, want := ids(s), []string{a.ID, b.ID, c.ID}; !slices.Equal(got, want) {
		t.Errorf("reverse Move = %v, want %v", got, want)
	}
	if err := s.Move(0, 5); err == nil {
		t.Error("Move out of range succeeded")
	}
}

func TestSessionMoveByID(t *testing.T) {
	s := NewSession(registry.Default())
	a := mustAdd(t, s, registry.TypeStatCard)
	b := mustAdd(t, s, registry.TypeLineChart)

	tests := []struct {
		id    string
		delta int
		want  []string
	}{
		{a.ID, 1, []string{b.ID, a.ID}},
		{a.ID, 5, []string{b.ID, a.ID}},
		{a.ID, -9, []string{a.ID, b.ID}},
	}
	for _, tt := range tests {
		if err := s.MoveByID(tt.id, tt.delta); err != nil {
			t.Fatalf("MoveByID(%d): %v", tt.delta, err)
		}
		if got := ids(s); !slices.Equal(got, tt.want) {
			t.Errorf("MoveByID(%d) = %v, want %v", tt.delta, got, tt.want)
		}
	}
	if err := s.MoveByID("missing", 1); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("MoveByID(missing) error = %v", err)
	}
}

func TestSessionSetProp(t *testing.T) {
	s := NewSession(registry.Default())
	stat := mustAdd(t, s, registry.TypeStatCard)

	tests := []struct {
		name  string
		key   string
		value any
		code  errors.Code
	}{
		{"text", "title", "MRR", ""},
		{"allowed option", "changeType", "negative", ""},
		{"disallowed option", "changeType", "sideways", errors.ErrCodeInvalidInput},
		{"not editable", "rows", []any{}, errors.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.SetProp(stat.ID, tt.key, tt.value)
			if tt.code == "" && err != nil {
				t.Fatalf("SetProp: %v", err)
			}
			if tt.code != "" && !errors.Is(err, tt.code) {
				t.Fatalf("SetProp error = %v, want %s", err, tt.code)
			}
		})
	}

	got := s.Dashboard().Components[0].Props
	if got.String("title", "") != "MRR" || got.String("changeType", "") != "negative" {
		t.Errorf("props = %v %v", got.String("title", ""), got.String("changeType", ""))
	}
	if got.Keys()[0] != "title" {
		t.Errorf("SetProp reordered keys: %v", got.Keys())
	}
}

func TestSessionUnknownTypeNotEditable(t *testing.T) {
	d := ir.New("Legacy")
	d.Components = []*ir.Node{{ID: "x", Type: "sparkline", Props: ir.NewProps("a", 1)}}
	s, err := Open(registry.Default(), d)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := s.Editable("x"); ok {
		t.Error("unknown type reported editable")
	}
	if err := s.SetProp("x", "a", 2); !errors.Is(err, errors.ErrCodeUnknownType) {
		t.Errorf("SetProp error = %v, want UNKNOWN_TYPE", err)
	}
	if err := s.Select("x"); err != nil {
		t.Errorf("unknown type not selectable: %v", err)
	}
}

func TestSessionDuplicate(t *testing.T) {
	s := NewSession(registry.Default())
	card := mustAdd(t, s, registry.TypeCard)
	_, _ = s.AddChild(card.ID, registry.TypeText)
	last := mustAdd(t, s, registry.TypeDivider)

	dup, err := s.Duplicate(card.ID)
	if err != nil {
		t.Fatalf("Duplicate: %v", err)
	}
	if dup.ID == card.ID || len(dup.Children) != 1 {
		t.Errorf("duplicate = %+v", dup)
	}
	if got, want := ids(s), []string{card.ID, dup.ID, last.ID}; !slices.Equal(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
	if err := ir.ValidateDashboard(s.Dashboard()); err != nil {
		t.Errorf("duplicate broke id uniqueness: %v", err)
	}
}

func TestSessionImportExport(t *testing.T) {
	s := NewSession(registry.Default())
	mustAdd(t, s, registry.TypeStatCard)
	mustAdd(t, s, registry.TypePieChart)
	s.SetTitle("Revenue", "")

	data, err := s.Export(transfer.Theme{PrimaryColor: "#ff0000"}, time.Unix(0, 0))
	if err != nil {
		t.Fatalf("Export: %v", err)
	}

	other := NewSession(registry.Default())
	if err := other.Import(data); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if got, want := ids(other), ids(s); !slices.Equal(got, want) {
		t.Errorf("imported ids = %v, want %v", got, want)
	}
	if other.Dashboard().Title != "Revenue" {
		t.Errorf("title = %q", other.Dashboard().Title)
	}
}

func TestSessionImportFailureLeavesState(t *testing.T) {
	s := NewSession(registry.Default())
	a := mustAdd(t, s, registry.TypeStatCard)
	_ = s.Select(a.ID)

	for name, payload := range map[string]string{
		"garbage":       "{not json",
		"wrong version": `{"name":"x","version":"2.0","components":[]}`,
		"duplicate ids": `{"title":"x","components":[{"id":"a","type":"text"},{"id":"a","type":"text"}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			if err := s.Import([]byte(payload)); err == nil {
				t.Fatal("Import succeeded")
			}
			if got := ids(s); !slices.Equal(got, []string{a.ID}) {
				t.Errorf("tree changed: %v", got)
			}
			if s.SelectedID() != a.ID {
				t.Error("selection changed")
			}
		})
	}
}

func TestSessionSetLayout(t *testing.T) {
	s := NewSession(registry.Default())
	if err := s.SetLayout(ir.Layout{Mode: ir.LayoutFlex, Gap: 8}); err != nil {
		t.Fatal(err)
	}
	if err := s.SetLayout(ir.Layout{Mode: "masonry"}); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("SetLayout(bad) error = %v", err)
	}
	if s.Dashboard().Layout.Mode != ir.LayoutFlex {
		t.Error("failed SetLayout changed the layout")
	}
}
