package buildinfo

import (
	"strings"
	"testing"
)

func TestCurrent(t *testing.T) {
	orig := [3]string{Version, Commit, Date}
	t.Cleanup(func() { Version, Commit, Date = orig[0], orig[1], orig[2] })

	Version, Commit, Date = "v1.0.0", "abc123", "2024-01-01"
	got := Current()
	if got.Version != "v1.0.0" || got.Commit != "abc123" || got.Date != "2024-01-01" {
		t.Errorf("Current() = %+v", got)
	}
	if !strings.Contains(String(), "commit: abc123") {
		t.Errorf("String() = %q", String())
	}
	if !strings.HasPrefix(Template(), "{{.Name}} version v1.0.0") {
		t.Errorf("Template() = %q", Template())
	}
}
