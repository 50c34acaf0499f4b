package fonts

import (
	"strings"
	"testing"
)

func TestCatalog(t *testing.T) {
	tests := []struct {
		font   Font
		weight int
		class  string
	}{
		{Regular, 400, "font-regular"},
		{Medium, 500, "font-medium"},
		{SemiBold, 600, "font-semi-bold"},
		{Bold, 700, "font-bold"},
	}
	for _, tt := range tests {
		t.Run(tt.font.String(), func(t *testing.T) {
			if got := tt.font.Weight(); got != tt.weight {
				t.Errorf("Weight() = %d, want %d", got, tt.weight)
			}
			if got := Class(tt.font); got != tt.class {
				t.Errorf("Class() = %q, want %q", got, tt.class)
			}
			if !strings.Contains(CSS(), "."+tt.class+" {") {
				t.Errorf("CSS() missing rule for %s", tt.class)
			}
		})
	}
	if len(All()) != 4 {
		t.Errorf("All() = %d fonts, want 4", len(All()))
	}
}
