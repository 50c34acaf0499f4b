package errors

import (
	"strings"
	"testing"
)

func TestValidateTypeTag(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"simple", "text", false},
		{"dashed", "stat-card", false},
		{"with digits", "h2-heading", false},

		{"empty", "", true},
		{"uppercase", "StatCard", true},
		{"leading dash", "-card", true},
		{"trailing dash", "card-", true},
		{"double dash", "stat--card", true},
		{"space", "stat card", true},
		{"too long", strings.Repeat("a", 200), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTypeTag(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateTypeTag(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"generated", "stat-card-1a2b3c4d", false},
		{"short", "a", false},

		{"empty", "", true},
		{"space", "a b", true},
		{"newline", "a\nb", true},
		{"quote", `a"b`, true},
		{"brace", "a{b", true},
		{"too long", strings.Repeat("x", 129), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidTree) {
				t.Errorf("ValidateNodeID(%q) code = %v, want %v", tt.input, GetCode(err), ErrCodeInvalidTree)
			}
		})
	}
}

func TestValidateFilename(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"tsx", "Dashboard.tsx", false},
		{"json", "dashboard.json", false},

		{"empty", "", true},
		{"with path /", "out/dashboard.json", true},
		{"with path \\", "out\\dashboard.json", true},
		{"traversal", "..json", true},
		{"null byte", "a\x00.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFilename(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFilename(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#3b82f6", false},
		{"#FFF", false},
		{"#abcd", true},
		{"3b82f6", true},
		{"blue", true},
		{"", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateColor(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
