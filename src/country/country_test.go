package country

import (
	"testing"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantCode string
	}{
		{"exact name", "Germany", "DE"},
		{"case insensitive", "south korea", "KR"},
		{"surrounding space", "  Spain ", "ES"},
		{"iso code", "br", "BR"},
		{"alias", "USA", "US"},
		{"fuzzy prefix", "Argent", "AR"},
		{"fuzzy abbreviation", "Czech Rep", "CZ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.input)
			if got == nil {
				t.Fatalf("Resolve(%q) = nil, want %s", tt.input, tt.wantCode)
			}
			if got.Code != tt.wantCode {
				t.Errorf("Resolve(%q).Code = %s, want %s", tt.input, got.Code, tt.wantCode)
			}
		})
	}
}

func TestResolveNoMatch(t *testing.T) {
	for _, input := range []string{"", "   ", "World", "Xyzzy"} {
		if got := Resolve(input); got != nil {
			t.Errorf("Resolve(%q) = %+v, want nil", input, got)
		}
	}
}

func TestAllIsACopy(t *testing.T) {
	all := All()
	all[0].Name = "changed"
	if All()[0].Name == "changed" {
		t.Error("All() exposes the internal table")
	}
}
