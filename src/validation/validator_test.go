package validation

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestValidListingRow(t *testing.T) {
	complete := ListingRow{
		Tier:              "Age_of_Empires_II/S-Tier_Tournaments",
		Link:              "Red Bull Wololo",
		Name:              "Red Bull Wololo: Legacy",
		Path:              "Red_Bull_Wololo/Legacy",
		Dates:             "Jun 28 - Jul 2, 2024",
		ParticipantsCount: 16,
	}

	tests := []struct {
		name   string
		modify func(*ListingRow)
		want   bool
	}{
		{"complete", func(r *ListingRow) {}, true},
		{"missing tier", func(r *ListingRow) { r.Tier = "" }, false},
		{"missing link", func(r *ListingRow) { r.Link = "" }, false},
		{"missing name", func(r *ListingRow) { r.Name = "" }, false},
		{"missing path", func(r *ListingRow) { r.Path = "" }, false},
		{"missing dates", func(r *ListingRow) { r.Dates = "" }, false},
		{"zero participants", func(r *ListingRow) { r.ParticipantsCount = 0 }, false},
		{"negative participants", func(r *ListingRow) { r.ParticipantsCount = -4 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := complete
			tt.modify(&row)
			if got := ValidListingRow(row); got != tt.want {
				t.Errorf("ValidListingRow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidMatchRow(t *testing.T) {
	complete := MatchRow{
		Sides:     2,
		Left:      "Hera",
		Right:     "TheViper",
		BestOf:    "Bo7",
		Timestamp: "1719590400",
	}

	tests := []struct {
		name   string
		modify func(*MatchRow)
		want   bool
	}{
		{"complete", func(r *MatchRow) {}, true},
		{"one side", func(r *MatchRow) { r.Sides = 1 }, false},
		{"no best-of", func(r *MatchRow) { r.BestOf = "" }, false},
		{"no timestamp", func(r *MatchRow) { r.Timestamp = "" }, false},
		{"left TBD", func(r *MatchRow) { r.Left = "TBD" }, false},
		{"right tbd lowercase", func(r *MatchRow) { r.Right = " tbd " }, false},
		{"name containing tbd", func(r *MatchRow) { r.Right = "TBDragons" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := complete
			tt.modify(&row)
			if got := ValidMatchRow(row); got != tt.want {
				t.Errorf("ValidMatchRow() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidateCatalogueJSON(t *testing.T) {
	tests := []struct {
		name          string
		catalogueJSON string
		wantErr       bool
		errContains   string
	}{
		{
			name: "valid catalogue",
			catalogueJSON: `{
  "spec": {"version": 1},
  "datestamp": "2024-07-03",
  "total": 1,
  "categories": ["Age_of_Empires_II/S-Tier_Tournaments"],
  "tournament-list": [
    {
      "id": "red_bull_wololo-legacy",
      "name": "Red Bull Wololo: Legacy",
      "path": "Red_Bull_Wololo/Legacy",
      "tier": "Age_of_Empires_II/S-Tier_Tournaments",
      "type": "Individual",
      "participants": [{"name": "Hera", "score": 3}],
      "start": "2024-06-28T00:00:00Z"
    }
  ]
}`,
		},
		{
			name:          "total mismatch",
			catalogueJSON: `{"spec": {"version": 1}, "datestamp": "2024-07-03", "total": 2, "tournament-list": []}`,
			wantErr:       true,
			errContains:   "total (2)",
		},
		{
			name:          "bad version",
			catalogueJSON: `{"spec": {"version": 0}, "datestamp": "2024-07-03", "total": 0, "tournament-list": []}`,
			wantErr:       true,
			errContains:   "validation failed",
		},
		{
			name:          "bad datestamp",
			catalogueJSON: `{"spec": {"version": 1}, "datestamp": "yesterday", "total": 0, "tournament-list": []}`,
			wantErr:       true,
			errContains:   "validation failed",
		},
		{
			name:          "entry without id",
			catalogueJSON: `{"spec": {"version": 1}, "datestamp": "2024-07-03", "total": 1, "tournament-list": [{"name": "x", "path": "x"}]}`,
			wantErr:       true,
			errContains:   "tournament 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCatalogueJSON([]byte(tt.catalogueJSON))
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateCatalogueJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && !strings.Contains(err.Error(), tt.errContains) {
				t.Errorf("error = %v, want it to contain %q", err, tt.errContains)
			}
		})
	}
}

func TestValidateCatalogueFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalogue.json")
	content := `{"spec": {"version": 1}, "datestamp": "2024-07-03", "total": 0, "tournament-list": []}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	if err := ValidateCatalogueFile(path); err != nil {
		t.Errorf("ValidateCatalogueFile() error = %v", err)
	}
}

func TestValidateCatalogueFile_FileNotFound(t *testing.T) {
	err := ValidateCatalogueFile("/nonexistent/path/catalogue.json")
	if err == nil {
		t.Error("Expected error for nonexistent file, got nil")
	}
}

func TestValidateCatalogueJSON_InvalidJSON(t *testing.T) {
	err := ValidateCatalogueJSON([]byte(`{"invalid json`))
	if err == nil {
		t.Fatal("Expected error for invalid JSON, got nil")
	}
	if !strings.Contains(err.Error(), "parse JSON") {
		t.Errorf("Expected error about parsing JSON, got: %v", err)
	}
}
