package validation

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/Oudwins/zog"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
)

// validate runs a struct schema and folds any issues into one error
func validate(schema *zog.StructSchema, data any) error {
	issues := schema.Validate(data)
	if len(issues) == 0 {
		return nil
	}
	fields := make([]string, 0, len(issues))
	for field := range issues {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fmt.Errorf("invalid fields: %s", strings.Join(fields, ", "))
}

// ValidListingRow reports whether a listing row has every identity field
func ValidListingRow(row ListingRow) bool {
	return validate(ListingRowSchema, &row) == nil
}

// ValidMatchRow reports whether a match box is complete enough to keep
func ValidMatchRow(row MatchRow) bool {
	return validate(MatchRowSchema, &row) == nil
}

// ValidateCatalogueFile validates a catalogue JSON file
func ValidateCatalogueFile(filePath string) error {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return fmt.Errorf("failed to read file: %w", err)
	}

	return ValidateCatalogueJSON(data)
}

// ValidateCatalogueJSON validates catalogue JSON data
func ValidateCatalogueJSON(data []byte) error {
	var catalogue types.Catalogue
	if err := json.Unmarshal(data, &catalogue); err != nil {
		return fmt.Errorf("failed to parse JSON: %w", err)
	}

	return ValidateCatalogue(catalogue)
}

// ValidateCatalogue validates a catalogue data structure
func ValidateCatalogue(catalogue types.Catalogue) error {
	header := CatalogueHeader{
		Version:   catalogue.Spec.Version,
		Datestamp: catalogue.Datestamp,
		Total:     catalogue.Total,
	}
	if err := validate(CatalogueHeaderSchema, &header); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	if catalogue.Total != len(catalogue.TournamentList) {
		return fmt.Errorf("validation failed: total (%d) must equal the number of tournaments in tournament-list (%d)", catalogue.Total, len(catalogue.TournamentList))
	}

	for i, t := range catalogue.TournamentList {
		entry := CatalogueEntry{ID: t.ID, Name: t.Name, Path: t.Path}
		if err := validate(CatalogueEntrySchema, &entry); err != nil {
			return fmt.Errorf("validation failed: tournament %d: %w", i, err)
		}
	}

	return nil
}
