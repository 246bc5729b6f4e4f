package validation

import (
	"strings"
	"time"

	"github.com/Oudwins/zog"
)

// ListingRow is the raw text of a tournament listing row before it is
// turned into a tournament
type ListingRow struct {
	Tier              string
	Link              string
	Name              string
	Path              string
	Dates             string
	ParticipantsCount int
}

// MatchRow is the raw data of an upcoming match box before it is turned
// into a match
type MatchRow struct {
	Sides     int
	Left      string
	Right     string
	BestOf    string
	Timestamp string
}

// CatalogueHeader is the top level of a catalogue file
type CatalogueHeader struct {
	Version   int
	Datestamp string
	Total     int
}

// CatalogueEntry is the identity of one catalogue entry
type CatalogueEntry struct {
	ID   string
	Name string
	Path string
}

// notTBD rejects the placeholder used for undecided participants
func notTBD(val *string, ctx zog.Ctx) bool {
	if val == nil {
		return true
	}
	return !strings.EqualFold(strings.TrimSpace(*val), "tbd")
}

// isValidDateStringPtr checks if a string pointer is a valid date
func isValidDateStringPtr(val *string, ctx zog.Ctx) bool {
	if val == nil {
		return false
	}
	// Accept both RFC3339 and YYYY-MM-DD formats
	_, err1 := time.Parse(time.RFC3339, *val)
	_, err2 := time.Parse("2006-01-02", *val)
	return err1 == nil || err2 == nil
}

// ListingRowSchema rejects listing rows missing any identity field. A
// participant count of zero counts as missing.
var ListingRowSchema = zog.Struct(zog.Schema{
	"Tier":              zog.String().Required().Min(1, zog.Message("tier is required")),
	"Link":              zog.String().Required().Min(1, zog.Message("tournament link is required")),
	"Name":              zog.String().Required().Min(1, zog.Message("name is required")),
	"Path":              zog.String().Required().Min(1, zog.Message("path is required")),
	"Dates":             zog.String().Required().Min(1, zog.Message("dates are required")),
	"ParticipantsCount": zog.Int().Required().GTE(1, zog.Message("participants count must be a positive integer")),
})

// MatchRowSchema rejects matches that are not fully scheduled yet
var MatchRowSchema = zog.Struct(zog.Schema{
	"Sides":     zog.Int().Required().GTE(2, zog.Message("both participants are required")),
	"Left":      zog.String().TestFunc(notTBD, zog.Message("left participant is TBD")),
	"Right":     zog.String().TestFunc(notTBD, zog.Message("right participant is TBD")),
	"BestOf":    zog.String().Required().Min(1, zog.Message("best-of is required")),
	"Timestamp": zog.String().Required().Min(1, zog.Message("start time is required")),
})

// CatalogueHeaderSchema validates the top level of a catalogue
var CatalogueHeaderSchema = zog.Struct(zog.Schema{
	"Version":   zog.Int().Required().GTE(1, zog.Message("spec version must be >= 1")),
	"Datestamp": zog.String().Required().TestFunc(isValidDateStringPtr, zog.Message("datestamp must be a valid date string")),
	"Total":     zog.Int().GTE(0, zog.Message("total must be a non-negative integer")),
})

// CatalogueEntrySchema validates one catalogue entry
var CatalogueEntrySchema = zog.Struct(zog.Schema{
	"ID":   zog.String().Required().Min(1, zog.Message("id must be a non-empty string")),
	"Name": zog.String().Required().Min(1, zog.Message("name must be a non-empty string")),
	"Path": zog.String().Required().Min(1, zog.Message("path must be a non-empty string")),
})
