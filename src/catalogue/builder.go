package catalogue

import (
	"sort"
	"time"

	"github.com/gosimple/slug"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
)

// SpecVersion is the catalogue format version
const SpecVersion = 1

// Builder handles building catalogues from tournament listings
type Builder struct {
	now func() time.Time
}

// NewBuilder creates a new catalogue builder
func NewBuilder() *Builder {
	return &Builder{now: time.Now}
}

// Merge dedupes tournaments by path. The first occurrence keeps its position
// and later occurrences only fill its empty fields.
func (b *Builder) Merge(sections ...[]types.Tournament) []types.Tournament {
	merged := []types.Tournament{}
	index := make(map[string]int)

	for _, section := range sections {
		for _, tournament := range section {
			if tournament.Path == "" {
				continue
			}
			i, seen := index[tournament.Path]
			if !seen {
				index[tournament.Path] = len(merged)
				merged = append(merged, tournament)
				continue
			}
			fill(&merged[i], tournament)
		}
	}

	return merged
}

// fill copies the fields of `from` that are empty in `into`
func fill(into *types.Tournament, from types.Tournament) {
	if into.Name == "" {
		into.Name = from.Name
	}
	if into.Tier == "" {
		into.Tier = from.Tier
	}
	if into.Game == "" {
		into.Game = from.Game
	}
	if into.Type == "" || into.Type == types.UnknownTournament {
		into.Type = from.Type
	}
	if into.League == nil {
		into.League = from.League
	}
	if into.Location == nil {
		into.Location = from.Location
	}
	if into.PrizePool == nil {
		into.PrizePool = from.PrizePool
	}
	if into.ParticipantsCount == nil {
		into.ParticipantsCount = from.ParticipantsCount
	}
	if into.Start == nil {
		into.Start = from.Start
	}
	if into.End == nil {
		into.End = from.End
	}
	if len(into.Participants) == 0 {
		into.Participants = from.Participants
	}
}

// BuildCatalogue creates a catalogue from a list of tournaments
func (b *Builder) BuildCatalogue(tournaments []types.Tournament, categories []types.Category) types.Catalogue {
	summaries := make([]types.TournamentSummary, 0, len(tournaments))
	for _, tournament := range tournaments {
		summaries = append(summaries, types.TournamentSummary{
			ID:         slug.Make(tournament.Path),
			Tournament: tournament,
		})
	}

	// newest first, undated last, path breaks ties
	sort.SliceStable(summaries, func(i, j int) bool {
		a, b := summaries[i].Start, summaries[j].Start
		switch {
		case a != nil && b != nil && !a.Equal(*b):
			return a.After(*b)
		case a != nil && b == nil:
			return true
		case a == nil && b != nil:
			return false
		}
		return summaries[i].Path < summaries[j].Path
	})

	if categories == nil {
		categories = []types.Category{}
	}

	catalogue := types.Catalogue{
		Categories:     categories,
		Datestamp:      b.currentDateStamp(),
		Total:          len(summaries),
		TournamentList: summaries,
	}
	catalogue.Spec.Version = SpecVersion
	return catalogue
}

// Shorten drops tournaments that ended before the cutoff. Tournaments
// without an end date are judged by their start, undated ones are kept.
func (b *Builder) Shorten(catalogue types.Catalogue, cutoff time.Time) types.Catalogue {
	return b.Filter(catalogue, func(t types.TournamentSummary) bool {
		last := t.End
		if last == nil {
			last = t.Start
		}
		return last == nil || !last.Before(cutoff)
	})
}

// Filter keeps the tournaments matching the predicate
func (b *Builder) Filter(catalogue types.Catalogue, predicate func(types.TournamentSummary) bool) types.Catalogue {
	kept := []types.TournamentSummary{}

	for _, tournament := range catalogue.TournamentList {
		if predicate(tournament) {
			kept = append(kept, tournament)
		}
	}

	catalogue.TournamentList = kept
	catalogue.Total = len(kept)
	return catalogue
}

// currentDateStamp returns current date in YYYY-MM-DD format
func (b *Builder) currentDateStamp() string {
	return b.now().Format("2006-01-02")
}
