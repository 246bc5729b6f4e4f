package types

import "strings"

// Category is a tournament listing page, e.g. "Age_of_Empires_II/S-Tier_Tournaments"
type Category string

const (
	Age1All         Category = "Age_of_Empires_I/Tournaments"
	Age1TierS       Category = "Age_of_Empires_I/S-Tier_Tournaments"
	Age1TierA       Category = "Age_of_Empires_I/A-Tier_Tournaments"
	Age1TierB       Category = "Age_of_Empires_I/B-Tier_Tournaments"
	Age1TierC       Category = "Age_of_Empires_I/C-Tier_Tournaments"
	Age1ShowMatches Category = "Age_of_Empires_I/Show_Matches"
	Age1Qualifiers  Category = "Age_of_Empires_I/Qualifier_Tournaments"
)

const (
	Age2All           Category = "Age_of_Empires_II/Tournaments"
	Age2TierS         Category = "Age_of_Empires_II/S-Tier_Tournaments"
	Age2TierA         Category = "Age_of_Empires_II/A-Tier_Tournaments"
	Age2TierB         Category = "Age_of_Empires_II/B-Tier_Tournaments"
	Age2TierC         Category = "Age_of_Empires_II/C-Tier_Tournaments"
	Age2Weekly        Category = "Age_of_Empires_II/Weekly_Tournaments"
	Age2Monthly       Category = "Age_of_Empires_II/Monthly_Tournaments"
	Age2ShowMatches   Category = "Age_of_Empires_II/Show_Matches"
	Age2Qualifiers    Category = "Age_of_Empires_II/Qualifier_Tournaments"
	Age2Miscellaneous Category = "Age_of_Empires_II/Miscellaneous_Tournaments"
	Age2FFA           Category = "Age_of_Empires_II/FFA_Tournaments"
)

const (
	Age3All         Category = "Age_of_Empires_III/Tournaments"
	Age3TierS       Category = "Age_of_Empires_III/S-Tier_Tournaments"
	Age3TierA       Category = "Age_of_Empires_III/A-Tier_Tournaments"
	Age3TierB       Category = "Age_of_Empires_III/B-Tier_Tournaments"
	Age3TierC       Category = "Age_of_Empires_III/C-Tier_Tournaments"
	Age3ShowMatches Category = "Age_of_Empires_III/Show_Matches"
	Age3Qualifiers  Category = "Age_of_Empires_III/Qualifier_Tournaments"
)

const (
	Age4All           Category = "Age_of_Empires_IV/Tournaments"
	Age4TierS         Category = "Age_of_Empires_IV/S-Tier_Tournaments"
	Age4TierA         Category = "Age_of_Empires_IV/A-Tier_Tournaments"
	Age4TierB         Category = "Age_of_Empires_IV/B-Tier_Tournaments"
	Age4TierC         Category = "Age_of_Empires_IV/C-Tier_Tournaments"
	Age4Weekly        Category = "Age_of_Empires_IV/Weekly_Tournaments"
	Age4Monthly       Category = "Age_of_Empires_IV/Monthly_Tournaments"
	Age4ShowMatches   Category = "Age_of_Empires_IV/Show_Matches"
	Age4Qualifiers    Category = "Age_of_Empires_IV/Qualifier_Tournaments"
	Age4Miscellaneous Category = "Age_of_Empires_IV/Miscellaneous_Tournaments"
	Age4FFA           Category = "Age_of_Empires_IV/FFA_Tournaments"
)

const (
	AgeOnlineAll         Category = "Age_of_Empires_Online/Tournaments"
	AgeOnlineTier        Category = "Age_of_Empires_Online/Tier_Tournaments"
	AgeOnlineShowMatches Category = "Age_of_Empires_Online/Showmatches"
)

// DefaultCategory is fetched when no category is given
const DefaultCategory = Age2TierS

var AllCategories = []Category{
	Age1All, Age1TierS, Age1TierA, Age1TierB, Age1TierC, Age1ShowMatches, Age1Qualifiers,
	Age2All, Age2TierS, Age2TierA, Age2TierB, Age2TierC, Age2Weekly, Age2Monthly,
	Age2ShowMatches, Age2Qualifiers, Age2Miscellaneous, Age2FFA,
	Age3All, Age3TierS, Age3TierA, Age3TierB, Age3TierC, Age3ShowMatches, Age3Qualifiers,
	Age4All, Age4TierS, Age4TierA, Age4TierB, Age4TierC, Age4Weekly, Age4Monthly,
	Age4ShowMatches, Age4Qualifiers, Age4Miscellaneous, Age4FFA,
	AgeOnlineAll, AgeOnlineTier, AgeOnlineShowMatches,
}

// Known reports whether c is one of the listed categories
func (c Category) Known() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Game returns the game part of the category path
func (c Category) Game() string {
	game, _, _ := strings.Cut(string(c), "/")
	return strings.ReplaceAll(game, "_", " ")
}
