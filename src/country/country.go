// Package country resolves flag titles and location names to country records.
package country

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
)

var countries = []types.Country{
	{Code: "AR", Name: "Argentina"},
	{Code: "AU", Name: "Australia"},
	{Code: "AT", Name: "Austria"},
	{Code: "BY", Name: "Belarus"},
	{Code: "BE", Name: "Belgium"},
	{Code: "BO", Name: "Bolivia"},
	{Code: "BA", Name: "Bosnia and Herzegovina"},
	{Code: "BR", Name: "Brazil"},
	{Code: "BG", Name: "Bulgaria"},
	{Code: "CA", Name: "Canada"},
	{Code: "CL", Name: "Chile"},
	{Code: "CN", Name: "China"},
	{Code: "CO", Name: "Colombia"},
	{Code: "CR", Name: "Costa Rica"},
	{Code: "HR", Name: "Croatia"},
	{Code: "CU", Name: "Cuba"},
	{Code: "CZ", Name: "Czech Republic"},
	{Code: "DK", Name: "Denmark"},
	{Code: "DO", Name: "Dominican Republic"},
	{Code: "EC", Name: "Ecuador"},
	{Code: "EG", Name: "Egypt"},
	{Code: "EE", Name: "Estonia"},
	{Code: "FI", Name: "Finland"},
	{Code: "FR", Name: "France"},
	{Code: "DE", Name: "Germany"},
	{Code: "GR", Name: "Greece"},
	{Code: "HK", Name: "Hong Kong"},
	{Code: "HU", Name: "Hungary"},
	{Code: "IS", Name: "Iceland"},
	{Code: "IN", Name: "India"},
	{Code: "ID", Name: "Indonesia"},
	{Code: "IR", Name: "Iran"},
	{Code: "IE", Name: "Ireland"},
	{Code: "IL", Name: "Israel"},
	{Code: "IT", Name: "Italy"},
	{Code: "JP", Name: "Japan"},
	{Code: "KZ", Name: "Kazakhstan"},
	{Code: "LV", Name: "Latvia"},
	{Code: "LT", Name: "Lithuania"},
	{Code: "LU", Name: "Luxembourg"},
	{Code: "MY", Name: "Malaysia"},
	{Code: "MX", Name: "Mexico"},
	{Code: "MD", Name: "Moldova"},
	{Code: "MN", Name: "Mongolia"},
	{Code: "MA", Name: "Morocco"},
	{Code: "NL", Name: "Netherlands"},
	{Code: "NZ", Name: "New Zealand"},
	{Code: "NO", Name: "Norway"},
	{Code: "PK", Name: "Pakistan"},
	{Code: "PA", Name: "Panama"},
	{Code: "PY", Name: "Paraguay"},
	{Code: "PE", Name: "Peru"},
	{Code: "PH", Name: "Philippines"},
	{Code: "PL", Name: "Poland"},
	{Code: "PT", Name: "Portugal"},
	{Code: "RO", Name: "Romania"},
	{Code: "RU", Name: "Russia"},
	{Code: "SA", Name: "Saudi Arabia"},
	{Code: "RS", Name: "Serbia"},
	{Code: "SG", Name: "Singapore"},
	{Code: "SK", Name: "Slovakia"},
	{Code: "SI", Name: "Slovenia"},
	{Code: "ZA", Name: "South Africa"},
	{Code: "KR", Name: "South Korea"},
	{Code: "ES", Name: "Spain"},
	{Code: "SE", Name: "Sweden"},
	{Code: "CH", Name: "Switzerland"},
	{Code: "TW", Name: "Taiwan"},
	{Code: "TH", Name: "Thailand"},
	{Code: "TN", Name: "Tunisia"},
	{Code: "TR", Name: "Turkey"},
	{Code: "UA", Name: "Ukraine"},
	{Code: "AE", Name: "United Arab Emirates"},
	{Code: "GB", Name: "United Kingdom"},
	{Code: "US", Name: "United States"},
	{Code: "UY", Name: "Uruguay"},
	{Code: "UZ", Name: "Uzbekistan"},
	{Code: "VE", Name: "Venezuela"},
	{Code: "VN", Name: "Vietnam"},
}

// aliases maps alternative spellings seen in flag titles to a country name
var aliases = map[string]string{
	"usa":             "United States",
	"us":              "United States",
	"uk":              "United Kingdom",
	"england":         "United Kingdom",
	"scotland":        "United Kingdom",
	"wales":           "United Kingdom",
	"korea":           "South Korea",
	"czechia":         "Czech Republic",
	"the netherlands": "Netherlands",
	"holland":         "Netherlands",
	"türkiye":         "Turkey",
	"uae":             "United Arab Emirates",
}

var (
	byName = map[string]types.Country{}
	names  []string
)

func init() {
	for _, c := range countries {
		byName[strings.ToLower(c.Name)] = c
		byName[strings.ToLower(c.Code)] = c
		names = append(names, c.Name)
	}
	for alias, name := range aliases {
		byName[alias] = byName[strings.ToLower(name)]
	}
}

// Resolve finds the country for a display name or flag title. Exact names,
// codes and known aliases match first, then the closest fuzzy match. Empty
// input, "World" and names with no plausible match give nil.
func Resolve(name string) *types.Country {
	name = strings.TrimSpace(name)
	if name == "" || strings.EqualFold(name, "World") {
		return nil
	}

	if c, ok := byName[strings.ToLower(name)]; ok {
		return &c
	}

	ranks := fuzzy.RankFindNormalizedFold(name, names)
	if len(ranks) == 0 {
		return nil
	}
	sort.Sort(ranks)

	c := byName[strings.ToLower(ranks[0].Target)]
	return &c
}

// All returns every known country
func All() []types.Country {
	out := make([]types.Country, len(countries))
	copy(out, countries)
	return out
}
