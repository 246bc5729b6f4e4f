package aoe

import (
	"context"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
	"github.com/ogri-la/liquipedia-aoe-go/src/validation"
	"golang.org/x/sync/errgroup"
)

// MaxTabFetches bounds concurrent tab fetches in ParseAllTournaments
const MaxTabFetches = 4

// ParseTournaments reads a tournament category page into its titled
// sections. category is used as the tier of rows that do not name one.
// Rows missing an identity field are dropped.
func ParseTournaments(content string, category types.Category) []types.TournamentSection {
	doc := document(content)

	sections := []types.TournamentSection{}
	doc.Find(".tournamentCard").Each(func(i int, card *goquery.Selection) {
		section := types.TournamentSection{
			Title: sectionTitle(card.Prev()),
			Data:  []types.Tournament{},
		}

		card.Find(".gridRow").Each(func(j int, row *goquery.Selection) {
			if tournament, ok := parseListingRow(row, category); ok {
				section.Data = append(section.Data, tournament)
			}
		})

		sections = append(sections, section)
	})

	return sections
}

// sectionTitle reads the heading before a tournament card
func sectionTitle(prev *goquery.Selection) string {
	if headline := prev.Find(".mw-headline"); headline.Length() > 0 {
		return text(headline)
	}
	if prev.Is("h1, h2, h3, h4, .mw-heading") {
		return text(prev)
	}
	return ""
}

// parseListingRow builds one tournament from a grid row
func parseListingRow(row *goquery.Selection, category types.Category) (types.Tournament, bool) {
	tourLink := row.Find(".Tournament > a").First()

	// a row without a tier cell is dropped, one whose tier is not a link
	// takes the page's category
	var tier types.Category
	if cell := row.Find(".Tier"); cell.Length() > 0 {
		tier = types.Category(getPath(cell.ChildrenFiltered("span:not(.GameIcon)").Find("a")))
		if tier == "" {
			tier = category
		}
	}

	dates := strings.TrimSpace(row.Find(".Date").First().Text())
	count := parseCount(row.Find(".PlayerNumber").First().Text())

	raw := validation.ListingRow{
		Tier:  string(tier),
		Name:  strings.TrimSpace(tourLink.Text()),
		Path:  getPath(tourLink),
		Dates: dates,
	}
	if tourLink.Length() > 0 {
		raw.Link = attr(tourLink, "href")
	}
	if count != nil {
		raw.ParticipantsCount = *count
	}
	if !validation.ValidListingRow(raw) {
		slog.Debug("dropping incomplete listing row", "name", raw.Name, "path", raw.Path)
		return types.Tournament{}, false
	}

	start, end := parseDateRange(dates)

	tournament := types.Tournament{
		Game:              types.GameVersion(attr(row.Find(".Game a"), "title")),
		Type:              types.UnknownTournament,
		Tier:              tier,
		Name:              raw.Name,
		Path:              raw.Path,
		Start:             start,
		End:               end,
		ParticipantsCount: count,
		Participants:      []types.EventParticipant{},
	}

	// League
	if leagueImage := row.Find(".Tournament .league-icon-small-image img").First(); leagueImage.Length() > 0 {
		tournament.League = &types.League{
			Name:  attr(leagueImage, "alt"),
			Image: imageURL(leagueImage, true),
		}
	}

	// Prize pool
	if prize := row.Find(".Prize"); prize.Length() > 0 {
		tournament.PrizePool = parsePrize(prize.First().Text())
	}

	// Location
	tournament.Location = location(row.Find(".Location").First().Text(), attr(row.Find(".Location img"), "alt"))

	// Participants
	row.Find(".Placement").Each(func(k int, placement *goquery.Selection) {
		name := strings.TrimSpace(placement.Text())
		if name == "" || name == "TBD" {
			return
		}
		tournament.Participants = append(tournament.Participants, types.EventParticipant{
			Name:  name,
			Image: imageURL(placement.Find(".Participants img"), true),
		})
	})

	// Type
	if block := row.Find(".Participants"); block.Length() > 0 && len(tournament.Participants) > 0 {
		switch {
		case block.Find(".block-player").Length() > 0:
			tournament.Type = types.IndividualTournament
		case block.Find(".block-team").Length() > 0:
			tournament.Type = types.TeamTournament
		}
	}

	return tournament, true
}

// ParseAllTournaments reads a category page together with the pages of its
// tabs. Tabs are fetched concurrently; their tournaments come first, in
// reverse tab order, followed by the page's own sections. A tab that fails
// to fetch is logged and skipped.
func ParseAllTournaments(ctx context.Context, content string, category types.Category, fetcher Fetcher) ([]types.Tournament, error) {
	doc := document(content)

	var titles []string
	doc.Find(".tabs4 a:not(.selflink)").Each(func(i int, tab *goquery.Selection) {
		if title := attr(tab, "title"); title != "" {
			titles = append(titles, title)
		}
	})
	for i, j := 0, len(titles)-1; i < j; i, j = i+1, j-1 {
		titles[i], titles[j] = titles[j], titles[i]
	}

	results := make([][]types.TournamentSection, len(titles))
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(MaxTabFetches)
	for i, title := range titles {
		i, title := i, title
		g.Go(func() error {
			page, err := fetcher.Page(gCtx, title)
			if err != nil {
				slog.Warn("failed to fetch tournament tab", "tab", title, "error", err)
				return nil
			}
			tabCategory := types.Category(strings.ReplaceAll(title, " ", "_"))
			results[i] = ParseTournaments(page.HTML, tabCategory)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all := []types.Tournament{}
	for _, sections := range append(results, ParseTournaments(content, category)) {
		for _, section := range sections {
			all = append(all, section.Data...)
		}
	}
	return all, nil
}
