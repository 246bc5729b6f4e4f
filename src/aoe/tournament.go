package aoe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ogri-la/liquipedia-aoe-go/src/infobox"
	"github.com/ogri-la/liquipedia-aoe-go/src/markdown"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
	"github.com/ogri-la/liquipedia-aoe-go/src/wikibracket"
)

// MaxRedirects is the number of redirect hops followed for one tournament
const MaxRedirects = 3

var (
	// ErrRedirectLoop is returned when a redirect leads back to a page already visited
	ErrRedirectLoop = errors.New("redirect loop")
	// ErrTooManyRedirects is returned when more than MaxRedirects hops are needed
	ErrTooManyRedirects = errors.New("too many redirects")
)

// ParseTournament reads a tournament page. Redirect stubs are followed
// through fetcher. When the page has no HTML bracket the raw markup is
// fetched and parsed instead; failures there are logged and leave playoffs
// empty. Errors only come from following redirects.
func ParseTournament(ctx context.Context, content, path string, fetcher Fetcher) (*types.TournamentDetail, error) {
	doc := document(content)
	origin := path
	visited := map[string]bool{path: true}

	for hops := 0; ; hops++ {
		target := redirectTarget(doc)
		if target == "" {
			break
		}
		if visited[target] {
			return nil, fmt.Errorf("%w: %s -> %s", ErrRedirectLoop, path, target)
		}
		if hops >= MaxRedirects {
			return nil, fmt.Errorf("%w: gave up at %s", ErrTooManyRedirects, target)
		}
		visited[target] = true

		slog.Debug("following redirect", "from", path, "to", target)
		page, err := fetcher.Page(ctx, target)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch redirect target '%s': %w", target, err)
		}
		doc = document(page.HTML)
		path = target
	}

	tournament := parseTournamentDetail(doc, path)
	if path != origin {
		tournament.RedirectedFrom = origin
	}

	if len(tournament.Playoffs) == 0 {
		tournament.Playoffs = wikitextPlayoffs(ctx, path, fetcher)
	}

	return tournament, nil
}

// redirectTarget returns the path a redirect stub points to, or ""
func redirectTarget(doc *goquery.Document) string {
	link := doc.Find(".redirectMsg .redirectText a, ul.redirectText a").First()
	if link.Length() == 0 {
		return ""
	}
	if path := getPath(link); path != "" && !strings.HasPrefix(path, "http") {
		return path
	}
	return strings.ReplaceAll(attr(link, "title"), " ", "_")
}

// wikitextPlayoffs is the fallback for pages without a bracket widget
func wikitextPlayoffs(ctx context.Context, path string, fetcher Fetcher) []types.Playoff {
	source, err := fetcher.Wikitext(ctx, path)
	if err != nil {
		slog.Warn("failed to fetch wikitext for playoffs", "path", path, "error", err)
		return []types.Playoff{}
	}

	playoffs, err := wikibracket.Parse(source)
	if err != nil {
		slog.Warn("failed to parse playoffs from wikitext", "path", path, "error", err)
		return []types.Playoff{}
	}
	return playoffs
}

// parseTournamentDetail runs every section parser over a tournament page
func parseTournamentDetail(doc *goquery.Document, path string) *types.TournamentDetail {
	tournament := &types.TournamentDetail{
		Tournament: types.Tournament{
			Type:         types.UnknownTournament,
			Tier:         types.DefaultCategory,
			Path:         path,
			Participants: []types.EventParticipant{},
		},
	}

	attributes := infobox.Extract(doc)

	tournament.Tabs = parseTabs(doc, path)
	tournament.Name = textNode(doc.Find(".infobox-header"))

	// League
	series, _ := attributes.First("Series")
	tournament.League = &types.League{
		Image: imageURL(doc.Find(".infobox-image img"), false),
		Name:  series.Text,
		Path:  series.Path,
	}

	// Location
	if loc, ok := attributes.First("Location"); ok {
		tournament.Location = location(loc.Text, attr(loc.Element.Find(".flag a"), "title"))
	}

	tournament.Game = types.GameVersion(strings.TrimSpace(attributes.Text("Game & Version", 0)))
	tournament.Version = strings.TrimSpace(attributes.Text("Game & Version", 1))
	tournament.GameMode = strings.TrimSpace(attributes.Text("Game Mode", 0))
	tournament.Venue = strings.TrimSpace(attributes.Text("Venue", 0))
	tournament.Organizer = strings.TrimSpace(attributes.Text("Organizer", 0))
	tournament.PrizePool = parsePrize(attributes.Text("Prize Pool", 0))

	// Dates
	start := attributes.Text("Start Date", 0)
	if start == "" {
		start = attributes.Text("Date", 0)
	}
	tournament.Start = parseDay(start)
	tournament.End = parseDay(attributes.Text("End Date", 0))

	// Size and type
	players := attributes.Text("Number of Players", 0)
	teams := attributes.Text("Number of Teams", 0)
	if players != "" {
		tournament.ParticipantsCount = parseCount(players)
		tournament.Type = types.IndividualTournament
	}
	if teams != "" {
		if players == "" {
			tournament.ParticipantsCount = parseCount(teams)
		}
		tournament.Type = types.TeamTournament
	}

	// Prose
	tournament.Description = markdown.Selection(doc.Find(".mw-parser-output > p"))
	tournament.BroadcastTalent = parseBroadcastTalent(doc)
	tournament.Format = markdown.Selection(sectionFollower(doc, "Format", "ul"))
	tournament.Rules = markdown.Selection(sectionFollower(doc, "Rules_&_Settings", "ul"))
	tournament.ScheduleNote = markdown.Selection(sectionFollower(doc, "Schedule", "ul"))

	tournament.Groups = parseGroups(doc)
	tournament.Maps = parseMaps(doc)
	tournament.Participants, tournament.ParticipantsNote = parseParticipants(doc)
	tournament.Results = parseResults(doc)
	tournament.Prizes = parsePrizes(doc)
	tournament.Playoffs = parsePlayoffs(doc)
	tournament.Schedule = parseSchedule(doc)

	return tournament
}
