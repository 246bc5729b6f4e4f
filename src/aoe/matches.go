package aoe

import (
	"log/slog"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
	"github.com/ogri-la/liquipedia-aoe-go/src/validation"
)

// TwitchHost is where twitch channel names point to
const TwitchHost = "https://twitch.tv/"

// ParseMatches reads the upcoming and ongoing matches page. Matches missing
// a side, the best-of or the start time are dropped, as are matches with an
// undecided (TBD) participant.
func ParseMatches(content string) []types.Match {
	doc := document(content)

	matches := []types.Match{}
	doc.Find(".infobox_matches_content").Each(func(i int, box *goquery.Selection) {
		if match, ok := parseMatch(box); ok {
			matches = append(matches, match)
		}
	})
	return matches
}

// parseMatch builds one match box, reporting false when it is rejected
func parseMatch(box *goquery.Selection) (types.Match, bool) {
	var participants []types.EventParticipant
	box.Find(".team-left, .team-right").Each(func(i int, slot *goquery.Selection) {
		participants = append(participants, parseParticipant(slot))
	})

	timer := box.Find(".timer-object").First()
	row := validation.MatchRow{
		Sides:     len(participants),
		BestOf:    box.Find(".versus abbr").First().Text(),
		Timestamp: attr(timer, "data-timestamp"),
	}
	if len(participants) >= 2 {
		row.Left = participants[0].Name
		row.Right = participants[1].Name
	}
	if !validation.ValidMatchRow(row) {
		slog.Debug("dropping incomplete match", "left", row.Left, "right", row.Right)
		return types.Match{}, false
	}

	start := unixTime(row.Timestamp)
	if start == nil {
		slog.Debug("dropping match with bad timestamp", "timestamp", row.Timestamp)
		return types.Match{}, false
	}

	participants = participants[:2]
	participants[0].Score, participants[1].Score = splitScore(box.Find(".versus > div").First().Text())

	tournament := box.Find(".league-icon-small-image > a").First()
	match := types.Match{
		Participants: participants,
		Format:       row.BestOf,
		StartTime:    *start,
		Winner:       types.Winner(participants[0].Score, participants[1].Score),
		Tournament: types.MatchTournament{
			Name:  attr(tournament, "title"),
			Path:  getPath(tournament),
			Image: imageURL(tournament.Find("img"), true),
		},
	}
	if stream := attr(timer, "data-stream-twitch"); stream != "" {
		match.TwitchStream = TwitchHost + strings.ToLower(strings.ReplaceAll(stream, "_", ""))
	}
	return match, true
}
