package aoe

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
)

// DefaultGroupName names a swiss table that has no heading
const DefaultGroupName = "Group Stage"

// parseGroups reads the group stage. A toggle group with standings tables
// holds one group per table; without tables it is a single swiss stage.
func parseGroups(doc *goquery.Document) []types.Group {
	toggle := doc.Find(".toggle-group").First()
	if toggle.Length() == 0 {
		return []types.Group{}
	}
	if toggle.Find(".table-responsive").Length() > 0 {
		return parseAllGroups(toggle)
	}

	name := DefaultGroupName
	if heading := doc.Find("#Swiss_Stage, #Group_Stage"); heading.Length() > 0 {
		name = text(heading)
	}

	group := types.Group{
		Name:         name,
		Participants: []types.GroupParticipant{},
		Rounds:       []types.Round{},
	}
	doc.Find(".swisstable").First().Find("tr:not(:first-child)").Each(func(i int, row *goquery.Selection) {
		group.Participants = append(group.Participants, parseGroupParticipant(row))
	})
	toggle.Find(".matchlist").Each(func(i int, list *goquery.Selection) {
		round := types.Round{
			ID:      fmt.Sprintf("round-%d", i+1),
			Name:    text(list.Find("tr:first-child")),
			Matches: []types.PlayoffMatch{},
		}
		list.Find(".match-row").Each(func(j int, row *goquery.Selection) {
			if match, ok := parseGroupMatch(row); ok {
				round.Matches = append(round.Matches, match)
			}
		})
		group.Rounds = append(group.Rounds, round)
	})

	return []types.Group{group}
}

// parseAllGroups reads one group per standings table. A match list right
// after a table holds its rounds.
func parseAllGroups(toggle *goquery.Selection) []types.Group {
	groups := []types.Group{}

	toggle.Find(".table-responsive").Each(func(i int, table *goquery.Selection) {
		group := types.Group{
			Name:         text(table.Find("tr th > span")),
			Participants: []types.GroupParticipant{},
			Rounds:       []types.Round{},
		}

		table.Find("tr:not(:first-child)").Each(func(j int, row *goquery.Selection) {
			group.Participants = append(group.Participants, parseGroupParticipant(row))
		})

		if next := table.Next(); next.HasClass("matchlist") {
			group.Rounds = parseGroupRounds(next)
		}

		groups = append(groups, group)
	})

	return groups
}

// parseGroupParticipant reads one standings row: position and status from
// the th, then W-L-D match and game tallies and the points cell
func parseGroupParticipant(row *goquery.Selection) types.GroupParticipant {
	nameCell := row.Find(".grouptableslot").First()
	position := row.Find("th").First()

	participant := types.GroupParticipant{
		Name:       strings.TrimSpace(nameCell.Text()),
		Image:      imageURL(nameCell.Find("img"), true),
		MatchScore: parseTally(row.Find("td:nth-child(3)").First().Text()),
		GameScore:  parseTally(row.Find("td:nth-child(4)").First().Text()),
		Points:     strings.TrimSpace(row.Find("td:nth-child(5)").First().Text()),
	}
	if n := parseCount(digitRun.FindString(position.Text())); n != nil {
		participant.Position = *n
	}
	if status, ok := classSuffix(position, "bg-"); ok {
		participant.Status = status
	}

	return participant
}

// parseTally reads a "2-1-0" style win/loss/draw cell
func parseTally(raw string) types.ScoreTally {
	var tally types.ScoreTally
	for i, part := range strings.Split(strings.TrimSpace(raw), "-") {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			continue
		}
		switch i {
		case 0:
			tally.Win = n
		case 1:
			tally.Loss = n
		case 2:
			tally.Draw = n
		}
	}
	return tally
}

// parseGroupRounds splits a match list into rounds. Countdown rows start a
// round and match rows belong to the latest one.
func parseGroupRounds(list *goquery.Selection) []types.Round {
	rounds := []types.Round{}

	list.Find("tr").Each(func(i int, row *goquery.Selection) {
		if row.Find(".group-table-countdown").Length() > 0 {
			rounds = append(rounds, types.Round{
				ID:      fmt.Sprintf("round-%d", len(rounds)+1),
				Name:    strings.TrimSpace(row.Text()),
				Matches: []types.PlayoffMatch{},
			})
		}

		if row.HasClass("match-row") && len(rounds) > 0 {
			if match, ok := parseGroupMatch(row); ok {
				last := &rounds[len(rounds)-1]
				last.Matches = append(last.Matches, match)
			}
		}
	})

	return rounds
}

// parseGroupMatch reads one match row of a group match list
func parseGroupMatch(row *goquery.Selection) (types.PlayoffMatch, bool) {
	var participants []types.EventParticipant
	row.Find(".matchlistslot").Each(func(i int, slot *goquery.Selection) {
		participants = append(participants, types.EventParticipant{
			Name:  strings.TrimSpace(slot.Text()),
			Image: imageURL(slot.Find("img"), true),
		})
	})
	if len(participants) < 2 {
		return types.PlayoffMatch{}, false
	}
	participants = participants[:2]

	row.Find("td:not(.matchlistslot)").Each(func(i int, cell *goquery.Selection) {
		if i < len(participants) {
			participants[i].Score = types.ParseScore(textNode(cell))
		}
	})

	match := parseMatchPopup(row.Find(".bracket-popup-wrapper").First())
	match.Participants = participants
	match.DeriveWinner()
	return match, true
}
