package aoe

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ogri-la/liquipedia-aoe-go/src/country"
	"github.com/ogri-la/liquipedia-aoe-go/src/markdown"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
)

// parsePlayoffs reads every bracket widget on the page. Columns sharing a
// round name fold into one round; empty rounds and brackets are dropped.
func parsePlayoffs(doc *goquery.Document) []types.Playoff {
	playoffs := []types.Playoff{}

	doc.Find(".bracket-wrapper").Each(func(i int, wrapper *goquery.Selection) {
		playoff := types.Playoff{
			Name:   text(wrapper.Prev().Find("span:first-child")),
			Rounds: []types.PlayoffRound{},
		}

		columns := wrapper.ChildrenFiltered(".bracket-scroller").Find(".bracket-column-matches")
		columns.Each(func(j int, column *goquery.Selection) {
			round := parsePlayoffColumn(column, j)
			if len(round.Matches) == 0 {
				return
			}
			for k := range playoff.Rounds {
				if round.Name != "" && playoff.Rounds[k].Name == round.Name {
					playoff.Rounds[k].Matches = append(playoff.Rounds[k].Matches, round.Matches...)
					return
				}
			}
			playoff.Rounds = append(playoff.Rounds, round)
		})

		if len(playoff.Rounds) > 0 {
			playoffs = append(playoffs, playoff)
		}
	})

	return playoffs
}

// parsePlayoffColumn reads one bracket column as a round
func parsePlayoffColumn(column *goquery.Selection, index int) types.PlayoffRound {
	header := column.Find(".bracket-header").First()

	round := types.PlayoffRound{
		ID:      fmt.Sprintf("R%d", index+1),
		Name:    strings.TrimSpace(strings.ReplaceAll(textNode(header), "(", "")),
		Format:  text(header.Find("abbr")),
		Matches: []types.PlayoffMatch{},
	}

	column.Find(".bracket-game").Each(func(i int, game *goquery.Selection) {
		if match, ok := parsePlayoffMatch(game); ok {
			round.Matches = append(round.Matches, match)
		}
	})

	return round
}

// parsePlayoffMatch reads a bracket game box. Boxes without two slots are
// rejected.
func parsePlayoffMatch(game *goquery.Selection) (types.PlayoffMatch, bool) {
	var participants []types.EventParticipant
	game.Find(".bracket-player-top, .bracket-team-top, .bracket-player-bottom, .bracket-team-bottom").Each(func(i int, slot *goquery.Selection) {
		participants = append(participants, parseParticipant(slot))
	})
	if len(participants) < 2 {
		return types.PlayoffMatch{}, false
	}

	match := parseMatchPopup(game.Find(".bracket-popup-wrapper").First())
	match.Participants = participants[:2]
	match.DeriveWinner()

	// A label right above the box names the match, e.g. "Third place"
	if prev := game.Prev(); prev.Length() > 0 && !prev.Is(".bracket-game, .bracket-header") && prev.Find(".bracket-header").Length() == 0 {
		match.Name = strings.TrimSpace(prev.Text())
	}

	return match, true
}

// parseMatchPopup reads the details popup shared by bracket, group and
// showmatch boxes. Participants are left to the caller.
func parseMatchPopup(popup *goquery.Selection) types.PlayoffMatch {
	match := types.PlayoffMatch{
		Links: []types.Link{},
		Games: []types.PlayoffGame{},
	}
	if popup == nil || popup.Length() == 0 {
		return match
	}

	timer := popup.Find(".bracket-popup-body-time .timer-object").First()
	match.StartTime = unixTime(attr(timer, "data-timestamp"))
	match.TwitchStream = attr(timer, "data-stream-twitch")
	match.Note = markdown.Selection(popup.Find(".bracket-popup-body-comment"))

	popup.Find(".bracket-popup-footer a").Each(func(i int, link *goquery.Selection) {
		l := types.Link{
			URL:  attr(link, "href"),
			Text: attr(link, "title"),
		}
		if src := attr(link.Find("img"), "src"); src != "" {
			l.Image = absoluteURL(src)
		}
		match.Links = append(match.Links, l)
	})

	popup.Find(".bracket-popup-body-match").Each(func(i int, game *goquery.Selection) {
		match.Games = append(match.Games, parsePlayoffGame(game))
	})

	return match
}

// parsePlayoffGame reads one game row of a popup. Team games list players
// per side; 1v1 games only show the civilization drafts.
func parsePlayoffGame(game *goquery.Selection) types.PlayoffGame {
	var sides [][]types.EventPlayer
	winner := -1

	teams := game.Find(".leftTeam, .rightTeam")
	if teams.Length() > 0 {
		teams.Each(func(i int, team *goquery.Selection) {
			var players []types.EventPlayer
			team.ChildrenFiltered("span").Each(func(j int, span *goquery.Selection) {
				player := types.EventPlayer{
					Name:         strings.TrimSpace(span.Text()),
					Country:      country.Resolve(attr(span.Find(".flag img"), "alt")),
					Civilization: attr(span.Find(".faction > a"), "title"),
				}
				if player.Name != "" || player.Country != nil || player.Civilization != "" {
					players = append(players, player)
				}
			})
			sides = append(sides, players)
			if winner < 0 && team.HasClass("bg-win") {
				winner = i
			}
		})
	} else {
		game.Find(".draft > a").Each(func(i int, civ *goquery.Selection) {
			if title := attr(civ, "title"); title != "" {
				sides = append(sides, []types.EventPlayer{{Civilization: title}})
			} else {
				sides = append(sides, nil)
			}
		})
		game.Find(".fa-check").EachWithBreak(func(i int, check *goquery.Selection) bool {
			if check.HasClass("forest-green-text") {
				winner = i
				return false
			}
			return true
		})
	}

	result := types.PlayoffGame{Map: gameMap(game)}
	if winner == 0 || winner == 1 {
		w := winner
		result.Winner = &w
	}
	if len(sides) >= 2 && (len(sides[0]) > 0 || len(sides[1]) > 0) {
		result.Players = [][]types.EventPlayer{sides[0], sides[1]}
	}
	return result
}

// gameMap reads the map name of a game row
func gameMap(game *goquery.Selection) string {
	if link := game.ChildrenFiltered("div:not(.draft)").ChildrenFiltered("a"); link.Length() > 0 {
		return link.First().Text()
	}
	return game.Find(".lengthTeam").First().Text()
}
