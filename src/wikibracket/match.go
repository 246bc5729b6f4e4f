package wikibracket

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-andiamo/splitter"
	"github.com/ogri-la/liquipedia-aoe-go/src/template"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
	"github.com/ogri-la/liquipedia-aoe-go/src/wikitext"
)

// LinkType describes how a match link field is shown
type LinkType struct {
	Label string
	Base  string
	Icon  string
}

// LinkTypes maps the link fields of a match to their presentation. Other
// fields are not links.
var LinkTypes = map[string]LinkType{
	"twitch":   {Label: "Twitch", Base: "https://www.twitch.tv/", Icon: "https://liquipedia.net/commons/Special:FilePath/Twitch_icon.png"},
	"youtube":  {Label: "YouTube", Base: "https://www.youtube.com/watch?v=", Icon: "https://liquipedia.net/commons/Special:FilePath/YouTube_icon.png"},
	"vod":      {Label: "VOD", Icon: "https://liquipedia.net/commons/Special:FilePath/Vod_icon.png"},
	"civdraft": {Label: "Civ Draft", Base: "https://aoe2cm.net/draft/", Icon: "https://liquipedia.net/commons/Special:FilePath/Aoe2cm_icon.png"},
	"mapdraft": {Label: "Map Draft", Base: "https://aoe2cm.net/draft/", Icon: "https://liquipedia.net/commons/Special:FilePath/Aoe2cm_icon.png"},
}

var (
	dateLayouts = []string{"January 2, 2006 - 15:04", "January 2, 2006"}
	datePrefix  = regexp.MustCompile(`^[A-Za-z]+ \d{1,2}, \d{4}(?: - \d{1,2}:\d{2})?`)

	listSplitter, _ = splitter.NewSplitter(',', splitter.Parenthesis, splitter.DoubleQuotes)
)

// parseMatch reads one Match template. Scores are the number of games each
// side won and are only set when the match lists games.
func parseMatch(tree *wikitext.Tree, data template.Data) types.PlayoffMatch {
	m := types.PlayoffMatch{
		BestOf:       data.Fields.Text("bestof"),
		Games:        []types.PlayoffGame{},
		Links:        []types.Link{},
		Note:         data.Fields.Text("comment"),
		Participants: []types.EventParticipant{},
	}

	for _, key := range data.Fields.Keys() {
		v, _ := data.Fields.Get(key)
		switch {
		case opponentKey.MatchString(key):
			m.Participants = append(m.Participants, types.EventParticipant{Name: opponentName(tree, v)})
		case gameKey.MatchString(key) && v.Kind == template.TemplateRef:
			m.Games = append(m.Games, parseGame(data.ExtractRef(tree, key)))
		case key == "date":
			m.StartTime = parseDate(tree, v)
		}

		if lt, ok := LinkTypes[key]; ok {
			if link, ok := matchLink(lt, data.Fields.Text(key)); ok {
				m.Links = append(m.Links, link)
				if key == "twitch" {
					m.TwitchStream = link.URL
				}
			}
		}
	}

	for len(m.Participants) < 2 {
		m.Participants = append(m.Participants, types.EventParticipant{})
	}

	if len(m.Games) > 0 {
		for side := range m.Participants {
			won := 0
			for _, g := range m.Games {
				if g.Winner != nil && *g.Winner == side {
					won++
				}
			}
			m.Participants[side].Score = types.NumberScore(float64(won))
		}
		m.DeriveWinner()
	}
	return m
}

// opponentName reads a participant from an opponent field, either a plain
// name or a template whose positional value is the name
func opponentName(tree *wikitext.Tree, v template.Value) string {
	switch v.Kind {
	case template.PlainText:
		return v.Text
	case template.TemplateRef:
		ref := template.Extract(tree, v.Node)
		return firstText(ref.Fields, template.PositionalKey, "p1", "1", "team", "name")
	}
	return ""
}

// parseGame reads one Map template
func parseGame(data template.Data) types.PlayoffGame {
	g := types.PlayoffGame{Map: data.Fields.Text("map")}

	switch data.Fields.Text("winner") {
	case "1":
		w := 0
		g.Winner = &w
	case "2":
		w := 1
		g.Winner = &w
	}

	first := sidePlayers(data.Fields, "1")
	second := sidePlayers(data.Fields, "2")
	if len(first) > 0 && len(second) > 0 {
		g.Players = [][]types.EventPlayer{first, second}
	}
	return g
}

// sidePlayers zips the civs and players lists of one side by position
func sidePlayers(fields *template.Fields, side string) []types.EventPlayer {
	civs := splitList(fields.Text("civs" + side))
	names := splitList(fields.Text("players" + side))

	var players []types.EventPlayer
	for i := 0; i < max(len(civs), len(names)); i++ {
		p := types.EventPlayer{}
		if i < len(civs) {
			p.Civilization = civs[i]
		}
		if i < len(names) {
			p.Name = names[i]
		}
		players = append(players, p)
	}
	return players
}

// splitList splits a comma separated list, leaving commas inside brackets
// or quotes alone
func splitList(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parts := strings.Split(text, ",")
	if listSplitter != nil {
		if split, err := listSplitter.Split(text); err == nil {
			parts = split
		}
	}

	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// parseDate reads "June 28, 2024 - 18:00" as UTC. Any trailing timezone
// abbreviation is ignored.
func parseDate(tree *wikitext.Tree, v template.Value) *time.Time {
	text := ""
	switch v.Kind {
	case template.PlainText:
		text = v.Text
	case template.List:
		if len(v.Items) > 0 {
			text = tree.PlainText(v.Items[0])
		}
	}

	text = datePrefix.FindString(strings.TrimSpace(text))
	if text == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, text, time.UTC); err == nil {
			return &t
		}
	}
	return nil
}

func matchLink(lt LinkType, value string) (types.Link, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return types.Link{}, false
	}
	url := value
	if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
		url = lt.Base + value
	}
	return types.Link{Text: lt.Label, URL: url, Image: lt.Icon}, true
}
