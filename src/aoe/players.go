package aoe

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ogri-la/liquipedia-aoe-go/src/country"
	"github.com/ogri-la/liquipedia-aoe-go/src/infobox"
	"github.com/ogri-la/liquipedia-aoe-go/src/markdown"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
)

var agePattern = regexp.MustCompile(`age\s+(\d+)`)

// ParsePlayers reads the all-players tables. The first cell holds the flag
// and the player link, then the real name and the team. Rows without a
// player link are dropped.
func ParsePlayers(content string) []types.Player {
	doc := document(content)

	players := []types.Player{}
	doc.Find(".wikitable tr").Each(func(i int, row *goquery.Selection) {
		cells := row.ChildrenFiltered("td")
		if cells.Length() == 0 {
			return
		}

		first := cells.First()
		link := first.Find("a").FilterFunction(func(j int, a *goquery.Selection) bool {
			return a.Closest(".flag").Length() == 0
		}).First()
		name := strings.TrimSpace(link.Text())
		if name == "" {
			return
		}

		flag := attr(first.Find(".flag a"), "title")
		if flag == "" {
			flag = attr(first.Find(".flag img"), "alt")
		}

		players = append(players, types.Player{
			Name:     name,
			Path:     getPath(link),
			Country:  country.Resolve(flag),
			FullName: strings.TrimSpace(cells.Eq(1).Text()),
			Team:     strings.TrimSpace(cells.Eq(2).Text()),
		})
	})

	return players
}

// ParsePlayer reads a player page. overview is the page's intro extract as
// HTML and may be empty.
func ParsePlayer(content, overview string) types.Player {
	doc := document(content)
	attributes := infobox.Extract(doc)

	player := types.Player{
		Name:        textNode(doc.Find(".infobox-header")),
		Image:       imageURL(doc.Find(".infobox-image img"), false),
		Overview:    markdown.Convert(overview),
		Status:      strings.TrimSpace(attributes.Text("Status", 0)),
		YearsActive: strings.TrimSpace(attributes.Text("Years Active", 0)),
		Team:        strings.TrimSpace(attributes.Text("Team", 0)),
	}

	player.FullName = strings.TrimSpace(attributes.Text("Name", 0))
	if romanized := strings.TrimSpace(attributes.Text("Romanized Name", 0)); romanized != "" {
		player.FullName = romanized
	}

	if nationality, ok := attributes.First("Nationality"); ok {
		name := attr(nationality.Element.Find(".flag a"), "title")
		if name == "" {
			name = nationality.Text
		}
		player.Country = country.Resolve(name)
	}

	if born := attributes.Text("Born", 0); born != "" {
		day, _, _ := strings.Cut(born, "(")
		player.Birthdate = parseDay(day)
		if m := agePattern.FindStringSubmatch(born); m != nil {
			if age, err := strconv.Atoi(m[1]); err == nil {
				player.Age = &age
			}
		}
	}

	player.TotalWinnings = parsePrize(attributes.Text("Approx. Total Winnings", 0))

	return player
}

// ParseMap reads a map page
func ParseMap(content string) types.MapDetail {
	doc := document(content)
	attributes := infobox.Extract(doc)

	detail := types.MapDetail{
		Name:        textNode(doc.Find(".infobox-header")),
		Image:       imageURL(doc.Find(".infobox-image img"), false),
		Creator:     strings.TrimSpace(attributes.Text("Creator", 0)),
		Type:        strings.TrimSpace(attributes.Text("Type", 0)),
		Walls:       strings.TrimSpace(attributes.Text("Walls", 0)),
		Description: markdown.Selection(doc.Find(".mw-parser-output > p")),
	}

	if nomad := strings.TrimSpace(attributes.Text("Nomad", 0)); nomad != "" {
		isNomad := strings.EqualFold(nomad, "Yes")
		detail.Nomad = &isNomad
	}

	return detail
}
