package aoe

import (
	"log/slog"

	"github.com/PuerkitoBio/goquery"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
)

// ParseTeams reads the active teams of the teams portal, grouped by region
func ParseTeams(content string) []types.Team {
	doc := document(content)

	// Only the first container lists active teams
	parent := doc.Find(".lp-container-fluid").First()
	if parent.Length() == 0 {
		return []types.Team{}
	}

	teams := []types.Team{}
	parent.Find(".panel-box").Each(func(i int, box *goquery.Selection) {
		region := text(box.Find(".panel-box-heading a"))

		box.Find(".team-template-team-standard").Each(func(j int, detail *goquery.Selection) {
			link := detail.Find(".team-template-text a").First()
			name := link.Text()
			href := attr(link, "href")
			if name == "" || href == "" {
				slog.Debug("dropping team without name or link", "region", region)
				return
			}

			team := types.Team{
				Name:   name,
				Region: region,
				URL:    Host + href,
			}
			if logo := attr(detail.Find("img"), "src"); logo != "" {
				team.Logo = absoluteURL(logo)
			}
			teams = append(teams, team)
		})
	})

	return teams
}

// heroAttrs is the order of the civilization columns
var heroAttrs = []types.HeroAttr{types.HeroStrength, types.HeroAgility, types.HeroIntelligence}

// ParseHeroes reads the civilization portal. Each half box is one column.
func ParseHeroes(content string) []types.Hero {
	doc := document(content)

	heroes := []types.Hero{}
	doc.Find(".halfbox").Each(func(i int, box *goquery.Selection) {
		heroAttr := types.HeroStrength
		if i < len(heroAttrs) {
			heroAttr = heroAttrs[i]
		}

		box.Find("li").Each(func(j int, item *goquery.Selection) {
			link := item.Find("a").First()
			name := attr(link, "title")
			if name == "" {
				return
			}
			heroes = append(heroes, types.Hero{
				Name: name,
				Attr: heroAttr,
				Img:  Host + attr(link.Find("img"), "src"),
				URL:  Host + attr(link, "href"),
			})
		})
	})

	return heroes
}
