package aoe

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ogri-la/liquipedia-aoe-go/src/markdown"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
)

// PrizeRowSelector matches the placement rows of a prize pool table
const PrizeRowSelector = ".prizepool-section-tables .csstable-widget-row:not(.prizepooltable-header):not(.ppt-toggle-expand)"

// sectionHeading finds the h3 carrying id, either on the heading itself or
// on its headline span. Headings wrapped in a .mw-heading div resolve to
// the wrapper so that siblings line up.
func sectionHeading(doc *goquery.Document, id string) *goquery.Selection {
	target := doc.Find("[id]").FilterFunction(func(i int, s *goquery.Selection) bool {
		return attr(s, "id") == id
	}).First()
	if target.Length() == 0 {
		return target
	}

	heading := target
	if !heading.Is("h3") {
		heading = target.Closest("h3")
	}
	if parent := heading.Parent(); parent.HasClass("mw-heading") {
		heading = parent
	}
	return heading
}

// sectionFollower returns the element right after the h3 with id, if it
// matches selector
func sectionFollower(doc *goquery.Document, id, selector string) *goquery.Selection {
	return sectionHeading(doc, id).Next().Filter(selector)
}

// parseBroadcastTalent reads the broadcast talent tabs as markdown. Pages
// without tabs give a single "Broadcast" entry; empty entries are dropped.
func parseBroadcastTalent(doc *goquery.Document) []types.BroadcastTab {
	block := sectionFollower(doc, "Broadcast_Talent", "div")

	var tabs []types.BroadcastTab
	block.Find(".nav-tabs li").Each(func(i int, tab *goquery.Selection) {
		number, ok := classSuffix(tab, "tab")
		number = digitRun.FindString(number)
		if !ok || number == "" {
			return
		}
		tabs = append(tabs, types.BroadcastTab{
			Name:    strings.TrimSpace(tab.Text()),
			Content: markdown.Selection(block.Find(".tabs-content .content" + number)),
		})
	})

	if len(tabs) == 0 {
		tabs = []types.BroadcastTab{{Name: "Broadcast", Content: markdown.Selection(block)}}
	}

	talent := []types.BroadcastTab{}
	for _, tab := range tabs {
		if tab.Content != "" {
			talent = append(talent, tab)
		}
	}
	return talent
}

// parseTabs reads the related page tab rows
func parseTabs(doc *goquery.Document, path string) [][]types.Tab {
	rows := [][]types.Tab{}
	doc.Find(".tabs-static").Each(func(i int, row *goquery.Selection) {
		tabs := []types.Tab{}
		row.Find("a").Each(func(j int, link *goquery.Selection) {
			tabPath := getPath(link)
			if tabPath == "" {
				tabPath = path
			}
			tabs = append(tabs, types.Tab{
				Path:   tabPath,
				Name:   link.Text(),
				Active: link.Parent().HasClass("active"),
			})
		})
		rows = append(rows, tabs)
	})
	return rows
}

// parseParticipants reads the participants table and the note below it
func parseParticipants(doc *goquery.Document) ([]types.EventParticipant, string) {
	participants := []types.EventParticipant{}

	table := doc.Find(".participanttable").First()
	if table.Length() == 0 {
		return participants, ""
	}

	table.Find(".player-row td").Each(func(i int, cell *goquery.Selection) {
		name := strings.TrimSpace(cell.Text())
		if name == "" {
			return
		}
		participants = append(participants, types.EventParticipant{
			Name:  name,
			Image: imageURL(cell.Find(".flag img"), true),
		})
	})

	note := ""
	if next := table.Parent().Next(); next.Is("p") {
		note = markdown.Selection(next)
	}
	return participants, note
}

// parseMaps reads the map pool. Categories come from the "Map categories"
// table: its second row names the categories and later rows list the maps
// of each category column.
func parseMaps(doc *goquery.Document) []types.MapEntry {
	images := doc.Find(".mapstable td img")
	categories := mapCategories(doc)

	maps := []types.MapEntry{}
	doc.Find(".mapstable th").Each(func(i int, th *goquery.Selection) {
		name := strings.TrimSpace(th.Text())
		entry := types.MapEntry{
			Name:  name,
			Image: imageURL(images.Eq(i), true),
			Path:  attr(th.Find("a"), "href"),
		}
		for _, category := range categories {
			if category.has(name) {
				entry.Category = category.name
				break
			}
		}
		maps = append(maps, entry)
	})
	return maps
}

type mapCategory struct {
	name string
	maps []string
}

func (c mapCategory) has(name string) bool {
	for _, m := range c.maps {
		if m == name {
			return true
		}
	}
	return false
}

func mapCategories(doc *goquery.Document) []mapCategory {
	header := doc.Find(".wikitable th").FilterFunction(func(i int, th *goquery.Selection) bool {
		return strings.Contains(th.Text(), "Map categories")
	}).First()
	if header.Length() == 0 {
		return nil
	}

	rows := header.Parent().Parent().Find("tr")
	if rows.Length() < 2 {
		return nil
	}

	var categories []mapCategory
	rows.Eq(1).Find("th").Each(func(i int, th *goquery.Selection) {
		categories = append(categories, mapCategory{name: strings.TrimSpace(th.Text())})
	})
	rows.Slice(2, rows.Length()).Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		for j := range categories {
			if j < cells.Length() {
				categories[j].maps = append(categories[j].maps, strings.TrimSpace(cells.Eq(j).Text()))
			}
		}
	})
	return categories
}

// parseResults reads visible showmatch tables
func parseResults(doc *goquery.Document) []types.PlayoffMatch {
	results := []types.PlayoffMatch{}

	doc.Find(".showmatch").Each(func(i int, showmatch *goquery.Selection) {
		if strings.Contains(attr(showmatch.Parent(), "style"), "display: none;") {
			return
		}

		header := showmatch.Find("tr:first-child").First()
		var participants []types.EventParticipant
		header.Find("th:first-child, th:last-child").Each(func(j int, th *goquery.Selection) {
			participants = append(participants, types.EventParticipant{
				Name:  strings.TrimSpace(th.Text()),
				Image: imageURL(th.Find("img"), true),
			})
		})
		if len(participants) < 2 {
			return
		}
		participants = participants[:2]

		header.Find("th:nth-child(2), th:nth-child(3)").Each(func(j int, th *goquery.Selection) {
			if j < 2 {
				participants[j].Score = types.ParseScore(textNode(th))
			}
		})

		match := parseMatchPopup(showmatch.Find("tr:last-child").First())
		match.Participants = participants
		match.DeriveWinner()
		results = append(results, match)
	})

	return results
}

// parsePrizes reads the prize pool placements
func parsePrizes(doc *goquery.Document) []types.Prize {
	prizes := []types.Prize{}

	doc.Find(PrizeRowSelector).Each(func(i int, row *goquery.Selection) {
		prize := types.Prize{
			Place:        text(row.Find(".csstable-widget-cell:first-child")),
			Participants: []types.EventParticipant{},
		}
		if cell := row.Find(".csstable-widget-cell:nth-child(2)"); cell.Length() > 0 {
			prize.Prize = parsePrize(cell.First().Text())
		}
		row.Find(".block-team, .block-player").Each(func(j int, slot *goquery.Selection) {
			prize.Participants = append(prize.Participants, parseParticipant(slot))
		})
		prizes = append(prizes, prize)
	})

	return prizes
}

// parseSchedule reads the schedule table below the Schedule heading
func parseSchedule(doc *goquery.Document) []types.ScheduleMatch {
	schedule := []types.ScheduleMatch{}

	sectionFollower(doc, "Schedule", ".table-responsive").Find(".wikitable .Match").Each(func(i int, row *goquery.Selection) {
		left := row.Find(".TeamLeft").First()
		right := row.Find(".TeamRight").First()
		scoreLeft, scoreRight := splitScore(row.Find(".Score").First().Text())

		schedule = append(schedule, types.ScheduleMatch{
			Date:   unixTime(attr(row.Find(".Date .timer-object-datetime-only"), "data-timestamp")),
			Format: text(row.Find(".Score abbr")),
			Participants: []types.EventParticipant{
				{Name: strings.TrimSpace(left.Text()), Score: scoreLeft, Image: imageURL(left.Find("img"), true)},
				{Name: strings.TrimSpace(right.Text()), Score: scoreRight, Image: imageURL(right.Find("img"), true)},
			},
		})
	})

	return schedule
}
