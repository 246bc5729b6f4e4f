package aoe

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
)

const positionSelector = `span[style="font-size:85%;font-style:italic"]`

var changesPrefix = regexp.MustCompile(`^\n\s?`)

// ParsePatches reads the patch table. The header row is skipped and rows
// without a version are dropped.
func ParsePatches(content string) []types.Patch {
	doc := document(content)

	patches := []types.Patch{}
	doc.Find(".wikitable").First().Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}

		link := row.Find("td:nth-child(1) a").First()
		version := link.Text()
		if version == "" {
			return
		}

		patches = append(patches, types.Patch{
			Version: version,
			URL:     Host + attr(link, "href"),
			Date:    parseDay(row.Find("td:nth-child(2)").First().Text()),
			Changes: changesPrefix.ReplaceAllString(row.Find("td:nth-child(3)").First().Text(), ""),
		})
	})

	return patches
}

// ParseTransfers reads the transfer portal
func ParseTransfers(content string) []types.Transfer {
	doc := document(content)

	transfers := []types.Transfer{}
	doc.Find(".mainpage-transfer .divRow").Each(func(i int, row *goquery.Selection) {
		transfer := types.Transfer{
			Date:    parseDay(row.Find(".Date").First().Text()),
			Players: []string{},
			From:    transferTeam(row.Find(".OldTeam").First()),
			To:      transferTeam(row.Find(".NewTeam").First()),
		}
		row.Find(".Name > a").Each(func(j int, player *goquery.Selection) {
			transfer.Players = append(transfer.Players, player.Text())
		})
		transfers = append(transfers, transfer)
	})

	return transfers
}

func transferTeam(cell *goquery.Selection) types.TransferTeam {
	return types.TransferTeam{
		Team:     attr(cell.Find(".team-template-team-icon"), "data-highlightingclass"),
		Position: cell.Find(positionSelector).First().Text(),
	}
}

// itemGroup is one type of the items portal and the categories it is split into
type itemGroup struct {
	itemType   types.ItemType
	categories []types.ItemCategory
}

var itemGroups = []itemGroup{
	{itemType: types.BasicItem, categories: types.BasicItemCategories},
	{itemType: types.RoshanDropItem},
	{itemType: types.UpgradeItem, categories: types.UpgradeItemCategories},
	{itemType: types.NeutralItem, categories: types.NeutralItemTiers},
}

// ParseItems reads the items portal. Each .row block is the next category
// of the current item type; once a type runs out of categories the next
// type starts.
func ParseItems(content string) []types.Item {
	doc := document(content)

	items := []types.Item{}
	groupIndex, categoryIndex := 0, 0
	doc.Find(".row").Each(func(i int, block *goquery.Selection) {
		if groupIndex >= len(itemGroups) {
			return
		}
		group := itemGroups[groupIndex]

		var category types.ItemCategory
		if categoryIndex < len(group.categories) {
			category = group.categories[categoryIndex]
		}

		block.Find(".responsive").Each(func(j int, detail *goquery.Selection) {
			item := types.Item{
				Type:     group.itemType,
				Category: category,
				URL:      Host + attr(detail.Find("a"), "href"),
				Name:     attr(detail.Find("a:nth-child(2)"), "title"),
				Img:      Host + attr(detail.Find("img"), "src"),
			}
			if price, err := strconv.Atoi(strings.ReplaceAll(strings.TrimSpace(detail.Find("b").First().Text()), ",", "")); err == nil && price != 0 {
				item.Price = &price
			}
			items = append(items, item)
		})

		if categoryIndex+1 >= len(group.categories) {
			groupIndex++
			categoryIndex = 0
		} else {
			categoryIndex++
		}
	})

	return items
}
