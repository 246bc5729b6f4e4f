// Package infobox reads the label/value fact panel at the top of wiki pages.
package infobox

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// GamePrefix is stripped from hrefs to give wiki paths
const GamePrefix = "/ageofempires/"

// Entry is one value of an infobox field
type Entry struct {
	Path    string
	Text    string
	Element *goquery.Selection
}

// Attributes maps a field label to its values, in document order
type Attributes map[string][]Entry

// Extract collects every `.infobox-description` label with the element that
// follows it. A value made of direct child anchors gives one entry per anchor,
// anything else gives a single entry for the whole element.
func Extract(doc *goquery.Document) Attributes {
	attrs := Attributes{}

	doc.Find(".infobox-description").Each(func(i int, label *goquery.Selection) {
		value := label.Next()
		if value.Length() == 0 {
			return
		}

		var entries []Entry
		value.ChildrenFiltered("a").Each(func(j int, anchor *goquery.Selection) {
			entries = append(entries, Entry{
				Path:    Path(anchor),
				Text:    anchor.Text(),
				Element: anchor,
			})
		})
		if len(entries) == 0 {
			entries = []Entry{{Text: value.Text(), Element: value}}
		}

		attrs[key(label.Text())] = entries
	})

	return attrs
}

// key drops the trailing colon, or whatever the last character is
func key(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return label
	}
	r := []rune(label)
	return string(r[:len(r)-1])
}

// First returns the first entry of a field
func (a Attributes) First(label string) (Entry, bool) {
	entries := a[label]
	if len(entries) == 0 {
		return Entry{}, false
	}
	return entries[0], true
}

// Text returns the text of entry i of a field, or "" when absent
func (a Attributes) Text(label string, i int) string {
	entries := a[label]
	if i < 0 || i >= len(entries) {
		return ""
	}
	return entries[i].Text
}

// Path returns an anchor's href relative to the wiki, or "" when it has none
func Path(anchor *goquery.Selection) string {
	if anchor == nil {
		return ""
	}
	href, ok := anchor.Attr("href")
	if !ok {
		return ""
	}
	return strings.Replace(href, GamePrefix, "", 1)
}
