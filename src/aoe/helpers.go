package aoe

import (
	"log/slog"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/ogri-la/liquipedia-aoe-go/src/country"
	"github.com/ogri-la/liquipedia-aoe-go/src/infobox"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
	"golang.org/x/net/html"
)

const (
	// Host is prefixed to relative links and images
	Host = "https://liquipedia.net"

	// DefaultImage stands in for participants without a logo or flag
	DefaultImage = "/commons/images/thumb/3/35/Age_of_Empires_default_allmode.png/99px-Age_of_Empires_default_allmode.png"

	// PrizeCurrency is the currency prize pools are listed in
	PrizeCurrency = "USD"
)

var (
	digitRun    = regexp.MustCompile(`\d+`)
	nonAmount   = regexp.MustCompile(`[^0-9.]`)
	leadingInt  = regexp.MustCompile(`^\s*(\d+)`)
	dayFormats  = []string{"2006-01-02", "Jan 2, 2006", "January 2, 2006", "Jan 2 2006", "2 January 2006"}
	monthLetter = regexp.MustCompile(`^[a-zA-Z]+$`)
)

// document parses an HTML page. The parser is lenient, so this only fails
// on reader errors; an empty document is returned then.
func document(content string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		slog.Debug("failed to parse HTML", "error", err)
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}
	return doc
}

// imageURL resolves an img element to an absolute URL, preferring the
// highest density srcset entry. Without an image the default is returned,
// or "" when allowDefault is false.
func imageURL(img *goquery.Selection, allowDefault bool) string {
	path := ""
	if img != nil && img.Length() > 0 {
		img = img.First()
		if src, ok := img.Attr("src"); ok {
			path = src
		}
		if srcset, ok := img.Attr("srcset"); ok && srcset != "" {
			if best := bestSource(srcset); best != "" {
				path = best
			}
		}
	}

	if path == "" {
		if !allowDefault {
			return ""
		}
		path = DefaultImage
	}
	return absoluteURL(path)
}

// bestSource picks the url with the highest density from a srcset
func bestSource(srcset string) string {
	best, bestDensity := "", -1.0
	for _, source := range strings.Split(srcset, ", ") {
		fields := strings.Split(strings.TrimSpace(source), " ")
		if len(fields) == 0 || fields[0] == "" {
			continue
		}
		density := 1.0
		if len(fields) > 1 {
			if d, err := strconv.ParseFloat(strings.TrimSuffix(fields[1], "x"), 64); err == nil {
				density = d
			}
		}
		if density > bestDensity {
			best, bestDensity = fields[0], density
		}
	}
	return best
}

// absoluteURL prefixes the host to site-relative paths
func absoluteURL(path string) string {
	if strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//") {
		return Host + path
	}
	return path
}

// getPath returns an anchor's wiki path
func getPath(anchor *goquery.Selection) string {
	return infobox.Path(anchor)
}

// text returns the trimmed text of the first matched element
func text(sel *goquery.Selection) string {
	return strings.TrimSpace(sel.First().Text())
}

// attr returns an attribute of the first matched element, or ""
func attr(sel *goquery.Selection, name string) string {
	value, _ := sel.First().Attr(name)
	return value
}

// textNode returns the first non-blank text node directly under the first
// matched element, trimmed
func textNode(sel *goquery.Selection) string {
	found := ""
	sel.First().Contents().EachWithBreak(func(i int, s *goquery.Selection) bool {
		node := s.Get(0)
		if node.Type != html.TextNode || strings.TrimSpace(node.Data) == "" {
			return true
		}
		found = strings.TrimSpace(node.Data)
		return false
	})
	return found
}

// parsePrize reads a monetary amount. Text without any number gives nil.
func parsePrize(raw string) *types.Amount {
	cleaned := nonAmount.ReplaceAllString(raw, "")
	if cleaned == "" {
		return nil
	}
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return nil
	}
	return &types.Amount{Amount: amount, Code: PrizeCurrency}
}

// parseCount reads the leading integer of a cell, e.g. "16" or "12+".
// Anything else gives nil.
func parseCount(raw string) *int {
	m := leadingInt.FindStringSubmatch(raw)
	if m == nil {
		return nil
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return nil
	}
	return &n
}

// unixTime reads a data-timestamp attribute in seconds
func unixTime(raw string) *time.Time {
	seconds, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return nil
	}
	t := time.Unix(seconds, 0).UTC()
	return &t
}

// parseDay reads a single calendar date in one of the formats the wiki uses
func parseDay(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	for _, layout := range dayFormats {
		if t, err := time.Parse(layout, raw); err == nil {
			return &t
		}
	}
	return nil
}

// parseDateRange reads listing dates such as "Jun 1 - 3, 2024" or
// "Jun 28 - Jul 2, 2024". The start year falls back to the end's year when
// the start part carries no four digit year, and the end month falls back
// to the start month.
func parseDateRange(dates string) (start, end *time.Time) {
	parts := strings.Split(dates, " - ")
	startPart := strings.TrimSpace(parts[0])
	endPart := ""
	if len(parts) > 1 {
		endPart = strings.TrimSpace(parts[1])
	}

	startTokens := strings.Fields(startPart)
	if len(startTokens) == 0 {
		return nil, nil
	}
	startMonth := startTokens[0]
	startYear := strings.TrimSuffix(startTokens[len(startTokens)-1], ",")
	startDay := digitRun.FindString(startPart)

	year := startYear
	if len(startYear) != 4 {
		year = lastField(endPart)
	}
	start = parseMonthDay(startMonth, startDay, year)

	if endPart != "" {
		endTokens := strings.Fields(endPart)
		endMonth := startMonth
		if monthLetter.MatchString(endTokens[0]) {
			endMonth = endTokens[0]
		}
		end = parseMonthDay(endMonth, digitRun.FindString(endPart), lastField(endPart))
	}

	return start, end
}

func lastField(s string) string {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return ""
	}
	return strings.TrimSuffix(fields[len(fields)-1], ",")
}

// parseMonthDay builds a date from loose month, day and year tokens. Months
// are matched on their first three letters so "June" and "Sept" work too.
func parseMonthDay(month, day, year string) *time.Time {
	if len(month) < 3 || day == "" || year == "" {
		return nil
	}
	month = strings.ToUpper(month[:1]) + strings.ToLower(month[1:3])
	t, err := time.Parse("Jan 2 2006", month+" "+day+" "+year)
	if err != nil {
		return nil
	}
	return &t
}

// parseParticipant reads a team or player slot of a match or prize row
func parseParticipant(slot *goquery.Selection) types.EventParticipant {
	name := text(slot.Find("span:not(.flag):not(.team-template-image-icon):not(.team-template-team-icon)"))

	var score *types.Score
	if scoreCell := slot.Find(".bracket-score"); scoreCell.Length() > 0 {
		score = types.ParseScore(scoreCell.First().Text())
	}

	return types.EventParticipant{
		Name:  name,
		Score: score,
		Image: imageURL(slot.Find(".team-template-image-icon img, .flag > img"), true),
	}
}

// location builds a tournament location from its display name and the
// country shown next to it. "World" marks online events.
func location(name, countryName string) *types.Location {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil
	}
	loc := &types.Location{
		Name:    name,
		Country: country.Resolve(countryName),
		Type:    types.LANLocation,
	}
	if countryName == "World" {
		loc.Type = types.OnlineLocation
	}
	return loc
}

// splitScore reads a "2:1" style score into its sides, keeping only
// numeric ones
func splitScore(raw string) (left, right *types.Score) {
	sides := strings.Split(raw, ":")
	left = types.NumericScore(sides[0])
	if len(sides) > 1 {
		right = types.NumericScore(sides[1])
	}
	return left, right
}

// classSuffix returns the rest of the first class starting with prefix
func classSuffix(sel *goquery.Selection, prefix string) (string, bool) {
	for _, class := range strings.Fields(attr(sel, "class")) {
		if strings.HasPrefix(class, prefix) {
			return strings.TrimPrefix(class, prefix), true
		}
	}
	return "", false
}
