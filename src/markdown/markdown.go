// Package markdown renders wiki prose fragments as markdown.
package markdown

import (
	"log/slog"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/PuerkitoBio/goquery"
)

var converter = md.NewConverter("liquipedia.net", true, nil)

// Convert renders an HTML fragment as markdown. Conversion failures are
// logged and give "".
func Convert(html string) string {
	if strings.TrimSpace(html) == "" {
		return ""
	}
	out, err := converter.ConvertString(html)
	if err != nil {
		slog.Debug("markdown conversion failed", "error", err)
		return ""
	}
	return strings.TrimSpace(out)
}

// Selection renders the outer HTML of the first element of sel. An empty
// selection gives "".
func Selection(sel *goquery.Selection) string {
	if sel == nil || sel.Length() == 0 {
		return ""
	}
	html, err := goquery.OuterHtml(sel.First())
	if err != nil {
		return ""
	}
	return Convert(html)
}
