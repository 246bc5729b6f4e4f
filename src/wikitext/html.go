package wikitext

import (
	"regexp"
	"strings"
)

var markupTags = []string{
	"abbr", "b", "bdi", "bdo", "big", "blockquote", "caption", "center",
	"cite", "code", "data", "dd", "del", "dfn", "div", "dl", "dt", "em",
	"font", "h1", "h2", "h3", "h4", "h5", "h6", "i", "ins", "kbd", "li",
	"mark", "ol", "p", "q", "rb", "rp", "rt", "rtc", "ruby", "s", "samp",
	"small", "span", "strike", "strong", "sub", "sup", "table", "td", "th",
	"time", "tr", "tt", "u", "ul", "var",
}

var (
	markupTagNames = strings.Join(markupTags, "|")
	markupClose    = regexp.MustCompile(`(?i)</(` + markupTagNames + `)\s*>`)
	markupOpen     = regexp.MustCompile(`(?i)<(` + markupTagNames + `)(\s[^<>]*)?>`)
	voidTag        = regexp.MustCompile(`(?i)<(nowiki|references|ref|area|base|br|col|embed|hr|img|input|keygen|link|meta|param|source|track|wbr|templatestyles|section)((?:\s[^<>]*)?/?)>`)
)

// htmlTags pairs each closing markup tag with the nearest preceding opening
// tag of the same name
func (p *parser) htmlTags(s string, depth int) string {
	pos := 0
	for pos < len(s) {
		cm := markupClose.FindStringSubmatchIndex(s[pos:])
		if cm == nil {
			break
		}
		closeStart, closeEnd := pos+cm[0], pos+cm[1]
		name := strings.ToLower(s[pos+cm[2] : pos+cm[3]])

		openStart, openEnd := -1, -1
		for _, om := range markupOpen.FindAllStringSubmatchIndex(s[:closeStart], -1) {
			if !strings.EqualFold(s[om[2]:om[3]], name) {
				continue
			}
			if om[4] >= 0 && strings.HasSuffix(strings.TrimSpace(s[om[4]:om[5]]), "/") {
				continue
			}
			openStart, openEnd = om[0], om[1]
		}
		if openStart < 0 {
			pos = closeEnd
			continue
		}

		id := p.add(Node{
			Kind: KindTag,
			Name: name,
			Children: []NodeID{
				p.resolve(s[openStart:openEnd]),
				p.parse(s[openEnd:closeStart], depth+1, modeBlock),
			},
			Close: s[closeStart:closeEnd],
		})
		replacement := mark(id)
		s = s[:openStart] + replacement + s[closeEnd:]
		pos = openStart + len(replacement)
	}
	return s
}

// voidTags turns self-closing and void elements into single tag nodes
func (p *parser) voidTags(s string) string {
	return replaceSubmatchFunc(s, voidTag, func(g []string) string {
		id := p.add(Node{
			Kind:     KindTagSingle,
			Name:     strings.ToLower(g[1]),
			Children: []NodeID{p.resolve(g[0])},
		})
		return mark(id)
	})
}
