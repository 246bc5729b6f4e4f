package wikitext

import (
	"regexp"
	"strings"
)

// magicWords maps the upper-cased names of variables and parser functions
// that are not templates. A true value means the word only counts as magic
// when followed by a colon, e.g. {{DEFAULTSORT:key}}.
var magicWords = map[string]bool{
	"!":                false,
	"=":                false,
	"PAGENAME":         false,
	"PAGENAMEE":        false,
	"FULLPAGENAME":     false,
	"FULLPAGENAMEE":    false,
	"BASEPAGENAME":     false,
	"ROOTPAGENAME":     false,
	"SUBPAGENAME":      false,
	"TALKPAGENAME":     false,
	"NAMESPACE":        false,
	"NAMESPACENUMBER":  false,
	"SITENAME":         false,
	"SERVER":           false,
	"SERVERNAME":       false,
	"SCRIPTPATH":       false,
	"CURRENTYEAR":      false,
	"CURRENTMONTH":     false,
	"CURRENTMONTHNAME": false,
	"CURRENTDAY":       false,
	"CURRENTDAYNAME":   false,
	"CURRENTTIME":      false,
	"CURRENTHOUR":      false,
	"CURRENTTIMESTAMP": false,
	"LOCALYEAR":        false,
	"LOCALTIME":        false,
	"REVISIONID":       false,
	"REVISIONYEAR":     false,
	"PAGEID":           false,
	"NUMBEROFPAGES":    false,
	"NUMBEROFARTICLES": false,
	"NUMBEROFUSERS":    false,
	"CONTENTLANGUAGE":  false,
	"PAGELANGUAGE":     false,
	"DIRMARK":          false,

	"DEFAULTSORT":         true,
	"DEFAULTSORTKEY":      true,
	"DEFAULTCATEGORYSORT": true,
	"DISPLAYTITLE":        true,
	"LC":                  true,
	"UC":                  true,
	"LCFIRST":             true,
	"UCFIRST":             true,
	"URLENCODE":           true,
	"ANCHORENCODE":        true,
	"FULLURL":             true,
	"LOCALURL":            true,
	"CANONICALURL":        true,
	"FILEPATH":            true,
	"NS":                  true,
	"NSE":                 true,
	"FORMATNUM":           true,
	"PADLEFT":             true,
	"PADRIGHT":            true,
	"PLURAL":              true,
	"GRAMMAR":             true,
	"GENDER":              true,
	"INT":                 true,
	"MSG":                 true,
	"SUBST":               true,
	"SAFESUBST":           true,
	"PROTECTIONLEVEL":     true,
	"PAGESINCATEGORY":     true,
	"PAGESIZE":            true,
	"TAG":                 true,
	"LANGUAGE":            true,
}

var (
	parserFunctionPattern = regexp.MustCompile(`^(\s*#([a-zA-Z]+):)([\s\S]*)$`)
	assignmentPattern     = regexp.MustCompile(`\s*=\s*`)
)

// kinds that may appear inside a template name, e.g. {{tl{{{1|}}}|p}}
var nameableKinds = map[Kind]bool{
	KindTransclusion:   true,
	KindMagicWord:      true,
	KindParserFunction: true,
	KindParameter:      true,
	KindComment:        true,
}

func (p *parser) transclusions(s string, depth int) string {
	return replaceInnermost(s, "{{", "}}", func(inner string) (string, bool) {
		if inner == "" || inner[0] == '{' || inner[0] == '}' {
			return "", false
		}

		parts := strings.Split(inner, "|")
		n := Node{Kind: KindTransclusion}

		if m := parserFunctionPattern.FindStringSubmatch(parts[0]); m != nil {
			n.Kind = KindParserFunction
			n.Name = m[2]
			n.Children = []NodeID{p.text(m[1])}
			parts = append([]string{m[3]}, parts[1:]...)
		} else {
			if strings.ContainsAny(parts[0], "{}") {
				return "", false
			}
			for _, id := range markedIDs(parts[0]) {
				if id >= len(p.tree.nodes) || !nameableKinds[p.tree.nodes[id].Kind] {
					return "", false
				}
			}

			nameID := p.parse(parts[0], depth+1, modeInline)
			n.Children = []NodeID{nameID}
			n.Name, n.Kind = p.templateName(nameID)
			parts = parts[1:]
		}

		index := 1
		for _, part := range parts {
			n.Children = append(n.Children, p.argument(part, depth, &index))
		}

		return mark(p.add(n)), true
	})
}

// templateName derives the invocation name and decides between a template
// and a magic word
func (p *parser) templateName(id NodeID) (string, Kind) {
	var b strings.Builder
	for _, c := range p.tree.nodes[id].Children {
		if p.tree.nodes[c].Kind == KindComment {
			continue
		}
		b.WriteString(p.tree.Render(c))
	}
	name := strings.TrimLeft(b.String(), " \t\r\n")

	head, tail, hasColon := strings.Cut(name, ":")
	word := strings.ToUpper(strings.TrimSpace(head))
	if needsColon, ok := magicWords[word]; ok && (!needsColon || hasColon) {
		return word, KindMagicWord
	}
	if hasColon && !strings.Contains(head, IncludeMark) {
		return strings.TrimSpace(tail), KindTransclusion
	}
	return strings.TrimSpace(name), KindTransclusion
}

// argument parses one |...| segment of a template invocation into a named
// or positional argument node
func (p *parser) argument(raw string, depth int, index *int) NodeID {
	tail := trailingSpace(raw)
	body := raw[:len(raw)-len(tail)]

	parsed := p.parse(body, depth+1, modeBlock)
	children := p.tree.nodes[parsed].Children

	split := -1
	for i, c := range children {
		kind := p.tree.nodes[c].Kind
		if kind == KindComment {
			continue
		}
		if kind != KindText {
			break
		}
		if strings.Contains(p.tree.nodes[c].Text, "=") {
			split = i
			break
		}
	}

	if split < 0 {
		n := Node{Kind: KindArgument, Children: []NodeID{parsed}, Tail: tail}
		for _, c := range children {
			if p.tree.nodes[c].Kind == KindText && strings.Contains(p.tree.nodes[c].Text, "=") {
				n.Invalid = true
				break
			}
		}
		if !n.Invalid {
			n.Index = *index
			*index++
		}
		return p.add(n)
	}

	text := p.tree.nodes[children[split]].Text
	loc := assignmentPattern.FindStringIndex(text)

	keyChildren := append([]NodeID{}, children[:split]...)
	if loc[0] > 0 {
		keyChildren = append(keyChildren, p.text(text[:loc[0]]))
	}
	var valueChildren []NodeID
	if loc[1] < len(text) {
		valueChildren = append(valueChildren, p.text(text[loc[1]:]))
	}
	valueChildren = append(valueChildren, children[split+1:]...)

	var key strings.Builder
	for _, c := range keyChildren {
		if p.tree.nodes[c].Kind == KindText {
			key.WriteString(p.tree.nodes[c].Text)
		}
	}

	return p.add(Node{
		Kind: KindArgument,
		Children: []NodeID{
			p.add(Node{Kind: KindPlain, Children: keyChildren}),
			p.add(Node{Kind: KindPlain, Children: valueChildren}),
		},
		Key:  strings.TrimSpace(key.String()),
		Sep:  text[loc[0]:loc[1]],
		Tail: tail,
	})
}
