package wikitext

import (
	"regexp"
	"strings"
)

var (
	switchPattern  = regexp.MustCompile(`__(NOTOC|FORCETOC|TOC|NOEDITSECTION|NEWSECTIONLINK|NONEWSECTIONLINK|NOGALLERY|HIDDENCAT|NOCONTENTCONVERT|NOCC|NOTITLECONVERT|NOTC|INDEX|NOINDEX|STATICREDIRECT|NOGLOBAL)__`)
	bareURLPattern = regexp.MustCompile(`(?i)(^|[^a-z\d_])((?:https?|s?ftp|telnet|ssh)://[^\x00\s|<>\[\]{}/][^\x00\s|<>\[\]{}]*)`)
	hrPattern      = regexp.MustCompile(`(?m)^-{4,}`)
	sectionPostfix = regexp.MustCompile(`(?:[ \t]|\x00\d+\x01)*$`)
	markPattern    = regexp.MustCompile(`\x00\d+\x01`)
)

func (p *parser) switches(s string) string {
	return replaceSubmatchFunc(s, switchPattern, func(g []string) string {
		return mark(p.add(Node{Kind: KindSwitch, Name: g[1]}))
	})
}

// Bold and italic

// apostrophes resolves bold and italic quote runs line by line. An unclosed run covers
// the rest of its line and is flagged NoEnd.
func (p *parser) apostrophes(s string, depth int) string {
	if !strings.Contains(s, "''") {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.Contains(line, "''") {
			lines[i] = p.emphasis(line, depth)
		}
	}
	return strings.Join(lines, "\n")
}

func apostropheRun(s string, from int) (start, length int) {
	i := strings.Index(s[from:], "''")
	if i < 0 {
		return -1, 0
	}
	start = from + i
	end := start
	for end < len(s) && s[end] == '\'' {
		end++
	}
	return start, end - start
}

func (p *parser) emphasis(line string, depth int) string {
	pos := 0
	for {
		start, run := apostropheRun(line, pos)
		if start < 0 {
			return line
		}

		// surplus apostrophes are literal: '''' is ' + ''', more than five
		// leaves the excess in front of a '''''
		n := run
		switch {
		case run == 4:
			n = 3
		case run > 5:
			n = 5
		}
		literal := run - n
		openEnd := start + run

		closeStart := -1
		for from := openEnd; ; {
			cs, cl := apostropheRun(line, from)
			if cs < 0 {
				break
			}
			if cl == n {
				closeStart = cs
				break
			}
			from = cs + cl
		}

		var inner string
		var rest string
		noEnd := closeStart < 0
		if noEnd {
			inner = line[openEnd:]
		} else {
			inner = line[openEnd:closeStart]
			rest = line[closeStart+n:]
		}

		content := p.parse(inner, depth+1, modeInline)
		var id NodeID
		switch n {
		case 2:
			id = p.add(Node{Kind: KindItalic, Children: []NodeID{content}, NoEnd: noEnd})
		case 3:
			id = p.add(Node{Kind: KindBold, Children: []NodeID{content}, NoEnd: noEnd})
		default:
			italic := p.add(Node{Kind: KindItalic, Children: []NodeID{content}, NoEnd: noEnd})
			id = p.add(Node{Kind: KindBold, Children: []NodeID{italic}, NoEnd: noEnd})
		}

		prefix := line[:start] + strings.Repeat("'", literal) + mark(id)
		line = prefix + rest
		pos = len(prefix)
	}
}

// Section headings

func (p *parser) sections(s string, depth int) string {
	if !strings.Contains(s, "=") {
		return s
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if strings.HasPrefix(line, "=") {
			lines[i] = p.section(line, depth)
		}
	}
	return strings.Join(lines, "\n")
}

func (p *parser) section(line string, depth int) string {
	postfix := sectionPostfix.FindString(line)
	// only whitespace and comments may follow the closing marks
	cut := 0
	for _, loc := range markPattern.FindAllStringIndex(postfix, -1) {
		id, _ := atoi(postfix[loc[0]+1 : loc[1]-1])
		if id >= len(p.tree.nodes) || p.tree.nodes[id].Kind != KindComment {
			cut = loc[1]
		}
	}
	postfix = postfix[cut:]
	body := line[:len(line)-len(postfix)]

	lead := len(body) - len(strings.TrimLeft(body, "="))
	trail := len(body) - len(strings.TrimRight(body, "="))
	level := min(lead, trail, 6)
	if level == 0 || len(body) <= 2*level {
		return line
	}

	title := p.parse(body[level:len(body)-level], depth+1, modeInline)
	id := p.add(Node{
		Kind:     KindSection,
		Level:    level,
		Children: []NodeID{title, p.resolve(postfix)},
	})
	p.node(id).Name = strings.TrimSpace(p.tree.PlainText(title))
	return mark(id)
}

func (p *parser) bareURLs(s string) string {
	return replaceSubmatchFunc(s, bareURLPattern, func(g []string) string {
		return g[1] + mark(p.add(Node{Kind: KindURL, Text: g[2]}))
	})
}

func (p *parser) horizontalRules(s string) string {
	return hrPattern.ReplaceAllStringFunc(s, func(rule string) string {
		return mark(p.add(Node{Kind: KindHR, Text: rule}))
	})
}
