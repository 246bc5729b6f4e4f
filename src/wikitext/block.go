package wikitext

import (
	"regexp"
	"strings"
)

var (
	listPrefix         = regexp.MustCompile(`^[*#;:]+`)
	paragraphSeparator = regexp.MustCompile(`(?:[ \t\r]*\n){2,}`)
)

// listBuild is a list under construction; entries hold either an item or a
// nested list
type listBuild struct {
	depth   int
	name    string
	entries []listEntry
}

type listEntry struct {
	open    string
	content string
	nested  *listBuild
}

// lists groups consecutive lines starting with *, #, ; or : into nested
// list nodes. A deeper prefix opens a nested list inside the current one.
func (p *parser) lists(s string, depth int) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	for i := 0; i < len(lines); {
		if !listPrefix.MatchString(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}

		j := i
		for j < len(lines) && listPrefix.MatchString(lines[j]) {
			j++
		}
		out = append(out, mark(p.list(lines[i:j], depth)))
		i = j
	}
	return strings.Join(out, "\n")
}

func (p *parser) list(lines []string, depth int) NodeID {
	first := listPrefix.FindString(lines[0])
	root := &listBuild{depth: len(first), name: first[len(first)-1:]}
	stack := []*listBuild{root}

	for _, line := range lines {
		prefix := listPrefix.FindString(line)
		d := len(prefix)

		for len(stack) > 1 && stack[len(stack)-1].depth > d {
			stack = stack[:len(stack)-1]
		}
		top := stack[len(stack)-1]
		if d > top.depth {
			nested := &listBuild{depth: d, name: prefix[len(prefix)-1:]}
			top.entries = append(top.entries, listEntry{nested: nested})
			stack = append(stack, nested)
			top = nested
		}
		top.entries = append(top.entries, listEntry{open: prefix, content: line[len(prefix):]})
	}

	return p.listNode(root, depth)
}

func (p *parser) listNode(l *listBuild, depth int) NodeID {
	var children []NodeID
	for _, e := range l.entries {
		if e.nested != nil {
			children = append(children, p.listNode(e.nested, depth))
			continue
		}
		children = append(children, p.add(Node{
			Kind:     KindListItem,
			Open:     e.open,
			Children: []NodeID{p.parse(e.content, depth+1, modeInline)},
		}))
	}
	return p.add(Node{Kind: KindList, Name: l.name, Children: children})
}

// preformatted turns runs of lines indented by a single leading space into
// pre blocks. Whitespace-only lines never start a block.
func (p *parser) preformatted(s string, depth int) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))

	isPre := func(line string) bool {
		return strings.HasPrefix(line, " ") && strings.TrimSpace(line) != ""
	}

	for i := 0; i < len(lines); {
		if !isPre(lines[i]) {
			out = append(out, lines[i])
			i++
			continue
		}

		var children []NodeID
		j := i
		for j < len(lines) && isPre(lines[j]) {
			children = append(children, p.parse(lines[j][1:], depth+1, modeInline))
			j++
		}
		out = append(out, mark(p.add(Node{Kind: KindPre, Children: children})))
		i = j
	}
	return strings.Join(out, "\n")
}

// paragraphs splits top-level content on blank lines
func (p *parser) paragraphs(s string) string {
	var b strings.Builder
	last := 0
	for _, loc := range paragraphSeparator.FindAllStringIndex(s, -1) {
		id := p.add(Node{Kind: KindParagraph, Children: []NodeID{p.resolve(s[last:loc[0]])}, Tail: s[loc[0]:loc[1]]})
		b.WriteString(mark(id))
		last = loc[1]
	}
	if last < len(s) {
		b.WriteString(mark(p.add(Node{Kind: KindParagraph, Children: []NodeID{p.resolve(s[last:])}})))
	}
	return b.String()
}
