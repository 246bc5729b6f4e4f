package wikitext

import (
	"regexp"
	"strconv"
	"strings"
)

// DefaultMaxDepth bounds recursive re-parsing of captured fragments
const DefaultMaxDepth = 48

type options struct {
	paragraphs bool
	maxDepth   int
}

// Option configures Parse
type Option func(*options)

// WithParagraphs groups top-level text into paragraph nodes on blank lines
func WithParagraphs() Option {
	return func(o *options) {
		o.paragraphs = true
	}
}

// WithMaxDepth overrides DefaultMaxDepth. Fragments nested deeper than this
// are kept as text.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		if depth > 0 {
			o.maxDepth = depth
		}
	}
}

// mode selects which syntax classes run on a fragment
type mode int

const (
	modeDocument mode = iota // every class, including preformatted lines
	modeBlock                // everything except preformatted lines
	modeInline               // no line-level constructs
)

type parser struct {
	tree *Tree
	opts options
}

// Parse tokenizes wikitext. It never fails: unterminated constructs become
// nodes flagged NoEnd and anything unrecognised stays text.
func Parse(text string, opts ...Option) *Tree {
	o := options{maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(&o)
	}

	p := &parser{tree: &Tree{}, opts: o}
	text = strings.ReplaceAll(text, IncludeMark, IncludeMark+EndMark)
	p.tree.Root = p.parse(text, 0, modeDocument)
	p.tree.link()
	return p.tree
}

func (p *parser) add(n Node) NodeID {
	n.Parent = NoNode
	n.SectionParent = NoNode
	p.tree.nodes = append(p.tree.nodes, n)
	return NodeID(len(p.tree.nodes) - 1)
}

func (p *parser) text(s string) NodeID {
	return p.add(Node{Kind: KindText, Text: s})
}

func (p *parser) node(id NodeID) *Node {
	return &p.tree.nodes[id]
}

func mark(id NodeID) string {
	return IncludeMark + strconv.Itoa(int(id)) + EndMark
}

var leadingPad = regexp.MustCompile(`^(?:[*#;:=\s]|\{\|)`)

// parse runs every syntax class over s in the fixed order and resolves the
// result into a plain node
func (p *parser) parse(s string, depth int, m mode) NodeID {
	if depth > p.opts.maxDepth {
		return p.resolve(s)
	}

	padded := m != modeInline && leadingPad.MatchString(s)
	if padded {
		s = "\n" + s
	}
	s += "\n"

	s = p.extensionTags(s, depth)
	s = p.comments(s)
	s = p.conversions(s, depth)
	s = p.wikilinks(s, depth)
	s = p.externalLinks(s, depth)
	s = p.parameters(s, depth)
	s = p.transclusions(s, depth)
	s = p.htmlTags(s, depth)
	s = p.voidTags(s)
	if m != modeInline {
		s = p.tables(s, depth)
	}
	s = p.switches(s)
	s = p.apostrophes(s, depth)
	if m != modeInline {
		s = p.sections(s, depth)
	}
	s = p.bareURLs(s)
	if m != modeInline {
		s = p.lists(s, depth)
		s = p.horizontalRules(s)
	}
	if m == modeDocument {
		s = p.preformatted(s, depth)
	}

	if padded {
		s = strings.TrimPrefix(s, "\n")
	}
	s = strings.TrimSuffix(s, "\n")

	if m == modeDocument && depth == 0 && p.opts.paragraphs {
		s = p.paragraphs(s)
	}

	return p.resolve(s)
}

// resolve splits s on the placeholder marks and builds a plain node whose
// children are the literal text runs and the referenced nodes
func (p *parser) resolve(s string) NodeID {
	var children []NodeID
	var pending strings.Builder

	flush := func() {
		if pending.Len() > 0 {
			children = append(children, p.text(pending.String()))
			pending.Reset()
		}
	}

	for {
		i := strings.Index(s, IncludeMark)
		if i < 0 {
			pending.WriteString(s)
			break
		}
		pending.WriteString(s[:i])
		rest := s[i+1:]
		j := strings.Index(rest, EndMark)
		if j < 0 {
			pending.WriteString(s[i:])
			break
		}

		index := rest[:j]
		if index == "" {
			// escaped literal NUL
			pending.WriteString(IncludeMark)
		} else if n, ok := atoi(index); ok && n < len(p.tree.nodes) {
			flush()
			children = append(children, NodeID(n))
		} else {
			pending.WriteString(s[i : i+1+j+1])
		}
		s = rest[j+1:]
	}
	flush()

	return p.add(Node{Kind: KindPlain, Children: children})
}

// link sets parent pointers and builds the section outline
func (t *Tree) link() {
	t.sections = nil
	var stack []NodeID

	var visit func(id, parent NodeID)
	visit = func(id, parent NodeID) {
		n := &t.nodes[id]
		n.Parent = parent

		if n.Kind == KindSection {
			for len(stack) > 0 && t.nodes[stack[len(stack)-1]].Level >= n.Level {
				stack = stack[:len(stack)-1]
			}
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				n.SectionParent = top
				t.nodes[top].SectionChildren = append(t.nodes[top].SectionChildren, id)
			}
			stack = append(stack, id)
			t.sections = append(t.sections, id)
		}

		for _, c := range t.nodes[id].Children {
			visit(c, id)
		}
	}
	visit(t.Root, NoNode)
}

// Extension tags

var rawExtensionTags = []string{
	"nowiki", "pre", "math", "chem", "ce", "syntaxhighlight", "source",
	"templatedata", "templatestyles", "score", "timeline", "hiero", "graph",
	"mapframe", "maplink",
}

var parsedExtensionTags = []string{
	"ref", "references", "poem", "gallery", "indicator", "includeonly",
	"noinclude", "onlyinclude", "section", "categorytree", "imagemap",
	"inputbox", "langconvert", "quiz", "charinsert",
}

var (
	extensionOpen     = regexp.MustCompile(`(?i)<(` + strings.Join(append(append([]string{}, rawExtensionTags...), parsedExtensionTags...), "|") + `)(\s(?:[^<>]*[^<>/])?)?>`)
	extensionCloseTag = map[string]*regexp.Regexp{}
)

func init() {
	for _, name := range append(append([]string{}, rawExtensionTags...), parsedExtensionTags...) {
		extensionCloseTag[name] = regexp.MustCompile(`(?i)</` + regexp.QuoteMeta(name) + `(?:\s[^<>]*)?>`)
	}
}

func closeTagPattern(name string) *regexp.Regexp {
	return extensionCloseTag[strings.ToLower(name)]
}

func isRawExtension(name string) bool {
	name = strings.ToLower(name)
	for _, raw := range rawExtensionTags {
		if raw == name {
			return true
		}
	}
	return false
}

func (p *parser) extensionTags(s string, depth int) string {
	pos := 0
	for pos < len(s) {
		m := extensionOpen.FindStringSubmatchIndex(s[pos:])
		if m == nil {
			break
		}
		openStart, openEnd := pos+m[0], pos+m[1]
		name := s[pos+m[2] : pos+m[3]]

		cm := closeTagPattern(name).FindStringIndex(s[openEnd:])
		if cm == nil {
			pos = openEnd
			continue
		}
		closeStart, closeEnd := openEnd+cm[0], openEnd+cm[1]

		inner := s[openEnd:closeStart]
		var content NodeID
		if isRawExtension(name) {
			content = p.resolve(inner)
		} else {
			content = p.parse(inner, depth+1, modeBlock)
		}

		id := p.add(Node{
			Kind:     KindTag,
			Name:     strings.ToLower(name),
			Children: []NodeID{p.resolve(s[openStart:openEnd]), content},
			Close:    s[closeStart:closeEnd],
		})
		replacement := mark(id)
		s = s[:openStart] + replacement + s[closeEnd:]
		pos = openStart + len(replacement)
	}
	return s
}

// Comments

func (p *parser) comments(s string) string {
	pos := 0
	for {
		i := strings.Index(s[pos:], "<!--")
		if i < 0 {
			return s
		}
		start := pos + i
		body := start + len("<!--")

		var id NodeID
		var end int
		if j := strings.Index(s[body:], "-->"); j >= 0 {
			id = p.add(Node{Kind: KindComment, Children: []NodeID{p.resolve(s[body : body+j])}})
			end = body + j + len("-->")
		} else {
			// unterminated: runs to the end, leaving the trailing pad newline
			end = len(s) - 1
			if end < body {
				end = body
			}
			id = p.add(Node{Kind: KindComment, Children: []NodeID{p.resolve(s[body:end])}, NoEnd: true})
		}

		replacement := mark(id)
		s = s[:start] + replacement + s[end:]
		pos = start + len(replacement)
	}
}

// Language conversion

var (
	conversionPattern = regexp.MustCompile(`-\{(|[^{][^\n]*?)\}-`)
	conversionRule    = regexp.MustCompile(`(?:^|;)\s*[a-zA-Z]{2,3}(?:-[a-zA-Z]+)*\s*:`)
)

func (p *parser) conversions(s string, depth int) string {
	return replaceUntilStable(s, conversionPattern, func(g []string) string {
		inner := g[1]
		n := Node{Kind: KindConvert, Children: []NodeID{p.parse(inner, depth+1, modeInline)}}

		rules := inner
		if i := strings.Index(inner, "|"); i >= 0 && !strings.Contains(inner[:i], IncludeMark) {
			n.Name = strings.TrimSpace(inner[:i])
			rules = inner[i+1:]
		}
		n.Unconvertible = !conversionRule.MatchString(rules)

		return mark(p.add(n))
	})
}

// Wikilinks

var linkPattern = regexp.MustCompile(`^((?:&#(?:\d{1,8}|x[\da-fA-F]{1,8});|[^\[\]|{}<>\n#\x{FFFD}])+(?:#(?:-\{[^\[\]{}\n|]+\}-|[^\[\]{}\n|]+)?)?|#[^\[\]{}\n|]+)(?:(\||\{\{\s*!\s*\}\})([\s\S]+))?$`)

func (p *parser) wikilinks(s string, depth int) string {
	return replaceInnermost(s, "[[", "]]", func(inner string) (string, bool) {
		m := linkPattern.FindStringSubmatch(inner)
		if m == nil {
			return "", false
		}

		target := m[1]
		n := Node{Kind: KindLink, Sep: m[2]}
		page, anchor, _ := strings.Cut(target, "#")
		n.Name = strings.TrimSpace(page)
		n.Anchor = anchor

		if strings.Contains(target, IncludeMark) {
			n.Children = []NodeID{p.parse(target, depth+1, modeInline)}
		} else {
			n.Children = []NodeID{p.text(target)}
		}
		if m[2] != "" {
			n.Children = append(n.Children, p.parse(m[3], depth+1, modeInline))
		}

		return mark(p.add(n)), true
	})
}

// External links

var (
	externalLinkPattern = regexp.MustCompile(`(?i)\[((?:https?:|ftps?:)?//[^\s|<>\[\]{}/][^\s|<>\[\]{}]*)(?:([ \t]+)([^\]]*))?\]`)
	urlApostrophes      = regexp.MustCompile(`^(.+?)(''.*)$`)
)

func (p *parser) externalLinks(s string, depth int) string {
	return replaceUntilStable(s, externalLinkPattern, func(g []string) string {
		url, sep, display := g[1], g[2], g[3]
		hasDisplay := sep != "" || display != ""

		if m := urlApostrophes.FindStringSubmatch(url); m != nil {
			url = m[1]
			display = m[2] + sep + display
			sep = ""
			hasDisplay = true
		}

		n := Node{Kind: KindExternalLink, Sep: sep}
		if strings.Contains(url, IncludeMark) {
			n.Children = []NodeID{p.parse(url, depth+1, modeInline)}
		} else {
			n.Children = []NodeID{p.add(Node{Kind: KindURL, Text: url})}
		}
		if hasDisplay {
			n.Children = append(n.Children, p.parse(display, depth+1, modeInline))
		}
		return mark(p.add(n))
	})
}

// Template parameters {{{name|default}}}

func (p *parser) parameters(s string, depth int) string {
	return replaceInnermost(s, "{{{", "}}}", func(inner string) (string, bool) {
		if inner != "" && (inner[0] == '{' || inner[0] == '}') {
			return "", false
		}

		parts := strings.Split(inner, "|")
		n := Node{Kind: KindParameter, Name: strings.TrimSpace(parts[0])}
		for i, part := range parts {
			if i == 0 && !strings.Contains(part, IncludeMark) {
				n.Children = append(n.Children, p.text(part))
				continue
			}
			n.Children = append(n.Children, p.parse(part, depth+1, modeBlock))
		}
		return mark(p.add(n)), true
	})
}
