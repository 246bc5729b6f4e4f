// Package wikitext tokenizes MediaWiki markup into a tree of typed nodes.
//
// Parsing works by placeholder substitution: the innermost instance of each
// construct is turned into a node, stored in the tree's arena and replaced in
// the working text by IncludeMark + index + EndMark. Once every syntax class
// has been applied, the remaining text is split on the marks and the node tree
// is assembled. Rendering a tree with String gives back the original markup.
package wikitext

import (
	"regexp"
	"strings"
)

// Placeholder sentinels. NUL characters already present in the input are
// escaped as IncludeMark+EndMark.
const (
	IncludeMark = "\x00"
	EndMark     = "\x01"
)

// Kind identifies the syntax construct a node represents
type Kind int

const (
	KindPlain Kind = iota
	KindText
	KindComment
	KindConvert
	KindLink
	KindExternalLink
	KindURL
	KindParameter
	KindTransclusion
	KindMagicWord
	KindParserFunction
	KindArgument
	KindTag
	KindTagSingle
	KindTable
	KindTableRow
	KindTableCell
	KindTableHeader
	KindTableCaption
	KindSwitch
	KindBold
	KindItalic
	KindSection
	KindList
	KindListItem
	KindHR
	KindPre
	KindParagraph
)

var kindNames = map[Kind]string{
	KindPlain:          "plain",
	KindText:           "text",
	KindComment:        "comment",
	KindConvert:        "convert",
	KindLink:           "link",
	KindExternalLink:   "external_link",
	KindURL:            "url",
	KindParameter:      "parameter",
	KindTransclusion:   "transclusion",
	KindMagicWord:      "magic_word",
	KindParserFunction: "parser_function",
	KindArgument:       "argument",
	KindTag:            "tag",
	KindTagSingle:      "tag_single",
	KindTable:          "table",
	KindTableRow:       "table_row",
	KindTableCell:      "table_cell",
	KindTableHeader:    "table_header",
	KindTableCaption:   "table_caption",
	KindSwitch:         "switch",
	KindBold:           "bold",
	KindItalic:         "italic",
	KindSection:        "section_title",
	KindList:           "list",
	KindListItem:       "list_item",
	KindHR:             "hr",
	KindPre:            "pre",
	KindParagraph:      "paragraph",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// IsTemplate reports whether nodes of this kind are {{...}} invocations
func (k Kind) IsTemplate() bool {
	return k == KindTransclusion || k == KindMagicWord || k == KindParserFunction
}

// NodeID indexes a node in its tree's arena
type NodeID int

// NoNode marks an absent parent or section link
const NoNode NodeID = -1

// Node is one element of the tagged union. Which fields are meaningful
// depends on Kind; Children always hold the sub-structure in render order.
type Node struct {
	Kind     Kind
	Children []NodeID
	Parent   NodeID

	// Text is the literal content of text, url, hr and switch nodes.
	Text string
	// Name is the template, tag, parameter, switch or list-type name, the
	// link page, or the section title.
	Name   string
	Anchor string

	// Key and Index identify template arguments: Key for named arguments,
	// Index (1-based) for positional ones.
	Key   string
	Index int

	// Open, Sep, Close and Tail hold raw delimiters that are needed to
	// reproduce the source exactly.
	Open  string
	Sep   string
	Close string
	Tail  string

	Level int

	NoEnd         bool
	Unconvertible bool
	Invalid       bool

	SectionParent   NodeID
	SectionChildren []NodeID
}

// Tree owns every node produced by one Parse call
type Tree struct {
	nodes    []Node
	sections []NodeID
	Root     NodeID
}

// Node returns the node stored under id
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		return nil
	}
	return &t.nodes[id]
}

// Len returns the arena size
func (t *Tree) Len() int {
	return len(t.nodes)
}

// Children returns the child ids of id
func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.Children
	}
	return nil
}

// Sections returns every section heading in document order
func (t *Tree) Sections() []NodeID {
	return t.sections
}

// Arguments returns the argument nodes of a template invocation
func (t *Tree) Arguments(id NodeID) []NodeID {
	n := t.Node(id)
	if n == nil || !n.Kind.IsTemplate() || len(n.Children) < 2 {
		return nil
	}
	return n.Children[1:]
}

// ArgumentValue returns the value node of an argument
func (t *Tree) ArgumentValue(id NodeID) NodeID {
	n := t.Node(id)
	if n == nil || n.Kind != KindArgument || len(n.Children) == 0 {
		return NoNode
	}
	return n.Children[len(n.Children)-1]
}

// Walk visits id and its descendants in pre-order. Returning false from fn
// skips the node's children.
func (t *Tree) Walk(id NodeID, fn func(id NodeID, n *Node) bool) {
	n := t.Node(id)
	if n == nil {
		return
	}
	if !fn(id, n) {
		return
	}
	for _, c := range n.Children {
		t.Walk(c, fn)
	}
}

// String reconstructs the markup of the whole tree
func (t *Tree) String() string {
	return t.Render(t.Root)
}

// Render reconstructs the markup of a single node
func (t *Tree) Render(id NodeID) string {
	var b strings.Builder
	t.render(&b, id)
	return b.String()
}

func (t *Tree) render(b *strings.Builder, id NodeID) {
	n := t.Node(id)
	if n == nil {
		return
	}

	switch n.Kind {
	case KindText, KindURL, KindHR:
		b.WriteString(n.Text)

	case KindComment:
		b.WriteString("<!--")
		t.renderAll(b, n.Children)
		if !n.NoEnd {
			b.WriteString("-->")
		}

	case KindConvert:
		b.WriteString("-{")
		t.renderAll(b, n.Children)
		b.WriteString("}-")

	case KindLink:
		b.WriteString("[[")
		t.render(b, n.Children[0])
		if len(n.Children) > 1 {
			b.WriteString(n.Sep)
			t.render(b, n.Children[1])
		}
		b.WriteString("]]")

	case KindExternalLink:
		b.WriteString("[")
		t.render(b, n.Children[0])
		if len(n.Children) > 1 {
			b.WriteString(n.Sep)
			t.render(b, n.Children[1])
		}
		b.WriteString("]")

	case KindParameter:
		b.WriteString("{{{")
		t.renderJoined(b, n.Children, "|")
		b.WriteString("}}}")

	case KindTransclusion, KindMagicWord:
		b.WriteString("{{")
		t.renderJoined(b, n.Children, "|")
		b.WriteString("}}")

	case KindParserFunction:
		b.WriteString("{{")
		t.render(b, n.Children[0])
		t.renderJoined(b, n.Children[1:], "|")
		b.WriteString("}}")

	case KindArgument:
		t.render(b, n.Children[0])
		if len(n.Children) > 1 {
			b.WriteString(n.Sep)
			t.render(b, n.Children[1])
		}
		b.WriteString(n.Tail)

	case KindTag:
		t.renderAll(b, n.Children)
		if !n.NoEnd {
			b.WriteString(n.Close)
		}

	case KindTagSingle:
		t.renderAll(b, n.Children)

	case KindTable:
		b.WriteString("{|")
		t.renderAll(b, n.Children)
		b.WriteString(n.Close)

	case KindTableCell, KindTableHeader, KindTableCaption:
		b.WriteString(n.Open)
		t.renderAll(b, n.Children)

	case KindSwitch:
		b.WriteString("__" + n.Name + "__")

	case KindBold:
		b.WriteString("'''")
		t.renderAll(b, n.Children)
		if !n.NoEnd {
			b.WriteString("'''")
		}

	case KindItalic:
		b.WriteString("''")
		t.renderAll(b, n.Children)
		if !n.NoEnd {
			b.WriteString("''")
		}

	case KindSection:
		marks := strings.Repeat("=", n.Level)
		b.WriteString(marks)
		t.render(b, n.Children[0])
		b.WriteString(marks)
		if len(n.Children) > 1 {
			t.render(b, n.Children[1])
		}

	case KindList:
		t.renderJoined(b, n.Children, "\n")

	case KindListItem:
		b.WriteString(n.Open)
		t.renderAll(b, n.Children)

	case KindPre:
		b.WriteString(" ")
		t.renderJoined(b, n.Children, "\n ")

	case KindParagraph:
		t.renderAll(b, n.Children)
		b.WriteString(n.Tail)

	default:
		t.renderAll(b, n.Children)
	}
}

func (t *Tree) renderAll(b *strings.Builder, ids []NodeID) {
	for _, id := range ids {
		t.render(b, id)
	}
}

func (t *Tree) renderJoined(b *strings.Builder, ids []NodeID, sep string) {
	for i, id := range ids {
		if i > 0 {
			b.WriteString(sep)
		}
		t.render(b, id)
	}
}

// PlainText returns the readable text of a node: comments, templates and
// markup delimiters are dropped, link display text is preferred over the
// target page.
func (t *Tree) PlainText(id NodeID) string {
	var b strings.Builder
	t.plain(&b, id)
	return b.String()
}

func (t *Tree) plain(b *strings.Builder, id NodeID) {
	n := t.Node(id)
	if n == nil {
		return
	}

	switch n.Kind {
	case KindText, KindURL:
		b.WriteString(n.Text)
	case KindComment, KindTransclusion, KindMagicWord, KindParserFunction,
		KindParameter, KindSwitch, KindTagSingle, KindHR:
		// no readable text
	case KindLink, KindExternalLink:
		if len(n.Children) > 1 {
			t.plain(b, n.Children[1])
		} else if n.Kind == KindLink {
			b.WriteString(n.Name)
		} else {
			t.plain(b, n.Children[0])
		}
	case KindTag:
		if len(n.Children) > 1 {
			t.plain(b, n.Children[1])
		}
	case KindArgument:
		t.plain(b, n.Children[len(n.Children)-1])
	case KindSection:
		t.plain(b, n.Children[0])
	case KindTableCell, KindTableHeader, KindTableCaption:
		t.plain(b, n.Children[len(n.Children)-1])
	case KindTableRow:
		for _, c := range n.Children[1:] {
			t.plain(b, c)
		}
	case KindTable:
		for _, c := range n.Children[1:] {
			t.plain(b, c)
		}
	case KindList:
		for i, c := range n.Children {
			if i > 0 {
				b.WriteString("\n")
			}
			t.plain(b, c)
		}
	default:
		for _, c := range n.Children {
			t.plain(b, c)
		}
	}
}

var attrPattern = regexp.MustCompile(`([\w:.-]+)\s*=\s*("[^"]*"|'[^']*'|[^\s"'>/]+)`)

// Attr returns an attribute of a tag node
func (t *Tree) Attr(id NodeID, name string) (string, bool) {
	n := t.Node(id)
	if n == nil || (n.Kind != KindTag && n.Kind != KindTagSingle) || len(n.Children) == 0 {
		return "", false
	}
	open := t.Render(n.Children[0])
	for _, m := range attrPattern.FindAllStringSubmatch(open, -1) {
		if strings.EqualFold(m[1], name) {
			return strings.Trim(m[2], `"'`), true
		}
	}
	return "", false
}
