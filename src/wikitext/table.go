package wikitext

import (
	"regexp"
	"strings"
)

var (
	dataCellSeparator   = regexp.MustCompile(`\|\|`)
	headerCellSeparator = regexp.MustCompile(`!!|\|\|`)
)

// tableItem collects raw table structure before nodes are created
type tableItem struct {
	kind  Kind
	open  string
	attrs string
	body  string
	items []*tableItem
}

// tables replaces innermost {| ... |} blocks. Each table must start and end
// at the beginning of a line.
func (p *parser) tables(s string, depth int) string {
	return replaceInnermost(s, "\n{|", "\n|}", func(inner string) (string, bool) {
		return "\n" + mark(p.table(inner, depth)), true
	})
}

func (p *parser) table(inner string, depth int) NodeID {
	attrs, rest, _ := strings.Cut(inner, "\n")

	var top []*tableItem
	var row *tableItem
	var cell *tableItem

	appendItem := func(item *tableItem) {
		if row != nil {
			row.items = append(row.items, item)
		} else {
			top = append(top, item)
		}
	}

	if rest != "" || strings.Contains(inner, "\n") {
		for _, line := range strings.Split(rest, "\n") {
			trimmed := strings.TrimLeft(line, " \t")
			indent := line[:len(line)-len(trimmed)]

			switch {
			case strings.HasPrefix(trimmed, "|-"):
				row = &tableItem{kind: KindTableRow, open: "\n" + line}
				top = append(top, row)
				cell = nil

			case strings.HasPrefix(trimmed, "|+"):
				row = nil
				cell = tableCell(KindTableCaption, "\n"+indent+"|+", trimmed[2:])
				top = append(top, cell)

			case strings.HasPrefix(trimmed, "|"), strings.HasPrefix(trimmed, "!"):
				kind, separator := KindTableCell, dataCellSeparator
				if trimmed[0] == '!' {
					kind, separator = KindTableHeader, headerCellSeparator
				}
				if row == nil {
					row = &tableItem{kind: KindTableRow}
					top = append(top, row)
				}

				content := trimmed[1:]
				open := "\n" + indent + trimmed[:1]
				last := 0
				for _, loc := range separator.FindAllStringIndex(content, -1) {
					cell = tableCell(kind, open, content[last:loc[0]])
					row.items = append(row.items, cell)
					open = content[loc[0]:loc[1]]
					last = loc[1]
				}
				cell = tableCell(kind, open, content[last:])
				row.items = append(row.items, cell)

			default:
				if cell != nil {
					cell.body += "\n" + line
				} else {
					appendItem(&tableItem{kind: KindPlain, body: "\n" + line})
				}
			}
		}
	}

	children := []NodeID{p.resolve(attrs)}
	for _, item := range top {
		children = append(children, p.tableNode(item, depth))
	}

	return p.add(Node{Kind: KindTable, Children: children, Close: "\n|}"})
}

// tableCell splits cell attributes from content on the first single pipe
func tableCell(kind Kind, open, text string) *tableItem {
	item := &tableItem{kind: kind, open: open, body: text}
	if i := strings.Index(text, "|"); i >= 0 {
		item.attrs = text[:i+1]
		item.body = text[i+1:]
	}
	return item
}

func (p *parser) tableNode(item *tableItem, depth int) NodeID {
	switch item.kind {
	case KindTableRow:
		children := []NodeID{p.resolve(item.open)}
		for _, c := range item.items {
			children = append(children, p.tableNode(c, depth))
		}
		return p.add(Node{Kind: KindTableRow, Children: children})

	case KindTableCell, KindTableHeader, KindTableCaption:
		return p.add(Node{
			Kind: item.kind,
			Open: item.open,
			Children: []NodeID{
				p.resolve(item.attrs),
				p.parse(item.body, depth+1, modeBlock),
			},
		})
	}
	return p.parse(item.body, depth+1, modeBlock)
}
