// Package template flattens parsed wikitext template invocations into an
// ordered map of named fields.
package template

import (
	"strings"

	"github.com/ogri-la/liquipedia-aoe-go/src/wikitext"
)

// NotApplicable is the name given to anything that is not a template call
const NotApplicable = "N/A"

// PositionalKey collects positional (unnamed) arguments. The last one wins.
const PositionalKey = "value"

// ValueKind tags the shape of a field value
type ValueKind int

const (
	PlainText ValueKind = iota
	TemplateRef
	List
)

func (k ValueKind) String() string {
	switch k {
	case TemplateRef:
		return "template"
	case List:
		return "list"
	}
	return "text"
}

// Value is one field value. Text is set for PlainText, Node for TemplateRef
// and Items for List.
type Value struct {
	Kind  ValueKind
	Text  string
	Node  wikitext.NodeID
	Items []wikitext.NodeID
}

// Fields is an insertion-ordered map of field name to value
type Fields struct {
	keys   []string
	values map[string]Value
}

// NewFields creates an empty field map
func NewFields() *Fields {
	return &Fields{values: map[string]Value{}}
}

// Set stores a value, keeping the position of an existing key
func (f *Fields) Set(key string, v Value) {
	if _, ok := f.values[key]; !ok {
		f.keys = append(f.keys, key)
	}
	f.values[key] = v
}

// Get returns the value stored under key
func (f *Fields) Get(key string) (Value, bool) {
	v, ok := f.values[key]
	return v, ok
}

// Keys returns field names in first-seen order
func (f *Fields) Keys() []string {
	return f.keys
}

// Len returns the number of fields
func (f *Fields) Len() int {
	return len(f.keys)
}

// Text returns the trimmed text of a plain field, or "" for anything else
func (f *Fields) Text(key string) string {
	v, ok := f.values[key]
	if !ok || v.Kind != PlainText {
		return ""
	}
	return v.Text
}

// Data is a flattened template invocation
type Data struct {
	Name   string
	Fields *Fields
}

// Extract flattens the template node id. Anything else yields a Data named
// NotApplicable with no fields.
func Extract(tree *wikitext.Tree, id wikitext.NodeID) Data {
	data := Data{Name: NotApplicable, Fields: NewFields()}

	n := tree.Node(id)
	if n == nil || !n.Kind.IsTemplate() {
		return data
	}
	data.Name = n.Name

	for _, arg := range tree.Arguments(id) {
		a := tree.Node(arg)
		if a.Kind != wikitext.KindArgument || a.Invalid {
			continue
		}
		key := a.Key
		if key == "" {
			key = PositionalKey
		}
		data.Fields.Set(key, Classify(tree, tree.ArgumentValue(arg)))
	}
	return data
}

// Classify decides the shape of a value node. Whitespace and comments are
// ignored; a value of only text is PlainText, a single template is a
// TemplateRef and any other mix is a List.
func Classify(tree *wikitext.Tree, id wikitext.NodeID) Value {
	items := significant(tree, id)

	allText := true
	for _, c := range items {
		if tree.Node(c).Kind != wikitext.KindText {
			allText = false
			break
		}
	}

	switch {
	case allText:
		return Value{Kind: PlainText, Text: strings.TrimSpace(tree.PlainText(id))}
	case len(items) == 1 && tree.Node(items[0]).Kind.IsTemplate():
		return Value{Kind: TemplateRef, Node: items[0]}
	}
	return Value{Kind: List, Items: items}
}

// significant returns the children of a plain value, dropping comments and
// whitespace-only text
func significant(tree *wikitext.Tree, id wikitext.NodeID) []wikitext.NodeID {
	n := tree.Node(id)
	if n == nil {
		return nil
	}
	if n.Kind != wikitext.KindPlain {
		return []wikitext.NodeID{id}
	}

	var items []wikitext.NodeID
	for _, c := range n.Children {
		child := tree.Node(c)
		switch {
		case child.Kind == wikitext.KindComment:
			continue
		case child.Kind == wikitext.KindText && strings.TrimSpace(child.Text) == "":
			continue
		case child.Kind == wikitext.KindPlain:
			items = append(items, significant(tree, c)...)
		default:
			items = append(items, c)
		}
	}
	return items
}

// ExtractRef flattens the template a field refers to. A missing key or a
// non-template value gives NotApplicable.
func (d Data) ExtractRef(tree *wikitext.Tree, key string) Data {
	v, ok := d.Fields.Get(key)
	if !ok || v.Kind != TemplateRef {
		return Extract(tree, wikitext.NoNode)
	}
	return Extract(tree, v.Node)
}
