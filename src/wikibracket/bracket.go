// Package wikibracket rebuilds playoff brackets from a tournament page's raw
// wikitext. It is the fallback for pages whose rendered HTML carries no
// bracket widget.
package wikibracket

import (
	"errors"
	"log/slog"
	"regexp"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/ogri-la/liquipedia-aoe-go/src/template"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
	"github.com/ogri-la/liquipedia-aoe-go/src/wikitext"
)

// ErrNoBracket is returned when no strategy locates a bracket section
var ErrNoBracket = errors.New("no bracket section found")

var (
	commentPattern = regexp.MustCompile(`(?s)<!--.*?-->`)
	matchPart      = regexp.MustCompile(`M(\d+)`)
	roundPart      = regexp.MustCompile(`^R(\d+)`)
	opponentKey    = regexp.MustCompile(`^opponent\d+$`)
	gameKey        = regexp.MustCompile(`^map\d+$`)
)

// Block is a section of the page: a heading and everything up to the next one
type Block struct {
	Title   string
	Content []wikitext.NodeID
}

// Parse locates the bracket section with each of the default strategies in
// turn and folds every bracket found there into a Playoff
func Parse(source string) ([]types.Playoff, error) {
	return ParseWith(source, Strategies...)
}

// ParseWith is Parse with an explicit list of strategies. The first strategy
// whose section yields a bracket wins. A located section that yields nothing
// gives an empty result, and ErrNoBracket is returned when no strategy
// locates anything.
func ParseWith(source string, strategies ...Strategy) ([]types.Playoff, error) {
	tree := wikitext.Parse(commentPattern.ReplaceAllString(source, ""))
	blocks := Blocks(tree)

	located := false
	for _, strategy := range strategies {
		content, ok := strategy.Locate(tree, blocks)
		if !ok {
			continue
		}
		located = true

		playoffs := collect(tree, content)
		slog.Debug("bracket section located", "strategy", strategy.Name, "brackets", len(playoffs))
		if len(playoffs) > 0 {
			return playoffs, nil
		}
	}

	if !located {
		return nil, ErrNoBracket
	}
	return []types.Playoff{}, nil
}

// Blocks splits the top level of the page on its section headings. Anything
// before the first heading lands in a block titled "Header".
func Blocks(tree *wikitext.Tree) []Block {
	blocks := []Block{{Title: "Header"}}
	for _, id := range items(tree, tree.Root) {
		n := tree.Node(id)
		if n.Kind == wikitext.KindSection {
			blocks = append(blocks, Block{Title: n.Name})
			continue
		}
		last := &blocks[len(blocks)-1]
		last.Content = append(last.Content, id)
	}
	return blocks
}

// items returns the significant nodes under a plain node, descending into
// nested plain nodes. Comments, blank text and stray separators are dropped.
func items(tree *wikitext.Tree, id wikitext.NodeID) []wikitext.NodeID {
	n := tree.Node(id)
	if n == nil {
		return nil
	}
	var out []wikitext.NodeID
	for _, c := range n.Children {
		child := tree.Node(c)
		switch child.Kind {
		case wikitext.KindPlain:
			out = append(out, items(tree, c)...)
		case wikitext.KindComment:
		case wikitext.KindText:
			if !filler(child.Text) {
				out = append(out, c)
			}
		default:
			out = append(out, c)
		}
	}
	return out
}

func filler(text string) bool {
	switch strings.TrimSpace(text) {
	case "", "'''", ",":
		return true
	}
	return false
}

// collect scans content for bracket markers and folds each bracket they point
// at. Without any marker every template carrying match fields is a bracket,
// falling back to the first template.
func collect(tree *wikitext.Tree, content []wikitext.NodeID) []types.Playoff {
	playoffs := []types.Playoff{}
	marked := false

	add := func(p types.Playoff, id wikitext.NodeID) {
		p.Rounds = fold(tree, template.Extract(tree, id))
		if len(p.Rounds) > 0 {
			playoffs = append(playoffs, p)
		}
	}

	for i := 0; i < len(content); i++ {
		id := content[i]
		n := tree.Node(id)
		if !n.Kind.IsTemplate() {
			continue
		}
		data := template.Extract(tree, id)

		switch {
		case strings.EqualFold(data.Name, "GroupToggle"):
			marked = true
			inner, ok := data.Fields.Get("bracket")
			if !ok || inner.Kind != template.TemplateRef {
				continue
			}
			add(types.Playoff{
				Name:     firstText(data.Fields, "title", "name"),
				Advances: advances(tree, data),
			}, inner.Node)

		case strings.EqualFold(data.Name, "Bracket"):
			marked = true
			if hasBracketFields(data) {
				add(types.Playoff{}, id)
				continue
			}
			if next, ok := nextTemplate(tree, content, i); ok {
				add(types.Playoff{}, content[next])
				i = next
			}

		case stageMarker(data):
			marked = true
			if next, ok := nextTemplate(tree, content, i); ok {
				add(types.Playoff{Name: stageName(data)}, content[next])
				i = next
			}
		}
	}

	if !marked {
		first := -1
		for i, id := range content {
			if !tree.Node(id).Kind.IsTemplate() {
				continue
			}
			if first < 0 {
				first = i
			}
			if hasBracketFields(template.Extract(tree, id)) {
				add(types.Playoff{}, id)
			}
		}
		if len(playoffs) == 0 && first >= 0 {
			add(types.Playoff{}, content[first])
		}
	}
	return playoffs
}

// nextTemplate finds the first template after position i
func nextTemplate(tree *wikitext.Tree, content []wikitext.NodeID, i int) (int, bool) {
	for j := i + 1; j < len(content); j++ {
		if tree.Node(content[j]).Kind.IsTemplate() {
			return j, true
		}
	}
	return 0, false
}

// hasBracketFields is true for a Bracket call that carries its own matches
func hasBracketFields(data template.Data) bool {
	for _, key := range data.Fields.Keys() {
		if strings.Contains(key, "header") || matchPart.MatchString(key) {
			return true
		}
	}
	return false
}

func firstText(fields *template.Fields, keys ...string) string {
	for _, key := range keys {
		if text := fields.Text(key); text != "" {
			return text
		}
	}
	return ""
}

// advances reads the win/advance lists of a GroupToggle
func advances(tree *wikitext.Tree, data template.Data) []types.EventParticipant {
	var out []types.EventParticipant
	for _, key := range data.Fields.Keys() {
		if !strings.HasPrefix(key, "win") && !strings.HasPrefix(key, "advance") {
			continue
		}
		v, _ := data.Fields.Get(key)
		switch v.Kind {
		case template.PlainText:
			for _, name := range splitList(v.Text) {
				out = append(out, types.EventParticipant{Name: name})
			}
		case template.TemplateRef:
			if name := opponentName(tree, v); name != "" {
				out = append(out, types.EventParticipant{Name: name})
			}
		case template.List:
			for _, item := range v.Items {
				if tree.Node(item).Kind.IsTemplate() {
					if name := opponentName(tree, template.Value{Kind: template.TemplateRef, Node: item}); name != "" {
						out = append(out, types.EventParticipant{Name: name})
					}
					continue
				}
				for _, name := range splitList(tree.PlainText(item)) {
					out = append(out, types.EventParticipant{Name: name})
				}
			}
		}
	}
	return out
}

// overflow is a synthetic round opened by a repeated or out of order header
type overflow struct {
	id     string
	prefix string
	start  int
	header types.MatchHeader
}

// folder accumulates rounds while walking a bracket's fields
type folder struct {
	tree      *wikitext.Tree
	rounds    []types.PlayoffRound
	overflows []overflow
	last      int
}

// fold turns the fields of a bracket template into rounds. Empty rounds are
// dropped.
func fold(tree *wikitext.Tree, data template.Data) []types.PlayoffRound {
	f := &folder{tree: tree}
	for _, key := range data.Fields.Keys() {
		if key == "id" || key == template.PositionalKey {
			continue
		}
		v, _ := data.Fields.Get(key)
		switch {
		case strings.Contains(key, "header"):
			f.header(key, v)
		case matchPart.MatchString(key) && v.Kind == template.TemplateRef:
			f.match(key, data.ExtractRef(tree, key))
		default:
			continue
		}
		sort.SliceStable(f.rounds, func(i, j int) bool {
			return f.rounds[i].ID < f.rounds[j].ID
		})
	}

	return slices.DeleteFunc(f.rounds, func(r types.PlayoffRound) bool {
		return len(r.Matches) == 0
	})
}

func (f *folder) find(id string) int {
	return slices.IndexFunc(f.rounds, func(r types.PlayoffRound) bool {
		return r.ID == id
	})
}

// roundID strips the first match index from a field key, R2M3 gives R2
func roundID(key string) string {
	loc := matchPart.FindStringIndex(key)
	if loc == nil {
		return key
	}
	return key[:loc[0]] + key[loc[1]:]
}

func roundNumber(id string) int {
	m := roundPart.FindStringSubmatch(id)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

func matchNumber(key string) int {
	m := matchPart.FindStringSubmatch(key)
	if m == nil {
		return 0
	}
	n, _ := strconv.Atoi(m[1])
	return n
}

// header opens a round. A round id that was already seen, or that is lower
// than the previous header's, opens a synthetic round keyed by the full match
// id instead.
func (f *folder) header(key string, v template.Value) {
	base := strings.Replace(key, "header", "", 1)
	id := roundID(base)
	number := roundNumber(id)
	name, format := headerText(f.tree, v)

	if f.find(id) >= 0 || number < f.last {
		synthetic := base
		for n := 2; f.find(synthetic) >= 0; n++ {
			synthetic = base + "-" + strconv.Itoa(n)
		}
		f.overflows = append(f.overflows, overflow{
			id:     synthetic,
			prefix: id,
			start:  matchNumber(base),
			header: types.MatchHeader{Name: name, Format: format},
		})
		f.rounds = append(f.rounds, types.PlayoffRound{
			ID:      synthetic,
			Name:    name,
			Format:  format,
			Matches: []types.PlayoffMatch{},
		})
	} else {
		f.rounds = append(f.rounds, types.PlayoffRound{
			ID:      id,
			Name:    name,
			Format:  format,
			Matches: []types.PlayoffMatch{},
		})
	}
	f.last = number
}

// match appends a match to the round sharing its prefix. Matches at or past
// the start of an overflow round go there; a match without any header opens
// an unnamed round.
func (f *folder) match(key string, data template.Data) {
	id := roundID(key)
	number := matchNumber(key)

	var extra *types.MatchHeader
	best := -1
	for i, o := range f.overflows {
		if o.prefix == id && o.start <= number && (best < 0 || o.start > f.overflows[best].start) {
			best = i
		}
	}
	if best >= 0 {
		id = f.overflows[best].id
		h := f.overflows[best].header
		extra = &h
	}

	idx := f.find(id)
	if idx < 0 {
		f.rounds = append(f.rounds, types.PlayoffRound{ID: id, Name: id, Matches: []types.PlayoffMatch{}})
		idx = len(f.rounds) - 1
	}

	m := parseMatch(f.tree, data)
	m.Header = extra
	f.rounds[idx].Matches = append(f.rounds[idx].Matches, m)
}

// headerText reads a round name and format from a header value such as
// "Quarterfinals ({{abbr/Bo3}})"
func headerText(tree *wikitext.Tree, v template.Value) (string, string) {
	switch v.Kind {
	case template.PlainText:
		return splitHeader(v.Text)
	case template.TemplateRef:
		return "", formatName(tree.Node(v.Node).Name)
	}

	var text strings.Builder
	format := ""
	for _, item := range v.Items {
		n := tree.Node(item)
		if n.Kind.IsTemplate() {
			if format == "" {
				format = formatName(n.Name)
			}
			continue
		}
		text.WriteString(tree.PlainText(item))
	}
	name, inline := splitHeader(text.String())
	if format == "" {
		format = inline
	}
	return name, format
}

func splitHeader(text string) (string, string) {
	text = strings.TrimSpace(text)
	i := strings.Index(text, "(")
	if i < 0 {
		return text, ""
	}
	format := strings.TrimSpace(strings.Trim(strings.TrimSpace(text[i:]), "()"))
	return strings.TrimSpace(text[:i]), format
}

func formatName(name string) string {
	if len(name) > 5 && strings.EqualFold(name[:5], "abbr/") {
		return name[5:]
	}
	return name
}
