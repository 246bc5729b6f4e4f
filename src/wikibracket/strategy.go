package wikibracket

import (
	"strings"

	"github.com/ogri-la/liquipedia-aoe-go/src/template"
	"github.com/ogri-la/liquipedia-aoe-go/src/wikitext"
)

// Strategy locates the content holding a page's brackets
type Strategy struct {
	Name   string
	Locate func(tree *wikitext.Tree, blocks []Block) ([]wikitext.NodeID, bool)
}

// StageNames are the Stage values that mark a bracket stage
var StageNames = []string{"Results", "Playoffs", "Knockout Stage"}

var (
	// PlayoffsSection picks the block titled "Playoffs"
	PlayoffsSection = Strategy{Name: "playoffs-section", Locate: titled("Playoffs")}

	// ResultsSection picks the block titled "Results"
	ResultsSection = Strategy{Name: "results-section", Locate: titled("Results")}

	// StageParameter picks the first block carrying a bracket stage marker,
	// starting from the marker itself
	StageParameter = Strategy{Name: "stage-parameter", Locate: staged}
)

// Strategies are tried in this order
var Strategies = []Strategy{PlayoffsSection, ResultsSection, StageParameter}

func titled(title string) func(*wikitext.Tree, []Block) ([]wikitext.NodeID, bool) {
	return func(_ *wikitext.Tree, blocks []Block) ([]wikitext.NodeID, bool) {
		for _, b := range blocks {
			if strings.EqualFold(strings.TrimSpace(b.Title), title) {
				return b.Content, true
			}
		}
		return nil, false
	}
}

func staged(tree *wikitext.Tree, blocks []Block) ([]wikitext.NodeID, bool) {
	for _, b := range blocks {
		for i, id := range b.Content {
			found := false
			tree.Walk(id, func(node wikitext.NodeID, n *wikitext.Node) bool {
				if !found && n.Kind.IsTemplate() {
					found = stageMarker(template.Extract(tree, node))
				}
				return !found
			})
			if found {
				return b.Content[i:], true
			}
		}
	}
	return nil, false
}

// stageMarker is true for a {{Stage|Playoffs}} heading or any template with
// a stage parameter naming a bracket stage
func stageMarker(data template.Data) bool {
	return isStageName(stageName(data))
}

func stageName(data template.Data) string {
	if strings.EqualFold(data.Name, "Stage") {
		if v := data.Fields.Text(template.PositionalKey); v != "" {
			return v
		}
	}
	for _, key := range data.Fields.Keys() {
		if strings.EqualFold(key, "stage") {
			return data.Fields.Text(key)
		}
	}
	return ""
}

func isStageName(name string) bool {
	for _, s := range StageNames {
		if strings.EqualFold(strings.TrimSpace(name), s) {
			return true
		}
	}
	return false
}
