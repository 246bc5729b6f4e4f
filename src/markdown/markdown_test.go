package markdown

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"empty", "", ""},
		{"whitespace", "  \n ", ""},
		{"paragraph", "<p>Hello <b>world</b></p>", "Hello **world**"},
		{"list", "<ul><li>Bo3</li><li>Bo5</li></ul>", "- Bo3\n- Bo5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Convert(tt.html))
		})
	}
}

func TestSelection(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`<div><p>First <i>para</i></p><p>Second</p></div>`))
	require.NoError(t, err)

	assert.Equal(t, "First _para_", Selection(doc.Find("p")))
	assert.Equal(t, "", Selection(doc.Find(".missing")))
	assert.Equal(t, "", Selection(nil))
}
