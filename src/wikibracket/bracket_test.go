package wikibracket

import (
	"testing"
	"time"

	"github.com/ogri-la/liquipedia-aoe-go/src/wikitext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const playoffsPage = `{{Infobox league|name=Test Cup}}
Some intro text.
<!-- {{Bracket|Bracket/2|R9M1header=Hidden}} -->
==Playoffs==
{{Bracket|Bracket/4|id=abc
|R1M1header=Semifinals ({{abbr/Bo3}})
|R1M1={{Match|bestof=3
|opponent1={{1Opponent|Hera}}
|opponent2={{1Opponent|Liereyy}}
|date=June 28, 2024 - 18:00 {{Abbr/CEST}}
|twitch=redbullgaming
|map1={{Map|map=Arabia|winner=1|civs1=Mongols|civs2=Franks|players1=Hera|players2=Liereyy}}
|map2={{Map|map=Arena|winner=2}}
|map3={{Map|map=Nomad|winner=1}}
}}
|R1M2={{Match|opponent1={{1Opponent|TheViper}}|opponent2={{1Opponent|MbL}}|map1={{Map|map=Arabia|winner=2}}}}
|R2M1header=Final ({{abbr/Bo5}})
|R2M1={{Match|opponent1={{1Opponent|Hera}}|opponent2={{1Opponent|MbL}}}}
}}
==Prize Pool==
{{Prize pool start}}
`

func TestParsePlayoffsSection(t *testing.T) {
	playoffs, err := Parse(playoffsPage)
	require.NoError(t, err)
	require.Len(t, playoffs, 1)

	rounds := playoffs[0].Rounds
	require.Len(t, rounds, 2)

	semis := rounds[0]
	assert.Equal(t, "R1", semis.ID)
	assert.Equal(t, "Semifinals", semis.Name)
	assert.Equal(t, "Bo3", semis.Format)
	require.Len(t, semis.Matches, 2)

	final := rounds[1]
	assert.Equal(t, "R2", final.ID)
	assert.Equal(t, "Final", final.Name)
	assert.Equal(t, "Bo5", final.Format)
	require.Len(t, final.Matches, 1)

	m := semis.Matches[0]
	assert.Equal(t, "3", m.BestOf)
	require.Len(t, m.Participants, 2)
	assert.Equal(t, "Hera", m.Participants[0].Name)
	assert.Equal(t, "Liereyy", m.Participants[1].Name)
	require.Len(t, m.Games, 3)
	assert.Equal(t, "Arabia", m.Games[0].Map)

	require.NotNil(t, m.StartTime)
	assert.Equal(t, time.Date(2024, time.June, 28, 18, 0, 0, 0, time.UTC), *m.StartTime)

	require.Len(t, m.Links, 1)
	assert.Equal(t, "https://www.twitch.tv/redbullgaming", m.Links[0].URL)
	assert.Equal(t, "Twitch", m.Links[0].Text)
	assert.Equal(t, m.Links[0].URL, m.TwitchStream)

	require.Len(t, m.Games[0].Players, 2)
	assert.Equal(t, "Mongols", m.Games[0].Players[0][0].Civilization)
	assert.Equal(t, "Hera", m.Games[0].Players[0][0].Name)
	assert.Equal(t, "Franks", m.Games[0].Players[1][0].Civilization)
	assert.Nil(t, m.Games[1].Players)
}

func TestScoresCountGamesWon(t *testing.T) {
	playoffs, err := Parse(playoffsPage)
	require.NoError(t, err)
	require.Len(t, playoffs, 1)

	for _, round := range playoffs[0].Rounds {
		for _, m := range round.Matches {
			if len(m.Games) == 0 {
				assert.Nil(t, m.Participants[0].Score)
				assert.Nil(t, m.Winner)
				continue
			}
			for side, p := range m.Participants {
				won := 0
				for _, g := range m.Games {
					if g.Winner != nil && *g.Winner == side {
						won++
					}
				}
				require.NotNil(t, p.Score)
				assert.Equal(t, float64(won), p.Score.Value)
			}
		}
	}

	first := playoffs[0].Rounds[0].Matches[0]
	require.NotNil(t, first.Winner)
	assert.Equal(t, 0, *first.Winner)

	second := playoffs[0].Rounds[0].Matches[1]
	require.NotNil(t, second.Winner)
	assert.Equal(t, 1, *second.Winner)
}

func TestParseResultsSection(t *testing.T) {
	page := `==Overview==
Text.
==Results==
{{2SEBracket
|R1M1header=Grand Final
|R1M1={{Match|opponent1=Alpha|opponent2=Beta|map1={{Map|winner=1}}}}
}}
`
	playoffs, err := Parse(page)
	require.NoError(t, err)
	require.Len(t, playoffs, 1)
	require.Len(t, playoffs[0].Rounds, 1)

	round := playoffs[0].Rounds[0]
	assert.Equal(t, "Grand Final", round.Name)
	assert.Equal(t, "", round.Format)
	require.Len(t, round.Matches, 1)
	assert.Equal(t, "Alpha", round.Matches[0].Participants[0].Name)
	assert.Equal(t, "Beta", round.Matches[0].Participants[1].Name)
}

func TestParseStageParameter(t *testing.T) {
	page := `==Main Event==
{{Stage|Knockout Stage}}
{{Bracket|Bracket/2
|R1M1header=Grand Final
|R1M1={{Match|opponent1=Alpha|opponent2=Beta|map1={{Map|winner=2}}}}
}}
`
	for _, strategies := range [][]Strategy{Strategies, {StageParameter}} {
		playoffs, err := ParseWith(page, strategies...)
		require.NoError(t, err)
		require.Len(t, playoffs, 1)
		assert.Equal(t, "Knockout Stage", playoffs[0].Name)
		require.Len(t, playoffs[0].Rounds, 1)
		require.Len(t, playoffs[0].Rounds[0].Matches, 1)

		m := playoffs[0].Rounds[0].Matches[0]
		require.NotNil(t, m.Winner)
		assert.Equal(t, 1, *m.Winner)
	}

	_, err := ParseWith(page, PlayoffsSection, ResultsSection)
	assert.ErrorIs(t, err, ErrNoBracket)
}

func TestParseGroupToggle(t *testing.T) {
	page := `==Playoffs==
{{GroupToggle|title=Upper Stage|win=Hera, MbL
|bracket={{Bracket|Bracket/2
|R1M1header=Final
|R1M1={{Match|opponent1=Hera|opponent2=MbL}}
}}
}}
`
	playoffs, err := Parse(page)
	require.NoError(t, err)
	require.Len(t, playoffs, 1)

	assert.Equal(t, "Upper Stage", playoffs[0].Name)
	require.Len(t, playoffs[0].Advances, 2)
	assert.Equal(t, "Hera", playoffs[0].Advances[0].Name)
	assert.Equal(t, "MbL", playoffs[0].Advances[1].Name)
	require.Len(t, playoffs[0].Rounds, 1)
}

func TestRoundsShareTheirPrefix(t *testing.T) {
	page := `==Playoffs==
{{Bracket|Bracket/4
|R1M1header=Semifinals
|R1M1={{Match|opponent1=A|opponent2=B}}
|R1M2={{Match|opponent1=C|opponent2=D}}
}}
`
	playoffs, err := Parse(page)
	require.NoError(t, err)
	require.Len(t, playoffs, 1)
	require.Len(t, playoffs[0].Rounds, 1)
	assert.Equal(t, "R1", playoffs[0].Rounds[0].ID)
	assert.Len(t, playoffs[0].Rounds[0].Matches, 2)
}

func TestOverflowRound(t *testing.T) {
	page := `==Playoffs==
{{Bracket|Bracket/4
|R1M1header=Semifinals
|R1M1={{Match|opponent1=A|opponent2=B}}
|R2M1header=Final
|R2M1={{Match|opponent1=A|opponent2=C}}
|R2M2header=Third Place Match
|R2M2={{Match|opponent1=B|opponent2=D}}
}}
`
	playoffs, err := Parse(page)
	require.NoError(t, err)
	require.Len(t, playoffs, 1)

	rounds := playoffs[0].Rounds
	require.Len(t, rounds, 3)
	assert.Equal(t, "R1", rounds[0].ID)
	assert.Equal(t, "R2", rounds[1].ID)
	assert.Equal(t, "Final", rounds[1].Name)
	assert.Equal(t, "R2M2", rounds[2].ID)

	require.Len(t, rounds[1].Matches, 1)
	assert.Nil(t, rounds[1].Matches[0].Header)

	require.Len(t, rounds[2].Matches, 1)
	require.NotNil(t, rounds[2].Matches[0].Header)
	assert.Equal(t, "Third Place Match", rounds[2].Matches[0].Header.Name)
}

func TestEveryUnmarkedBracketIsRead(t *testing.T) {
	page := `==Results==
{{Box|start}}
{{2SEBracket
|R1M1header=Upper Final
|R1M1={{Match|opponent1=Alpha|opponent2=Beta|map1={{Map|winner=1}}}}
}}
{{Box|break}}
{{2SEBracket
|R1M1header=Lower Final
|R1M1={{Match|opponent1=Gamma|opponent2=Delta|map1={{Map|winner=2}}}}
}}
{{Box|end}}
`
	playoffs, err := Parse(page)
	require.NoError(t, err)
	require.Len(t, playoffs, 2)
	assert.Equal(t, "Upper Final", playoffs[0].Rounds[0].Name)
	assert.Equal(t, "Lower Final", playoffs[1].Rounds[0].Name)
	assert.Equal(t, "Delta", playoffs[1].Rounds[0].Matches[0].Participants[1].Name)
}

func TestEmptyBracketIsDropped(t *testing.T) {
	page := `==Playoffs==
{{Bracket|Bracket/2
|R1M1header=Final
}}
`
	playoffs, err := Parse(page)
	require.NoError(t, err)
	assert.Empty(t, playoffs)
}

func TestNoBracketSection(t *testing.T) {
	_, err := Parse("just some text\n==Overview==\nmore text")
	assert.ErrorIs(t, err, ErrNoBracket)
}

func TestBlocks(t *testing.T) {
	blocks := Blocks(wikitext.Parse("intro {{A}}\n==One==\n{{B}}\n,\n===Two===\n{{C}}"))
	require.Len(t, blocks, 3)
	assert.Equal(t, "Header", blocks[0].Title)
	assert.Equal(t, "One", blocks[1].Title)
	assert.Len(t, blocks[1].Content, 1)
	assert.Equal(t, "Two", blocks[2].Title)
}

func TestSplitHeader(t *testing.T) {
	var cases = []struct {
		given  string
		name   string
		format string
	}{
		{"Quarterfinals (Bo3)", "Quarterfinals", "Bo3"},
		{"Grand Final", "Grand Final", ""},
		{" Semifinals ( ", "Semifinals", ""},
	}
	for _, c := range cases {
		name, format := splitHeader(c.given)
		if name != c.name || format != c.format {
			t.Errorf("splitHeader(%q) = %q, %q, want %q, %q", c.given, name, format, c.name, c.format)
		}
	}
}

func TestRoundID(t *testing.T) {
	var cases = []struct {
		given    string
		expected string
	}{
		{"R1M1", "R1"},
		{"R12M3", "R12"},
		{"R2M1header", "R2header"},
		{"id", "id"},
	}
	for _, c := range cases {
		if actual := roundID(c.given); actual != c.expected {
			t.Errorf("roundID(%q) = %q, want %q", c.given, actual, c.expected)
		}
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Hera (Mongols)", "MbL"}, splitList("Hera (Mongols), MbL"))
	assert.Equal(t, []string{"a", "b"}, splitList("a,,b,"))
	assert.Nil(t, splitList("  "))
}
