package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gosimple/slug"
	"github.com/ogri-la/liquipedia-aoe-go/src/aoe"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFetcher serves pages and markup from maps
type stubFetcher struct {
	pages    map[string]string
	wikitext map[string]string
}

func (s stubFetcher) Page(ctx context.Context, title string) (aoe.Page, error) {
	if html, ok := s.pages[title]; ok {
		return aoe.Page{Title: title, HTML: html}, nil
	}
	return aoe.Page{}, errors.New("no such page: " + title)
}

func (s stubFetcher) Wikitext(ctx context.Context, title string) (string, error) {
	if source, ok := s.wikitext[title]; ok {
		return source, nil
	}
	return "", errors.New("no such page: " + title)
}

func (s stubFetcher) Extract(ctx context.Context, title string) (string, error) {
	return "", errors.New("no extracts")
}

const heroesPortal = `<div class="halfbox"><ul><li><a href="/ageofempires/Britons" title="Britons"><img src="/commons/images/britons.png"></a></li></ul></div>`

const categoryPage = `<div class="mw-heading mw-heading3"><h3 id="Upcoming">Upcoming</h3></div>
<div class="gridTable tournamentCard"><div class="gridRow">
<div class="gridCell Tier Header">S-Tier</div>
<div class="gridCell Tournament Header"><a href="/ageofempires/Warlords/3" title="Warlords/3">Warlords 3</a></div>
<div class="gridCell EventDetails Date Header">Jun 1 - 3, 2024</div>
<div class="gridCell EventDetails PlayerNumber Header">8</div>
</div></div>`

func newHandler(stdout *bytes.Buffer) *CommandHandler {
	fetcher := stubFetcher{
		pages: map[string]string{
			"Portal:Heroes":         heroesPortal,
			string(types.Age2TierS): categoryPage,
		},
		wikitext: map[string]string{
			"Warlords/3": "==Playoffs==\n{{Bracket|Bracket/2\n|R1M1header=Final\n|R1M1={{Match|opponent1=Hera|opponent2=TheViper}}\n}}",
		},
	}
	return NewCommandHandler(fetcher, 1, stdout)
}

func TestRunToStdout(t *testing.T) {
	var stdout bytes.Buffer
	err := newHandler(&stdout).Run(context.Background(), &Flags{SubCommand: HeroesSubCommand})
	require.NoError(t, err)

	var heroes []types.Hero
	require.NoError(t, json.Unmarshal(stdout.Bytes(), &heroes))
	require.Len(t, heroes, 1)
	assert.Equal(t, "Britons", heroes[0].Name)
}

func TestRunToOutputDir(t *testing.T) {
	var stdout bytes.Buffer
	dir := filepath.Join(t.TempDir(), "out")

	flags := &Flags{SubCommand: WikitextSubCommand, Argument: "Warlords/3", OutputDir: dir}
	require.NoError(t, newHandler(&stdout).Run(context.Background(), flags))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(filepath.Join(dir, slug.Make("Warlords/3 playoffs")+".json"))
	require.NoError(t, err)

	var playoffs []types.Playoff
	require.NoError(t, json.Unmarshal(data, &playoffs))
	require.Len(t, playoffs, 1)
}

func TestRunTournamentsThenValidate(t *testing.T) {
	var stdout bytes.Buffer
	handler := newHandler(&stdout)
	out := filepath.Join(t.TempDir(), "catalogue.json")

	flags := &Flags{SubCommand: TournamentsSubCommand, Categories: []types.Category{types.Age2TierS}, OutputFiles: []string{out}}
	require.NoError(t, handler.Run(context.Background(), flags))

	var catalogue types.Catalogue
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &catalogue))
	assert.Equal(t, 1, catalogue.Total)
	assert.Equal(t, "Warlords/3", catalogue.TournamentList[0].Path)

	require.NoError(t, handler.Run(context.Background(), &Flags{SubCommand: ValidateSubCommand, Argument: out}))
}

func TestRunValidateRejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"spec":{"version":1},"datestamp":"2024-07-01","total":2,"tournament-list":[]}`), 0644))

	err := newHandler(&bytes.Buffer{}).Run(context.Background(), &Flags{SubCommand: ValidateSubCommand, Argument: path})
	assert.Error(t, err)
}

func TestRunFetchError(t *testing.T) {
	err := newHandler(&bytes.Buffer{}).Run(context.Background(), &Flags{SubCommand: TeamsSubCommand})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "teams failed")
}
