package liquipedia

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	lphttp "github.com/ogri-la/liquipedia-aoe-go/src/http"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const aTierListing = `<html><body>
<div class="mw-heading mw-heading3"><h3 id="Upcoming">Upcoming</h3></div>
<div class="gridTable tournamentCard">
<div class="gridRow">
<div class="gridCell Tier Header">A-Tier</div>
<div class="gridCell Tournament Header"><a href="/ageofempires/Wandering_Warriors_Cup" title="Wandering Warriors Cup">Wandering Warriors Cup</a></div>
<div class="gridCell EventDetails Date Header">Jul 5 - 7, 2024</div>
<div class="gridCell EventDetails PlayerNumber Header">64</div>
</div>
</div>
</body></html>`

func loadFixture(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("..", "..", "test", "fixtures", name))
	require.NoError(t, err)
	return string(data)
}

// wiki wires a mock http client behind a real API
type wiki struct {
	mock *lphttp.MockHTTPClient
	api  *API
}

func newMockWiki() *wiki {
	mock := lphttp.NewMockHTTPClient()
	return &wiki{mock: mock, api: NewAPI(mock, DefaultBaseURL, DefaultGame, noRetry)}
}

func (w *wiki) page(t *testing.T, title, html string) {
	t.Helper()
	payload := map[string]any{"parse": map[string]any{
		"title": title,
		"text":  map[string]string{"*": html},
	}}
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	w.mock.SetResponse(w.api.ParseURL(title, false), &lphttp.Response{StatusCode: 200, Body: body})
}

func (w *wiki) wikitext(t *testing.T, title, source string) {
	t.Helper()
	body, err := json.Marshal(map[string]any{"parse": map[string]any{
		"title":    title,
		"wikitext": map[string]string{"*": source},
	}})
	require.NoError(t, err)
	w.mock.SetResponse(w.api.ParseURL(title, true), &lphttp.Response{StatusCode: 200, Body: body})
}

func (w *wiki) extract(t *testing.T, title, html string) {
	t.Helper()
	body, err := json.Marshal(map[string]any{"query": map[string]any{
		"pages": []map[string]string{{"title": title, "extract": html}},
	}})
	require.NoError(t, err)
	w.mock.SetResponse(w.api.ExtractURL(title), &lphttp.Response{StatusCode: 200, Body: body})
}

func TestClientTeams(t *testing.T) {
	w := newMockWiki()
	w.page(t, TeamsPage, `<div class="lp-container-fluid"><div class="panel-box">
<div class="panel-box-heading"><a href="/ageofempires/Europe">Europe</a></div>
<span class="team-template-team-standard"><span class="team-template-text"><a href="/ageofempires/GamerLegion">GamerLegion</a></span></span>
</div></div>`)

	teams, err := NewClient(w.api, 1).Teams(context.Background())
	require.NoError(t, err)
	require.Len(t, teams, 1)
	assert.Equal(t, "GamerLegion", teams[0].Name)
	assert.Equal(t, "Europe", teams[0].Region)
}

func TestClientFetchError(t *testing.T) {
	w := newMockWiki()
	w.mock.SetError(w.api.ParseURL(PatchesPage, false), errors.New("connection refused"))

	_, err := NewClient(w.api, 1).Patches(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Portal:Patches")
}

func TestClientPlayer(t *testing.T) {
	w := newMockWiki()
	w.page(t, "Hera", `<div class="mw-parser-output"><div class="infobox-header">Hera</div></div>`)
	w.extract(t, "Hera", "<p><b>Hera</b> is a Canadian player.</p>")

	player, err := NewClient(w.api, 1).Player(context.Background(), "Hera")
	require.NoError(t, err)
	assert.Equal(t, "Hera", player.Name)
	assert.Equal(t, "**Hera** is a Canadian player.", player.Overview)
}

func TestClientPlayerWithoutOverview(t *testing.T) {
	w := newMockWiki()
	w.page(t, "TheViper", `<div class="mw-parser-output"><div class="infobox-header">TheViper</div></div>`)

	player, err := NewClient(w.api, 1).Player(context.Background(), "TheViper")
	require.NoError(t, err)
	assert.Equal(t, "TheViper", player.Name)
	assert.Empty(t, player.Overview)
}

func TestClientTournament(t *testing.T) {
	w := newMockWiki()
	w.page(t, "RBW_El_Reinado", `<div class="mw-parser-output"><div class="redirectMsg"><ul class="redirectText"><li><a href="/ageofempires/Red_Bull_Wololo/El_Reinado" title="Red Bull Wololo/El Reinado">Red Bull Wololo/El Reinado</a></li></ul></div></div>`)
	w.page(t, "Red_Bull_Wololo/El_Reinado", loadFixture(t, "liquipedia--tournament--detail.html"))

	tournament, err := NewClient(w.api, 1).Tournament(context.Background(), "RBW_El_Reinado")
	require.NoError(t, err)
	assert.Equal(t, "Red Bull Wololo: El Reinado", tournament.Name)
	assert.Equal(t, "RBW_El_Reinado", tournament.RedirectedFrom)
	assert.NotEmpty(t, tournament.Playoffs)
	assert.NotContains(t, w.mock.GetCalls(), w.api.ParseURL("Red_Bull_Wololo/El_Reinado", true), "the html bracket is enough")
}

func TestClientTournamentWikitextFallback(t *testing.T) {
	w := newMockWiki()
	w.page(t, "Warlords/3", `<div class="mw-parser-output"><div class="infobox-header">Warlords 3</div></div>`)
	w.wikitext(t, "Warlords/3", "==Playoffs==\n{{Bracket|Bracket/2\n|R1M1header=Final\n|R1M1={{Match|opponent1=Hera|opponent2=TheViper}}\n}}")

	tournament, err := NewClient(w.api, 1).Tournament(context.Background(), "Warlords/3")
	require.NoError(t, err)
	require.Len(t, tournament.Playoffs, 1)
	require.NotEmpty(t, tournament.Playoffs[0].Rounds)
	assert.Equal(t, "Final", tournament.Playoffs[0].Rounds[0].Name)
}

func TestClientTournaments(t *testing.T) {
	w := newMockWiki()
	w.page(t, string(types.Age2TierS), loadFixture(t, "liquipedia--tournaments--s-tier.html"))

	sections, err := NewClient(w.api, 1).Tournaments(context.Background(), types.Age2TierS)
	require.NoError(t, err)
	require.Len(t, sections, 2)
	assert.Equal(t, "Upcoming", sections[0].Title)
}

func TestClientCatalogue(t *testing.T) {
	w := newMockWiki()
	w.page(t, string(types.Age2TierS), loadFixture(t, "liquipedia--tournaments--s-tier.html"))
	w.page(t, string(types.Age2TierA), aTierListing)

	catalogue, err := NewClient(w.api, 2).Catalogue(context.Background(), []types.Category{types.Age2TierS, types.Age2TierA}, false)
	require.NoError(t, err)

	assert.Equal(t, []types.Category{types.Age2TierS, types.Age2TierA}, catalogue.Categories)
	require.Equal(t, 4, catalogue.Total)

	paths := make([]string, 0, catalogue.Total)
	for _, entry := range catalogue.TournamentList {
		paths = append(paths, entry.Path)
		assert.NotEmpty(t, entry.ID)
	}
	assert.Equal(t, []string{"Wandering_Warriors_Cup", "Red_Bull_Wololo/El_Reinado", "Warlords/3", "Nations_Cup/2023"}, paths)
}

func TestClientCatalogueFollowsTabs(t *testing.T) {
	w := newMockWiki()
	w.page(t, string(types.Age2TierS), loadFixture(t, "liquipedia--tournaments--s-tier.html"))
	w.page(t, "Age of Empires II/A-Tier Tournaments", aTierListing)

	catalogue, err := NewClient(w.api, 1).Catalogue(context.Background(), []types.Category{types.Age2TierS}, true)
	require.NoError(t, err)
	require.Equal(t, 4, catalogue.Total, "the failing B-Tier tab is skipped")
	assert.Equal(t, "Wandering_Warriors_Cup", catalogue.TournamentList[0].Path)
	assert.Equal(t, types.Age2TierA, catalogue.TournamentList[0].Tier)
}

func TestClientCatalogueError(t *testing.T) {
	w := newMockWiki()
	w.page(t, string(types.Age2TierS), loadFixture(t, "liquipedia--tournaments--s-tier.html"))

	_, err := NewClient(w.api, 2).Catalogue(context.Background(), []types.Category{types.Age2TierS, types.Age2TierB}, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(types.Age2TierB))
}
