package aoe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ogri-la/liquipedia-aoe-go/src/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tabListing = `<html><body>
<div class="mw-heading mw-heading3"><h3 id="Upcoming">Upcoming</h3></div>
<div class="gridTable tournamentCard">
<div class="gridRow">
<div class="gridCell Tier Header">Monthly</div>
<div class="gridCell Tournament Header"><a href="/ageofempires/Wandering_Warriors_Cup" title="Wandering Warriors Cup">Wandering Warriors Cup</a></div>
<div class="gridCell EventDetails Date Header">Jul 5 - 7, 2024</div>
<div class="gridCell EventDetails PlayerNumber Header">64</div>
</div>
</div>
</body></html>`

func TestParseTournaments(t *testing.T) {
	content := loadFixture(t, "liquipedia--tournaments--s-tier.html")

	sections := ParseTournaments(content, types.Age2TierS)
	require.Len(t, sections, 2)

	upcoming := sections[0]
	assert.Equal(t, "Upcoming", upcoming.Title)
	require.Len(t, upcoming.Data, 2, "the row without a tier is dropped")

	reinado := upcoming.Data[0]
	assert.Equal(t, "Red Bull Wololo: El Reinado", reinado.Name)
	assert.Equal(t, "Red_Bull_Wololo/El_Reinado", reinado.Path)
	assert.Equal(t, types.Category("Age_of_Empires_II/S-Tier_Tournaments"), reinado.Tier)
	assert.Equal(t, types.Age2, reinado.Game)
	assert.Equal(t, types.IndividualTournament, reinado.Type)

	require.NotNil(t, reinado.League)
	assert.Equal(t, "Red Bull Wololo", reinado.League.Name)
	assert.Equal(t, Host+"/commons/images/thumb/rbw.png/100px-rbw.png", reinado.League.Image)

	require.NotNil(t, reinado.PrizePool)
	assert.Equal(t, 300000.0, reinado.PrizePool.Amount)
	assert.Equal(t, "USD", reinado.PrizePool.Code)

	require.NotNil(t, reinado.ParticipantsCount)
	assert.Equal(t, 16, *reinado.ParticipantsCount)

	require.NotNil(t, reinado.Start)
	require.NotNil(t, reinado.End)
	assert.Equal(t, time.Date(2024, time.June, 28, 0, 0, 0, 0, time.UTC), *reinado.Start)
	assert.Equal(t, time.Date(2024, time.July, 2, 0, 0, 0, 0, time.UTC), *reinado.End)

	require.NotNil(t, reinado.Location)
	assert.Equal(t, "Guadalajara, Spain", reinado.Location.Name)
	assert.Equal(t, types.LANLocation, reinado.Location.Type)
	require.NotNil(t, reinado.Location.Country)
	assert.Equal(t, "Spain", reinado.Location.Country.Name)

	require.Len(t, reinado.Participants, 1, "TBD placements are skipped")
	assert.Equal(t, "Hera", reinado.Participants[0].Name)
	assert.Equal(t, Host+"/commons/images/de.png", reinado.Participants[0].Image)

	warlords := upcoming.Data[1]
	assert.Equal(t, "Warlords/3", warlords.Path)
	assert.Nil(t, warlords.PrizePool, "a TBD prize pool is no prize pool")
	require.NotNil(t, warlords.Location)
	assert.Equal(t, types.OnlineLocation, warlords.Location.Type)
	assert.Nil(t, warlords.Location.Country)
	assert.Empty(t, warlords.Participants)
	assert.Equal(t, types.UnknownTournament, warlords.Type)

	completed := sections[1]
	assert.Equal(t, "Completed", completed.Title)
	require.Len(t, completed.Data, 1, "the row without a participant count is dropped")

	nations := completed.Data[0]
	assert.Equal(t, types.Age2TierS, nations.Tier, "a tier without a link falls back to the category")
	assert.Equal(t, types.TeamTournament, nations.Type)
	require.NotNil(t, nations.Start)
	require.NotNil(t, nations.End)
	assert.Equal(t, 2023, nations.Start.Year())
	assert.Equal(t, 2024, nations.End.Year())
}

func TestParseTournamentsEmptyPage(t *testing.T) {
	assert.Empty(t, ParseTournaments("<html><body><p>Nothing here</p></body></html>", types.Age2TierS))
	assert.Empty(t, ParseTournaments("", types.Age2TierS))
}

func TestParseAllTournaments(t *testing.T) {
	content := loadFixture(t, "liquipedia--tournaments--s-tier.html")

	fetcher := newFakeFetcher()
	fetcher.pages["Age of Empires II/B-Tier Tournaments"] = tabListing
	fetcher.errors["Age of Empires II/A-Tier Tournaments"] = errors.New("connection reset")

	all, err := ParseAllTournaments(context.Background(), content, types.Age2TierS, fetcher)
	require.NoError(t, err)

	assert.True(t, fetcher.called("page:Age of Empires II/A-Tier Tournaments"))
	assert.True(t, fetcher.called("page:Age of Empires II/B-Tier Tournaments"))

	require.Len(t, all, 4)
	assert.Equal(t, "Wandering_Warriors_Cup", all[0].Path, "tab tournaments come first")
	assert.Equal(t, types.Category("Age_of_Empires_II/B-Tier_Tournaments"), all[0].Tier)
	assert.Equal(t, "Red_Bull_Wololo/El_Reinado", all[1].Path)
	assert.Equal(t, "Warlords/3", all[2].Path)
	assert.Equal(t, "Nations_Cup/2023", all[3].Path)
}

func TestParseAllTournamentsCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ParseAllTournaments(ctx, loadFixture(t, "liquipedia--tournaments--s-tier.html"), types.Age2TierS, newFakeFetcher())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseDateRange(t *testing.T) {
	day := func(y int, m time.Month, d int) *time.Time {
		t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
		return &t
	}

	var cases = []struct {
		given string
		start *time.Time
		end   *time.Time
	}{
		{"Jun 28 - Jul 2, 2024", day(2024, time.June, 28), day(2024, time.July, 2)},
		{"Jun 1 - 3, 2024", day(2024, time.June, 1), day(2024, time.June, 3)},
		{"Dec 28, 2023 - Jan 3, 2024", day(2023, time.December, 28), day(2024, time.January, 3)},
		{"Sept 5, 2024", day(2024, time.September, 5), nil},
		{"", nil, nil},
	}
	for _, c := range cases {
		start, end := parseDateRange(c.given)
		assert.Equal(t, c.start, start, "start of %q", c.given)
		assert.Equal(t, c.end, end, "end of %q", c.given)
	}
}

func TestParsePrize(t *testing.T) {
	var cases = []struct {
		given    string
		expected *types.Amount
	}{
		{"$300,000", &types.Amount{Amount: 300000, Code: "USD"}},
		{"$1,500.50 USD", &types.Amount{Amount: 1500.5, Code: "USD"}},
		{"TBD", nil},
		{"", nil},
	}
	for _, c := range cases {
		actual := parsePrize(c.given)
		assert.Equal(t, c.expected, actual, "parsePrize(%q)", c.given)
	}
}

func TestParseCount(t *testing.T) {
	var cases = []struct {
		given    string
		expected int
		ok       bool
	}{
		{"16", 16, true},
		{" 12+ Players", 12, true},
		{"TBA", 0, false},
	}
	for _, c := range cases {
		actual := parseCount(c.given)
		if (actual != nil) != c.ok {
			t.Errorf("parseCount(%q) = %v, want ok %v", c.given, actual, c.ok)
			continue
		}
		if actual != nil && *actual != c.expected {
			t.Errorf("parseCount(%q) = %d, want %d", c.given, *actual, c.expected)
		}
	}
}
