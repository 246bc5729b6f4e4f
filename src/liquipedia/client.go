package liquipedia

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ogri-la/liquipedia-aoe-go/src/aoe"
	"github.com/ogri-la/liquipedia-aoe-go/src/cache"
	"github.com/ogri-la/liquipedia-aoe-go/src/catalogue"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
	"golang.org/x/sync/errgroup"
)

// Portal pages
const (
	PlayersPage   = "Players_(all)"
	TeamsPage     = "Portal:Teams"
	TransfersPage = "Portal:Transfers"
	MatchesPage   = cache.MatchesPage
	HeroesPage    = "Portal:Heroes"
	ItemsPage     = "Portal:Items"
	PatchesPage   = "Portal:Patches"
)

// Client exposes one method per entity
type Client struct {
	fetcher aoe.Fetcher
	builder *catalogue.Builder
	workers int
}

// NewClient creates a client reading through `fetcher`. `workers` bounds the
// number of categories fetched at once by Catalogue.
func NewClient(fetcher aoe.Fetcher, workers int) *Client {
	return &Client{
		fetcher: fetcher,
		builder: catalogue.NewBuilder(),
		workers: max(workers, 1),
	}
}

// page fetches the HTML of a page
func (c *Client) page(ctx context.Context, title string) (string, error) {
	page, err := c.fetcher.Page(ctx, title)
	if err != nil {
		return "", fmt.Errorf("failed to fetch '%s': %w", title, err)
	}
	return page.HTML, nil
}

// Teams lists the teams of the teams portal
func (c *Client) Teams(ctx context.Context) ([]types.Team, error) {
	content, err := c.page(ctx, TeamsPage)
	if err != nil {
		return nil, err
	}
	return aoe.ParseTeams(content), nil
}

// Heroes lists the civilizations
func (c *Client) Heroes(ctx context.Context) ([]types.Hero, error) {
	content, err := c.page(ctx, HeroesPage)
	if err != nil {
		return nil, err
	}
	return aoe.ParseHeroes(content), nil
}

// Matches lists upcoming and ongoing matches
func (c *Client) Matches(ctx context.Context) ([]types.Match, error) {
	content, err := c.page(ctx, MatchesPage)
	if err != nil {
		return nil, err
	}
	return aoe.ParseMatches(content), nil
}

// Tournaments lists the tournaments of a category page
func (c *Client) Tournaments(ctx context.Context, category types.Category) ([]types.TournamentSection, error) {
	content, err := c.page(ctx, string(category))
	if err != nil {
		return nil, err
	}
	return aoe.ParseTournaments(content, category), nil
}

// AllTournaments lists the tournaments of a category page and of its tabs
func (c *Client) AllTournaments(ctx context.Context, category types.Category) ([]types.Tournament, error) {
	content, err := c.page(ctx, string(category))
	if err != nil {
		return nil, err
	}
	return aoe.ParseAllTournaments(ctx, content, category, c.fetcher)
}

// Tournament reads a tournament page
func (c *Client) Tournament(ctx context.Context, path string) (*types.TournamentDetail, error) {
	content, err := c.page(ctx, path)
	if err != nil {
		return nil, err
	}
	return aoe.ParseTournament(ctx, content, path, c.fetcher)
}

// Patches lists game patches
func (c *Client) Patches(ctx context.Context) ([]types.Patch, error) {
	content, err := c.page(ctx, PatchesPage)
	if err != nil {
		return nil, err
	}
	return aoe.ParsePatches(content), nil
}

// Transfers lists recent roster changes
func (c *Client) Transfers(ctx context.Context) ([]types.Transfer, error) {
	content, err := c.page(ctx, TransfersPage)
	if err != nil {
		return nil, err
	}
	return aoe.ParseTransfers(content), nil
}

// Items lists the items portal
func (c *Client) Items(ctx context.Context) ([]types.Item, error) {
	content, err := c.page(ctx, ItemsPage)
	if err != nil {
		return nil, err
	}
	return aoe.ParseItems(content), nil
}

// Players lists every player
func (c *Client) Players(ctx context.Context) ([]types.Player, error) {
	content, err := c.page(ctx, PlayersPage)
	if err != nil {
		return nil, err
	}
	return aoe.ParsePlayers(content), nil
}

// Player reads a player page together with its intro extract. A failed
// extract leaves the overview empty.
func (c *Client) Player(ctx context.Context, name string) (types.Player, error) {
	content, err := c.page(ctx, name)
	if err != nil {
		return types.Player{}, err
	}

	overview, err := c.fetcher.Extract(ctx, name)
	if err != nil {
		slog.Warn("failed to fetch player overview", "player", name, "error", err)
		overview = ""
	}

	return aoe.ParsePlayer(content, overview), nil
}

// Map reads a map page
func (c *Client) Map(ctx context.Context, name string) (types.MapDetail, error) {
	content, err := c.page(ctx, name)
	if err != nil {
		return types.MapDetail{}, err
	}
	return aoe.ParseMap(content), nil
}

// Catalogue fetches categories concurrently and merges their tournaments in
// category order. With `all` the tabs of each category are followed too.
func (c *Client) Catalogue(ctx context.Context, categories []types.Category, all bool) (types.Catalogue, error) {
	results := make([][]types.Tournament, len(categories))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)
	for i, category := range categories {
		i, category := i, category
		g.Go(func() error {
			slog.Info("fetching category", "category", category, "all", all)
			if all {
				tournaments, err := c.AllTournaments(gCtx, category)
				if err != nil {
					return fmt.Errorf("category '%s': %w", category, err)
				}
				results[i] = tournaments
				return nil
			}

			sections, err := c.Tournaments(gCtx, category)
			if err != nil {
				return fmt.Errorf("category '%s': %w", category, err)
			}
			for _, section := range sections {
				results[i] = append(results[i], section.Data...)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return types.Catalogue{}, err
	}

	return c.builder.BuildCatalogue(c.builder.Merge(results...), categories), nil
}
