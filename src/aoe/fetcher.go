// Package aoe turns rendered Liquipedia Age of Empires pages into typed
// records. Parsers never fail on markup: incomplete records are dropped and
// missing fields are left empty.
package aoe

import "context"

// Page is a rendered wiki page
type Page struct {
	Title        string
	DisplayTitle string
	HTML         string
}

// Fetcher is the network side needed by the composite parsers
type Fetcher interface {
	// Page fetches the rendered HTML of a page
	Page(ctx context.Context, title string) (Page, error)
	// Wikitext fetches the raw markup of a page
	Wikitext(ctx context.Context, title string) (string, error)
	// Extract fetches the intro summary of a page as HTML
	Extract(ctx context.Context, title string) (string, error)
}
