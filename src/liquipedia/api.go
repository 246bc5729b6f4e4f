// Package liquipedia talks to the Liquipedia MediaWiki API and hands the
// responses to the aoe parsers.
package liquipedia

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/ogri-la/liquipedia-aoe-go/src/aoe"
	"github.com/ogri-la/liquipedia-aoe-go/src/http"
	"github.com/ogri-la/liquipedia-aoe-go/src/retry"
)

const (
	DefaultBaseURL = "https://liquipedia.net"
	DefaultGame    = "ageofempires"
)

var (
	// ErrAPI wraps MediaWiki `{"error":{...}}` payloads
	ErrAPI = errors.New("mediawiki api error")
	// ErrMissingPage is returned for titles that do not exist
	ErrMissingPage = errors.New("missing page")
)

// apiError is the MediaWiki error object
type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

type parseResponse struct {
	Error *apiError `json:"error"`
	Parse struct {
		Title        string `json:"title"`
		DisplayTitle string `json:"displaytitle"`
		Text         struct {
			Content string `json:"*"`
		} `json:"text"`
		Wikitext struct {
			Content string `json:"*"`
		} `json:"wikitext"`
	} `json:"parse"`
}

type queryResponse struct {
	Error *apiError `json:"error"`
	Query struct {
		Pages []struct {
			Title   string `json:"title"`
			Extract string `json:"extract"`
			Missing bool   `json:"missing"`
		} `json:"pages"`
	} `json:"query"`
}

// API fetches pages from one Liquipedia wiki. It implements aoe.Fetcher.
type API struct {
	client   http.HTTPClient
	endpoint string
	retry    retry.Config
}

// NewAPI creates an API for `{baseURL}/{game}/api.php`
func NewAPI(client http.HTTPClient, baseURL, game string, retryConfig retry.Config) *API {
	return &API{
		client:   client,
		endpoint: strings.TrimSuffix(baseURL, "/") + "/" + game + "/api.php",
		retry:    retryConfig,
	}
}

// ParseURL is the action=parse url for a page
func (a *API) ParseURL(title string, wikitext bool) string {
	params := url.Values{
		"action": {"parse"},
		"format": {"json"},
		"page":   {title},
	}
	if wikitext {
		params.Set("prop", "wikitext")
	}
	return a.endpoint + "?" + params.Encode()
}

// ExtractURL is the action=query url for a page's intro extract
func (a *API) ExtractURL(title string) string {
	params := url.Values{
		"action":        {"query"},
		"format":        {"json"},
		"prop":          {"extracts"},
		"formatversion": {"2"},
		"exintro":       {"1"},
		"titles":        {title},
	}
	return a.endpoint + "?" + params.Encode()
}

// get fetches a url with retries and returns the body of a 200 response
func (a *API) get(ctx context.Context, rawURL string) ([]byte, error) {
	resp, err := retry.WithRetry(ctx, a.client, rawURL, a.retry)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("unexpected status %d fetching '%s'", resp.StatusCode, rawURL)
	}
	return resp.Body, nil
}

// check turns a MediaWiki error object into an error
func check(apiErr *apiError, title string) error {
	if apiErr == nil {
		return nil
	}
	if apiErr.Code == "missingtitle" {
		return fmt.Errorf("%w: %s", ErrMissingPage, title)
	}
	return fmt.Errorf("%w: %s: %s", ErrAPI, apiErr.Code, apiErr.Info)
}

func (a *API) parse(ctx context.Context, title string, wikitext bool) (*parseResponse, error) {
	body, err := a.get(ctx, a.ParseURL(title, wikitext))
	if err != nil {
		return nil, err
	}

	var payload parseResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode '%s': %w", title, err)
	}
	if err := check(payload.Error, title); err != nil {
		return nil, err
	}
	return &payload, nil
}

// Page fetches the rendered HTML of a page
func (a *API) Page(ctx context.Context, title string) (aoe.Page, error) {
	payload, err := a.parse(ctx, title, false)
	if err != nil {
		return aoe.Page{}, err
	}
	slog.Debug("fetched page", "title", payload.Parse.Title, "size", len(payload.Parse.Text.Content))
	return aoe.Page{
		Title:        payload.Parse.Title,
		DisplayTitle: payload.Parse.DisplayTitle,
		HTML:         payload.Parse.Text.Content,
	}, nil
}

// Wikitext fetches the raw markup of a page
func (a *API) Wikitext(ctx context.Context, title string) (string, error) {
	payload, err := a.parse(ctx, title, true)
	if err != nil {
		return "", err
	}
	return payload.Parse.Wikitext.Content, nil
}

// Extract fetches the intro summary of a page as HTML
func (a *API) Extract(ctx context.Context, title string) (string, error) {
	body, err := a.get(ctx, a.ExtractURL(title))
	if err != nil {
		return "", err
	}

	var payload queryResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("failed to decode extract of '%s': %w", title, err)
	}
	if err := check(payload.Error, title); err != nil {
		return "", err
	}
	if len(payload.Query.Pages) == 0 || payload.Query.Pages[0].Missing {
		return "", fmt.Errorf("%w: %s", ErrMissingPage, title)
	}
	return payload.Query.Pages[0].Extract, nil
}
