package aoe

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// loadFixture reads a page saved under test/fixtures
func loadFixture(t *testing.T, name string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join("..", "..", "test", "fixtures", name))
	if err != nil {
		t.Fatalf("Failed to load fixture %s: %v", name, err)
	}
	return string(content)
}

// fakeFetcher serves canned pages and records what was asked for
type fakeFetcher struct {
	mu       sync.Mutex
	pages    map[string]string
	wikitext map[string]string
	errors   map[string]error
	calls    []string
}

func newFakeFetcher() *fakeFetcher {
	return &fakeFetcher{
		pages:    map[string]string{},
		wikitext: map[string]string{},
		errors:   map[string]error{},
	}
}

func (f *fakeFetcher) record(kind, title string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, kind+":"+title)
	return f.errors[title]
}

func (f *fakeFetcher) Page(ctx context.Context, title string) (Page, error) {
	if err := f.record("page", title); err != nil {
		return Page{}, err
	}
	content, ok := f.pages[title]
	if !ok {
		return Page{}, fmt.Errorf("missing page: %s", title)
	}
	return Page{Title: title, HTML: content}, nil
}

func (f *fakeFetcher) Wikitext(ctx context.Context, title string) (string, error) {
	if err := f.record("wikitext", title); err != nil {
		return "", err
	}
	source, ok := f.wikitext[title]
	if !ok {
		return "", fmt.Errorf("missing page: %s", title)
	}
	return source, nil
}

func (f *fakeFetcher) Extract(ctx context.Context, title string) (string, error) {
	if err := f.record("extract", title); err != nil {
		return "", err
	}
	return "", nil
}

func (f *fakeFetcher) called(call string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.calls {
		if c == call {
			return true
		}
	}
	return false
}
