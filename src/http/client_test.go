package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

const parseURL = "https://liquipedia.net/ageofempires/api.php?action=parse&format=json&page=Portal%3ATeams"

func TestMockHTTPClient(t *testing.T) {
	client := NewMockHTTPClient()
	ctx := context.Background()

	client.SetResponse(parseURL, &Response{
		StatusCode: 200,
		Body:       []byte(`{"parse":{}}`),
		Headers:    map[string]string{"Content-Type": "application/json"},
	})

	resp, err := client.Get(ctx, parseURL)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Status code = %d, want 200", resp.StatusCode)
	}
	if string(resp.Body) != `{"parse":{}}` {
		t.Errorf("Body = %s, want '{\"parse\":{}}'", string(resp.Body))
	}

	client.SetError("https://error.com", errors.New("network error"))
	_, err = client.Get(ctx, "https://error.com")
	if err == nil || err.Error() != "network error" {
		t.Errorf("Error = %v, want 'network error'", err)
	}

	_, err = client.Get(ctx, "https://unconfigured.com")
	if err == nil {
		t.Error("Expected error for unconfigured URL but got none")
	}

	calls := client.GetCalls()
	expectedCalls := []string{parseURL, "https://error.com", "https://unconfigured.com"}
	if len(calls) != len(expectedCalls) {
		t.Fatalf("Number of calls = %d, want %d", len(calls), len(expectedCalls))
	}
	for i, call := range calls {
		if call != expectedCalls[i] {
			t.Errorf("Call %d = %s, want %s", i, call, expectedCalls[i])
		}
	}
}

func TestMockHTTPClient_OverrideResponse(t *testing.T) {
	client := NewMockHTTPClient()
	ctx := context.Background()

	client.SetResponse(parseURL, &Response{StatusCode: 200, Body: []byte("first")})
	client.SetResponse(parseURL, &Response{StatusCode: 404, Body: []byte("not found")})

	resp, err := client.Get(ctx, parseURL)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Status = %d, want 404", resp.StatusCode)
	}
}

func TestMockHTTPClient_Concurrent(t *testing.T) {
	client := NewMockHTTPClient()
	ctx := context.Background()

	for i := 0; i < 10; i++ {
		client.SetResponse(fmt.Sprintf("https://example.com/%d", i), &Response{StatusCode: 200})
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			if _, err := client.Get(ctx, fmt.Sprintf("https://example.com/%d", i)); err != nil {
				t.Errorf("Get(%d) unexpected error: %v", i, err)
			}
		}(i)
	}
	wg.Wait()

	if len(client.GetCalls()) != 10 {
		t.Errorf("Number of calls = %d, want 10", len(client.GetCalls()))
	}
}

func TestRealHTTPClient(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client := NewRealHTTPClient(http.DefaultTransport, "liquipedia-aoe-go/test")
	resp, err := client.Get(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Get() unexpected error: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("StatusCode = %d, want 200", resp.StatusCode)
	}
	if string(resp.Body) != `{"ok":true}` {
		t.Errorf("Body = %s, want {\"ok\":true}", resp.Body)
	}
	if resp.Headers["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %s, want application/json", resp.Headers["Content-Type"])
	}
	if userAgent != "liquipedia-aoe-go/test" {
		t.Errorf("User-Agent = %s, want liquipedia-aoe-go/test", userAgent)
	}
}

func TestRateLimitedTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	interval := 50 * time.Millisecond
	client := NewRealHTTPClient(NewRateLimitedTransport(http.DefaultTransport, interval), "test")

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := client.Get(context.Background(), server.URL); err != nil {
			t.Fatalf("Get() unexpected error: %v", err)
		}
	}
	// the first request is free, the next two wait
	if elapsed := time.Since(start); elapsed < 2*interval-10*time.Millisecond {
		t.Errorf("3 requests took %v, want at least %v", elapsed, 2*interval)
	}
}

func TestRateLimitedTransport_Cancelled(t *testing.T) {
	transport := NewRateLimitedTransport(http.DefaultTransport, time.Hour)
	client := NewRealHTTPClient(transport, "test")
	ctx, cancel := context.WithCancel(context.Background())

	// spend the burst
	transport.limiter.Allow()
	cancel()

	if _, err := client.Get(ctx, "http://127.0.0.1:0"); err == nil {
		t.Error("Expected error for cancelled context but got none")
	}
}
