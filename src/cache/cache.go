package cache

import (
	"bufio"
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httputil"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// MatchesPage is the upcoming matches listing, cached for MatchesTTLHours
const MatchesPage = "Liquipedia:Upcoming_and_ongoing_matches"

// CacheConfig holds cache configuration
type CacheConfig struct {
	Directory       string
	DefaultTTLHours int
	MatchesTTLHours int
}

// FileCachingTransport implements http.RoundTripper with file-based caching
type FileCachingTransport struct {
	config    CacheConfig
	transport http.RoundTripper
	now       func() time.Time
}

// NewFileCachingTransport creates a new caching transport
func NewFileCachingTransport(config CacheConfig, transport http.RoundTripper) *FileCachingTransport {
	return &FileCachingTransport{
		config:    config,
		transport: transport,
		now:       time.Now,
	}
}

// RoundTrip implements http.RoundTripper with caching
func (t *FileCachingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	cacheKey := MakeCacheKey(req)
	cachePath := t.cachePath(cacheKey)

	if cachedResp, err := t.readCacheEntry(cacheKey); err == nil && !t.cacheExpired(cachePath) {
		slog.Info("cache hit", "url", req.URL.String())
		return cachedResp, nil
	}

	slog.Info("fetching", "url", req.URL.String())
	resp, err := t.transport.RoundTrip(req)
	if err != nil {
		return resp, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp, nil
	}

	body, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	resp.Body = io.NopCloser(bytes.NewReader(body))

	if code := apiErrorCode(body); code != "" {
		slog.Info("not caching api error", "url", req.URL.String(), "code", code)
		return resp, nil
	}

	if err := t.writeCacheEntry(cacheKey, resp); err != nil {
		slog.Warn("failed to write cache entry", "url", req.URL.String(), "error", err)
	}

	// the dump consumed the body, read it back from disk
	if cachedResp, err := t.readCacheEntry(cacheKey); err == nil {
		return cachedResp, nil
	}

	resp.Body = io.NopCloser(bytes.NewReader(body))
	return resp, nil
}

// apiErrorCode returns the code of a MediaWiki `{"error":{...}}` body, if any
func apiErrorCode(body []byte) string {
	var payload struct {
		Error *struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.Error == nil {
		return ""
	}
	if payload.Error.Code == "" {
		return "unknown"
	}
	return payload.Error.Code
}

// MakeCacheKey creates a cache key from the request. The suffix names the
// kind of MediaWiki response, match listings get their own suffix.
func MakeCacheKey(req *http.Request) string {
	key := req.URL.String()
	md5sum := md5.Sum([]byte(key))
	cacheKey := hex.EncodeToString(md5sum[:])

	query := req.URL.Query()
	switch {
	case query.Get("prop") == "wikitext":
		cacheKey += "-wikitext"
	case query.Get("action") == "query":
		cacheKey += "-extract"
	default:
		cacheKey += "-parse"
	}

	if query.Get("page") == MatchesPage {
		cacheKey += "-matches"
	}

	return cacheKey
}

// cachePath returns the file path for a cache key
func (t *FileCachingTransport) cachePath(cacheKey string) string {
	return filepath.Join(t.config.Directory, cacheKey)
}

// cacheExpired checks if a cache file has expired
func (t *FileCachingTransport) cacheExpired(path string) bool {
	stat, err := os.Stat(path)
	if err != nil {
		return true
	}

	ttlHours := t.config.DefaultTTLHours
	if strings.HasSuffix(path, "-matches") {
		ttlHours = t.config.MatchesTTLHours
	}

	age := t.now().Sub(stat.ModTime())
	return age >= time.Duration(ttlHours)*time.Hour
}

// readCacheEntry reads a cached HTTP response
func (t *FileCachingTransport) readCacheEntry(cacheKey string) (*http.Response, error) {
	path := t.cachePath(cacheKey)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return http.ReadResponse(bufio.NewReader(bytes.NewReader(data)), nil)
}

// writeCacheEntry writes an HTTP response to cache
func (t *FileCachingTransport) writeCacheEntry(cacheKey string, resp *http.Response) error {
	path := t.cachePath(cacheKey)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	dumpedBytes, err := httputil.DumpResponse(resp, true)
	if err != nil {
		return fmt.Errorf("failed to dump response: %w", err)
	}

	if err := os.WriteFile(path, dumpedBytes, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}

	return nil
}
