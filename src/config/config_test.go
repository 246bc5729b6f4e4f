package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var keys = []string{
	"LIQUIPEDIA_BASE_URL",
	"LIQUIPEDIA_GAME",
	"LIQUIPEDIA_USER_AGENT",
	"LIQUIPEDIA_CACHE_DIR",
	"LIQUIPEDIA_CACHE_TTL_HOURS",
	"LIQUIPEDIA_MATCHES_TTL_HOURS",
	"LIQUIPEDIA_RATE_LIMIT_SECONDS",
}

// clearEnv blanks every variable for the test; Setenv restores them afterwards
func clearEnv(t *testing.T) {
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("agent/1.0", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, &Config{
		BaseURL:         "https://liquipedia.net",
		Game:            "ageofempires",
		UserAgent:       "agent/1.0",
		CacheDir:        "./cache",
		CacheTTLHours:   24,
		MatchesTTLHours: 1,
		RateLimit:       2 * time.Second,
	}, cfg)
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := "LIQUIPEDIA_GAME=ageofempires2\nLIQUIPEDIA_CACHE_TTL_HOURS=6\nLIQUIPEDIA_RATE_LIMIT_SECONDS=0\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	// the environment wins over the file
	t.Setenv("LIQUIPEDIA_CACHE_TTL_HOURS", "12")

	cfg, err := Load("agent/1.0", path)
	require.NoError(t, err)
	assert.Equal(t, "ageofempires2", cfg.Game)
	assert.Equal(t, 12, cfg.CacheTTLHours)
	assert.Equal(t, time.Duration(0), cfg.RateLimit)
}

func TestLoadBadNumber(t *testing.T) {
	clearEnv(t)

	var cases = []string{"soon", "-1", "1.5"}
	for _, given := range cases {
		t.Setenv("LIQUIPEDIA_RATE_LIMIT_SECONDS", given)
		if _, err := Load("agent/1.0", filepath.Join(t.TempDir(), "missing.env")); err == nil {
			t.Errorf("Load() with rate limit %q = nil error, want error", given)
		}
	}
}

func TestApplyOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("LIQUIPEDIA_GAME", "ageofempires")
	t.Setenv("LIQUIPEDIA_CACHE_DIR", "/tmp/env-cache")

	cfg, err := Load("test-agent", filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	baseURL := "http://localhost:8080"
	cacheDir := "/tmp/flag-cache"
	ttl := 0
	rateLimit := 5 * time.Second
	cfg.Apply(Overrides{BaseURL: &baseURL, CacheDir: &cacheDir, CacheTTLHours: &ttl, RateLimit: &rateLimit})

	assert.Equal(t, "http://localhost:8080", cfg.BaseURL)
	assert.Equal(t, "/tmp/flag-cache", cfg.CacheDir)
	assert.Equal(t, 0, cfg.CacheTTLHours)
	assert.Equal(t, 5*time.Second, cfg.RateLimit)

	// untouched settings keep their loaded values
	assert.Equal(t, "ageofempires", cfg.Game)
	assert.Equal(t, "test-agent", cfg.UserAgent)
	assert.Equal(t, 1, cfg.MatchesTTLHours)
}
