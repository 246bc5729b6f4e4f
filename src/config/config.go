package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the environment of a run
type Config struct {
	BaseURL         string
	Game            string
	UserAgent       string
	CacheDir        string
	CacheTTLHours   int
	MatchesTTLHours int
	RateLimit       time.Duration
}

// Load reads the given .env files (default ".env") when present, then the
// environment. Variables already set in the environment win over the files.
func Load(defaultUserAgent string, files ...string) (*Config, error) {
	if err := godotenv.Load(files...); err != nil {
		slog.Debug(".env file not found, using environment variables or defaults", "error", err)
	}

	cacheTTL, err := getEnvInt("LIQUIPEDIA_CACHE_TTL_HOURS", 24)
	if err != nil {
		return nil, err
	}
	matchesTTL, err := getEnvInt("LIQUIPEDIA_MATCHES_TTL_HOURS", 1)
	if err != nil {
		return nil, err
	}
	rateLimit, err := getEnvInt("LIQUIPEDIA_RATE_LIMIT_SECONDS", 2)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BaseURL:         getEnv("LIQUIPEDIA_BASE_URL", "https://liquipedia.net"),
		Game:            getEnv("LIQUIPEDIA_GAME", "ageofempires"),
		UserAgent:       getEnv("LIQUIPEDIA_USER_AGENT", defaultUserAgent),
		CacheDir:        getEnv("LIQUIPEDIA_CACHE_DIR", "./cache"),
		CacheTTLHours:   cacheTTL,
		MatchesTTLHours: matchesTTL,
		RateLimit:       time.Duration(rateLimit) * time.Second,
	}

	slog.Debug("configuration loaded",
		"base-url", cfg.BaseURL,
		"game", cfg.Game,
		"cache-dir", cfg.CacheDir,
		"cache-ttl-hours", cfg.CacheTTLHours,
		"rate-limit", cfg.RateLimit)

	return cfg, nil
}

// Overrides holds settings given on the command line. Nil fields keep the
// loaded value.
type Overrides struct {
	BaseURL         *string
	Game            *string
	UserAgent       *string
	CacheDir        *string
	CacheTTLHours   *int
	MatchesTTLHours *int
	RateLimit       *time.Duration
}

// Apply replaces every setting that has an override
func (c *Config) Apply(o Overrides) {
	if o.BaseURL != nil {
		c.BaseURL = *o.BaseURL
	}
	if o.Game != nil {
		c.Game = *o.Game
	}
	if o.UserAgent != nil {
		c.UserAgent = *o.UserAgent
	}
	if o.CacheDir != nil {
		c.CacheDir = *o.CacheDir
	}
	if o.CacheTTLHours != nil {
		c.CacheTTLHours = *o.CacheTTLHours
	}
	if o.MatchesTTLHours != nil {
		c.MatchesTTLHours = *o.MatchesTTLHours
	}
	if o.RateLimit != nil {
		c.RateLimit = *o.RateLimit
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%s must be a non-negative integer, got %q", key, v)
	}
	return n, nil
}
