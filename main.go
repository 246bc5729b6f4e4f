package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"

	"github.com/lmittmann/tint"
	"github.com/ogri-la/liquipedia-aoe-go/src/aoe"
	"github.com/ogri-la/liquipedia-aoe-go/src/cache"
	"github.com/ogri-la/liquipedia-aoe-go/src/cli"
	"github.com/ogri-la/liquipedia-aoe-go/src/config"
	httpClient "github.com/ogri-la/liquipedia-aoe-go/src/http"
	"github.com/ogri-la/liquipedia-aoe-go/src/liquipedia"
	"github.com/ogri-la/liquipedia-aoe-go/src/retry"
)

var APP_VERSION = "unreleased"
var APP_LOC = "https://github.com/ogri-la/liquipedia-aoe-go"

func main() {
	flags, err := cli.ParseFlags(os.Args, APP_VERSION)
	if err != nil {
		slog.Error("failed to parse flags", "error", err)
		os.Exit(1)
	}

	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level: flags.LogLevel,
	})))

	cfg, err := config.Load(userAgent())
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	cfg.Apply(flags.Config)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// validate reads a local file, no network needed
	var fetcher aoe.Fetcher
	if flags.SubCommand != cli.ValidateSubCommand {
		if err := os.MkdirAll(cfg.CacheDir, 0755); err != nil {
			slog.Error("failed to create cache directory", "error", err)
			os.Exit(1)
		}

		cacheConfig := cache.CacheConfig{
			Directory:       cfg.CacheDir,
			DefaultTTLHours: cfg.CacheTTLHours,
			MatchesTTLHours: cfg.MatchesTTLHours,
		}
		// only requests that miss the cache are rate limited
		limitedTransport := httpClient.NewRateLimitedTransport(http.DefaultTransport, cfg.RateLimit)
		cachingTransport := cache.NewFileCachingTransport(cacheConfig, limitedTransport)
		client := httpClient.NewRealHTTPClient(cachingTransport, cfg.UserAgent)
		fetcher = liquipedia.NewAPI(client, cfg.BaseURL, cfg.Game, retry.DefaultConfig())
	}

	handler := cli.NewCommandHandler(fetcher, flags.MaxWorkers, os.Stdout)
	if err := handler.Run(ctx, flags); err != nil {
		slog.Error("command failed", "command", flags.SubCommand, "error", err)
		os.Exit(1)
	}
}

func userAgent() string {
	return "liquipedia-aoe-go/" + APP_VERSION + " (" + APP_LOC + ")"
}
