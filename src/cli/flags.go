package cli

import (
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"github.com/ogri-la/liquipedia-aoe-go/src/config"
	"github.com/ogri-la/liquipedia-aoe-go/src/types"
	flag "github.com/spf13/pflag"
)

// SubCommand represents CLI subcommands
type SubCommand string

const (
	TournamentsSubCommand SubCommand = "tournaments"
	TournamentSubCommand  SubCommand = "tournament"
	MatchesSubCommand     SubCommand = "matches"
	TeamsSubCommand       SubCommand = "teams"
	PlayersSubCommand     SubCommand = "players"
	PlayerSubCommand      SubCommand = "player"
	TransfersSubCommand   SubCommand = "transfers"
	PatchesSubCommand     SubCommand = "patches"
	HeroesSubCommand      SubCommand = "heroes"
	ItemsSubCommand       SubCommand = "items"
	MapSubCommand         SubCommand = "map"
	WikitextSubCommand    SubCommand = "wikitext"
	ValidateSubCommand    SubCommand = "validate"
)

var KnownSubCommands = []SubCommand{
	TournamentsSubCommand, TournamentSubCommand, MatchesSubCommand, TeamsSubCommand,
	PlayersSubCommand, PlayerSubCommand, TransfersSubCommand, PatchesSubCommand,
	HeroesSubCommand, ItemsSubCommand, MapSubCommand, WikitextSubCommand, ValidateSubCommand,
}

// argument names the positional argument a subcommand needs
var argument = map[SubCommand]string{
	TournamentSubCommand: "path",
	PlayerSubCommand:     "name",
	MapSubCommand:        "name",
	WikitextSubCommand:   "path",
	ValidateSubCommand:   "file",
}

// Flags holds all CLI flags and configuration
type Flags struct {
	SubCommand  SubCommand
	Argument    string
	LogLevel    slog.Level
	Categories  []types.Category
	All         bool
	OutputFiles []string
	OutputDir   string
	ShowHelp    bool
	ShowVersion bool
	MaxWorkers  int
	Config      config.Overrides
}

// ParseFlags parses command line arguments and returns configuration
func ParseFlags(args []string, version string) (*Flags, error) {
	flags := &Flags{}

	// Global flags
	defaults := flag.NewFlagSet("liquipedia-aoe", flag.ContinueOnError)
	defaults.BoolVarP(&flags.ShowHelp, "help", "h", false, "print this help and exit")
	defaults.BoolVarP(&flags.ShowVersion, "version", "V", false, "print program version and exit")

	var logLevelStr string
	defaults.StringVar(&logLevelStr, "log-level", "info", "verbosity level. one of: debug, info, warn, error")
	defaults.IntVar(&flags.MaxWorkers, "workers", 3, "number of categories fetched at once")
	defaults.StringArrayVar(&flags.OutputFiles, "out", []string{}, "write results to file (default: stdout)")
	defaults.StringVar(&flags.OutputDir, "out-dir", "", "write results to a file named after the result in this directory")

	// these override the environment, only when given
	var baseURL, game, userAgent, cacheDir string
	var cacheTTL, matchesTTL, rateLimit int
	defaults.StringVar(&baseURL, "base-url", "", "wiki host (env: LIQUIPEDIA_BASE_URL)")
	defaults.StringVar(&game, "game", "", "wiki name under the host (env: LIQUIPEDIA_GAME)")
	defaults.StringVar(&userAgent, "user-agent", "", "User-Agent header sent with requests (env: LIQUIPEDIA_USER_AGENT)")
	defaults.StringVar(&cacheDir, "cache-dir", "", "directory of cached responses (env: LIQUIPEDIA_CACHE_DIR)")
	defaults.IntVar(&cacheTTL, "cache-ttl-hours", 0, "hours a cached response stays fresh (env: LIQUIPEDIA_CACHE_TTL_HOURS)")
	defaults.IntVar(&matchesTTL, "matches-ttl-hours", 0, "hours a cached match listing stays fresh (env: LIQUIPEDIA_MATCHES_TTL_HOURS)")
	defaults.IntVar(&rateLimit, "rate-limit-seconds", 0, "seconds between requests to the wiki (env: LIQUIPEDIA_RATE_LIMIT_SECONDS)")

	var subcommand string
	if len(args) > 1 {
		subcommand = args[1]
	}

	var flagset *flag.FlagSet
	var categoryStrs []string

	switch SubCommand(subcommand) {
	case TournamentsSubCommand:
		flagset = flag.NewFlagSet(subcommand, flag.ContinueOnError)
		flagset.StringArrayVar(&categoryStrs, "category", []string{string(types.DefaultCategory)}, "tournament category page, repeatable")
		flagset.BoolVar(&flags.All, "all", false, "also read the category's tabs")
		flagset.AddFlagSet(defaults)

	default:
		flagset = defaults
	}

	if err := flagset.Parse(args); err != nil {
		return nil, fmt.Errorf("failed to parse flags: %w", err)
	}

	if flags.ShowHelp {
		printUsage(flagset)
		os.Exit(0)
	}

	if flags.ShowVersion {
		fmt.Println(version)
		os.Exit(0)
	}

	if subcommand == "" || !slices.Contains(KnownSubCommands, SubCommand(subcommand)) {
		printUsage(flagset)
		return nil, fmt.Errorf("unknown subcommand: %s", subcommand)
	}

	// program name and subcommand come first
	positional := flagset.Args()
	if len(positional) >= 2 {
		positional = positional[2:]
	}
	if name, needed := argument[SubCommand(subcommand)]; needed {
		if len(positional) != 1 || positional[0] == "" {
			return nil, fmt.Errorf("%s expects exactly one argument: <%s>", subcommand, name)
		}
		flags.Argument = positional[0]
	} else if len(positional) > 0 {
		return nil, fmt.Errorf("%s takes no arguments, got %v", subcommand, positional)
	}

	for _, categoryStr := range categoryStrs {
		category := types.Category(categoryStr)
		if !category.Known() {
			return nil, fmt.Errorf("unknown category: %s", categoryStr)
		}
		if !slices.Contains(flags.Categories, category) {
			flags.Categories = append(flags.Categories, category)
		}
	}

	logLevelMap := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}

	logLevel, exists := logLevelMap[logLevelStr]
	if !exists {
		return nil, fmt.Errorf("unknown log level: %s", logLevelStr)
	}

	if flags.MaxWorkers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", flags.MaxWorkers)
	}

	for name, value := range map[string]string{"base-url": baseURL, "game": game, "user-agent": userAgent, "cache-dir": cacheDir} {
		if flagset.Changed(name) && value == "" {
			return nil, fmt.Errorf("--%s must not be empty", name)
		}
	}
	for name, value := range map[string]int{"cache-ttl-hours": cacheTTL, "matches-ttl-hours": matchesTTL, "rate-limit-seconds": rateLimit} {
		if flagset.Changed(name) && value < 0 {
			return nil, fmt.Errorf("--%s must not be negative, got %d", name, value)
		}
	}

	if flagset.Changed("base-url") {
		flags.Config.BaseURL = &baseURL
	}
	if flagset.Changed("game") {
		flags.Config.Game = &game
	}
	if flagset.Changed("user-agent") {
		flags.Config.UserAgent = &userAgent
	}
	if flagset.Changed("cache-dir") {
		flags.Config.CacheDir = &cacheDir
	}
	if flagset.Changed("cache-ttl-hours") {
		flags.Config.CacheTTLHours = &cacheTTL
	}
	if flagset.Changed("matches-ttl-hours") {
		flags.Config.MatchesTTLHours = &matchesTTL
	}
	if flagset.Changed("rate-limit-seconds") {
		interval := time.Duration(rateLimit) * time.Second
		flags.Config.RateLimit = &interval
	}

	flags.SubCommand = SubCommand(subcommand)
	flags.LogLevel = logLevel

	return flags, nil
}

// printUsage prints usage information
func printUsage(flagset *flag.FlagSet) {
	fmt.Println("usage: liquipedia-aoe <command> [argument] [options]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  tournaments           Build a tournament catalogue from category pages")
	fmt.Println("  tournament <path>     Read one tournament page")
	fmt.Println("  matches               List upcoming and ongoing matches")
	fmt.Println("  teams                 List teams")
	fmt.Println("  players               List players")
	fmt.Println("  player <name>         Read one player page")
	fmt.Println("  transfers             List roster transfers")
	fmt.Println("  patches               List game patches")
	fmt.Println("  heroes                List civilizations")
	fmt.Println("  items                 List items")
	fmt.Println("  map <name>            Read one map page")
	fmt.Println("  wikitext <path>       Read the playoffs of a tournament from its wikitext")
	fmt.Println("  validate <file>       Validate a catalogue file")
	fmt.Println()
	fmt.Println("Options:")
	flagset.PrintDefaults()
}
