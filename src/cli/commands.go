package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/ogri-la/liquipedia-aoe-go/src/aoe"
	"github.com/ogri-la/liquipedia-aoe-go/src/liquipedia"
	"github.com/ogri-la/liquipedia-aoe-go/src/validation"
	"github.com/ogri-la/liquipedia-aoe-go/src/wikibracket"
)

// CommandHandler handles CLI commands
type CommandHandler struct {
	fetcher aoe.Fetcher
	client  *liquipedia.Client
	stdout  io.Writer
}

// NewCommandHandler creates a command handler reading through `fetcher` and
// printing results to `stdout`
func NewCommandHandler(fetcher aoe.Fetcher, workers int, stdout io.Writer) *CommandHandler {
	return &CommandHandler{
		fetcher: fetcher,
		client:  liquipedia.NewClient(fetcher, workers),
		stdout:  stdout,
	}
}

// Run executes the subcommand named in flags
func (h *CommandHandler) Run(ctx context.Context, flags *Flags) error {
	slog.Info("running command", "command", flags.SubCommand, "argument", flags.Argument)

	var (
		result any
		title  = string(flags.SubCommand)
		err    error
	)

	switch flags.SubCommand {
	case TournamentsSubCommand:
		catalogue, cerr := h.client.Catalogue(ctx, flags.Categories, flags.All)
		if cerr == nil {
			slog.Info("built catalogue", "total-tournaments", catalogue.Total)
		}
		result, err = catalogue, cerr
	case TournamentSubCommand:
		title = flags.Argument
		result, err = h.client.Tournament(ctx, flags.Argument)
	case MatchesSubCommand:
		result, err = h.client.Matches(ctx)
	case TeamsSubCommand:
		result, err = h.client.Teams(ctx)
	case PlayersSubCommand:
		result, err = h.client.Players(ctx)
	case PlayerSubCommand:
		title = flags.Argument
		result, err = h.client.Player(ctx, flags.Argument)
	case TransfersSubCommand:
		result, err = h.client.Transfers(ctx)
	case PatchesSubCommand:
		result, err = h.client.Patches(ctx)
	case HeroesSubCommand:
		result, err = h.client.Heroes(ctx)
	case ItemsSubCommand:
		result, err = h.client.Items(ctx)
	case MapSubCommand:
		title = flags.Argument
		result, err = h.client.Map(ctx, flags.Argument)
	case WikitextSubCommand:
		title = flags.Argument + " playoffs"
		result, err = h.wikitext(ctx, flags.Argument)
	case ValidateSubCommand:
		return h.validate(flags.Argument)
	default:
		return fmt.Errorf("unknown subcommand: %s", flags.SubCommand)
	}

	if err != nil {
		return fmt.Errorf("%s failed: %w", flags.SubCommand, err)
	}

	return h.write(result, title, flags)
}

// wikitext reads the playoffs of a page from its raw markup only
func (h *CommandHandler) wikitext(ctx context.Context, path string) (any, error) {
	source, err := h.fetcher.Wikitext(ctx, path)
	if err != nil {
		return nil, err
	}
	return wikibracket.Parse(source)
}

// validate checks a catalogue file
func (h *CommandHandler) validate(path string) error {
	if err := validation.ValidateCatalogueFile(path); err != nil {
		return fmt.Errorf("invalid catalogue '%s': %w", path, err)
	}
	slog.Info("catalogue is valid", "file", path)
	return nil
}

// write writes a result as JSON to the --out files, to a file in --out-dir
// named after `title`, or to stdout
func (h *CommandHandler) write(result any, title string, flags *Flags) error {
	jsonData, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", title, err)
	}

	outputFiles := flags.OutputFiles
	if len(outputFiles) == 0 && flags.OutputDir != "" {
		if err := os.MkdirAll(flags.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		outputFiles = []string{filepath.Join(flags.OutputDir, slug.Make(title)+".json")}
	}

	if len(outputFiles) == 0 {
		_, err := fmt.Fprintln(h.stdout, string(jsonData))
		return err
	}

	for _, outputFile := range outputFiles {
		if err := os.WriteFile(outputFile, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write %s to %s: %w", title, outputFile, err)
		}
		slog.Info("wrote output", "file", outputFile, "bytes", len(jsonData))
	}

	return nil
}
