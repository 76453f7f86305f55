package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jgivc/epgfetch/internal/adapter/discover"
	"github.com/jgivc/epgfetch/internal/adapter/httpfetch"
	"github.com/jgivc/epgfetch/internal/common"
	"github.com/jgivc/epgfetch/internal/config"
	"github.com/jgivc/epgfetch/internal/entity"
	"github.com/jgivc/epgfetch/internal/repository/index"
	"github.com/jgivc/epgfetch/internal/repository/stats"
	"github.com/jgivc/epgfetch/internal/resolver"
	"github.com/jgivc/epgfetch/internal/service/acquire"
	sindex "github.com/jgivc/epgfetch/internal/service/index"
	"github.com/jgivc/epgfetch/internal/service/merge"
	"github.com/jgivc/epgfetch/internal/storage/guide"
)

type App struct {
	cfg        *config.Config
	log        *slog.Logger
	acquirer   *acquire.Service
	indexer    *sindex.IndexerService
	merger     *merge.Service
	discoverer *discover.Discoverer
}

func New(cfgPath string) *App {
	cfg := config.MustLoad(cfgPath)

	lo := &slog.HandlerOptions{}
	switch cfg.LogLevel {
	case config.LogLevelInfo:
		lo.Level = slog.LevelInfo
	case config.LogLevelWarn:
		lo.Level = slog.LevelWarn
	case config.LogLevelError:
		lo.Level = slog.LevelError
	case config.LogLevelDebug:
		lo.Level = slog.LevelDebug
	default:
		panic("unknown log level")
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, lo)).With(slog.String("run_id", uuid.NewString()))

	var statsRepo acquire.StatsRepository = stats.NewNoopRepository()
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			panic(err)
		}

		rdb := redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			panic(err)
		}

		statsRepo = stats.NewStatsRepository(rdb, log)
	}

	store := guide.NewGuideStorage(cfg.IndexerConfig(), log)
	fetcher := httpfetch.New(cfg.FetcherConfig(), log)

	return &App{
		cfg: cfg,
		log: log,
		acquirer: acquire.NewService(
			resolver.New(cfg.Overrides), fetcher, store, statsRepo, sources(cfg), log),
		indexer:    sindex.NewIndexService(store, index.NewIndexRepository(cfg.IndexerConfig(), log), log),
		merger:     merge.NewService(cfg.MergerConfig(), log),
		discoverer: discover.New(cfg.FetcherConfig(), log),
	}
}

func sources(cfg *config.Config) []entity.Source {
	srcs := make([]entity.Source, 0, len(cfg.Sources))
	for _, sc := range cfg.Sources {
		srcs = append(srcs, entity.Source{
			Name:        sc.Name,
			BaseURL:     sc.BaseURL,
			ListingURL:  sc.ListingURL,
			FolderStyle: sc.FolderStyle,
			Patterns:    sc.Patterns,
		})
	}

	return srcs
}

// Fetch acquires every requested country sequentially, prints a per
// country tally and rebuilds the index afterwards. Only whole-run
// conditions (no countries, index write failure) come back as errors.
func (a *App) Fetch(ctx context.Context, countries []string, all bool) error {
	if all {
		countries = a.cfg.Countries
	}
	if len(countries) == 0 {
		return common.ErrNoCountries
	}

	if err := os.MkdirAll(a.cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("cannot create output dir: %w", err)
	}

	succeeded := 0
	for _, country := range countries {
		fmt.Printf("=== %s ===\n", country)

		result, err := a.acquirer.Acquire(ctx, country)
		if err != nil {
			return err
		}

		switch result.Status {
		case entity.StatusSucceeded:
			succeeded++
			fmt.Printf("  %s: saved %s from %s (%d bytes)\n",
				result.Status, result.Filename, result.Source, result.Size)
		default:
			fmt.Printf("  %s: no candidate accepted\n", result.Status)
		}
	}

	if _, err := a.indexer.Index(ctx); err != nil {
		return err
	}

	fmt.Printf("\nCompleted: %d/%d countries acquired.\n", succeeded, len(countries))

	return nil
}

// Index rebuilds index.json from the guide files currently on disk.
func (a *App) Index(ctx context.Context) error {
	entries, err := a.indexer.Index(ctx)
	if err != nil {
		return err
	}

	for i, entry := range entries {
		fmt.Printf("%d. %s -> %s (%.2f MB, %d channels, %d programmes)\n",
			i+1, entry.Slug, entry.FilePath, entry.SizeMB, entry.Channels, entry.Programmes)
	}

	return nil
}

// Merge concatenates all guide files into one gzipped stream.
func (a *App) Merge(ctx context.Context) error {
	path, err := a.merger.Merge(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Merged guides written to %s\n", path)

	return nil
}

// Discover lists the country folders a source currently publishes.
// An empty sourceName selects the first configured source.
func (a *App) Discover(ctx context.Context, sourceName string) error {
	var listingURL string
	for _, src := range a.cfg.Sources {
		if sourceName == "" || src.Name == sourceName {
			listingURL = src.ListingURL

			break
		}
	}

	if listingURL == "" {
		return fmt.Errorf("no listing url configured for source %q", sourceName)
	}

	folders, err := a.discoverer.Folders(ctx, listingURL)
	if err != nil {
		return err
	}

	for _, folder := range folders {
		fmt.Println(folder)
	}

	return nil
}
