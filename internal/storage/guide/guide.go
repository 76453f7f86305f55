// Package guide persists per-country guide files and scans them back
// into index entries.
package guide

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/spf13/afero"

	"github.com/jgivc/epgfetch/internal/adapter/xmltv"
	"github.com/jgivc/epgfetch/internal/common"
	"github.com/jgivc/epgfetch/internal/config"
	"github.com/jgivc/epgfetch/internal/entity"
)

const (
	dirPerm  = 0755
	filePerm = 0644

	latestStartLayout = "2006-01-02T15:04:05"
)

type guideStorage struct {
	running atomic.Bool
	fs      afero.Fs
	cfg     *config.IndexerConfig
	now     func() time.Time
	log     *slog.Logger
}

func NewGuideStorage(cfg *config.IndexerConfig, log *slog.Logger) *guideStorage {
	return NewGuideStorageWithFS(afero.NewOsFs(), cfg, log)
}

func NewGuideStorageWithFS(fs afero.Fs, cfg *config.IndexerConfig, log *slog.Logger) *guideStorage {
	return &guideStorage{
		fs:  fs,
		cfg: cfg,
		now: time.Now,
		log: log.With(slog.String("item", "GuideStorage")),
	}
}

// SaveGuide writes (or overwrites) the guide file for one country and
// returns its path.
func (s *guideStorage) SaveGuide(slug string, data []byte) (string, error) {
	dir := filepath.Join(s.cfg.OutputDir, slug)
	if err := s.fs.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("cannot create country dir: %w", err)
	}

	path := filepath.Join(dir, s.cfg.GuideFileName)
	if err := afero.WriteFile(s.fs, path, data, filePerm); err != nil {
		return "", fmt.Errorf("cannot write guide file: %w", err)
	}

	return path, nil
}

// Scan walks the immediate subdirectories of the output root and builds
// one index entry per country whose guide file passes the size
// threshold. Directories are processed sequentially, the scan is a
// read-only pass over the tree.
func (s *guideStorage) Scan(ctx context.Context) ([]*entity.IndexEntry, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, common.ErrIndexingProcessHasAlreadyStarted
	}
	defer s.running.Store(false)

	dirs, err := afero.ReadDir(s.fs, s.cfg.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("cannot read output dir: %w", err)
	}

	var entries []*entity.IndexEntry
	for _, dir := range dirs {
		if !dir.IsDir() {
			continue
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		entry, ok := s.scanCountry(dir.Name())
		if !ok {
			continue
		}

		s.log.Info("Indexed guide",
			slog.String("country", entry.Slug),
			slog.Int("channels", entry.Channels),
			slog.Int("programmes", entry.Programmes))
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *guideStorage) scanCountry(slug string) (*entity.IndexEntry, bool) {
	path := filepath.Join(s.cfg.OutputDir, slug, s.cfg.GuideFileName)

	fi, err := s.fs.Stat(path)
	if err != nil || fi.Size() <= s.cfg.MinGuideSize {
		// Missing or undersized guides are excluded entirely, no
		// placeholder entries.
		s.log.Debug("Skip country dir", slog.String("slug", slug), slog.String("path", path))

		return nil, false
	}

	entry := &entity.IndexEntry{
		Slug:                 slug,
		Country:              slug,
		FilePath:             path,
		SizeMB:               roundMB(fi.Size()),
		LastUpdated:          fi.ModTime().UTC().Format(time.RFC3339),
		SourceLabel:          s.cfg.SourceLabel,
		GeneratedDate:        entity.SentinelUnknown,
		GeneratorLabel:       entity.SentinelUnknown,
		LatestProgrammeStart: entity.SentinelNA,
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		s.log.Error("Cannot read guide file", slog.String("path", path), slog.Any("error", err))

		return entry, true
	}

	info, err := xmltv.Analyze(data)
	if err != nil {
		// A malformed document must not abort the index build, the
		// entry keeps its sentinel fields.
		s.log.Error("Cannot parse guide file", slog.String("path", path), slog.Any("error", err))

		return entry, true
	}

	entry.Channels = info.Channels
	entry.Programmes = info.Programmes
	if info.GeneratedDate != "" {
		entry.GeneratedDate = info.GeneratedDate
	}
	if info.Generator != "" {
		entry.GeneratorLabel = info.Generator
	}

	if !info.LatestStart.IsZero() {
		entry.LatestProgrammeStart = info.LatestStart.Format(latestStartLayout)
		age := ageDays(s.now().UTC(), info.LatestStart)
		entry.AgeDays = &age
	}

	return entry, true
}

func ageDays(now, latest time.Time) int {
	days := int(now.Sub(latest).Hours() / 24)
	if days < 0 {
		return 0
	}

	return days
}

func roundMB(size int64) float64 {
	return math.Round(float64(size)/(1<<20)*100) / 100
}
