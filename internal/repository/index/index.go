// Package index writes the consolidated guide index. The file is a
// complete replacement on every save, never a merge with a previous
// index.
package index

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/jgivc/epgfetch/internal/config"
	"github.com/jgivc/epgfetch/internal/entity"
)

const filePerm = 0644

type indexRepository struct {
	fs  afero.Fs
	cfg *config.IndexerConfig
	log *slog.Logger
}

func NewIndexRepository(cfg *config.IndexerConfig, log *slog.Logger) *indexRepository {
	return NewIndexRepositoryWithFS(afero.NewOsFs(), cfg, log)
}

func NewIndexRepositoryWithFS(fs afero.Fs, cfg *config.IndexerConfig, log *slog.Logger) *indexRepository {
	return &indexRepository{
		fs:  fs,
		cfg: cfg,
		log: log.With(slog.String("item", "IndexRepository")),
	}
}

// Save serializes the entries keyed by slug. Map keys marshal in sorted
// order, so reruns over an unchanged tree produce byte-identical output.
func (r *indexRepository) Save(ctx context.Context, entries []*entity.IndexEntry) error {
	index := make(map[string]*entity.IndexEntry, len(entries))
	for _, entry := range entries {
		index[entry.Slug] = entry
	}

	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal index: %w", err)
	}
	data = append(data, '\n')

	path := filepath.Join(r.cfg.OutputDir, r.cfg.IndexFileName)
	if err := afero.WriteFile(r.fs, path, data, filePerm); err != nil {
		return fmt.Errorf("cannot write index file: %w", err)
	}

	r.log.Info("Index written", slog.String("path", path), slog.Int("countries", len(entries)))

	return nil
}
