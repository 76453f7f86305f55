package index

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jgivc/epgfetch/internal/entity"
)

type GuideScanner interface {
	Scan(ctx context.Context) ([]*entity.IndexEntry, error)
}

type IndexRepository interface {
	Save(ctx context.Context, entries []*entity.IndexEntry) error
}

// IndexerService rebuilds the guide index: scan the output tree, emit
// the consolidated mapping. Runs strictly after all acquisitions for a
// run have completed.
type IndexerService struct {
	store GuideScanner
	repo  IndexRepository
	log   *slog.Logger
}

func NewIndexService(store GuideScanner, repo IndexRepository, log *slog.Logger) *IndexerService {
	return &IndexerService{
		store: store,
		repo:  repo,
		log:   log.With(slog.String("item", "IndexService")),
	}
}

// Index rebuilds the index from scratch. An empty tree is not an
// error, it yields an empty index reflecting that no valid guides
// exist.
func (i *IndexerService) Index(ctx context.Context) ([]*entity.IndexEntry, error) {
	entries, err := i.store.Scan(ctx)
	if err != nil {
		i.log.Error("Cannot scan", slog.Any("error", err))

		return nil, fmt.Errorf("cannot scan guide store: %w", err)
	}

	i.log.Info("Scanned guide dirs", slog.Int("count", len(entries)))

	if err := i.repo.Save(ctx, entries); err != nil {
		i.log.Error("Cannot save index", slog.Any("error", err))

		return nil, fmt.Errorf("cannot save index: %w", err)
	}

	return entries, nil
}
