// Package acquire drives the resolve -> generate -> fetch -> persist
// sequence for one country: sources in priority order, candidate
// filenames in template order, first accepted payload wins.
package acquire

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jgivc/epgfetch/internal/entity"
	"github.com/jgivc/epgfetch/internal/resolver"
)

type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

type GuideStore interface {
	SaveGuide(slug string, data []byte) (string, error)
}

type StatsRepository interface {
	RecordOutcome(ctx context.Context, slug string, succeeded bool) error
}

type Service struct {
	resolver *resolver.Resolver
	fetcher  Fetcher
	store    GuideStore
	stats    StatsRepository
	sources  []entity.Source
	log      *slog.Logger
}

func NewService(res *resolver.Resolver, fetcher Fetcher, store GuideStore, stats StatsRepository,
	sources []entity.Source, log *slog.Logger) *Service {
	return &Service{
		resolver: res,
		fetcher:  fetcher,
		store:    store,
		stats:    stats,
		sources:  sources,
		log:      log.With(slog.String("item", "AcquireService")),
	}
}

// Acquire runs the full candidate trial sequence for one country. A
// rejected candidate (transport failure, bad status, undersized or
// broken payload) is never fatal, the next candidate is tried. The
// guide file is written only when a candidate is accepted; exhaustion
// is a per-country result, not an error.
func (s *Service) Acquire(ctx context.Context, displayName string) (*entity.Acquisition, error) {
	country := s.resolver.Resolve(displayName)
	result := &entity.Acquisition{Country: country, Status: entity.StatusPending}

	log := s.log.With(slog.String("country", country.DisplayName), slog.String("slug", country.Slug))

	for _, src := range s.sources {
		for cand := range Candidates(country, src) {
			result.Status = entity.StatusTrying
			log.Debug("Trying candidate", slog.String("source", cand.Source), slog.String("url", cand.URL))

			data, err := s.fetcher.Fetch(ctx, cand.URL)
			if err != nil {
				log.Debug("Candidate rejected", slog.String("url", cand.URL), slog.Any("error", err))

				continue
			}

			path, err := s.store.SaveGuide(country.Slug, data)
			if err != nil {
				return nil, fmt.Errorf("cannot save guide for %s: %w", country.DisplayName, err)
			}

			result.Status = entity.StatusSucceeded
			result.Source = src.Name
			result.Filename = cand.Filename
			result.Path = path
			result.Size = int64(len(data))

			s.recordOutcome(ctx, country.Slug, true)
			log.Info("Guide acquired",
				slog.String("source", src.Name),
				slog.String("filename", cand.Filename),
				slog.Int64("size", result.Size))

			return result, nil
		}
	}

	result.Status = entity.StatusExhausted
	s.recordOutcome(ctx, country.Slug, false)
	log.Warn("All candidates exhausted")

	return result, nil
}

func (s *Service) recordOutcome(ctx context.Context, slug string, succeeded bool) {
	if err := s.stats.RecordOutcome(ctx, slug, succeeded); err != nil {
		s.log.Error("Cannot record outcome", slog.String("slug", slug), slog.Any("error", err))
	}
}
