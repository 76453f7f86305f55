// Package stats keeps per-country acquisition history in redis so
// repeated runs (cron-driven fetches) can be monitored. When no redis
// URL is configured the no-op repository is used instead.
package stats

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// KeyOutcomes is a HASH mapping "<slug>:ok" / "<slug>:fail" to run counts.
	KeyOutcomes = "epgfetch:outcomes"
	// KeyLastSuccess is a HASH mapping slug to the RFC3339 time of the
	// last successful acquisition.
	KeyLastSuccess = "epgfetch:last_success"

	fieldOK   = "ok"
	fieldFail = "fail"
)

type statsRepository struct {
	cl  *redis.Client
	now func() time.Time
	log *slog.Logger
}

func NewStatsRepository(cl *redis.Client, log *slog.Logger) *statsRepository {
	return &statsRepository{
		cl:  cl,
		now: time.Now,
		log: log.With(slog.String("item", "StatsRepository")),
	}
}

func (r *statsRepository) RecordOutcome(ctx context.Context, slug string, succeeded bool) error {
	field := fieldFail
	if succeeded {
		field = fieldOK
	}

	if err := r.cl.HIncrBy(ctx, KeyOutcomes, slug+":"+field, 1).Err(); err != nil {
		return fmt.Errorf("cannot increment outcome counter: %w", err)
	}

	if succeeded {
		ts := r.now().UTC().Format(time.RFC3339)
		if err := r.cl.HSet(ctx, KeyLastSuccess, slug, ts).Err(); err != nil {
			return fmt.Errorf("cannot store last success time: %w", err)
		}
	}

	return nil
}

type noopRepository struct{}

// NewNoopRepository returns a stats sink that records nothing.
func NewNoopRepository() *noopRepository {
	return &noopRepository{}
}

func (r *noopRepository) RecordOutcome(ctx context.Context, slug string, succeeded bool) error {
	return nil
}
