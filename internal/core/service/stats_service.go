package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/openblog/blog-api/internal/core/ports"
)

// StatsService serves platform statistics, fronted by a short-lived cache.
// Cache failures fall through to the repository; stats are informational and
// a stale or recomputed value is always acceptable.
type StatsService struct {
	repo  ports.StatsRepository
	cache ports.StatsCache
	log   zerolog.Logger
}

func NewStatsService(repo ports.StatsRepository, cache ports.StatsCache, log zerolog.Logger) *StatsService {
	return &StatsService{repo: repo, cache: cache, log: log}
}

func (s *StatsService) Totals(ctx context.Context) (*ports.StatsTotals, error) {
	if s.cache != nil {
		if totals, ok := s.cache.GetTotals(ctx); ok {
			return totals, nil
		}
	}

	totals, err := s.repo.Totals(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetTotals(ctx, totals)
	}
	return totals, nil
}

func (s *StatsService) Detailed(ctx context.Context) (*ports.DetailedStats, error) {
	if s.cache != nil {
		if detailed, ok := s.cache.GetDetailed(ctx); ok {
			return detailed, nil
		}
	}

	detailed, err := s.repo.Detailed(ctx)
	if err != nil {
		return nil, err
	}
	if s.cache != nil {
		s.cache.SetDetailed(ctx, detailed)
	}
	return detailed, nil
}
