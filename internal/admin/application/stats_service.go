package application

import (
	"context"

	admindomain "github.com/assessly-hq/assessly-services/api/internal/admin/domain"
)

type statsService struct {
	repo StatsRepository
}

// NewStatsService builds the operator stats use-case.
func NewStatsService(repo StatsRepository) StatsService {
	return &statsService{repo: repo}
}

func (s *statsService) Snapshot(ctx context.Context) (*admindomain.Stats, error) {
	return s.repo.Collect(ctx)
}
