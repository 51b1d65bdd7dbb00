package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sakif/hiredesk/internal/model"
	"github.com/sakif/hiredesk/internal/repository"
)

// DashboardService exposes the aggregate counts for the dashboard.
// It is a thin pass-through: the repository recomputes the counts from the
// live collections on every call, so there is no state here to manage.
// Either all four counts come back or the whole call fails.
type DashboardService struct {
	repo   repository.StatsRepository
	logger *slog.Logger
}

// NewDashboardService creates a DashboardService.
func NewDashboardService(repo repository.StatsRepository, logger *slog.Logger) *DashboardService {
	return &DashboardService{repo: repo, logger: logger}
}

// Stats returns the current dashboard aggregates.
func (s *DashboardService) Stats(ctx context.Context) (*model.DashboardStats, error) {
	stats, err := s.repo.Stats(ctx)
	if err != nil {
		s.logger.Error("failed to compute dashboard stats", slog.String("error", err.Error()))
		return nil, fmt.Errorf("computing dashboard stats: %w", err)
	}
	return stats, nil
}
