// Package service contains the business logic layer.
//
// LAYERING:
//
//	Handler (HTTP)       → parses requests, writes responses
//	Service (this layer) → validates, applies defaults, orchestrates
//	Repository (storage) → reads/writes records
//
// Services take the repository INTERFACES, not a concrete backend — the
// same service code runs against the in-memory store and SQLite, and tests
// inject whichever is convenient. Services return domain errors from
// internal/apperror; they never see an HTTP status code.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/hiredesk/internal/apperror"
	"github.com/sakif/hiredesk/internal/model"
	"github.com/sakif/hiredesk/internal/repository"
)

// PositionService handles business logic for job openings.
type PositionService struct {
	repo   repository.PositionRepository
	logger *slog.Logger
}

// NewPositionService creates a PositionService.
func NewPositionService(repo repository.PositionRepository, logger *slog.Logger) *PositionService {
	return &PositionService{repo: repo, logger: logger}
}

// Create validates the fields, applies the status default, and stores a new
// position. Title, department, and location are required; the repository
// fills in the id and timestamps.
func (s *PositionService) Create(ctx context.Context, title, department, location, description, status string) (*model.Position, error) {
	title = strings.TrimSpace(title)
	department = strings.TrimSpace(department)
	location = strings.TrimSpace(location)

	if title == "" {
		return nil, apperror.ValidationFailed("title", "title is required")
	}
	if department == "" {
		return nil, apperror.ValidationFailed("department", "department is required")
	}
	if location == "" {
		return nil, apperror.ValidationFailed("location", "location is required")
	}

	if status == "" {
		status = model.PositionStatusActive
	}

	position := &model.Position{
		Title:       title,
		Department:  department,
		Location:    location,
		Description: strings.TrimSpace(description),
		Status:      status,
	}

	if err := s.repo.CreatePosition(ctx, position); err != nil {
		s.logger.Error("failed to create position",
			slog.String("title", title),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating position: %w", err)
	}

	s.logger.Info("position created",
		slog.Int64("id", position.ID),
		slog.String("title", position.Title),
	)

	return position, nil
}

// Get returns a single position by id.
func (s *PositionService) Get(ctx context.Context, id int64) (*model.Position, error) {
	return s.repo.GetPosition(ctx, id)
}

// List returns all positions, newest first.
func (s *PositionService) List(ctx context.Context) ([]model.Position, error) {
	positions, err := s.repo.ListPositions(ctx)
	if err != nil {
		s.logger.Error("failed to list positions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing positions: %w", err)
	}
	return positions, nil
}

// Update applies a partial update. A supplied required field may not be
// blank — merging "" over a required value would break the record; a nil
// field is simply left alone. An update supplying nothing at all is legal
// and only refreshes UpdatedAt.
func (s *PositionService) Update(ctx context.Context, id int64, upd model.PositionUpdate) (*model.Position, error) {
	if err := validatePositionUpdate(upd); err != nil {
		return nil, err
	}

	position, err := s.repo.UpdatePosition(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info("position updated",
		slog.Int64("id", position.ID),
		slog.String("title", position.Title),
	)

	return position, nil
}

// Delete removes a position. Dependent candidates are untouched; their
// references go dangling, which is the documented behavior.
func (s *PositionService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeletePosition(ctx, id); err != nil {
		return err
	}

	s.logger.Info("position deleted", slog.Int64("id", id))
	return nil
}

func validatePositionUpdate(upd model.PositionUpdate) error {
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return apperror.ValidationFailed("title", "title may not be blank")
	}
	if upd.Department != nil && strings.TrimSpace(*upd.Department) == "" {
		return apperror.ValidationFailed("department", "department may not be blank")
	}
	if upd.Location != nil && strings.TrimSpace(*upd.Location) == "" {
		return apperror.ValidationFailed("location", "location may not be blank")
	}
	return nil
}
