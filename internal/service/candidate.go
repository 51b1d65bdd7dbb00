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

// CandidateService handles business logic for applicants.
type CandidateService struct {
	repo   repository.CandidateRepository
	logger *slog.Logger
}

// NewCandidateService creates a CandidateService.
func NewCandidateService(repo repository.CandidateRepository, logger *slog.Logger) *CandidateService {
	return &CandidateService{repo: repo, logger: logger}
}

// CreateCandidateInput carries the fields for a new candidate. A struct
// rather than positional parameters — seven strings in a row is how the
// phone ends up in the email column.
type CreateCandidateInput struct {
	Name            string
	Email           string
	Phone           string
	PositionApplied string
	ResumeLink      string
	Status          string
	PositionID      *int64
}

// Create validates the input, applies the "New" status default, and stores
// the candidate.
//
// STATUS IS A CLOSED SET:
// When a status is supplied it must be one of the four known values; the
// stored invariant is that a candidate's status is never anything else.
// PositionApplied, by contrast, stays free text on purpose — it is never
// checked against the Position collection.
func (s *CandidateService) Create(ctx context.Context, in CreateCandidateInput) (*model.Candidate, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	in.PositionApplied = strings.TrimSpace(in.PositionApplied)

	if in.Name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if in.Email == "" {
		return nil, apperror.ValidationFailed("email", "email is required")
	}
	if in.Phone == "" {
		return nil, apperror.ValidationFailed("phone", "phone is required")
	}
	if in.PositionApplied == "" {
		return nil, apperror.ValidationFailed("positionApplied", "positionApplied is required")
	}

	if in.Status == "" {
		in.Status = model.CandidateStatusNew
	} else if !model.ValidCandidateStatus(in.Status) {
		return nil, apperror.ValidationFailed("status",
			fmt.Sprintf("status must be one of %q, %q, %q, %q",
				model.CandidateStatusNew, model.CandidateStatusInReview,
				model.CandidateStatusShortlisted, model.CandidateStatusRejected))
	}

	candidate := &model.Candidate{
		Name:            in.Name,
		Email:           in.Email,
		Phone:           in.Phone,
		PositionApplied: in.PositionApplied,
		ResumeLink:      strings.TrimSpace(in.ResumeLink),
		Status:          in.Status,
		PositionID:      in.PositionID,
	}

	if err := s.repo.CreateCandidate(ctx, candidate); err != nil {
		s.logger.Error("failed to create candidate",
			slog.String("name", in.Name),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating candidate: %w", err)
	}

	s.logger.Info("candidate created",
		slog.Int64("id", candidate.ID),
		slog.String("name", candidate.Name),
		slog.String("position", candidate.PositionApplied),
	)

	return candidate, nil
}

// Get returns a single candidate by id.
func (s *CandidateService) Get(ctx context.Context, id int64) (*model.Candidate, error) {
	return s.repo.GetCandidate(ctx, id)
}

// List returns candidates matching the filter, newest first. An empty
// filter returns everything.
func (s *CandidateService) List(ctx context.Context, filter repository.CandidateFilter) ([]model.Candidate, error) {
	candidates, err := s.repo.ListCandidates(ctx, filter)
	if err != nil {
		s.logger.Error("failed to list candidates", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing candidates: %w", err)
	}
	return candidates, nil
}

// Update applies a partial update with the same rules as Create: supplied
// required fields may not be blank, and a supplied status must belong to
// the closed set.
func (s *CandidateService) Update(ctx context.Context, id int64, upd model.CandidateUpdate) (*model.Candidate, error) {
	if err := validateCandidateUpdate(upd); err != nil {
		return nil, err
	}

	candidate, err := s.repo.UpdateCandidate(ctx, id, upd)
	if err != nil {
		return nil, err
	}

	s.logger.Info("candidate updated",
		slog.Int64("id", candidate.ID),
		slog.String("status", candidate.Status),
	)

	return candidate, nil
}

// Delete removes a candidate.
func (s *CandidateService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteCandidate(ctx, id); err != nil {
		return err
	}

	s.logger.Info("candidate deleted", slog.Int64("id", id))
	return nil
}

func validateCandidateUpdate(upd model.CandidateUpdate) error {
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return apperror.ValidationFailed("name", "name may not be blank")
	}
	if upd.Email != nil && strings.TrimSpace(*upd.Email) == "" {
		return apperror.ValidationFailed("email", "email may not be blank")
	}
	if upd.Phone != nil && strings.TrimSpace(*upd.Phone) == "" {
		return apperror.ValidationFailed("phone", "phone may not be blank")
	}
	if upd.PositionApplied != nil && strings.TrimSpace(*upd.PositionApplied) == "" {
		return apperror.ValidationFailed("positionApplied", "positionApplied may not be blank")
	}
	if upd.Status != nil && !model.ValidCandidateStatus(*upd.Status) {
		return apperror.ValidationFailed("status",
			fmt.Sprintf("status must be one of %q, %q, %q, %q",
				model.CandidateStatusNew, model.CandidateStatusInReview,
				model.CandidateStatusShortlisted, model.CandidateStatusRejected))
	}
	return nil
}
