package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sakif/hiredesk/internal/apperror"
	"github.com/sakif/hiredesk/internal/model"
	"github.com/sakif/hiredesk/internal/repository"
)

// cloneCandidate deep-copies the one pointer field. A plain struct copy
// would leave PositionID aliased between the stored record and the caller's
// snapshot, letting a read result mutate store state.
func cloneCandidate(c model.Candidate) model.Candidate {
	if c.PositionID != nil {
		pid := *c.PositionID
		c.PositionID = &pid
	}
	return c
}

// CreateCandidate assigns the next candidate identifier and stores the
// record. The candidate counter is independent from the position counter —
// both start at 1 and never reuse a value.
func (s *Store) CreateCandidate(ctx context.Context, c *model.Candidate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c.ID = s.nextCandidateID
	s.nextCandidateID++

	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	s.candidates[c.ID] = cloneCandidate(*c)
	return nil
}

// GetCandidate returns a snapshot of the candidate, or ErrNotFound.
func (s *Store) GetCandidate(ctx context.Context, id int64) (*model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.candidates[id]
	if !ok {
		return nil, apperror.NotFound("candidate", id)
	}
	c = cloneCandidate(c)
	return &c, nil
}

// ListCandidates returns candidates matching the filter, ordered by creation
// time descending (id descending breaks ties, same rule as positions).
//
// FILTER SEMANTICS:
// Supplied filter fields combine with AND. The search term is a single
// predicate that matches the name OR the email, case-insensitively — that
// OR is internal to the search predicate, then ANDed with the rest. An
// empty filter returns every candidate.
//
// This is a deliberate linear scan. The collection lives in memory and the
// filter is a handful of string comparisons; an index would be complexity
// with nothing to pay for it.
func (s *Store) ListCandidates(ctx context.Context, filter repository.CandidateFilter) ([]model.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	search := strings.ToLower(filter.Search)

	out := make([]model.Candidate, 0, len(s.candidates))
	for _, c := range s.candidates {
		if filter.Position != "" && c.PositionApplied != filter.Position {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(c.Name), search) &&
			!strings.Contains(strings.ToLower(c.Email), search) {
			continue
		}
		out = append(out, cloneCandidate(c))
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

// UpdateCandidate merges the supplied fields over the existing candidate and
// refreshes UpdatedAt, even when no field was supplied.
func (s *Store) UpdateCandidate(ctx context.Context, id int64, upd model.CandidateUpdate) (*model.Candidate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.candidates[id]
	if !ok {
		return nil, apperror.NotFound("candidate", id)
	}

	upd.Apply(&c)
	c.UpdatedAt = time.Now()
	s.candidates[id] = cloneCandidate(c)

	return &c, nil
}

// DeleteCandidate removes the candidate permanently.
func (s *Store) DeleteCandidate(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.candidates[id]; !ok {
		return apperror.NotFound("candidate", id)
	}
	delete(s.candidates, id)
	return nil
}
