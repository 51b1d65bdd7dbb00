package memory

import (
	"context"

	"github.com/sakif/hiredesk/internal/model"
)

// Stats recomputes the dashboard aggregates from the live collections.
//
// NO CACHED COUNTERS:
// Every call walks the candidate map again. Keeping incremental counters in
// sync with create/update/delete is exactly the kind of bookkeeping that
// drifts; at in-memory scale a full recount is effectively free and cannot
// be wrong. All four counts come from the same locked snapshot, so they are
// mutually consistent.
func (s *Store) Stats(ctx context.Context) (*model.DashboardStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := &model.DashboardStats{
		TotalPositions:  len(s.positions),
		TotalCandidates: len(s.candidates),
	}
	for _, c := range s.candidates {
		switch c.Status {
		case model.CandidateStatusInReview:
			stats.InReview++
		case model.CandidateStatusShortlisted:
			stats.Shortlisted++
		}
	}

	return stats, nil
}
