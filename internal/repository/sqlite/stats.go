package sqlite

import (
	"context"
	"fmt"

	"github.com/sakif/hiredesk/internal/model"
)

// Stats recomputes the dashboard aggregates with fresh COUNT queries on
// every call — no cached counters to drift. The candidate counts collapse
// into one pass over the table using conditional sums.
//
// Both counts run inside one transaction so all four numbers come from
// the same snapshot — a write landing between the two statements cannot make
// them mutually inconsistent. Matches the memory backend, which holds its
// read lock across the whole recount.
func (db *DB) Stats(ctx context.Context) (*model.DashboardStats, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning stats transaction: %w", err)
	}
	defer tx.Rollback()

	stats := &model.DashboardStats{}

	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM positions`,
	).Scan(&stats.TotalPositions)
	if err != nil {
		return nil, fmt.Errorf("sqlite: counting positions: %w", err)
	}

	err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0)
		 FROM candidates`,
		model.CandidateStatusInReview,
		model.CandidateStatusShortlisted,
	).Scan(&stats.TotalCandidates, &stats.InReview, &stats.Shortlisted)
	if err != nil {
		return nil, fmt.Errorf("sqlite: counting candidates: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing stats transaction: %w", err)
	}

	return stats, nil
}
