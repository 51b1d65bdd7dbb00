package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sakif/hiredesk/internal/apperror"
	"github.com/sakif/hiredesk/internal/model"
	"github.com/sakif/hiredesk/internal/repository"
)

const candidateColumns = `id, name, email, phone, position_applied, resume_link, status, position_id, created_at, updated_at`

// scanCandidate reads one candidate row. position_id is nullable in the
// schema, so it goes through sql.NullInt64 before landing in the *int64
// model field.
func scanCandidate(row interface{ Scan(...any) error }) (*model.Candidate, error) {
	var c model.Candidate
	var positionID sql.NullInt64

	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.PositionApplied,
		&c.ResumeLink, &c.Status, &positionID, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if positionID.Valid {
		c.PositionID = &positionID.Int64
	}
	return &c, nil
}

// nullablePositionID converts the model's optional reference for binding.
func nullablePositionID(id *int64) any {
	if id == nil {
		return nil
	}
	return *id
}

// CreateCandidate inserts the candidate and fills in the assigned id and
// timestamps. The candidates table has its own AUTOINCREMENT sequence,
// independent from positions.
func (db *DB) CreateCandidate(ctx context.Context, c *model.Candidate) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO candidates (name, email, phone, position_applied, resume_link, status, position_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Name, c.Email, c.Phone, c.PositionApplied, c.ResumeLink, c.Status,
		nullablePositionID(c.PositionID), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating candidate: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading candidate id: %w", err)
	}
	c.ID = id

	return nil
}

// GetCandidate returns the candidate or ErrNotFound.
func (db *DB) GetCandidate(ctx context.Context, id int64) (*model.Candidate, error) {
	c, err := scanCandidate(db.conn.QueryRowContext(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("candidate", id)
		}
		return nil, fmt.Errorf("sqlite: getting candidate %d: %w", id, err)
	}
	return c, nil
}

// ListCandidates returns candidates matching the filter, newest first.
//
// The WHERE clause is assembled from only the supplied filter fields, each
// bound as a parameter — never concatenated user input. The search term
// becomes one parenthesised (name OR email) LIKE predicate ANDed with the
// rest; lower() on both sides makes the substring match case-insensitive.
func (db *DB) ListCandidates(ctx context.Context, filter repository.CandidateFilter) ([]model.Candidate, error) {
	query := `SELECT ` + candidateColumns + ` FROM candidates`

	var where []string
	var args []any

	if filter.Position != "" {
		where = append(where, `position_applied = ?`)
		args = append(args, filter.Position)
	}
	if filter.Status != "" {
		where = append(where, `status = ?`)
		args = append(args, filter.Status)
	}
	if filter.Search != "" {
		where = append(where, `(lower(name) LIKE ? OR lower(email) LIKE ?)`)
		pattern := "%" + strings.ToLower(filter.Search) + "%"
		args = append(args, pattern, pattern)
	}

	if len(where) > 0 {
		query += ` WHERE ` + strings.Join(where, ` AND `)
	}
	query += ` ORDER BY created_at DESC, id DESC`

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing candidates: %w", err)
	}
	defer rows.Close()

	candidates := []model.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, fmt.Errorf("sqlite: scanning candidate row: %w", err)
		}
		candidates = append(candidates, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating candidates: %w", err)
	}

	return candidates, nil
}

// UpdateCandidate fetches, merges, and writes back in one transaction —
// same shape as UpdatePosition.
func (db *DB) UpdateCandidate(ctx context.Context, id int64, upd model.CandidateUpdate) (*model.Candidate, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	c, err := scanCandidate(tx.QueryRowContext(ctx,
		`SELECT `+candidateColumns+` FROM candidates WHERE id = ?`, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("candidate", id)
		}
		return nil, fmt.Errorf("sqlite: getting candidate %d: %w", id, err)
	}

	upd.Apply(c)
	c.UpdatedAt = time.Now()

	if _, err := tx.ExecContext(ctx,
		`UPDATE candidates
		 SET name = ?, email = ?, phone = ?, position_applied = ?, resume_link = ?, status = ?, position_id = ?, updated_at = ?
		 WHERE id = ?`,
		c.Name, c.Email, c.Phone, c.PositionApplied, c.ResumeLink, c.Status,
		nullablePositionID(c.PositionID), c.UpdatedAt, c.ID,
	); err != nil {
		return nil, fmt.Errorf("sqlite: updating candidate %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing candidate update: %w", err)
	}

	return c, nil
}

// DeleteCandidate removes the row or reports ErrNotFound.
func (db *DB) DeleteCandidate(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM candidates WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting candidate %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("candidate", id)
	}

	return nil
}
