package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sakif/hiredesk/internal/apperror"
	"github.com/sakif/hiredesk/internal/model"
)

// CreatePosition inserts the position and fills in the assigned id and
// timestamps on the caller's struct.
//
// ID GENERATION:
// The id column is INTEGER PRIMARY KEY AUTOINCREMENT — SQLite assigns the
// next value in a monotonic sequence and, with AUTOINCREMENT, never hands
// out a previously used value even after deletes. LastInsertId() reads the
// value back after the INSERT.
func (db *DB) CreatePosition(ctx context.Context, p *model.Position) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO positions (title, department, location, description, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.Title, p.Department, p.Location, p.Description, p.Status,
		p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating position: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading position id: %w", err)
	}
	p.ID = id

	return nil
}

// GetPosition returns the position or ErrNotFound.
func (db *DB) GetPosition(ctx context.Context, id int64) (*model.Position, error) {
	var p model.Position

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, department, location, description, status, created_at, updated_at
		 FROM positions WHERE id = ?`,
		id,
	).Scan(
		&p.ID, &p.Title, &p.Department, &p.Location,
		&p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("position", id)
		}
		return nil, fmt.Errorf("sqlite: getting position %d: %w", id, err)
	}

	return &p, nil
}

// ListPositions returns every position, newest first. id DESC is the
// tiebreaker for equal timestamps, matching the memory backend.
func (db *DB) ListPositions(ctx context.Context) ([]model.Position, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, title, department, location, description, status, created_at, updated_at
		 FROM positions
		 ORDER BY created_at DESC, id DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing positions: %w", err)
	}
	defer rows.Close()

	positions := []model.Position{}
	for rows.Next() {
		var p model.Position
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Department, &p.Location,
			&p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("sqlite: scanning position row: %w", err)
		}
		positions = append(positions, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating positions: %w", err)
	}

	return positions, nil
}

// UpdatePosition fetches the row, merges the supplied fields, and writes it
// back — all inside one transaction so the read-modify-write is atomic
// against concurrent writers on the same row.
func (db *DB) UpdatePosition(ctx context.Context, id int64, upd model.PositionUpdate) (*model.Position, error) {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback() // no-op after a successful Commit

	var p model.Position
	err = tx.QueryRowContext(ctx,
		`SELECT id, title, department, location, description, status, created_at, updated_at
		 FROM positions WHERE id = ?`,
		id,
	).Scan(
		&p.ID, &p.Title, &p.Department, &p.Location,
		&p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("position", id)
		}
		return nil, fmt.Errorf("sqlite: getting position %d: %w", id, err)
	}

	upd.Apply(&p)
	p.UpdatedAt = time.Now()

	if _, err := tx.ExecContext(ctx,
		`UPDATE positions
		 SET title = ?, department = ?, location = ?, description = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		p.Title, p.Department, p.Location, p.Description, p.Status,
		p.UpdatedAt, p.ID,
	); err != nil {
		return nil, fmt.Errorf("sqlite: updating position %d: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("sqlite: committing position update: %w", err)
	}

	return &p, nil
}

// DeletePosition removes the row. RowsAffected distinguishes "deleted" from
// "never existed" without a second query. No cascade: dependent candidates
// keep their dangling references.
func (db *DB) DeletePosition(ctx context.Context, id int64) error {
	res, err := db.conn.ExecContext(ctx, `DELETE FROM positions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting position %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if affected == 0 {
		return apperror.NotFound("position", id)
	}

	return nil
}
