package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/sakif/hiredesk/internal/apperror"
	"github.com/sakif/hiredesk/internal/model"
)

// UpsertUser creates or updates the user keyed by the provider identity.
//
// We look the row up first rather than using INSERT OR REPLACE: REPLACE
// would discard the original created_at, and the upsert contract requires
// preserving it across logins. The two-step read-then-write runs in a
// transaction so concurrent first-logins for the same identity cannot both
// take the INSERT path.
func (db *DB) UpsertUser(ctx context.Context, u *model.User) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("sqlite: beginning transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()

	var createdAt time.Time
	err = tx.QueryRowContext(ctx,
		`SELECT created_at FROM users WHERE identity = ?`, u.Identity,
	).Scan(&createdAt)

	switch {
	case err == sql.ErrNoRows:
		u.CreatedAt = now
		u.UpdatedAt = now
		_, err = tx.ExecContext(ctx,
			`INSERT INTO users (identity, email, first_name, last_name, avatar_url, created_at, updated_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			u.Identity, u.Email, u.FirstName, u.LastName, u.AvatarURL,
			u.CreatedAt, u.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperror.Conflict(fmt.Sprintf("email %q already belongs to another account", u.Email))
			}
			return fmt.Errorf("sqlite: inserting user %s: %w", u.Identity, err)
		}

	case err != nil:
		return fmt.Errorf("sqlite: looking up user %s: %w", u.Identity, err)

	default:
		u.CreatedAt = createdAt
		u.UpdatedAt = now
		_, err = tx.ExecContext(ctx,
			`UPDATE users SET email = ?, first_name = ?, last_name = ?, avatar_url = ?, updated_at = ?
			 WHERE identity = ?`,
			u.Email, u.FirstName, u.LastName, u.AvatarURL, u.UpdatedAt,
			u.Identity,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return apperror.Conflict(fmt.Sprintf("email %q already belongs to another account", u.Email))
			}
			return fmt.Errorf("sqlite: updating user %s: %w", u.Identity, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("sqlite: committing user upsert: %w", err)
	}

	return nil
}

// GetUserByIdentity returns the user or ErrNotFound.
func (db *DB) GetUserByIdentity(ctx context.Context, identity string) (*model.User, error) {
	var u model.User

	err := db.conn.QueryRowContext(ctx,
		`SELECT identity, email, first_name, last_name, avatar_url, created_at, updated_at
		 FROM users WHERE identity = ?`,
		identity,
	).Scan(
		&u.Identity, &u.Email, &u.FirstName, &u.LastName, &u.AvatarURL,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFoundKey("user", identity)
		}
		return nil, fmt.Errorf("sqlite: getting user %s: %w", identity, err)
	}

	return &u, nil
}

// isUniqueViolation detects SQLite unique-constraint failures. The pure-Go
// driver does not export a typed error for this, so the constraint name in
// the message is the only signal available.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
