// Package repository declares the storage capability interfaces.
//
// TWO INTERCHANGEABLE BACKENDS:
// The application runs against either the in-memory store (repository/memory)
// or SQLite (repository/sqlite), selected once at startup — never mixed at
// runtime. Services program against these interfaces and cannot tell the
// backends apart; both return the same domain errors from internal/apperror.
package repository

import (
	"context"

	"github.com/sakif/hiredesk/internal/model"
)

// CandidateFilter narrows a candidate listing. Zero-value fields impose no
// constraint; supplied fields combine with logical AND.
//
//   - Position: exact match against PositionApplied
//   - Status:   exact match against Status
//   - Search:   case-insensitive substring match against Name OR Email
type CandidateFilter struct {
	Position string
	Status   string
	Search   string
}

// IsZero reports whether the filter imposes no constraint at all.
func (f CandidateFilter) IsZero() bool {
	return f.Position == "" && f.Status == "" && f.Search == ""
}

// PositionRepository stores job openings.
//
// Create assigns the next identifier (monotonic, starts at 1, never reused)
// and fills CreatedAt/UpdatedAt. Update applies only the supplied fields and
// refreshes UpdatedAt; it fails with apperror.ErrNotFound when the id is
// absent, as do GetByID and Delete. List returns all positions ordered by
// creation time, most recent first.
// Method names are entity-prefixed so that one backend type can satisfy
// every interface at once (Store embeds them all — identical names with
// different signatures would collide).
type PositionRepository interface {
	CreatePosition(ctx context.Context, p *model.Position) error
	GetPosition(ctx context.Context, id int64) (*model.Position, error)
	ListPositions(ctx context.Context) ([]model.Position, error)
	UpdatePosition(ctx context.Context, id int64, upd model.PositionUpdate) (*model.Position, error)
	DeletePosition(ctx context.Context, id int64) error
}

// CandidateRepository stores applicants. Same contract as
// PositionRepository, with an independent identifier counter, plus filtered
// listing.
type CandidateRepository interface {
	CreateCandidate(ctx context.Context, c *model.Candidate) error
	GetCandidate(ctx context.Context, id int64) (*model.Candidate, error)
	ListCandidates(ctx context.Context, filter CandidateFilter) ([]model.Candidate, error)
	UpdateCandidate(ctx context.Context, id int64, upd model.CandidateUpdate) (*model.Candidate, error)
	DeleteCandidate(ctx context.Context, id int64) error
}

// UserRepository stores user accounts keyed by the provider-issued identity.
//
// Upsert creates the record on first login (both timestamps set) and on
// later logins overwrites the profile fields, refreshing UpdatedAt while
// preserving the original CreatedAt. There is no delete — users are never
// removed by this system.
type UserRepository interface {
	UpsertUser(ctx context.Context, u *model.User) error
	GetUserByIdentity(ctx context.Context, identity string) (*model.User, error)
}

// StatsRepository computes the dashboard aggregates from the live
// collections. No caching: every call recounts.
type StatsRepository interface {
	Stats(ctx context.Context) (*model.DashboardStats, error)
}

// Store bundles every capability a backend must provide. Both the memory and
// sqlite packages satisfy it with a single type.
type Store interface {
	PositionRepository
	CandidateRepository
	UserRepository
	StatsRepository
}
