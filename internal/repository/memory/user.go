package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/sakif/hiredesk/internal/apperror"
	"github.com/sakif/hiredesk/internal/model"
)

// UpsertUser creates or updates the user keyed by the provider identity.
//
// First login: insert with both timestamps set to now. Later logins:
// overwrite the profile fields with the freshest provider values, refresh
// UpdatedAt, and preserve the original CreatedAt. At most one record ever
// exists per identity, and there is no delete path.
func (s *Store) UpsertUser(ctx context.Context, u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Email is unique when present. Empty emails (hidden at the provider)
	// are exempt — same rule as the sqlite backend's partial unique index.
	if u.Email != "" {
		for identity, existing := range s.users {
			if identity != u.Identity && existing.Email == u.Email {
				return apperror.Conflict(fmt.Sprintf("email %q already belongs to another account", u.Email))
			}
		}
	}

	now := time.Now()
	if existing, ok := s.users[u.Identity]; ok {
		u.CreatedAt = existing.CreatedAt
	} else {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	s.users[u.Identity] = *u
	return nil
}

// GetUserByIdentity returns a snapshot of the user, or ErrNotFound.
func (s *Store) GetUserByIdentity(ctx context.Context, identity string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[identity]
	if !ok {
		return nil, apperror.NotFoundKey("user", identity)
	}
	return &u, nil
}
