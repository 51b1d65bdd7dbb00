package memory

import (
	"context"
	"sort"
	"time"

	"github.com/sakif/hiredesk/internal/apperror"
	"github.com/sakif/hiredesk/internal/model"
)

// CreatePosition assigns the next position identifier and stores the record.
//
// The pointer receiver pattern mirrors the sqlite backend: after the call
// returns, the caller's struct carries the assigned ID and timestamps. The
// map stores a copy, so later mutation of the caller's struct cannot leak
// into the store.
func (s *Store) CreatePosition(ctx context.Context, p *model.Position) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = s.nextPositionID
	s.nextPositionID++

	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	s.positions[p.ID] = *p
	return nil
}

// GetPosition returns a snapshot of the position, or ErrNotFound.
func (s *Store) GetPosition(ctx context.Context, id int64) (*model.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.positions[id]
	if !ok {
		return nil, apperror.NotFound("position", id)
	}
	return &p, nil
}

// ListPositions returns all positions ordered by creation time, most recent first.
// Identifiers are monotonic with creation, so id descending doubles as the
// tiebreaker for equal timestamps — without it, map iteration order would
// make listings flap between calls.
func (s *Store) ListPositions(ctx context.Context) ([]model.Position, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Position, 0, len(s.positions))
	for _, p := range s.positions {
		out = append(out, p)
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})

	return out, nil
}

// UpdatePosition merges the supplied fields over the existing position and refreshes
// UpdatedAt. An empty update (all fields nil) still advances UpdatedAt.
// The whole read-modify-write happens under the write lock, so concurrent
// updates to the same record serialize as last-write-wins.
func (s *Store) UpdatePosition(ctx context.Context, id int64, upd model.PositionUpdate) (*model.Position, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.positions[id]
	if !ok {
		return nil, apperror.NotFound("position", id)
	}

	upd.Apply(&p)
	p.UpdatedAt = time.Now()
	s.positions[id] = p

	return &p, nil
}

// DeletePosition removes the position permanently. Its identifier is never reused,
// and dependent candidates are NOT touched — their PositionID and
// PositionApplied references are left dangling on purpose.
func (s *Store) DeletePosition(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.positions[id]; !ok {
		return apperror.NotFound("position", id)
	}
	delete(s.positions, id)
	return nil
}
