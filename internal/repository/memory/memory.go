// Package memory implements the repository interfaces with plain in-process
// state: three keyed collections plus two identifier counters, guarded by a
// single mutex.
//
// WHY AN IN-MEMORY BACKEND AT ALL?
// It is the zero-setup default — no database file, no migrations — and it is
// the reference implementation of the storage contract. The sqlite backend
// must behave identically through the repository interfaces.
//
// DURABILITY:
// None. Process restart loses everything. That is the documented trade-off
// for this backend; pick STORE_BACKEND=sqlite when records must survive.
//
// OWNED STATE, NOT GLOBALS:
// The Store is constructed once in server wiring and passed by reference to
// the services. Nothing else holds a copy of record state, and all reads
// return snapshots (copies), so callers can never mutate the store behind
// the mutex's back.
package memory

import (
	"sync"

	"github.com/sakif/hiredesk/internal/model"
	"github.com/sakif/hiredesk/internal/repository"
)

// Compile-time check that *Store provides every storage capability.
var _ repository.Store = (*Store)(nil)

// Store holds all record state.
//
// CONCURRENCY MODEL:
// One RWMutex serializes every operation, making each create/update/delete an
// atomic read-modify-write. Listings and stats take the read lock and see a
// consistent snapshot of the instant they ran; a write landing just before or
// after is simply reflected or not — no stronger isolation is promised.
// Concurrent updates to the same record are last-write-wins by construction.
type Store struct {
	mu sync.RWMutex

	positions  map[int64]model.Position
	candidates map[int64]model.Candidate
	users      map[string]model.User // keyed by provider identity

	// Identifier counters, one per collection, starting at 1.
	// They only ever increment — deleting a record never frees its id.
	nextPositionID  int64
	nextCandidateID int64
}

// New constructs an empty Store.
func New() *Store {
	return &Store{
		positions:       make(map[int64]model.Position),
		candidates:      make(map[int64]model.Candidate),
		users:           make(map[string]model.User),
		nextPositionID:  1,
		nextCandidateID: 1,
	}
}
