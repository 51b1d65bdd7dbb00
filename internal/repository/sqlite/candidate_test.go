package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/sakif/hiredesk/internal/apperror"
	"github.com/sakif/hiredesk/internal/model"
	"github.com/sakif/hiredesk/internal/repository"
)

func createTestCandidate(t *testing.T, db *DB, name, email, position, status string) *model.Candidate {
	t.Helper()
	c := &model.Candidate{
		Name:            name,
		Email:           email,
		Phone:           "555-0100",
		PositionApplied: position,
		Status:          status,
	}
	if err := db.CreateCandidate(context.Background(), c); err != nil {
		t.Fatalf("CreateCandidate(%q): %v", name, err)
	}
	return c
}

// =========================================================================
// CREATE / GET TESTS
// =========================================================================

func TestCreateCandidate(t *testing.T) {
	db := newTestDB(t)

	posID := int64(7)
	c := &model.Candidate{
		Name:            "Ada Lovelace",
		Email:           "ada@example.com",
		Phone:           "555-0100",
		PositionApplied: "Backend Engineer",
		ResumeLink:      "https://example.com/cv.pdf",
		Status:          model.CandidateStatusNew,
		PositionID:      &posID,
	}

	if err := db.CreateCandidate(context.Background(), c); err != nil {
		t.Fatalf("CreateCandidate() error = %v", err)
	}
	if c.ID == 0 {
		t.Error("CreateCandidate() did not set ID")
	}

	found, err := db.GetCandidate(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("GetCandidate() error = %v", err)
	}
	if found.Name != "Ada Lovelace" {
		t.Errorf("Name = %q, want %q", found.Name, "Ada Lovelace")
	}
	if found.PositionID == nil || *found.PositionID != 7 {
		t.Errorf("PositionID = %v, want 7", found.PositionID)
	}
}

// TestCreateCandidate_NullPositionID: a nil PositionID round-trips as SQL
// NULL, not as zero.
func TestCreateCandidate_NullPositionID(t *testing.T) {
	db := newTestDB(t)

	c := createTestCandidate(t, db, "Ada", "ada@example.com", "Backend Engineer", model.CandidateStatusNew)

	found, err := db.GetCandidate(context.Background(), c.ID)
	if err != nil {
		t.Fatalf("GetCandidate() error = %v", err)
	}
	if found.PositionID != nil {
		t.Errorf("PositionID = %v, want nil", *found.PositionID)
	}
}

func TestGetCandidate_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.GetCandidate(context.Background(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetCandidate(999) error = %v, want ErrNotFound", err)
	}
}

// =========================================================================
// FILTER TESTS
// =========================================================================

func seedCandidates(t *testing.T, db *DB) {
	t.Helper()
	createTestCandidate(t, db, "John Doe", "john@example.com", "Backend Engineer", model.CandidateStatusNew)
	createTestCandidate(t, db, "Jane Smith", "jdoe@corp.com", "Backend Engineer", model.CandidateStatusInReview)
	createTestCandidate(t, db, "Grace Hopper", "grace@navy.mil", "Compiler Engineer", model.CandidateStatusShortlisted)
	createTestCandidate(t, db, "Alan Kay", "alan@parc.org", "Research Scientist", model.CandidateStatusInReview)
}

func TestListCandidates_NoFilter(t *testing.T) {
	db := newTestDB(t)
	seedCandidates(t, db)

	got, err := db.ListCandidates(context.Background(), repository.CandidateFilter{})
	if err != nil {
		t.Fatalf("ListCandidates() error = %v", err)
	}
	if len(got) != 4 {
		t.Errorf("got %d candidates, want 4", len(got))
	}

	// Newest first: the last seeded candidate leads.
	if got[0].Name != "Alan Kay" {
		t.Errorf("first candidate = %q, want %q", got[0].Name, "Alan Kay")
	}
}

func TestListCandidates_FilterByPosition(t *testing.T) {
	db := newTestDB(t)
	seedCandidates(t, db)

	got, err := db.ListCandidates(context.Background(), repository.CandidateFilter{
		Position: "Backend Engineer",
	})
	if err != nil {
		t.Fatalf("ListCandidates() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d candidates, want 2", len(got))
	}
}

func TestListCandidates_FilterByStatus(t *testing.T) {
	db := newTestDB(t)
	seedCandidates(t, db)

	got, err := db.ListCandidates(context.Background(), repository.CandidateFilter{
		Status: model.CandidateStatusInReview,
	})
	if err != nil {
		t.Fatalf("ListCandidates() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d candidates, want 2", len(got))
	}
}

// TestListCandidates_SearchNameOrEmail: "doe" hits John Doe's name and Jane
// Smith's jdoe@ email — substring match on either field counts.
func TestListCandidates_SearchNameOrEmail(t *testing.T) {
	db := newTestDB(t)
	seedCandidates(t, db)

	got, err := db.ListCandidates(context.Background(), repository.CandidateFilter{
		Search: "doe",
	})
	if err != nil {
		t.Fatalf("ListCandidates() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("search %q matched %d, want 2", "doe", len(got))
	}
}

func TestListCandidates_SearchCaseInsensitive(t *testing.T) {
	db := newTestDB(t)
	seedCandidates(t, db)

	got, err := db.ListCandidates(context.Background(), repository.CandidateFilter{
		Search: "HOPPER",
	})
	if err != nil {
		t.Fatalf("ListCandidates() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Grace Hopper" {
		t.Errorf("case-insensitive search got %d results", len(got))
	}
}

func TestListCandidates_CombinedFilters(t *testing.T) {
	db := newTestDB(t)
	seedCandidates(t, db)

	got, err := db.ListCandidates(context.Background(), repository.CandidateFilter{
		Position: "Backend Engineer",
		Status:   model.CandidateStatusInReview,
		Search:   "doe",
	})
	if err != nil {
		t.Fatalf("ListCandidates() error = %v", err)
	}
	if len(got) != 1 || got[0].Name != "Jane Smith" {
		t.Errorf("combined filters: got %v, want only Jane Smith", got)
	}
}

// =========================================================================
// UPDATE / DELETE TESTS
// =========================================================================

func TestUpdateCandidate_Status(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c := createTestCandidate(t, db, "Ada", "ada@example.com", "Backend Engineer", model.CandidateStatusNew)

	updated, err := db.UpdateCandidate(ctx, c.ID, model.CandidateUpdate{
		Status: strPtr(model.CandidateStatusShortlisted),
	})
	if err != nil {
		t.Fatalf("UpdateCandidate() error = %v", err)
	}
	if updated.Status != model.CandidateStatusShortlisted {
		t.Errorf("Status = %q, want %q", updated.Status, model.CandidateStatusShortlisted)
	}
	if updated.Name != "Ada" {
		t.Errorf("Name = %q, want unchanged", updated.Name)
	}
}

func TestUpdateCandidate_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.UpdateCandidate(context.Background(), 42, model.CandidateUpdate{Name: strPtr("x")})
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("UpdateCandidate(42) error = %v, want ErrNotFound", err)
	}
}

func TestDeleteCandidate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	c := createTestCandidate(t, db, "Ada", "ada@example.com", "Backend Engineer", model.CandidateStatusNew)

	if err := db.DeleteCandidate(ctx, c.ID); err != nil {
		t.Fatalf("DeleteCandidate() error = %v", err)
	}

	_, err := db.GetCandidate(ctx, c.ID)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("GetCandidate after delete: error = %v, want ErrNotFound", err)
	}
}

func TestDeleteCandidate_NotFound(t *testing.T) {
	db := newTestDB(t)

	err := db.DeleteCandidate(context.Background(), 999)
	if !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("DeleteCandidate(999) error = %v, want ErrNotFound", err)
	}
}
