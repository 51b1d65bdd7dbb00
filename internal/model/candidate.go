package model

import "time"

// Candidate statuses form a closed set. The service layer rejects anything
// outside it, so a stored Candidate always carries one of these four values.
const (
	CandidateStatusNew         = "New"
	CandidateStatusInReview    = "In Review"
	CandidateStatusShortlisted = "Shortlisted"
	CandidateStatusRejected    = "Rejected"
)

// ValidCandidateStatus reports whether s is one of the four known statuses.
func ValidCandidateStatus(s string) bool {
	switch s {
	case CandidateStatusNew, CandidateStatusInReview,
		CandidateStatusShortlisted, CandidateStatusRejected:
		return true
	}
	return false
}

// Candidate represents an applicant.
//
// PositionApplied is a denormalized copy of a position title, stored as free
// text. It is NOT a foreign key: the system never checks it against the
// Position collection, and deleting a Position leaves it (and PositionID)
// dangling on purpose. The two can diverge — that's the documented contract,
// not a bug.
//
// PositionID is an optional numeric reference to a Position. A pointer so
// that "no position linked" (null on the wire) is distinct from position 0,
// which doesn't exist anyway since IDs start at 1.
type Candidate struct {
	ID              int64     `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	Phone           string    `json:"phone"`
	PositionApplied string    `json:"positionApplied"`
	ResumeLink      string    `json:"resumeLink"`
	Status          string    `json:"status"` // defaults to CandidateStatusNew on create
	PositionID      *int64    `json:"positionId"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// CandidateUpdate is a partial update for a Candidate.
// Same nil-means-unchanged semantics as PositionUpdate.
type CandidateUpdate struct {
	Name            *string `json:"name"`
	Email           *string `json:"email"`
	Phone           *string `json:"phone"`
	PositionApplied *string `json:"positionApplied"`
	ResumeLink      *string `json:"resumeLink"`
	Status          *string `json:"status"`
	PositionID      *int64  `json:"positionId"`
}

// Apply merges the supplied fields over an existing Candidate.
func (u CandidateUpdate) Apply(c *Candidate) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Email != nil {
		c.Email = *u.Email
	}
	if u.Phone != nil {
		c.Phone = *u.Phone
	}
	if u.PositionApplied != nil {
		c.PositionApplied = *u.PositionApplied
	}
	if u.ResumeLink != nil {
		c.ResumeLink = *u.ResumeLink
	}
	if u.Status != nil {
		c.Status = *u.Status
	}
	if u.PositionID != nil {
		pid := *u.PositionID
		c.PositionID = &pid
	}
}

// DashboardStats is the aggregate summary shown on the dashboard.
// All four counts are recomputed from the live collections on every
// request — there is no cached or incremental counter to drift out of sync.
type DashboardStats struct {
	TotalPositions  int `json:"totalPositions"`
	TotalCandidates int `json:"totalCandidates"`
	InReview        int `json:"inReview"`
	Shortlisted     int `json:"shortlisted"`
}
