package entities

import "time"

// Status is the approval workflow state. Votability additionally requires
// IsActive, which survives approval and is cleared on soft-delete.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	default:
		return false
	}
}

type Candidate struct {
	CandidateID string
	ElectionID  string

	FullName     string
	Party        string
	PartySymbol  string
	Constituency string
	Manifesto    string
	PhotoURL     string

	Status          Status
	RejectionReason string
	IsActive        bool
	VoteCount       int64

	NominatedBy string
	NominatedAt time.Time
	ApprovedBy  string
	ApprovedAt  *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Votable reports whether the candidate may receive votes or appear in
// public listings.
func (c Candidate) Votable() bool {
	return c.Status == StatusApproved && c.IsActive
}
