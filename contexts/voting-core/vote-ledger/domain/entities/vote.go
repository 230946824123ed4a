package entities

import "time"

type Status string

const (
	StatusValid       Status = "valid"
	StatusInvalid     Status = "invalid"
	StatusDisputed    Status = "disputed"
	StatusUnderReview Status = "under_review"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusValid, StatusInvalid, StatusDisputed, StatusUnderReview:
		return true
	default:
		return false
	}
}

// AuditEntry records one status change. The log is append-only.
type AuditEntry struct {
	FromStatus Status
	ToStatus   Status
	Reason     string
	ChangedBy  string
	ChangedAt  time.Time
}

type Vote struct {
	VoteID      string
	VoterID     string
	ElectionID  string
	CandidateID string

	// VoteHash is the integrity checksum over the identifying fields and
	// cast time. VoterHash is the anonymized voter reference used in
	// outbound events and public views.
	VoteHash         string
	VoterHash        string
	VerificationCode string

	Status   Status
	AuditLog []AuditEntry

	CastAt    time.Time
	UpdatedAt time.Time
}
