package http

import "time"

type CastVoteRequest struct {
	ElectionID  string `json:"election_id" validate:"required"`
	CandidateID string `json:"candidate_id" validate:"required"`
}

type UpdateVoteStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=valid invalid disputed under_review"`
	Reason string `json:"reason" validate:"required,min=3"`
}

// CastVoteResponse is what the voter takes away: the verification code and
// the confirmed choice. The raw voter identifier never leaves the ledger
// in this payload.
type CastVoteResponse struct {
	VoteID           string    `json:"vote_id"`
	ElectionID       string    `json:"election_id"`
	CandidateID      string    `json:"candidate_id"`
	CandidateName    string    `json:"candidate_name"`
	VerificationCode string    `json:"verification_code"`
	CastAt           time.Time `json:"cast_at"`
}

type VerifyVoteResponse struct {
	VerificationCode string    `json:"verification_code"`
	ElectionID       string    `json:"election_id"`
	CandidateID      string    `json:"candidate_id"`
	CandidateName    string    `json:"candidate_name,omitempty"`
	CandidateParty   string    `json:"candidate_party,omitempty"`
	Status           string    `json:"status"`
	CastAt           time.Time `json:"cast_at"`
	IntegrityValid   bool      `json:"integrity_valid"`
}

type AuditEntryResponse struct {
	FromStatus string    `json:"from_status"`
	ToStatus   string    `json:"to_status"`
	Reason     string    `json:"reason,omitempty"`
	ChangedBy  string    `json:"changed_by,omitempty"`
	ChangedAt  time.Time `json:"changed_at"`
}

// VoteResponse is the audit-facing vote view. Voter identity appears only
// here, behind the audit permission; public and voter-facing payloads carry
// the hash instead.
type VoteResponse struct {
	VoteID           string               `json:"vote_id"`
	VoterID          string               `json:"voter_id,omitempty"`
	VoterHash        string               `json:"voter_hash"`
	ElectionID       string               `json:"election_id"`
	CandidateID      string               `json:"candidate_id"`
	VoteHash         string               `json:"vote_hash"`
	VerificationCode string               `json:"verification_code,omitempty"`
	Status           string               `json:"status"`
	AuditLog         []AuditEntryResponse `json:"audit_log,omitempty"`
	CastAt           time.Time            `json:"cast_at"`
	UpdatedAt        time.Time            `json:"updated_at"`
}

type VoteListResponse struct {
	Votes []VoteResponse `json:"votes"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

type VoteHistoryResponse struct {
	Votes []VoteResponse `json:"votes"`
}
