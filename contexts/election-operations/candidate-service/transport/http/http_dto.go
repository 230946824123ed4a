package http

import "time"

type NominateCandidateRequest struct {
	ElectionID   string `json:"election_id" validate:"required"`
	FullName     string `json:"full_name" validate:"required,min=2"`
	Party        string `json:"party"`
	PartySymbol  string `json:"party_symbol"`
	Constituency string `json:"constituency"`
	Manifesto    string `json:"manifesto"`
	PhotoURL     string `json:"photo_url" validate:"omitempty,url"`
}

type UpdateCandidateRequest struct {
	FullName     *string `json:"full_name" validate:"omitempty,min=2"`
	Party        *string `json:"party"`
	PartySymbol  *string `json:"party_symbol"`
	Constituency *string `json:"constituency"`
	Manifesto    *string `json:"manifesto"`
	PhotoURL     *string `json:"photo_url" validate:"omitempty,url"`
}

type RejectCandidateRequest struct {
	Reason string `json:"reason" validate:"required,min=3"`
}

type CandidateResponse struct {
	CandidateID string `json:"candidate_id"`
	ElectionID  string `json:"election_id"`

	FullName     string `json:"full_name"`
	Party        string `json:"party,omitempty"`
	PartySymbol  string `json:"party_symbol,omitempty"`
	Constituency string `json:"constituency,omitempty"`
	Manifesto    string `json:"manifesto,omitempty"`
	PhotoURL     string `json:"photo_url,omitempty"`

	Status          string `json:"status"`
	RejectionReason string `json:"rejection_reason,omitempty"`
	IsActive        bool   `json:"is_active"`
	VoteCount       int64  `json:"vote_count"`

	NominatedBy string     `json:"nominated_by,omitempty"`
	NominatedAt time.Time  `json:"nominated_at"`
	ApprovedBy  string     `json:"approved_by,omitempty"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type CandidateListResponse struct {
	Candidates []CandidateResponse `json:"candidates"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	Limit      int                 `json:"limit"`
}

type DeleteCandidateResponse struct {
	CandidateID string `json:"candidate_id"`
	Deactivated bool   `json:"deactivated"`
}
