package http

import "time"

type RegisterVoterRequest struct {
	FullName     string `json:"full_name" validate:"required,min=2"`
	Email        string `json:"email" validate:"required,email"`
	Phone        string `json:"phone" validate:"required,min=7"`
	NationalID   string `json:"national_id" validate:"required"`
	DateOfBirth  string `json:"date_of_birth" validate:"required,datetime=2006-01-02"`
	Gender       string `json:"gender" validate:"omitempty,oneof=female male other"`
	AddressLine  string `json:"address_line"`
	City         string `json:"city"`
	State        string `json:"state"`
	Constituency string `json:"constituency"`
	Password     string `json:"password" validate:"required,min=8"`
}

type LoginVoterRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// VoterResponse is the sanitized identity payload: no password hash, no
// internal tokens.
type VoterResponse struct {
	VoterID      string              `json:"voter_id"`
	FullName     string              `json:"full_name"`
	Email        string              `json:"email"`
	Phone        string              `json:"phone"`
	DateOfBirth  string              `json:"date_of_birth"`
	Gender       string              `json:"gender,omitempty"`
	AddressLine  string              `json:"address_line,omitempty"`
	City         string              `json:"city,omitempty"`
	State        string              `json:"state,omitempty"`
	Constituency string              `json:"constituency,omitempty"`
	HasVoted     bool                `json:"has_voted"`
	History      []VotingRecordEntry `json:"voting_history,omitempty"`
	IsActive     bool                `json:"is_active"`
	IsVerified   bool                `json:"is_verified"`
	LastLoginAt  *time.Time          `json:"last_login_at,omitempty"`
	CreatedAt    time.Time           `json:"created_at"`
}

type VotingRecordEntry struct {
	ElectionID string    `json:"election_id"`
	VotedAt    time.Time `json:"voted_at"`
}

type AuthVoterResponse struct {
	Token string        `json:"token"`
	Voter VoterResponse `json:"voter"`
}
