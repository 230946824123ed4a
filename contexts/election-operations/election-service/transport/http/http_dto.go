package http

import "time"

type CreateElectionRequest struct {
	Title        string `json:"title" validate:"required,min=3"`
	Description  string `json:"description"`
	Type         string `json:"type" validate:"required,oneof=general by_election referendum local_body"`
	Constituency string `json:"constituency"`
	State        string `json:"state"`

	RegistrationStart time.Time `json:"registration_start" validate:"required"`
	RegistrationEnd   time.Time `json:"registration_end" validate:"required"`
	VotingStart       time.Time `json:"voting_start" validate:"required"`
	VotingEnd         time.Time `json:"voting_end" validate:"required"`
	ResultDate        time.Time `json:"result_date" validate:"required"`
}

// UpdateElectionRequest uses pointers so absent fields are left untouched.
type UpdateElectionRequest struct {
	Title        *string `json:"title" validate:"omitempty,min=3"`
	Description  *string `json:"description"`
	Type         *string `json:"type" validate:"omitempty,oneof=general by_election referendum local_body"`
	Constituency *string `json:"constituency"`
	State        *string `json:"state"`

	RegistrationStart *time.Time `json:"registration_start"`
	RegistrationEnd   *time.Time `json:"registration_end"`
	VotingStart       *time.Time `json:"voting_start"`
	VotingEnd         *time.Time `json:"voting_end"`
	ResultDate        *time.Time `json:"result_date"`

	Status *string `json:"status" validate:"omitempty,oneof=upcoming registration active completed cancelled"`
}

type ElectionResponse struct {
	ElectionID   string `json:"election_id"`
	Title        string `json:"title"`
	Description  string `json:"description,omitempty"`
	Type         string `json:"type"`
	Constituency string `json:"constituency,omitempty"`
	State        string `json:"state,omitempty"`

	RegistrationStart time.Time `json:"registration_start"`
	RegistrationEnd   time.Time `json:"registration_end"`
	VotingStart       time.Time `json:"voting_start"`
	VotingEnd         time.Time `json:"voting_end"`
	ResultDate        time.Time `json:"result_date"`

	Status string `json:"status"`
	Phase  string `json:"phase"`

	TotalRegisteredVoters int64   `json:"total_registered_voters"`
	TotalVotesCast        int64   `json:"total_votes_cast"`
	CandidateCount        int64   `json:"candidate_count"`
	TurnoutPercentage     float64 `json:"turnout_percentage"`

	IsResultDeclared  bool       `json:"is_result_declared"`
	WinnerCandidateID string     `json:"winner_candidate_id,omitempty"`
	ResultDeclaredAt  *time.Time `json:"result_declared_at,omitempty"`

	CreatedBy string    `json:"created_by,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ElectionListResponse struct {
	Elections []ElectionResponse `json:"elections"`
	Total     int64              `json:"total"`
	Page      int                `json:"page"`
	Limit     int                `json:"limit"`
}

type CandidateResultEntry struct {
	CandidateID string  `json:"candidate_id"`
	FullName    string  `json:"full_name"`
	Party       string  `json:"party,omitempty"`
	Votes       int64   `json:"votes"`
	Percentage  float64 `json:"percentage"`
}

type ElectionResultsResponse struct {
	Election ElectionResponse       `json:"election"`
	Results  []CandidateResultEntry `json:"results"`
	Winner   *CandidateResultEntry  `json:"winner,omitempty"`
}
