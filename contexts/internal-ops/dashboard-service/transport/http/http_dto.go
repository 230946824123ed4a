package http

import "time"

type DashboardStatsResponse struct {
	TotalVoters    int64 `json:"total_voters"`
	ActiveVoters   int64 `json:"active_voters"`
	VotersWhoVoted int64 `json:"voters_who_voted"`

	TotalAdmins int64 `json:"total_admins"`

	TotalElections     int64 `json:"total_elections"`
	ActiveElections    int64 `json:"active_elections"`
	CompletedElections int64 `json:"completed_elections"`

	TotalCandidates    int64 `json:"total_candidates"`
	ApprovedCandidates int64 `json:"approved_candidates"`
	PendingCandidates  int64 `json:"pending_candidates"`

	TotalVotes    int64 `json:"total_votes"`
	ValidVotes    int64 `json:"valid_votes"`
	DisputedVotes int64 `json:"disputed_votes"`
}

type ElectionSummaryEntry struct {
	ElectionID        string  `json:"election_id"`
	Title             string  `json:"title"`
	Status            string  `json:"status"`
	TotalVotesCast    int64   `json:"total_votes_cast"`
	TurnoutPercentage float64 `json:"turnout_percentage"`
}

type DashboardResponse struct {
	Stats           DashboardStatsResponse `json:"stats"`
	ActiveElections []ElectionSummaryEntry `json:"active_elections"`
}

type ReportResponse struct {
	Type        string    `json:"type"`
	GeneratedAt time.Time `json:"generated_at"`

	Election *ElectionReportSection `json:"election,omitempty"`
	Voter    *VoterReportSection    `json:"voter,omitempty"`
	System   *SystemReportSection   `json:"system,omitempty"`
}

type ElectionReportSection struct {
	TotalElections     int64                  `json:"total_elections"`
	ActiveElections    int64                  `json:"active_elections"`
	CompletedElections int64                  `json:"completed_elections"`
	Elections          []ElectionSummaryEntry `json:"elections"`
}

type VoterReportSection struct {
	TotalVoters       int64   `json:"total_voters"`
	ActiveVoters      int64   `json:"active_voters"`
	VotersWhoVoted    int64   `json:"voters_who_voted"`
	ParticipationRate float64 `json:"participation_rate"`
}

type SystemReportSection struct {
	Stats DashboardStatsResponse `json:"stats"`
}
