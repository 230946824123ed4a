package ports

import (
	"context"
	"time"
)

type Clock interface {
	Now() time.Time
}

// DashboardStats is the aggregate snapshot across all five stores.
type DashboardStats struct {
	TotalVoters    int64
	ActiveVoters   int64
	VotersWhoVoted int64

	TotalAdmins int64

	TotalElections     int64
	ActiveElections    int64
	CompletedElections int64

	TotalCandidates    int64
	ApprovedCandidates int64
	PendingCandidates  int64

	TotalVotes    int64
	ValidVotes    int64
	DisputedVotes int64
}

type ElectionSummary struct {
	ElectionID        string
	Title             string
	Status            string
	TotalVotesCast    int64
	TurnoutPercentage float64
}

type StatsRepository interface {
	CollectStats(ctx context.Context) (DashboardStats, error)
	ListElectionSummaries(ctx context.Context, limit int) ([]ElectionSummary, error)
}
