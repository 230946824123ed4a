package ports

import (
	"context"
	"time"

	"civica/contexts/election-operations/election-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// ListFilter defines read-side filtering/pagination for the election list.
type ListFilter struct {
	Status       entities.Status
	Type         entities.ElectionType
	Constituency string
	State        string
	Search       string
	Page         int
	Limit        int
}

type ElectionRepository interface {
	CreateElection(ctx context.Context, election entities.Election) error
	GetElection(ctx context.Context, electionID string) (entities.Election, error)
	ListElections(ctx context.Context, filter ListFilter) ([]entities.Election, int64, error)
	// SaveElection persists status/counter/result mutations.
	SaveElection(ctx context.Context, election entities.Election) error
}

// CandidateTally is one aggregation row from the vote ledger, joined with
// the candidate's nomination time for the earliest-nomination tie-break.
type CandidateTally struct {
	CandidateID string
	FullName    string
	Party       string
	Votes       int64
	NominatedAt time.Time
}

// TallyReader aggregates projections owned by other modules (votes,
// candidates, voters) that result declaration needs. Reads only.
type TallyReader interface {
	CountValidVotesByCandidate(ctx context.Context, electionID string) ([]CandidateTally, error)
	CountEligibleVoters(ctx context.Context, constituency string) (int64, error)
}
