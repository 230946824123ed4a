package ports

import (
	"context"
	"time"

	"civica/contexts/election-operations/candidate-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// ListFilter scopes candidate listings. VotableOnly is the public view:
// approved and active candidates only.
type ListFilter struct {
	ElectionID  string
	Status      entities.Status
	Party       string
	Search      string
	VotableOnly bool
	Page        int
	Limit       int
}

type CandidateRepository interface {
	CreateCandidate(ctx context.Context, candidate entities.Candidate) error
	GetCandidate(ctx context.Context, candidateID string) (entities.Candidate, error)
	ListCandidates(ctx context.Context, filter ListFilter) ([]entities.Candidate, int64, error)
	SaveCandidate(ctx context.Context, candidate entities.Candidate) error
	// DeleteCandidate removes the row outright. Callers must have ruled out
	// recorded votes first.
	DeleteCandidate(ctx context.Context, candidateID string) error
}

// ElectionSchedule is the read-only projection of the owning election that
// nomination gating needs.
type ElectionSchedule struct {
	ElectionID  string
	Status      string
	VotingStart time.Time
	VotingEnd   time.Time
}

// VotingOpen reports whether the voting window has opened, which freezes
// candidate mutation regardless of administrative status.
func (s ElectionSchedule) VotingOpen(now time.Time) bool {
	return !now.Before(s.VotingStart)
}

type ElectionReader interface {
	GetElectionSchedule(ctx context.Context, electionID string) (ElectionSchedule, bool, error)
}
