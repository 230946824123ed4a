package ports

import (
	"context"
	"time"

	"civica/contexts/voting-core/vote-ledger/domain/entities"
	contractsv1 "civica/contracts/gen/events/v1"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// ElectionProjection is the read-only slice of election state the cast
// preconditions need.
type ElectionProjection struct {
	ElectionID  string
	Status      string
	VotingStart time.Time
	VotingEnd   time.Time
}

// AcceptsVotes is the dual check: the clock must be inside the voting
// window and the administrative status must be active. Both, always.
func (e ElectionProjection) AcceptsVotes(now time.Time) bool {
	inWindow := !now.Before(e.VotingStart) && now.Before(e.VotingEnd)
	return inWindow && e.Status == "active"
}

type CandidateProjection struct {
	CandidateID string
	ElectionID  string
	FullName    string
	Party       string
	Status      string
	IsActive    bool
}

func (c CandidateProjection) Votable() bool {
	return c.Status == "approved" && c.IsActive
}

type VoterProjection struct {
	VoterID    string
	IsActive   bool
	IsVerified bool
}

func (v VoterProjection) Eligible() bool {
	return v.IsActive && v.IsVerified
}

// ProjectionReader reads state owned by other modules. Reads only; all
// writes to those tables stay with their owners, except the cast-time side
// effects the VoteRepository performs transactionally.
type ProjectionReader interface {
	GetElectionProjection(ctx context.Context, electionID string) (ElectionProjection, bool, error)
	GetCandidateProjection(ctx context.Context, candidateID string) (CandidateProjection, bool, error)
	GetVoterProjection(ctx context.Context, voterID string) (VoterProjection, bool, error)
}

type ListFilter struct {
	ElectionID  string
	CandidateID string
	VoterID     string
	Status      entities.Status
	Page        int
	Limit       int
}

// OutboxMessage is a row persisted inside the same transaction as the vote
// and relayed to the message bus by the worker.
type OutboxMessage struct {
	ID         string
	EventType  string
	Payload    []byte
	Status     string // pending, published, failed
	RetryCount int
}

type VoteRepository interface {
	// CastVote inserts the vote, applies the counter side effects, and
	// appends the outbox event, all in one transaction. Unique violations
	// surface as ErrAlreadyVoted or ErrCodeCollision.
	CastVote(ctx context.Context, vote entities.Vote, event OutboxMessage) error
	HasVoted(ctx context.Context, voterID string, electionID string) (bool, error)
	GetVote(ctx context.Context, voteID string) (entities.Vote, error)
	GetVoteByCode(ctx context.Context, verificationCode string) (entities.Vote, error)
	ListVotes(ctx context.Context, filter ListFilter) ([]entities.Vote, int64, error)
	ListVoterVotes(ctx context.Context, voterID string) ([]entities.Vote, error)
	// SaveVoteStatus persists a status change plus its audit entries.
	SaveVoteStatus(ctx context.Context, vote entities.Vote) error
}

type OutboxRepository interface {
	ListPendingOutbox(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkOutboxPublished(ctx context.Context, outboxID string, publishedAt time.Time) error
	MarkOutboxFailed(ctx context.Context, outboxID string, failedAt time.Time) error
}

type EventPublisher interface {
	Publish(ctx context.Context, topic string, event contractsv1.Envelope) error
}
