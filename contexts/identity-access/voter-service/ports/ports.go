package ports

import (
	"context"
	"time"

	"civica/contexts/identity-access/voter-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// VoterRepository owns voter persistence. CreateVoter must surface the
// violated unique field (email/phone/national id) as the matching domain
// error; the database index is the source of truth for uniqueness.
type VoterRepository interface {
	CreateVoter(ctx context.Context, voter entities.Voter) error
	GetVoter(ctx context.Context, voterID string) (entities.Voter, error)
	GetVoterByEmail(ctx context.Context, email string) (entities.Voter, bool, error)
	GetVoterByPhone(ctx context.Context, phone string) (entities.Voter, bool, error)
	UpdateLastLogin(ctx context.Context, voterID string, at time.Time) error
	SetActive(ctx context.Context, voterID string, active bool, updatedAt time.Time) error
	// DeleteVoter removes an account outright. Implementations refuse voters
	// with recorded votes so ledger references stay resolvable.
	DeleteVoter(ctx context.Context, voterID string) error
	CountVoters(ctx context.Context) (int64, error)
}
