package queries

import (
	"context"
	"strings"
	"time"

	"civica/contexts/voting-core/vote-ledger/domain/entities"
	domainerrors "civica/contexts/voting-core/vote-ledger/domain/errors"
	"civica/contexts/voting-core/vote-ledger/domain/services"
	"civica/contexts/voting-core/vote-ledger/ports"
)

// VerificationView is the public answer to a verification-code lookup. It
// identifies the election and candidate and reports the integrity check,
// but never the voter.
type VerificationView struct {
	VerificationCode string
	ElectionID       string
	CandidateID      string
	CandidateName    string
	CandidateParty   string
	Status           entities.Status
	CastAt           time.Time
	IntegrityValid   bool
}

type VoteQueries struct {
	Votes       ports.VoteRepository
	Projections ports.ProjectionReader
}

// Verify looks a vote up by its public code and recomputes the integrity
// hash. A mismatch is reported in the view, not returned as an error.
func (q VoteQueries) Verify(ctx context.Context, verificationCode string) (VerificationView, error) {
	code := strings.ToUpper(strings.TrimSpace(verificationCode))
	if code == "" {
		return VerificationView{}, domainerrors.ErrInvalidVoteInput
	}
	vote, err := q.Votes.GetVoteByCode(ctx, code)
	if err != nil {
		return VerificationView{}, err
	}

	view := VerificationView{
		VerificationCode: vote.VerificationCode,
		ElectionID:       vote.ElectionID,
		CandidateID:      vote.CandidateID,
		Status:           vote.Status,
		CastAt:           vote.CastAt,
		IntegrityValid:   services.IntegrityValid(vote),
	}
	if candidate, found, err := q.Projections.GetCandidateProjection(ctx, vote.CandidateID); err == nil && found {
		view.CandidateName = candidate.FullName
		view.CandidateParty = candidate.Party
	}
	return view, nil
}

// History returns the voter's own votes, oldest first.
func (q VoteQueries) History(ctx context.Context, voterID string) ([]entities.Vote, error) {
	voterID = strings.TrimSpace(voterID)
	if voterID == "" {
		return nil, domainerrors.ErrInvalidVoteInput
	}
	return q.Votes.ListVoterVotes(ctx, voterID)
}

// List is the audit view: filterable, paginated, voter identifiers intact.
func (q VoteQueries) List(ctx context.Context, filter ports.ListFilter) ([]entities.Vote, int64, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Status != "" && !entities.IsValidStatus(filter.Status) {
		return nil, 0, domainerrors.ErrInvalidVoteInput
	}
	return q.Votes.ListVotes(ctx, filter)
}

func (q VoteQueries) Get(ctx context.Context, voteID string) (entities.Vote, error) {
	return q.Votes.GetVote(ctx, strings.TrimSpace(voteID))
}
