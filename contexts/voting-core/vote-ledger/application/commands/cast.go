package commands

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	application "civica/contexts/voting-core/vote-ledger/application"
	"civica/contexts/voting-core/vote-ledger/domain/entities"
	domainerrors "civica/contexts/voting-core/vote-ledger/domain/errors"
	"civica/contexts/voting-core/vote-ledger/domain/services"
	"civica/contexts/voting-core/vote-ledger/ports"
	contractsv1 "civica/contracts/gen/events/v1"
)

const (
	EventVoteCast = "voting.vote_cast"

	// A fresh verification code collides only if twelve random characters
	// repeat; retrying a couple of times keeps the failure theoretical.
	codeRetries = 3
)

type CastVoteCommand struct {
	VoterID     string
	ElectionID  string
	CandidateID string
}

// CastVoteResult pairs the stored vote with the candidate projection so the
// transport layer can confirm the choice without another read.
type CastVoteResult struct {
	Vote      entities.Vote
	Candidate ports.CandidateProjection
}

// voteCastPayload is the outbox event body. Voter identity is carried only
// as the anonymized hash.
type voteCastPayload struct {
	VoteID      string    `json:"vote_id"`
	ElectionID  string    `json:"election_id"`
	CandidateID string    `json:"candidate_id"`
	VoterHash   string    `json:"voter_hash"`
	CastAt      time.Time `json:"cast_at"`
}

type CastUseCase struct {
	Votes       ports.VoteRepository
	Projections ports.ProjectionReader
	Clock       ports.Clock
	IDGen       ports.IDGenerator
	Logger      *slog.Logger
}

// Cast runs the ordered preconditions and then hands the insert plus all
// counter side effects to the repository as one transaction. The ordering
// matters: each check is a hard gate and nothing is written until all pass.
func (uc CastUseCase) Cast(ctx context.Context, cmd CastVoteCommand) (CastVoteResult, error) {
	logger := application.ResolveLogger(uc.Logger)
	voterID := strings.TrimSpace(cmd.VoterID)
	electionID := strings.TrimSpace(cmd.ElectionID)
	candidateID := strings.TrimSpace(cmd.CandidateID)
	if voterID == "" || electionID == "" || candidateID == "" {
		return CastVoteResult{}, domainerrors.ErrInvalidVoteInput
	}

	now := uc.now()

	election, found, err := uc.Projections.GetElectionProjection(ctx, electionID)
	if err != nil {
		return CastVoteResult{}, err
	}
	if !found {
		return CastVoteResult{}, domainerrors.ErrElectionNotFound
	}
	if !election.AcceptsVotes(now) {
		logger.Warn("vote rejected outside voting window",
			"event", "vote_cast_window_closed",
			"module", "voting-core/vote-ledger",
			"layer", "application",
			"election_id", electionID,
			"election_status", election.Status,
		)
		return CastVoteResult{}, domainerrors.ErrVotingClosed
	}

	// Friendly-error pre-check only; the unique index makes the final call
	// if two requests race past this point.
	voted, err := uc.Votes.HasVoted(ctx, voterID, electionID)
	if err != nil {
		return CastVoteResult{}, err
	}
	if voted {
		return CastVoteResult{}, domainerrors.ErrAlreadyVoted
	}

	candidate, found, err := uc.Projections.GetCandidateProjection(ctx, candidateID)
	if err != nil {
		return CastVoteResult{}, err
	}
	if !found {
		return CastVoteResult{}, domainerrors.ErrCandidateNotFound
	}
	if candidate.ElectionID != electionID {
		return CastVoteResult{}, domainerrors.ErrCandidateNotInElection
	}
	if !candidate.Votable() {
		return CastVoteResult{}, domainerrors.ErrCandidateNotVotable
	}

	voter, found, err := uc.Projections.GetVoterProjection(ctx, voterID)
	if err != nil {
		return CastVoteResult{}, err
	}
	if !found || !voter.Eligible() {
		return CastVoteResult{}, domainerrors.ErrVoterNotEligible
	}

	voteID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return CastVoteResult{}, err
	}
	vote := entities.Vote{
		VoteID:      voteID,
		VoterID:     voterID,
		ElectionID:  electionID,
		CandidateID: candidateID,
		VoteHash:    services.VoteHash(voterID, candidateID, electionID, now),
		VoterHash:   services.VoterHash(voterID, now),
		Status:      entities.StatusValid,
		CastAt:      now,
		UpdatedAt:   now,
	}

	for attempt := 0; ; attempt++ {
		vote.VerificationCode, err = services.NewVerificationCode()
		if err != nil {
			return CastVoteResult{}, err
		}
		event, err := uc.buildEvent(ctx, vote)
		if err != nil {
			return CastVoteResult{}, err
		}
		err = uc.Votes.CastVote(ctx, vote, event)
		if err == nil {
			break
		}
		if errors.Is(err, domainerrors.ErrCodeCollision) && attempt < codeRetries {
			continue
		}
		return CastVoteResult{}, err
	}

	logger.Info("vote cast",
		"event", "vote_cast",
		"module", "voting-core/vote-ledger",
		"layer", "application",
		"vote_id", vote.VoteID,
		"election_id", vote.ElectionID,
		"candidate_id", vote.CandidateID,
	)
	return CastVoteResult{Vote: vote, Candidate: candidate}, nil
}

func (uc CastUseCase) buildEvent(ctx context.Context, vote entities.Vote) (ports.OutboxMessage, error) {
	data, err := json.Marshal(voteCastPayload{
		VoteID:      vote.VoteID,
		ElectionID:  vote.ElectionID,
		CandidateID: vote.CandidateID,
		VoterHash:   vote.VoterHash,
		CastAt:      vote.CastAt,
	})
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	eventID, err := uc.IDGen.NewID(ctx)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	envelope := contractsv1.Envelope{
		EventID:       eventID,
		EventType:     EventVoteCast,
		OccurredAt:    vote.CastAt,
		SourceService: "voting-core/vote-ledger",
		SchemaVersion: 1,
		PartitionKey:  vote.ElectionID,
		Data:          data,
	}
	payload, err := json.Marshal(envelope)
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	return ports.OutboxMessage{
		ID:        eventID,
		EventType: EventVoteCast,
		Payload:   payload,
		Status:    "pending",
	}, nil
}

func (uc CastUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
