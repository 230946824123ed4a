package commands

import (
	"context"
	"log/slog"
	"strings"
	"time"

	application "civica/contexts/voting-core/vote-ledger/application"
	"civica/contexts/voting-core/vote-ledger/domain/entities"
	domainerrors "civica/contexts/voting-core/vote-ledger/domain/errors"
	"civica/contexts/voting-core/vote-ledger/ports"
)

type UpdateVoteStatusCommand struct {
	VoteID    string
	NewStatus entities.Status
	Reason    string
	ChangedBy string
}

type StatusUseCase struct {
	Votes  ports.VoteRepository
	Clock  ports.Clock
	Logger *slog.Logger
}

// UpdateStatus changes a vote's status and appends the audit entry. Votes
// are never rewritten beyond this field; the audit log is append-only.
func (uc StatusUseCase) UpdateStatus(ctx context.Context, cmd UpdateVoteStatusCommand) (entities.Vote, error) {
	logger := application.ResolveLogger(uc.Logger)
	if !entities.IsValidStatus(cmd.NewStatus) {
		return entities.Vote{}, domainerrors.ErrInvalidStatusChange
	}

	vote, err := uc.Votes.GetVote(ctx, strings.TrimSpace(cmd.VoteID))
	if err != nil {
		return entities.Vote{}, err
	}
	if vote.Status == cmd.NewStatus {
		return entities.Vote{}, domainerrors.ErrInvalidStatusChange
	}

	now := uc.now()
	vote.AuditLog = append(vote.AuditLog, entities.AuditEntry{
		FromStatus: vote.Status,
		ToStatus:   cmd.NewStatus,
		Reason:     strings.TrimSpace(cmd.Reason),
		ChangedBy:  strings.TrimSpace(cmd.ChangedBy),
		ChangedAt:  now,
	})
	vote.Status = cmd.NewStatus
	vote.UpdatedAt = now
	if err := uc.Votes.SaveVoteStatus(ctx, vote); err != nil {
		return entities.Vote{}, err
	}

	logger.Info("vote status updated",
		"event", "vote_status_updated",
		"module", "voting-core/vote-ledger",
		"layer", "application",
		"vote_id", vote.VoteID,
		"election_id", vote.ElectionID,
		"status", string(vote.Status),
		"changed_by", strings.TrimSpace(cmd.ChangedBy),
	)
	return vote, nil
}

func (uc StatusUseCase) now() time.Time {
	now := time.Now().UTC()
	if uc.Clock != nil {
		now = uc.Clock.Now().UTC()
	}
	return now
}
