package httpadapter

import (
	"context"
	"log/slog"

	"civica/contexts/voting-core/vote-ledger/application/commands"
	"civica/contexts/voting-core/vote-ledger/application/queries"
	"civica/contexts/voting-core/vote-ledger/domain/entities"
	"civica/contexts/voting-core/vote-ledger/ports"
	httptransport "civica/contexts/voting-core/vote-ledger/transport/http"
)

type Handler struct {
	Cast    commands.CastUseCase
	Status  commands.StatusUseCase
	Queries queries.VoteQueries
	Logger  *slog.Logger
}

func (h Handler) CastHandler(ctx context.Context, voterID string, req httptransport.CastVoteRequest) (httptransport.CastVoteResponse, error) {
	result, err := h.Cast.Cast(ctx, commands.CastVoteCommand{
		VoterID:     voterID,
		ElectionID:  req.ElectionID,
		CandidateID: req.CandidateID,
	})
	if err != nil {
		return httptransport.CastVoteResponse{}, err
	}
	return httptransport.CastVoteResponse{
		VoteID:           result.Vote.VoteID,
		ElectionID:       result.Vote.ElectionID,
		CandidateID:      result.Vote.CandidateID,
		CandidateName:    result.Candidate.FullName,
		VerificationCode: result.Vote.VerificationCode,
		CastAt:           result.Vote.CastAt,
	}, nil
}

func (h Handler) VerifyHandler(ctx context.Context, verificationCode string) (httptransport.VerifyVoteResponse, error) {
	view, err := h.Queries.Verify(ctx, verificationCode)
	if err != nil {
		return httptransport.VerifyVoteResponse{}, err
	}
	return httptransport.VerifyVoteResponse{
		VerificationCode: view.VerificationCode,
		ElectionID:       view.ElectionID,
		CandidateID:      view.CandidateID,
		CandidateName:    view.CandidateName,
		CandidateParty:   view.CandidateParty,
		Status:           string(view.Status),
		CastAt:           view.CastAt,
		IntegrityValid:   view.IntegrityValid,
	}, nil
}

// HistoryHandler serves a voter's own votes. The voter identifier is
// dropped from the payload; the caller already knows who they are.
func (h Handler) HistoryHandler(ctx context.Context, voterID string) (httptransport.VoteHistoryResponse, error) {
	votes, err := h.Queries.History(ctx, voterID)
	if err != nil {
		return httptransport.VoteHistoryResponse{}, err
	}
	resp := httptransport.VoteHistoryResponse{Votes: make([]httptransport.VoteResponse, 0, len(votes))}
	for _, vote := range votes {
		mapped := MapVote(vote, false)
		resp.Votes = append(resp.Votes, mapped)
	}
	return resp, nil
}

func (h Handler) ListHandler(ctx context.Context, filter ports.ListFilter) (httptransport.VoteListResponse, error) {
	votes, total, err := h.Queries.List(ctx, filter)
	if err != nil {
		return httptransport.VoteListResponse{}, err
	}
	resp := httptransport.VoteListResponse{
		Votes: make([]httptransport.VoteResponse, 0, len(votes)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	if resp.Page <= 0 {
		resp.Page = 1
	}
	if resp.Limit <= 0 || resp.Limit > 200 {
		resp.Limit = 50
	}
	for _, vote := range votes {
		resp.Votes = append(resp.Votes, MapVote(vote, true))
	}
	return resp, nil
}

func (h Handler) UpdateStatusHandler(ctx context.Context, voteID string, req httptransport.UpdateVoteStatusRequest, changedBy string) (httptransport.VoteResponse, error) {
	vote, err := h.Status.UpdateStatus(ctx, commands.UpdateVoteStatusCommand{
		VoteID:    voteID,
		NewStatus: entities.Status(req.Status),
		Reason:    req.Reason,
		ChangedBy: changedBy,
	})
	if err != nil {
		return httptransport.VoteResponse{}, err
	}
	return MapVote(vote, true), nil
}

// MapVote converts the entity. auditView keeps the raw voter identifier and
// audit log; the voter-facing view carries only the hash.
func MapVote(vote entities.Vote, auditView bool) httptransport.VoteResponse {
	resp := httptransport.VoteResponse{
		VoteID:           vote.VoteID,
		VoterHash:        vote.VoterHash,
		ElectionID:       vote.ElectionID,
		CandidateID:      vote.CandidateID,
		VoteHash:         vote.VoteHash,
		VerificationCode: vote.VerificationCode,
		Status:           string(vote.Status),
		CastAt:           vote.CastAt,
		UpdatedAt:        vote.UpdatedAt,
	}
	if auditView {
		resp.VoterID = vote.VoterID
		for _, entry := range vote.AuditLog {
			resp.AuditLog = append(resp.AuditLog, httptransport.AuditEntryResponse{
				FromStatus: string(entry.FromStatus),
				ToStatus:   string(entry.ToStatus),
				Reason:     entry.Reason,
				ChangedBy:  entry.ChangedBy,
				ChangedAt:  entry.ChangedAt,
			})
		}
	}
	return resp
}
