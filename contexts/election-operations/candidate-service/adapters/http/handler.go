package httpadapter

import (
	"context"
	"log/slog"

	"civica/contexts/election-operations/candidate-service/application"
	"civica/contexts/election-operations/candidate-service/domain/entities"
	"civica/contexts/election-operations/candidate-service/ports"
	httptransport "civica/contexts/election-operations/candidate-service/transport/http"
)

type Handler struct {
	Service application.Service
	Logger  *slog.Logger
}

func (h Handler) NominateHandler(ctx context.Context, req httptransport.NominateCandidateRequest, nominatedBy string, nominatorRole string) (httptransport.CandidateResponse, error) {
	candidate, err := h.Service.Nominate(ctx, application.NominateCandidateCommand{
		ElectionID:    req.ElectionID,
		FullName:      req.FullName,
		Party:         req.Party,
		PartySymbol:   req.PartySymbol,
		Constituency:  req.Constituency,
		Manifesto:     req.Manifesto,
		PhotoURL:      req.PhotoURL,
		NominatedBy:   nominatedBy,
		NominatorRole: nominatorRole,
	})
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return MapCandidate(candidate), nil
}

func (h Handler) UpdateHandler(ctx context.Context, candidateID string, req httptransport.UpdateCandidateRequest) (httptransport.CandidateResponse, error) {
	candidate, err := h.Service.Update(ctx, candidateID, application.UpdateCandidateCommand{
		FullName:     req.FullName,
		Party:        req.Party,
		PartySymbol:  req.PartySymbol,
		Constituency: req.Constituency,
		Manifesto:    req.Manifesto,
		PhotoURL:     req.PhotoURL,
	})
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return MapCandidate(candidate), nil
}

func (h Handler) ApproveHandler(ctx context.Context, candidateID string, approvedBy string) (httptransport.CandidateResponse, error) {
	candidate, err := h.Service.Approve(ctx, candidateID, approvedBy)
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return MapCandidate(candidate), nil
}

func (h Handler) RejectHandler(ctx context.Context, candidateID string, req httptransport.RejectCandidateRequest, rejectedBy string) (httptransport.CandidateResponse, error) {
	candidate, err := h.Service.Reject(ctx, candidateID, req.Reason, rejectedBy)
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return MapCandidate(candidate), nil
}

func (h Handler) DeleteHandler(ctx context.Context, candidateID string) (httptransport.DeleteCandidateResponse, error) {
	deactivated, err := h.Service.Delete(ctx, candidateID)
	if err != nil {
		return httptransport.DeleteCandidateResponse{}, err
	}
	return httptransport.DeleteCandidateResponse{
		CandidateID: candidateID,
		Deactivated: deactivated,
	}, nil
}

// GetHandler serves a single candidate. Public callers only see votable
// candidates; anything else reads as not found.
func (h Handler) GetHandler(ctx context.Context, candidateID string, publicView bool) (httptransport.CandidateResponse, error) {
	candidate, err := h.Service.Get(ctx, candidateID, publicView)
	if err != nil {
		return httptransport.CandidateResponse{}, err
	}
	return MapCandidate(candidate), nil
}

func (h Handler) ListHandler(ctx context.Context, filter ports.ListFilter) (httptransport.CandidateListResponse, error) {
	candidates, total, err := h.Service.List(ctx, filter)
	if err != nil {
		return httptransport.CandidateListResponse{}, err
	}
	resp := httptransport.CandidateListResponse{
		Candidates: make([]httptransport.CandidateResponse, 0, len(candidates)),
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	if resp.Page <= 0 {
		resp.Page = 1
	}
	if resp.Limit <= 0 || resp.Limit > 100 {
		resp.Limit = 20
	}
	for _, candidate := range candidates {
		resp.Candidates = append(resp.Candidates, MapCandidate(candidate))
	}
	return resp, nil
}

func MapCandidate(candidate entities.Candidate) httptransport.CandidateResponse {
	return httptransport.CandidateResponse{
		CandidateID:     candidate.CandidateID,
		ElectionID:      candidate.ElectionID,
		FullName:        candidate.FullName,
		Party:           candidate.Party,
		PartySymbol:     candidate.PartySymbol,
		Constituency:    candidate.Constituency,
		Manifesto:       candidate.Manifesto,
		PhotoURL:        candidate.PhotoURL,
		Status:          string(candidate.Status),
		RejectionReason: candidate.RejectionReason,
		IsActive:        candidate.IsActive,
		VoteCount:       candidate.VoteCount,
		NominatedBy:     candidate.NominatedBy,
		NominatedAt:     candidate.NominatedAt,
		ApprovedBy:      candidate.ApprovedBy,
		ApprovedAt:      candidate.ApprovedAt,
		CreatedAt:       candidate.CreatedAt,
		UpdatedAt:       candidate.UpdatedAt,
	}
}
