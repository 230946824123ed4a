package httpserver

import (
	"errors"
	"net/http"

	candidateentities "civica/contexts/election-operations/candidate-service/domain/entities"
	candidateerrors "civica/contexts/election-operations/candidate-service/domain/errors"
	candidateports "civica/contexts/election-operations/candidate-service/ports"
	candidatetransport "civica/contexts/election-operations/candidate-service/transport/http"
	adminentities "civica/contexts/identity-access/admin-service/domain/entities"
)

func (s *Server) handleListCandidates(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := candidateports.ListFilter{
		ElectionID: query.Get("election_id"),
		Status:     candidateentities.Status(query.Get("status")),
		Party:      query.Get("party"),
		Search:     query.Get("search"),
		Page:       parseIntQuery(query.Get("page")),
		Limit:      parseIntQuery(query.Get("limit")),
	}
	// Unauthenticated callers only ever see the approved, active ballot.
	if _, ok := s.adminFromRequest(r); !ok {
		filter.VotableOnly = true
		filter.Status = ""
	}
	resp, err := s.candidates.Handler.ListHandler(r.Context(), filter)
	if err != nil {
		s.writeCandidateDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleGetCandidate(w http.ResponseWriter, r *http.Request) {
	_, isAdmin := s.adminFromRequest(r)
	resp, err := s.candidates.Handler.GetHandler(r.Context(), r.PathValue("candidate_id"), !isAdmin)
	if err != nil {
		s.writeCandidateDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleNominateCandidate(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePermission(w, r, adminentities.PermManageCandidates)
	if !ok {
		return
	}
	var req candidatetransport.NominateCandidateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := s.candidates.Handler.NominateHandler(r.Context(), req, actor.AdminID, string(actor.Role))
	if err != nil {
		s.writeCandidateDomainError(w, err)
		return
	}
	s.recordActivity(r, actor.AdminID, "candidate_nominated", resp.CandidateID)
	writeData(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateCandidate(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePermission(w, r, adminentities.PermManageCandidates)
	if !ok {
		return
	}
	candidateID := r.PathValue("candidate_id")
	var req candidatetransport.UpdateCandidateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := s.candidates.Handler.UpdateHandler(r.Context(), candidateID, req)
	if err != nil {
		s.writeCandidateDomainError(w, err)
		return
	}
	s.recordActivity(r, actor.AdminID, "candidate_updated", candidateID)
	writeData(w, http.StatusOK, resp)
}

// Approval and rejection are commissioner decisions; returning officers
// manage nominations but never decide them.
func (s *Server) handleApproveCandidate(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireRole(w, r, adminentities.RoleElectionCommissioner)
	if !ok {
		return
	}
	candidateID := r.PathValue("candidate_id")
	resp, err := s.candidates.Handler.ApproveHandler(r.Context(), candidateID, actor.AdminID)
	if err != nil {
		s.writeCandidateDomainError(w, err)
		return
	}
	s.recordActivity(r, actor.AdminID, "candidate_approved", candidateID)
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleRejectCandidate(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requireRole(w, r, adminentities.RoleElectionCommissioner)
	if !ok {
		return
	}
	candidateID := r.PathValue("candidate_id")
	var req candidatetransport.RejectCandidateRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := s.candidates.Handler.RejectHandler(r.Context(), candidateID, req, actor.AdminID)
	if err != nil {
		s.writeCandidateDomainError(w, err)
		return
	}
	s.recordActivity(r, actor.AdminID, "candidate_rejected", candidateID)
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteCandidate(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePermission(w, r, adminentities.PermManageCandidates)
	if !ok {
		return
	}
	candidateID := r.PathValue("candidate_id")
	resp, err := s.candidates.Handler.DeleteHandler(r.Context(), candidateID)
	if err != nil {
		s.writeCandidateDomainError(w, err)
		return
	}
	s.recordActivity(r, actor.AdminID, "candidate_deleted", candidateID)
	writeData(w, http.StatusOK, resp)
}

func (s *Server) writeCandidateDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, candidateerrors.ErrInvalidCandidateInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, candidateerrors.ErrCandidateNotFound),
		errors.Is(err, candidateerrors.ErrElectionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, candidateerrors.ErrElectionClosed),
		errors.Is(err, candidateerrors.ErrVotingWindowOpen),
		errors.Is(err, candidateerrors.ErrAlreadyDecided),
		errors.Is(err, candidateerrors.ErrCandidateHasVotes):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.internalError(w, err)
	}
}
