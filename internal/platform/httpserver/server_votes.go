package httpserver

import (
	"errors"
	"net/http"

	adminentities "civica/contexts/identity-access/admin-service/domain/entities"
	voteentities "civica/contexts/voting-core/vote-ledger/domain/entities"
	voteerrors "civica/contexts/voting-core/vote-ledger/domain/errors"
	voteports "civica/contexts/voting-core/vote-ledger/ports"
	votetransport "civica/contexts/voting-core/vote-ledger/transport/http"
)

func (s *Server) handleCastVote(w http.ResponseWriter, r *http.Request) {
	voterID, ok := s.authenticateVoter(w, r)
	if !ok {
		return
	}
	var req votetransport.CastVoteRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := s.votes.Handler.CastHandler(r.Context(), voterID, req)
	if err != nil {
		s.writeVoteDomainError(w, err)
		return
	}
	writeData(w, http.StatusCreated, resp)
}

func (s *Server) handleVerifyVote(w http.ResponseWriter, r *http.Request) {
	resp, err := s.votes.Handler.VerifyHandler(r.Context(), r.PathValue("code"))
	if err != nil {
		s.writeVoteDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleVoteHistory(w http.ResponseWriter, r *http.Request) {
	voterID, ok := s.authenticateVoter(w, r)
	if !ok {
		return
	}
	resp, err := s.votes.Handler.HistoryHandler(r.Context(), voterID)
	if err != nil {
		s.writeVoteDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleListVotes(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requirePermission(w, r, adminentities.PermAuditVotes); !ok {
		return
	}
	query := r.URL.Query()
	filter := voteports.ListFilter{
		ElectionID:  query.Get("election_id"),
		CandidateID: query.Get("candidate_id"),
		VoterID:     query.Get("voter_id"),
		Status:      voteentities.Status(query.Get("status")),
		Page:        parseIntQuery(query.Get("page")),
		Limit:       parseIntQuery(query.Get("limit")),
	}
	resp, err := s.votes.Handler.ListHandler(r.Context(), filter)
	if err != nil {
		s.writeVoteDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleUpdateVoteStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePermission(w, r, adminentities.PermAuditVotes)
	if !ok {
		return
	}
	voteID := r.PathValue("vote_id")
	var req votetransport.UpdateVoteStatusRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := s.votes.Handler.UpdateStatusHandler(r.Context(), voteID, req, actor.AdminID)
	if err != nil {
		s.writeVoteDomainError(w, err)
		return
	}
	s.recordActivity(r, actor.AdminID, "vote_status_updated", voteID)
	writeData(w, http.StatusOK, resp)
}

func (s *Server) writeVoteDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, voteerrors.ErrInvalidVoteInput),
		errors.Is(err, voteerrors.ErrInvalidStatusChange):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, voteerrors.ErrVoteNotFound),
		errors.Is(err, voteerrors.ErrElectionNotFound),
		errors.Is(err, voteerrors.ErrCandidateNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, voteerrors.ErrAlreadyVoted):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, voteerrors.ErrVotingClosed),
		errors.Is(err, voteerrors.ErrCandidateNotInElection),
		errors.Is(err, voteerrors.ErrCandidateNotVotable),
		errors.Is(err, voteerrors.ErrVoterNotEligible):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.internalError(w, err)
	}
}
