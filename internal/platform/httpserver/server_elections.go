package httpserver

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	candidateports "civica/contexts/election-operations/candidate-service/ports"
	candidatetransport "civica/contexts/election-operations/candidate-service/transport/http"
	electionentities "civica/contexts/election-operations/election-service/domain/entities"
	electionerrors "civica/contexts/election-operations/election-service/domain/errors"
	electionports "civica/contexts/election-operations/election-service/ports"
	electiontransport "civica/contexts/election-operations/election-service/transport/http"
	adminentities "civica/contexts/identity-access/admin-service/domain/entities"
)

func (s *Server) handleListElections(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := electionports.ListFilter{
		Status:       electionentities.Status(query.Get("status")),
		Type:         electionentities.ElectionType(query.Get("type")),
		Constituency: query.Get("constituency"),
		State:        query.Get("state"),
		Search:       query.Get("search"),
		Page:         parseIntQuery(query.Get("page")),
		Limit:        parseIntQuery(query.Get("limit")),
	}
	resp, err := s.elections.Handler.ListHandler(r.Context(), filter)
	if err != nil {
		s.writeElectionDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

// electionDetail is the single-election view: the election plus its approved
// ballot, so one call renders the detail page.
type electionDetail struct {
	electiontransport.ElectionResponse
	Candidates []candidatetransport.CandidateResponse `json:"candidates"`
}

func (s *Server) handleGetElection(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("election_id")
	resp, err := s.elections.Handler.GetHandler(r.Context(), electionID)
	if err != nil {
		s.writeElectionDomainError(w, err)
		return
	}
	ballot, err := s.candidates.Handler.ListHandler(r.Context(), candidateports.ListFilter{
		ElectionID:  electionID,
		VotableOnly: true,
		Page:        1,
		Limit:       100,
	})
	if err != nil {
		s.writeCandidateDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, electionDetail{
		ElectionResponse: resp,
		Candidates:       ballot.Candidates,
	})
}

func (s *Server) handleElectionsByPhase(w http.ResponseWriter, r *http.Request) {
	phase := strings.ToLower(strings.TrimSpace(r.PathValue("phase")))
	resp, err := s.elections.Handler.ByPhaseHandler(r.Context(), phase)
	if err != nil {
		s.writeElectionDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleElectionResults(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.requirePermission(w, r, adminentities.PermViewResults); !ok {
		return
	}
	resp, err := s.elections.Handler.ResultsHandler(r.Context(), r.PathValue("election_id"))
	if err != nil {
		// On this read surface an undeclared tally is forbidden, not merely
		// unprocessable.
		if errors.Is(err, electionerrors.ErrResultsNotReady) {
			writeError(w, http.StatusForbidden, err.Error())
			return
		}
		s.writeElectionDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleCreateElection(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePermission(w, r, adminentities.PermManageElections)
	if !ok {
		return
	}
	var req electiontransport.CreateElectionRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := s.elections.Handler.CreateHandler(r.Context(), req, actor.AdminID)
	if err != nil {
		s.writeElectionDomainError(w, err)
		return
	}
	s.recordActivity(r, actor.AdminID, "election_created", resp.ElectionID)
	writeData(w, http.StatusCreated, resp)
}

func (s *Server) handleUpdateElection(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePermission(w, r, adminentities.PermManageElections)
	if !ok {
		return
	}
	electionID := r.PathValue("election_id")
	var req electiontransport.UpdateElectionRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	resp, err := s.elections.Handler.UpdateHandler(r.Context(), electionID, req)
	if err != nil {
		s.writeElectionDomainError(w, err)
		return
	}
	s.recordActivity(r, actor.AdminID, "election_updated", electionID)
	writeData(w, http.StatusOK, resp)
}

func (s *Server) handleDeclareResults(w http.ResponseWriter, r *http.Request) {
	actor, ok := s.requirePermission(w, r, adminentities.PermManageElections)
	if !ok {
		return
	}
	electionID := r.PathValue("election_id")
	resp, err := s.elections.Handler.DeclareResultsHandler(r.Context(), electionID, actor.AdminID)
	if err != nil {
		s.writeElectionDomainError(w, err)
		return
	}
	s.recordActivity(r, actor.AdminID, "results_declared", electionID)
	writeData(w, http.StatusOK, resp)
}

func (s *Server) writeElectionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, electionerrors.ErrInvalidElectionInput),
		errors.Is(err, electionerrors.ErrInvalidSchedule):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, electionerrors.ErrElectionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, electionerrors.ErrElectionLocked),
		errors.Is(err, electionerrors.ErrInvalidStatusChange),
		errors.Is(err, electionerrors.ErrResultsAlreadyDeclared),
		errors.Is(err, electionerrors.ErrTieUnresolved):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, electionerrors.ErrResultsNotReady),
		errors.Is(err, electionerrors.ErrNoVotesRecorded):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.internalError(w, err)
	}
}

func parseIntQuery(raw string) int {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0
	}
	return value
}
