package httpserver

import (
	"errors"
	"net/http"
	"time"

	adminerrors "civica/contexts/identity-access/admin-service/domain/errors"
	admintransport "civica/contexts/identity-access/admin-service/transport/http"
	votererrors "civica/contexts/identity-access/voter-service/domain/errors"
	votertransport "civica/contexts/identity-access/voter-service/transport/http"
	"civica/internal/platform/tokens"
)

func (s *Server) handleVoterRegister(w http.ResponseWriter, r *http.Request) {
	var req votertransport.RegisterVoterRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	voter, err := s.voters.Handler.RegisterHandler(r.Context(), req)
	if err != nil {
		s.writeVoterDomainError(w, err)
		return
	}
	token, err := s.issuer.Mint(voter.VoterID, tokens.SubjectVoter, "", time.Now())
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeData(w, http.StatusCreated, votertransport.AuthVoterResponse{Token: token, Voter: voter})
}

func (s *Server) handleVoterLogin(w http.ResponseWriter, r *http.Request) {
	var req votertransport.LoginVoterRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	voter, err := s.voters.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		s.writeVoterDomainError(w, err)
		return
	}
	token, err := s.issuer.Mint(voter.VoterID, tokens.SubjectVoter, "", time.Now())
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeData(w, http.StatusOK, votertransport.AuthVoterResponse{Token: token, Voter: voter})
}

func (s *Server) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req admintransport.LoginAdminRequest
	if !s.decodeAndValidate(w, r, &req) {
		return
	}
	admin, err := s.admins.Handler.LoginHandler(r.Context(), req)
	if err != nil {
		s.writeAdminDomainError(w, err)
		return
	}
	token, err := s.issuer.Mint(admin.AdminID, tokens.SubjectAdmin, admin.Role, time.Now())
	if err != nil {
		s.internalError(w, err)
		return
	}
	writeData(w, http.StatusOK, admintransport.AuthAdminResponse{Token: token, Admin: admin})
}

func (s *Server) handleVoterProfile(w http.ResponseWriter, r *http.Request) {
	voterID, ok := s.authenticateVoter(w, r)
	if !ok {
		return
	}
	voter, err := s.voters.Handler.ProfileHandler(r.Context(), voterID)
	if err != nil {
		s.writeVoterDomainError(w, err)
		return
	}
	writeData(w, http.StatusOK, voter)
}

func (s *Server) handleVoterDelete(w http.ResponseWriter, r *http.Request) {
	voterID, ok := s.authenticateVoter(w, r)
	if !ok {
		return
	}
	if err := s.voters.Handler.CloseHandler(r.Context(), voterID); err != nil {
		s.writeVoterDomainError(w, err)
		return
	}
	writeMessage(w, http.StatusOK, "voter account deleted")
}

func (s *Server) writeVoterDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, votererrors.ErrInvalidVoterInput),
		errors.Is(err, votererrors.ErrUnderage):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, votererrors.ErrDuplicateEmail),
		errors.Is(err, votererrors.ErrDuplicatePhone),
		errors.Is(err, votererrors.ErrDuplicateNationalID):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, votererrors.ErrVoterNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, votererrors.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, votererrors.ErrVoterInactive):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, votererrors.ErrVoterHasVoted):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.internalError(w, err)
	}
}

func (s *Server) writeAdminDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, adminerrors.ErrInvalidAdminInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, adminerrors.ErrAdminNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, adminerrors.ErrDuplicateEmail):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, adminerrors.ErrInvalidCredentials),
		errors.Is(err, adminerrors.ErrAdminInactive):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, adminerrors.ErrAccountLocked):
		writeError(w, http.StatusLocked, err.Error())
	case errors.Is(err, adminerrors.ErrForbidden),
		errors.Is(err, adminerrors.ErrSuperAdminProtected),
		errors.Is(err, adminerrors.ErrSelfDeletion):
		writeError(w, http.StatusForbidden, err.Error())
	default:
		s.internalError(w, err)
	}
}
