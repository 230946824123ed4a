package httpserver

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	candidateservice "civica/contexts/election-operations/candidate-service"
	electionservice "civica/contexts/election-operations/election-service"
	adminservice "civica/contexts/identity-access/admin-service"
	adminentities "civica/contexts/identity-access/admin-service/domain/entities"
	adminpolicy "civica/contexts/identity-access/admin-service/domain/services"
	voterservice "civica/contexts/identity-access/voter-service"
	dashboardservice "civica/contexts/internal-ops/dashboard-service"
	voteledger "civica/contexts/voting-core/vote-ledger"
	"civica/internal/platform/tokens"

	_ "civica/internal/platform/httpserver/docs"
)

// Options carries the non-module knobs the server needs.
type Options struct {
	Addr              string
	CORSOrigins       []string
	DevelopmentErrors bool
}

type Server struct {
	mux      *http.ServeMux
	logger   *slog.Logger
	opts     Options
	validate *validator.Validate
	issuer   *tokens.Issuer

	voters     voterservice.Module
	admins     adminservice.Module
	elections  electionservice.Module
	candidates candidateservice.Module
	votes      voteledger.Module
	dashboard  dashboardservice.Module
}

func New(
	voters voterservice.Module,
	admins adminservice.Module,
	elections electionservice.Module,
	candidates candidateservice.Module,
	votes voteledger.Module,
	dashboard dashboardservice.Module,
	issuer *tokens.Issuer,
	logger *slog.Logger,
	opts Options,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.Addr == "" {
		opts.Addr = ":8080"
	}

	s := &Server{
		mux:        http.NewServeMux(),
		logger:     logger,
		opts:       opts,
		validate:   validator.New(validator.WithRequiredStructEnabled()),
		issuer:     issuer,
		voters:     voters,
		admins:     admins,
		elections:  elections,
		candidates: candidates,
		votes:      votes,
		dashboard:  dashboard,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.opts.Addr,
	)
	return http.ListenAndServe(s.opts.Addr, s.Handler())
}

// Handler wraps the mux with CORS; exposed separately for tests.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})
	return c.Handler(s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/auth/register", s.handleVoterRegister)
	s.mux.HandleFunc("POST /api/auth/login", s.handleVoterLogin)
	s.mux.HandleFunc("POST /api/auth/admin/login", s.handleAdminLogin)
	s.mux.HandleFunc("GET /api/auth/profile", s.handleVoterProfile)
	s.mux.HandleFunc("DELETE /api/auth/profile", s.handleVoterDelete)

	s.mux.HandleFunc("GET /api/elections", s.handleListElections)
	s.mux.HandleFunc("GET /api/elections/{election_id}", s.handleGetElection)
	s.mux.HandleFunc("GET /api/elections/phase/{phase}", s.handleElectionsByPhase)
	s.mux.HandleFunc("GET /api/elections/{election_id}/results", s.handleElectionResults)
	s.mux.HandleFunc("POST /api/elections", s.handleCreateElection)
	s.mux.HandleFunc("PUT /api/elections/{election_id}", s.handleUpdateElection)
	s.mux.HandleFunc("POST /api/elections/{election_id}/declare-results", s.handleDeclareResults)

	s.mux.HandleFunc("GET /api/candidates", s.handleListCandidates)
	s.mux.HandleFunc("GET /api/candidates/{candidate_id}", s.handleGetCandidate)
	s.mux.HandleFunc("POST /api/candidates", s.handleNominateCandidate)
	s.mux.HandleFunc("PUT /api/candidates/{candidate_id}", s.handleUpdateCandidate)
	s.mux.HandleFunc("POST /api/candidates/{candidate_id}/approve", s.handleApproveCandidate)
	s.mux.HandleFunc("POST /api/candidates/{candidate_id}/reject", s.handleRejectCandidate)
	s.mux.HandleFunc("DELETE /api/candidates/{candidate_id}", s.handleDeleteCandidate)

	s.mux.HandleFunc("POST /api/votes", s.handleCastVote)
	s.mux.HandleFunc("GET /api/votes/verify/{code}", s.handleVerifyVote)
	s.mux.HandleFunc("GET /api/votes/history", s.handleVoteHistory)
	s.mux.HandleFunc("GET /api/votes", s.handleListVotes)
	s.mux.HandleFunc("PUT /api/votes/{vote_id}/status", s.handleUpdateVoteStatus)

	s.mux.HandleFunc("POST /api/admin/accounts", s.handleCreateAdmin)
	s.mux.HandleFunc("GET /api/admin/accounts", s.handleListAdmins)
	s.mux.HandleFunc("GET /api/admin/accounts/{admin_id}", s.handleGetAdmin)
	s.mux.HandleFunc("PUT /api/admin/accounts/{admin_id}", s.handleUpdateAdmin)
	s.mux.HandleFunc("DELETE /api/admin/accounts/{admin_id}", s.handleDeleteAdmin)
	s.mux.HandleFunc("GET /api/admin/dashboard", s.handleDashboard)
	s.mux.HandleFunc("GET /api/admin/reports/{report_type}", s.handleReport)
	s.mux.HandleFunc("GET /api/admin/audit-log", s.handleAuditLog)
}

// envelope is the uniform response shape for every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Errors  any    `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: true, Message: message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Message: message})
}

func writeValidationError(w http.ResponseWriter, err error) {
	fields := map[string]string{}
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fieldErr := range verrs {
			fields[strings.ToLower(fieldErr.Field())] = "failed on " + fieldErr.Tag()
		}
	}
	writeJSON(w, http.StatusBadRequest, envelope{
		Success: false,
		Message: "validation failed",
		Errors:  fields,
	})
}

// decodeAndValidate unmarshals the body and runs struct validation tags.
func (s *Server) decodeAndValidate(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be valid JSON")
		return false
	}
	if err := s.validate.Struct(dest); err != nil {
		writeValidationError(w, err)
		return false
	}
	return true
}

// authenticateVoter resolves the bearer token to a voter id.
func (s *Server) authenticateVoter(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims, err := s.issuer.Verify(tokens.FromAuthorizationHeader(r.Header.Get("Authorization")), tokens.SubjectVoter)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return "", false
	}
	return claims.Subject, true
}

// authenticateAdmin resolves the bearer token to the admin's current actor
// context. Role and permissions are read from the store, not the token, so
// revocations take effect immediately.
func (s *Server) authenticateAdmin(w http.ResponseWriter, r *http.Request) (adminpolicy.Actor, bool) {
	claims, err := s.issuer.Verify(tokens.FromAuthorizationHeader(r.Header.Get("Authorization")), tokens.SubjectAdmin)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return adminpolicy.Actor{}, false
	}
	actor, err := s.admins.Service.ResolveActor(r.Context(), claims.Subject)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return adminpolicy.Actor{}, false
	}
	return actor, true
}

// adminFromRequest is the non-failing variant for endpoints that only vary
// their view by caller kind.
func (s *Server) adminFromRequest(r *http.Request) (adminpolicy.Actor, bool) {
	claims, err := s.issuer.Verify(tokens.FromAuthorizationHeader(r.Header.Get("Authorization")), tokens.SubjectAdmin)
	if err != nil {
		return adminpolicy.Actor{}, false
	}
	actor, err := s.admins.Service.ResolveActor(r.Context(), claims.Subject)
	if err != nil {
		return adminpolicy.Actor{}, false
	}
	return actor, true
}

// requirePermission gates a handler on the single policy function.
func (s *Server) requirePermission(w http.ResponseWriter, r *http.Request, permission string) (adminpolicy.Actor, bool) {
	actor, ok := s.authenticateAdmin(w, r)
	if !ok {
		return adminpolicy.Actor{}, false
	}
	if !adminpolicy.Allow(actor, permission) {
		writeError(w, http.StatusForbidden, "insufficient permissions")
		return adminpolicy.Actor{}, false
	}
	return actor, true
}

// requireRole gates on role; super admin passes every role check.
func (s *Server) requireRole(w http.ResponseWriter, r *http.Request, role adminentities.Role) (adminpolicy.Actor, bool) {
	actor, ok := s.authenticateAdmin(w, r)
	if !ok {
		return adminpolicy.Actor{}, false
	}
	if !adminpolicy.HasRole(actor, role) {
		writeError(w, http.StatusForbidden, "insufficient role")
		return adminpolicy.Actor{}, false
	}
	return actor, true
}

// recordActivity appends to the acting admin's activity log. The primary
// operation already succeeded, so a failed write is logged, not surfaced.
func (s *Server) recordActivity(r *http.Request, actorID string, action string, targetID string) {
	if err := s.admins.Service.RecordActivity(r.Context(), actorID, action, targetID); err != nil {
		s.logger.Error("activity record failed",
			"event", "activity_record_failed",
			"module", "internal/platform/httpserver",
			"layer", "platform",
			"admin_id", actorID,
			"action", action,
			"error", err.Error(),
		)
	}
}

func (s *Server) internalError(w http.ResponseWriter, err error) {
	s.logger.Error("request failed",
		"event", "http_request_failed",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"error", err.Error(),
	)
	message := "internal server error"
	if s.opts.DevelopmentErrors {
		message = err.Error()
	}
	writeError(w, http.StatusInternalServerError, message)
}
