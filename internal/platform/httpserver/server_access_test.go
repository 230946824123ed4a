package httpserver

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	candidateservice "civica/contexts/election-operations/candidate-service"
	candidateentities "civica/contexts/election-operations/candidate-service/domain/entities"
	electionservice "civica/contexts/election-operations/election-service"
	electionentities "civica/contexts/election-operations/election-service/domain/entities"
	"civica/contexts/election-operations/election-service/ports"
	adminservice "civica/contexts/identity-access/admin-service"
	adminapplication "civica/contexts/identity-access/admin-service/application"
	adminentities "civica/contexts/identity-access/admin-service/domain/entities"
	voterservice "civica/contexts/identity-access/voter-service"
	voterentities "civica/contexts/identity-access/voter-service/domain/entities"
	dashboardservice "civica/contexts/internal-ops/dashboard-service"
	voteledger "civica/contexts/voting-core/vote-ledger"
	"civica/internal/platform/tokens"
)

// seededServer keeps the module stores reachable so tests can arrange
// accounts and elections behind the HTTP surface.
type seededServer struct {
	server     *Server
	issuer     *tokens.Issuer
	voters     voterservice.Module
	admins     adminservice.Module
	elections  electionservice.Module
	candidates candidateservice.Module
}

func newSeededServer() seededServer {
	issuer := tokens.NewIssuer("test-secret", time.Hour, time.Hour)
	voters := voterservice.NewInMemoryModule(slog.Default(), 4)
	admins := adminservice.NewInMemoryModule(slog.Default(), 4)
	elections := electionservice.NewInMemoryModule(slog.Default(), "reject_tie")
	candidates := candidateservice.NewInMemoryModule(slog.Default())
	server := New(
		voters,
		admins,
		elections,
		candidates,
		voteledger.NewInMemoryModule(slog.Default(), nil),
		dashboardservice.NewInMemoryModule(),
		issuer,
		slog.Default(),
		Options{Addr: ":0"},
	)
	return seededServer{
		server:     server,
		issuer:     issuer,
		voters:     voters,
		admins:     admins,
		elections:  elections,
		candidates: candidates,
	}
}

func (f seededServer) adminToken(t *testing.T, adminID string, role adminentities.Role) string {
	t.Helper()
	err := f.admins.Store.CreateAdmin(context.Background(), adminentities.Admin{
		AdminID:     adminID,
		FullName:    "Seeded Admin",
		Email:       adminID + "@example.com",
		Role:        role,
		Permissions: adminapplication.DefaultPermissions(role),
		IsActive:    true,
	})
	if err != nil {
		t.Fatalf("seed admin failed: %v", err)
	}
	token, err := f.issuer.Mint(adminID, tokens.SubjectAdmin, string(role), time.Now())
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	return token
}

func (f seededServer) seedElection(t *testing.T, election electionentities.Election) {
	t.Helper()
	if err := f.elections.Store.CreateElection(context.Background(), election); err != nil {
		t.Fatalf("seed election failed: %v", err)
	}
}

func (f seededServer) do(method string, target string, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	f.server.mux.ServeHTTP(rr, req)
	return rr
}

func completedElection(electionID string) electionentities.Election {
	base := time.Date(2026, time.May, 1, 8, 0, 0, 0, time.UTC)
	return electionentities.Election{
		ElectionID:        electionID,
		Title:             "General Election 2026",
		Type:              electionentities.TypeGeneral,
		RegistrationStart: base,
		RegistrationEnd:   base.Add(48 * time.Hour),
		VotingStart:       base.Add(72 * time.Hour),
		VotingEnd:         base.Add(96 * time.Hour),
		ResultDate:        base.Add(120 * time.Hour),
		Status:            electionentities.StatusCompleted,
		CreatedAt:         base,
		UpdatedAt:         base,
	}
}

func TestElectionResultsRequireResultViewer(t *testing.T) {
	fixture := newSeededServer()
	fixture.seedElection(t, completedElection("election-1"))

	if rr := fixture.do(http.MethodGet, "/api/elections/election-1/results", ""); rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without a token, got %d body=%s", rr.Code, rr.Body.String())
	}

	// admin_officer manages voters but never holds view_results.
	officer := fixture.adminToken(t, "admin-officer-1", adminentities.RoleAdminOfficer)
	if rr := fixture.do(http.MethodGet, "/api/elections/election-1/results", officer); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 without view_results, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestElectionResultsBeforeCompletionAreForbidden(t *testing.T) {
	fixture := newSeededServer()
	running := completedElection("election-1")
	running.Status = electionentities.StatusActive
	fixture.seedElection(t, running)

	commissioner := fixture.adminToken(t, "commissioner-1", adminentities.RoleElectionCommissioner)
	rr := fixture.do(http.MethodGet, "/api/elections/election-1/results", commissioner)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for an undeclared running election, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestElectionResultsServeCompletedTally(t *testing.T) {
	fixture := newSeededServer()
	fixture.seedElection(t, completedElection("election-1"))
	fixture.elections.Store.SeedTally("election-1", []ports.CandidateTally{
		{CandidateID: "cand-1", FullName: "Ravi Kumar", Party: "Progress Party", Votes: 12},
	})

	commissioner := fixture.adminToken(t, "commissioner-1", adminentities.RoleElectionCommissioner)
	rr := fixture.do(http.MethodGet, "/api/elections/election-1/results", commissioner)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 for a completed election, got %d body=%s", rr.Code, rr.Body.String())
	}

	var payload struct {
		Data struct {
			Results []struct {
				CandidateID string `json:"candidate_id"`
				Votes       int64  `json:"votes"`
			} `json:"results"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if len(payload.Data.Results) != 1 || payload.Data.Results[0].CandidateID != "cand-1" {
		t.Fatalf("expected the seeded tally row, got %+v", payload.Data.Results)
	}
}

func TestCandidateDecisionRequiresCommissioner(t *testing.T) {
	fixture := newSeededServer()

	// Returning officers hold manage_candidates yet must not decide
	// nominations.
	officer := fixture.adminToken(t, "officer-1", adminentities.RoleReturningOfficer)
	if rr := fixture.do(http.MethodPost, "/api/candidates/cand-1/approve", officer); rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for a returning officer, got %d body=%s", rr.Code, rr.Body.String())
	}

	// A commissioner clears the role gate and reaches the candidate lookup.
	commissioner := fixture.adminToken(t, "commissioner-1", adminentities.RoleElectionCommissioner)
	if rr := fixture.do(http.MethodPost, "/api/candidates/cand-1/approve", commissioner); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 past the role gate, got %d body=%s", rr.Code, rr.Body.String())
	}
}

func TestGetElectionCarriesApprovedBallot(t *testing.T) {
	fixture := newSeededServer()
	fixture.seedElection(t, completedElection("election-1"))
	ballot := []candidateentities.Candidate{
		{CandidateID: "cand-1", ElectionID: "election-1", FullName: "Ravi Kumar", Status: candidateentities.StatusApproved, IsActive: true},
		{CandidateID: "cand-2", ElectionID: "election-1", FullName: "Meera Joshi", Status: candidateentities.StatusPending, IsActive: true},
	}
	for _, candidate := range ballot {
		if err := fixture.candidates.Store.CreateCandidate(context.Background(), candidate); err != nil {
			t.Fatalf("seed candidate failed: %v", err)
		}
	}

	rr := fixture.do(http.MethodGet, "/api/elections/election-1", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rr.Code, rr.Body.String())
	}

	var payload struct {
		Data struct {
			ElectionID string `json:"election_id"`
			Candidates []struct {
				CandidateID string `json:"candidate_id"`
			} `json:"candidates"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if payload.Data.ElectionID != "election-1" {
		t.Fatalf("expected the election in the detail view, got %+v", payload.Data)
	}
	if len(payload.Data.Candidates) != 1 || payload.Data.Candidates[0].CandidateID != "cand-1" {
		t.Fatalf("detail view must carry only the approved ballot, got %+v", payload.Data.Candidates)
	}
}

func TestVoterDeleteRefusedAfterVoting(t *testing.T) {
	fixture := newSeededServer()
	err := fixture.voters.Store.CreateVoter(context.Background(), voterentities.Voter{
		VoterID:    "voter-1",
		FullName:   "Asha Verma",
		Email:      "asha.verma@example.com",
		Phone:      "+91-9000000001",
		NationalID: "NID-1001",
		IsActive:   true,
		IsVerified: true,
	})
	if err != nil {
		t.Fatalf("seed voter failed: %v", err)
	}
	fixture.voters.Store.MarkVoted("voter-1", "election-1", time.Now().UTC())

	token, err := fixture.issuer.Mint("voter-1", tokens.SubjectVoter, "", time.Now())
	if err != nil {
		t.Fatalf("mint failed: %v", err)
	}
	rr := fixture.do(http.MethodDelete, "/api/auth/profile", token)
	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409 for a voter with recorded votes, got %d body=%s", rr.Code, rr.Body.String())
	}
}
