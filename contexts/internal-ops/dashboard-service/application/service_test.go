package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"civica/contexts/internal-ops/dashboard-service/adapters/memory"
	domainerrors "civica/contexts/internal-ops/dashboard-service/domain/errors"
	"civica/contexts/internal-ops/dashboard-service/ports"
)

var reportTime = time.Date(2026, time.May, 20, 8, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SetNow(func() time.Time { return reportTime })
	store.SeedStats(ports.DashboardStats{
		TotalVoters:        400,
		ActiveVoters:       380,
		VotersWhoVoted:     150,
		TotalElections:     5,
		ActiveElections:    1,
		CompletedElections: 3,
		TotalCandidates:    12,
	})
	store.SeedSummaries([]ports.ElectionSummary{
		{ElectionID: "election-1", Title: "City Council", Status: "active", TotalVotesCast: 150},
		{ElectionID: "election-2", Title: "School Board", Status: "completed", TotalVotesCast: 90},
		{ElectionID: "election-3", Title: "Mayor", Status: "upcoming"},
	})
	return Service{Stats: store, Clock: store}, store
}

func TestDashboardShowsOnlyActiveElections(t *testing.T) {
	service, _ := newTestService(t)

	view, err := service.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard failed: %v", err)
	}
	if view.Stats.TotalVoters != 400 {
		t.Fatalf("stats not carried through, got %+v", view.Stats)
	}
	if len(view.ActiveElections) != 1 || view.ActiveElections[0].ElectionID != "election-1" {
		t.Fatalf("expected only the active election, got %+v", view.ActiveElections)
	}
}

func TestReportSectionsMatchType(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	election, err := service.Report(ctx, ReportTypeElection)
	if err != nil {
		t.Fatalf("election report failed: %v", err)
	}
	if election.Election == nil || election.Voter != nil || election.System != nil {
		t.Fatalf("exactly the election section must be set: %+v", election)
	}
	if election.Election.TotalElections != 5 || len(election.Election.Elections) != 3 {
		t.Fatalf("unexpected election report: %+v", election.Election)
	}
	if !election.GeneratedAt.Equal(reportTime) {
		t.Fatalf("report must be stamped by the clock, got %v", election.GeneratedAt)
	}

	system, err := service.Report(ctx, ReportTypeSystem)
	if err != nil {
		t.Fatalf("system report failed: %v", err)
	}
	if system.System == nil || system.System.Stats.TotalCandidates != 12 {
		t.Fatalf("unexpected system report: %+v", system.System)
	}
}

func TestVoterReportParticipationRate(t *testing.T) {
	service, store := newTestService(t)

	report, err := service.Report(context.Background(), ReportTypeVoter)
	if err != nil {
		t.Fatalf("voter report failed: %v", err)
	}
	if report.Voter.ParticipationRate != 37.5 {
		t.Fatalf("expected 37.5%% participation, got %v", report.Voter.ParticipationRate)
	}

	// No registered voters means a zero rate, not a division by zero.
	store.SeedStats(ports.DashboardStats{})
	report, err = service.Report(context.Background(), ReportTypeVoter)
	if err != nil {
		t.Fatalf("voter report failed: %v", err)
	}
	if report.Voter.ParticipationRate != 0 {
		t.Fatalf("expected zero participation, got %v", report.Voter.ParticipationRate)
	}
}

func TestReportRejectsUnknownType(t *testing.T) {
	service, _ := newTestService(t)
	if _, err := service.Report(context.Background(), "finance"); !errors.Is(err, domainerrors.ErrInvalidReportType) {
		t.Fatalf("expected ErrInvalidReportType, got %v", err)
	}
}
