package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"civica/contexts/election-operations/election-service/adapters/memory"
	"civica/contexts/election-operations/election-service/domain/entities"
	domainerrors "civica/contexts/election-operations/election-service/domain/errors"
	"civica/contexts/election-operations/election-service/ports"
)

var baseTime = time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)

func newUseCase(t *testing.T, tieBreak string) (ElectionUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SetNow(func() time.Time { return baseTime })
	return ElectionUseCase{
		Elections: store,
		Tallies:   store,
		Clock:     store,
		IDGen:     store,
		TieBreak:  tieBreak,
	}, store
}

func createCommand() CreateElectionCommand {
	return CreateElectionCommand{
		Title:             "General Election 2026",
		Type:              entities.TypeGeneral,
		Constituency:      "north",
		RegistrationStart: baseTime.AddDate(0, 0, 1),
		RegistrationEnd:   baseTime.AddDate(0, 0, 10),
		VotingStart:       baseTime.AddDate(0, 0, 15),
		VotingEnd:         baseTime.AddDate(0, 0, 16),
		ResultDate:        baseTime.AddDate(0, 0, 20),
		CreatedBy:         "admin-1",
	}
}

func TestCreateSeedsEligibleVoterCount(t *testing.T) {
	useCase, store := newUseCase(t, TieBreakReject)
	store.SeedEligibleVoters("north", 400)

	election, err := useCase.Create(context.Background(), createCommand())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if election.Status != entities.StatusUpcoming {
		t.Fatalf("expected upcoming status, got %q", election.Status)
	}
	if election.TotalRegisteredVoters != 400 {
		t.Fatalf("expected 400 registered voters, got %d", election.TotalRegisteredVoters)
	}
}

func TestCreateRejectsDisorderedSchedule(t *testing.T) {
	useCase, _ := newUseCase(t, TieBreakReject)

	cmd := createCommand()
	cmd.VotingEnd = cmd.VotingStart.Add(-time.Hour)
	if _, err := useCase.Create(context.Background(), cmd); !errors.Is(err, domainerrors.ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule, got %v", err)
	}

	cmd = createCommand()
	cmd.RegistrationEnd = cmd.VotingStart.Add(time.Hour)
	if _, err := useCase.Create(context.Background(), cmd); !errors.Is(err, domainerrors.ErrInvalidSchedule) {
		t.Fatalf("expected ErrInvalidSchedule for registration past voting start, got %v", err)
	}
}

func TestCreateAllowsBackToBackWindows(t *testing.T) {
	useCase, _ := newUseCase(t, TieBreakReject)

	// Registration may close exactly when voting opens and results may land
	// exactly at voting end.
	cmd := createCommand()
	cmd.RegistrationEnd = cmd.VotingStart
	cmd.ResultDate = cmd.VotingEnd
	if _, err := useCase.Create(context.Background(), cmd); err != nil {
		t.Fatalf("boundary-equal schedule must be accepted, got %v", err)
	}
}

func TestUpdateLockedElectionRejectsScheduleChange(t *testing.T) {
	useCase, _ := newUseCase(t, TieBreakReject)
	ctx := context.Background()

	election, err := useCase.Create(ctx, createCommand())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	active := entities.StatusActive
	if _, err := useCase.Update(ctx, election.ElectionID, UpdateElectionCommand{Status: &active}); err != nil {
		t.Fatalf("activation failed: %v", err)
	}

	newStart := baseTime.AddDate(0, 1, 0)
	_, err = useCase.Update(ctx, election.ElectionID, UpdateElectionCommand{VotingStart: &newStart})
	if !errors.Is(err, domainerrors.ErrElectionLocked) {
		t.Fatalf("expected ErrElectionLocked, got %v", err)
	}

	// Description stays editable on a locked election.
	description := "polling stations announced"
	updated, err := useCase.Update(ctx, election.ElectionID, UpdateElectionCommand{Description: &description})
	if err != nil {
		t.Fatalf("description update on locked election failed: %v", err)
	}
	if updated.Description != description {
		t.Fatalf("description not applied: %q", updated.Description)
	}
}

func TestUpdateRejectsTransitionOutOfTerminalStatus(t *testing.T) {
	useCase, _ := newUseCase(t, TieBreakReject)
	ctx := context.Background()

	election, err := useCase.Create(ctx, createCommand())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	cancelled := entities.StatusCancelled
	if _, err := useCase.Update(ctx, election.ElectionID, UpdateElectionCommand{Status: &cancelled}); err != nil {
		t.Fatalf("cancel failed: %v", err)
	}

	active := entities.StatusActive
	_, err = useCase.Update(ctx, election.ElectionID, UpdateElectionCommand{Status: &active})
	if !errors.Is(err, domainerrors.ErrInvalidStatusChange) {
		t.Fatalf("expected ErrInvalidStatusChange, got %v", err)
	}
}

func declareReady(t *testing.T, useCase ElectionUseCase, store *memory.Store) entities.Election {
	t.Helper()
	election, err := useCase.Create(context.Background(), createCommand())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	// Move the clock past voting end.
	store.SetNow(func() time.Time { return baseTime.AddDate(0, 0, 17) })
	return election
}

func TestDeclareResultsPicksWinnerAndCompletes(t *testing.T) {
	useCase, store := newUseCase(t, TieBreakReject)
	store.SeedEligibleVoters("north", 200)
	election := declareReady(t, useCase, store)
	store.SeedTally(election.ElectionID, []ports.CandidateTally{
		{CandidateID: "cand-a", FullName: "A", Votes: 120, NominatedAt: baseTime},
		{CandidateID: "cand-b", FullName: "B", Votes: 60, NominatedAt: baseTime},
	})

	declared, err := useCase.DeclareResults(context.Background(), election.ElectionID, "admin-1")
	if err != nil {
		t.Fatalf("declare failed: %v", err)
	}
	if declared.Election.WinnerCandidateID != "cand-a" {
		t.Fatalf("expected cand-a winner, got %q", declared.Election.WinnerCandidateID)
	}
	if declared.Election.Status != entities.StatusCompleted || !declared.Election.IsResultDeclared {
		t.Fatalf("expected completed+declared, got %q / %v", declared.Election.Status, declared.Election.IsResultDeclared)
	}
	if declared.Election.TurnoutPercentage != 90 {
		t.Fatalf("expected 90%% turnout, got %v", declared.Election.TurnoutPercentage)
	}
}

func TestDeclareResultsIsStrictlyIdempotent(t *testing.T) {
	useCase, store := newUseCase(t, TieBreakReject)
	election := declareReady(t, useCase, store)
	store.SeedTally(election.ElectionID, []ports.CandidateTally{
		{CandidateID: "cand-a", Votes: 10, NominatedAt: baseTime},
	})

	if _, err := useCase.DeclareResults(context.Background(), election.ElectionID, "admin-1"); err != nil {
		t.Fatalf("first declare failed: %v", err)
	}
	_, err := useCase.DeclareResults(context.Background(), election.ElectionID, "admin-1")
	if !errors.Is(err, domainerrors.ErrResultsAlreadyDeclared) {
		t.Fatalf("expected ErrResultsAlreadyDeclared, got %v", err)
	}
}

func TestDeclareResultsBeforeVotingEndIsRejected(t *testing.T) {
	useCase, store := newUseCase(t, TieBreakReject)
	election, err := useCase.Create(context.Background(), createCommand())
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	store.SeedTally(election.ElectionID, []ports.CandidateTally{
		{CandidateID: "cand-a", Votes: 10, NominatedAt: baseTime},
	})

	_, err = useCase.DeclareResults(context.Background(), election.ElectionID, "admin-1")
	if !errors.Is(err, domainerrors.ErrResultsNotReady) {
		t.Fatalf("expected ErrResultsNotReady, got %v", err)
	}
}

func TestDeclareResultsTiePolicies(t *testing.T) {
	tied := []ports.CandidateTally{
		{CandidateID: "cand-late", Votes: 50, NominatedAt: baseTime.Add(2 * time.Hour)},
		{CandidateID: "cand-early", Votes: 50, NominatedAt: baseTime.Add(time.Hour)},
	}

	rejecting, store := newUseCase(t, TieBreakReject)
	election := declareReady(t, rejecting, store)
	store.SeedTally(election.ElectionID, tied)
	if _, err := rejecting.DeclareResults(context.Background(), election.ElectionID, "admin-1"); !errors.Is(err, domainerrors.ErrTieUnresolved) {
		t.Fatalf("expected ErrTieUnresolved, got %v", err)
	}

	byNomination, store2 := newUseCase(t, TieBreakEarliestNomination)
	election2 := declareReady(t, byNomination, store2)
	store2.SeedTally(election2.ElectionID, tied)
	declared, err := byNomination.DeclareResults(context.Background(), election2.ElectionID, "admin-1")
	if err != nil {
		t.Fatalf("earliest-nomination declare failed: %v", err)
	}
	if declared.Election.WinnerCandidateID != "cand-early" {
		t.Fatalf("expected earliest nomination to win, got %q", declared.Election.WinnerCandidateID)
	}
}

func TestDeclareResultsWithNoVotes(t *testing.T) {
	useCase, store := newUseCase(t, TieBreakReject)
	election := declareReady(t, useCase, store)

	_, err := useCase.DeclareResults(context.Background(), election.ElectionID, "admin-1")
	if !errors.Is(err, domainerrors.ErrNoVotesRecorded) {
		t.Fatalf("expected ErrNoVotesRecorded, got %v", err)
	}
}

func TestTurnoutClamping(t *testing.T) {
	if got := Turnout(0, 100); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := Turnout(50, 0); got != 0 {
		t.Fatalf("zero registered voters must yield 0, got %v", got)
	}
	if got := Turnout(150, 100); got != 100 {
		t.Fatalf("turnout must clamp at 100, got %v", got)
	}
	if got := Turnout(25, 100); got != 25 {
		t.Fatalf("expected 25, got %v", got)
	}
}
