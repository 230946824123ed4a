package workers

import (
	"context"
	"testing"
	"time"

	"civica/contexts/election-operations/election-service/adapters/memory"
	"civica/contexts/election-operations/election-service/domain/entities"
)

var reconcileBase = time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC)

func seedElection(t *testing.T, store *memory.Store, id string, status entities.Status) {
	t.Helper()
	err := store.CreateElection(context.Background(), entities.Election{
		ElectionID:        id,
		Title:             "Council " + id,
		Type:              entities.TypeGeneral,
		Status:            status,
		RegistrationStart: reconcileBase,
		RegistrationEnd:   reconcileBase.AddDate(0, 0, 10),
		VotingStart:       reconcileBase.AddDate(0, 0, 15),
		VotingEnd:         reconcileBase.AddDate(0, 0, 16),
		ResultDate:        reconcileBase.AddDate(0, 0, 20),
		CreatedAt:         reconcileBase.AddDate(0, 0, -5),
	})
	if err != nil {
		t.Fatalf("seed election %s: %v", id, err)
	}
}

func electionStatus(t *testing.T, store *memory.Store, id string) entities.Status {
	t.Helper()
	election, err := store.GetElection(context.Background(), id)
	if err != nil {
		t.Fatalf("get election %s: %v", id, err)
	}
	return election.Status
}

func TestRunOnceAdvancesStaleStatuses(t *testing.T) {
	store := memory.NewStore()
	seedElection(t, store, "stale-upcoming", entities.StatusUpcoming)
	seedElection(t, store, "stale-registration", entities.StatusRegistration)

	// Two days into the registration window.
	store.SetNow(func() time.Time { return reconcileBase.AddDate(0, 0, 2) })
	reconciler := StatusReconciler{Elections: store, Clock: store}

	if err := reconciler.RunOnce(context.Background()); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if got := electionStatus(t, store, "stale-upcoming"); got != entities.StatusRegistration {
		t.Fatalf("expected registration, got %q", got)
	}
	if got := electionStatus(t, store, "stale-registration"); got != entities.StatusRegistration {
		t.Fatalf("registration election must be untouched, got %q", got)
	}
}

func TestRunOnceActivatesWhenVotingOpens(t *testing.T) {
	store := memory.NewStore()
	seedElection(t, store, "forgotten", entities.StatusRegistration)

	store.SetNow(func() time.Time { return reconcileBase.AddDate(0, 0, 15) })
	reconciler := StatusReconciler{Elections: store, Clock: store}

	if err := reconciler.RunOnce(context.Background()); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if got := electionStatus(t, store, "forgotten"); got != entities.StatusActive {
		t.Fatalf("expected active, got %q", got)
	}
}

func TestRunOnceNeverTouchesActiveOrTerminalElections(t *testing.T) {
	store := memory.NewStore()
	seedElection(t, store, "running", entities.StatusActive)
	seedElection(t, store, "done", entities.StatusCompleted)
	seedElection(t, store, "called-off", entities.StatusCancelled)

	store.SetNow(func() time.Time { return reconcileBase.AddDate(0, 1, 0) })
	reconciler := StatusReconciler{Elections: store, Clock: store}

	if err := reconciler.RunOnce(context.Background()); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if got := electionStatus(t, store, "running"); got != entities.StatusActive {
		t.Fatalf("active election must be left alone, got %q", got)
	}
	if got := electionStatus(t, store, "done"); got != entities.StatusCompleted {
		t.Fatalf("completed election must be left alone, got %q", got)
	}
	if got := electionStatus(t, store, "called-off"); got != entities.StatusCancelled {
		t.Fatalf("cancelled election must be left alone, got %q", got)
	}
}

func TestRunOnceLeavesFutureElectionsUpcoming(t *testing.T) {
	store := memory.NewStore()
	seedElection(t, store, "future", entities.StatusUpcoming)

	store.SetNow(func() time.Time { return reconcileBase.AddDate(0, 0, -3) })
	reconciler := StatusReconciler{Elections: store, Clock: store}

	if err := reconciler.RunOnce(context.Background()); err != nil {
		t.Fatalf("reconcile failed: %v", err)
	}
	if got := electionStatus(t, store, "future"); got != entities.StatusUpcoming {
		t.Fatalf("expected upcoming, got %q", got)
	}
}
