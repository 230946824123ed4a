package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"civica/contexts/election-operations/candidate-service/adapters/memory"
	"civica/contexts/election-operations/candidate-service/domain/entities"
	domainerrors "civica/contexts/election-operations/candidate-service/domain/errors"
	"civica/contexts/election-operations/candidate-service/ports"
)

var nominationTime = time.Date(2026, time.April, 5, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) (Service, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SetNow(func() time.Time { return nominationTime })
	store.SeedElection(ports.ElectionSchedule{
		ElectionID:  "election-1",
		Status:      "upcoming",
		VotingStart: nominationTime.AddDate(0, 0, 10),
		VotingEnd:   nominationTime.AddDate(0, 0, 11),
	})
	return Service{
		Candidates: store,
		Elections:  store,
		Clock:      store,
		IDGen:      store,
	}, store
}

func nominateCommand() NominateCandidateCommand {
	return NominateCandidateCommand{
		ElectionID:    "election-1",
		FullName:      "Ravi Kumar",
		Party:         "Progress Party",
		NominatedBy:   "admin-1",
		NominatorRole: "returning_officer",
	}
}

func TestNominateStartsPendingForRegularOfficers(t *testing.T) {
	service, _ := newTestService(t)

	candidate, err := service.Nominate(context.Background(), nominateCommand())
	if err != nil {
		t.Fatalf("nominate failed: %v", err)
	}
	if candidate.Status != entities.StatusPending {
		t.Fatalf("expected pending nomination, got %q", candidate.Status)
	}
	if candidate.Votable() {
		t.Fatal("pending candidate must not be votable")
	}
}

func TestNominateAutoApprovesForCommissioner(t *testing.T) {
	service, _ := newTestService(t)

	cmd := nominateCommand()
	cmd.NominatorRole = RoleElectionCommissioner
	candidate, err := service.Nominate(context.Background(), cmd)
	if err != nil {
		t.Fatalf("nominate failed: %v", err)
	}
	if candidate.Status != entities.StatusApproved || candidate.ApprovedAt == nil {
		t.Fatalf("commissioner nomination must be auto-approved, got %q", candidate.Status)
	}
	if candidate.ApprovedBy != "admin-1" {
		t.Fatalf("approver must be the nominator, got %q", candidate.ApprovedBy)
	}
}

func TestNominateRejectedOnceVotingOpens(t *testing.T) {
	service, store := newTestService(t)
	store.SetNow(func() time.Time { return nominationTime.AddDate(0, 0, 10) })

	_, err := service.Nominate(context.Background(), nominateCommand())
	if !errors.Is(err, domainerrors.ErrElectionClosed) {
		t.Fatalf("expected ErrElectionClosed, got %v", err)
	}
}

func TestNominateUnknownElection(t *testing.T) {
	service, _ := newTestService(t)

	cmd := nominateCommand()
	cmd.ElectionID = "missing"
	if _, err := service.Nominate(context.Background(), cmd); !errors.Is(err, domainerrors.ErrElectionNotFound) {
		t.Fatalf("expected ErrElectionNotFound, got %v", err)
	}
}

func TestApproveAndRejectDecisions(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	candidate, err := service.Nominate(ctx, nominateCommand())
	if err != nil {
		t.Fatalf("nominate failed: %v", err)
	}

	approved, err := service.Approve(ctx, candidate.CandidateID, "admin-2")
	if err != nil {
		t.Fatalf("approve failed: %v", err)
	}
	if !approved.Votable() {
		t.Fatal("approved active candidate must be votable")
	}

	if _, err := service.Approve(ctx, candidate.CandidateID, "admin-2"); !errors.Is(err, domainerrors.ErrAlreadyDecided) {
		t.Fatalf("second approve must fail with ErrAlreadyDecided, got %v", err)
	}

	rejected, err := service.Reject(ctx, candidate.CandidateID, "incomplete papers", "admin-2")
	if err != nil {
		t.Fatalf("reject of approved candidate failed: %v", err)
	}
	if rejected.Status != entities.StatusRejected || rejected.RejectionReason != "incomplete papers" {
		t.Fatalf("rejection not recorded: %q / %q", rejected.Status, rejected.RejectionReason)
	}
}

func TestUpdateBlockedDuringVoting(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	candidate, err := service.Nominate(ctx, nominateCommand())
	if err != nil {
		t.Fatalf("nominate failed: %v", err)
	}

	store.SetNow(func() time.Time { return nominationTime.AddDate(0, 0, 10) })
	manifesto := "new manifesto"
	_, err = service.Update(ctx, candidate.CandidateID, UpdateCandidateCommand{Manifesto: &manifesto})
	if !errors.Is(err, domainerrors.ErrVotingWindowOpen) {
		t.Fatalf("expected ErrVotingWindowOpen, got %v", err)
	}
}

func TestDeleteHardDeletesWithoutVotes(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	candidate, err := service.Nominate(ctx, nominateCommand())
	if err != nil {
		t.Fatalf("nominate failed: %v", err)
	}

	deactivated, err := service.Delete(ctx, candidate.CandidateID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if deactivated {
		t.Fatal("vote-less candidate must be hard deleted")
	}
	if _, err := store.GetCandidate(ctx, candidate.CandidateID); !errors.Is(err, domainerrors.ErrCandidateNotFound) {
		t.Fatalf("expected candidate gone, got %v", err)
	}
}

func TestDeleteSoftDeletesWithVotes(t *testing.T) {
	service, store := newTestService(t)
	ctx := context.Background()

	candidate, err := service.Nominate(ctx, nominateCommand())
	if err != nil {
		t.Fatalf("nominate failed: %v", err)
	}
	store.BumpVoteCount(candidate.CandidateID, 3)

	deactivated, err := service.Delete(ctx, candidate.CandidateID)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if !deactivated {
		t.Fatal("candidate with votes must be deactivated, not deleted")
	}
	kept, err := store.GetCandidate(ctx, candidate.CandidateID)
	if err != nil {
		t.Fatalf("deactivated candidate must remain readable: %v", err)
	}
	if kept.IsActive || kept.VoteCount != 3 {
		t.Fatalf("expected inactive with votes preserved, got active=%v votes=%d", kept.IsActive, kept.VoteCount)
	}
}

func TestPublicGetHidesNonVotableCandidates(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	candidate, err := service.Nominate(ctx, nominateCommand())
	if err != nil {
		t.Fatalf("nominate failed: %v", err)
	}

	if _, err := service.Get(ctx, candidate.CandidateID, true); !errors.Is(err, domainerrors.ErrCandidateNotFound) {
		t.Fatalf("pending candidate must read as not found publicly, got %v", err)
	}
	if _, err := service.Get(ctx, candidate.CandidateID, false); err != nil {
		t.Fatalf("admin view must see pending candidate: %v", err)
	}
}
