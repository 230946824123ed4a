package commands

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"sync"
	"testing"
	"time"

	"civica/contexts/voting-core/vote-ledger/adapters/memory"
	"civica/contexts/voting-core/vote-ledger/domain/entities"
	domainerrors "civica/contexts/voting-core/vote-ledger/domain/errors"
	"civica/contexts/voting-core/vote-ledger/domain/services"
	"civica/contexts/voting-core/vote-ledger/ports"
	contractsv1 "civica/contracts/gen/events/v1"
)

var pollDay = time.Date(2026, time.May, 11, 10, 0, 0, 0, time.UTC)

func newCastUseCase(t *testing.T) (CastUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.SetNow(func() time.Time { return pollDay })
	store.SeedElection(ports.ElectionProjection{
		ElectionID:  "election-1",
		Status:      "active",
		VotingStart: pollDay.Add(-2 * time.Hour),
		VotingEnd:   pollDay.Add(8 * time.Hour),
	})
	store.SeedCandidate(ports.CandidateProjection{
		CandidateID: "cand-1",
		ElectionID:  "election-1",
		FullName:    "Ravi Kumar",
		Party:       "Progress Party",
		Status:      "approved",
		IsActive:    true,
	})
	store.SeedVoter(ports.VoterProjection{
		VoterID:    "voter-1",
		IsActive:   true,
		IsVerified: true,
	})
	return CastUseCase{
		Votes:       store,
		Projections: store,
		Clock:       store,
		IDGen:       store,
	}, store
}

func castCommand() CastVoteCommand {
	return CastVoteCommand{
		VoterID:     "voter-1",
		ElectionID:  "election-1",
		CandidateID: "cand-1",
	}
}

func TestCastRecordsVoteWithHashesAndCode(t *testing.T) {
	useCase, _ := newCastUseCase(t)

	result, err := useCase.Cast(context.Background(), castCommand())
	if err != nil {
		t.Fatalf("cast failed: %v", err)
	}
	vote := result.Vote
	if vote.Status != entities.StatusValid {
		t.Fatalf("expected valid status, got %q", vote.Status)
	}
	if vote.VoteHash != services.VoteHash("voter-1", "cand-1", "election-1", pollDay) {
		t.Fatal("integrity hash does not recompute")
	}
	if !services.IntegrityValid(vote) {
		t.Fatal("stored vote must pass its own integrity check")
	}
	if vote.VoterHash == "" || vote.VoterHash == vote.VoteHash {
		t.Fatal("voter hash must be present and distinct from the vote hash")
	}
	codePattern := regexp.MustCompile(`^[A-HJKMNP-Z2-9]{4}-[A-HJKMNP-Z2-9]{4}-[A-HJKMNP-Z2-9]{4}$`)
	if !codePattern.MatchString(vote.VerificationCode) {
		t.Fatalf("unexpected verification code format: %q", vote.VerificationCode)
	}
	if result.Candidate.FullName != "Ravi Kumar" {
		t.Fatalf("result must carry the candidate projection, got %q", result.Candidate.FullName)
	}
}

func TestCastRejectsSecondVoteInSameElection(t *testing.T) {
	useCase, _ := newCastUseCase(t)
	ctx := context.Background()

	if _, err := useCase.Cast(ctx, castCommand()); err != nil {
		t.Fatalf("first cast failed: %v", err)
	}
	if _, err := useCase.Cast(ctx, castCommand()); !errors.Is(err, domainerrors.ErrAlreadyVoted) {
		t.Fatalf("expected ErrAlreadyVoted, got %v", err)
	}
}

func TestCastAdmitsExactlyOneOfConcurrentDuplicates(t *testing.T) {
	useCase, _ := newCastUseCase(t)
	ctx := context.Background()

	const attempts = 16
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := useCase.Cast(ctx, castCommand())
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var accepted, rejected int
	for err := range results {
		switch {
		case err == nil:
			accepted++
		case errors.Is(err, domainerrors.ErrAlreadyVoted):
			rejected++
		default:
			t.Fatalf("unexpected cast error: %v", err)
		}
	}
	if accepted != 1 || rejected != attempts-1 {
		t.Fatalf("expected 1 accepted and %d rejected, got %d/%d", attempts-1, accepted, rejected)
	}
}

func TestCastAllowsSameVoterInDifferentElections(t *testing.T) {
	useCase, store := newCastUseCase(t)
	ctx := context.Background()
	store.SeedElection(ports.ElectionProjection{
		ElectionID:  "election-2",
		Status:      "active",
		VotingStart: pollDay.Add(-2 * time.Hour),
		VotingEnd:   pollDay.Add(8 * time.Hour),
	})
	store.SeedCandidate(ports.CandidateProjection{
		CandidateID: "cand-2",
		ElectionID:  "election-2",
		Status:      "approved",
		IsActive:    true,
	})

	if _, err := useCase.Cast(ctx, castCommand()); err != nil {
		t.Fatalf("first cast failed: %v", err)
	}
	second := CastVoteCommand{VoterID: "voter-1", ElectionID: "election-2", CandidateID: "cand-2"}
	if _, err := useCase.Cast(ctx, second); err != nil {
		t.Fatalf("vote in a second election must be allowed: %v", err)
	}
}

func TestCastGateOrdering(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown election", func(t *testing.T) {
		useCase, _ := newCastUseCase(t)
		cmd := castCommand()
		cmd.ElectionID = "missing"
		if _, err := useCase.Cast(ctx, cmd); !errors.Is(err, domainerrors.ErrElectionNotFound) {
			t.Fatalf("expected ErrElectionNotFound, got %v", err)
		}
	})

	t.Run("window closed", func(t *testing.T) {
		useCase, store := newCastUseCase(t)
		store.SetNow(func() time.Time { return pollDay.Add(9 * time.Hour) })
		if _, err := useCase.Cast(ctx, castCommand()); !errors.Is(err, domainerrors.ErrVotingClosed) {
			t.Fatalf("expected ErrVotingClosed, got %v", err)
		}
	})

	t.Run("inactive status blocks despite open window", func(t *testing.T) {
		useCase, store := newCastUseCase(t)
		store.SeedElection(ports.ElectionProjection{
			ElectionID:  "election-1",
			Status:      "upcoming",
			VotingStart: pollDay.Add(-2 * time.Hour),
			VotingEnd:   pollDay.Add(8 * time.Hour),
		})
		if _, err := useCase.Cast(ctx, castCommand()); !errors.Is(err, domainerrors.ErrVotingClosed) {
			t.Fatalf("expected ErrVotingClosed, got %v", err)
		}
	})

	t.Run("candidate from another election", func(t *testing.T) {
		useCase, store := newCastUseCase(t)
		store.SeedCandidate(ports.CandidateProjection{
			CandidateID: "cand-other",
			ElectionID:  "election-9",
			Status:      "approved",
			IsActive:    true,
		})
		cmd := castCommand()
		cmd.CandidateID = "cand-other"
		if _, err := useCase.Cast(ctx, cmd); !errors.Is(err, domainerrors.ErrCandidateNotInElection) {
			t.Fatalf("expected ErrCandidateNotInElection, got %v", err)
		}
	})

	t.Run("pending candidate", func(t *testing.T) {
		useCase, store := newCastUseCase(t)
		store.SeedCandidate(ports.CandidateProjection{
			CandidateID: "cand-1",
			ElectionID:  "election-1",
			Status:      "pending",
			IsActive:    true,
		})
		if _, err := useCase.Cast(ctx, castCommand()); !errors.Is(err, domainerrors.ErrCandidateNotVotable) {
			t.Fatalf("expected ErrCandidateNotVotable, got %v", err)
		}
	})

	t.Run("deactivated voter", func(t *testing.T) {
		useCase, store := newCastUseCase(t)
		store.SeedVoter(ports.VoterProjection{VoterID: "voter-1", IsActive: false, IsVerified: true})
		if _, err := useCase.Cast(ctx, castCommand()); !errors.Is(err, domainerrors.ErrVoterNotEligible) {
			t.Fatalf("expected ErrVoterNotEligible, got %v", err)
		}
	})
}

func TestCastAppendsOutboxEventInSameOperation(t *testing.T) {
	useCase, store := newCastUseCase(t)

	result, err := useCase.Cast(context.Background(), castCommand())
	if err != nil {
		t.Fatalf("cast failed: %v", err)
	}

	pending, err := store.ListPendingOutbox(context.Background(), 10)
	if err != nil {
		t.Fatalf("outbox list failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("expected one pending outbox row, got %d", len(pending))
	}
	if pending[0].EventType != EventVoteCast {
		t.Fatalf("unexpected event type %q", pending[0].EventType)
	}

	var envelope contractsv1.Envelope
	if err := json.Unmarshal(pending[0].Payload, &envelope); err != nil {
		t.Fatalf("payload must decode as an envelope: %v", err)
	}
	var payload voteCastPayload
	if err := json.Unmarshal(envelope.Data, &payload); err != nil {
		t.Fatalf("envelope data must decode: %v", err)
	}
	if payload.VoteID != result.Vote.VoteID {
		t.Fatalf("event for wrong vote: %q vs %q", payload.VoteID, result.Vote.VoteID)
	}
	if payload.VoterHash != result.Vote.VoterHash {
		t.Fatal("event must carry the anonymized voter hash")
	}
}

func TestUpdateStatusAppendsAuditEntry(t *testing.T) {
	useCase, store := newCastUseCase(t)
	status := StatusUseCase{Votes: store, Clock: store}
	ctx := context.Background()

	result, err := useCase.Cast(ctx, castCommand())
	if err != nil {
		t.Fatalf("cast failed: %v", err)
	}

	updated, err := status.UpdateStatus(ctx, UpdateVoteStatusCommand{
		VoteID:    result.Vote.VoteID,
		NewStatus: entities.StatusDisputed,
		Reason:    "duplicate complaint",
		ChangedBy: "admin-1",
	})
	if err != nil {
		t.Fatalf("status update failed: %v", err)
	}
	if updated.Status != entities.StatusDisputed {
		t.Fatalf("expected disputed, got %q", updated.Status)
	}
	if len(updated.AuditLog) != 1 {
		t.Fatalf("expected one audit entry, got %d", len(updated.AuditLog))
	}
	entry := updated.AuditLog[0]
	if entry.FromStatus != entities.StatusValid || entry.ToStatus != entities.StatusDisputed || entry.ChangedBy != "admin-1" {
		t.Fatalf("audit entry not recorded correctly: %+v", entry)
	}

	// Same-status transition is rejected.
	_, err = status.UpdateStatus(ctx, UpdateVoteStatusCommand{
		VoteID:    result.Vote.VoteID,
		NewStatus: entities.StatusDisputed,
		ChangedBy: "admin-1",
	})
	if !errors.Is(err, domainerrors.ErrInvalidStatusChange) {
		t.Fatalf("expected ErrInvalidStatusChange, got %v", err)
	}
}
