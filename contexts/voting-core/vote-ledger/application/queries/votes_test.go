package queries

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"civica/contexts/voting-core/vote-ledger/adapters/memory"
	"civica/contexts/voting-core/vote-ledger/application/commands"
	"civica/contexts/voting-core/vote-ledger/domain/entities"
	domainerrors "civica/contexts/voting-core/vote-ledger/domain/errors"
	"civica/contexts/voting-core/vote-ledger/ports"
)

var pollDay = time.Date(2026, time.May, 11, 10, 0, 0, 0, time.UTC)

func newQueryFixture(t *testing.T) (VoteQueries, *memory.Store) {
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
	store.SeedVoter(ports.VoterProjection{VoterID: "voter-1", IsActive: true, IsVerified: true})
	return VoteQueries{Votes: store, Projections: store}, store
}

func castVote(t *testing.T, store *memory.Store, voterID string) entities.Vote {
	t.Helper()
	store.SeedVoter(ports.VoterProjection{VoterID: voterID, IsActive: true, IsVerified: true})
	useCase := commands.CastUseCase{Votes: store, Projections: store, Clock: store, IDGen: store}
	result, err := useCase.Cast(context.Background(), commands.CastVoteCommand{
		VoterID:     voterID,
		ElectionID:  "election-1",
		CandidateID: "cand-1",
	})
	if err != nil {
		t.Fatalf("cast for %s failed: %v", voterID, err)
	}
	return result.Vote
}

func TestVerifyEnrichesViewAndPassesIntegrityCheck(t *testing.T) {
	queries, store := newQueryFixture(t)
	vote := castVote(t, store, "voter-1")

	// Lookup is case-insensitive on the public code.
	view, err := queries.Verify(context.Background(), strings.ToLower(vote.VerificationCode))
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if !view.IntegrityValid {
		t.Fatal("freshly cast vote must pass the integrity check")
	}
	if view.CandidateName != "Ravi Kumar" || view.CandidateParty != "Progress Party" {
		t.Fatalf("view not enriched with candidate projection: %+v", view)
	}
	if view.ElectionID != "election-1" || view.Status != entities.StatusValid {
		t.Fatalf("unexpected view: %+v", view)
	}
}

func TestVerifyFlagsTamperedVote(t *testing.T) {
	queries, store := newQueryFixture(t)
	vote := castVote(t, store, "voter-1")

	store.SeedCandidate(ports.CandidateProjection{
		CandidateID: "cand-2",
		ElectionID:  "election-1",
		Status:      "approved",
		IsActive:    true,
	})
	vote.CandidateID = "cand-2"
	if err := store.SaveVoteStatus(context.Background(), vote); err != nil {
		t.Fatalf("tamper write failed: %v", err)
	}

	view, err := queries.Verify(context.Background(), vote.VerificationCode)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	if view.IntegrityValid {
		t.Fatal("rewritten candidate must break the integrity check")
	}
}

func TestVerifyUnknownCode(t *testing.T) {
	queries, _ := newQueryFixture(t)
	_, err := queries.Verify(context.Background(), "ZZZZ-ZZZZ-ZZZZ")
	if !errors.Is(err, domainerrors.ErrVoteNotFound) {
		t.Fatalf("expected ErrVoteNotFound, got %v", err)
	}
}

func TestHistoryReturnsOnlyOwnVotes(t *testing.T) {
	queries, store := newQueryFixture(t)
	mine := castVote(t, store, "voter-1")
	castVote(t, store, "voter-2")

	votes, err := queries.History(context.Background(), "voter-1")
	if err != nil {
		t.Fatalf("history failed: %v", err)
	}
	if len(votes) != 1 || votes[0].VoteID != mine.VoteID {
		t.Fatalf("expected exactly the caller's vote, got %+v", votes)
	}
}

func TestListFiltersAndValidatesStatus(t *testing.T) {
	queries, store := newQueryFixture(t)
	castVote(t, store, "voter-1")
	castVote(t, store, "voter-2")

	votes, total, err := queries.List(context.Background(), ports.ListFilter{ElectionID: "election-1"})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(votes) != 2 {
		t.Fatalf("expected both votes, got %d/%d", len(votes), total)
	}

	if _, _, err := queries.List(context.Background(), ports.ListFilter{Status: "bogus"}); !errors.Is(err, domainerrors.ErrInvalidVoteInput) {
		t.Fatalf("expected ErrInvalidVoteInput for unknown status, got %v", err)
	}
}
