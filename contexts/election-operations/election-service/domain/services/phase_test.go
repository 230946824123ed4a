package services

import (
	"testing"
	"time"

	"civica/contexts/election-operations/election-service/domain/entities"
)

func scheduledElection() entities.Election {
	base := time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC)
	return entities.Election{
		RegistrationStart: base,
		RegistrationEnd:   base.AddDate(0, 0, 7),
		VotingStart:       base.AddDate(0, 0, 10),
		VotingEnd:         base.AddDate(0, 0, 11),
		ResultDate:        base.AddDate(0, 0, 14),
		Status:            entities.StatusActive,
	}
}

func TestCurrentPhaseWalksTheSchedule(t *testing.T) {
	election := scheduledElection()
	cases := []struct {
		at   time.Time
		want Phase
	}{
		{election.RegistrationStart.Add(-time.Minute), PhaseUpcoming},
		{election.RegistrationStart, PhaseRegistration},
		{election.RegistrationEnd, PhaseWaiting},
		{election.VotingStart, PhaseVoting},
		{election.VotingEnd.Add(-time.Nanosecond), PhaseVoting},
		{election.VotingEnd, PhaseCounting},
		{election.ResultDate, PhaseCompleted},
	}
	for _, tc := range cases {
		if got := CurrentPhase(election, tc.at); got != tc.want {
			t.Fatalf("at %s: expected %q, got %q", tc.at, tc.want, got)
		}
	}
}

func TestCurrentPhaseIsMonotonic(t *testing.T) {
	election := scheduledElection()
	order := map[Phase]int{
		PhaseUpcoming:     0,
		PhaseRegistration: 1,
		PhaseWaiting:      2,
		PhaseVoting:       3,
		PhaseCounting:     4,
		PhaseCompleted:    5,
	}

	previous := -1
	at := election.RegistrationStart.Add(-time.Hour)
	for i := 0; i < 400; i++ {
		rank := order[CurrentPhase(election, at)]
		if rank < previous {
			t.Fatalf("phase regressed at %s", at)
		}
		previous = rank
		at = at.Add(time.Hour)
	}
}

func TestAcceptsVotesRequiresBothPhaseAndStatus(t *testing.T) {
	election := scheduledElection()
	during := election.VotingStart.Add(time.Hour)

	if !AcceptsVotes(election, during) {
		t.Fatal("active election inside voting window must accept votes")
	}

	election.Status = entities.StatusUpcoming
	if AcceptsVotes(election, during) {
		t.Fatal("non-active status must block votes even inside the window")
	}

	election.Status = entities.StatusActive
	if AcceptsVotes(election, election.VotingEnd) {
		t.Fatal("voting end is exclusive")
	}
	if AcceptsVotes(election, election.VotingStart.Add(-time.Second)) {
		t.Fatal("votes before voting start must be blocked")
	}
}

func TestResultsDeclarable(t *testing.T) {
	election := scheduledElection()
	if ResultsDeclarable(election, election.VotingEnd.Add(-time.Minute)) {
		t.Fatal("results must not be declarable during voting")
	}
	if !ResultsDeclarable(election, election.VotingEnd) {
		t.Fatal("results are declarable from voting end")
	}

	election.Status = entities.StatusCompleted
	if !ResultsDeclarable(election, election.VotingEnd.Add(-time.Hour)) {
		t.Fatal("operator-completed election is declarable regardless of clock")
	}
}
