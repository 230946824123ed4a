package services

import (
	"time"

	"civica/contexts/election-operations/election-service/domain/entities"
)

// Phase is the time-derived election stage. It is never stored; it is a pure
// function of the clock against the five schedule timestamps.
type Phase string

const (
	PhaseUpcoming     Phase = "upcoming"
	PhaseRegistration Phase = "registration"
	PhaseWaiting      Phase = "waiting"
	PhaseVoting       Phase = "voting"
	PhaseCounting     Phase = "counting"
	PhaseCompleted    Phase = "completed"
)

func IsValidPhase(p Phase) bool {
	switch p {
	case PhaseUpcoming, PhaseRegistration, PhaseWaiting, PhaseVoting, PhaseCounting, PhaseCompleted:
		return true
	default:
		return false
	}
}

// CurrentPhase is total and monotonic in time for a fixed schedule: for
// t1 < t2, CurrentPhase(t2) never precedes CurrentPhase(t1). The waiting
// phase covers any gap between registration close and voting open.
func CurrentPhase(election entities.Election, now time.Time) Phase {
	switch {
	case now.Before(election.RegistrationStart):
		return PhaseUpcoming
	case now.Before(election.RegistrationEnd):
		return PhaseRegistration
	case now.Before(election.VotingStart):
		return PhaseWaiting
	case now.Before(election.VotingEnd):
		return PhaseVoting
	case now.Before(election.ResultDate):
		return PhaseCounting
	default:
		return PhaseCompleted
	}
}

// AcceptsVotes is the dual check: the derived phase must be voting AND the
// administrative status must be active. Both representations exist in the
// data model, so both gate the ballot box.
func AcceptsVotes(election entities.Election, now time.Time) bool {
	return CurrentPhase(election, now) == PhaseVoting &&
		election.Status == entities.StatusActive
}

// ResultsDeclarable permits declaration only after voting closes, or when an
// operator already marked the election completed.
func ResultsDeclarable(election entities.Election, now time.Time) bool {
	return !now.Before(election.VotingEnd) || election.Status == entities.StatusCompleted
}
