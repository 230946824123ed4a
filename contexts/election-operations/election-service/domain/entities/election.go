package entities

import "time"

type ElectionType string

const (
	TypeGeneral    ElectionType = "general"
	TypeByElection ElectionType = "by_election"
	TypeReferendum ElectionType = "referendum"
	TypeLocalBody  ElectionType = "local_body"
)

func IsValidType(t ElectionType) bool {
	switch t {
	case TypeGeneral, TypeByElection, TypeReferendum, TypeLocalBody:
		return true
	default:
		return false
	}
}

// Status is the administratively-set lifecycle flag, independent of the
// time-derived phase.
type Status string

const (
	StatusUpcoming     Status = "upcoming"
	StatusRegistration Status = "registration"
	StatusActive       Status = "active"
	StatusCompleted    Status = "completed"
	StatusCancelled    Status = "cancelled"
)

func IsValidStatus(s Status) bool {
	switch s {
	case StatusUpcoming, StatusRegistration, StatusActive, StatusCompleted, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status permits no further transitions.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// Locked reports whether most election fields are frozen: once active or
// later, only status and the narrow operational allow-list may change.
func (s Status) Locked() bool {
	return s == StatusActive || s.IsTerminal()
}

type Election struct {
	ElectionID   string
	Title        string
	Description  string
	Type         ElectionType
	Constituency string
	State        string

	RegistrationStart time.Time
	RegistrationEnd   time.Time
	VotingStart       time.Time
	VotingEnd         time.Time
	ResultDate        time.Time

	Status Status

	TotalRegisteredVoters int64
	TotalVotesCast        int64
	CandidateCount        int64
	TurnoutPercentage     float64

	IsResultDeclared  bool
	WinnerCandidateID string
	ResultDeclaredAt  *time.Time

	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ScheduleValid checks the five-timestamp ordering: registration must close
// no later than voting opens, and voting must close no later than results.
func (e Election) ScheduleValid() bool {
	return e.RegistrationStart.Before(e.RegistrationEnd) &&
		!e.RegistrationEnd.After(e.VotingStart) &&
		e.VotingStart.Before(e.VotingEnd) &&
		!e.VotingEnd.After(e.ResultDate)
}
