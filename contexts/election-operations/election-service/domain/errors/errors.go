package errors

import "errors"

var (
	ErrInvalidElectionInput   = errors.New("invalid election input")
	ErrInvalidSchedule        = errors.New("election dates must be ordered: registration, voting, results")
	ErrElectionNotFound       = errors.New("election not found")
	ErrElectionLocked         = errors.New("election cannot be edited once active")
	ErrInvalidStatusChange    = errors.New("invalid election status transition")
	ErrResultsNotReady        = errors.New("results cannot be declared before voting ends")
	ErrResultsAlreadyDeclared = errors.New("results are already declared")
	ErrNoVotesRecorded        = errors.New("no valid votes recorded for this election")
	ErrTieUnresolved          = errors.New("top candidates are tied; manual resolution required")
)
