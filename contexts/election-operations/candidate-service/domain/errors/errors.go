package errors

import "errors"

var (
	ErrInvalidCandidateInput = errors.New("invalid candidate input")
	ErrCandidateNotFound     = errors.New("candidate not found")
	ErrElectionNotFound      = errors.New("election not found")
	ErrElectionClosed        = errors.New("election no longer accepts nominations")
	ErrVotingWindowOpen      = errors.New("candidate cannot be changed once voting has started")
	ErrAlreadyDecided        = errors.New("candidate approval is already decided")
	ErrCandidateHasVotes     = errors.New("candidate with recorded votes can only be deactivated")
)
