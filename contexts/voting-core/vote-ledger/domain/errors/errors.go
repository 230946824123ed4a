package errors

import "errors"

var (
	ErrInvalidVoteInput       = errors.New("invalid vote input")
	ErrVoteNotFound           = errors.New("vote not found")
	ErrElectionNotFound       = errors.New("election not found")
	ErrVotingClosed           = errors.New("election is not currently accepting votes")
	ErrAlreadyVoted           = errors.New("voter has already cast a vote in this election")
	ErrCandidateNotFound      = errors.New("candidate not found")
	ErrCandidateNotInElection = errors.New("candidate does not belong to this election")
	ErrCandidateNotVotable    = errors.New("candidate is not approved for voting")
	ErrVoterNotEligible       = errors.New("voter account is not active and verified")
	ErrCodeCollision          = errors.New("verification code collision")
	ErrInvalidStatusChange    = errors.New("invalid vote status")
)
