package errors

import "errors"

var (
	ErrInvalidVoterInput   = errors.New("invalid voter input")
	ErrUnderage            = errors.New("voter must be at least 18 years old")
	ErrDuplicateEmail      = errors.New("email is already registered")
	ErrDuplicatePhone      = errors.New("phone number is already registered")
	ErrDuplicateNationalID = errors.New("national id is already registered")
	ErrVoterNotFound       = errors.New("voter not found")
	ErrInvalidCredentials  = errors.New("invalid email/phone or password")
	ErrVoterInactive       = errors.New("voter account is deactivated")
	ErrVoterHasVoted       = errors.New("voter with recorded votes cannot be deleted")
)
