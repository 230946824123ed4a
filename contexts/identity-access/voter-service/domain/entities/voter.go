package entities

import "time"

type Gender string

const (
	GenderFemale Gender = "female"
	GenderMale   Gender = "male"
	GenderOther  Gender = "other"
)

// VotingRecord is one entry in a voter's append-only voting history.
type VotingRecord struct {
	ElectionID string
	VotedAt    time.Time
}

type Voter struct {
	VoterID      string
	FullName     string
	Email        string
	Phone        string
	NationalID   string
	DateOfBirth  time.Time
	Gender       Gender
	AddressLine  string
	City         string
	State        string
	Constituency string
	PasswordHash string
	HasVoted     bool
	History      []VotingRecord
	IsActive     bool
	IsVerified   bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AgeAt returns whole years between date of birth and the reference time.
func (v Voter) AgeAt(now time.Time) int {
	years := now.Year() - v.DateOfBirth.Year()
	anniversary := v.DateOfBirth.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	return years
}

// HasVotedIn reports whether the voter's history records the election.
func (v Voter) HasVotedIn(electionID string) bool {
	for _, record := range v.History {
		if record.ElectionID == electionID {
			return true
		}
	}
	return false
}
