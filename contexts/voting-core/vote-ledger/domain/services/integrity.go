package services

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"civica/contexts/voting-core/vote-ledger/domain/entities"
)

// VoteHash computes the integrity checksum over a vote's identifying fields
// and cast time. Deterministic: verification recomputes it and compares.
func VoteHash(voterID string, candidateID string, electionID string, castAt time.Time) string {
	sum := sha256.Sum256([]byte(
		voterID + "|" + candidateID + "|" + electionID + "|" + castAt.UTC().Format(time.RFC3339Nano),
	))
	return hex.EncodeToString(sum[:])
}

// VoterHash anonymizes the voter reference for events and public views. It
// is linkable by anyone holding the voter table, which is acceptable here;
// genuine unlinkability would need a credential scheme this system does not
// attempt.
func VoterHash(voterID string, castAt time.Time) string {
	sum := sha256.Sum256([]byte(
		"voter|" + voterID + "|" + castAt.UTC().Format(time.RFC3339Nano),
	))
	return hex.EncodeToString(sum[:])
}

// IntegrityValid recomputes the stored vote's hash and reports whether it
// still matches.
func IntegrityValid(vote entities.Vote) bool {
	return vote.VoteHash == VoteHash(vote.VoterID, vote.CandidateID, vote.ElectionID, vote.CastAt)
}
