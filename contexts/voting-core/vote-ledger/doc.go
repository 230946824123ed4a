// Package voteledger implements vote casting and custody inside the
// voting-core context.
//
// The module owns the one-vote-per-voter-per-election rule, enforced by a
// composite unique index rather than application locking: the pre-check
// only produces the friendly already-voted error, the constraint is the
// source of truth. Each vote carries an integrity hash, an anonymized voter
// hash, and a public verification code. Votes are never deleted; only the
// status field changes, with an append-only audit trail.
package voteledger
