// Package voterservice implements voter identity inside the
// identity-access context.
//
// The module owns voter registration, credential verification, profile
// reads, and voting-status bookkeeping (hasVoted flag plus per-election
// history). Uniqueness of email, phone, and national ID is enforced by the
// storage adapter's unique indexes; the application layer only translates
// violations into friendly errors.
package voterservice
