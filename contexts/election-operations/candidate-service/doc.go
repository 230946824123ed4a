// Package candidateservice implements candidate nomination inside the
// election-operations context.
//
// The module owns nomination, the approval workflow, and the votability
// rule: a candidate may receive votes only while approved and active.
// Mutations are frozen once the owning election's voting window opens, and
// deleting a candidate who already holds votes deactivates it instead so
// the vote ledger keeps a valid reference.
package candidateservice
