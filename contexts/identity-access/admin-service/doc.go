// Package adminservice implements administrative identity inside the
// identity-access context.
//
// The module owns admin accounts, the fixed role set, explicit permission
// sets, login lockout, and the bounded per-admin activity log. Authorization
// for every admin route flows through a single policy function in
// domain/services; handlers never compare role strings ad hoc.
package adminservice
