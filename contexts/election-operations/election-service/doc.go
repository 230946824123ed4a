// Package electionservice implements election lifecycle inside the
// election-operations context.
//
// The module owns election creation with schedule validation, the
// time-derived phase machine, the administratively-set status field, counter
// maintenance, and result declaration. The derived phase and the stored
// status are intentionally separate: votes are accepted only when both say
// so, and every caller must check both.
package electionservice
