package entities

import "time"

type Role string

const (
	RoleSuperAdmin           Role = "super_admin"
	RoleElectionCommissioner Role = "election_commissioner"
	RoleReturningOfficer     Role = "returning_officer"
	RoleAdminOfficer         Role = "admin_officer"
)

func IsValidRole(role Role) bool {
	switch role {
	case RoleSuperAdmin, RoleElectionCommissioner, RoleReturningOfficer, RoleAdminOfficer:
		return true
	default:
		return false
	}
}

// Permission names understood by the policy engine.
const (
	PermManageElections  = "manage_elections"
	PermManageCandidates = "manage_candidates"
	PermManageVoters     = "manage_voters"
	PermViewResults      = "view_results"
	PermAuditVotes       = "audit_votes"
	PermManageAdmins     = "manage_admins"
	PermViewReports      = "view_reports"
)

// ActivityEntry is one row of the bounded per-admin activity log.
type ActivityEntry struct {
	Action     string
	TargetID   string
	OccurredAt time.Time
}

// activityLogLimit bounds the retained entries per admin account.
const ActivityLogLimit = 50

type Admin struct {
	AdminID      string
	FullName     string
	Email        string
	PasswordHash string
	Role         Role
	Permissions  map[string]bool
	FailedLogins int
	LockedUntil  *time.Time
	Activity     []ActivityEntry
	IsActive     bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLocked reports whether the lockout window is still open.
func (a Admin) IsLocked(now time.Time) bool {
	return a.LockedUntil != nil && a.LockedUntil.After(now)
}
