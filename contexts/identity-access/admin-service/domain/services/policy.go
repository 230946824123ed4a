package services

import "civica/contexts/identity-access/admin-service/domain/entities"

// Actor is the identity/permission context resolved from a bearer token.
type Actor struct {
	AdminID     string
	Role        entities.Role
	Permissions map[string]bool
}

// Allow is the single authorization decision point for admin actions.
// Super-admin implicitly holds every permission regardless of explicit set.
func Allow(actor Actor, permission string) bool {
	if actor.Role == entities.RoleSuperAdmin {
		return true
	}
	return actor.Permissions[permission]
}

// HasRole matches an exact role; super-admin satisfies every role check.
func HasRole(actor Actor, role entities.Role) bool {
	return actor.Role == role || actor.Role == entities.RoleSuperAdmin
}

// ActorFor builds the policy context from a loaded admin account.
func ActorFor(admin entities.Admin) Actor {
	return Actor{
		AdminID:     admin.AdminID,
		Role:        admin.Role,
		Permissions: admin.Permissions,
	}
}
