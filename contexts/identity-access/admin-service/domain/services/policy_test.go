package services

import (
	"testing"

	"civica/contexts/identity-access/admin-service/domain/entities"
)

func TestAllowGrantsEverythingToSuperAdmin(t *testing.T) {
	actor := Actor{AdminID: "root", Role: entities.RoleSuperAdmin}
	if !Allow(actor, entities.PermManageAdmins) || !Allow(actor, entities.PermAuditVotes) {
		t.Fatal("super admin must hold every permission implicitly")
	}
}

func TestAllowChecksExplicitGrants(t *testing.T) {
	actor := Actor{
		AdminID: "officer-1",
		Role:    entities.RoleAdminOfficer,
		Permissions: map[string]bool{
			entities.PermManageVoters: true,
		},
	}
	if !Allow(actor, entities.PermManageVoters) {
		t.Fatal("explicit grant must pass")
	}
	if Allow(actor, entities.PermManageElections) {
		t.Fatal("missing grant must fail")
	}
}

func TestHasRoleExactMatchOrSuperAdmin(t *testing.T) {
	officer := Actor{Role: entities.RoleReturningOfficer}
	if !HasRole(officer, entities.RoleReturningOfficer) {
		t.Fatal("exact role must match")
	}
	if HasRole(officer, entities.RoleElectionCommissioner) {
		t.Fatal("different role must not match")
	}
	if !HasRole(Actor{Role: entities.RoleSuperAdmin}, entities.RoleReturningOfficer) {
		t.Fatal("super admin satisfies every role check")
	}
}
