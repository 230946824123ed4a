package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"civica/contexts/identity-access/admin-service/adapters/memory"
	"civica/contexts/identity-access/admin-service/domain/entities"
	domainerrors "civica/contexts/identity-access/admin-service/domain/errors"
	"civica/contexts/identity-access/admin-service/domain/services"
)

func newTestService(t *testing.T, store *memory.Store) Service {
	t.Helper()
	store.SetNow(func() time.Time {
		return time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	})
	return Service{
		Admins:   store,
		Clock:    store,
		IDGen:    store,
		HashCost: bcrypt.MinCost,
	}
}

func superActor() services.Actor {
	return services.Actor{AdminID: "root-admin", Role: entities.RoleSuperAdmin}
}

func seedSuperAdmin(t *testing.T, store *memory.Store) entities.Admin {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("root-password"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	admin := entities.Admin{
		AdminID:      "root-admin",
		FullName:     "Root",
		Email:        "root@civica.example",
		PasswordHash: string(hash),
		Role:         entities.RoleSuperAdmin,
		IsActive:     true,
	}
	if err := store.CreateAdmin(context.Background(), admin); err != nil {
		t.Fatalf("seed super admin failed: %v", err)
	}
	return admin
}

func TestLoginLocksAfterRepeatedFailures(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, store)
	seedSuperAdmin(t, store)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		if _, err := service.Login(ctx, "root@civica.example", "wrong"); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
			t.Fatalf("attempt %d: expected ErrInvalidCredentials, got %v", i+1, err)
		}
	}
	// Fifth failure trips the lock.
	if _, err := service.Login(ctx, "root@civica.example", "wrong"); !errors.Is(err, domainerrors.ErrAccountLocked) {
		t.Fatalf("expected ErrAccountLocked on fifth failure, got %v", err)
	}
	// Even the correct password is rejected while locked.
	if _, err := service.Login(ctx, "root@civica.example", "root-password"); !errors.Is(err, domainerrors.ErrAccountLocked) {
		t.Fatalf("expected ErrAccountLocked for correct password while locked, got %v", err)
	}
}

func TestLoginSucceedsAfterLockExpires(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, store)
	seedSuperAdmin(t, store)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, _ = service.Login(ctx, "root@civica.example", "wrong")
	}

	store.SetNow(func() time.Time {
		return time.Date(2026, time.March, 10, 11, 0, 1, 0, time.UTC)
	})
	admin, err := service.Login(ctx, "root@civica.example", "root-password")
	if err != nil {
		t.Fatalf("login after lock expiry failed: %v", err)
	}
	if admin.FailedLogins != 0 || admin.LockedUntil != nil {
		t.Fatalf("expected counter and lock reset, got %d / %v", admin.FailedLogins, admin.LockedUntil)
	}
}

func TestLoginResetsFailureCounterOnSuccess(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, store)
	seedSuperAdmin(t, store)
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, _ = service.Login(ctx, "root@civica.example", "wrong")
	}
	if _, err := service.Login(ctx, "root@civica.example", "root-password"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	// The slate is clean again: four more failures must not lock.
	for i := 0; i < 4; i++ {
		if _, err := service.Login(ctx, "root@civica.example", "wrong"); !errors.Is(err, domainerrors.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials after reset, got %v", err)
		}
	}
}

func TestCreateAdminRequiresSuperAdmin(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, store)
	ctx := context.Background()

	officer := services.Actor{AdminID: "officer-1", Role: entities.RoleAdminOfficer}
	_, err := service.CreateAdmin(ctx, officer, CreateAdminCommand{
		FullName: "New Admin",
		Email:    "new@civica.example",
		Password: "long-enough",
		Role:     entities.RoleReturningOfficer,
	})
	if !errors.Is(err, domainerrors.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestCreateAdminSeedsRoleDefaultPermissions(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, store)
	seedSuperAdmin(t, store)
	ctx := context.Background()

	admin, err := service.CreateAdmin(ctx, superActor(), CreateAdminCommand{
		FullName: "Commissioner",
		Email:    "ec@civica.example",
		Password: "long-enough",
		Role:     entities.RoleElectionCommissioner,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !admin.Permissions[entities.PermManageElections] || !admin.Permissions[entities.PermManageCandidates] {
		t.Fatalf("expected commissioner defaults, got %v", admin.Permissions)
	}
	if admin.Permissions[entities.PermManageAdmins] {
		t.Fatal("commissioner must not receive manage_admins by default")
	}
}

func TestDeleteAdminGuards(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, store)
	seedSuperAdmin(t, store)
	ctx := context.Background()

	if err := service.DeleteAdmin(ctx, superActor(), "root-admin"); !errors.Is(err, domainerrors.ErrSelfDeletion) {
		t.Fatalf("expected ErrSelfDeletion, got %v", err)
	}

	created, err := service.CreateAdmin(ctx, superActor(), CreateAdminCommand{
		FullName: "Officer",
		Email:    "officer@civica.example",
		Password: "long-enough",
		Role:     entities.RoleAdminOfficer,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := service.DeleteAdmin(ctx, superActor(), created.AdminID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.GetAdmin(ctx, created.AdminID); !errors.Is(err, domainerrors.ErrAdminNotFound) {
		t.Fatalf("expected deleted admin to be gone, got %v", err)
	}
}

func TestUpdateAdminProtectsOtherSuperAdmins(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, store)
	seedSuperAdmin(t, store)
	ctx := context.Background()

	other := entities.Admin{
		AdminID:  "root-2",
		FullName: "Second Root",
		Email:    "root2@civica.example",
		Role:     entities.RoleSuperAdmin,
		IsActive: true,
	}
	if err := store.CreateAdmin(ctx, other); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	inactive := false
	_, err := service.UpdateAdmin(ctx, superActor(), "root-2", UpdateAdminCommand{IsActive: &inactive})
	if !errors.Is(err, domainerrors.ErrSuperAdminProtected) {
		t.Fatalf("expected ErrSuperAdminProtected, got %v", err)
	}
}

func TestResolveActorRejectsInactiveAdmin(t *testing.T) {
	store := memory.NewStore()
	service := newTestService(t, store)
	seedSuperAdmin(t, store)
	ctx := context.Background()

	created, err := service.CreateAdmin(ctx, superActor(), CreateAdminCommand{
		FullName: "Officer",
		Email:    "officer@civica.example",
		Password: "long-enough",
		Role:     entities.RoleAdminOfficer,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	inactive := false
	if _, err := service.UpdateAdmin(ctx, superActor(), created.AdminID, UpdateAdminCommand{IsActive: &inactive}); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if _, err := service.ResolveActor(ctx, created.AdminID); !errors.Is(err, domainerrors.ErrAdminInactive) {
		t.Fatalf("expected ErrAdminInactive, got %v", err)
	}
}
