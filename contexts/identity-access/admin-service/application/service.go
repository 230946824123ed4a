package application

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"civica/contexts/identity-access/admin-service/domain/entities"
	domainerrors "civica/contexts/identity-access/admin-service/domain/errors"
	"civica/contexts/identity-access/admin-service/domain/services"
	"civica/contexts/identity-access/admin-service/ports"
)

type CreateAdminCommand struct {
	FullName    string
	Email       string
	Password    string
	Role        entities.Role
	Permissions map[string]bool
}

type UpdateAdminCommand struct {
	FullName    *string
	Role        *entities.Role
	Permissions map[string]bool
	IsActive    *bool
}

type Service struct {
	Admins ports.AdminRepository
	Clock  ports.Clock
	IDGen  ports.IDGenerator
	Logger *slog.Logger

	// Lockout knobs; zero values fall back to 5 attempts / 2 hours.
	MaxLoginAttempts int
	LockDuration     time.Duration
	HashCost         int
}

// Login verifies an admin credential with lockout semantics: after
// MaxLoginAttempts consecutive failures the account locks for LockDuration,
// and even a correct password is rejected until the lock expires. A correct
// password after expiry resets the counter.
func (s Service) Login(ctx context.Context, email string, password string) (entities.Admin, error) {
	logger := ResolveLogger(s.Logger)
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return entities.Admin{}, domainerrors.ErrInvalidCredentials
	}

	admin, found, err := s.Admins.GetAdminByEmail(ctx, email)
	if err != nil {
		return entities.Admin{}, err
	}
	if !found {
		return entities.Admin{}, domainerrors.ErrInvalidCredentials
	}

	now := s.now()
	if admin.IsLocked(now) {
		logger.Warn("admin login rejected while locked",
			"event", "admin_login_locked",
			"module", "identity-access/admin-service",
			"layer", "application",
			"admin_id", admin.AdminID,
		)
		return entities.Admin{}, domainerrors.ErrAccountLocked
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		admin.FailedLogins++
		if admin.FailedLogins >= s.maxAttempts() {
			until := now.Add(s.lockDuration())
			admin.LockedUntil = &until
			admin.FailedLogins = 0
			logger.Warn("admin account locked after repeated failures",
				"event", "admin_account_locked",
				"module", "identity-access/admin-service",
				"layer", "application",
				"admin_id", admin.AdminID,
				"locked_until", until.Format(time.RFC3339),
			)
		}
		admin.UpdatedAt = now
		if saveErr := s.Admins.SaveAdmin(ctx, admin); saveErr != nil {
			return entities.Admin{}, saveErr
		}
		if admin.LockedUntil != nil && admin.LockedUntil.After(now) {
			return entities.Admin{}, domainerrors.ErrAccountLocked
		}
		return entities.Admin{}, domainerrors.ErrInvalidCredentials
	}

	if !admin.IsActive {
		return entities.Admin{}, domainerrors.ErrAdminInactive
	}

	admin.FailedLogins = 0
	admin.LockedUntil = nil
	admin.LastLoginAt = &now
	admin.UpdatedAt = now
	if err := s.Admins.SaveAdmin(ctx, admin); err != nil {
		return entities.Admin{}, err
	}
	if err := s.Admins.AppendActivity(ctx, admin.AdminID, entities.ActivityEntry{
		Action:     "login",
		OccurredAt: now,
	}); err != nil {
		return entities.Admin{}, err
	}

	logger.Info("admin logged in",
		"event", "admin_login",
		"module", "identity-access/admin-service",
		"layer", "application",
		"admin_id", admin.AdminID,
		"role", string(admin.Role),
	)
	return admin, nil
}

// CreateAdmin provisions a new admin account. Super-admin only.
func (s Service) CreateAdmin(ctx context.Context, actor services.Actor, cmd CreateAdminCommand) (entities.Admin, error) {
	logger := ResolveLogger(s.Logger)
	if actor.Role != entities.RoleSuperAdmin {
		return entities.Admin{}, domainerrors.ErrForbidden
	}
	email := strings.ToLower(strings.TrimSpace(cmd.Email))
	if strings.TrimSpace(cmd.FullName) == "" || email == "" || len(cmd.Password) < 8 {
		return entities.Admin{}, domainerrors.ErrInvalidAdminInput
	}
	if !entities.IsValidRole(cmd.Role) {
		return entities.Admin{}, domainerrors.ErrInvalidAdminInput
	}

	cost := s.HashCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), cost)
	if err != nil {
		return entities.Admin{}, err
	}

	adminID, err := s.IDGen.NewID(ctx)
	if err != nil {
		return entities.Admin{}, err
	}
	now := s.now()
	permissions := cmd.Permissions
	if len(permissions) == 0 {
		permissions = DefaultPermissions(cmd.Role)
	}
	admin := entities.Admin{
		AdminID:      adminID,
		FullName:     strings.TrimSpace(cmd.FullName),
		Email:        email,
		PasswordHash: string(hash),
		Role:         cmd.Role,
		Permissions:  permissions,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.Admins.CreateAdmin(ctx, admin); err != nil {
		return entities.Admin{}, err
	}
	if err := s.Admins.AppendActivity(ctx, actor.AdminID, entities.ActivityEntry{
		Action:     "create_admin",
		TargetID:   admin.AdminID,
		OccurredAt: now,
	}); err != nil {
		return entities.Admin{}, err
	}

	logger.Info("admin created",
		"event", "admin_created",
		"module", "identity-access/admin-service",
		"layer", "application",
		"admin_id", admin.AdminID,
		"role", string(admin.Role),
		"created_by", actor.AdminID,
	)
	return admin, nil
}

func (s Service) GetAdmin(ctx context.Context, actor services.Actor, adminID string) (entities.Admin, error) {
	if actor.Role != entities.RoleSuperAdmin && actor.AdminID != strings.TrimSpace(adminID) {
		return entities.Admin{}, domainerrors.ErrForbidden
	}
	return s.Admins.GetAdmin(ctx, strings.TrimSpace(adminID))
}

func (s Service) ListAdmins(ctx context.Context, actor services.Actor) ([]entities.Admin, error) {
	if actor.Role != entities.RoleSuperAdmin {
		return nil, domainerrors.ErrForbidden
	}
	return s.Admins.ListAdmins(ctx)
}

// UpdateAdmin mutates role/permissions/activation. Super-admin only; a
// super-admin account can only be modified by itself.
func (s Service) UpdateAdmin(ctx context.Context, actor services.Actor, adminID string, cmd UpdateAdminCommand) (entities.Admin, error) {
	if actor.Role != entities.RoleSuperAdmin {
		return entities.Admin{}, domainerrors.ErrForbidden
	}
	admin, err := s.Admins.GetAdmin(ctx, strings.TrimSpace(adminID))
	if err != nil {
		return entities.Admin{}, err
	}
	if admin.Role == entities.RoleSuperAdmin && admin.AdminID != actor.AdminID {
		return entities.Admin{}, domainerrors.ErrSuperAdminProtected
	}

	now := s.now()
	if cmd.FullName != nil && strings.TrimSpace(*cmd.FullName) != "" {
		admin.FullName = strings.TrimSpace(*cmd.FullName)
	}
	if cmd.Role != nil {
		if !entities.IsValidRole(*cmd.Role) {
			return entities.Admin{}, domainerrors.ErrInvalidAdminInput
		}
		admin.Role = *cmd.Role
	}
	if cmd.Permissions != nil {
		admin.Permissions = cmd.Permissions
	}
	if cmd.IsActive != nil {
		admin.IsActive = *cmd.IsActive
	}
	admin.UpdatedAt = now
	if err := s.Admins.SaveAdmin(ctx, admin); err != nil {
		return entities.Admin{}, err
	}
	if err := s.Admins.AppendActivity(ctx, actor.AdminID, entities.ActivityEntry{
		Action:     "update_admin",
		TargetID:   admin.AdminID,
		OccurredAt: now,
	}); err != nil {
		return entities.Admin{}, err
	}
	return admin, nil
}

// DeleteAdmin removes an admin account. Super-admin only; super-admin
// accounts are not deletable and self-deletion is rejected.
func (s Service) DeleteAdmin(ctx context.Context, actor services.Actor, adminID string) error {
	if actor.Role != entities.RoleSuperAdmin {
		return domainerrors.ErrForbidden
	}
	adminID = strings.TrimSpace(adminID)
	if adminID == actor.AdminID {
		return domainerrors.ErrSelfDeletion
	}
	admin, err := s.Admins.GetAdmin(ctx, adminID)
	if err != nil {
		return err
	}
	if admin.Role == entities.RoleSuperAdmin {
		return domainerrors.ErrSuperAdminProtected
	}
	if err := s.Admins.DeleteAdmin(ctx, adminID); err != nil {
		return err
	}
	return s.Admins.AppendActivity(ctx, actor.AdminID, entities.ActivityEntry{
		Action:     "delete_admin",
		TargetID:   adminID,
		OccurredAt: s.now(),
	})
}

// RecordActivity lets other transports attribute actions (election created,
// candidate approved) to the acting admin's bounded log.
func (s Service) RecordActivity(ctx context.Context, adminID string, action string, targetID string) error {
	if strings.TrimSpace(adminID) == "" || strings.TrimSpace(action) == "" {
		return domainerrors.ErrInvalidAdminInput
	}
	return s.Admins.AppendActivity(ctx, strings.TrimSpace(adminID), entities.ActivityEntry{
		Action:     strings.TrimSpace(action),
		TargetID:   strings.TrimSpace(targetID),
		OccurredAt: s.now(),
	})
}

func (s Service) ListAuditLog(ctx context.Context, actor services.Actor, limit int) ([]ports.AuditEntry, error) {
	if !services.Allow(actor, entities.PermAuditVotes) {
		return nil, domainerrors.ErrForbidden
	}
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	return s.Admins.ListAuditLog(ctx, limit)
}

// ResolveActor loads the policy context for a token subject.
func (s Service) ResolveActor(ctx context.Context, adminID string) (services.Actor, error) {
	admin, err := s.Admins.GetAdmin(ctx, strings.TrimSpace(adminID))
	if err != nil {
		return services.Actor{}, err
	}
	if !admin.IsActive {
		return services.Actor{}, domainerrors.ErrAdminInactive
	}
	return services.ActorFor(admin), nil
}

// DefaultPermissions is the explicit grant set seeded for each role.
// Super-admin needs none: the policy function short-circuits on role.
func DefaultPermissions(role entities.Role) map[string]bool {
	switch role {
	case entities.RoleElectionCommissioner:
		return map[string]bool{
			entities.PermManageElections:  true,
			entities.PermManageCandidates: true,
			entities.PermViewResults:      true,
			entities.PermViewReports:      true,
		}
	case entities.RoleReturningOfficer:
		return map[string]bool{
			entities.PermManageCandidates: true,
			entities.PermViewResults:      true,
		}
	case entities.RoleAdminOfficer:
		return map[string]bool{
			entities.PermManageVoters: true,
			entities.PermViewReports:  true,
		}
	default:
		return map[string]bool{}
	}
}

func (s Service) maxAttempts() int {
	if s.MaxLoginAttempts <= 0 {
		return 5
	}
	return s.MaxLoginAttempts
}

func (s Service) lockDuration() time.Duration {
	if s.LockDuration <= 0 {
		return 2 * time.Hour
	}
	return s.LockDuration
}

func (s Service) now() time.Time {
	now := time.Now().UTC()
	if s.Clock != nil {
		now = s.Clock.Now().UTC()
	}
	return now
}
