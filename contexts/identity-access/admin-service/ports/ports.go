package ports

import (
	"context"
	"time"

	"civica/contexts/identity-access/admin-service/domain/entities"
)

type Clock interface {
	Now() time.Time
}

type IDGenerator interface {
	NewID(ctx context.Context) (string, error)
}

// AuditEntry is a flattened activity row attributed to its admin, used by
// the audit log listing.
type AuditEntry struct {
	AdminID    string
	AdminEmail string
	Action     string
	TargetID   string
	OccurredAt time.Time
}

type AdminRepository interface {
	CreateAdmin(ctx context.Context, admin entities.Admin) error
	GetAdmin(ctx context.Context, adminID string) (entities.Admin, error)
	GetAdminByEmail(ctx context.Context, email string) (entities.Admin, bool, error)
	ListAdmins(ctx context.Context) ([]entities.Admin, error)
	// SaveAdmin persists role/permission/lockout/login mutations.
	SaveAdmin(ctx context.Context, admin entities.Admin) error
	DeleteAdmin(ctx context.Context, adminID string) error
	// AppendActivity records an action and trims the log to the entity bound.
	AppendActivity(ctx context.Context, adminID string, entry entities.ActivityEntry) error
	// ListAuditLog returns activity across all admins, newest first.
	ListAuditLog(ctx context.Context, limit int) ([]AuditEntry, error)
}
