package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"civica/contexts/identity-access/admin-service/domain/entities"
	domainerrors "civica/contexts/identity-access/admin-service/domain/errors"
	"civica/contexts/identity-access/admin-service/ports"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// Models lists the adapter-owned schema for platform migration.
func Models() []any {
	return []any{&adminModel{}, &adminActivityModel{}}
}

func (r *Repository) CreateAdmin(ctx context.Context, admin entities.Admin) error {
	row, err := adminModelFromEntity(admin)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domainerrors.ErrDuplicateEmail
		}
		return r.logError("admin_repo_create_failed", err, "admin_id", admin.AdminID)
	}
	return nil
}

func (r *Repository) GetAdmin(ctx context.Context, adminID string) (entities.Admin, error) {
	var row adminModel
	err := r.db.WithContext(ctx).
		Where("id = ?", strings.TrimSpace(adminID)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Admin{}, domainerrors.ErrAdminNotFound
		}
		return entities.Admin{}, r.logError("admin_repo_get_failed", err, "admin_id", strings.TrimSpace(adminID))
	}
	activity, err := r.loadActivity(ctx, row.ID)
	if err != nil {
		return entities.Admin{}, err
	}
	return row.toEntity(activity)
}

func (r *Repository) GetAdminByEmail(ctx context.Context, email string) (entities.Admin, bool, error) {
	var row adminModel
	err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(strings.TrimSpace(email))).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Admin{}, false, nil
		}
		return entities.Admin{}, false, r.logError("admin_repo_get_by_email_failed", err)
	}
	activity, err := r.loadActivity(ctx, row.ID)
	if err != nil {
		return entities.Admin{}, false, err
	}
	admin, err := row.toEntity(activity)
	if err != nil {
		return entities.Admin{}, false, err
	}
	return admin, true, nil
}

func (r *Repository) ListAdmins(ctx context.Context) ([]entities.Admin, error) {
	var rows []adminModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").
		Find(&rows).Error; err != nil {
		return nil, r.logError("admin_repo_list_failed", err)
	}
	items := make([]entities.Admin, 0, len(rows))
	for _, row := range rows {
		admin, err := row.toEntity(nil)
		if err != nil {
			return nil, err
		}
		items = append(items, admin)
	}
	return items, nil
}

func (r *Repository) SaveAdmin(ctx context.Context, admin entities.Admin) error {
	row, err := adminModelFromEntity(admin)
	if err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Model(&adminModel{}).
		Where("id = ?", admin.AdminID).
		Updates(map[string]any{
			"full_name":     row.FullName,
			"role":          row.Role,
			"permissions":   row.Permissions,
			"failed_logins": row.FailedLogins,
			"locked_until":  row.LockedUntil,
			"is_active":     row.IsActive,
			"last_login_at": row.LastLoginAt,
			"updated_at":    row.UpdatedAt,
		})
	if result.Error != nil {
		return r.logError("admin_repo_save_failed", result.Error, "admin_id", admin.AdminID)
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrAdminNotFound
	}
	return nil
}

func (r *Repository) DeleteAdmin(ctx context.Context, adminID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("admin_id = ?", strings.TrimSpace(adminID)).
			Delete(&adminActivityModel{}).Error; err != nil {
			return r.logError("admin_repo_delete_activity_failed", err, "admin_id", strings.TrimSpace(adminID))
		}
		result := tx.Where("id = ?", strings.TrimSpace(adminID)).Delete(&adminModel{})
		if result.Error != nil {
			return r.logError("admin_repo_delete_failed", result.Error, "admin_id", strings.TrimSpace(adminID))
		}
		if result.RowsAffected == 0 {
			return domainerrors.ErrAdminNotFound
		}
		return nil
	})
}

func (r *Repository) AppendActivity(ctx context.Context, adminID string, entry entities.ActivityEntry) error {
	adminID = strings.TrimSpace(adminID)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		row := adminActivityModel{
			AdminID:    adminID,
			Action:     entry.Action,
			TargetID:   entry.TargetID,
			OccurredAt: entry.OccurredAt.UTC(),
		}
		if err := tx.Create(&row).Error; err != nil {
			return r.logError("admin_repo_append_activity_failed", err, "admin_id", adminID)
		}
		// Trim to the retained bound; cheap because the log is per admin.
		return tx.Exec(`
			DELETE FROM admin_activity
			WHERE admin_id = ? AND id NOT IN (
				SELECT id FROM admin_activity
				WHERE admin_id = ?
				ORDER BY occurred_at DESC, id DESC
				LIMIT ?
			)`, adminID, adminID, entities.ActivityLogLimit).Error
	})
}

func (r *Repository) ListAuditLog(ctx context.Context, limit int) ([]ports.AuditEntry, error) {
	type auditRow struct {
		AdminID    string
		Email      string
		Action     string
		TargetID   string
		OccurredAt time.Time
	}
	var rows []auditRow
	err := r.db.WithContext(ctx).
		Table("admin_activity AS a").
		Select("a.admin_id, m.email, a.action, a.target_id, a.occurred_at").
		Joins("JOIN admins AS m ON m.id = a.admin_id").
		Order("a.occurred_at DESC").
		Limit(limit).
		Scan(&rows).
		Error
	if err != nil {
		return nil, r.logError("admin_repo_list_audit_failed", err)
	}
	entries := make([]ports.AuditEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, ports.AuditEntry{
			AdminID:    row.AdminID,
			AdminEmail: row.Email,
			Action:     row.Action,
			TargetID:   row.TargetID,
			OccurredAt: row.OccurredAt,
		})
	}
	return entries, nil
}

func (r *Repository) loadActivity(ctx context.Context, adminID string) ([]entities.ActivityEntry, error) {
	var rows []adminActivityModel
	if err := r.db.WithContext(ctx).
		Where("admin_id = ?", adminID).
		Order("occurred_at ASC").
		Limit(entities.ActivityLogLimit).
		Find(&rows).Error; err != nil {
		return nil, r.logError("admin_repo_load_activity_failed", err, "admin_id", adminID)
	}
	activity := make([]entities.ActivityEntry, 0, len(rows))
	for _, row := range rows {
		activity = append(activity, entities.ActivityEntry{
			Action:     row.Action,
			TargetID:   row.TargetID,
			OccurredAt: row.OccurredAt,
		})
	}
	return activity, nil
}

func (r *Repository) logError(event string, err error, args ...any) error {
	fields := append([]any{
		"event", event,
		"module", "identity-access/admin-service",
		"layer", "adapter",
		"error", err.Error(),
	}, args...)
	r.logger.Error("admin repository operation failed", fields...)
	return err
}

type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }

type UUIDGenerator struct{}

func (UUIDGenerator) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}

type adminModel struct {
	ID           string     `gorm:"column:id;primaryKey"`
	FullName     string     `gorm:"column:full_name"`
	Email        string     `gorm:"column:email;uniqueIndex:uq_admins_email"`
	PasswordHash string     `gorm:"column:password_hash"`
	Role         string     `gorm:"column:role"`
	Permissions  string     `gorm:"column:permissions;type:jsonb"`
	FailedLogins int        `gorm:"column:failed_logins"`
	LockedUntil  *time.Time `gorm:"column:locked_until"`
	IsActive     bool       `gorm:"column:is_active"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at"`
}

func (adminModel) TableName() string { return "admins" }

type adminActivityModel struct {
	ID         int64     `gorm:"column:id;primaryKey;autoIncrement"`
	AdminID    string    `gorm:"column:admin_id;index:idx_admin_activity_admin"`
	Action     string    `gorm:"column:action"`
	TargetID   string    `gorm:"column:target_id"`
	OccurredAt time.Time `gorm:"column:occurred_at;index:idx_admin_activity_at"`
}

func (adminActivityModel) TableName() string { return "admin_activity" }

func adminModelFromEntity(admin entities.Admin) (adminModel, error) {
	permissions, err := json.Marshal(admin.Permissions)
	if err != nil {
		return adminModel{}, err
	}
	return adminModel{
		ID:           admin.AdminID,
		FullName:     admin.FullName,
		Email:        admin.Email,
		PasswordHash: admin.PasswordHash,
		Role:         string(admin.Role),
		Permissions:  string(permissions),
		FailedLogins: admin.FailedLogins,
		LockedUntil:  admin.LockedUntil,
		IsActive:     admin.IsActive,
		LastLoginAt:  admin.LastLoginAt,
		CreatedAt:    admin.CreatedAt,
		UpdatedAt:    admin.UpdatedAt,
	}, nil
}

func (m adminModel) toEntity(activity []entities.ActivityEntry) (entities.Admin, error) {
	permissions := make(map[string]bool)
	if strings.TrimSpace(m.Permissions) != "" {
		if err := json.Unmarshal([]byte(m.Permissions), &permissions); err != nil {
			return entities.Admin{}, err
		}
	}
	return entities.Admin{
		AdminID:      m.ID,
		FullName:     m.FullName,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Role:         entities.Role(m.Role),
		Permissions:  permissions,
		FailedLogins: m.FailedLogins,
		LockedUntil:  m.LockedUntil,
		Activity:     activity,
		IsActive:     m.IsActive,
		LastLoginAt:  m.LastLoginAt,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ ports.AdminRepository = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
var _ ports.IDGenerator = UUIDGenerator{}
