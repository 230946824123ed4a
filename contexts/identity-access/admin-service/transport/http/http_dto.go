package http

import "time"

type LoginAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type CreateAdminRequest struct {
	FullName    string          `json:"full_name" validate:"required,min=2"`
	Email       string          `json:"email" validate:"required,email"`
	Password    string          `json:"password" validate:"required,min=8"`
	Role        string          `json:"role" validate:"required,oneof=super_admin election_commissioner returning_officer admin_officer"`
	Permissions map[string]bool `json:"permissions,omitempty"`
}

type UpdateAdminRequest struct {
	FullName    *string         `json:"full_name,omitempty"`
	Role        *string         `json:"role,omitempty" validate:"omitempty,oneof=super_admin election_commissioner returning_officer admin_officer"`
	Permissions map[string]bool `json:"permissions,omitempty"`
	IsActive    *bool           `json:"is_active,omitempty"`
}

// AdminResponse is the sanitized admin payload: no password hash.
type AdminResponse struct {
	AdminID     string          `json:"admin_id"`
	FullName    string          `json:"full_name"`
	Email       string          `json:"email"`
	Role        string          `json:"role"`
	Permissions map[string]bool `json:"permissions"`
	IsActive    bool            `json:"is_active"`
	LockedUntil *time.Time      `json:"locked_until,omitempty"`
	LastLoginAt *time.Time      `json:"last_login_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type AuthAdminResponse struct {
	Token string        `json:"token"`
	Admin AdminResponse `json:"admin"`
}

type AdminListResponse struct {
	Items []AdminResponse `json:"items"`
}

type AuditEntryResponse struct {
	AdminID    string    `json:"admin_id"`
	AdminEmail string    `json:"admin_email"`
	Action     string    `json:"action"`
	TargetID   string    `json:"target_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

type AuditLogResponse struct {
	Items []AuditEntryResponse `json:"items"`
}
