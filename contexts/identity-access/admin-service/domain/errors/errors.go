package errors

import "errors"

var (
	ErrInvalidAdminInput   = errors.New("invalid admin input")
	ErrAdminNotFound       = errors.New("admin not found")
	ErrDuplicateEmail      = errors.New("admin email is already registered")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrAccountLocked       = errors.New("account is temporarily locked")
	ErrAdminInactive       = errors.New("admin account is deactivated")
	ErrForbidden           = errors.New("insufficient role or permission")
	ErrSuperAdminProtected = errors.New("super admin accounts cannot be modified by others")
	ErrSelfDeletion        = errors.New("admins cannot delete their own account")
)
