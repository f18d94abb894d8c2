package user

import "errors"

var (
	ErrUserNotFound           = errors.New("User not found")
	ErrEmailExists            = errors.New("Email already registered")
	ErrAdminPrivilegeRequired = errors.New("Admin privilege required")
)
