package user

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrAccountDeactivated = errors.New("account is deactivated")
	ErrAccessDenied       = errors.New("insufficient role for this operation")
)
