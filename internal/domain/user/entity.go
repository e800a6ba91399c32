package user

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         Role
	EmployeeID   *string
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleHR         Role = "hr"
	RoleAccounts   Role = "accounts"
	RoleEmployee   Role = "employee"
)

// IsValid reports whether r is one of the known roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleHR, RoleAccounts, RoleEmployee:
		return true
	}
	return false
}
