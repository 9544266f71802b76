package domain

import "time"

// UserRole controls what an app user may change on the roster.
type UserRole string

const (
	UserRoleAdmin   UserRole = "ADMIN"
	UserRoleManager UserRole = "MANAGER"
	UserRoleCrew    UserRole = "CREW"
)

// CanManageStaff reports whether the role may mutate the roster.
func (r UserRole) CanManageStaff() bool {
	return r == UserRoleAdmin || r == UserRoleManager
}

// User is an account that signs in to the app.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	Role         UserRole
	Active       bool
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
