package user

import "time"

type Role string

const (
	RoleAdmin     Role = "admin"      // Full access including database management
	RoleHRManager Role = "hr_manager" // Manages employee records
	RoleManager   Role = "manager"    // Manages own team's records
	RoleEmployee  Role = "employee"   // Regular employee
	RoleReadonly  Role = "readonly"   // View-only access
)

func Roles() []string {
	return []string{
		string(RoleAdmin),
		string(RoleHRManager),
		string(RoleManager),
		string(RoleEmployee),
		string(RoleReadonly),
	}
}

type Status string

const (
	StatusActive            Status = "active"
	StatusInactive          Status = "inactive"
	StatusSuspended         Status = "suspended"
	StatusPendingActivation Status = "pending_activation"
)

type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         Role
	Status       Status
	LastLoginAt  *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive checks if the user may log in.
func (u *User) IsActive() bool {
	return u.Status == StatusActive
}

// IsAdmin checks if user has full administrative access
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// CanManageEmployees checks if the user may create, update or delete
// employee records.
func (u *User) CanManageEmployees() bool {
	switch u.Role {
	case RoleAdmin, RoleHRManager, RoleManager:
		return true
	}
	return false
}
