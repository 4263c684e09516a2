package domain

import "time"

// Role is a user's permission level.
type Role string

const (
	// RoleUser can sign in but has no dashboard access.
	RoleUser Role = "user"
	// RoleEmployee works leads and manages tags and accounts, but cannot change roles.
	RoleEmployee Role = "employee"
	// RoleAdmin has every permission.
	RoleAdmin Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleEmployee, RoleAdmin:
		return true
	default:
		return false
	}
}

// HasEmployeePermissions reports whether the role may use the dashboard.
func HasEmployeePermissions(r Role) bool {
	return r == RoleAdmin || r == RoleEmployee
}

// HasAdminPermissions reports whether the role is an administrator.
func HasAdminPermissions(r Role) bool {
	return r == RoleAdmin
}

// CanAssignRoles reports whether the role may change other users' roles.
func CanAssignRoles(r Role) bool {
	return r == RoleAdmin
}

// User is an account that can sign in.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Banned       bool       `json:"banned"`
	BanReason    *string    `json:"banReason"`
	BanExpires   *time.Time `json:"banExpires"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// IsBanned reports whether the ban is in force at now. A ban with a past expiry has lapsed.
func (u *User) IsBanned(now time.Time) bool {
	if !u.Banned {
		return false
	}
	return u.BanExpires == nil || now.Before(*u.BanExpires)
}

// IsEmployee reports whether the user may use the dashboard.
func (u *User) IsEmployee() bool {
	return HasEmployeePermissions(u.Role)
}

// IsAdmin reports whether the user is an administrator.
func (u *User) IsAdmin() bool {
	return HasAdminPermissions(u.Role)
}

// UserRef is the short form of a user embedded in other views.
type UserRef struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Ref returns the short form of u.
func (u *User) Ref() *UserRef {
	return &UserRef{ID: u.ID, Name: u.Name, Email: u.Email}
}
