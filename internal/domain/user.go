package domain

import "time"

// Global roles. Group-scoped admin rights live on the Group itself.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Role         string // "admin" or "member"
	Groups       []string
	GroupAdminOf []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin reports whether the user holds the global admin role.
func (u User) IsAdmin() bool { return u.Role == RoleAdmin }

// FullName returns "First Last" for display.
func (u User) FullName() string {
	if u.FirstName == "" {
		return u.LastName
	}
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
