package domain

import "time"

// Role gates what a user may do inside their organization. Admin is the
// platform-operator role used for the /admin surface.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// User is an authenticated dashboard account. PasswordHash is a bcrypt hash
// and never leaves the backend.
type User struct {
	ID             string
	OrganizationID string
	Email          string
	Name           string
	PasswordHash   string
	Role           Role
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
