// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleReader indicates a regular reader account.
	RoleReader Role = "reader"
	// RoleAuthor indicates an account allowed to write and manage articles.
	RoleAuthor Role = "author"
	// RoleAdmin indicates a site administrator.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleReader, RoleAuthor, RoleAdmin:
		return true
	default:
		return false
	}
}

// CanPublish reports whether the role is allowed to create and edit articles.
func (r Role) CanPublish() bool {
	return r == RoleAuthor || r == RoleAdmin
}
