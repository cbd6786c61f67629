package session

import "strings"

// Role is the user's role as issued by the library backend.
type Role string

const (
	RoleStudent Role = "etudiant"
	RoleAdmin   Role = "admin"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleAdmin
}

// User is the profile snapshot kept next to the bearer token.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"nom"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

// Valid reports whether u is well-formed enough to be stored.
func (u User) Valid() bool {
	return u.ID > 0 &&
		strings.TrimSpace(u.Name) != "" &&
		strings.TrimSpace(u.Email) != "" &&
		u.Role.Valid()
}

// IsAdmin reports whether u has the admin role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
