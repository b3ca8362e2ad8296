package user

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Phone        *string
	Role         Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// IsAdmin reports whether the role carries administrative privilege.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}
