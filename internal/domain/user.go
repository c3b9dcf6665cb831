package domain

import "time"

// UserRole enumerates operator roles.
type UserRole string

const (
	RoleAdmin UserRole = "admin"
	RoleUser  UserRole = "user"
)

// User is a NOC staff account.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         UserRole
	DepartmentID *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
