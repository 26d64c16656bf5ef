package core

import "time"

// Role is an enumerated user capability, compared by value.
type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// IsValid returns true for a known role.
func (r Role) IsValid() bool {
	return r == RoleAdmin || r == RoleUser
}

// Status is the account state.
type Status string

const (
	StatusActive Status = "active"
	StatusBanned Status = "banned"
)

// User is a registered account in the user directory.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Role         Role
	Status       Status
	CreatedAt    time.Time
}

// Banned reports whether the account is blocked from logging in.
func (u User) Banned() bool {
	return u.Status == StatusBanned
}
